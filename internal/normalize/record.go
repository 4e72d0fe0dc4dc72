// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package normalize

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Entry is one output field of a Record.
type Entry struct {
	Key   string
	Value any
}

// Record is a canonical, fixed-schema record. Entries appear in schema order
// and the record serializes to JSON in that order. A Record is never mutated
// after Normalize returns it.
type Record struct {
	entries []Entry
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.entries)
}

// Keys returns the output field names in schema order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.entries))
	for i, e := range r.entries {
		keys[i] = e.Key
	}
	return keys
}

// Get returns the value of an output field and whether the schema declares it.
func (r Record) Get(key string) (any, bool) {
	for _, e := range r.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Entries returns a copy of the record's entries.
func (r Record) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// MarshalJSON encodes the record as a JSON object in schema order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
