// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package normalize

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/tomtom215/campusdocs/internal/apperr"
)

// Normalize maps one raw document to a canonical record. The only error it
// returns is an apperr MalformedRecord for a missing structural field.
func (s *Schema) Normalize(raw map[string]any) (Record, error) {
	return s.normalize(raw, "")
}

// NormalizeAll normalizes each document in order. The first malformed
// document aborts the batch.
func (s *Schema) NormalizeAll(raws []map[string]any) ([]Record, error) {
	out := make([]Record, 0, len(raws))
	for i, raw := range raws {
		rec, err := s.normalize(raw, fmt.Sprintf("[%d]", i))
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Schema) normalize(raw map[string]any, path string) (Record, error) {
	idx := newLookup(raw)
	entries := make([]Entry, 0, len(s.Fields))

	for i := range s.Fields {
		f := &s.Fields[i]
		v, present := idx.get(f.Source)
		if present && (v == nil || isSentinel(v, f.Sentinels)) {
			present = false
		}

		val, err := f.value(v, present, joinPath(path, f.Output))
		if err != nil {
			return Record{}, err
		}
		entries = append(entries, Entry{Key: f.Output, Value: val})
	}
	return Record{entries: entries}, nil
}

func (f *Field) value(v any, present bool, path string) (any, error) {
	switch f.Policy {
	case Sequence, Structural:
		list, ok := asList(v)
		if !present || !ok {
			if f.Policy == Structural {
				return nil, apperr.MalformedRecord("", "",
					fmt.Sprintf("structural field %q (source %q) is missing or not a list", path, f.Source))
			}
			return []any{}, nil
		}
		return f.elements(list, path)
	}

	if !present {
		return nil, nil
	}
	if f.Derive != nil {
		s, ok := coerceString(v)
		if !ok {
			return nil, nil
		}
		return f.Derive(s), nil
	}
	return coerce(v, f.Kind), nil
}

// elements normalizes list members, preserving order.
func (f *Field) elements(list []any, path string) ([]any, error) {
	out := make([]any, 0, len(list))
	if f.Elem == nil {
		for _, item := range list {
			if isSentinel(item, f.Sentinels) {
				continue
			}
			out = append(out, item)
		}
		return out, nil
	}

	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if f.Elem.Skip != nil && f.Elem.Skip(obj) {
			continue
		}
		rec, err := f.Elem.normalize(obj, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func joinPath(base, field string) string {
	if base == "" {
		return field
	}
	return base + "." + field
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out, true
	case []string:
		out := make([]any, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out, true
	default:
		return nil, false
	}
}

func coerce(v any, kind Kind) any {
	switch kind {
	case KindString:
		if s, ok := coerceString(v); ok {
			return s
		}
		return nil
	case KindNumber:
		if n, ok := coerceNumber(v); ok {
			return n
		}
		return nil
	case KindObject:
		if m, ok := v.(map[string]any); ok {
			return m
		}
		return nil
	default:
		return v
	}
}

func coerceString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case int:
		return strconv.Itoa(t), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// coerceNumber returns an int64 for integral values and a float64 otherwise.
func coerceNumber(v any) (any, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		return integral(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
		return integral(f), true
	default:
		return nil, false
	}
}

func integral(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f)
	}
	return f
}

// lookup resolves source keys tolerant to case and whitespace. An exact key
// always wins; among keys that only fold to the same form, the
// lexicographically smallest is used so resolution is deterministic.
type lookup struct {
	raw    map[string]any
	folded map[string]string
}

func newLookup(raw map[string]any) lookup {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	folded := make(map[string]string, len(keys))
	for _, k := range keys {
		fk := foldKey(k)
		if _, taken := folded[fk]; !taken {
			folded[fk] = k
		}
	}
	return lookup{raw: raw, folded: folded}
}

func (l lookup) get(source string) (any, bool) {
	if v, ok := l.raw[source]; ok {
		return v, true
	}
	if k, ok := l.folded[foldKey(source)]; ok {
		return l.raw[k], true
	}
	return nil, false
}

func foldKey(k string) string {
	var b strings.Builder
	b.Grow(len(k))
	for _, r := range k {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
