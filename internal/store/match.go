// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

package store

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// Matcher evaluates a query's filters against decoded documents. Backends
// without a native query engine use it for in-process evaluation.
type Matcher struct {
	filters []compiledFilter
}

type compiledFilter struct {
	path []string
	op   Op
	val  any
	re   *regexp.Regexp
}

var regexCache sync.Map // pattern -> *regexp.Regexp

func compileRegex(pattern string) (*regexp.Regexp, error) {
	if re, ok := regexCache.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	regexCache.Store(pattern, re)
	return re, nil
}

// NewMatcher compiles filters. Call Query.Validate first for a descriptive error.
func NewMatcher(filters []Filter) (*Matcher, error) {
	m := &Matcher{filters: make([]compiledFilter, 0, len(filters))}
	for _, f := range filters {
		cf := compiledFilter{path: strings.Split(f.Path, "."), op: f.Op, val: f.Value}
		if f.Op == OpRegex {
			pattern, _ := f.Value.(string)
			re, err := compileRegex(pattern)
			if err != nil {
				return nil, err
			}
			cf.re = re
		}
		m.filters = append(m.filters, cf)
	}
	return m, nil
}

// Match reports whether doc satisfies every filter.
func (m *Matcher) Match(doc Document) bool {
	for i := range m.filters {
		if !m.filters[i].match(doc) {
			return false
		}
	}
	return true
}

func (f *compiledFilter) match(doc Document) bool {
	for _, v := range Resolve(doc, f.path) {
		switch f.op {
		case OpEq:
			if Equal(v, f.val) {
				return true
			}
		case OpRegex:
			if s, ok := v.(string); ok && f.re.MatchString(s) {
				return true
			}
		}
	}
	return false
}

// Resolve returns every value reachable at path. Arrays met along the way
// are traversed element-wise, and an array at the leaf contributes both
// itself and each of its elements.
func Resolve(doc Document, path []string) []any {
	current := []any{doc}
	for _, seg := range path {
		var next []any
		for _, v := range current {
			next = appendChild(next, v, seg)
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}

	out := make([]any, 0, len(current))
	for _, v := range current {
		out = append(out, v)
		if list, ok := v.([]any); ok {
			out = append(out, list...)
		}
	}
	return out
}

func appendChild(dst []any, v any, seg string) []any {
	switch t := v.(type) {
	case map[string]any:
		if child, ok := t[seg]; ok {
			dst = append(dst, child)
		}
	case []any:
		if idx, err := strconv.Atoi(seg); err == nil && idx >= 0 && idx < len(t) {
			return append(dst, t[idx])
		}
		for _, elem := range t {
			if m, ok := elem.(map[string]any); ok {
				if child, ok := m[seg]; ok {
					dst = append(dst, child)
				}
			}
		}
	}
	return dst
}

// Equal compares scalar values the way the document store does: numbers
// compare by value regardless of their Go type.
func Equal(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	switch ta := a.(type) {
	case string:
		tb, ok := b.(string)
		return ok && ta == tb
	case bool:
		tb, ok := b.(bool)
		return ok && ta == tb
	case nil:
		return b == nil
	default:
		return false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Project applies p to doc and returns a new document. A nil projection
// returns doc unchanged.
func Project(doc Document, p *Projection) Document {
	if p == nil {
		return doc
	}
	out := make(Document, len(doc))
	if len(p.Include) == 0 {
		for k, v := range doc {
			out[k] = v
		}
	} else {
		for _, k := range p.Include {
			if v, ok := doc[k]; ok {
				out[k] = v
			}
		}
		if v, ok := doc[IDField]; ok {
			out[IDField] = v
		}
	}
	if p.ExcludeID {
		delete(out, IDField)
	}
	return out
}
