// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

// Package identifier derives department scopes from composite identifiers.
//
// Staff-like records carry identifiers of the form ORG-SCOPE-SEQUENCE, for
// example "VEC-5-012". The scope is always the second hyphen-delimited
// segment. All scope matching in the service goes through Matcher, which is
// anchored at the start of the string and always includes the delimiter
// after the scope, so scope "1" never matches "VEC-10-001".
package identifier

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Delimiter separates identifier segments.
const Delimiter = "-"

var (
	// ErrEmptyScope is returned when the scope token is blank.
	ErrEmptyScope = errors.New("scope token is empty")

	// ErrInvalidScope is returned when the scope token contains the delimiter or whitespace.
	ErrInvalidScope = errors.New("scope token contains a delimiter or whitespace")

	// ErrMalformedIdentifier is returned by Parse for identifiers without three segments.
	ErrMalformedIdentifier = errors.New("identifier is not of the form ORG-SCOPE-SEQUENCE")
)

// Composite is a parsed ORG-SCOPE-SEQUENCE identifier.
type Composite struct {
	Org      string
	Scope    string
	Sequence string
}

// String reassembles the identifier.
func (c Composite) String() string {
	return c.Org + Delimiter + c.Scope + Delimiter + c.Sequence
}

// Parse splits id into its segments. The sequence keeps any further
// delimiters, so "VEC-5-001-A" parses with Sequence "001-A".
func Parse(id string) (Composite, error) {
	parts := strings.SplitN(id, Delimiter, 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Composite{}, fmt.Errorf("%w: %q", ErrMalformedIdentifier, id)
	}
	return Composite{Org: parts[0], Scope: parts[1], Sequence: parts[2]}, nil
}

// Matcher selects identifiers whose scope segment equals one token exactly.
// The zero value matches nothing; build one with NewMatcher.
type Matcher struct {
	org   string
	scope string
}

// NewMatcher builds a matcher for scope within org. An empty org matches the
// scope under any organization tag.
func NewMatcher(org string, scope any) (Matcher, error) {
	token, err := scopeToken(scope)
	if err != nil {
		return Matcher{}, err
	}
	org = strings.TrimSpace(org)
	if strings.Contains(org, Delimiter) {
		return Matcher{}, fmt.Errorf("organization tag %q contains the delimiter", org)
	}
	return Matcher{org: org, scope: token}, nil
}

// scopeToken converts a string or integer scope into its token form.
func scopeToken(scope any) (string, error) {
	var token string
	switch v := scope.(type) {
	case string:
		token = strings.TrimSpace(v)
	case int:
		token = strconv.Itoa(v)
	case int64:
		token = strconv.FormatInt(v, 10)
	case fmt.Stringer:
		token = strings.TrimSpace(v.String())
	default:
		return "", fmt.Errorf("unsupported scope type %T", scope)
	}
	if token == "" {
		return "", ErrEmptyScope
	}
	if strings.Contains(token, Delimiter) || strings.IndexFunc(token, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidScope, token)
	}
	return token, nil
}

// Scope returns the scope token.
func (m Matcher) Scope() string {
	return m.scope
}

// Org returns the organization tag, empty when any organization matches.
func (m Matcher) Org() string {
	return m.org
}

// Prefix returns the literal "ORG-SCOPE-" prefix. It is empty when the
// matcher has no organization tag.
func (m Matcher) Prefix() string {
	if m.org == "" || m.scope == "" {
		return ""
	}
	return m.org + Delimiter + m.scope + Delimiter
}

// Pattern returns an anchored regular expression equivalent to Matches,
// suitable for a document store regex query.
func (m Matcher) Pattern() string {
	if m.org == "" {
		return "^[^" + Delimiter + "]+" + Delimiter + regexp.QuoteMeta(m.scope) + Delimiter
	}
	return "^" + regexp.QuoteMeta(m.Prefix())
}

// Matches reports whether id belongs to the matcher's scope.
func (m Matcher) Matches(id string) bool {
	if m.scope == "" {
		return false
	}
	if m.org != "" {
		return strings.HasPrefix(id, m.Prefix())
	}
	c, err := Parse(id)
	return err == nil && c.Scope == m.scope
}

// Filter returns the subset of ids that match, preserving input order.
func (m Matcher) Filter(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if m.Matches(id) {
			out = append(out, id)
		}
	}
	return out
}
