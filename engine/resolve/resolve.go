// Package resolve maps user-typed names (difficulty tiers, voices, rooms) to
// their canonical spelling.
package resolve

import (
	"fmt"
	"strings"
)

// AmbiguityError indicates multiple options matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates no option matched a name.
type NotFoundError struct {
	Name    string
	Options []string
}

func (e *NotFoundError) Error() string {
	if len(e.Options) == 0 {
		return fmt.Sprintf("unknown name %q", e.Name)
	}
	return fmt.Sprintf("unknown name %q (expected one of: %s)", e.Name, strings.Join(e.Options, ", "))
}

// Name resolves query against options, case-insensitively:
//  1. an exact match wins outright;
//  2. otherwise the query may match a whole word of an option
//     ("living" matches "Living Room");
//  3. otherwise the query may be a prefix of an option ("med" matches "medium").
//
// The first step that matches anything decides; several matches in that step
// is an *AmbiguityError.
func Name(query string, options []string) (string, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", &NotFoundError{Name: query, Options: options}
	}

	for _, o := range options {
		if strings.ToLower(o) == q {
			return o, nil
		}
	}

	steps := []func(o string) bool{
		func(o string) bool {
			for _, w := range strings.Fields(strings.ToLower(o)) {
				if w == q {
					return true
				}
			}
			return false
		},
		func(o string) bool {
			return strings.HasPrefix(strings.ToLower(o), q)
		},
	}
	for _, match := range steps {
		var matches []string
		for _, o := range options {
			if match(o) && !containsStr(matches, o) {
				matches = append(matches, o)
			}
		}
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return "", &AmbiguityError{Name: query, Candidates: matches}
		}
	}
	return "", &NotFoundError{Name: query, Options: options}
}

func containsStr(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
