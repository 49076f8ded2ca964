// Package form implements the field validation and sanitization layer used
// by every submit handler. Each field runs through an ordered predicate
// chain; the first failing predicate contributes that field's message, and
// all fields are always evaluated so errors surface together.
package form

import (
	"net/mail"
	"net/url"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

// sanitizer strips markup and escapes markup-significant characters so
// cleaned values are safe to render verbatim.
var sanitizer = bluemonday.StrictPolicy()

// Clean trims surrounding whitespace and escapes markup from a raw form
// value. Cleaning happens before validation, so error re-renders always
// pre-fill sanitized values.
func Clean(s string) string {
	return sanitizer.Sanitize(strings.TrimSpace(s))
}

// Predicate is a single validation check with the message attached when it
// fails.
type Predicate struct {
	Check   func(string) bool
	Message string
}

// Field names a form field and its ordered predicate chain. A field with no
// predicates is a passthrough: still trimmed and escaped, never rejected.
type Field struct {
	Name  string
	Rules []Predicate
}

// Errors maps field names to the message of the first predicate that failed
// for that field.
type Errors map[string]string

// Validate cleans every declared field and runs its predicate chain.
// Cleaned always holds every declared field so the form can be re-rendered
// pre-filled; when Errors is empty the cleaned values are safe to persist.
func Validate(values url.Values, fields []Field) (map[string]string, Errors) {
	cleaned := make(map[string]string, len(fields))
	errs := Errors{}

	for _, f := range fields {
		v := Clean(values.Get(f.Name))
		cleaned[f.Name] = v

		for _, rule := range f.Rules {
			if !rule.Check(v) {
				errs[f.Name] = rule.Message
				break
			}
		}
	}

	return cleaned, errs
}

// Required fails on the empty string.
func Required(message string) Predicate {
	return Predicate{
		Check:   func(s string) bool { return s != "" },
		Message: message,
	}
}

// MinLength fails on values shorter than n characters.
func MinLength(n int, message string) Predicate {
	return Predicate{
		Check:   func(s string) bool { return len([]rune(s)) >= n },
		Message: message,
	}
}

// ExactLength fails on values whose length is not exactly n characters.
func ExactLength(n int, message string) Predicate {
	return Predicate{
		Check:   func(s string) bool { return len([]rune(s)) == n },
		Message: message,
	}
}

// Alphabetic fails when any character is not a letter.
func Alphabetic(message string) Predicate {
	return Predicate{
		Check: func(s string) bool {
			for _, r := range s {
				if !unicode.IsLetter(r) {
					return false
				}
			}
			return true
		},
		Message: message,
	}
}

// Alphanumeric fails when any character is not a letter or digit.
func Alphanumeric(message string) Predicate {
	return Predicate{
		Check: func(s string) bool {
			for _, r := range s {
				if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					return false
				}
			}
			return true
		},
		Message: message,
	}
}

// Email fails when the value is not a parseable address.
func Email(message string) Predicate {
	return Predicate{
		Check: func(s string) bool {
			_, err := mail.ParseAddress(s)
			return err == nil
		},
		Message: message,
	}
}
