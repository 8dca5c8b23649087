package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Intent is a taxonomy identifier describing what an email is about,
// formatted as "category.subcategory.action" (e.g. "billing.invoice.due").
// The resolution engine treats it as an opaque key; the segment accessors
// exist only for logging and routing convenience.
type Intent string

// Validate checks that the intent is non-empty and contains no whitespace
func (x Intent) Validate() error {
	if x == "" {
		return goerr.New("intent must not be empty")
	}
	if strings.ContainsAny(string(x), " \t\n") {
		return goerr.New("intent must not contain whitespace", goerr.V("intent", string(x)))
	}
	return nil
}

// Category returns the first segment of the intent, or the whole intent
// when it has no dots.
func (x Intent) Category() string {
	return x.segment(0)
}

// Subcategory returns the second segment of the intent, or an empty string
func (x Intent) Subcategory() string {
	return x.segment(1)
}

// Action returns the third segment of the intent, or an empty string
func (x Intent) Action() string {
	return x.segment(2)
}

func (x Intent) segment(i int) string {
	parts := strings.Split(string(x), ".")
	if i >= len(parts) {
		return ""
	}
	return parts[i]
}

// Contains reports whether the intent contains the given substring.
// Matching is case-insensitive.
func (x Intent) Contains(sub string) bool {
	return strings.Contains(strings.ToLower(string(x)), strings.ToLower(sub))
}

// String returns the string representation of the intent
func (x Intent) String() string {
	return string(x)
}
