package model

import (
	"strings"
	"unicode"

	"github.com/m-mizutani/goerr/v2"
)

const (
	displayNameMinLen = 4
	displayNameMaxLen = 49
)

// ValidateDisplayName checks the wire-contract rules for human-readable
// labels: 4 to 49 characters, no underscores, not entirely upper case.
func ValidateDisplayName(name string) error {
	if n := len(name); n < displayNameMinLen || n > displayNameMaxLen {
		return goerr.Wrap(ErrInvalidDisplayName, "display name length out of range",
			goerr.V("display_name", name),
			goerr.V("length", n))
	}
	if strings.Contains(name, "_") {
		return goerr.Wrap(ErrInvalidDisplayName, "display name must not contain underscores",
			goerr.V("display_name", name))
	}
	if isAllCaps(name) {
		return goerr.Wrap(ErrInvalidDisplayName, "display name must not be all upper case",
			goerr.V("display_name", name))
	}
	return nil
}

// isAllCaps reports whether the string contains at least one letter and
// every letter is upper case
func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
