package types

import "github.com/m-mizutani/goerr/v2"

// Priority orders candidate actions when several are valid for the same
// intent: 1 is the highest, 5 the lowest. It is purely a tie-break signal
// and never gates eligibility.
type Priority int

const (
	PriorityHighest Priority = 1
	PriorityLowest  Priority = 5
)

// Validate checks that the priority is within [1, 5]
func (p Priority) Validate() error {
	if p < PriorityHighest || p > PriorityLowest {
		return goerr.New("priority must be between 1 and 5", goerr.V("priority", int(p)))
	}
	return nil
}

// Int returns the integer value of the priority
func (p Priority) Int() int {
	return int(p)
}
