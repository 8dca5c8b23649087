package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for catalog entry validation. All of these are fatal at
// load time: the process must refuse to boot with a malformed catalog.
var (
	ErrInvalidDisplayName   = goerr.New("invalid display name")
	ErrInvalidURLTemplate   = goerr.New("invalid URL template")
	ErrInvalidSteps         = goerr.New("invalid compound action steps")
	ErrEndBehaviorMismatch  = goerr.New("requiresResponse does not match end behavior")
	ErrMissingEmailTemplate = goerr.New("email composer end behavior requires a template")
)
