package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the resolution engine. All of these are per-request
// and recoverable: callers substitute the generic fallback action instead
// of failing the email render. Catalog load failures are handled at
// process start in pkg/catalog and never reach here.
var (
	// ErrUnknownAction means a lookup by action ID found nothing
	ErrUnknownAction = goerr.New("unknown action")

	// ErrNoEligibleCandidates means every candidate for an intent failed
	// entity validation
	ErrNoEligibleCandidates = goerr.New("no eligible candidates")

	// ErrMissingURLTarget means a link dispatch could not resolve any
	// placeholder key
	ErrMissingURLTarget = goerr.New("no URL target could be resolved")

	// ErrInvalidURLTarget means the resolved URL failed scheme or host
	// validation
	ErrInvalidURLTarget = goerr.New("resolved URL failed validation")

	// ErrStaleOneTimeSelection means a one-time selection was offered for
	// an email it was not made for; it is ignored, never applied
	ErrStaleOneTimeSelection = goerr.New("stale one-time selection")
)

// Context keys for error values
const (
	EmailIDKey  = "email_id"
	UserIDKey   = "user_id"
	ActionIDKey = "action_id"
	IntentKey   = "intent"
)
