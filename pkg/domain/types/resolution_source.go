package types

import "fmt"

// ResolutionSource records which precedence layer of the resolver picked
// the action.
type ResolutionSource string

const (
	SourcePersistedOverride ResolutionSource = "PERSISTED_OVERRIDE"
	SourceOneTimeSelection  ResolutionSource = "ONE_TIME_SELECTION"
	SourceBackendPrimary    ResolutionSource = "BACKEND_PRIMARY"
	SourceCatalogFallback   ResolutionSource = "CATALOG_FALLBACK"
)

// AllResolutionSources returns all valid resolution sources
func AllResolutionSources() []ResolutionSource {
	return []ResolutionSource{
		SourcePersistedOverride,
		SourceOneTimeSelection,
		SourceBackendPrimary,
		SourceCatalogFallback,
	}
}

// IsValid checks if the resolution source is valid
func (s ResolutionSource) IsValid() bool {
	switch s {
	case SourcePersistedOverride,
		SourceOneTimeSelection,
		SourceBackendPrimary,
		SourceCatalogFallback:
		return true
	default:
		return false
	}
}

// IsUserDriven reports whether the source reflects an explicit user choice
// rather than a backend or catalog decision.
func (s ResolutionSource) IsUserDriven() bool {
	return s == SourcePersistedOverride || s == SourceOneTimeSelection
}

// String returns the string representation of the resolution source
func (s ResolutionSource) String() string {
	return string(s)
}

// ParseResolutionSource parses a string into a ResolutionSource
func ParseResolutionSource(s string) (ResolutionSource, error) {
	src := ResolutionSource(s)
	if !src.IsValid() {
		return "", fmt.Errorf("invalid resolution source: %s", s)
	}
	return src, nil
}
