package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned by repositories when a record does not exist.
// Both backends wrap this sentinel so callers can errors.Is against one
// value regardless of the configured backend.
var ErrNotFound = goerr.New("record not found")
