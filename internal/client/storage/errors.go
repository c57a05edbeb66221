package storage

import "errors"

// Common client storage errors
var (
	// ErrTokensNotFound indicates that no stored tokens exist
	ErrTokensNotFound = errors.New("tokens not found")
)
