package domain

import "errors"

var (
	// ErrSignerNotConfigured is returned when a write passthrough is requested without a signer key
	ErrSignerNotConfigured = errors.New("signer not configured")

	// ErrExplorerResponse is returned when the explorer answers with an error payload
	ErrExplorerResponse = errors.New("explorer returned an error response")

	// ErrInvalidTokenID is returned when a token id cannot be parsed
	ErrInvalidTokenID = errors.New("invalid token id")
)
