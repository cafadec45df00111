package services

import "errors"

// Resolution failure taxonomy. All of these are recoverable: they degrade
// to the fallback negotiation, never to a batch abort.
var (
	// ErrNetworkUnreachable means the probe failed before any fetch
	ErrNetworkUnreachable = errors.New("network unreachable")

	// ErrFetchEmpty means the provider returned an empty asset listing
	ErrFetchEmpty = errors.New("release listing is empty")

	// ErrFetchMalformed means the provider response could not be parsed
	ErrFetchMalformed = errors.New("release listing is malformed")

	// ErrNoMatchingAsset means no listed asset matched the query pattern
	ErrNoMatchingAsset = errors.New("no asset matches the pattern")

	// ErrUserDeclined means the operator chose to skip at the prompt
	ErrUserDeclined = errors.New("operator declined the prompt")

	// ErrInvalidURL means an operator-typed URL failed validation
	ErrInvalidURL = errors.New("URL must start with http:// or https://")
)
