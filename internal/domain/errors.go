package domain

import (
	"errors"
	"fmt"

	"git.appkode.ru/pub/go/failure"
)

// Internal failure modes. Neither ever reaches the HTTP surface: both are
// resolved by substituting fallback data or skipping the stage.
var (
	// ErrQuotaExceeded: a stage wanted an external call but the usage
	// guard refused.
	ErrQuotaExceeded = errors.New("daily quota exceeded")

	// ErrUpstreamUnavailable: an external call timed out, errored or
	// returned unparseable data.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// InvalidInput builds the one error kind that aborts the pipeline and is
// surfaced to the caller as HTTP 400.
func InvalidInput(code failure.ErrorCode, err error) error {
	return failure.NewInvalidArgumentErrorFromError(err, failure.WithCode(code))
}

// Unavailable tags a provider error so callers can branch on
// ErrUpstreamUnavailable while keeping the cause in the chain.
func Unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
}
