package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Case intake.
	InvalidDescription failure.ErrorCode = "InvalidDescription"
	InvalidCoordinates failure.ErrorCode = "InvalidCoordinates"
	InvalidCase        failure.ErrorCode = "InvalidCase"

	// External call budget. Internal only: quota refusals degrade to
	// fallbacks and never reach the HTTP surface.
	QuotaExceeded       failure.ErrorCode = "QuotaExceeded"
	UpstreamUnavailable failure.ErrorCode = "UpstreamUnavailable"
	ConfigurationError  failure.ErrorCode = "ConfigurationError"
)
