package logx

import (
	"regexp"
)

type SensitiveDataMaskerInterface interface {
	Mask(input []byte) []byte
}

// Patterns cover the credentials and personal data this service ships over
// HTTP: provider API keys in query strings, basic/bearer auth headers and
// phone numbers in request bodies.
//
//nolint:gochecknoglobals
var sensitiveDataPatterns = []*regexp.Regexp{
	regexp.MustCompile("(?s)(Authorization: Basic ).+?(\r)"),
	regexp.MustCompile("(?s)(Authorization: Bearer ).+?(\r)"),
	regexp.MustCompile("(?si)(x-api-key: ).+?(\r)"),
	regexp.MustCompile(`(?s)([?&]key=)[^&\s]+()`),
	regexp.MustCompile(`(?s)([?&]access_token=)[^&\s]+()`),
	regexp.MustCompile(`(?s)("phone":\s?").+?(")`),
	regexp.MustCompile(`(?s)("phone_number":\s?").+?(")`),
	regexp.MustCompile(`(?s)(To=)[^&\s]+()`),
	regexp.MustCompile(`(?s)(From=)[^&\s]+()`),
}

type SensitiveDataMasker struct{}

func NewSensitiveDataMasker() SensitiveDataMasker {
	return SensitiveDataMasker{}
}

func (s SensitiveDataMasker) Mask(input []byte) []byte {
	for _, pattern := range sensitiveDataPatterns {
		input = pattern.ReplaceAll(input, []byte("${1}[MASKED]${2}"))
	}

	return input
}
