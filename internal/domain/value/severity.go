package value

import (
	"fmt"
	"strings"
)

// Severity is the coarse urgency classification driving the notification
// branch. The set is closed: every case resolves to exactly one of the two.
type Severity string

const (
	SeverityMinor       Severity = "minor"
	SeverityMajorTrauma Severity = "major_trauma"
)

func (s Severity) String() string {
	return string(s)
}

func (s Severity) IsMajorTrauma() bool {
	return s == SeverityMajorTrauma
}

// ParseSeverity normalizes a model-produced label. Models sometimes emit
// "major trauma" with a space, so that form is accepted too.
func ParseSeverity(raw string) (Severity, error) {
	switch strings.ReplaceAll(strings.TrimSpace(strings.ToLower(raw)), " ", "_") {
	case "minor":
		return SeverityMinor, nil
	case "major_trauma":
		return SeverityMajorTrauma, nil
	}

	return "", fmt.Errorf("unknown severity label %q", raw)
}
