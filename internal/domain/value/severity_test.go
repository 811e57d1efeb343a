package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"emergency_response/internal/domain/value"
)

func TestParseSeverity(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name     string
		raw      string
		expected value.Severity
		wantErr  bool
	}{
		{name: "Minor", raw: "minor", expected: value.SeverityMinor},
		{name: "Major trauma with underscore", raw: "major_trauma", expected: value.SeverityMajorTrauma},
		{name: "Major trauma with space", raw: "major trauma", expected: value.SeverityMajorTrauma},
		{name: "Mixed case and padding", raw: "  Major Trauma ", expected: value.SeverityMajorTrauma},
		{name: "Unknown label", raw: "critical", wantErr: true},
		{name: "Empty", raw: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			severity, err := value.ParseSeverity(tc.raw)

			if tc.wantErr {
				rq.Error(err)
				return
			}

			rq.NoError(err)
			rq.Equal(tc.expected, severity)
		})
	}
}

func TestNewCoordinates(t *testing.T) {
	rq := require.New(t)

	coords, err := value.NewCoordinates(12.9345, 77.6107)
	rq.NoError(err)
	rq.Equal("12.934500, 77.610700", coords.String())

	_, err = value.NewCoordinates(91, 0)
	rq.ErrorContains(err, "latitude")

	_, err = value.NewCoordinates(0, -181)
	rq.ErrorContains(err, "longitude")
}
