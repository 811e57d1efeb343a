package places_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"emergency_response/internal/domain/value"
	"emergency_response/internal/infrastructure/places"
)

const nearbyResponse = `{
	"status": "OK",
	"results": [
		{
			"name": "City General Hospital",
			"vicinity": "123 Main St, Downtown",
			"rating": 4.5,
			"user_ratings_total": 230,
			"formatted_phone_number": "+1-555-0123"
		},
		{
			"name": "",
			"vicinity": "456 Oak Ave",
			"rating": 4.9
		},
		{
			"name": "Nameless Street Clinic",
			"vicinity": "",
			"rating": 4.9
		},
		{
			"name": "Unrated Medical Center",
			"vicinity": "789 Pine Rd"
		}
	]
}`

func TestClientNearby(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	var gotQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(nearbyResponse)) //nolint:errcheck
	}))
	defer server.Close()

	client := places.NewClient("test-key", time.Second, nil).WithBaseURL(server.URL)

	coords, err := value.NewCoordinates(12.9345, 77.6107)
	rq.NoError(err)

	facilities, err := client.Nearby(ctx, coords, 5000)
	rq.NoError(err)

	rq.Contains(gotQuery, "type=hospital")
	rq.Contains(gotQuery, "radius=5000")
	rq.Contains(gotQuery, "key=test-key")

	// Records without a name or an address are discarded.
	rq.Len(facilities, 2)

	rq.Equal("City General Hospital", facilities[0].Name)
	rq.Equal("123 Main St, Downtown", facilities[0].Address)
	rq.NotNil(facilities[0].Rating)
	rq.InEpsilon(4.5, *facilities[0].Rating, 1e-9)
	rq.NotNil(facilities[0].ReviewCount)
	rq.Equal(230, *facilities[0].ReviewCount)
	rq.Equal("+1-555-0123", facilities[0].Phone)

	rq.Equal("Unrated Medical Center", facilities[1].Name)
	rq.Nil(facilities[1].Rating)
	rq.Nil(facilities[1].ReviewCount)
}

func TestClientNearbyErrors(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	testCases := []struct {
		name       string
		statusCode int
		body       string
		errSubstr  string
	}{
		{
			name:       "HTTP error",
			statusCode: http.StatusForbidden,
			body:       "denied",
			errSubstr:  "status 403",
		},
		{
			name:       "API level error",
			statusCode: http.StatusOK,
			body:       `{"status":"REQUEST_DENIED","error_message":"bad key"}`,
			errSubstr:  `status "REQUEST_DENIED"`,
		},
		{
			name:       "Unparseable body",
			statusCode: http.StatusOK,
			body:       "not json",
			errSubstr:  "decode response",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.statusCode)
				w.Write([]byte(tc.body)) //nolint:errcheck
			}))
			defer server.Close()

			client := places.NewClient("test-key", time.Second, nil).WithBaseURL(server.URL)

			coords, err := value.NewCoordinates(0, 0)
			rq.NoError(err)

			_, err = client.Nearby(ctx, coords, 5000)
			rq.ErrorContains(err, tc.errSubstr)
		})
	}

	t.Run("Zero results is not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`)) //nolint:errcheck
		}))
		defer server.Close()

		client := places.NewClient("test-key", time.Second, nil).WithBaseURL(server.URL)

		coords, err := value.NewCoordinates(0, 0)
		rq.NoError(err)

		facilities, err := client.Nearby(ctx, coords, 5000)
		rq.NoError(err)
		rq.Empty(facilities)
	})
}
