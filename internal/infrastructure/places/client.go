package places

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"

	"emergency_response/internal/domain/entity"
	"emergency_response/internal/domain/value"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"

// Client queries the Google Places Nearby Search API for medical facilities.
type Client struct {
	key        string
	httpClient *http.Client
	baseURL    string
}

func NewClient(key string, timeout time.Duration, transport http.RoundTripper) *Client {
	return &Client{
		key: key,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		baseURL: defaultBaseURL,
	}
}

// WithBaseURL overrides the API endpoint. Tests point it at a local server.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// Nearby returns hospitals within radius meters of the given point.
// Provider records missing a name or an address are discarded.
func (c *Client) Nearby(ctx context.Context, coords value.Coordinates, radiusMeters int) ([]entity.Facility, error) {
	params := url.Values{
		"location": {fmt.Sprintf("%f,%f", coords.Latitude, coords.Longitude)},
		"radius":   {fmt.Sprintf("%d", radiusMeters)},
		"type":     {"hospital"},
		"key":      {c.key},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nearby search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("places API error: status %d: %s", resp.StatusCode, body)
	}

	var placesResp response
	if err := json.NewDecoder(resp.Body).Decode(&placesResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	switch placesResp.Status {
	case "OK", "ZERO_RESULTS":
	default:
		return nil, fmt.Errorf("places API status %q: %s", placesResp.Status, placesResp.ErrorMessage)
	}

	facilities := make([]entity.Facility, 0, len(placesResp.Results))

	for _, r := range placesResp.Results {
		if r.Name == "" || r.Vicinity == "" {
			continue
		}

		facilities = append(facilities, entity.Facility{
			Name:        r.Name,
			Address:     r.Vicinity,
			Rating:      r.Rating,
			ReviewCount: r.UserRatingsTotal,
			Phone:       r.FormattedPhoneNumber,
		})
	}

	return facilities, nil
}

// Places API response types.

type response struct {
	Status       string   `json:"status"`
	ErrorMessage string   `json:"error_message"`
	Results      []result `json:"results"`
}

type result struct {
	Name                 string   `json:"name"`
	Vicinity             string   `json:"vicinity"`
	Rating               *float64 `json:"rating"`
	UserRatingsTotal     *int     `json:"user_ratings_total"`
	FormattedPhoneNumber string   `json:"formatted_phone_number"`
}
