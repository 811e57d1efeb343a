package telephony

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"emergency_response/pkg/httpx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const defaultBaseURL = "https://api.twilio.com/2010-04-01"

// Client places outbound voice calls through the Twilio REST API. The spoken
// message is rendered as a TwiML Say verb.
type Client struct {
	accountSID string
	fromNumber string
	httpClient *http.Client
	baseURL    string
}

func NewClient(accountSID, authToken, fromNumber string, timeout time.Duration, transport http.RoundTripper) *Client {
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		accountSID: accountSID,
		fromNumber: fromNumber,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: httpx.NewBasicAuthRoundTripper(transport, accountSID, authToken),
		},
		baseURL: defaultBaseURL,
	}
}

// WithBaseURL overrides the API endpoint. Tests point it at a local server.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// Call dials the destination number and speaks the message, returning the
// provider call SID.
func (c *Client) Call(ctx context.Context, toNumber, message string) (string, error) {
	form := url.Values{
		"To":    {toNumber},
		"From":  {c.fromNumber},
		"Twiml": {sayTwiml(message)},
	}

	endpoint := fmt.Sprintf("%s/Accounts/%s/Calls.json", c.baseURL, c.accountSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("telephony API error: status %d: %s", resp.StatusCode, body)
	}

	var call callResponse
	if err := json.NewDecoder(resp.Body).Decode(&call); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if call.SID == "" {
		return "", fmt.Errorf("telephony API returned no call sid")
	}

	return call.SID, nil
}

func sayTwiml(message string) string {
	var escaped strings.Builder

	// Message text originates from free-form case summaries.
	_ = xml.EscapeText(&escaped, []byte(message)) //nolint:errcheck

	return fmt.Sprintf("<Response><Say>%s</Say></Response>", escaped.String())
}

type callResponse struct {
	SID string `json:"sid"`
}
