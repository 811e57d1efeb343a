package httpx

import (
	"fmt"
	"net/http"
)

// BasicAuthRoundTripper sets HTTP basic credentials on every outbound
// request. Used for the telephony provider whose REST API authenticates
// with account SID and auth token.
type BasicAuthRoundTripper struct {
	next     http.RoundTripper
	username string
	password string
}

func NewBasicAuthRoundTripper(
	next http.RoundTripper,
	username string,
	password string,
) BasicAuthRoundTripper {
	return BasicAuthRoundTripper{
		next:     next,
		username: username,
		password: password,
	}
}

func (rt BasicAuthRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(rt.username, rt.password)

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}
