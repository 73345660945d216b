package httpx

import (
	"fmt"
	"net/http"
)

const headerNameAppToken = "X-App-Token"

// AppTokenRoundTripper attaches a Socrata application token to every
// outbound request. An empty token leaves requests untouched, the open
// data endpoints accept anonymous calls at a lower rate limit.
type AppTokenRoundTripper struct {
	next  http.RoundTripper
	token string
}

func NewAppTokenRoundTripper(next http.RoundTripper, token string) AppTokenRoundTripper {
	return AppTokenRoundTripper{
		next:  next,
		token: token,
	}
}

func (rt AppTokenRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.token != "" {
		req = req.Clone(req.Context())
		req.Header.Set(headerNameAppToken, rt.token)
	}

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}
