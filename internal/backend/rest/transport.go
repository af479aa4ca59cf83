package rest

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"taskboard/internal/logging"
)

// TokenSource yields the current bearer token, or "" when there is none.
// session.Store satisfies it.
type TokenSource interface {
	Token() string
}

// Transport attaches the current bearer token to every request and logs
// each round trip. The token is read per request so a login or logout in
// the same process takes effect immediately.
type Transport struct {
	tokens TokenSource
	base   http.RoundTripper
	log    *log.Logger
}

// NewTransport wraps base. A nil tokens never authenticates.
func NewTransport(tokens TokenSource, base http.RoundTripper, logger *log.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{tokens: tokens, base: base, log: logger}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt := t.base
	if t.tokens != nil {
		if tok := t.tokens.Token(); tok != "" {
			rt = &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tok, TokenType: "Bearer"}),
				Base:   t.base,
			}
		}
	}

	start := time.Now()
	resp, err := rt.RoundTrip(req)
	if t.log != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		logging.LogRequest(t.log, req.Method, req.URL.Path, status, err, time.Since(start))
	}
	return resp, err
}
