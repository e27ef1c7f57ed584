package client

import (
	"net/http"

	"github.com/dmitrijs2005/gochat/internal/common"
	"github.com/google/uuid"
)

// authTransport attaches the bearer token and a request id to every outgoing
// request. It is the single place where credentials enter HTTP calls.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())

	if t.tokens != nil {
		if token := t.tokens.Token(); token != "" {
			r.Header.Set(common.AuthorizationHeader, common.BearerScheme+" "+token)
		}
	}

	if r.Header.Get(common.RequestIDHeader) == "" {
		r.Header.Set(common.RequestIDHeader, uuid.NewString())
	}

	return t.base.RoundTrip(r)
}
