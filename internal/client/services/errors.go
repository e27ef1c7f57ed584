package services

import (
	"errors"

	"github.com/dmitrijs2005/gochat/internal/client/client"
)

var ErrNotLoggedIn = errors.New("not logged in")

const (
	MsgBadCredentials = "Login failed, please check your username and password."
	MsgUnreachable    = "Cannot reach the server, please check your network."
	MsgLoginUnknown   = "Login failed: an unknown error occurred."
)

// LoginFailureMessage maps a Login error to the one line shown to the user.
// A server answer wins over everything else; a request that got no answer
// is a connectivity problem; anything else is unknown.
func LoginFailureMessage(err error) string {
	var respErr *client.ResponseError
	switch {
	case errors.As(err, &respErr):
		if respErr.Message != "" {
			return respErr.Message
		}
		return MsgBadCredentials
	case errors.Is(err, client.ErrUnavailable):
		return MsgUnreachable
	default:
		return MsgLoginUnknown
	}
}
