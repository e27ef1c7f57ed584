package client

import (
	"context"

	"github.com/dmitrijs2005/gochat/internal/client/models"
)

// Client is the HTTP side of the chat server API.
type Client interface {
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error)
	Ping(ctx context.Context) error
	Close() error
}

// TokenSource yields the current session token, or "" when logged out.
// The session store satisfies it.
type TokenSource interface {
	Token() string
}
