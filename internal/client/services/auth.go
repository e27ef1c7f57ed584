// Package services contains application services for the chat client.
// This file defines the authentication service: login against the server,
// logout with channel teardown, session restore on start, and the liveness
// probe.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gochat/internal/client/client"
	"github.com/dmitrijs2005/gochat/internal/client/models"
	"github.com/dmitrijs2005/gochat/internal/client/store"
	"github.com/dmitrijs2005/gochat/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and store token and user.
//   - Logout: stop the realtime channel, then clear the session.
//   - Restore: rehydrate a persisted session, dropping an expired one.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (bool, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Stopper is the part of the chat service logout needs.
type Stopper interface {
	Stop() error
}

type authService struct {
	client client.Client
	store  *store.Store
	chat   Stopper
	log    logging.Logger
	now    func() time.Time
}

// NewAuthService constructs an AuthService. chat may be nil when there is no
// realtime channel to tear down.
func NewAuthService(c client.Client, st *store.Store, chat Stopper, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &authService{
		client: c,
		store:  st,
		chat:   chat,
		log:    log.With("component", "auth"),
		now:    time.Now,
	}
}

// Login sends the credentials and, on success, stores token and user as a
// single session change. On failure the store is left as it was.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	resp, err := a.client.Login(ctx, models.Credentials{
		Username: username,
		Password: string(password),
	})
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	a.store.SetSession(ctx, resp.Token, resp.User)
	a.log.Info(ctx, "logged in", "user_id", resp.User.ID)
	return nil
}

// Logout closes the realtime channel before clearing the session, so no
// connection outlives the token it was opened with.
func (a *authService) Logout(ctx context.Context) error {
	if a.chat != nil {
		if err := a.chat.Stop(); err != nil {
			a.log.Warn(ctx, "chat stop failed", "error", err)
		}
	}
	a.store.Logout(ctx)
	a.log.Info(ctx, "logged out")
	return nil
}

// Restore loads the persisted session. It reports whether the user is
// logged in afterwards. A JWT whose exp has passed is cleared instead of
// being used.
func (a *authService) Restore(ctx context.Context) (bool, error) {
	if err := a.store.Load(ctx); err != nil {
		return false, fmt.Errorf("restore session: %w", err)
	}

	token := a.store.Token()
	if token == "" {
		return false, nil
	}

	if tokenExpired(token, a.now()) {
		a.log.Info(ctx, "stored token expired, clearing session")
		a.store.Logout(ctx)
		return false, nil
	}
	return true, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
