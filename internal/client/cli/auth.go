package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/gochat/internal/client/services"
	"github.com/dmitrijs2005/gochat/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errEmptyCredentials = errors.New("username and password are required")

// Login prompts for credentials, authenticates and connects the chat.
//
// A failed attempt prints exactly one message chosen by
// services.LoginFailureMessage and leaves the session untouched. The
// password byte slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.scanner, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(a.scanner, os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if userName == "" || len(password) == 0 {
		printlnFn("Username and password are required.")
		return errEmptyCredentials
	}

	reqCtx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	if err := a.authService.Login(reqCtx, userName, password); err != nil {
		a.log.Debug(ctx, "login failed", "error", err)
		printlnFn(services.LoginFailureMessage(err))
		return err
	}

	a.welcome()
	return a.startChat(ctx)
}

// Logout closes the chat connection and clears the saved session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out.")
	return nil
}

func (a *App) welcome() {
	if u := a.store.CurrentUser(); u != nil {
		printlnFn("Welcome, " + u.Username + "!")
	}
}

func (a *App) startChat(ctx context.Context) error {
	if err := a.chat.Start(ctx); err != nil {
		a.log.Warn(ctx, "chat start failed", "error", err)
		printlnFn("Cannot start chat:", err)
		return err
	}
	return nil
}
