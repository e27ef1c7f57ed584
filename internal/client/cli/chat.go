package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gochat/internal/client/realtime"
)

// Send forwards a composed line to the server. The line appears in the
// output once the server broadcasts it back.
func (a *App) Send(ctx context.Context, text string) error {
	err := a.chat.Send(ctx, text)
	if errors.Is(err, realtime.ErrNotConnected) {
		printlnFn("Not connected, message not sent.")
	} else if err != nil {
		printlnFn("Send failed:", err)
	}
	return err
}

// History reprints the whole message log of this session.
func (a *App) History(ctx context.Context) error {
	snap := a.store.Snapshot()
	if len(snap.Messages) == 0 {
		printlnFn("No messages yet.")
		return nil
	}
	for _, m := range snap.Messages {
		printlnFn(formatMessage(m, snap.Session.CurrentUser))
	}
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.store.CurrentUser()
	if u == nil {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s (id %s)", u.Username, u.ID))
	return nil
}

// Status prints the connection chip and the last known server reachability.
func (a *App) Status(ctx context.Context) error {
	server := string(a.currentMode())
	if server == "" {
		server = "unknown"
	}
	printlnFn(fmt.Sprintf("connection %s, server %s", statusChip(a.chat.Status(), a.color), server))
	return nil
}
