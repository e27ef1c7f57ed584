package cli

import (
	"fmt"

	"github.com/dmitrijs2005/gochat/internal/client/models"
	"github.com/dmitrijs2005/gochat/internal/client/realtime"
	"github.com/dmitrijs2005/gochat/internal/client/store"
)

const ansiReset = "\x1b[0m"

var severityColor = map[realtime.Severity]string{
	realtime.SeverityDefault:  "\x1b[90m",
	realtime.SeverityInfo:     "\x1b[33m",
	realtime.SeverityPositive: "\x1b[32m",
	realtime.SeverityNegative: "\x1b[31m",
}

// statusChip renders a connection status as "[Label]", coloured by its
// severity when color is set.
func statusChip(s realtime.Status, color bool) string {
	chip := "[" + s.Label() + "]"
	if !color {
		return chip
	}
	return severityColor[s.Severity()] + chip + ansiReset
}

// formatMessage prints messages from the current user as "me"; everyone
// else is shown by username.
func formatMessage(m models.Message, me *models.User) string {
	if m.IsFrom(me) {
		return "me: " + m.Text
	}
	name := m.User.Username
	if name == "" {
		name = fmt.Sprintf("user %s", m.User.ID)
	}
	return name + ": " + m.Text
}

// render is the store listener. It prints the messages appended since the
// last call; a shorter log means it was cleared.
func (a *App) render(snap store.Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(snap.Messages) < a.printed {
		a.printed = 0
	}
	for _, m := range snap.Messages[a.printed:] {
		printlnFn(formatMessage(m, snap.Session.CurrentUser))
	}
	a.printed = len(snap.Messages)
}

func (a *App) onStatus(s realtime.Status) {
	printlnFn(statusChip(s, a.color))
}
