package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	loginOK  bool

	calls []string
	sent  []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = f.loginOK
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Send(ctx context.Context, text string) error {
	f.calls = append(f.calls, "send")
	f.sent = append(f.sent, text)
	return nil
}
func (f *fakeExec) History(ctx context.Context) error {
	f.calls = append(f.calls, "history")
	return nil
}
func (f *fakeExec) WhoAmI(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}
func (f *fakeExec) Status(ctx context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}

func scannerOf(lines ...string) *bufio.Scanner {
	return bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{loginOK: true}
	runREPL(context.Background(), exec, func() string { return "status" }, scannerOf(
		"/help",
		"/login",
		"/help",
		"hello there",
		"   ",
		"/history",
		"/whoami",
		"/status",
		"/login",
		"/foobar",
		"/logout",
		"/exit",
		"never read",
	))

	assert.Equal(t, []string{"login", "send", "history", "whoami", "status", "logout"}, exec.calls)
	assert.Equal(t, []string{"hello there"}, exec.sent)

	lines := out.Lines()
	assert.Contains(t, lines, "Available commands: /login, /status, /exit")
	assert.Contains(t, lines, "Already logged in, /logout first.")
	assert.Contains(t, lines, "Unknown command: /foobar")
	assert.Equal(t, "Bye!", lines[len(lines)-1])
	assert.Contains(t, lines, "chat status> ")
}

func TestRunREPL_GuardSendsToLogin(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{loginOK: false}
	runREPL(context.Background(), exec, func() string { return "" }, scannerOf(
		"hello",
		"/history",
		"/whoami",
		"/logout",
		"/status",
	))

	assert.Equal(t, []string{"login", "login", "login", "login", "status"}, exec.calls)
	assert.Empty(t, exec.sent, "messages typed while logged out are dropped")

	var guarded int
	for _, l := range out.Lines() {
		if l == "You are not logged in." {
			guarded++
		}
	}
	assert.Equal(t, 4, guarded)
}

func TestRunREPL_GuardedMessageIsNotResentAfterLogin(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{loginOK: true}
	runREPL(context.Background(), exec, func() string { return "" }, scannerOf("first", "second", "/quit"))

	assert.Equal(t, []string{"login", "send"}, exec.calls)
	assert.Equal(t, []string{"second"}, exec.sent)
}

func TestRunREPL_StopsOnEOFAndCancel(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, scannerOf("a", "b"))
	assert.Equal(t, []string{"a", "b"}, exec.sent)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec = &fakeExec{loggedIn: true}
	runREPL(ctx, exec, func() string { return "" }, scannerOf("a"))
	assert.Empty(t, exec.calls)
}
