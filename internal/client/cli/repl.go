package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Send(ctx context.Context, text string) error
	History(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the chat CLI.
//
// A line starting with '/' is a command; any other non-empty line is a chat
// message. The loop exits on scanner EOF, on ctx cancellation noticed
// between lines, or when the user types /exit or /quit.
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts:
//
//	/help          show available commands
//	/login         authenticate
//	/logout        close the chat and forget the session
//	/status        connection and server status
//	/history       reprint this session's messages
//	/whoami        show the logged-in user
//	/exit | /quit  leave the program
//
// Messages and every command except /help, /login, /status and /exit need
// a session; without one the user is sent to the login prompt instead.
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("chat %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, "/") {
			if requireLogin(ctx, a) {
				_ = a.Send(ctx, line)
			}
			continue
		}

		cmd := strings.Fields(line)[0]

		switch cmd {
		case "/help":
			if a.isLoggedIn() {
				printlnFn("Available commands: /history, /whoami, /status, /logout, /exit. Anything else is sent as a message.")
			} else {
				printlnFn("Available commands: /login, /status, /exit")
			}

		case "/login":
			if a.isLoggedIn() {
				printlnFn("Already logged in, /logout first.")
				continue
			}
			_ = a.Login(ctx)

		case "/logout":
			if requireLogin(ctx, a) {
				_ = a.Logout(ctx)
			}

		case "/status":
			_ = a.Status(ctx)

		case "/history":
			if requireLogin(ctx, a) {
				_ = a.History(ctx)
			}

		case "/whoami":
			if requireLogin(ctx, a) {
				_ = a.WhoAmI(ctx)
			}

		case "/exit", "/quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// requireLogin reports whether a session exists. Without one it sends the
// user to the login prompt and reports false, so the original request is
// dropped either way.
func requireLogin(ctx context.Context, a execIface) bool {
	if a.isLoggedIn() {
		return true
	}
	printlnFn("You are not logged in.")
	_ = a.Login(ctx)
	return false
}
