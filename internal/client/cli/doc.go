// Package cli provides the interactive chat command-line client.
//
// It wires configuration, local session storage, the HTTP API client, the
// realtime channel and the services, then runs a REPL. Typical flow: restore
// the saved session or prompt for credentials, connect the chat, start a
// background connectivity watcher, and read lines from the user.
//
// Key features:
//   - Login / Logout (logout also closes the chat connection)
//   - Sending messages: any line that is not a /command
//   - Live message output, own messages shown as "me"
//   - Connection status chip printed on every change
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
