// Package client contains the client-side building blocks that talk to the
// outside world: the chat server's HTTP API and the local database.
//
// # Overview
//
//  1. A transport-agnostic API contract (see the Client interface): Login and
//     Ping.
//  2. An HTTP implementation (see HTTPClient) whose transport injects
//     "Authorization: Bearer <token>" from a TokenSource before every request
//     and stamps an X-Request-ID.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     sqlite database and applying embedded goose migrations.
//
// # Error Handling
//
// Failures fall into exactly one class, matched with errors.Is / errors.As:
//
//   - *ResponseError: the server answered with status >= 400.
//   - ErrUnavailable: the request was sent but no response arrived.
//   - anything else (encoding, cancellation, ErrUnexpectedResponse).
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package client
