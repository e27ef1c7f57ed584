// Package common contains constants and small helpers shared by the chat
// client packages.
package common

const (
	// AuthorizationHeader carries the session token on HTTP requests.
	AuthorizationHeader = "Authorization"
	// BearerScheme prefixes the token inside AuthorizationHeader.
	BearerScheme = "Bearer"
	// RequestIDHeader correlates client log lines with server logs.
	RequestIDHeader = "X-Request-ID"

	// TokenQueryParam carries the session token on the WebSocket handshake,
	// where custom headers are not available to every client.
	TokenQueryParam = "token"

	// DefaultStorageKey names the durable entry holding the session.
	DefaultStorageKey = "chat-app-storage"
)
