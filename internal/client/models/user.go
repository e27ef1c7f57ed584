// Package models defines the data exchanged with the chat server and kept in
// the client session.
package models

// User identifies the author of a message. It is created by the server and
// never modified by the client.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Credentials are sent once to the login endpoint and never stored.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the success body of POST /login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
