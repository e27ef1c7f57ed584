package models

// Session is the authentication state that survives restarts.
// An empty Token and a nil CurrentUser mean "logged out".
type Session struct {
	Token       string `json:"token"`
	CurrentUser *User  `json:"currentUser"`
}

// IsAuthenticated reports whether a token is present. It does not check the
// token with the server.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}
