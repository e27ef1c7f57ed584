package models

// Message is a chat message as broadcast by the server. Timestamp is kept in
// the server's textual form; the client never reorders by it.
type Message struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	User      User   `json:"user"`
}

// OutboundFrame is what the client writes to the realtime channel.
type OutboundFrame struct {
	Text string `json:"text"`
}

// IsFrom reports whether m was written by u. A nil user owns nothing.
func (m Message) IsFrom(u *User) bool {
	return u != nil && m.User.ID == u.ID
}
