package realtime

import "errors"

var (
	ErrNotConnected    = errors.New("channel is not connected")
	ErrAlreadyStarted  = errors.New("channel already started")
	ErrMalformedFrame  = errors.New("malformed frame")
	ErrInvalidEndpoint = errors.New("invalid websocket endpoint")
)
