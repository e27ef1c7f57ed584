package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gochat/internal/client/models"
)

// DecodeMessage parses an inbound frame. It fails closed: anything that is
// not a JSON message with an id and an author id is ErrMalformedFrame.
func DecodeMessage(data []byte) (models.Message, error) {
	var m models.Message
	if err := json.Unmarshal(data, &m); err != nil {
		return models.Message{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if m.ID == "" {
		return models.Message{}, fmt.Errorf("%w: missing id", ErrMalformedFrame)
	}
	if m.User.ID == "" {
		return models.Message{}, fmt.Errorf("%w: missing user id", ErrMalformedFrame)
	}
	return m, nil
}

// EncodeText builds the outbound frame for text.
func EncodeText(text string) ([]byte, error) {
	return json.Marshal(models.OutboundFrame{Text: text})
}
