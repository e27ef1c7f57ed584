package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/gochat/internal/client/models"
	"github.com/dmitrijs2005/gochat/internal/client/realtime"
	"github.com/dmitrijs2005/gochat/internal/client/store"
	"github.com/dmitrijs2005/gochat/internal/logging"
)

// ChatService binds the realtime channel to the session store: it connects
// with the stored token and appends every inbound message to the log.
type ChatService struct {
	channel *realtime.Channel
	store   *store.Store
	log     logging.Logger
}

// NewChatService builds the channel from opts. opts.OnMessage is replaced;
// every other field, OnStatus included, is used as given.
func NewChatService(st *store.Store, opts realtime.Options) *ChatService {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	s := &ChatService{
		store: st,
		log:   opts.Logger.With("component", "chat"),
	}
	opts.OnMessage = s.receive
	s.channel = realtime.New(opts)
	return s
}

// Start connects with the current token. It does not wait for the
// connection to open.
func (s *ChatService) Start(ctx context.Context) error {
	token := s.store.Token()
	if token == "" {
		return ErrNotLoggedIn
	}
	return s.channel.Connect(ctx, token)
}

// Send forwards text to the server. Blank text is ignored. The message
// shows up in the log only when the server broadcasts it back.
func (s *ChatService) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if err := s.channel.Send(text); err != nil {
		s.log.Debug(ctx, "send failed", "error", err)
		return err
	}
	return nil
}

func (s *ChatService) Stop() error {
	return s.channel.Close()
}

func (s *ChatService) Status() realtime.Status {
	return s.channel.Status()
}

// Dropped counts inbound frames that were discarded as malformed.
func (s *ChatService) Dropped() int64 {
	return s.channel.Dropped()
}

func (s *ChatService) receive(msg models.Message) {
	s.store.AddMessage(msg)
}
