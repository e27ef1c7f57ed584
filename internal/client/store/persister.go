package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gochat/internal/client/models"
	"github.com/dmitrijs2005/gochat/internal/client/repositories/storage"
)

// Persister saves and restores the durable part of the session.
// Load returns a zero Session when nothing was saved yet.
type Persister interface {
	Load(ctx context.Context) (models.Session, error)
	Save(ctx context.Context, session models.Session) error
}

// persistedState is the partial state written to storage: only token and
// current user, never the message log. A missing user is written as null.
type persistedState struct {
	Token       *string      `json:"token"`
	CurrentUser *models.User `json:"currentUser"`
}

type envelope struct {
	State   persistedState `json:"state"`
	Version int            `json:"version"`
}

const envelopeVersion = 0

// KVPersister keeps the session as one JSON entry under Key.
type KVPersister struct {
	repo storage.Repository
	key  string
}

func NewKVPersister(repo storage.Repository, key string) *KVPersister {
	return &KVPersister{repo: repo, key: key}
}

func (p *KVPersister) Load(ctx context.Context) (models.Session, error) {
	raw, err := p.repo.Get(ctx, p.key)
	if err != nil {
		return models.Session{}, err
	}
	if raw == nil {
		return models.Session{}, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return models.Session{}, fmt.Errorf("decode %s: %w", p.key, err)
	}

	var session models.Session
	if env.State.Token != nil {
		session.Token = *env.State.Token
	}
	session.CurrentUser = env.State.CurrentUser
	return session, nil
}

// Save writes the session envelope. A logged-out session removes the entry.
func (p *KVPersister) Save(ctx context.Context, session models.Session) error {
	if !session.IsAuthenticated() && session.CurrentUser == nil {
		return p.repo.Delete(ctx, p.key)
	}

	env := envelope{Version: envelopeVersion}
	if session.Token != "" {
		token := session.Token
		env.State.Token = &token
	}
	env.State.CurrentUser = session.CurrentUser

	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode %s: %w", p.key, err)
	}
	return p.repo.Set(ctx, p.key, raw)
}

// MemoryPersister keeps the session in process memory. It lets tests and
// the -memory mode simulate a restart by sharing one instance between stores.
type MemoryPersister struct {
	mu      sync.Mutex
	session models.Session
	saves   int
	err     error
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (p *MemoryPersister) Load(ctx context.Context) (models.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return models.Session{}, p.err
	}
	return models.Session{Token: p.session.Token, CurrentUser: cloneUser(p.session.CurrentUser)}, nil
}

func (p *MemoryPersister) Save(ctx context.Context, session models.Session) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.session = models.Session{Token: session.Token, CurrentUser: cloneUser(session.CurrentUser)}
	p.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (p *MemoryPersister) Saves() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves
}

// FailWith makes every following Load and Save return err. nil restores
// normal behaviour.
func (p *MemoryPersister) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}
