// Package store is the client's single source of truth for the session and
// the message log.
//
// A Store is an explicit object owned by the App and passed to whoever needs
// it. Token and current user are mirrored to a Persister on every change and
// rehydrated by Load; the message log lives in memory only and is lost on
// restart.
package store

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/gochat/internal/client/models"
	"github.com/dmitrijs2005/gochat/internal/logging"
)

// Snapshot is the store state at one point in time. Callers may keep it.
// Messages is a read-only view of the log: later messages never show up in
// it and appending to it is safe, but its elements must not be modified.
type Snapshot struct {
	Session  models.Session
	Messages []models.Message
}

// Listener observes state changes. Listeners run synchronously, in change
// order, after the change is applied. They may read the store but must not
// write to it.
type Listener func(Snapshot)

type Store struct {
	// writeMu orders mutations together with their persistence and
	// notifications; mu guards the fields.
	writeMu sync.Mutex
	mu      sync.RWMutex

	token       string
	currentUser *models.User
	messages    []models.Message

	listeners map[int]Listener
	nextID    int

	persister Persister
	log       logging.Logger
}

// New creates an empty store. A nil persister disables persistence.
func New(p Persister, log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{
		persister: p,
		log:       log,
		listeners: make(map[int]Listener),
	}
}

// Load rehydrates token and current user from the persister. The message log
// is left untouched. A missing entry is not an error.
func (s *Store) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	session, err := s.persister.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = session.Token
	s.currentUser = cloneUser(session.CurrentUser)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// SetToken replaces the session token. The token is not validated.
func (s *Store) SetToken(ctx context.Context, token string) {
	s.update(ctx, true, func() {
		s.token = token
	})
}

// SetCurrentUser replaces the current user record.
func (s *Store) SetCurrentUser(ctx context.Context, user models.User) {
	s.update(ctx, true, func() {
		s.currentUser = &user
	})
}

// SetSession stores token and user as one change, persisted once.
func (s *Store) SetSession(ctx context.Context, token string, user models.User) {
	s.update(ctx, true, func() {
		s.token = token
		s.currentUser = &user
	})
}

// AddMessage appends msg to the log. The log is unbounded and never persisted.
func (s *Store) AddMessage(msg models.Message) {
	s.update(context.Background(), false, func() {
		s.messages = append(s.messages, msg)
	})
}

// Logout clears token, current user and the whole message log at once.
func (s *Store) Logout(ctx context.Context) {
	s.update(ctx, true, func() {
		s.token = ""
		s.currentUser = nil
		s.messages = nil
	})
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (s *Store) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUser(s.currentUser)
}

// Messages returns a copy of the log in arrival order.
func (s *Store) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.messages)
}

func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) update(ctx context.Context, persist bool, mutate func()) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	mutate()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if persist && s.persister != nil {
		if err := s.persister.Save(ctx, snap.Session); err != nil {
			s.log.Error(ctx, "failed to persist session", "error", err)
		}
	}

	s.notify(snap)
}

func (s *Store) notify(snap Snapshot) {
	s.mu.RLock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, id := range sortedKeys(s.listeners) {
		ls = append(ls, s.listeners[id])
	}
	s.mu.RUnlock()

	for _, l := range ls {
		l(Snapshot{
			Session:  models.Session{Token: snap.Session.Token, CurrentUser: cloneUser(snap.Session.CurrentUser)},
			Messages: snap.Messages,
		})
	}
}

// snapshotLocked does not copy the log. The log only grows by append and
// Logout replaces it, so a view capped at the current length never changes.
func (s *Store) snapshotLocked() Snapshot {
	n := len(s.messages)
	return Snapshot{
		Session: models.Session{
			Token:       s.token,
			CurrentUser: cloneUser(s.currentUser),
		},
		Messages: s.messages[:n:n],
	}
}

func sortedKeys(m map[int]Listener) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func cloneUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
