package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gochat/internal/client/config"
	"github.com/dmitrijs2005/gochat/internal/client/models"
	"github.com/dmitrijs2005/gochat/internal/client/realtime"
	"github.com/dmitrijs2005/gochat/internal/client/store"
	"github.com/dmitrijs2005/gochat/internal/logging"
)

var alice = models.User{ID: "1", Username: "alice"}

// ---- output capture ----

type output struct {
	mu    sync.Mutex
	lines []string
}

func (o *output) Lines() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.lines...)
}

func captureOutput(t *testing.T) *output {
	t.Helper()
	o := &output{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		o.mu.Lock()
		defer o.mu.Unlock()
		o.lines = append(o.lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return o
}

func stubInputs(t *testing.T, username string, password []byte) *int {
	t.Helper()
	calls := 0
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Scanner, _ string, _ io.Writer) (string, error) {
		calls++
		return username, nil
	}
	getPassword = func(_ *bufio.Scanner, _ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
	return &calls
}

// ---- fakes ----

type fakeAuth struct {
	store *store.Store

	mu sync.Mutex

	loginUser  string
	loginPass  []byte
	loginErr   error
	loginCalls int

	logoutCalls int

	restoreOK  bool
	restoreErr error

	pingErr    error
	closeCalls int
}

func (f *fakeAuth) Login(ctx context.Context, username string, password []byte) error {
	f.loginCalls++
	f.loginUser, f.loginPass = username, append([]byte(nil), password...)
	if f.loginErr != nil {
		return f.loginErr
	}
	f.store.SetSession(ctx, "T", alice)
	return nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutCalls++
	f.store.Logout(ctx)
	return nil
}

func (f *fakeAuth) Restore(ctx context.Context) (bool, error) {
	if f.restoreOK {
		f.store.SetSession(ctx, "T", alice)
	}
	return f.restoreOK, f.restoreErr
}

func (f *fakeAuth) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeAuth) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

func (f *fakeAuth) Close(ctx context.Context) error {
	f.closeCalls++
	return nil
}

type fakeChat struct {
	starts   int
	startErr error
	sent     []string
	sendErr  error
	stops    int
	status   realtime.Status
}

func (f *fakeChat) Start(ctx context.Context) error {
	f.starts++
	if f.startErr == nil {
		f.status = realtime.StatusOpen
	}
	return f.startErr
}

func (f *fakeChat) Send(ctx context.Context, text string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeChat) Stop() error {
	f.stops++
	f.status = realtime.StatusClosed
	return nil
}

func (f *fakeChat) Status() realtime.Status { return f.status }

func newTestApp(t *testing.T, input string) (*App, *fakeAuth, *fakeChat) {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.InMemory = true

	st := store.New(store.NewMemoryPersister(), nil)
	auth := &fakeAuth{store: st}
	chat := &fakeChat{}

	a := &App{
		config:      cfg,
		log:         logging.Discard(),
		store:       st,
		authService: auth,
		chat:        chat,
		scanner:     bufio.NewScanner(strings.NewReader(input)),
	}
	st.Subscribe(a.render)
	return a, auth, chat
}
