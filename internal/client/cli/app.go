package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gochat/internal/client/client"
	"github.com/dmitrijs2005/gochat/internal/client/config"
	"github.com/dmitrijs2005/gochat/internal/client/realtime"
	"github.com/dmitrijs2005/gochat/internal/client/repositories/storage"
	"github.com/dmitrijs2005/gochat/internal/client/services"
	"github.com/dmitrijs2005/gochat/internal/client/store"
	"github.com/dmitrijs2005/gochat/internal/filex"
	"github.com/dmitrijs2005/gochat/internal/logging"
	"golang.org/x/term"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const maxPingTimeout = 3 * time.Second

// chatService is the part of services.ChatService the CLI drives.
type chatService interface {
	Start(ctx context.Context) error
	Send(ctx context.Context, text string) error
	Stop() error
	Status() realtime.Status
}

type App struct {
	config      *config.Config
	log         logging.Logger
	db          *sql.DB
	store       *store.Store
	authService services.AuthService
	chat        chatService
	scanner     *bufio.Scanner
	color       bool

	mu      sync.Mutex
	mode    Mode
	printed int
}

// NewApp opens local storage and builds the services. With c.InMemory the
// session lives in memory only and no database file is touched.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	a := &App{
		config:  c,
		log:     log,
		scanner: bufio.NewScanner(os.Stdin),
		color:   term.IsTerminal(int(os.Stdout.Fd())),
	}

	var persister store.Persister
	if c.InMemory {
		persister = store.NewMemoryPersister()
	} else {
		if _, err := filex.EnsureParentDir(c.DatabasePath); err != nil {
			return nil, err
		}
		db, err := client.InitDatabase(ctx, c.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		a.db = db
		persister = store.NewKVPersister(storage.NewSQLiteRepository(db), c.StorageKey)
	}
	a.store = store.New(persister, log.With("component", "store"))

	apiClient, err := client.NewHTTPClient(c.ServerURL, a.store, c.RequestTimeout)
	if err != nil {
		a.closeDB()
		return nil, err
	}

	chat := services.NewChatService(a.store, realtime.Options{
		URL: c.WebSocketURL,
		Policy: realtime.RetryPolicy{
			MaxAttempts: c.Reconnect.MaxAttempts,
			Delay:       c.Reconnect.Delay,
			Multiplier:  c.Reconnect.Multiplier,
			MaxDelay:    c.Reconnect.MaxDelay,
		},
		PingInterval: c.PingInterval,
		PongWait:     c.PongWait,
		OnStatus:     a.onStatus,
		Logger:       log,
	})
	a.chat = chat
	a.authService = services.NewAuthService(apiClient, a.store, chat, log)
	a.store.Subscribe(a.render)

	return a, nil
}

// Run blocks until the user leaves the REPL or ctx is done, then releases
// the connection, the HTTP client and the database.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)
	a.Root(ctx)
}

func (a *App) Close(ctx context.Context) {
	if err := a.chat.Stop(); err != nil {
		a.log.Warn(ctx, "chat stop failed", "error", err)
	}
	if err := a.authService.Close(ctx); err != nil {
		a.log.Warn(ctx, "api client close failed", "error", err)
	}
	a.closeDB()
}

func (a *App) closeDB() {
	if a.db != nil {
		_ = a.db.Close()
		a.db = nil
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.IsAuthenticated()
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "switched mode", "mode", mode)
	}
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// mode shown in the prompt. It returns when ctx is done, or at once when
// interval is not positive.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		a.log.Warn(ctx, "online status watcher disabled", "interval", interval)
		return
	}

	timeout := min(a.config.RequestTimeout, maxPingTimeout)
	if timeout <= 0 {
		timeout = maxPingTimeout
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, timeout)
			err := a.authService.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
