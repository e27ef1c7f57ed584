package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gochat/internal/common"
	"github.com/dmitrijs2005/gochat/internal/flagx"
)

// Reconnect describes how the realtime channel retries after a drop.
// MaxAttempts 0 means no limit; Multiplier 1 means a fixed Delay.
type Reconnect struct {
	MaxAttempts int
	Delay       time.Duration
	Multiplier  float64
	MaxDelay    time.Duration
}

// Config holds runtime settings for the chat CLI.
//
// Fields:
//   - ServerURL: base URL of the HTTP API (login, ping).
//   - WebSocketURL: ws:// or wss:// URL of the realtime endpoint.
//   - DatabasePath: sqlite file holding the persisted session.
//   - StorageKey: key of the session entry inside that file.
//   - InMemory: keep the session in memory only, no database file.
//   - RequestTimeout: deadline for a single HTTP call.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - PingInterval, PongWait: WebSocket keepalive; PingInterval 0 disables it.
//   - LogLevel, LogFormat: diagnostics written to stderr.
type Config struct {
	ServerURL           string
	WebSocketURL        string
	DatabasePath        string
	StorageKey          string
	InMemory            bool
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	Reconnect           Reconnect
	PingInterval        time.Duration
	PongWait            time.Duration
	LogLevel            string
	LogFormat           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080/api"
	c.WebSocketURL = "ws://localhost:8080/ws"
	c.DatabasePath = "chat.db"
	c.StorageKey = common.DefaultStorageKey
	c.InMemory = false
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.Reconnect = Reconnect{Delay: time.Second, Multiplier: 1}
	c.PingInterval = 30 * time.Second
	c.PongWait = 60 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate rejects values the rest of the client cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.ServerURL == "" {
		errs = append(errs, errors.New("server url is empty"))
	}
	if c.WebSocketURL == "" {
		errs = append(errs, errors.New("websocket url is empty"))
	}
	if !c.InMemory && c.DatabasePath == "" {
		errs = append(errs, errors.New("database path is empty"))
	}
	if c.StorageKey == "" {
		errs = append(errs, errors.New("storage key is empty"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout %s must be positive", c.RequestTimeout))
	}
	if c.OnlineCheckInterval <= 0 {
		errs = append(errs, fmt.Errorf("online check interval %s must be positive", c.OnlineCheckInterval))
	}
	if c.Reconnect.MaxAttempts < 0 {
		errs = append(errs, fmt.Errorf("reconnect max attempts %d is negative", c.Reconnect.MaxAttempts))
	}
	if c.Reconnect.Delay < 0 || c.Reconnect.MaxDelay < 0 {
		errs = append(errs, errors.New("reconnect delays must not be negative"))
	}
	if c.PingInterval > 0 && c.PongWait <= c.PingInterval {
		errs = append(errs, fmt.Errorf("pong wait %s must exceed ping interval %s", c.PongWait, c.PingInterval))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (process variables, then a .env file in the working
// directory), a JSON file (-c/-config) and command-line flags. Later sources
// take precedence over earlier ones. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	lookup, err := loadEnv(dotEnvFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dotEnvFile, err)
	}
	if err := parseEnv(cfg, lookup); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseJson(cfg, flagx.ConfigFile(args)); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
