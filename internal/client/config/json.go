package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gochat/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. Keys absent from the file
// keep their current values.
type JsonConfig struct {
	ServerURL           string         `json:"server_url"`
	WebSocketURL        string         `json:"websocket_url"`
	DatabasePath        string         `json:"database_path"`
	StorageKey          string         `json:"storage_key"`
	InMemory            bool           `json:"in_memory"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	Reconnect           JsonReconnect  `json:"reconnect"`
	PingInterval        timex.Duration `json:"ping_interval"`
	PongWait            timex.Duration `json:"pong_wait"`
	LogLevel            string         `json:"log_level"`
	LogFormat           string         `json:"log_format"`
}

type JsonReconnect struct {
	MaxAttempts int            `json:"max_attempts"`
	Delay       timex.Duration `json:"delay"`
	Multiplier  float64        `json:"multiplier"`
	MaxDelay    timex.Duration `json:"max_delay"`
}

// parseJson overlays cfg with the JSON file at path. An empty path loads
// nothing. Intended usage is defaults -> env -> parseJson -> parseFlags.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	jc := toJson(cfg)
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}
	fromJson(cfg, jc)
	return nil
}

func toJson(c *Config) JsonConfig {
	return JsonConfig{
		ServerURL:           c.ServerURL,
		WebSocketURL:        c.WebSocketURL,
		DatabasePath:        c.DatabasePath,
		StorageKey:          c.StorageKey,
		InMemory:            c.InMemory,
		RequestTimeout:      timex.Duration{Duration: c.RequestTimeout},
		OnlineCheckInterval: timex.Duration{Duration: c.OnlineCheckInterval},
		Reconnect: JsonReconnect{
			MaxAttempts: c.Reconnect.MaxAttempts,
			Delay:       timex.Duration{Duration: c.Reconnect.Delay},
			Multiplier:  c.Reconnect.Multiplier,
			MaxDelay:    timex.Duration{Duration: c.Reconnect.MaxDelay},
		},
		PingInterval: timex.Duration{Duration: c.PingInterval},
		PongWait:     timex.Duration{Duration: c.PongWait},
		LogLevel:     c.LogLevel,
		LogFormat:    c.LogFormat,
	}
}

func fromJson(c *Config, jc JsonConfig) {
	c.ServerURL = jc.ServerURL
	c.WebSocketURL = jc.WebSocketURL
	c.DatabasePath = jc.DatabasePath
	c.StorageKey = jc.StorageKey
	c.InMemory = jc.InMemory
	c.RequestTimeout = jc.RequestTimeout.Duration
	c.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	c.Reconnect = Reconnect{
		MaxAttempts: jc.Reconnect.MaxAttempts,
		Delay:       jc.Reconnect.Delay.Duration,
		Multiplier:  jc.Reconnect.Multiplier,
		MaxDelay:    jc.Reconnect.MaxDelay.Duration,
	}
	c.PingInterval = jc.PingInterval.Duration
	c.PongWait = jc.PongWait.Duration
	c.LogLevel = jc.LogLevel
	c.LogFormat = jc.LogFormat
}
