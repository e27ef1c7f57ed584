package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const dotEnvFile = ".env"

type lookupFunc func(key string) (string, bool)

// loadEnv returns a lookup over the process environment that falls back to
// the variables in the dotenv file at path. A missing file is not an error.
// The process environment itself is never modified.
func loadEnv(path string) (lookupFunc, error) {
	file, err := godotenv.Read(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}, nil
}

// parseEnv overlays cfg with CHAT_* variables. All malformed values are
// reported together.
func parseEnv(cfg *Config, lookup lookupFunc) error {
	var errs []error

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	parse := func(key string, set func(string) error) {
		v, ok := lookup(key)
		if !ok {
			return
		}
		if err := set(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	dur := func(key string, dst *time.Duration) {
		parse(key, func(v string) (err error) {
			*dst, err = time.ParseDuration(v)
			return err
		})
	}

	str("CHAT_SERVER_URL", &cfg.ServerURL)
	str("CHAT_WS_URL", &cfg.WebSocketURL)
	str("CHAT_DB_PATH", &cfg.DatabasePath)
	str("CHAT_STORAGE_KEY", &cfg.StorageKey)
	str("CHAT_LOG_LEVEL", &cfg.LogLevel)
	str("CHAT_LOG_FORMAT", &cfg.LogFormat)

	parse("CHAT_IN_MEMORY", func(v string) (err error) {
		cfg.InMemory, err = strconv.ParseBool(v)
		return err
	})
	parse("CHAT_RECONNECT_MAX_ATTEMPTS", func(v string) (err error) {
		cfg.Reconnect.MaxAttempts, err = strconv.Atoi(v)
		return err
	})
	parse("CHAT_RECONNECT_MULTIPLIER", func(v string) (err error) {
		cfg.Reconnect.Multiplier, err = strconv.ParseFloat(v, 64)
		return err
	})

	dur("CHAT_REQUEST_TIMEOUT", &cfg.RequestTimeout)
	dur("CHAT_ONLINE_CHECK_INTERVAL", &cfg.OnlineCheckInterval)
	dur("CHAT_RECONNECT_DELAY", &cfg.Reconnect.Delay)
	dur("CHAT_RECONNECT_MAX_DELAY", &cfg.Reconnect.MaxDelay)
	dur("CHAT_PING_INTERVAL", &cfg.PingInterval)
	dur("CHAT_PONG_WAIT", &cfg.PongWait)

	return errors.Join(errs...)
}
