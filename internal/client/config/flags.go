package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gochat/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-s string          base URL of the HTTP API
//	-w string          WebSocket URL
//	-d string          sqlite database file
//	-memory            keep the session in memory only
//	-t duration        HTTP request timeout
//	-i int             online check interval in seconds
//	-r int             reconnect attempts, 0 for unlimited
//	-rd duration       delay between reconnect attempts
//	-log-level string  debug, info, warn or error
//	-log-format string text or json
//
// args is filtered down to these flags with flagx.FilterArgs, so flags meant
// for other components (such as -c) do not break parsing.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "base URL of the HTTP API")
	fs.StringVar(&cfg.WebSocketURL, "w", cfg.WebSocketURL, "WebSocket URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "sqlite database file")
	fs.BoolVar(&cfg.InMemory, "memory", cfg.InMemory, "keep the session in memory only")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "HTTP request timeout")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.IntVar(&cfg.Reconnect.MaxAttempts, "r", cfg.Reconnect.MaxAttempts, "reconnect attempts, 0 for unlimited")
	fs.DurationVar(&cfg.Reconnect.Delay, "rd", cfg.Reconnect.Delay, "delay between reconnect attempts")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text or json)")

	var allowed []string
	fs.VisitAll(func(f *flag.Flag) {
		allowed = append(allowed, "-"+f.Name, "--"+f.Name)
	})

	if err := fs.Parse(flagx.FilterArgs(args, allowed)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})
	return nil
}
