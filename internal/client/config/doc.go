// Package config loads runtime configuration for the chat CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: CHAT_* variables, with a .env file in the working
//     directory as fallback (process variables win).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # Environment
//
//	CHAT_SERVER_URL  CHAT_WS_URL  CHAT_DB_PATH  CHAT_STORAGE_KEY  CHAT_IN_MEMORY
//	CHAT_REQUEST_TIMEOUT  CHAT_ONLINE_CHECK_INTERVAL  CHAT_PING_INTERVAL  CHAT_PONG_WAIT
//	CHAT_RECONNECT_MAX_ATTEMPTS  CHAT_RECONNECT_DELAY  CHAT_RECONNECT_MULTIPLIER
//	CHAT_RECONNECT_MAX_DELAY  CHAT_LOG_LEVEL  CHAT_LOG_FORMAT
//
// Durations use Go syntax ("3s", "250ms").
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://localhost:8080/api",
//	  "websocket_url": "ws://localhost:8080/ws",
//	  "database_path": "chat.db",
//	  "online_check_interval": "3s",
//	  "reconnect": {"max_attempts": 0, "delay": "1s", "multiplier": 2, "max_delay": "30s"},
//	  "ping_interval": "30s",
//	  "pong_wait": "60s",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// Primary API
//
//   - type Config: runtime settings
//   - func LoadConfig(args) (*Config, error): defaults, env, JSON, then flags
//   - func (*Config) LoadDefaults(): sets sensible defaults
//   - func (*Config) Validate() error: rejects unusable values
package config
