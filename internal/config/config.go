package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	// RoomIdleTTL is how long an empty room keeps its picture before
	// eviction. Zero keeps empty rooms forever.
	RoomIdleTTL time.Duration `mapstructure:"room_idle_ttl" yaml:"room_idle_ttl"`
	// ClientBuffer sizes the per-connection command and event channels.
	ClientBuffer int `mapstructure:"client_buffer" yaml:"client_buffer"`
	// CursorRateLimit caps relayed cursor positions per connection per
	// minute. Zero disables the limit.
	CursorRateLimit int `mapstructure:"cursor_rate_limit" yaml:"cursor_rate_limit"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		RoomIdleTTL:       10 * time.Minute,
		ClientBuffer:      64,
		CursorRateLimit:   7200,
	}
}
