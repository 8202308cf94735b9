// Package config holds the game server settings. Values start from
// defaults, are overridden by CHESS_* environment variables and finally by
// command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

const (
	EnvAddr                = "CHESS_ADDR"
	EnvAllowOrigins        = "CHESS_ALLOW_ORIGINS"
	EnvClockSeconds        = "CHESS_CLOCK_SECONDS"
	EnvSearchWorkers       = "CHESS_SEARCH_WORKERS"
	EnvLogLevel            = "CHESS_LOG_LEVEL"
	EnvMatchmakingInterval = "CHESS_MATCHMAKING_INTERVAL"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr                string
	AllowOrigins        string
	ClockTime           time.Duration
	SearchWorkers       int // 0 means one per CPU
	LogLevel            string
	MatchmakingInterval time.Duration
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Addr:                ":3000",
		AllowOrigins:        "http://localhost:5173",
		ClockTime:           600 * time.Second,
		LogLevel:            "info",
		MatchmakingInterval: time.Second,
	}
}

// Load returns the defaults overridden by the process environment.
func Load() (*Config, error) {
	cfg := NewConfig()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the variables lookup finds.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAddr); ok {
		c.Addr = v
	}
	if v, ok := lookup(EnvAllowOrigins); ok {
		c.AllowOrigins = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(EnvClockSeconds); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, EnvClockSeconds, v, err)
		}
		c.ClockTime = time.Duration(n) * time.Second
	}
	if v, ok := lookup(EnvSearchWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, EnvSearchWorkers, v, err)
		}
		c.SearchWorkers = n
	}
	if v, ok := lookup(EnvMatchmakingInterval); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, EnvMatchmakingInterval, v, err)
		}
		c.MatchmakingInterval = d
	}
	return nil
}

// RegisterFlags binds the fields to fs using the current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Addr, "addr", c.Addr, "listen address")
	fs.StringVar(&c.AllowOrigins, "allow-origins", c.AllowOrigins, "comma separated CORS origins")
	fs.DurationVar(&c.ClockTime, "clock", c.ClockTime, "starting time on each clock")
	fs.IntVar(&c.SearchWorkers, "workers", c.SearchWorkers, "search goroutines for the parallel tiers (0 = one per CPU)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.DurationVar(&c.MatchmakingInterval, "matchmaking-interval", c.MatchmakingInterval, "how often waiting players are paired")
}

func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	if c.ClockTime <= 0 {
		return fmt.Errorf("%w: clock time must be positive, got %v", ErrInvalidConfig, c.ClockTime)
	}
	if c.MatchmakingInterval <= 0 {
		return fmt.Errorf("%w: matchmaking interval must be positive, got %v", ErrInvalidConfig, c.MatchmakingInterval)
	}
	if c.SearchWorkers < 0 {
		return fmt.Errorf("%w: negative search workers %d", ErrInvalidConfig, c.SearchWorkers)
	}
	if _, ok := levels[c.LogLevel]; !ok {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

var levels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

// Level maps LogLevel to the logger's level, defaulting to info.
func (c *Config) Level() log.Level {
	if l, ok := levels[c.LogLevel]; ok {
		return l
	}
	return log.LevelInfo
}

// Origins splits AllowOrigins for the websocket origin check.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
