package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

const (
	MinSearchDepth = 1
	MaxSearchDepth = 10
)

type Config struct {
	Addr         string
	AllowOrigins string
	// SearchDepth is the fixed look-ahead of the computer player, in plies.
	SearchDepth      int
	LogLevel         string
	AIWorkerInterval time.Duration
}

func Default() Config {
	return Config{
		Addr:             ":3000",
		AllowOrigins:     "http://localhost:5173",
		SearchDepth:      4,
		LogLevel:         "info",
		AIWorkerInterval: 50 * time.Millisecond,
	}
}

// Load starts from Default and applies any CHECKERS_* environment overrides.
func Load() (Config, error) {
	cfg := Default()

	if v := os.Getenv("CHECKERS_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("CHECKERS_ALLOW_ORIGINS"); v != "" {
		cfg.AllowOrigins = v
	}
	if v := os.Getenv("CHECKERS_SEARCH_DEPTH"); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("CHECKERS_SEARCH_DEPTH: %w", err)
		}
		cfg.SearchDepth = depth
	}
	if v := os.Getenv("CHECKERS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("CHECKERS_AI_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("CHECKERS_AI_INTERVAL: %w", err)
		}
		cfg.AIWorkerInterval = interval
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.SearchDepth < MinSearchDepth || c.SearchDepth > MaxSearchDepth {
		return fmt.Errorf("search depth %d outside [%d, %d]", c.SearchDepth, MinSearchDepth, MaxSearchDepth)
	}
	// Credentialed CORS cannot use a wildcard origin.
	for _, origin := range strings.Split(c.AllowOrigins, ",") {
		if strings.TrimSpace(origin) == "*" {
			return fmt.Errorf("allowed origins must be listed explicitly, got %q", c.AllowOrigins)
		}
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.AIWorkerInterval <= 0 {
		return fmt.Errorf("ai worker interval must be positive, got %v", c.AIWorkerInterval)
	}
	return nil
}

// Level maps LogLevel onto fiber's logger levels.
func (c Config) Level() (log.Level, error) {
	switch c.LogLevel {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return log.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
}
