// Package config reads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	EnvAddr             = "FLIPCHESS_ADDR"
	EnvOrigins          = "FLIPCHESS_ORIGINS"
	EnvMatchInterval    = "FLIPCHESS_MATCH_INTERVAL"
	EnvCatalog          = "FLIPCHESS_CATALOG"
	EnvLogLevel         = "FLIPCHESS_LOG_LEVEL"
	EnvIdleTTL          = "FLIPCHESS_IDLE_TTL"
	defaultAddr         = ":3000"
	defaultOrigin       = "http://localhost:5173"
	defaultMatchPeriod  = time.Second
	defaultIdleTTL      = 30 * time.Minute
	defaultLogLevelName = "info"
)

type Config struct {
	Addr                string
	AllowedOrigins      []string
	MatchmakingInterval time.Duration
	CatalogPath         string // empty means the built-in catalog
	LogLevel            log.Level
	IdleTTL             time.Duration // how long a game with no connections is kept
}

func Default() Config {
	return Config{
		Addr:                defaultAddr,
		AllowedOrigins:      []string{defaultOrigin},
		MatchmakingInterval: defaultMatchPeriod,
		LogLevel:            log.LevelInfo,
		IdleTTL:             defaultIdleTTL,
	}
}

// Load starts from Default and applies any FLIPCHESS_* variables that are set.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvAddr); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup(EnvOrigins); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) == 0 {
			return Config{}, fmt.Errorf("%w: %s has no origins", ErrInvalidConfig, EnvOrigins)
		}
		cfg.AllowedOrigins = origins
	}
	if v, ok := lookup(EnvMatchInterval); ok && v != "" {
		d, err := parsePositive(EnvMatchInterval, v)
		if err != nil {
			return Config{}, err
		}
		cfg.MatchmakingInterval = d
	}
	if v, ok := lookup(EnvIdleTTL); ok && v != "" {
		d, err := parsePositive(EnvIdleTTL, v)
		if err != nil {
			return Config{}, err
		}
		cfg.IdleTTL = d
	}
	if v, ok := lookup(EnvCatalog); ok {
		cfg.CatalogPath = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		level, err := parseLevel(v)
		if err != nil {
			return Config{}, err
		}
		cfg.LogLevel = level
	}
	return cfg, nil
}

func parsePositive(key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, key)
	}
	return d, nil
}

func parseLevel(name string) (log.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return log.LevelDebug, nil
	case defaultLogLevelName:
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvLogLevel, name)
}

// OriginList is AllowedOrigins in the comma form fiber's CORS config takes.
func (c Config) OriginList() string {
	return strings.Join(c.AllowedOrigins, ", ")
}
