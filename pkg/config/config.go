// Package config holds the runtime settings of the go-esmigrate binary.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variables that override the defaults
const (
	EnvURL            = "ESMIGRATE_URL"
	EnvRetries        = "ESMIGRATE_RETRIES"
	EnvRedisAddr      = "ESMIGRATE_REDIS_ADDR"
	EnvRedisPassword  = "ESMIGRATE_REDIS_PASSWORD"
	EnvRedisDB        = "ESMIGRATE_REDIS_DB"
	EnvLockTTL        = "ESMIGRATE_LOCK_TTL"
	EnvPort           = "ESMIGRATE_PORT"
	EnvDataFile       = "ESMIGRATE_DATA_FILE"
	EnvBackgroundSave = "ESMIGRATE_BACKGROUND_SAVE"
)

// Config is the configuration shared by the CLI commands
type Config struct {
	// Engine client
	URL     string
	Retries uint64

	// Migration lease; an empty RedisAddr disables it
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	LockTTL       time.Duration

	// Local engine server
	Port           string
	DataFile       string
	BackgroundSave time.Duration
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		URL:      "http://localhost:9200",
		Retries:  3,
		LockTTL:  10 * time.Minute,
		Port:     "9200",
		DataFile: "go-esmigrate_data.esmg",
	}
}

// FromEnv returns the default configuration overridden by the process environment
func FromEnv() (Config, error) {
	return Load(os.LookupEnv)
}

// Load returns the default configuration overridden by the variables lookup finds
func Load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvURL); ok && v != "" {
		cfg.URL = v
	}
	if v, ok := lookup(EnvRetries); ok && v != "" {
		retries, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvRetries, v, err)
		}
		cfg.Retries = retries
	}
	if v, ok := lookup(EnvRedisAddr); ok {
		cfg.RedisAddr = v
	}
	if v, ok := lookup(EnvRedisPassword); ok {
		cfg.RedisPassword = v
	}
	if v, ok := lookup(EnvRedisDB); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvRedisDB, v, err)
		}
		cfg.RedisDB = db
	}
	if v, ok := lookup(EnvLockTTL); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvLockTTL, v, err)
		}
		cfg.LockTTL = ttl
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		cfg.Port = v
	}
	if v, ok := lookup(EnvDataFile); ok && v != "" {
		cfg.DataFile = v
	}
	if v, ok := lookup(EnvBackgroundSave); ok && v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvBackgroundSave, v, err)
		}
		cfg.BackgroundSave = interval
	}

	return cfg, nil
}
