// Package config reads the service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

type Config struct {
	ServerAddr      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	SeedSampleData bool

	SessionTTL           time.Duration
	SessionPruneInterval time.Duration
	CookieSecure         bool

	AdminUsername string
	AdminPassword string

	KafkaBrokers []string
	KafkaTopic   string

	// Location is the portal's local time zone; camp dates are days in it.
	Location *time.Location
}

// Load reads the environment, falling back to defaults for unset variables.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Config{
		ServerAddr:    stringOr(getenv("SERVER_ADDR"), ":8080"),
		AdminUsername: getenv("ADMIN_USERNAME"),
		AdminPassword: getenv("ADMIN_PASSWORD"),
		KafkaBrokers:  splitList(getenv("KAFKA_BROKERS")),
		KafkaTopic:    stringOr(getenv("KAFKA_TOPIC"), "bloodportal-events"),
	}

	var err error
	if cfg.ReadTimeout, err = durationOr(getenv, "READ_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = durationOr(getenv, "WRITE_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = durationOr(getenv, "SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = durationOr(getenv, "SESSION_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.SessionPruneInterval, err = durationOr(getenv, "SESSION_PRUNE_INTERVAL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.SeedSampleData, err = boolOr(getenv, "SEED_SAMPLE_DATA", true); err != nil {
		return Config{}, err
	}
	if cfg.CookieSecure, err = boolOr(getenv, "COOKIE_SECURE", false); err != nil {
		return Config{}, err
	}

	tz := stringOr(getenv("CAMP_TIMEZONE"), "Asia/Kolkata")
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		return Config{}, fmt.Errorf("CAMP_TIMEZONE: %w", err)
	}

	if (cfg.AdminUsername == "") != (cfg.AdminPassword == "") {
		return Config{}, fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	if cfg.SessionTTL <= 0 || cfg.SessionPruneInterval <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL and SESSION_PRUNE_INTERVAL must be positive")
	}
	return cfg, nil
}

func stringOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func durationOr(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func boolOr(getenv func(string) string, key string, def bool) (bool, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
