package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds server settings. Values come from three layers, each
// overriding the last: built-in defaults, an optional TOML file, and
// GYMDESK_* environment variables. Secrets are env-only and never read
// from the file.
type Config struct {
	Env        string `toml:"env"`
	Addr       string `toml:"addr"`
	DBPath     string `toml:"db_path"`
	AdminEmail string `toml:"admin_email"`
	EmailFrom  string `toml:"email_from"`
	ReplyTo    string `toml:"reply_to"`

	AdminPassword string `toml:"-"`
	ResendKey     string `toml:"-"`
}

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "gymdesk.toml"

func defaults() Config {
	return Config{
		Env:           "development",
		Addr:          ":8080",
		DBPath:        "gymdesk.db",
		AdminEmail:    "admin@gymdesk.local",
		AdminPassword: "change-me-now",
		EmailFrom:     "GymDesk <noreply@gymdesk.local>",
	}
}

// Load builds the effective configuration. A missing file is not an
// error; a malformed one is.
// PRE: path may be empty, in which case DefaultPath is used
// POST: Returns defaults layered with file values and env overrides
func Load(path string) (Config, error) {
	cfg := defaults()

	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overlays GYMDESK_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	setIfPresent(&cfg.Env, "GYMDESK_ENV")
	setIfPresent(&cfg.Addr, "GYMDESK_ADDR")
	setIfPresent(&cfg.DBPath, "GYMDESK_DB_PATH")
	setIfPresent(&cfg.AdminEmail, "GYMDESK_ADMIN_EMAIL")
	setIfPresent(&cfg.AdminPassword, "GYMDESK_ADMIN_PASSWORD")
	setIfPresent(&cfg.ResendKey, "GYMDESK_RESEND_API_KEY")
	setIfPresent(&cfg.EmailFrom, "GYMDESK_EMAIL_FROM")
	setIfPresent(&cfg.ReplyTo, "GYMDESK_REPLY_TO")
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// IsProduction reports whether the server runs with production hardening.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
