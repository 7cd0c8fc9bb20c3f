// Package config loads runtime settings from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// Config holds every environment-driven setting.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"` // interactive mode only; empty discards logs

	Locale         string `env:"WORDSCRAMBLE_LOCALE" envDefault:"en"`
	StartFile      string `env:"WORDS_START_FILE"`
	DictionaryFile string `env:"WORDS_DICTIONARY_FILE"`
	FallbackRoot   string `env:"WORDSCRAMBLE_FALLBACK_ROOT" envDefault:"silkworm"`

	// DBPath switches the dictionary to SQLite when set.
	DBPath            string        `env:"WORDSCRAMBLE_DB"`
	DictionaryTimeout time.Duration `env:"DICTIONARY_TIMEOUT" envDefault:"2s"`

	DailySalt string `env:"DAILY_SALT" envDefault:"local_dev_salt"`
}

// Load reads .env (if present) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse parses the current environment without touching .env files.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values env parsing cannot.
func (c Config) Validate() error {
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("WORDSCRAMBLE_LOCALE %q: %w", c.Locale, err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	if c.DictionaryTimeout <= 0 {
		return fmt.Errorf("DICTIONARY_TIMEOUT must be positive, got %s", c.DictionaryTimeout)
	}
	return nil
}

// Level returns the parsed log level.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
