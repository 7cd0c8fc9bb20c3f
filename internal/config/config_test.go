package config

import (
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestParseDefaults(t *testing.T) {
	for _, k := range []string{"LOG_LEVEL", "WORDSCRAMBLE_LOCALE", "WORDSCRAMBLE_DB", "DICTIONARY_TIMEOUT", "WORDSCRAMBLE_FALLBACK_ROOT"} {
		t.Setenv(k, "") // restores the original value after the test
		os.Unsetenv(k)
	}
	c, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Locale != "en" || c.FallbackRoot != "silkworm" || c.DictionaryTimeout != 2*time.Second {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.DBPath != "" {
		t.Fatalf("DBPath = %q", c.DBPath)
	}
	if c.Level() != zerolog.InfoLevel {
		t.Fatalf("Level = %v", c.Level())
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WORDSCRAMBLE_LOCALE", "en-GB")
	t.Setenv("WORDSCRAMBLE_DB", "/tmp/words.db")
	t.Setenv("DICTIONARY_TIMEOUT", "250ms")
	t.Setenv("DAILY_SALT", "pepper")

	c, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Level() != zerolog.DebugLevel || c.Locale != "en-GB" || c.DBPath != "/tmp/words.db" ||
		c.DictionaryTimeout != 250*time.Millisecond || c.DailySalt != "pepper" {
		t.Fatalf("overrides not applied: %+v", c)
	}
}

func TestParseInvalid(t *testing.T) {
	cases := map[string]string{
		"WORDSCRAMBLE_LOCALE": "!!",
		"LOG_LEVEL":           "chatty",
		"DICTIONARY_TIMEOUT":  "soon",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv(k, v)
			if _, err := Parse(); err == nil {
				t.Fatalf("%s=%q accepted", k, v)
			}
		})
	}
}
