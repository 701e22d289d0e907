package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		HTTPPort:    "8080",
		DBDriver:    "postgres",
		DatabaseDSN: defaultDSN,
		JWTSecret:   strings.Repeat("s", 32),
		TokenTTL:    7 * 24 * time.Hour,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"ok", func(c *Config) {}, false},
		{"sqlite ok", func(c *Config) { c.DBDriver = "sqlite" }, false},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"short secret", func(c *Config) { c.JWTSecret = "short" }, true},
		{"zero ttl", func(c *Config) { c.TokenTTL = 0 }, true},
		{"unknown driver", func(c *Config) { c.DBDriver = "oracle" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("ATT_TEST_INT", "12")
	t.Setenv("ATT_TEST_BAD_INT", "x")
	t.Setenv("ATT_TEST_BOOL", "true")

	if got := getEnvInt("ATT_TEST_INT", 1); got != 12 {
		t.Errorf("getEnvInt = %d, want 12", got)
	}
	if got := getEnvInt("ATT_TEST_BAD_INT", 5); got != 5 {
		t.Errorf("getEnvInt(bad) = %d, want 5", got)
	}
	if got := getEnvInt("ATT_TEST_MISSING", 7); got != 7 {
		t.Errorf("getEnvInt(missing) = %d, want 7", got)
	}
	if !getEnvBool("ATT_TEST_BOOL", false) {
		t.Error("getEnvBool = false, want true")
	}
	if got := getEnv("ATT_TEST_MISSING", "def"); got != "def" {
		t.Errorf("getEnv = %q, want def", got)
	}
}
