package config

import (
	"airkorea/internal/store"
	"airkorea/internal/telemetry"
	"airkorea/pkg/configutil"
	"errors"
	"os"
	"strings"
	"time"
)

const (
	ConfigFile = "airkorea.json5"

	// EnvBaseUrl overrides the page base url, tests point it at a local
	// server.
	EnvBaseUrl = "AIRKOREA_URL"

	DefaultBaseUrl   = "http://m.airkorea.or.kr/main"
	DefaultUserAgent = "Mozilla/5.0 (Linux; Android 10; K) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Mobile Safari/537.36"
	DefaultTimeout   = 30
)

type Config struct {
	BaseUrl          string           `json:"base_url"`
	TimeoutSeconds   int              `json:"timeout_seconds"`
	UserAgent        string           `json:"user_agent"`
	Layout           string           `json:"layout"`
	CloudflareBypass bool             `json:"cloudflare_bypass"`
	Store            store.Config     `json:"store"`
	Telemetry        telemetry.Config `json:"telemetry"`
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// applyDefaults fills every unset field, the environment override wins over
// both the file and the default.
func (c Config) applyDefaults(getenv func(string) string) Config {
	if c.BaseUrl == "" {
		c.BaseUrl = DefaultBaseUrl
	}
	if override := strings.TrimSpace(getenv(EnvBaseUrl)); override != "" {
		c.BaseUrl = override
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Store.File == "" && c.Store.Url == "" {
		c.Store.File = "airkorea.db"
	}
	return c
}

// Load reads airkorea.json5 (searching up from the cwd), a missing file
// is fine.
func Load() (Config, error) {
	cfg, err := configutil.ReadRecursively[Config](ConfigFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}
	return cfg.applyDefaults(os.Getenv), nil
}

// LoadFile reads the config at path, which must exist.
func LoadFile(path string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if err != nil {
		return Config{}, err
	}
	return cfg.applyDefaults(os.Getenv), nil
}
