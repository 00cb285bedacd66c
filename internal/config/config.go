package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

type Server struct {
	Port              string `json:"port"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
}

type Finnhub struct {
	APIKey    string `json:"api_key"`
	Endpoint  string `json:"endpoint"`
	TimeoutMs int    `json:"timeout_ms"`
}

type Telegram struct {
	BotToken    string `json:"bot_token"`
	ChatID      string `json:"chat_id"`
	Endpoint    string `json:"endpoint"`
	TimeoutMs   int    `json:"timeout_ms"`
	MaxAttempts int    `json:"max_attempts"`
	BackoffMs   int    `json:"backoff_ms"`
}

type Cache struct {
	TTLSeconds int `json:"ttl_sec"`
}

type Config struct {
	Server      Server   `json:"server"`
	Finnhub     Finnhub  `json:"finnhub"`
	Telegram    Telegram `json:"telegram"`
	Cache       Cache    `json:"cache"`
	Environment string   `json:"environment"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 10},
		Finnhub: Finnhub{
			TimeoutMs: 5000,
		},
		Telegram: Telegram{
			TimeoutMs:   3000,
			MaxAttempts: 3,
			BackoffMs:   1000,
		},
		Cache:       Cache{TTLSeconds: 30},
		Environment: "production",
	}
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. Environment variables override select fields for secrecy.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// Validate checks the credentials every relay needs. A missing credential
// is terminal for the request; there is nothing to retry.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Finnhub.APIKey) == "" {
		missing = append(missing, "FINNHUB_API_KEY")
	}
	if strings.TrimSpace(c.Telegram.BotToken) == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if strings.TrimSpace(c.Telegram.ChatID) == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Production reports whether caller-visible error detail should be hidden.
func (c Config) Production() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Server.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		cfg.Finnhub.APIKey = v
	}
	if v := os.Getenv("FINNHUB_ENDPOINT"); v != "" {
		cfg.Finnhub.Endpoint = v
	}
	if v := os.Getenv("QUOTE_TIMEOUT_MS"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Finnhub.TimeoutMs = x
		}
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("TELEGRAM_ENDPOINT"); v != "" {
		cfg.Telegram.Endpoint = v
	}
	if v := os.Getenv("NOTIFY_TIMEOUT_MS"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Telegram.TimeoutMs = x
		}
	}
	if v := os.Getenv("NOTIFY_MAX_ATTEMPTS"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Telegram.MaxAttempts = x
		}
	}
	if v := os.Getenv("NOTIFY_BACKOFF_MS"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 {
			cfg.Telegram.BackoffMs = x
		}
	}
	if v := os.Getenv("CACHE_TTL_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 {
			cfg.Cache.TTLSeconds = x
		}
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		cfg.Environment = v
	}
}
