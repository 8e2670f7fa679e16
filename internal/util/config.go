package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	QuoteSourceYahoo  = "yahoo"
	QuoteSourceAlpaca = "alpaca"
)

type Config struct {
	Port        int           `json:"port"`
	QuoteSource string        `json:"quoteSource"`
	Alpaca      AlpacaSecrets `json:"alpaca"`
	Fetch       FetchConfig   `json:"fetch"`
}

type AlpacaSecrets struct {
	ApiKey    string `json:"apiKey"`
	ApiSecret string `json:"apiSecret"`
	Endpoint  string `json:"endpoint"`
}

type FetchConfig struct {
	TimeoutSeconds    int     `json:"timeoutSeconds"`
	MaxRetries        int     `json:"maxRetries"`
	InitialBackoffMs  int     `json:"initialBackoffMs"`
	RequestsPerSecond float64 `json:"requestsPerSecond"`
	Concurrency       int     `json:"concurrency"`
}

func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

func (f FetchConfig) InitialBackoff() time.Duration {
	return time.Duration(f.InitialBackoffMs) * time.Millisecond
}

func DefaultConfig() Config {
	return Config{
		Port:        3009,
		QuoteSource: QuoteSourceYahoo,
		Alpaca: AlpacaSecrets{
			Endpoint: "https://data.alpaca.markets",
		},
		Fetch: FetchConfig{
			TimeoutSeconds:    30,
			MaxRetries:        3,
			InitialBackoffMs:  250,
			RequestsPerSecond: 5,
			Concurrency:       8,
		},
	}
}

func configFile() string {
	switch strings.ToLower(os.Getenv("PORTFOLIO_ENV")) {
	case "dev":
		return "config-dev.json"
	case "test":
		return "config-test.json"
	}
	return "config.json"
}

// LoadConfig reads .env (if any), then the json config for the current
// PORTFOLIO_ENV on top of the defaults, then env var overrides
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	return loadConfigFile(configFile())
}

func loadConfigFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	f, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	if err == nil {
		if err := json.Unmarshal(f, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	cfg.QuoteSource = strings.ToLower(strings.TrimSpace(cfg.QuoteSource))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Port = p
	}
	if source := os.Getenv("QUOTE_SOURCE"); source != "" {
		cfg.QuoteSource = source
	}
	if key := os.Getenv("ALPACA_API_KEY"); key != "" {
		cfg.Alpaca.ApiKey = key
	}
	if secret := os.Getenv("ALPACA_API_SECRET"); secret != "" {
		cfg.Alpaca.ApiSecret = secret
	}
	return nil
}

func (c Config) Validate() error {
	if c.QuoteSource != QuoteSourceYahoo && c.QuoteSource != QuoteSourceAlpaca {
		return fmt.Errorf("unknown quote source %q", c.QuoteSource)
	}
	if c.QuoteSource == QuoteSourceAlpaca && (c.Alpaca.ApiKey == "" || c.Alpaca.ApiSecret == "") {
		return fmt.Errorf("alpaca quote source requires apiKey and apiSecret")
	}
	if c.Fetch.Concurrency <= 0 {
		return fmt.Errorf("fetch concurrency must be positive, got %d", c.Fetch.Concurrency)
	}
	if c.Fetch.RequestsPerSecond <= 0 {
		return fmt.Errorf("fetch requestsPerSecond must be positive, got %v", c.Fetch.RequestsPerSecond)
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch timeoutSeconds must be positive, got %d", c.Fetch.TimeoutSeconds)
	}
	if c.Fetch.MaxRetries < 0 {
		return fmt.Errorf("fetch maxRetries cannot be negative, got %d", c.Fetch.MaxRetries)
	}
	return nil
}
