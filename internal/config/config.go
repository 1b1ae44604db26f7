package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mlorentedev/fonttree/internal/adapter"
)

// Config holds all application configuration.
type Config struct {
	Port int `yaml:"port"`

	Provider     string        `yaml:"provider"`
	Model        string        `yaml:"model"`
	ModelAPIKey  string        `yaml:"model_api_key"`
	ModelBaseURL string        `yaml:"model_base_url"`
	ModelTimeout time.Duration `yaml:"model_timeout"`

	// APIKey, when set, is required from callers in the X-API-Key header.
	APIKey string `yaml:"api_key"`

	RateLimit     int           `yaml:"rate_limit"`
	RateWindow    time.Duration `yaml:"rate_window"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`

	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	RequestTimeout time.Duration `yaml:"request_timeout"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func defaults() Config {
	return Config{
		Port:           3000,
		Provider:       adapter.ProviderGemini,
		ModelTimeout:   60 * time.Second,
		RateLimit:      30,
		RateWindow:     time.Minute,
		MaxBodyBytes:   64 * 1024,
		RequestTimeout: 65 * time.Second,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load reads configuration from a YAML file (if path is non-empty), then
// applies environment overrides. A .env file in the working directory is
// loaded first when present. A missing model API key is not an error here:
// the server starts unconfigured instead.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Model == "" {
		cfg.Model = adapter.DefaultModel(cfg.Provider)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	var errs []error

	if v := os.Getenv("FONTTREE_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: invalid FONTTREE_PORT %q: %w", v, err))
		}
		cfg.Port = p
	}
	if v := os.Getenv("FONTTREE_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("FONTTREE_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("FONTTREE_MODEL_API_KEY"); v != "" {
		cfg.ModelAPIKey = v
	} else if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		cfg.ModelAPIKey = v
	}
	if v := os.Getenv("FONTTREE_MODEL_BASE_URL"); v != "" {
		cfg.ModelBaseURL = v
	}
	if v := os.Getenv("FONTTREE_MODEL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: invalid FONTTREE_MODEL_TIMEOUT %q: %w", v, err))
		}
		cfg.ModelTimeout = d
	}
	if v := os.Getenv("FONTTREE_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("FONTTREE_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: invalid FONTTREE_RATE_LIMIT %q: %w", v, err))
		}
		cfg.RateLimit = n
	}
	if v := os.Getenv("FONTTREE_RATE_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: invalid FONTTREE_RATE_WINDOW %q: %w", v, err))
		}
		cfg.RateWindow = d
	}
	if v := os.Getenv("FONTTREE_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("FONTTREE_REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("FONTTREE_MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: invalid FONTTREE_MAX_BODY_BYTES %q: %w", v, err))
		}
		cfg.MaxBodyBytes = n
	}
	if v := os.Getenv("FONTTREE_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: invalid FONTTREE_REQUEST_TIMEOUT %q: %w", v, err))
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv("FONTTREE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("FONTTREE_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	return errors.Join(errs...)
}

func (c Config) validate() error {
	var errs []error

	if !adapter.Known(c.Provider) {
		errs = append(errs, fmt.Errorf("provider must be one of gemini, claude, llamacpp, ollama, mock (got %q)", c.Provider))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be between 1 and 65535 (got %d)", c.Port))
	}
	if c.RateLimit <= 0 {
		errs = append(errs, errors.New("rate_limit must be positive"))
	}
	if c.RateWindow < time.Millisecond {
		errs = append(errs, errors.New("rate_window must be at least 1ms"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("max_body_bytes must be positive"))
	}
	if c.RequestTimeout < 0 || c.ModelTimeout < 0 {
		errs = append(errs, errors.New("timeouts must not be negative"))
	}
	// The model call must give up first so it fails as a JSON 500 rather than
	// the request timeout's 503.
	if c.RequestTimeout > 0 && c.ModelTimeout > 0 && c.RequestTimeout <= c.ModelTimeout {
		errs = append(errs, fmt.Errorf("request_timeout (%s) must exceed model_timeout (%s)", c.RequestTimeout, c.ModelTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// ModelSettings returns the adapter settings for the configured provider.
func (c Config) ModelSettings() adapter.Settings {
	return adapter.Settings{
		Provider: c.Provider,
		Model:    c.Model,
		APIKey:   c.ModelAPIKey,
		BaseURL:  c.ModelBaseURL,
		Timeout:  c.ModelTimeout,
	}
}
