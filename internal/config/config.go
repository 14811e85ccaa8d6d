// Package config loads service configuration from defaults, an optional YAML
// file and the environment, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/apresai/adgenius/internal/creative"
)

// Provider names accepted for the remote generator.
const (
	ProviderAnthropic = "anthropic"
	ProviderBedrock   = "bedrock"
	ProviderGemini    = "gemini"
)

// Config holds service configuration.
type Config struct {
	Port     int    `yaml:"port"`
	Provider string `yaml:"provider"`

	// AnthropicAPIKey is never read from the YAML file.
	AnthropicAPIKey  string        `yaml:"-"`
	AnthropicBaseURL string        `yaml:"anthropic_base_url"`
	Model            string        `yaml:"model"`
	MaxTokens        int64         `yaml:"max_tokens"`
	Temperature      float64       `yaml:"temperature"`
	MaxAttempts      int           `yaml:"max_attempts"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`

	// GeminiAPIKey is never read from the YAML file.
	GeminiAPIKey string `yaml:"-"`
	GeminiModel  string `yaml:"gemini_model"`

	AWSRegion    string `yaml:"aws_region"`
	SecretPrefix string `yaml:"secret_prefix"` // e.g. "/adgenius/"
	BedrockModel string `yaml:"bedrock_model"`

	CORSAllowedOrigins string `yaml:"cors_allowed_origins"`
	ExportBucket       string `yaml:"export_bucket"`
	ExportBaseURL      string `yaml:"export_base_url"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:               8080,
		Provider:           ProviderAnthropic,
		Model:              creative.DefaultModel,
		MaxTokens:          creative.DefaultMaxTokens,
		Temperature:        creative.DefaultTemperature,
		MaxAttempts:        1,
		AWSRegion:          "us-east-1",
		BedrockModel:       creative.DefaultBedrockModel,
		GeminiModel:        creative.DefaultGeminiModel,
		CORSAllowedOrigins: "*",
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when path
// is empty) and environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv is Load without a config file.
func FromEnv() (Config, error) {
	return Load("")
}

func (c *Config) applyEnv() error {
	c.AnthropicAPIKey = envOr("ANTHROPIC_API_KEY", envOr("CLAUDE_API_KEY", c.AnthropicAPIKey))
	c.AnthropicBaseURL = envOr("ANTHROPIC_BASE_URL", c.AnthropicBaseURL)
	c.GeminiAPIKey = envOr("GEMINI_API_KEY", c.GeminiAPIKey)
	c.GeminiModel = envOr("ADGENIUS_GEMINI_MODEL", c.GeminiModel)
	c.Provider = envOr("ADGENIUS_PROVIDER", c.Provider)
	c.Model = envOr("ADGENIUS_MODEL", c.Model)
	c.AWSRegion = envOr("AWS_REGION", c.AWSRegion)
	c.SecretPrefix = envOr("SECRET_PREFIX", c.SecretPrefix)
	c.BedrockModel = envOr("BEDROCK_MODEL_ID", c.BedrockModel)
	c.CORSAllowedOrigins = envOr("CORS_ALLOWED_ORIGINS", c.CORSAllowedOrigins)
	c.ExportBucket = envOr("EXPORT_BUCKET", c.ExportBucket)
	c.ExportBaseURL = envOr("EXPORT_BASE_URL", c.ExportBaseURL)

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v := os.Getenv("ADGENIUS_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ADGENIUS_MAX_ATTEMPTS %q: %w", v, err)
		}
		c.MaxAttempts = n
	}
	if v := os.Getenv("ADGENIUS_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ADGENIUS_REQUEST_TIMEOUT %q: %w", v, err)
		}
		c.RequestTimeout = d
	}
	return nil
}

// Validate checks value ranges. A missing API key is valid: the service then
// always serves fallback results.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic, ProviderBedrock, ProviderGemini:
	default:
		return fmt.Errorf("invalid provider %q: must be %s, %s or %s", c.Provider, ProviderAnthropic, ProviderBedrock, ProviderGemini)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MaxAttempts < 1 || c.MaxAttempts > 5 {
		return fmt.Errorf("invalid max_attempts %d: must be between 1 and 5", c.MaxAttempts)
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("invalid temperature %.2f: must be between 0 and 1", c.Temperature)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("invalid request_timeout %s", c.RequestTimeout)
	}
	return nil
}

// HasCredential reports whether remote generation can be attempted.
func (c Config) HasCredential() bool {
	switch c.Provider {
	case ProviderBedrock:
		return true
	case ProviderGemini:
		return strings.TrimSpace(c.GeminiAPIKey) != ""
	default:
		return strings.TrimSpace(c.AnthropicAPIKey) != ""
	}
}

// RequestOptions returns the model parameters for outbound requests.
func (c Config) RequestOptions() creative.RequestOptions {
	temperature := c.Temperature
	return creative.RequestOptions{
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: &temperature,
	}
}

// AllowedOrigins splits the comma-separated CORS origin list.
func (c Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
