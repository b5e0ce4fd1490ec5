// Package config assembles runtime settings from defaults, an optional YAML
// file and environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/terraincognita07/bloom/internal/insight"
	"github.com/terraincognita07/bloom/internal/services"
	"gopkg.in/yaml.v3"
)

const (
	insecureSecretPlaceholder = "change_me_in_production"
	exampleSecretPlaceholder  = "replace_with_at_least_32_random_characters"
	minSecretKeyLength        = 32
)

var (
	ErrSecretKeyMissing  = errors.New("SECRET_KEY is required")
	ErrSecretKeyInsecure = errors.New("SECRET_KEY uses a placeholder value")
	ErrSecretKeyShort    = errors.New("SECRET_KEY must be at least 32 characters")
)

type Config struct {
	Port            string              `yaml:"port"`
	DBPath          string              `yaml:"db_path"`
	Timezone        string              `yaml:"timezone"`
	BaseURL         string              `yaml:"base_url"`
	CookieSecure    bool                `yaml:"cookie_secure"`
	DefaultLanguage string              `yaml:"default_language"`
	LogLevel        string              `yaml:"log_level"`
	Insight         InsightConfig       `yaml:"insight"`
	SMTP            SMTPConfig          `yaml:"smtp"`
	RiskPolicy      services.RiskPolicy `yaml:"risk_policy"`

	// SecretKey is only read from the environment.
	SecretKey string         `yaml:"-"`
	Location  *time.Location `yaml:"-"`
}

type InsightConfig struct {
	Provider        string        `yaml:"provider"`
	AnthropicAPIKey string        `yaml:"-"`
	AnthropicModel  string        `yaml:"anthropic_model"`
	AnthropicURL    string        `yaml:"anthropic_url"`
	GeminiAPIKey    string        `yaml:"-"`
	GeminiModel     string        `yaml:"gemini_model"`
	MaxTokens       int           `yaml:"max_tokens"`
	Timeout         time.Duration `yaml:"timeout"`
	StaticText      string        `yaml:"static_text"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"-"`
	From     string `yaml:"from"`
}

func (smtp SMTPConfig) Enabled() bool {
	return strings.TrimSpace(smtp.Host) != ""
}

func DefaultConfig() *Config {
	return &Config{
		Port:            "8080",
		DBPath:          filepath.Join("data", "bloom.db"),
		Timezone:        "UTC",
		BaseURL:         "http://localhost:8080",
		DefaultLanguage: "en",
		LogLevel:        "info",
		Insight: InsightConfig{
			Provider:       insight.ProviderAnthropic,
			AnthropicModel: insight.DefaultAnthropicModel,
			AnthropicURL:   insight.DefaultAnthropicBaseURL,
			GeminiModel:    insight.DefaultGeminiModel,
			MaxTokens:      insight.DefaultMaxTokens,
			Timeout:        30 * time.Second,
		},
		SMTP: SMTPConfig{
			Port: 587,
		},
		RiskPolicy: services.DefaultRiskPolicy(),
		Location:   time.UTC,
	}
}

// LoadDotEnv reads .env style files into the process environment. Missing
// files are skipped and existing variables win.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Load builds the configuration. An empty path skips the YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	setString(&c.Port, "PORT")
	setString(&c.DBPath, "DB_PATH")
	setString(&c.Timezone, "TZ")
	setString(&c.BaseURL, "BASE_URL")
	setString(&c.DefaultLanguage, "DEFAULT_LANGUAGE")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.SecretKey, "SECRET_KEY")

	setString(&c.Insight.Provider, "INSIGHT_PROVIDER")
	setString(&c.Insight.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	setString(&c.Insight.AnthropicModel, "ANTHROPIC_MODEL")
	setString(&c.Insight.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.Insight.GeminiModel, "GEMINI_MODEL")

	setString(&c.SMTP.Host, "SMTP_HOST")
	setString(&c.SMTP.Username, "SMTP_USERNAME")
	setString(&c.SMTP.Password, "SMTP_PASSWORD")
	setString(&c.SMTP.From, "SMTP_FROM")

	if raw := os.Getenv("COOKIE_SECURE"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid COOKIE_SECURE %q: %w", raw, err)
		}
		c.CookieSecure = value
	}
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid SMTP_PORT %q: %w", raw, err)
		}
		c.SMTP.Port = value
	}
	if raw := os.Getenv("INSIGHT_TIMEOUT"); raw != "" {
		value, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid INSIGHT_TIMEOUT %q: %w", raw, err)
		}
		c.Insight.Timeout = value
	}
	return nil
}

func (c *Config) resolve() error {
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	c.Location = location

	c.Insight.Provider = strings.ToLower(strings.TrimSpace(c.Insight.Provider))
	switch c.Insight.Provider {
	case insight.ProviderAnthropic, insight.ProviderGemini, insight.ProviderStatic:
	default:
		return fmt.Errorf("unknown insight provider %q", c.Insight.Provider)
	}
	if c.Insight.Timeout <= 0 {
		return fmt.Errorf("insight timeout must be positive")
	}

	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		return fmt.Errorf("base url is required")
	}

	if err := c.RiskPolicy.Validate(); err != nil {
		return err
	}
	return nil
}

// ResolveSecretKey validates the JWT signing secret. Only the server needs it.
func (c *Config) ResolveSecretKey() (string, error) {
	return ValidateSecretKey(c.SecretKey)
}

func ValidateSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	switch {
	case secret == "":
		return "", ErrSecretKeyMissing
	case secret == insecureSecretPlaceholder || secret == exampleSecretPlaceholder:
		return "", ErrSecretKeyInsecure
	case len(secret) < minSecretKeyLength:
		return "", ErrSecretKeyShort
	}
	return secret, nil
}

func setString(target *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*target = value
	}
}
