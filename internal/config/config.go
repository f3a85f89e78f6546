// Package config resolves runtime settings from an optional YAML file, a .env
// file and the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/terraincognita07/wellnest/internal/security"
	"gopkg.in/yaml.v3"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentStaging     = "staging"
	EnvironmentProduction  = "production"

	minSecretKeyLength       = 32
	generatedSecretKeyLength = 48
	secretKeyAlphabet        = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var ErrInsecureSecretKey = errors.New("SECRET_KEY must be at least 32 random characters")

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Port            string `yaml:"port"`
	DBPath          string `yaml:"db_path"`
	TimeZone        string `yaml:"tz"`
	SecretKey       string `yaml:"secret_key"`
	Environment     string `yaml:"environment"`
	LogLevel        string `yaml:"log_level"`
	DefaultLanguage string `yaml:"default_language"`
	TelegramToken   string `yaml:"telegram_token"`
	ReminderCron    string `yaml:"reminder_cron"`
	CookieSecure    bool   `yaml:"cookie_secure"`

	Location           *time.Location `yaml:"-"`
	SecretKeyGenerated bool           `yaml:"-"`
}

type LookupFunc func(key string) (string, bool)

func Defaults() Config {
	return Config{
		Port:            "8080",
		DBPath:          filepath.Join("data", "wellnest.db"),
		TimeZone:        "UTC",
		Environment:     EnvironmentDevelopment,
		LogLevel:        "info",
		DefaultLanguage: "en",
		ReminderCron:    "0 9 * * *",
	}
}

// Load reads .env (never overriding variables already set) and resolves the
// configuration from the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return LoadFrom(os.LookupEnv)
}

func LoadFrom(lookup LookupFunc) (Config, error) {
	cfg := Defaults()

	if path, ok := lookupTrimmed(lookup, "CONFIG_FILE"); ok {
		if err := cfg.mergeYAMLFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(lookup); err != nil {
		return Config{}, err
	}
	if err := cfg.finalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) IsProduction() bool {
	return cfg.Environment == EnvironmentProduction || cfg.Environment == EnvironmentStaging
}

func (cfg *Config) mergeYAMLFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (cfg *Config) mergeEnv(lookup LookupFunc) error {
	stringKeys := map[string]*string{
		"PORT":             &cfg.Port,
		"DB_PATH":          &cfg.DBPath,
		"TZ":               &cfg.TimeZone,
		"SECRET_KEY":       &cfg.SecretKey,
		"ENVIRONMENT":      &cfg.Environment,
		"LOG_LEVEL":        &cfg.LogLevel,
		"DEFAULT_LANGUAGE": &cfg.DefaultLanguage,
		"TELEGRAM_TOKEN":   &cfg.TelegramToken,
		"REMINDER_CRON":    &cfg.ReminderCron,
	}
	for key, target := range stringKeys {
		if value, ok := lookupTrimmed(lookup, key); ok {
			*target = value
		}
	}

	if raw, ok := lookupTrimmed(lookup, "COOKIE_SECURE"); ok {
		secure, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid COOKIE_SECURE %q: %w", raw, err)
		}
		cfg.CookieSecure = secure
	}
	return nil
}

func (cfg *Config) finalize() error {
	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.DefaultLanguage = strings.ToLower(strings.TrimSpace(cfg.DefaultLanguage))

	location, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid TZ %q: %w", cfg.TimeZone, err)
	}
	cfg.Location = location

	if _, err := cron.ParseStandard(cfg.ReminderCron); err != nil {
		return fmt.Errorf("invalid REMINDER_CRON %q: %w", cfg.ReminderCron, err)
	}

	secret, generated, err := resolveSecretKey(cfg.SecretKey, cfg.Environment)
	if err != nil {
		return err
	}
	cfg.SecretKey = secret
	cfg.SecretKeyGenerated = generated
	return nil
}

// resolveSecretKey validates the configured signing key. Development runs
// without a key get a random one, which invalidates sessions on restart.
func resolveSecretKey(raw string, environment string) (string, bool, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" && environment == EnvironmentDevelopment {
		generated, err := security.RandomString(generatedSecretKeyLength, secretKeyAlphabet)
		if err != nil {
			return "", false, fmt.Errorf("generate secret key: %w", err)
		}
		return generated, true, nil
	}
	if _, insecure := insecureSecretKeys[secret]; insecure || len(secret) < minSecretKeyLength {
		return "", false, ErrInsecureSecretKey
	}
	return secret, false, nil
}

func lookupTrimmed(lookup LookupFunc, key string) (string, bool) {
	value, ok := lookup(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}
