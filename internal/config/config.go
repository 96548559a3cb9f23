package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	RedisURL           string
	CORSAllowedOrigins []string

	// Persistence keys in the key-value store.
	CatalogKey     string
	CustomersKey   string
	QuoteNumberKey string

	// Quote session defaults.
	QuoteNumberSeed    int64
	DefaultTaxPct      decimal.Decimal
	DefaultDiscountPct decimal.Decimal
	DefaultTerms       string

	// Company block rendered on every exported document.
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		RedisURL:           k.String("REDIS_URL"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		CatalogKey:         valueOrDefault(k.String("CATALOG_STORAGE_KEY"), "catalog:materials"),
		CustomersKey:       valueOrDefault(k.String("CUSTOMERS_STORAGE_KEY"), "quotes:customers"),
		QuoteNumberKey:     valueOrDefault(k.String("QUOTE_NUMBER_KEY"), "quotes:number"),
		QuoteNumberSeed:    parseInt64(k.String("QUOTE_NUMBER_SEED"), 13801),
		DefaultTaxPct:      parseDecimal(k.String("QUOTE_DEFAULT_TAX_PCT"), "21"),
		DefaultDiscountPct: parseDecimal(k.String("QUOTE_DEFAULT_DISCOUNT_PCT"), "0"),
		DefaultTerms: valueOrDefault(k.String("QUOTE_DEFAULT_TERMS"),
			"Duración del trabajo: 2 DIAS\nAdelanto el 50% y el resto al finalizar el trabajo"),
		CompanyName:    valueOrDefault(k.String("COMPANY_NAME"), "Pisos Industriales S.A."),
		CompanyAddress: valueOrDefault(k.String("COMPANY_ADDRESS"), "Av. Industrial 1234, CABA"),
		CompanyPhone:   valueOrDefault(k.String("COMPANY_PHONE"), "(011) 1234-5678"),
		CompanyEmail:   valueOrDefault(k.String("COMPANY_EMAIL"), "contacto@pisosindustriales.com.ar"),
	}

	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseInt64(value string, fallback int64) int64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	var parsed int64
	if _, err := fmt.Sscanf(trimmed, "%d", &parsed); err != nil {
		return fallback
	}
	return parsed
}

func parseDecimal(value, fallback string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.RequireFromString(fallback)
	}
	return d
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
