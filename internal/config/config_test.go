package config_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rhpisos/quoting-api/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"REDIS_URL":                  "redis://localhost:6379/0",
		"PORT":                       "",
		"QUOTE_NUMBER_SEED":          "",
		"QUOTE_DEFAULT_TAX_PCT":      "",
		"QUOTE_DEFAULT_DISCOUNT_PCT": "",
	})
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, "catalog:materials", cfg.CatalogKey)
	require.Equal(t, int64(13801), cfg.QuoteNumberSeed)
	require.True(t, cfg.DefaultTaxPct.Equal(decimal.NewFromInt(21)))
	require.True(t, cfg.DefaultDiscountPct.IsZero())
	require.NotEmpty(t, cfg.DefaultTerms)
	require.Equal(t, "Pisos Industriales S.A.", cfg.CompanyName)
}

func TestLoadRequiresRedisURL(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{
		"REDIS_URL": "",
	})
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"REDIS_URL":             "redis://localhost:6379/1",
		"PORT":                  "9090",
		"QUOTE_NUMBER_SEED":     "20000",
		"QUOTE_DEFAULT_TAX_PCT": "10.5",
		"CORS_ALLOWED_ORIGINS":  "https://quotes.example.com, https://admin.example.com",
	})
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.Equal(t, int64(20000), cfg.QuoteNumberSeed)
	require.True(t, cfg.DefaultTaxPct.Equal(decimal.RequireFromString("10.5")))
	require.Equal(t, []string{"https://quotes.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
}
