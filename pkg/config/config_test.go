package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valutatrade/valutatrade-hub/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, 300*time.Second, cfg.Rates.TTL)
	assert.Equal(t, "USD", cfg.Rates.BaseCurrency)
	assert.Equal(t, []string{"BTC", "ETH", "LTC", "ADA"}, cfg.Providers.CoinGecko.Currencies)
	assert.Equal(t, "bitcoin", cfg.Providers.CoinGecko.IDMap["BTC"])
	assert.Equal(t, 10*time.Second, cfg.Providers.ExchangeRate.HTTPTimeout)
	assert.Contains(t, cfg.Providers.ExchangeRate.Currencies, "EUR")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("VALUTATRADE_RATES_TTL", "90s")
	t.Setenv("VALUTATRADE_RATES_BASE_CURRENCY", "EUR")
	t.Setenv("VALUTATRADE_DATA_DIR", t.TempDir())

	cfg, err := config.Load("nonexistent.env")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Rates.TTL)
	assert.Equal(t, "EUR", cfg.Rates.BaseCurrency)
}
