package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment, loading a .env file first
// when one exists.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	if len(envFilePath) == 0 {
		if err := godotenv.Load(); err != nil {
			logger.Warn("No .env file found, using system environment variables")
		}
	} else {
		for _, path := range envFilePath {
			if err := godotenv.Load(path); err != nil {
				logger.Debug("Environment file not found", "path", path, "error", err)
				continue
			}
			logger.Info("Environment loaded from file", "path", path)
			break
		}
	}

	var cfg App
	if err := envconfig.Process("VALUTATRADE", &cfg); err != nil {
		return nil, err
	}

	logger.Info("App config loaded",
		"env", cfg.Env,
		"data_dir", cfg.Data.Dir,
		"rates_ttl", cfg.Rates.TTL,
		"base_currency", cfg.Rates.BaseCurrency,
		"coingecko_url", cfg.Providers.CoinGecko.ApiUrl,
		"exchangerate_url", cfg.Providers.ExchangeRate.ApiUrl,
		"exchangerate_key", maskValue(cfg.Providers.ExchangeRate.ApiKey),
		"jwt_expiry", cfg.Jwt.Expiry,
	)
	return &cfg, nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
