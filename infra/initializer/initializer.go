// Package initializer wires configuration, storage, providers, and services
// into a runnable application.
package initializer

import (
	"fmt"

	infraprovider "github.com/valutatrade/valutatrade-hub/infra/provider"
	"github.com/valutatrade/valutatrade-hub/infra/store"
	"github.com/valutatrade/valutatrade-hub/pkg/app"
	"github.com/valutatrade/valutatrade-hub/pkg/config"
	"github.com/valutatrade/valutatrade-hub/pkg/currency"
	"github.com/valutatrade/valutatrade-hub/pkg/provider"
	"github.com/valutatrade/valutatrade-hub/pkg/service/auth"
	"github.com/valutatrade/valutatrade-hub/pkg/service/portfolio"
	"github.com/valutatrade/valutatrade-hub/pkg/service/rates"
	"github.com/valutatrade/valutatrade-hub/pkg/service/user"
)

// InitializeDependencies builds the full application from configuration.
func InitializeDependencies(cfg *config.App) (*app.App, error) {
	logger := setupLogger(&cfg.Log)

	fileStore, err := store.New(cfg.Data.Dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize data store: %w", err)
	}

	registry := currency.NewRegistry()

	base := cfg.Rates.BaseCurrency
	providers := []provider.RatesProvider{
		infraprovider.NewCoinGecko(cfg.Providers.CoinGecko, base, logger),
		infraprovider.NewExchangeRateAPI(cfg.Providers.ExchangeRate, base, logger),
	}

	updater := rates.NewUpdater(fileStore, providers, logger)
	resolver := rates.NewResolver(fileStore, updater, registry, cfg.Rates, logger)

	return &app.App{
		Config:   cfg,
		Logger:   logger,
		Registry: registry,
		Store:    fileStore,

		Updater:  updater,
		Resolver: resolver,

		UserService:      user.New(fileStore, logger),
		AuthService:      auth.New(&cfg.Jwt, logger),
		PortfolioService: portfolio.New(fileStore, resolver, registry, base, logger),
	}, nil
}
