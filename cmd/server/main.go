package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/valutatrade/valutatrade-hub/infra/initializer"
	"github.com/valutatrade/valutatrade-hub/pkg/config"
	"github.com/valutatrade/valutatrade-hub/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	a, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	a.Logger.Info("starting server",
		"env", cfg.Env,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	fiberApp := webapi.SetupApp(webapi.Deps{
		Config:       cfg,
		Registry:     a.Registry,
		Store:        a.Store,
		Resolver:     a.Resolver,
		Refresher:    a.Updater,
		UserSvc:      a.UserService,
		AuthSvc:      a.AuthService,
		PortfolioSvc: a.PortfolioService,
	})

	return fiberApp.Listen(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
}
