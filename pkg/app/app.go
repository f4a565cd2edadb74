// Package app bundles the assembled application components.
package app

import (
	"log/slog"

	"github.com/valutatrade/valutatrade-hub/infra/store"
	"github.com/valutatrade/valutatrade-hub/pkg/config"
	"github.com/valutatrade/valutatrade-hub/pkg/currency"
	"github.com/valutatrade/valutatrade-hub/pkg/service/auth"
	"github.com/valutatrade/valutatrade-hub/pkg/service/portfolio"
	"github.com/valutatrade/valutatrade-hub/pkg/service/rates"
	"github.com/valutatrade/valutatrade-hub/pkg/service/user"
)

// App holds every wired component of the application. Both the CLI and the
// HTTP server are thin layers over it.
type App struct {
	Config   *config.App
	Logger   *slog.Logger
	Registry *currency.Registry
	Store    *store.FileStore

	Updater  *rates.Updater
	Resolver *rates.Resolver

	UserService      *user.Service
	AuthService      *auth.Service
	PortfolioService *portfolio.Service
}
