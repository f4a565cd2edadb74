// Package webapi assembles the HTTP application. Route handlers live in
// sub-packages:
// - auth: registration and login
// - rates: pair lookup, listing, refresh
// - currency: the currency registry
// - portfolio: wallets and trading
package webapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/valutatrade/valutatrade-hub/pkg/config"
	"github.com/valutatrade/valutatrade-hub/pkg/currency"
	"github.com/valutatrade/valutatrade-hub/pkg/ratestore"
	authsvc "github.com/valutatrade/valutatrade-hub/pkg/service/auth"
	portfoliosvc "github.com/valutatrade/valutatrade-hub/pkg/service/portfolio"
	usersvc "github.com/valutatrade/valutatrade-hub/pkg/service/user"
	authweb "github.com/valutatrade/valutatrade-hub/webapi/auth"
	"github.com/valutatrade/valutatrade-hub/webapi/common"
	currencyweb "github.com/valutatrade/valutatrade-hub/webapi/currency"
	portfolioweb "github.com/valutatrade/valutatrade-hub/webapi/portfolio"
	ratesweb "github.com/valutatrade/valutatrade-hub/webapi/rates"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	Config       *config.App
	Registry     *currency.Registry
	Store        ratestore.Store
	Resolver     ratesweb.RateResolver
	Refresher    ratesweb.Refresher
	UserSvc      *usersvc.Service
	AuthSvc      *authsvc.Service
	PortfolioSvc *portfoliosvc.Service
}

// SetupApp initializes Fiber with rate limiting, panic recovery, and all
// routes.
func SetupApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return common.ProblemDetailsJSON(c, fe.Message, nil, fe.Code)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	// X-Forwarded-For is trusted first so limits apply per client behind a
	// proxy.
	app.Use(limiter.New(limiter.Config{
		Max:        deps.Config.Server.RateLimitMax,
		Expiration: deps.Config.Server.RateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", nil,
				"Rate limit exceeded", fiber.StatusTooManyRequests)
		},
	}))
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ValutaTrade Hub API is running")
	})

	authweb.Routes(app, deps.UserSvc, deps.AuthSvc)
	currencyweb.Routes(app, deps.Registry)
	ratesweb.Routes(app, deps.Resolver, deps.Refresher, deps.Store, deps.Config)
	portfolioweb.Routes(app, deps.PortfolioSvc, deps.AuthSvc, deps.Config)

	return app
}
