// Package portfolio exposes wallet and trading endpoints.
package portfolio

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/valutatrade/valutatrade-hub/pkg/config"
	"github.com/valutatrade/valutatrade-hub/pkg/middleware"
	authsvc "github.com/valutatrade/valutatrade-hub/pkg/service/auth"
	portfoliosvc "github.com/valutatrade/valutatrade-hub/pkg/service/portfolio"
	"github.com/valutatrade/valutatrade-hub/webapi/common"
)

// TradeInput is the request body for POST /api/trade/buy and /api/trade/sell.
type TradeInput struct {
	Currency string  `json:"currency" validate:"required,alpha,min=2,max=5"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

// Routes registers the authenticated portfolio and trading endpoints.
func Routes(app *fiber.App, svc *portfoliosvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(&cfg.Jwt)
	app.Get("/api/portfolio", protected, GetPortfolio(svc, authSvc, cfg))
	app.Post("/api/trade/buy", protected, Buy(svc, authSvc))
	app.Post("/api/trade/sell", protected, Sell(svc, authSvc))
}

func currentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, false
	}
	id, err := authSvc.CurrentUserID(token)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetPortfolio returns the caller's wallets and their total value in the
// configured base currency.
func GetPortfolio(svc *portfoliosvc.Service, authSvc *authsvc.Service, cfg *config.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		p, err := svc.Get(userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load portfolio", err)
		}
		base := cfg.Rates.BaseCurrency
		total, err := svc.TotalValue(c.Context(), userID, base)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to value portfolio", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Portfolio fetched", fiber.Map{
			"wallets":       p.Wallets,
			"total_value":   total,
			"base_currency": base,
		})
	}
}

// Buy executes a buy for the caller.
func Buy(svc *portfoliosvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return trade(authSvc, "Buy executed", svc.Buy)
}

// Sell executes a sell for the caller.
func Sell(svc *portfoliosvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return trade(authSvc, "Sell executed", svc.Sell)
}

func trade(
	authSvc *authsvc.Service,
	message string,
	op func(ctx context.Context, userID uuid.UUID, code string, amount float64) (*portfoliosvc.TradeResult, error),
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUserID(c, authSvc)
		if !ok {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[TradeInput](c)
		if input == nil {
			return err
		}
		res, err := op(c.Context(), userID, input.Currency, input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Trade failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, message, res)
	}
}
