// Package rates exposes rate lookup and refresh endpoints.
package rates

import (
	"context"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/valutatrade/valutatrade-hub/pkg/config"
	"github.com/valutatrade/valutatrade-hub/pkg/domain"
	"github.com/valutatrade/valutatrade-hub/pkg/middleware"
	"github.com/valutatrade/valutatrade-hub/pkg/provider"
	"github.com/valutatrade/valutatrade-hub/pkg/ratestore"
	"github.com/valutatrade/valutatrade-hub/webapi/common"
)

// RateResolver answers pair lookups; implemented by rates.Resolver.
type RateResolver interface {
	Resolve(ctx context.Context, from, to string) (float64, time.Time, error)
}

// Refresher pulls fresh rates from the providers; implemented by
// rates.Updater.
type Refresher interface {
	Refresh(ctx context.Context, source provider.Kind) (map[string]float64, error)
}

// RefreshInput is the request body for POST /api/rates/refresh.
type RefreshInput struct {
	Source string `json:"source" validate:"omitempty,oneof=crypto fiat"`
}

// PairView is one cached pair in the GET /api/rates listing.
type PairView struct {
	Pair      string    `json:"pair"`
	Rate      float64   `json:"rate"`
	UpdatedAt time.Time `json:"updated_at"`
	Source    string    `json:"source"`
}

// Routes registers rate endpoints. Lookup and listing are public; refresh is
// authenticated since it spends provider quota.
func Routes(app *fiber.App, resolver RateResolver, refresher Refresher, store ratestore.Store, cfg *config.App) {
	app.Get("/api/rates", ListRates(store))
	app.Get("/api/rates/:from/:to", GetRate(resolver))
	app.Post("/api/rates/refresh", middleware.JwtProtected(&cfg.Jwt), RefreshRates(refresher))
}

// GetRate resolves a single currency pair.
func GetRate(resolver RateResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from := c.Params("from")
		to := c.Params("to")
		rate, updatedAt, err := resolver.Resolve(c.Context(), from, to)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Rate lookup failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rate resolved", fiber.Map{
			"pair":       domain.PairKey(from, to),
			"rate":       rate,
			"updated_at": updatedAt,
		})
	}
}

// ListRates returns the persisted snapshot, sorted by pair key.
func ListRates(store ratestore.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snapshot, err := store.LoadSnapshot()
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load rates", err)
		}
		pairs := make([]PairView, 0, len(snapshot.Pairs))
		for key, cached := range snapshot.Pairs {
			pairs = append(pairs, PairView{
				Pair:      key,
				Rate:      cached.Rate,
				UpdatedAt: cached.UpdatedAt,
				Source:    cached.Source,
			})
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].Pair < pairs[j].Pair })
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rates fetched", fiber.Map{
			"pairs":        pairs,
			"last_refresh": snapshot.LastRefresh,
		})
	}
}

// RefreshRates pulls fresh rates from the configured providers. An empty
// source refreshes everything.
func RefreshRates(refresher Refresher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// An empty body means "refresh everything".
		input := &RefreshInput{}
		if len(c.Body()) > 0 {
			var err error
			input, err = common.BindAndValidate[RefreshInput](c)
			if input == nil {
				return err
			}
		}
		merged, err := refresher.Refresh(c.Context(), provider.Kind(input.Source))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Refresh failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rates refreshed", fiber.Map{
			"updated": len(merged),
		})
	}
}
