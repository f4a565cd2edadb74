// Package currency exposes the currency registry over HTTP.
package currency

import (
	"github.com/gofiber/fiber/v2"

	"github.com/valutatrade/valutatrade-hub/pkg/currency"
	"github.com/valutatrade/valutatrade-hub/webapi/common"
)

// CurrencyView is one registry entry in API responses.
type CurrencyView struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Display string `json:"display"`
}

// Routes registers the public currency endpoints.
func Routes(app *fiber.App, registry *currency.Registry) {
	app.Get("/api/currencies", ListCurrencies(registry))
	app.Get("/api/currencies/:code", GetCurrency(registry))
}

// ListCurrencies returns every registered currency, sorted by code.
func ListCurrencies(registry *currency.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		all := registry.List()
		out := make([]CurrencyView, 0, len(all))
		for _, cur := range all {
			out = append(out, CurrencyView{
				Code:    cur.Code,
				Name:    cur.Name,
				Kind:    string(cur.Kind),
				Display: cur.DisplayInfo(),
			})
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currencies fetched", out)
	}
}

// GetCurrency returns one registry entry by code.
func GetCurrency(registry *currency.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cur, err := registry.Get(c.Params("code"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Currency not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currency fetched", CurrencyView{
			Code:    cur.Code,
			Name:    cur.Name,
			Kind:    string(cur.Kind),
			Display: cur.DisplayInfo(),
		})
	}
}
