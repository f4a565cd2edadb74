package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/valutatrade/valutatrade-hub/pkg/config"
	"github.com/valutatrade/valutatrade-hub/pkg/domain"
	"github.com/valutatrade/valutatrade-hub/pkg/provider"
)

const exchangeRateAPIName = "ExchangeRate-API"

// ExchangeRateAPIProvider fetches fiat conversion rates from the
// exchangerate-api.com v6 endpoint. Unlike the crypto provider it never
// fails: any transport, status, or payload problem degrades to the embedded
// demo-rate table, so callers always receive some fiat rates.
type ExchangeRateAPIProvider struct {
	cfg          config.ExchangeRateApi
	baseCurrency string
	httpClient   *http.Client
	logger       *slog.Logger
}

// exchangeRateAPIResponse is the v6 standard-request envelope.
// See: https://www.exchangerate-api.com/docs/standard-requests
type exchangeRateAPIResponse struct {
	Result          string             `json:"result"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
	ErrorType       string             `json:"error-type,omitempty"`
}

// NewExchangeRateAPI creates an ExchangeRate-API provider from configuration.
func NewExchangeRateAPI(cfg config.ExchangeRateApi, baseCurrency string, logger *slog.Logger) *ExchangeRateAPIProvider {
	return &ExchangeRateAPIProvider{
		cfg:          cfg,
		baseCurrency: strings.ToUpper(baseCurrency),
		httpClient:   &http.Client{Timeout: cfg.HTTPTimeout},
		logger:       logger,
	}
}

// Name implements provider.RatesProvider.
func (p *ExchangeRateAPIProvider) Name() string { return exchangeRateAPIName }

// Kind implements provider.RatesProvider.
func (p *ExchangeRateAPIProvider) Kind() provider.Kind { return provider.KindFiat }

// FetchRates queries the conversion table for the base currency and maps the
// configured fiat codes to "<CODE>_<BASE>" pairs.
func (p *ExchangeRateAPIProvider) FetchRates(ctx context.Context) (map[string]float64, error) {
	reqURL := fmt.Sprintf("%s/%s/latest/%s", p.cfg.ApiUrl, p.cfg.ApiKey, p.baseCurrency)
	p.logger.Info("Fetching rates from ExchangeRate-API", "base", p.baseCurrency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return p.demoFallback("building request", err), nil
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return p.demoFallback("request failed", err), nil
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return p.demoFallback("unexpected status", fmt.Errorf("status %d", resp.StatusCode)), nil
	}

	var payload exchangeRateAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return p.demoFallback("decoding response", err), nil
	}
	if payload.Result != "success" {
		return p.demoFallback("API error", fmt.Errorf("result=%s error-type=%s", payload.Result, payload.ErrorType)), nil
	}

	rates := make(map[string]float64)
	for _, code := range p.cfg.Currencies {
		rate, ok := payload.ConversionRates[code]
		if !ok {
			p.logger.Warn("Currency missing from ExchangeRate-API response", "currency", code)
			continue
		}
		// The API quotes BASE->target; stored pairs are target_BASE.
		rates[domain.PairKey(code, p.baseCurrency)] = rate
	}

	p.logger.Info("Fetched rates from ExchangeRate-API", "count", len(rates))
	return rates, nil
}

// demoFallback is the degraded-mode branch: it logs the reason and returns
// the static demo table instead of an error.
func (p *ExchangeRateAPIProvider) demoFallback(reason string, err error) map[string]float64 {
	p.logger.Warn("ExchangeRate-API unavailable, using demo rates", "reason", reason, "error", err)
	return DemoRates()
}

// DemoRates returns the embedded static fiat table used when the live API is
// unreachable. Exposed so tests can assert on degraded-mode output.
func DemoRates() map[string]float64 {
	return map[string]float64{
		"EUR_USD": 1.0786,
		"GBP_USD": 1.2593,
		"JPY_USD": 0.0067,
		"CHF_USD": 1.1150,
		"RUB_USD": 0.01016,
	}
}
