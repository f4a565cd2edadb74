// Package provider implements the external rate source clients.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/valutatrade/valutatrade-hub/pkg/config"
	"github.com/valutatrade/valutatrade-hub/pkg/domain"
	"github.com/valutatrade/valutatrade-hub/pkg/provider"
)

const coinGeckoName = "CoinGecko"

// CoinGeckoProvider fetches crypto asset prices against a single base
// currency from the CoinGecko simple-price endpoint. A call either yields
// all configured rates or fails with a ProviderError; there are no partial
// results on failure.
type CoinGeckoProvider struct {
	cfg          config.CoinGecko
	baseCurrency string
	httpClient   *http.Client
	logger       *slog.Logger
}

// NewCoinGecko creates a CoinGecko provider from configuration.
func NewCoinGecko(cfg config.CoinGecko, baseCurrency string, logger *slog.Logger) *CoinGeckoProvider {
	return &CoinGeckoProvider{
		cfg:          cfg,
		baseCurrency: strings.ToUpper(baseCurrency),
		httpClient:   &http.Client{Timeout: cfg.HTTPTimeout},
		logger:       logger,
	}
}

// Name implements provider.RatesProvider.
func (p *CoinGeckoProvider) Name() string { return coinGeckoName }

// Kind implements provider.RatesProvider.
func (p *CoinGeckoProvider) Kind() provider.Kind { return provider.KindCrypto }

// PairMeta attaches the CoinGecko asset id to history records.
func (p *CoinGeckoProvider) PairMeta(pairKey string) map[string]any {
	from, _, ok := domain.SplitPairKey(pairKey)
	if !ok {
		return nil
	}
	id, ok := p.cfg.IDMap[from]
	if !ok {
		return nil
	}
	return map[string]any{"raw_id": id}
}

// FetchRates queries the simple-price endpoint for all configured assets.
func (p *CoinGeckoProvider) FetchRates(ctx context.Context) (map[string]float64, error) {
	var ids []string
	for _, code := range p.cfg.Currencies {
		if id, ok := p.cfg.IDMap[code]; ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		p.logger.Warn("No crypto currencies configured")
		return map[string]float64{}, nil
	}

	vs := strings.ToLower(p.baseCurrency)
	reqURL := fmt.Sprintf("%s?ids=%s&vs_currencies=%s",
		p.cfg.ApiUrl, url.QueryEscape(strings.Join(ids, ",")), vs)

	p.logger.Info("Fetching rates from CoinGecko", "url", reqURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &domain.ProviderError{Provider: coinGeckoName, Err: err}
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, &domain.ProviderError{Provider: coinGeckoName, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.ProviderError{
			Provider: coinGeckoName,
			Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	// Response shape: {"bitcoin": {"usd": 59337.21}, ...}
	var payload map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &domain.ProviderError{
			Provider: coinGeckoName,
			Err:      fmt.Errorf("decoding response: %w", err),
		}
	}

	rates := make(map[string]float64)
	for _, code := range p.cfg.Currencies {
		id, ok := p.cfg.IDMap[code]
		if !ok {
			continue
		}
		quote, ok := payload[id]
		if !ok {
			continue
		}
		rate, ok := quote[vs]
		if !ok {
			continue
		}
		rates[domain.PairKey(code, p.baseCurrency)] = rate
	}

	p.logger.Info("Fetched rates from CoinGecko", "count", len(rates))
	return rates, nil
}
