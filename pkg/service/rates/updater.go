package rates

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/valutatrade/valutatrade-hub/pkg/domain"
	"github.com/valutatrade/valutatrade-hub/pkg/provider"
	"github.com/valutatrade/valutatrade-hub/pkg/ratestore"
)

// Updater orchestrates a rates refresh across all configured providers. Each
// provider is isolated: one failing never aborts the others, and the refresh
// saves whatever was collected. Only internal faults (storage) propagate.
type Updater struct {
	store     ratestore.Store
	providers []provider.RatesProvider
	logger    *slog.Logger

	// mu serializes the fetch/merge/save sequence for concurrent callers
	// (the web API); a single sequential CLI never contends on it.
	mu sync.Mutex
}

// NewUpdater creates an updater over the given providers.
func NewUpdater(store ratestore.Store, providers []provider.RatesProvider, logger *slog.Logger) *Updater {
	return &Updater{store: store, providers: providers, logger: logger}
}

// Refresh fetches rates from every provider matching source (all when source
// is empty), merges the successes last-writer-wins, and persists the merged
// mapping plus one history record per pair. When every provider fails or
// returns nothing, no save happens and the result is empty.
func (u *Updater) Refresh(ctx context.Context, source provider.Kind) (map[string]float64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.logger.Info("Starting rates update", "source", sourceLabel(source))
	merged := make(map[string]float64)

	for _, p := range u.providers {
		if source != "" && p.Kind() != source {
			continue
		}

		fetched, err := p.FetchRates(ctx)
		if err != nil {
			u.logger.Error("Provider update failed", "provider", p.Name(), "error", err)
			continue
		}

		for pair, rate := range fetched {
			merged[pair] = rate
			if err := u.appendHistory(p, pair, rate); err != nil {
				u.logger.Warn("Failed to append history record", "pair", pair, "error", err)
			}
		}
	}

	if len(merged) == 0 {
		u.logger.Warn("No rates were updated")
		return merged, nil
	}

	if err := u.store.SaveRates(merged, sourceLabel(source)); err != nil {
		return nil, err
	}
	u.logger.Info("Rates update completed", "total", len(merged))
	return merged, nil
}

func (u *Updater) appendHistory(p provider.RatesProvider, pair string, rate float64) error {
	from, to, ok := domain.SplitPairKey(pair)
	if !ok {
		return nil
	}
	meta := map[string]any{}
	if pm, hasMeta := p.(provider.PairMetadata); hasMeta {
		if m := pm.PairMeta(pair); m != nil {
			meta = m
		}
	}
	return u.store.AppendHistory(domain.HistoryRecord{
		ID:           uuid.NewString(),
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         rate,
		Timestamp:    time.Now(),
		Source:       p.Name(),
		Meta:         meta,
	})
}

func sourceLabel(source provider.Kind) string {
	if source == "" {
		return "all"
	}
	return string(source)
}
