// Package rates implements the rate resolution engine and the update
// orchestrator that sits between trading operations and the rate cache.
package rates

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valutatrade/valutatrade-hub/pkg/config"
	"github.com/valutatrade/valutatrade-hub/pkg/currency"
	"github.com/valutatrade/valutatrade-hub/pkg/domain"
	"github.com/valutatrade/valutatrade-hub/pkg/provider"
	"github.com/valutatrade/valutatrade-hub/pkg/ratestore"
)

// Refresher triggers a rates update; implemented by Updater.
type Refresher interface {
	Refresh(ctx context.Context, source provider.Kind) (map[string]float64, error)
}

// Resolver answers "what is the rate from X to Y right now". It reads the
// persisted snapshot on every call (no long-lived in-memory cache) so that
// refreshes from concurrent processes are always observed, derives inverse
// and base-bridged cross rates on demand, and falls back to a single refresh
// when the cache is stale or missing.
type Resolver struct {
	store     ratestore.Store
	refresher Refresher
	registry  *currency.Registry
	cfg       config.Rates
	logger    *slog.Logger
}

// NewResolver creates a resolution engine over the given store and refresher.
func NewResolver(
	store ratestore.Store,
	refresher Refresher,
	registry *currency.Registry,
	cfg config.Rates,
	logger *slog.Logger,
) *Resolver {
	return &Resolver{
		store:     store,
		refresher: refresher,
		registry:  registry,
		cfg:       cfg,
		logger:    logger,
	}
}

// Resolve returns the exchange rate for from->to and the timestamp it was
// last updated. Both codes must be registered; an identity pair resolves to
// 1.0 without touching the cache. Lookup order is direct pair, inverse pair,
// then triangulation through the base currency; a stale or missing candidate
// triggers one refresh and one retry before giving up with RateUnavailable.
func (r *Resolver) Resolve(ctx context.Context, from, to string) (float64, time.Time, error) {
	fromCode := strings.ToUpper(strings.TrimSpace(from))
	toCode := strings.ToUpper(strings.TrimSpace(to))

	// Both sides are validated before any file I/O.
	if _, err := r.registry.Get(fromCode); err != nil {
		return 0, time.Time{}, err
	}
	if _, err := r.registry.Get(toCode); err != nil {
		return 0, time.Time{}, err
	}

	if fromCode == toCode {
		return 1.0, time.Now(), nil
	}

	snap, err := r.store.LoadSnapshot()
	if err != nil {
		return 0, time.Time{}, err
	}
	if rate, updatedAt, found := r.lookup(snap, fromCode, toCode); found && r.isFresh(updatedAt) {
		return rate, updatedAt, nil
	}

	r.logger.Info("Rate missing or stale, refreshing from providers",
		"from", fromCode, "to", toCode)
	if _, err := r.refresher.Refresh(ctx, ""); err != nil {
		return 0, time.Time{}, err
	}

	// One retry against the newly saved snapshot; whatever the refresh
	// produced is accepted without a second freshness check.
	snap, err = r.store.LoadSnapshot()
	if err != nil {
		return 0, time.Time{}, err
	}
	if rate, updatedAt, found := r.lookup(snap, fromCode, toCode); found {
		r.logger.Info("Rate resolved after refresh", "from", fromCode, "to", toCode, "rate", rate)
		return rate, updatedAt, nil
	}

	return 0, time.Time{}, &domain.RateUnavailableError{From: fromCode, To: toCode}
}

// lookup tries direct, inverse, and base-triangulated candidates in order.
func (r *Resolver) lookup(snap *domain.RateSnapshot, from, to string) (float64, time.Time, bool) {
	if cached, ok := snap.Pairs[domain.PairKey(from, to)]; ok {
		return cached.Rate, cached.UpdatedAt, true
	}

	if cached, ok := snap.Pairs[domain.PairKey(to, from)]; ok {
		if cached.Rate == 0 {
			// Store invariant is rate > 0; a zero here is file corruption.
			r.logger.Warn("Corrupt zero rate in cache, ignoring pair",
				"pair", domain.PairKey(to, from))
		} else {
			return 1 / cached.Rate, cached.UpdatedAt, true
		}
	}

	base := strings.ToUpper(r.cfg.BaseCurrency)
	if from == base || to == base {
		return 0, time.Time{}, false
	}
	fromBase, okFrom := snap.Pairs[domain.PairKey(from, base)]
	toBase, okTo := snap.Pairs[domain.PairKey(to, base)]
	if !okFrom || !okTo || fromBase.Rate == 0 || toBase.Rate == 0 {
		return 0, time.Time{}, false
	}
	// Derived cross rate gets a fresh timestamp: its freshness is judged by
	// derivation time, not by the age of its legs.
	return toBase.Rate / fromBase.Rate, time.Now(), true
}

// isFresh applies the strict TTL window: a candidate exactly at the boundary
// is already stale.
func (r *Resolver) isFresh(updatedAt time.Time) bool {
	return time.Since(updatedAt) < r.cfg.TTL
}
