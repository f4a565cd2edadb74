package domain

import (
	"strings"
	"time"
)

// CachedRate is one directed currency pair in the rate cache snapshot.
// Rate is always positive; a stored zero means the file was corrupted
// and readers must not divide by it.
type CachedRate struct {
	Rate      float64   `json:"rate"`
	UpdatedAt time.Time `json:"updated_at"`
	Source    string    `json:"source"`
}

// RateSnapshot is the full content of the rate cache file. A pair may be
// stored in one direction only; the inverse is derived on demand.
type RateSnapshot struct {
	Pairs       map[string]CachedRate `json:"pairs"`
	LastRefresh *time.Time            `json:"last_refresh,omitempty"`
}

// EmptyRateSnapshot is what a missing or corrupt cache file reads as.
func EmptyRateSnapshot() *RateSnapshot {
	return &RateSnapshot{Pairs: map[string]CachedRate{}}
}

// PairKey builds the canonical "FROM_TO" cache key.
func PairKey(from, to string) string {
	return strings.ToUpper(from) + "_" + strings.ToUpper(to)
}

// SplitPairKey is the inverse of PairKey. The second result is false for
// keys that are not of the "FROM_TO" form.
func SplitPairKey(key string) (from, to string, ok bool) {
	from, to, ok = strings.Cut(key, "_")
	if !ok || from == "" || to == "" {
		return "", "", false
	}
	return from, to, true
}

// HistoryRecord is one append-only entry in the exchange rate history log.
// Records are never mutated or deleted after append.
type HistoryRecord struct {
	ID           string         `json:"id"`
	FromCurrency string         `json:"from_currency"`
	ToCurrency   string         `json:"to_currency"`
	Rate         float64        `json:"rate"`
	Timestamp    time.Time      `json:"timestamp"`
	Source       string         `json:"source"`
	Meta         map[string]any `json:"meta"`
}
