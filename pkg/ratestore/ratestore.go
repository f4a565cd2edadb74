// Package ratestore defines the persistence contract for the rate cache
// snapshot and the append-only history log.
package ratestore

import (
	"github.com/valutatrade/valutatrade-hub/pkg/domain"
)

// Store owns the current-snapshot file. The update orchestrator is its only
// writer; the resolution engine is a read-only consumer.
type Store interface {
	// LoadSnapshot returns the persisted snapshot. A missing or corrupt
	// backing file reads as an empty snapshot, not an error.
	LoadSnapshot() (*domain.RateSnapshot, error)

	// SaveRates atomically replaces the snapshot with a fresh one built
	// from the given mapping, stamping every pair and last_refresh with
	// the current time.
	SaveRates(rates map[string]float64, source string) error

	// AppendHistory appends one record to the history log. Records are
	// never mutated or deleted.
	AppendHistory(rec domain.HistoryRecord) error

	// LoadHistory returns all history records, oldest first. A missing or
	// corrupt log reads as empty.
	LoadHistory() ([]domain.HistoryRecord, error)
}
