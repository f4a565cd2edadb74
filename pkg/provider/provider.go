// Package provider defines the contract external rate sources implement.
package provider

import "context"

// Kind selects a provider family when refreshing. An empty Kind means all.
type Kind string

const (
	KindCrypto Kind = "crypto"
	KindFiat   Kind = "fiat"
)

// RatesProvider fetches a partial pair-key -> rate mapping from one external
// source. Absence of a pair means the source did not supply it. A provider
// either returns rates or an error, never both.
type RatesProvider interface {
	// Name is the source label recorded in the cache and history.
	Name() string
	// Kind reports which provider family this source belongs to.
	Kind() Kind
	// FetchRates performs one blocking fetch with a bounded timeout.
	FetchRates(ctx context.Context) (map[string]float64, error)
}

// PairMetadata is implemented by providers that attach extra metadata to
// history records, such as the source's internal asset identifier.
type PairMetadata interface {
	PairMeta(pairKey string) map[string]any
}
