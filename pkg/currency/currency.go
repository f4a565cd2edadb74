// Package currency holds the registry of currencies the ledger knows how to
// trade. Lookups against unknown codes fail before any cache or network I/O.
package currency

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/valutatrade/valutatrade-hub/pkg/domain"
)

// Kind distinguishes fiat currencies from crypto assets.
type Kind string

const (
	Fiat   Kind = "fiat"
	Crypto Kind = "crypto"
)

// Currency is one registry entry. IssuingCountry is set for fiat entries,
// Algorithm and MarketCap for crypto entries.
type Currency struct {
	Code           string
	Name           string
	Kind           Kind
	IssuingCountry string
	Algorithm      string
	MarketCap      float64
}

// DisplayInfo renders the entry for CLI output and logs.
func (c Currency) DisplayInfo() string {
	if c.Kind == Crypto {
		return fmt.Sprintf("[CRYPTO] %s — %s (Algo: %s, MCAP: %.2e)",
			c.Code, c.Name, c.Algorithm, c.MarketCap)
	}
	return fmt.Sprintf("[FIAT] %s — %s (Issuing: %s)", c.Code, c.Name, c.IssuingCountry)
}

// ValidateCode checks the 2-5 letter alphabetic code rule.
func ValidateCode(code string) error {
	if len(code) < 2 || len(code) > 5 {
		return fmt.Errorf("currency code must be 2-5 characters long, got %q", code)
	}
	for _, r := range code {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return fmt.Errorf("currency code must contain only letters, got %q", code)
		}
	}
	return nil
}

// Registry is a concurrency-safe in-memory currency registry.
type Registry struct {
	mu         sync.RWMutex
	currencies map[string]Currency
}

// NewRegistry creates a registry seeded with the default currency set.
func NewRegistry() *Registry {
	r := &Registry{currencies: map[string]Currency{}}

	defaults := []Currency{
		{Code: "USD", Name: "US Dollar", Kind: Fiat, IssuingCountry: "United States"},
		{Code: "EUR", Name: "Euro", Kind: Fiat, IssuingCountry: "Eurozone"},
		{Code: "GBP", Name: "British Pound", Kind: Fiat, IssuingCountry: "United Kingdom"},
		{Code: "JPY", Name: "Japanese Yen", Kind: Fiat, IssuingCountry: "Japan"},
		{Code: "CHF", Name: "Swiss Franc", Kind: Fiat, IssuingCountry: "Switzerland"},
		{Code: "RUB", Name: "Russian Ruble", Kind: Fiat, IssuingCountry: "Russia"},
		{Code: "BTC", Name: "Bitcoin", Kind: Crypto, Algorithm: "SHA-256", MarketCap: 1.12e12},
		{Code: "ETH", Name: "Ethereum", Kind: Crypto, Algorithm: "Ethash", MarketCap: 372e9},
		{Code: "LTC", Name: "Litecoin", Kind: Crypto, Algorithm: "Scrypt", MarketCap: 4.5e9},
		{Code: "ADA", Name: "Cardano", Kind: Crypto, Algorithm: "Ouroboros", MarketCap: 12e9},
	}
	for _, c := range defaults {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds or replaces a currency after validating its code.
func (r *Registry) Register(c Currency) error {
	if err := ValidateCode(c.Code); err != nil {
		return err
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("currency name cannot be empty")
	}
	c.Code = strings.ToUpper(c.Code)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.currencies[c.Code] = c
	return nil
}

// Get returns the currency for a code, case-insensitively.
func (r *Registry) Get(code string) (Currency, error) {
	code = strings.ToUpper(code)

	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.currencies[code]
	if !ok {
		return Currency{}, &domain.CurrencyNotFoundError{Code: code}
	}
	return c, nil
}

// IsRegistered reports whether a code exists in the registry.
func (r *Registry) IsRegistered(code string) bool {
	_, err := r.Get(code)
	return err == nil
}

// List returns all registered currencies sorted by code.
func (r *Registry) List() []Currency {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Currency, 0, len(r.currencies))
	for _, c := range r.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
