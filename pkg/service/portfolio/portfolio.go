// Package portfolio implements wallet management and the buy/sell trading
// operations against resolved exchange rates.
package portfolio

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valutatrade/valutatrade-hub/pkg/currency"
	"github.com/valutatrade/valutatrade-hub/pkg/domain"
)

// Repository persists portfolios.
type Repository interface {
	LoadPortfolios() ([]domain.Portfolio, error)
	SavePortfolios([]domain.Portfolio) error
}

// RateResolver quotes a currency pair; implemented by rates.Resolver.
type RateResolver interface {
	Resolve(ctx context.Context, from, to string) (float64, time.Time, error)
}

// Service manages portfolios and executes trades.
type Service struct {
	repo     Repository
	registry *currency.Registry
	base     string
	logger   *slog.Logger
	resolver RateResolver
}

// TradeResult summarizes an executed buy or sell.
type TradeResult struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
	Balance  float64 `json:"balance"`
	// Estimate is the cost (buy) or revenue (sell) in the base currency;
	// nil when no rate could be quoted. A missing quote never blocks the
	// trade itself.
	Estimate *float64 `json:"estimate,omitempty"`
	Base     string   `json:"base"`
}

// New creates a portfolio service.
func New(
	repo Repository,
	resolver RateResolver,
	registry *currency.Registry,
	baseCurrency string,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		registry: registry,
		base:     strings.ToUpper(baseCurrency),
		logger:   logger,
	}
}

// Get returns the user's portfolio, an empty one when none is stored yet.
func (s *Service) Get(userID uuid.UUID) (*domain.Portfolio, error) {
	portfolios, err := s.repo.LoadPortfolios()
	if err != nil {
		return nil, err
	}
	for i := range portfolios {
		if portfolios[i].UserID == userID {
			return &portfolios[i], nil
		}
	}
	return domain.NewPortfolio(userID), nil
}

func (s *Service) save(p *domain.Portfolio) error {
	portfolios, err := s.repo.LoadPortfolios()
	if err != nil {
		return err
	}
	out := portfolios[:0]
	for _, existing := range portfolios {
		if existing.UserID != p.UserID {
			out = append(out, existing)
		}
	}
	out = append(out, *p)
	return s.repo.SavePortfolios(out)
}

// Buy deposits amount into the user's wallet for the given currency and
// quotes the estimated cost in the base currency.
func (s *Service) Buy(ctx context.Context, userID uuid.UUID, code string, amount float64) (*TradeResult, error) {
	if _, err := s.registry.Get(code); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, domain.ErrAmountMustBePositive
	}

	p, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	w := p.EnsureWallet(code)
	if err := w.Deposit(amount); err != nil {
		return nil, err
	}
	if err := s.save(p); err != nil {
		return nil, err
	}

	res := &TradeResult{
		Currency: w.CurrencyCode,
		Amount:   amount,
		Balance:  w.Balance,
		Base:     s.base,
		Estimate: s.estimate(ctx, w.CurrencyCode, amount),
	}
	s.logger.Info("Buy executed", "user", userID, "currency", w.CurrencyCode,
		"amount", amount, "balance", w.Balance)
	return res, nil
}

// Sell withdraws amount from the user's wallet for the given currency and
// quotes the estimated revenue in the base currency.
func (s *Service) Sell(ctx context.Context, userID uuid.UUID, code string, amount float64) (*TradeResult, error) {
	if _, err := s.registry.Get(code); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, domain.ErrAmountMustBePositive
	}

	p, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	w := p.Wallet(code)
	if w == nil {
		return nil, domain.ErrWalletNotFound
	}
	if err := w.Withdraw(amount); err != nil {
		return nil, err
	}
	if err := s.save(p); err != nil {
		return nil, err
	}

	res := &TradeResult{
		Currency: w.CurrencyCode,
		Amount:   amount,
		Balance:  w.Balance,
		Base:     s.base,
		Estimate: s.estimate(ctx, w.CurrencyCode, amount),
	}
	s.logger.Info("Sell executed", "user", userID, "currency", w.CurrencyCode,
		"amount", amount, "balance", w.Balance)
	return res, nil
}

// estimate quotes amount of code in the base currency; a failed quote is
// logged and reported as nil rather than blocking the trade.
func (s *Service) estimate(ctx context.Context, code string, amount float64) *float64 {
	rate, _, err := s.resolver.Resolve(ctx, code, s.base)
	if err != nil {
		s.logger.Warn("Could not quote trade estimate", "currency", code, "error", err)
		return nil
	}
	v := amount * rate
	return &v
}

// TotalValue values the whole portfolio in the given base currency. Wallets
// whose rate cannot be resolved are skipped with a warning.
func (s *Service) TotalValue(ctx context.Context, userID uuid.UUID, base string) (float64, error) {
	base = strings.ToUpper(base)
	if _, err := s.registry.Get(base); err != nil {
		return 0, err
	}
	p, err := s.Get(userID)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for code, w := range p.Wallets {
		if code == base {
			total += w.Balance
			continue
		}
		rate, _, err := s.resolver.Resolve(ctx, code, base)
		if err != nil {
			s.logger.Warn("Skipping wallet in valuation, rate unavailable",
				"currency", code, "base", base, "error", err)
			continue
		}
		total += w.Balance * rate
	}
	return total, nil
}
