package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	// ErrRateUnavailable is returned when every lookup strategy and the
	// one-shot refresh failed to produce a usable rate.
	ErrRateUnavailable = errors.New("exchange rate unavailable")
	// ErrCurrencyNotFound is returned when a currency code is not registered.
	ErrCurrencyNotFound = errors.New("currency not found")
	// ErrInsufficientFunds is returned when a wallet cannot cover a withdrawal.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrUserUnauthorized is returned when credentials do not match or no user is logged in.
	ErrUserUnauthorized = errors.New("user unauthorized")
	// ErrUserNotFound is returned when the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when registering with an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrWalletNotFound is returned when selling a currency without a wallet.
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrAmountMustBePositive is returned for zero or negative trade amounts.
	ErrAmountMustBePositive = errors.New("amount must be positive")
)

// CurrencyNotFoundError reports the unknown code alongside ErrCurrencyNotFound.
type CurrencyNotFoundError struct {
	Code string
}

func (e *CurrencyNotFoundError) Error() string {
	return fmt.Sprintf("unknown currency %q", e.Code)
}

func (e *CurrencyNotFoundError) Unwrap() error { return ErrCurrencyNotFound }

// RateUnavailableError reports the pair that could not be resolved.
type RateUnavailableError struct {
	From string
	To   string
}

func (e *RateUnavailableError) Error() string {
	return fmt.Sprintf("rate for %s->%s not available after update", e.From, e.To)
}

func (e *RateUnavailableError) Unwrap() error { return ErrRateUnavailable }

// InsufficientFundsError carries the wallet state that rejected a withdrawal.
type InsufficientFundsError struct {
	Currency  string
	Available float64
	Required  float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available %v %s, required %v %s",
		e.Available, e.Currency, e.Required, e.Currency)
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

// ProviderError wraps a single provider's fetch failure. The orchestrator
// logs these and continues; they never abort a refresh on their own.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
