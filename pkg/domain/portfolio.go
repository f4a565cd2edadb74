package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Wallet holds a single-currency balance inside a portfolio.
type Wallet struct {
	CurrencyCode string  `json:"currency_code"`
	Balance      float64 `json:"balance"`
}

// NewWallet creates an empty wallet for the given currency code.
func NewWallet(code string) *Wallet {
	return &Wallet{CurrencyCode: strings.ToUpper(code)}
}

// Deposit adds a positive amount to the wallet balance.
func (w *Wallet) Deposit(amount float64) error {
	if amount <= 0 {
		return ErrAmountMustBePositive
	}
	w.Balance += amount
	return nil
}

// Withdraw removes a positive amount from the wallet balance, failing when
// the balance cannot cover it.
func (w *Wallet) Withdraw(amount float64) error {
	if amount <= 0 {
		return ErrAmountMustBePositive
	}
	if amount > w.Balance {
		return &InsufficientFundsError{
			Currency:  w.CurrencyCode,
			Available: w.Balance,
			Required:  amount,
		}
	}
	w.Balance -= amount
	return nil
}

// Portfolio is the set of wallets a user holds, keyed by currency code.
type Portfolio struct {
	UserID  uuid.UUID          `json:"user_id"`
	Wallets map[string]*Wallet `json:"wallets"`
}

// NewPortfolio creates an empty portfolio for a user.
func NewPortfolio(userID uuid.UUID) *Portfolio {
	return &Portfolio{UserID: userID, Wallets: map[string]*Wallet{}}
}

// Wallet returns the wallet for a currency code, or nil when absent.
func (p *Portfolio) Wallet(code string) *Wallet {
	return p.Wallets[strings.ToUpper(code)]
}

// EnsureWallet returns the wallet for a currency code, creating an empty one
// when the portfolio does not hold it yet.
func (p *Portfolio) EnsureWallet(code string) *Wallet {
	code = strings.ToUpper(code)
	if p.Wallets == nil {
		p.Wallets = map[string]*Wallet{}
	}
	if w, ok := p.Wallets[code]; ok {
		return w
	}
	w := NewWallet(code)
	p.Wallets[code] = w
	return w
}
