package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valutatrade/valutatrade-hub/pkg/domain"
)

func TestWallet_DepositWithdraw(t *testing.T) {
	w := domain.NewWallet("btc")
	assert.Equal(t, "BTC", w.CurrencyCode)

	require.NoError(t, w.Deposit(1.5))
	assert.InDelta(t, 1.5, w.Balance, 1e-12)

	require.NoError(t, w.Withdraw(0.5))
	assert.InDelta(t, 1.0, w.Balance, 1e-12)
}

func TestWallet_RejectsNonPositiveAmounts(t *testing.T) {
	w := domain.NewWallet("EUR")
	assert.ErrorIs(t, w.Deposit(0), domain.ErrAmountMustBePositive)
	assert.ErrorIs(t, w.Deposit(-1), domain.ErrAmountMustBePositive)
	assert.ErrorIs(t, w.Withdraw(0), domain.ErrAmountMustBePositive)
}

func TestWallet_InsufficientFunds(t *testing.T) {
	w := domain.NewWallet("EUR")
	require.NoError(t, w.Deposit(10))

	err := w.Withdraw(25)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	var ife *domain.InsufficientFundsError
	require.ErrorAs(t, err, &ife)
	assert.Equal(t, "EUR", ife.Currency)
	assert.InDelta(t, 10.0, ife.Available, 1e-12)
	assert.InDelta(t, 25.0, ife.Required, 1e-12)

	// Balance untouched after a rejected withdrawal.
	assert.InDelta(t, 10.0, w.Balance, 1e-12)
}

func TestPortfolio_EnsureWallet(t *testing.T) {
	p := domain.NewPortfolio(uuid.New())
	assert.Nil(t, p.Wallet("BTC"))

	w := p.EnsureWallet("btc")
	require.NotNil(t, w)
	assert.Same(t, w, p.EnsureWallet("BTC"))
	assert.Same(t, w, p.Wallet("btc"))
}

func TestPairKey(t *testing.T) {
	assert.Equal(t, "BTC_USD", domain.PairKey("btc", "usd"))

	from, to, ok := domain.SplitPairKey("EUR_USD")
	require.True(t, ok)
	assert.Equal(t, "EUR", from)
	assert.Equal(t, "USD", to)

	_, _, ok = domain.SplitPairKey("nounderscore")
	assert.False(t, ok)
}
