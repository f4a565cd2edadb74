package currency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valutatrade/valutatrade-hub/pkg/currency"
	"github.com/valutatrade/valutatrade-hub/pkg/domain"
)

func TestRegistry_Defaults(t *testing.T) {
	r := currency.NewRegistry()

	for _, code := range []string{"USD", "EUR", "GBP", "JPY", "CHF", "RUB", "BTC", "ETH", "LTC", "ADA"} {
		assert.True(t, r.IsRegistered(code), "expected %s to be registered", code)
	}

	usd, err := r.Get("usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", usd.Code)
	assert.Equal(t, currency.Fiat, usd.Kind)

	btc, err := r.Get("BTC")
	require.NoError(t, err)
	assert.Equal(t, currency.Crypto, btc.Kind)
	assert.Contains(t, btc.DisplayInfo(), "[CRYPTO] BTC")
}

func TestRegistry_UnknownCode(t *testing.T) {
	r := currency.NewRegistry()

	_, err := r.Get("XXX")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCurrencyNotFound)

	var cnf *domain.CurrencyNotFoundError
	require.ErrorAs(t, err, &cnf)
	assert.Equal(t, "XXX", cnf.Code)
}

func TestValidateCode(t *testing.T) {
	tests := []struct {
		code    string
		wantErr bool
	}{
		{"USD", false},
		{"eur", false},
		{"DOGE", false},
		{"X", true},
		{"TOOLONG", true},
		{"US1", true},
		{"U D", true},
		{"", true},
	}
	for _, tt := range tests {
		err := currency.ValidateCode(tt.code)
		if tt.wantErr {
			assert.Error(t, err, "code %q", tt.code)
		} else {
			assert.NoError(t, err, "code %q", tt.code)
		}
	}
}

func TestRegistry_Register(t *testing.T) {
	r := currency.NewRegistry()

	require.NoError(t, r.Register(currency.Currency{
		Code: "doge", Name: "Dogecoin", Kind: currency.Crypto, Algorithm: "Scrypt",
	}))
	assert.True(t, r.IsRegistered("DOGE"))

	assert.Error(t, r.Register(currency.Currency{Code: "D1", Name: "Bad"}))
	assert.Error(t, r.Register(currency.Currency{Code: "ABC", Name: "  "}))
}

func TestRegistry_ListSorted(t *testing.T) {
	r := currency.NewRegistry()
	list := r.List()
	require.NotEmpty(t, list)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Code, list[i].Code)
	}
}
