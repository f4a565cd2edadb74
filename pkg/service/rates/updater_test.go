package rates_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/valutatrade/valutatrade-hub/pkg/domain"
	"github.com/valutatrade/valutatrade-hub/pkg/provider"
	"github.com/valutatrade/valutatrade-hub/pkg/service/rates"
)

// MockRatesProvider is a mock implementation for testing.
type MockRatesProvider struct {
	mock.Mock
}

func (m *MockRatesProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockRatesProvider) Kind() provider.Kind {
	args := m.Called()
	return args.Get(0).(provider.Kind)
}

func (m *MockRatesProvider) FetchRates(ctx context.Context) (map[string]float64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

// MockMetaProvider additionally implements provider.PairMetadata.
type MockMetaProvider struct {
	MockRatesProvider
}

func (m *MockMetaProvider) PairMeta(pairKey string) map[string]any {
	args := m.Called(pairKey)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[string]any)
}

func cryptoProvider(rates map[string]float64, err error) *MockMetaProvider {
	p := &MockMetaProvider{}
	p.On("Name").Return("CoinGecko")
	p.On("Kind").Return(provider.KindCrypto)
	if err != nil {
		p.On("FetchRates", mock.Anything).Return(nil, err)
	} else {
		p.On("FetchRates", mock.Anything).Return(rates, nil)
		for pair := range rates {
			p.On("PairMeta", pair).Return(map[string]any{"raw_id": "bitcoin"})
		}
	}
	return p
}

func fiatProvider(rates map[string]float64) *MockRatesProvider {
	p := &MockRatesProvider{}
	p.On("Name").Return("ExchangeRate-API")
	p.On("Kind").Return(provider.KindFiat)
	p.On("FetchRates", mock.Anything).Return(rates, nil)
	return p
}

func TestUpdater_MergesBothProviders(t *testing.T) {
	store := newFakeStore(nil)
	crypto := cryptoProvider(map[string]float64{"BTC_USD": 60000}, nil)
	fiat := fiatProvider(map[string]float64{"EUR_USD": 1.08})
	u := rates.NewUpdater(store, []provider.RatesProvider{crypto, fiat}, discardLogger())

	merged, err := u.Refresh(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"BTC_USD": 60000, "EUR_USD": 1.08}, merged)

	require.Len(t, store.saved, 1)
	assert.Equal(t, merged, store.saved[0])
	assert.Len(t, store.history, 2)
}

func TestUpdater_PartialFailure(t *testing.T) {
	store := newFakeStore(nil)
	crypto := cryptoProvider(nil, &domain.ProviderError{Provider: "CoinGecko", Err: context.DeadlineExceeded})
	fiat := fiatProvider(map[string]float64{"EUR_USD": 1.08})
	u := rates.NewUpdater(store, []provider.RatesProvider{crypto, fiat}, discardLogger())

	merged, err := u.Refresh(context.Background(), "")
	require.NoError(t, err, "a single provider failure must not abort the refresh")
	assert.Equal(t, map[string]float64{"EUR_USD": 1.08}, merged)

	require.Len(t, store.saved, 1)
	assert.Equal(t, map[string]float64{"EUR_USD": 1.08}, store.saved[0],
		"crypto pairs absent from the saved snapshot, not zeroed")
}

func TestUpdater_TotalFailureSkipsSave(t *testing.T) {
	store := newFakeStore(nil)
	crypto := cryptoProvider(nil, &domain.ProviderError{Provider: "CoinGecko", Err: context.DeadlineExceeded})
	fiat := fiatProvider(map[string]float64{})
	u := rates.NewUpdater(store, []provider.RatesProvider{crypto, fiat}, discardLogger())

	merged, err := u.Refresh(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, merged)
	assert.Empty(t, store.saved, "no save when every provider failed or was empty")
	assert.Empty(t, store.history)
}

func TestUpdater_SourceFilter(t *testing.T) {
	store := newFakeStore(nil)
	crypto := cryptoProvider(map[string]float64{"BTC_USD": 60000}, nil)
	fiat := fiatProvider(map[string]float64{"EUR_USD": 1.08})
	u := rates.NewUpdater(store, []provider.RatesProvider{crypto, fiat}, discardLogger())

	merged, err := u.Refresh(context.Background(), provider.KindFiat)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"EUR_USD": 1.08}, merged)
	crypto.AssertNotCalled(t, "FetchRates", mock.Anything)
}

func TestUpdater_HistoryRecords(t *testing.T) {
	store := newFakeStore(nil)
	crypto := cryptoProvider(map[string]float64{"BTC_USD": 60000}, nil)
	fiat := fiatProvider(map[string]float64{"EUR_USD": 1.08})
	u := rates.NewUpdater(store, []provider.RatesProvider{crypto, fiat}, discardLogger())

	_, err := u.Refresh(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, store.history, 2)

	byPair := map[string]domain.HistoryRecord{}
	for _, rec := range store.history {
		byPair[domain.PairKey(rec.FromCurrency, rec.ToCurrency)] = rec
	}

	btc := byPair["BTC_USD"]
	assert.Equal(t, "CoinGecko", btc.Source)
	assert.Equal(t, "bitcoin", btc.Meta["raw_id"])
	assert.NotEmpty(t, btc.ID)

	eur := byPair["EUR_USD"]
	assert.Equal(t, "ExchangeRate-API", eur.Source)
	assert.Empty(t, eur.Meta)
}
