package exchange

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/finance-tracker/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRateCache struct {
	mock.Mock
}

func (m *mockRateCache) Connect(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockRateCache) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockRateCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockRateCache) Close() error {
	return m.Called().Error(0)
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchPair(ctx context.Context, apiKey, from, to string) ([]byte, error) {
	args := m.Called(ctx, apiKey, from, to)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}

func newTestService(t *testing.T, apiKey string) (*Service, *mockRateCache, *mockFetcher) {
	t.Helper()
	rc := &mockRateCache{}
	f := &mockFetcher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := New(
		Config{APIKey: apiKey, BaseCurrency: "USD"},
		rc,
		f,
		metrics.New(prometheus.NewRegistry()),
		logger,
	)
	return svc, rc, f
}

func TestConvert_SameCurrencySkipsCacheAndProvider(t *testing.T) {
	svc, rc, f := newTestService(t, "test-key")

	got, err := svc.Convert(context.Background(), decimal.NewFromInt(100), "USD", "USD")
	require.NoError(t, err)
	assert.Equal(t, "100.00", got)

	rc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	rc.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.AssertNotCalled(t, "FetchPair", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConvert_CacheHitSkipsProvider(t *testing.T) {
	svc, rc, f := newTestService(t, "test-key")
	rc.On("Get", mock.Anything, "exchange_rate:GBP:EUR").Return("1.15", true, nil).Once()

	got, err := svc.Convert(context.Background(), decimal.RequireFromString("20"), "GBP", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "23.00", got)

	rc.AssertExpectations(t)
	rc.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.AssertNotCalled(t, "FetchPair", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConvert_MissFetchesAndPopulatesCache(t *testing.T) {
	svc, rc, f := newTestService(t, "test-key")
	rc.On("Get", mock.Anything, "exchange_rate:EUR:USD").Return("", false, nil).Once()
	f.On("FetchPair", mock.Anything, "test-key", "EUR", "USD").
		Return([]byte(`{"result":"success","conversion_rate":1.2}`), nil).Once()
	rc.On("Set", mock.Anything, "exchange_rate:EUR:USD", "1.2", 36000*time.Second).Return(nil).Once()

	got, err := svc.Convert(context.Background(), decimal.NewFromInt(100), "EUR", "USD")
	require.NoError(t, err)
	assert.Equal(t, "120.00", got)

	rc.AssertExpectations(t)
	f.AssertExpectations(t)
}

func TestConvert_Errors(t *testing.T) {
	tests := []struct {
		name       string
		apiKey     string
		from, to   string
		body       []byte
		fetchErr   error
		wantKind   Kind
		wantTarget error
		wantMsg    string
	}{
		{
			name:       "missing api key",
			from:       "EUR",
			to:         "USD",
			wantKind:   KindMissingCredentials,
			wantTarget: ErrMissingCredentials,
			wantMsg:    "Currency conversion failed: Exchange Rate API key is missing",
		},
		{
			name:       "empty currency code",
			apiKey:     "test-key",
			from:       "",
			to:         "USD",
			wantKind:   KindInvalidCurrencyPair,
			wantTarget: ErrInvalidCurrencyPair,
			wantMsg:    "Currency conversion failed: Invalid currency codes provided",
		},
		{
			name:       "invalid key",
			apiKey:     "test-key",
			from:       "EUR",
			to:         "USD",
			body:       []byte(`{"result":"error","error-type":"invalid-key"}`),
			wantKind:   KindInvalidKey,
			wantTarget: ErrInvalidKey,
			wantMsg:    "Currency conversion failed: The provided API key is invalid.",
		},
		{
			name:       "quota reached",
			apiKey:     "test-key",
			from:       "EUR",
			to:         "USD",
			body:       []byte(`{"result":"error","error-type":"quota-reached"}`),
			wantKind:   KindQuotaReached,
			wantTarget: ErrQuotaReached,
			wantMsg:    "Currency conversion failed: Your account has reached the maximum number of requests allowed by your plan.",
		},
		{
			name:       "null rate",
			apiKey:     "test-key",
			from:       "EUR",
			to:         "USD",
			body:       []byte(`{"result":"success","conversion_rate":null}`),
			wantKind:   KindRateUnavailable,
			wantTarget: ErrRateUnavailable,
			wantMsg:    "Currency conversion failed: Exchange rate for USD not available",
		},
		{
			name:       "unrecognized payload",
			apiKey:     "test-key",
			from:       "EUR",
			to:         "USD",
			body:       []byte(`<html>bad gateway</html>`),
			wantKind:   KindUnknown,
			wantTarget: ErrUnknown,
			wantMsg:    "Currency conversion failed: An unknown error occurred. Please refer to the API documentation.",
		},
		{
			name:       "transport failure",
			apiKey:     "test-key",
			from:       "EUR",
			to:         "USD",
			fetchErr:   &TransportError{Err: errors.New("connection reset by peer")},
			wantKind:   KindTransportFailure,
			wantTarget: ErrTransport,
			wantMsg:    "Currency conversion failed: connection reset by peer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, rc, f := newTestService(t, tt.apiKey)
			rc.On("Get", mock.Anything, mock.Anything).Return("", false, nil)
			f.On("FetchPair", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(tt.body, tt.fetchErr)

			got, err := svc.Convert(context.Background(), decimal.NewFromInt(100), tt.from, tt.to)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.ErrorIs(t, err, tt.wantTarget)
			assert.Equal(t, tt.wantKind, KindOf(err))
			assert.True(t, IsConversionError(err))

			rc.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			if tt.wantKind == KindMissingCredentials || tt.wantKind == KindInvalidCurrencyPair {
				rc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
				f.AssertNotCalled(t, "FetchPair", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestConvert_CacheReadErrorFallsBackToProvider(t *testing.T) {
	svc, rc, f := newTestService(t, "test-key")
	rc.On("Get", mock.Anything, "exchange_rate:EUR:USD").Return("", false, errors.New("i/o timeout"))
	f.On("FetchPair", mock.Anything, "test-key", "EUR", "USD").
		Return([]byte(`{"result":"success","conversion_rate":1.1}`), nil)
	rc.On("Set", mock.Anything, "exchange_rate:EUR:USD", "1.1", DefaultCacheTTL).
		Return(errors.New("i/o timeout"))

	got, err := svc.Convert(context.Background(), decimal.NewFromInt(10), "EUR", "USD")
	require.NoError(t, err)
	assert.Equal(t, "11.00", got)
}

func TestConvert_CompletedFetchWarmsCacheAfterCancel(t *testing.T) {
	svc, rc, f := newTestService(t, "test-key")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rc.On("Get", mock.Anything, mock.Anything).Return("", false, nil)
	f.On("FetchPair", mock.Anything, "test-key", "EUR", "USD").
		Run(func(mock.Arguments) { cancel() }).
		Return([]byte(`{"result":"success","conversion_rate":1.2}`), nil)
	rc.On("Set",
		mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }),
		"exchange_rate:EUR:USD", "1.2", DefaultCacheTTL,
	).Return(nil).Once()

	_, err := svc.Convert(ctx, decimal.NewFromInt(1), "EUR", "USD")
	require.NoError(t, err)
	rc.AssertExpectations(t)
}

func TestConvert_RoundsHalfAwayFromZero(t *testing.T) {
	svc, rc, _ := newTestService(t, "test-key")
	rc.On("Get", mock.Anything, "exchange_rate:EUR:USD").Return("0.5", true, nil)

	got, err := svc.Convert(context.Background(), decimal.RequireFromString("0.05"), "EUR", "USD")
	require.NoError(t, err)
	assert.Equal(t, "0.03", got)

	got, err = svc.Convert(context.Background(), decimal.RequireFromString("10.005"), "JPY", "JPY")
	require.NoError(t, err)
	assert.Equal(t, "10.01", got)
}

func TestToBase_UsesConfiguredBaseCurrency(t *testing.T) {
	svc, rc, _ := newTestService(t, "test-key")
	rc.On("Get", mock.Anything, "exchange_rate:EUR:USD").Return("2", true, nil)

	got, err := ToBase(context.Background(), svc, decimal.NewFromInt(3), "eur")
	require.NoError(t, err)
	assert.Equal(t, "6.00", got.StringFixed(2))
	assert.Equal(t, "USD", svc.BaseCurrency())

	same, err := ToBase(context.Background(), svc, decimal.RequireFromString("4.567"), "usd")
	require.NoError(t, err)
	assert.Equal(t, "4.567", same.String(), "amounts already in base are kept")
	rc.AssertNumberOfCalls(t, "Get", 1)
}
