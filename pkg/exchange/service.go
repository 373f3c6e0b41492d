// Package exchange converts amounts between currencies using cached rates
// from an external pair-rate provider.
package exchange

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/finance-tracker/pkg/cache"
	"github.com/amirasaad/finance-tracker/pkg/metrics"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const (
	// DefaultCacheTTL is how long a fetched rate stays cached: 36000 seconds.
	DefaultCacheTTL = 36000 * time.Second
	// CacheKeyPrefix prefixes every cached pair.
	CacheKeyPrefix = "exchange_rate:"
)

// Fetcher issues one provider request for a currency pair and returns the
// raw response body. Network failures that survive retries, and responses
// the provider never got to answer (5xx), come back as *TransportError.
type Fetcher interface {
	FetchPair(ctx context.Context, apiKey, from, to string) ([]byte, error)
}

// Config is read on every call so a missing key surfaces at first use.
type Config struct {
	APIKey       string
	BaseCurrency string
	CacheTTL     time.Duration
	// RequestsPerMinute limits provider calls. Zero disables the limit.
	RequestsPerMinute int
	BurstSize         int
}

// Service converts amounts. It holds no background goroutines.
type Service struct {
	cfg     Config
	cache   cache.RateCache
	fetcher Fetcher
	limiter *rate.Limiter
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates a Service. m may be nil.
func New(
	cfg Config,
	rateCache cache.RateCache,
	fetcher Fetcher,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}
	burst := max(cfg.BurstSize, 1)
	return &Service{
		cfg:     cfg,
		cache:   rateCache,
		fetcher: fetcher,
		limiter: rate.NewLimiter(limit, burst),
		metrics: m,
		logger:  logger.With("component", "currency-converter"),
	}
}

// BaseCurrency is the currency amounts are normalized into.
func (s *Service) BaseCurrency() string {
	return s.cfg.BaseCurrency
}

// CacheKey is the cache key for the (from, to) pair.
func CacheKey(from, to string) string {
	return CacheKeyPrefix + from + ":" + to
}

// Convert returns amount expressed in to, formatted with exactly two
// decimals. Errors are *ConversionError.
func (s *Service) Convert(
	ctx context.Context,
	amount decimal.Decimal,
	from, to string,
) (string, error) {
	converted, err := s.ConvertAmount(ctx, amount, from, to)
	if err != nil {
		return "", err
	}
	return converted.StringFixed(2), nil
}

// ConvertAmount is Convert returning the value rounded to two places.
func (s *Service) ConvertAmount(
	ctx context.Context,
	amount decimal.Decimal,
	from, to string,
) (decimal.Decimal, error) {
	if s.cfg.APIKey == "" {
		return decimal.Zero, wrap(KindMissingCredentials, nil)
	}
	from = NormalizeCode(from)
	to = NormalizeCode(to)
	if from == "" || to == "" {
		return decimal.Zero, wrap(KindInvalidCurrencyPair, nil)
	}
	if from == to {
		s.metrics.Conversion("same_currency")
		return amount.Round(2), nil
	}

	log := s.logger.With("from", from, "to", to)
	key := CacheKey(from, to)

	if r, ok := s.cachedRate(ctx, key, log); ok {
		log.Debug("Using cached exchange rate", "rate", r)
		s.metrics.Conversion("cache")
		return amount.Mul(r).Round(2), nil
	}

	log.Info("Fetching exchange rate")
	r, err := s.fetchRate(ctx, from, to)
	if err != nil {
		log.Error("Exchange rate fetch failed", "error", err)
		var convErr *ConversionError
		if errors.As(err, &convErr) {
			s.metrics.Conversion(convErr.Kind.String())
		}
		return decimal.Zero, err
	}

	// The write outlives a cancelled caller so the fetch still warms the cache.
	s.storeRate(context.WithoutCancel(ctx), key, r, log)

	converted := amount.Mul(r).Round(2)
	log.Info("Converted amount", "amount", amount, "converted", converted.StringFixed(2))
	s.metrics.Conversion("provider")
	return converted, nil
}

func (s *Service) cachedRate(
	ctx context.Context,
	key string,
	log *slog.Logger,
) (decimal.Decimal, bool) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn("Rate cache read failed, treating as miss", "key", key, "error", err)
		s.metrics.CacheLookup(false)
		return decimal.Zero, false
	}
	if !ok || raw == "" {
		s.metrics.CacheLookup(false)
		return decimal.Zero, false
	}
	r, err := decimal.NewFromString(raw)
	if err != nil || !r.IsPositive() {
		log.Warn("Ignoring unparsable cached rate", "key", key, "value", raw)
		s.metrics.CacheLookup(false)
		return decimal.Zero, false
	}
	s.metrics.CacheLookup(true)
	return r, true
}

func (s *Service) storeRate(
	ctx context.Context,
	key string,
	r decimal.Decimal,
	log *slog.Logger,
) {
	if err := s.cache.Set(ctx, key, r.String(), s.cfg.CacheTTL); err != nil {
		log.Warn("Rate cache write failed", "key", key, "error", err)
	}
}

func (s *Service) fetchRate(
	ctx context.Context,
	from, to string,
) (decimal.Decimal, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return decimal.Zero, wrap(KindTransportFailure, &TransportError{Err: err})
	}

	start := time.Now()
	body, err := s.fetcher.FetchPair(ctx, s.cfg.APIKey, from, to)
	if err != nil {
		s.metrics.ProviderRequest("transport_error", time.Since(start))
		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			err = &TransportError{Err: err}
		}
		return decimal.Zero, wrap(KindTransportFailure, err)
	}

	res := DecodePair(body)
	if !res.OK {
		s.metrics.ProviderRequest("provider_error", time.Since(start))
		classified := ClassifyError(res.Code)
		return decimal.Zero, wrap(KindOf(classified), classified)
	}
	s.metrics.ProviderRequest("success", time.Since(start))

	if res.Rate == nil {
		return decimal.Zero, wrap(KindRateUnavailable, &RateUnavailableError{Currency: to})
	}
	return *res.Rate, nil
}

// NormalizeCode upper-cases and trims a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
