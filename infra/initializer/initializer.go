package initializer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/finance-tracker/infra"
	infracache "github.com/amirasaad/finance-tracker/infra/cache"
	infraeventbus "github.com/amirasaad/finance-tracker/infra/eventbus"
	"github.com/amirasaad/finance-tracker/infra/httpclient"
	"github.com/amirasaad/finance-tracker/infra/provider/exchangerateapi"
	infrarepo "github.com/amirasaad/finance-tracker/infra/repository"
	"github.com/amirasaad/finance-tracker/pkg/app"
	"github.com/amirasaad/finance-tracker/pkg/cache"
	"github.com/amirasaad/finance-tracker/pkg/config"
	"github.com/amirasaad/finance-tracker/pkg/exchange"
	"github.com/amirasaad/finance-tracker/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// Closer releases everything InitializeDependencies opened.
type Closer func() error

// InitializeDependencies sets up the logger, database, rate cache, exchange
// client and event bus.
func InitializeDependencies(cfg *config.App) (*app.Deps, Closer, error) {
	logger := SetupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, nil, fmt.Errorf("database: %w", err)
	}
	if err := infra.Migrate(db); err != nil {
		return nil, nil, err
	}
	logger.Info("Database initialized successfully")

	deps, closer, err := Build(cfg, db, logger)
	if err != nil {
		closeDB(db)
		return nil, nil, err
	}
	return deps, func() error {
		err := closer()
		closeDB(db)
		return err
	}, nil
}

// Build wires Deps on an already opened database. Tests pass sqlite here.
func Build(cfg *config.App, db *gorm.DB, logger *slog.Logger) (*app.Deps, Closer, error) {
	var closers []func() error

	rateCache, err := newRateCache(context.Background(), cfg.Redis, logger)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, rateCache.Close)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	converter := newConverter(cfg, rateCache, m, logger)

	bus := infraeventbus.NewWithMemory(logger)
	deps := &app.Deps{
		Uow:       infrarepo.NewUoW(db),
		Converter: converter,
		EventBus:  bus,
		Metrics:   reg,
		Logger:    logger,
	}

	if cfg.Kafka != nil && len(cfg.Kafka.Brokers) > 0 {
		writer := infraeventbus.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.NotificationTopic, cfg.Kafka.WriteTimeout)
		publisher := infraeventbus.NewNotificationPublisher(writer, logger)
		deps.NotificationSink = publisher.Handler()
		closers = append(closers, publisher.Close)
		logger.Info("Publishing notifications to Kafka",
			"brokers", cfg.Kafka.Brokers,
			"topic", cfg.Kafka.NotificationTopic,
		)
	}

	return deps, func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}, nil
}

// newRateCache picks Redis when a URL is configured, memory otherwise.
func newRateCache(ctx context.Context, cfg *config.Redis, logger *slog.Logger) (cache.RateCache, error) {
	if cfg == nil || cfg.URL == "" {
		logger.Info("Using in-memory exchange rate cache")
		return infracache.NewMemoryCache(), nil
	}

	rc, err := infracache.NewRedisRateCache(infracache.RedisOptions{
		URL:          cfg.URL,
		KeyPrefix:    cfg.KeyPrefix,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rc.Connect(ctx); err != nil {
		_ = rc.Close()
		return nil, err
	}
	return rc, nil
}

func newConverter(
	cfg *config.App,
	rateCache cache.RateCache,
	m *metrics.Metrics,
	logger *slog.Logger,
) *exchange.Service {
	ex := cfg.Exchange
	if ex == nil {
		ex = &config.Exchange{}
	}
	policy := httpclient.DefaultRetryPolicy()
	policy.MaxRetries = ex.MaxRetries
	if ex.RetryDelay > 0 {
		policy.Delay = httpclient.LinearDelay(ex.RetryDelay)
	}
	client := httpclient.New(policy, ex.HTTPTimeout, logger, m)

	base := cfg.BaseCurrency
	if base == "" {
		base = ex.BaseCurrency
	}
	exCfg := exchange.Config{
		APIKey:       ex.ApiKey,
		BaseCurrency: exchange.NormalizeCode(base),
	}
	if exCfg.BaseCurrency == "" {
		exCfg.BaseCurrency = "USD"
	}
	if rc := cfg.ExchangeRateCache; rc != nil {
		exCfg.CacheTTL = rc.TTL
		exCfg.RequestsPerMinute = rc.RequestsPerMinute
		exCfg.BurstSize = rc.BurstSize
	}
	if ex.ApiKey == "" {
		logger.Warn("EXCHANGE_RATE_API_KEY is not set; conversions will fail")
	}
	return exchange.New(exCfg, rateCache, exchangerateapi.New(ex.ApiUrl, client, logger), m, logger)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// NewConverter builds only the exchange client, for callers that never touch
// the database.
func NewConverter(cfg *config.App, logger *slog.Logger) (*exchange.Service, Closer, error) {
	rateCache, err := newRateCache(context.Background(), cfg.Redis, logger)
	if err != nil {
		return nil, nil, err
	}
	return newConverter(cfg, rateCache, nil, logger), rateCache.Close, nil
}
