package config

import (
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads the first env file found among envFilePath (searched upwards
// from the working directory), falling back to ./.env, then processes the
// environment into App.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()
	logger.Info("Loading environment variables")

	for _, path := range envFilePath {
		foundPath, err := FindEnvFile(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}
		if err := godotenv.Load(foundPath); err != nil {
			logger.Error("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		logger.Info("Loaded environment from file", "path", foundPath)
		return loadFromEnv(logger)
	}

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found in current directory")
	}
	return loadFromEnv(logger)
}

func loadFromEnv(logger *slog.Logger) (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.resolveBaseCurrency()

	logger.Info("App config loaded",
		"env", cfg.Env,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"db", maskValue(cfg.DB.Url),
		"auth_jwt_expiry", cfg.Auth.Jwt.Expiry,
		"redis", maskValue(cfg.Redis.URL),
		"exchange_api_url", cfg.Exchange.ApiUrl,
		"exchange_api_key", maskValue(cfg.Exchange.ApiKey),
		"exchange_base_currency", cfg.Exchange.BaseCurrency,
		"exchange_cache_ttl", cfg.ExchangeRateCache.TTL,
		"kafka_brokers", cfg.Kafka.Brokers,
	)
	return &cfg, nil
}

// resolveBaseCurrency makes App.BaseCurrency and Exchange.BaseCurrency agree,
// preferring the top-level BASE_CURRENCY.
func (a *App) resolveBaseCurrency() {
	if a.Exchange == nil {
		a.Exchange = &Exchange{}
	}
	base := strings.ToUpper(strings.TrimSpace(a.BaseCurrency))
	if base == "" {
		base = strings.ToUpper(strings.TrimSpace(a.Exchange.BaseCurrency))
	}
	if base == "" {
		base = "USD"
	}
	a.BaseCurrency = base
	a.Exchange.BaseCurrency = base
}

func maskValue(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
