package config

import (
	"log"

	"github.com/spf13/viper"

	"github.com/novapay/paycore/internal/pkg/models"
)

var v = viper.New()

// InitConfig loads configuration from the environment, optionally
// seeded from an env file for local development.
func InitConfig(configPath string) *models.Config {
	v.AutomaticEnv()

	if GetEnv("APP_ENV", "local") == "local" && configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			log.Println("error loading config from file", err)
		}
	}

	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "")
	configs.App.Environment = GetEnv("APP_ENV", "")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 9990)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 0)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 0)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Database config
	configs.Database.Driver = GetEnv("DB_DRIVER", "postgres")
	configs.Database.Host = GetEnv("DB_HOST", "")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 5432)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 0)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 0)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 0)

	// NATS config
	configs.NATS.URL = GetEnv("NATS_URL", "nats://localhost:4222")

	// Gateway config
	configs.Gateway.BaseURL = GetEnv("GATEWAY_BASE_URL", "")
	configs.Gateway.APILoginID = GetEnv("GATEWAY_API_LOGIN_ID", "")
	configs.Gateway.TransactionKey = GetEnv("GATEWAY_TRANSACTION_KEY", "")
	configs.Gateway.TimeoutSeconds = GetEnvAsInt("GATEWAY_TIMEOUT_SECONDS", 10)
	configs.Gateway.MaxRetries = GetEnvAsInt("GATEWAY_MAX_RETRIES", 3)
	configs.Gateway.BaseDelayMs = GetEnvAsInt("GATEWAY_BASE_DELAY_MS", 200)
	configs.Gateway.MaxDelayMs = GetEnvAsInt("GATEWAY_MAX_DELAY_MS", 5000)
	configs.Gateway.FailureThreshold = GetEnvAsInt("GATEWAY_FAILURE_THRESHOLD", 5)
	configs.Gateway.BreakerTimeoutS = GetEnvAsInt("GATEWAY_BREAKER_TIMEOUT_SECONDS", 60)

	// Idempotency config
	configs.Idempotency.TTLHours = GetEnvAsInt("IDEMPOTENCY_TTL_HOURS", 24)
	configs.Idempotency.CacheTTLMins = GetEnvAsInt("IDEMPOTENCY_CACHE_TTL_MINS", 60)

	// Settlement config
	configs.Settlement.Subject = GetEnv("SETTLEMENT_SUBJECT", "gateway.settlement.events")
	configs.Settlement.QueueGroup = GetEnv("SETTLEMENT_QUEUE_GROUP", "payments-settlement")
	configs.Settlement.EventsSubject = GetEnv("SETTLEMENT_EVENTS_SUBJECT", "payments.transaction.updated")
	configs.Settlement.HoldAttempts = GetEnvAsInt("SETTLEMENT_HOLD_ATTEMPTS", 5)
	configs.Settlement.HoldDelayMs = GetEnvAsInt("SETTLEMENT_HOLD_DELAY_MS", 500)

	// Reconciler config
	configs.Reconciler.IntervalSeconds = GetEnvAsInt("RECONCILER_INTERVAL_SECONDS", 60)
	configs.Reconciler.DeadlineSeconds = GetEnvAsInt("RECONCILER_DEADLINE_SECONDS", 300)
	configs.Reconciler.StaleSeconds = GetEnvAsInt("RECONCILER_STALE_SECONDS", 300)
	configs.Reconciler.MaxPasses = GetEnvAsInt("RECONCILER_MAX_PASSES", 10)
	configs.Reconciler.BatchSize = GetEnvAsInt("RECONCILER_BATCH_SIZE", 50)

	// NewRelic config
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", "")
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)
	configs.NewRelic.LogsEnabled = GetEnvAsBool("NEW_RELIC_LOGS_ENABLED", false)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "logs/paycore.log")
	configs.Logger.Type = GetEnv("LOG_TYPE", "console")

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := v.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	if v.GetString(key) == "" {
		return defaultValue
	}
	return v.GetInt(key)
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	if v.GetString(key) == "" {
		return defaultValue
	}
	return v.GetBool(key)
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	if v.GetString(key) == "" {
		return defaultValue
	}
	return v.GetFloat64(key)
}
