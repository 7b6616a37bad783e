package models

// Config represents application configuration
type Config struct {
	App         AppConfig
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	NATS        NATSConfig
	Gateway     GatewayConfig
	Idempotency IdempotencyConfig
	Settlement  SettlementConfig
	Reconciler  ReconcilerConfig
	NewRelic    NewRelicConfig
	Logger      LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// GatewayConfig contains the card processor client configuration
type GatewayConfig struct {
	BaseURL          string
	APILoginID       string
	TransactionKey   string
	TimeoutSeconds   int
	MaxRetries       int
	BaseDelayMs      int
	MaxDelayMs       int
	FailureThreshold int
	BreakerTimeoutS  int
}

// IdempotencyConfig contains idempotency store configuration
type IdempotencyConfig struct {
	TTLHours     int // validity window of a key, default 24h
	CacheTTLMins int // redis outcome cache TTL
}

// SettlementConfig contains settlement event channel configuration
type SettlementConfig struct {
	Subject       string // inbound settlement callback subject
	QueueGroup    string
	EventsSubject string // outbound transition event subject
	HoldAttempts  int    // retries while the gateway ref is not yet recorded
	HoldDelayMs   int
}

// ReconcilerConfig contains reconciliation worker configuration
type ReconcilerConfig struct {
	IntervalSeconds int
	DeadlineSeconds int // per-pass context deadline
	StaleSeconds    int // age before a transaction or PROCESSING event counts as stuck
	MaxPasses       int // sweeps before escalation to operator review
	BatchSize       int
}

// NewRelicConfig contains New Relic configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	LogsEnabled bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
	Type     string
}
