package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Logger      LoggerConfig      `mapstructure:"logger"`
	Transaction TransactionConfig `mapstructure:"transaction"`
	Wager       WagerConfig       `mapstructure:"wager"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Admin       AdminConfig       `mapstructure:"admin"`
	Kafka       KafkaConfig       `mapstructure:"kafka"`
	Outbox      OutboxConfig      `mapstructure:"outbox"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
	CORSOrigins       []string      `mapstructure:"corsOrigins"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver              string        `mapstructure:"driver"` // postgres or memory
	Host                string        `mapstructure:"host"`
	Port                string        `mapstructure:"port"`
	Username            string        `mapstructure:"username"`
	Password            string        `mapstructure:"password"`
	Database            string        `mapstructure:"database"`
	SSLMode             string        `mapstructure:"sslMode"`
	MaxOpenConns        int           `mapstructure:"maxOpenConns"`
	MaxIdleConns        int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime     time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime     time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout        time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts       int           `mapstructure:"retryAttempts"`
	RetryDelay          time.Duration `mapstructure:"retryDelay"`          // seconds
	PoolMonitorInterval time.Duration `mapstructure:"poolMonitorInterval"` // seconds
	Isolation           string        `mapstructure:"isolation"`           // serializable or read_committed
	AutoMigrate         bool          `mapstructure:"autoMigrate"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"timeFormat"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// TransactionConfig contains transaction retry settings
type TransactionConfig struct {
	MaxRetries     int     `mapstructure:"maxRetries"`
	BaseIntervalMs int64   `mapstructure:"baseIntervalMs"`
	MaxIntervalMs  int64   `mapstructure:"maxIntervalMs"`
	JitterFactor   float64 `mapstructure:"jitterFactor"`
}

// WagerConfig contains betting rules and listing limits
type WagerConfig struct {
	PayoutMultiplier  int64            `mapstructure:"payoutMultiplier"`
	ColorMultipliers  map[string]int64 `mapstructure:"colorMultipliers"`
	AllowedColors     []string         `mapstructure:"allowedColors"`
	DefaultListLimit  int              `mapstructure:"defaultListLimit"`
	MaxListLimit      int              `mapstructure:"maxListLimit"`
	MinPasswordLength int              `mapstructure:"minPasswordLength"`
}

// AuthConfig contains identity token settings
type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwtSecret"`
	Issuer        string `mapstructure:"issuer"`
	TokenTTLHours int    `mapstructure:"tokenTTLHours"`
	BcryptCost    int    `mapstructure:"bcryptCost"`
}

// AdminConfig holds the bootstrap admin credentials; empty username disables it
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// KafkaConfig contains ledger event publishing settings; no brokers means log only
type KafkaConfig struct {
	Brokers      []string `mapstructure:"brokers"`
	Topic        string   `mapstructure:"topic"`
	ClientID     string   `mapstructure:"clientId"`
	MaxRetries   int      `mapstructure:"maxRetries"`
	RequiredAcks string   `mapstructure:"requiredAcks"` // all, local, none
}

// OutboxConfig contains dispatcher settings
type OutboxConfig struct {
	Enabled        bool  `mapstructure:"enabled"`
	PollIntervalMs int64 `mapstructure:"pollIntervalMs"`
	BatchSize      int   `mapstructure:"batchSize"`
	MaxAttempts    int   `mapstructure:"maxAttempts"`
}

// MetricsConfig contains Prometheus settings
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Path      string `mapstructure:"path"`
	Namespace string `mapstructure:"namespace"`
}

// TokenTTL returns the token lifetime as a duration
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// PollInterval returns the dispatcher poll interval as a duration
func (o OutboxConfig) PollInterval() time.Duration {
	return time.Duration(o.PollIntervalMs) * time.Millisecond
}
