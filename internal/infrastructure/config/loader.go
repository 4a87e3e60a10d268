package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	// A missing file is fine; defaults and BP_* variables still apply
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("BP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	return decode(v, env)
}

// decode unmarshals v and converts the unit-less duration fields
func decode(v *viper.Viper, env string) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.Environment = env
	processDurations(&config)
	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds
	v.SetDefault("server.corsOrigins", []string{"*"})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1)           // seconds
	v.SetDefault("database.poolMonitorInterval", 30) // seconds
	v.SetDefault("database.isolation", "serializable")
	v.SetDefault("database.autoMigrate", true)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.callerInfo", true)

	v.SetDefault("transaction.maxRetries", 3)
	v.SetDefault("transaction.baseIntervalMs", 20)
	v.SetDefault("transaction.maxIntervalMs", 500)
	v.SetDefault("transaction.jitterFactor", 0.2)

	v.SetDefault("wager.payoutMultiplier", 2)
	v.SetDefault("wager.allowedColors", []string{"red", "black", "green"})
	v.SetDefault("wager.defaultListLimit", 20)
	v.SetDefault("wager.maxListLimit", 100)
	v.SetDefault("wager.minPasswordLength", 6)

	v.SetDefault("auth.issuer", "wager-ledger")
	v.SetDefault("auth.tokenTTLHours", 24*7)
	v.SetDefault("auth.bcryptCost", 10)

	v.SetDefault("kafka.topic", "ledger-events")
	v.SetDefault("kafka.clientId", "wager-ledger")
	v.SetDefault("kafka.maxRetries", 5)
	v.SetDefault("kafka.requiredAcks", "all")

	v.SetDefault("outbox.enabled", true)
	v.SetDefault("outbox.pollIntervalMs", 1000)
	v.SetDefault("outbox.batchSize", 100)
	v.SetDefault("outbox.maxAttempts", 10)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.namespace", "wager_ledger")
}

// getEnvironment determines the environment to use based on BP_ENV environment variable
func getEnvironment() string {
	env := os.Getenv("BP_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides makes the documented BP_* variables win over config files.
// Keys whose env name differs from the viper path are mapped explicitly.
func processEnvOverrides(v *viper.Viper) {
	strOverrides := map[string]string{
		"BP_DB_DRIVER":      "database.driver",
		"BP_DB_HOST":        "database.host",
		"BP_DB_PORT":        "database.port",
		"BP_DB_USERNAME":    "database.username",
		"BP_DB_PASSWORD":    "database.password",
		"BP_DB_NAME":        "database.database",
		"BP_DB_SSL_MODE":    "database.sslMode",
		"BP_DB_ISOLATION":   "database.isolation",
		"BP_SERVER_HOST":    "server.host",
		"BP_SERVER_PORT":    "server.port",
		"BP_LOGGER_LEVEL":   "logger.level",
		"BP_LOGGER_FORMAT":  "logger.format",
		"BP_JWT_SECRET":     "auth.jwtSecret",
		"BP_ADMIN_USERNAME": "admin.username",
		"BP_ADMIN_PASSWORD": "admin.password",
		"BP_KAFKA_TOPIC":    "kafka.topic",
	}
	for env, key := range strOverrides {
		if value := os.Getenv(env); value != "" {
			v.Set(key, value)
		}
	}

	intOverrides := map[string]string{
		"BP_DB_MAX_OPEN_CONNS":             "database.maxOpenConns",
		"BP_DB_MAX_IDLE_CONNS":             "database.maxIdleConns",
		"BP_DB_CONN_MAX_LIFETIME_MINUTES":  "database.connMaxLifetime",
		"BP_DB_CONN_MAX_IDLE_TIME_MINUTES": "database.connMaxIdleTime",
		"BP_DB_QUERY_TIMEOUT_SECONDS":      "database.queryTimeout",
		"BP_DB_RETRY_ATTEMPTS":             "database.retryAttempts",
		"BP_DB_RETRY_DELAY_SECONDS":        "database.retryDelay",
		"BP_TRANSACTION_MAX_RETRIES":       "transaction.maxRetries",
		"BP_WAGER_PAYOUT_MULTIPLIER":       "wager.payoutMultiplier",
		"BP_OUTBOX_BATCH_SIZE":             "outbox.batchSize",
	}
	for env, key := range intOverrides {
		if value, ok := getEnvInt(env); ok {
			v.Set(key, value)
		}
	}

	if brokers := os.Getenv("BP_KAFKA_BROKERS"); brokers != "" {
		v.Set("kafka.brokers", splitList(brokers))
	}
	if colors := os.Getenv("BP_WAGER_ALLOWED_COLORS"); colors != "" {
		v.Set("wager.allowedColors", splitList(colors))
	}
}

// getEnvInt reads an integer variable; unset or malformed values are ignored
func getEnvInt(name string) (int, bool) {
	valStr := os.Getenv(name)
	if valStr == "" {
		return 0, false
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, false
	}
	return val, true
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute

	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second
	config.Database.PoolMonitorInterval = time.Duration(config.Database.PoolMonitorInterval) * time.Second
}

// Validate rejects settings the service cannot start with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" || c.Database.Database == "" || c.Database.Username == "" {
			return errors.New("database host, name and username are required for the postgres driver")
		}
		switch strings.ToLower(strings.ReplaceAll(c.Database.Isolation, " ", "_")) {
		case "", "serializable", "read_committed":
		default:
			return fmt.Errorf("database.isolation must be serializable or read_committed, got: %s", c.Database.Isolation)
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwtSecret (BP_JWT_SECRET) is required")
	}
	if c.Auth.TokenTTLHours <= 0 {
		return fmt.Errorf("auth.tokenTTLHours must be positive, got: %d", c.Auth.TokenTTLHours)
	}
	if c.Wager.PayoutMultiplier <= 0 {
		return fmt.Errorf("wager.payoutMultiplier must be positive, got: %d", c.Wager.PayoutMultiplier)
	}
	if c.Wager.DefaultListLimit <= 0 || c.Wager.MaxListLimit < c.Wager.DefaultListLimit {
		return fmt.Errorf("invalid list limits: default %d, max %d", c.Wager.DefaultListLimit, c.Wager.MaxListLimit)
	}
	if c.Transaction.MaxRetries < 0 {
		return fmt.Errorf("transaction.maxRetries must be non-negative, got: %d", c.Transaction.MaxRetries)
	}
	if c.Admin.Username != "" && c.Admin.Password == "" {
		return errors.New("admin.password is required when admin.username is set")
	}
	if c.Outbox.Enabled && (c.Outbox.BatchSize <= 0 || c.Outbox.PollIntervalMs <= 0) {
		return errors.New("outbox.batchSize and outbox.pollIntervalMs must be positive")
	}
	return nil
}
