package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/config"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config represents database configuration
type Config struct {
	Driver              string
	Host                string
	Port                int
	Username            string
	Password            string
	Database            string
	SSLMode             string
	MaxOpenConns        int
	MaxIdleConns        int
	ConnMaxLifetime     time.Duration
	ConnMaxIdleTime     time.Duration
	QueryTimeout        time.Duration
	LogLevel            string
	RetryAttempts       int
	RetryDelay          time.Duration
	PoolMonitorInterval time.Duration
	Isolation           string
	AutoMigrate         bool
}

// DefaultConfig returns a Config with default values. Credentials are left
// empty; they must come from configuration.
func DefaultConfig() *Config {
	return &Config{
		Driver:              DriverPostgres,
		Port:                5432,
		SSLMode:             "disable",
		MaxOpenConns:        50,
		MaxIdleConns:        25,
		ConnMaxLifetime:     30 * time.Minute,
		ConnMaxIdleTime:     15 * time.Minute,
		QueryTimeout:        5 * time.Second,
		LogLevel:            "warn",
		RetryAttempts:       3,
		RetryDelay:          time.Second,
		PoolMonitorInterval: 30 * time.Second,
		Isolation:           "serializable",
		AutoMigrate:         true,
	}
}

// CreateConfigFromAppConfig adapts the application configuration to database configuration
func CreateConfigFromAppConfig(conf *config.Config) *Config {
	dbConf := DefaultConfig()

	if conf.Database.Driver != "" {
		dbConf.Driver = conf.Database.Driver
	}
	dbConf.Host = conf.Database.Host
	if port := ParsePort(conf.Database.Port); port != 0 {
		dbConf.Port = port
	}
	dbConf.Username = conf.Database.Username
	dbConf.Password = conf.Database.Password
	dbConf.Database = conf.Database.Database

	if conf.Database.SSLMode != "" {
		dbConf.SSLMode = conf.Database.SSLMode
	}
	if conf.Database.MaxOpenConns > 0 {
		dbConf.MaxOpenConns = conf.Database.MaxOpenConns
	}
	if conf.Database.MaxIdleConns > 0 {
		dbConf.MaxIdleConns = conf.Database.MaxIdleConns
	}
	if conf.Database.ConnMaxLifetime > 0 {
		dbConf.ConnMaxLifetime = conf.Database.ConnMaxLifetime
	}
	if conf.Database.ConnMaxIdleTime > 0 {
		dbConf.ConnMaxIdleTime = conf.Database.ConnMaxIdleTime
	}
	if conf.Database.QueryTimeout > 0 {
		dbConf.QueryTimeout = conf.Database.QueryTimeout
	}
	if conf.Database.RetryAttempts >= 0 {
		dbConf.RetryAttempts = conf.Database.RetryAttempts
	}
	if conf.Database.RetryDelay > 0 {
		dbConf.RetryDelay = conf.Database.RetryDelay
	}
	if conf.Database.PoolMonitorInterval > 0 {
		dbConf.PoolMonitorInterval = conf.Database.PoolMonitorInterval
	}
	if conf.Database.Isolation != "" {
		dbConf.Isolation = conf.Database.Isolation
	}
	dbConf.AutoMigrate = conf.Database.AutoMigrate
	if conf.Logger.Level == "debug" {
		dbConf.LogLevel = "info"
	}

	return dbConf
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Driver == DriverMemory {
		return nil
	}
	if c.Driver != DriverPostgres {
		return fmt.Errorf("unsupported database driver: %s", c.Driver)
	}
	if c.Host == "" {
		return errors.New("database host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", c.Port)
	}
	if c.Username == "" {
		return errors.New("database username is required")
	}
	if c.Database == "" {
		return errors.New("database name is required")
	}

	validSSLModes := map[string]bool{
		"disable":     true,
		"require":     true,
		"verify-ca":   true,
		"verify-full": true,
		"prefer":      true,
	}
	if !validSSLModes[c.SSLMode] {
		return fmt.Errorf("invalid SSL mode: %s", c.SSLMode)
	}

	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("max open connections must be positive, got: %d", c.MaxOpenConns)
	}
	if c.MaxIdleConns <= 0 {
		return fmt.Errorf("max idle connections must be positive, got: %d", c.MaxIdleConns)
	}
	if c.QueryTimeout <= 0 {
		return errors.New("query timeout must be positive")
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts must be non-negative, got: %d", c.RetryAttempts)
	}
	if _, err := c.IsolationLevel(); err != nil {
		return err
	}
	return nil
}

// IsolationLevel maps the configured isolation name to database/sql's level.
//
// Repeatable read is refused: settlement reads the bets of a round after its
// conditional round update, and under a repeatable read snapshot a bet that
// committed while that update waited on the round's share lock stays invisible.
func (c *Config) IsolationLevel() (sql.IsolationLevel, error) {
	switch strings.ToLower(strings.ReplaceAll(c.Isolation, " ", "_")) {
	case "", "serializable":
		return sql.LevelSerializable, nil
	case "repeatable_read":
		return sql.LevelDefault, fmt.Errorf("isolation level %s is not supported, use serializable or read_committed", c.Isolation)
	case "read_committed":
		return sql.LevelReadCommitted, nil
	default:
		return sql.LevelDefault, fmt.Errorf("invalid isolation level: %s", c.Isolation)
	}
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode,
	)
}

// ParsePort converts a port string to an int, returning 0 when it is not a valid port
func ParsePort(port string) int {
	var p int
	_, err := fmt.Sscanf(port, "%d", &p)
	if err != nil || p <= 0 || p > 65535 {
		return 0
	}
	return p
}
