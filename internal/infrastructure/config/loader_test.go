package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFromDir(t *testing.T, env, yaml string) *Config {
	t.Helper()

	dir := t.TempDir()
	if yaml != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, env+".yaml"), []byte(yaml), 0o600))
	}

	oldPaths, oldDotEnv := ConfigPaths, DotEnvPaths
	ConfigPaths = []string{dir}
	DotEnvPaths = []string{filepath.Join(dir, ".env")}
	t.Cleanup(func() { ConfigPaths, DotEnvPaths = oldPaths, oldDotEnv })

	t.Setenv("BP_ENV", env)
	cfg, err := LoadConfig()
	require.NoError(t, err)
	return cfg
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := loadFromDir(t, "test", "")

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "serializable", cfg.Database.Isolation)
	assert.Equal(t, int64(2), cfg.Wager.PayoutMultiplier)
	assert.Equal(t, []string{"red", "black", "green"}, cfg.Wager.AllowedColors)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, "ledger-events", cfg.Kafka.Topic)
	assert.Equal(t, time.Second, cfg.Outbox.PollInterval())
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadConfig_FileAndEnvOverrides(t *testing.T) {
	t.Setenv("BP_DB_HOST", "db.internal")
	t.Setenv("BP_JWT_SECRET", "from-env")
	t.Setenv("BP_KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("BP_TRANSACTION_MAX_RETRIES", "9")
	t.Setenv("BP_WAGER_ALLOWED_COLORS", "red,black")
	t.Setenv("BP_OUTBOX_BATCH_SIZE", "not-a-number")

	cfg := loadFromDir(t, "development", `
server:
  port: 9090
  shutdownTimeout: 3
database:
  host: "localhost"
  queryTimeout: 2
wager:
  payoutMultiplier: 3
  colorMultipliers:
    green: 14
auth:
  jwtSecret: "from-file"
outbox:
  batchSize: 25
`)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 2*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, int64(3), cfg.Wager.PayoutMultiplier)
	assert.Equal(t, int64(14), cfg.Wager.ColorMultipliers["green"])
	assert.Equal(t, []string{"red", "black"}, cfg.Wager.AllowedColors)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 9, cfg.Transaction.MaxRetries)
	assert.Equal(t, 25, cfg.Outbox.BatchSize)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), []byte("server: [unclosed"), 0o600))

	oldPaths := ConfigPaths
	ConfigPaths = []string{dir}
	t.Cleanup(func() { ConfigPaths = oldPaths })
	t.Setenv("BP_ENV", "test")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
	assert.Nil(t, splitList(""))
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	v.Set("auth.jwtSecret", "secret")
	v.Set("database.driver", "memory")
	cfg, err := decode(v, Test)
	require.NoError(t, err)
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, validConfig(t).Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "sqlite" }},
		{"postgres without host", func(c *Config) { c.Database.Driver = "postgres" }},
		{"repeatable read isolation", func(c *Config) {
			c.Database.Driver = "postgres"
			c.Database.Host = "db"
			c.Database.Database = "ledger"
			c.Database.Username = "ledger"
			c.Database.Isolation = "repeatable_read"
		}},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTLHours = 0 }},
		{"zero multiplier", func(c *Config) { c.Wager.PayoutMultiplier = 0 }},
		{"max below default", func(c *Config) { c.Wager.MaxListLimit = 5 }},
		{"negative retries", func(c *Config) { c.Transaction.MaxRetries = -1 }},
		{"admin without password", func(c *Config) { c.Admin.Username = "root" }},
		{"outbox without batch", func(c *Config) { c.Outbox.BatchSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
