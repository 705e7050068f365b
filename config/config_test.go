package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FileValues(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":8181"
redis:
  addr: "localhost:6379"
kafka:
  brokers: ["localhost:9092"]
  booking_topic: "bookings"
pricing:
  reset_after_minutes: 15
  surcharge_percent: 20
wallet:
  initial_balance: 1000
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8181", cfg.HTTP.Address)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 15, cfg.Pricing.ResetAfterMinutes)
	assert.Equal(t, int64(20), cfg.Pricing.SurchargePercent)
	assert.Equal(t, int64(1000), cfg.Wallet.InitialBalance)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, "flightdesk.db", cfg.Store.Path)
	assert.Equal(t, 10, cfg.Search.DefaultCount)
	assert.Equal(t, 50, cfg.Search.MaxCount)
	assert.Equal(t, 30*time.Minute, cfg.Search.SessionTTL())
	assert.Equal(t, int64(50000), cfg.Wallet.InitialBalance)
	assert.False(t, cfg.Database.Enabled())
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":8181"
store:
  path: "from-file.db"
`)
	t.Setenv("FLIGHTDESK_HTTP_ADDRESS", ":9999")
	t.Setenv("FLIGHTDESK_WALLET_INITIAL_BALANCE", "7500")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTP.Address)
	assert.Equal(t, int64(7500), cfg.Wallet.InitialBalance)
	assert.Equal(t, "from-file.db", cfg.Store.Path)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "flights", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=flights sslmode=disable", d.DSN())
	assert.True(t, d.Enabled())
}

func TestLoadConfig_IgnoresUnprefixedEnv(t *testing.T) {
	t.Setenv("PATH", "/usr/bin")
	t.Setenv("USER", "someone")

	cfg, err := LoadConfig(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, "flightdesk.db", cfg.Store.Path)
	assert.Empty(t, cfg.Database.User)
}
