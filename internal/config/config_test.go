package config

import (
	"bytes"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "random", cfg.Billing.Numbering)
	assert.Equal(t, "relational", cfg.Billing.Store)
	assert.False(t, cfg.Billing.StrictQuantity)
	assert.Equal(t, 4*time.Hour, cfg.Billing.DraftTTL)
	assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
	assert.Equal(t, 10, cfg.Catalog.LowStockThreshold)
	assert.Equal(t, "none", cfg.Printer.Type)
	assert.Equal(t, "./storage/backups", cfg.Backup.Dir)
	assert.Equal(t, 30*time.Minute, cfg.Backup.CheckInterval)
	assert.Equal(t, 21, cfg.Alerts.SummaryHour)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("BILLING_NUMBERING", "Daily-Sequence")
	t.Setenv("BILLING_STRICT_QUANTITY", "true")
	t.Setenv("DB_DRIVER", "postgres")

	cfg := Load()

	assert.Equal(t, "daily-sequence", cfg.Billing.Numbering)
	assert.True(t, cfg.Billing.StrictQuantity)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", c.DSN())
}

func TestAppConfig_Location(t *testing.T) {
	c := AppConfig{Timezone: "UTC"}
	assert.Equal(t, time.UTC, c.Location())

	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	c = AppConfig{Timezone: "Not/AZone"}
	assert.Equal(t, time.Local, c.Location())
	assert.Contains(t, buf.String(), `invalid APP_TIMEZONE "Not/AZone"`)
}
