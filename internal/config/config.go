package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Log         LogConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Idempotency IdempotencyConfig
	Billing     BillingConfig
	Catalog     CatalogConfig
	Printer     PrinterConfig
	Email       EmailConfig
	Share       ShareConfig
	Backup      BackupConfig
	Alerts      AlertsConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Debug    bool
	Timezone string
}

// Location resolves the configured timezone, falling back to local time
func (c *AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: invalid APP_TIMEZONE %q, using local time: %v", c.Timezone, err)
		return time.Local
	}
	return loc
}

type DatabaseConfig struct {
	Driver       string // sqlite or postgres
	Path         string // sqlite file
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	Timezone     string
	MaxIdleConns int
	MaxOpenConns int
	LogLevel     string
	SeedSamples  bool
}

type LogConfig struct {
	Level  string
	Format string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type IdempotencyConfig struct {
	TTL time.Duration
}

type BillingConfig struct {
	Numbering      string // random or daily-sequence
	Store          string // relational or keyvalue
	StrictQuantity bool
	DraftTTL       time.Duration
}

type CatalogConfig struct {
	LowStockThreshold int
}

type PrinterConfig struct {
	Type      string
	USBPath   string
	Address   string
	CharWidth int
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// BackupConfig controls automatic snapshots. An empty Dir disables them.
type BackupConfig struct {
	Dir           string
	CheckInterval time.Duration
}

// AlertsConfig schedules the WhatsApp owner alerts. Summaries go out once
// SummaryHour has passed in the app timezone; the weekly one on Sundays.
type AlertsConfig struct {
	CheckInterval time.Duration
	SummaryHour   int
}

// ShareConfig selects the senders offered for sharing bills
type ShareConfig struct {
	Channels []string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	setDefaults()

	return &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Env:      viper.GetString("APP_ENV"),
			Port:     viper.GetString("APP_PORT"),
			Debug:    viper.GetBool("APP_DEBUG"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(viper.GetString("DB_DRIVER")),
			Path:         viper.GetString("DB_PATH"),
			Host:         viper.GetString("DB_HOST"),
			Port:         viper.GetString("DB_PORT"),
			Name:         viper.GetString("DB_NAME"),
			User:         viper.GetString("DB_USER"),
			Password:     viper.GetString("DB_PASSWORD"),
			SSLMode:      viper.GetString("DB_SSL_MODE"),
			Timezone:     viper.GetString("DB_TIMEZONE"),
			MaxIdleConns: viper.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: viper.GetInt("DB_MAX_OPEN_CONNS"),
			LogLevel:     viper.GetString("DB_LOG_LEVEL"),
			SeedSamples:  viper.GetBool("DB_SEED_SAMPLES"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Idempotency: IdempotencyConfig{
			TTL: time.Duration(viper.GetInt("IDEMPOTENCY_TTL_HOURS")) * time.Hour,
		},
		Billing: BillingConfig{
			Numbering:      strings.ToLower(viper.GetString("BILLING_NUMBERING")),
			Store:          strings.ToLower(viper.GetString("BILLING_STORE")),
			StrictQuantity: viper.GetBool("BILLING_STRICT_QUANTITY"),
			DraftTTL:       time.Duration(viper.GetInt("BILLING_DRAFT_TTL_MINUTES")) * time.Minute,
		},
		Catalog: CatalogConfig{
			LowStockThreshold: viper.GetInt("CATALOG_LOW_STOCK_THRESHOLD"),
		},
		Printer: PrinterConfig{
			Type:      viper.GetString("PRINTER_TYPE"),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			CharWidth: viper.GetInt("PRINTER_CHAR_WIDTH"),
		},
		Email: EmailConfig{
			SMTPHost:     viper.GetString("SMTP_HOST"),
			SMTPPort:     viper.GetInt("SMTP_PORT"),
			SMTPUsername: viper.GetString("SMTP_USERNAME"),
			SMTPPassword: viper.GetString("SMTP_PASSWORD"),
			FromName:     viper.GetString("SMTP_FROM_NAME"),
			FromEmail:    viper.GetString("SMTP_FROM_EMAIL"),
		},
		Share: ShareConfig{
			Channels: viper.GetStringSlice("SHARE_CHANNELS"),
		},
		Backup: BackupConfig{
			Dir:           viper.GetString("BACKUP_DIR"),
			CheckInterval: time.Duration(viper.GetInt("BACKUP_CHECK_INTERVAL_MINUTES")) * time.Minute,
		},
		Alerts: AlertsConfig{
			CheckInterval: time.Duration(viper.GetInt("ALERTS_CHECK_INTERVAL_MINUTES")) * time.Minute,
			SummaryHour:   viper.GetInt("ALERTS_SUMMARY_HOUR"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "smartventory-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_PATH", "./storage/smartventory.db")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "smartventory")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
	viper.SetDefault("DB_MAX_OPEN_CONNS", 100)
	viper.SetDefault("DB_LOG_LEVEL", "warn")
	viper.SetDefault("DB_SEED_SAMPLES", true)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("IDEMPOTENCY_TTL_HOURS", 24)
	viper.SetDefault("BILLING_NUMBERING", "random")
	viper.SetDefault("BILLING_STORE", "relational")
	viper.SetDefault("BILLING_STRICT_QUANTITY", false)
	viper.SetDefault("BILLING_DRAFT_TTL_MINUTES", 240)
	viper.SetDefault("CATALOG_LOW_STOCK_THRESHOLD", 10)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_CHAR_WIDTH", 32)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_FROM_NAME", "Smartventory")
	viper.SetDefault("SHARE_CHANNELS", "whatsapp")
	viper.SetDefault("BACKUP_DIR", "./storage/backups")
	viper.SetDefault("BACKUP_CHECK_INTERVAL_MINUTES", 30)
	viper.SetDefault("ALERTS_CHECK_INTERVAL_MINUTES", 15)
	viper.SetDefault("ALERTS_SUMMARY_HOUR", 21)
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
