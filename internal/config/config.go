package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the full service configuration loaded from config.toml
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Booking   BookingConfig   `toml:"booking"`
	Gateway   GatewayConfig   `toml:"gateway"`
	Mailer    MailerConfig    `toml:"mailer"`
	Invoicing InvoicingConfig `toml:"invoicing"`
	Admin     AdminConfig     `toml:"admin"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN builds the Postgres connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig holds the slot policy knobs
type BookingConfig struct {
	Timezone           string `toml:"timezone"`
	HorizonDays        int    `toml:"horizon_days"`
	PreparedTTLMinutes int    `toml:"prepared_ttl_minutes"`
	SweepSchedule      string `toml:"sweep_schedule"`
}

// GatewayConfig configures the payment gateway client
type GatewayConfig struct {
	URL         string `toml:"url"`
	POSKey      string `toml:"pos_key"`
	CallbackURL string `toml:"callback_url"`
	RedirectURL string `toml:"redirect_url"`
	Timeout     int    `toml:"timeout"`
}

// MailerConfig configures the transactional email client
type MailerConfig struct {
	URL                 string `toml:"url"`
	APIKey              string `toml:"api_key"`
	FromEmail           string `toml:"from_email"`
	FromName            string `toml:"from_name"`
	OperatorEmail       string `toml:"operator_email"`
	ConfirmedTemplateHU string `toml:"confirmed_template_hu"`
	ConfirmedTemplateEN string `toml:"confirmed_template_en"`
	ChangedTemplateHU   string `toml:"changed_template_hu"`
	ChangedTemplateEN   string `toml:"changed_template_en"`
	CanceledTemplateHU  string `toml:"canceled_template_hu"`
	CanceledTemplateEN  string `toml:"canceled_template_en"`
	OperatorTemplate    string `toml:"operator_template"`
	ReservationBaseURL  string `toml:"reservation_base_url"`
	Timeout             int    `toml:"timeout"`
}

// InvoicingConfig configures the receipt issuer client
type InvoicingConfig struct {
	URL           string `toml:"url"`
	APIKey        string `toml:"api_key"`
	BlockID       int64  `toml:"block_id"`
	BankAccountID int64  `toml:"bank_account_id"`
	Timeout       int    `toml:"timeout"`
}

// AdminConfig holds the shared token protecting admin endpoints
type AdminConfig struct {
	Token string `toml:"token"`
}

// Load reads and validates the configuration file
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if cfg.Database.Host == "" {
		return nil, fmt.Errorf("config: database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, fmt.Errorf("config: database.dbname is required")
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "craftbeerspa"
	}
	if cfg.Booking.Timezone == "" {
		cfg.Booking.Timezone = "Europe/Budapest"
	}
	if cfg.Booking.HorizonDays == 0 {
		cfg.Booking.HorizonDays = 60
	}
	if cfg.Booking.PreparedTTLMinutes == 0 {
		cfg.Booking.PreparedTTLMinutes = 30
	}
	if cfg.Booking.SweepSchedule == "" {
		cfg.Booking.SweepSchedule = "@every 5m"
	}
	if cfg.Gateway.Timeout == 0 {
		cfg.Gateway.Timeout = 15
	}
	if cfg.Mailer.Timeout == 0 {
		cfg.Mailer.Timeout = 15
	}
	if cfg.Invoicing.Timeout == 0 {
		cfg.Invoicing.Timeout = 15
	}
}
