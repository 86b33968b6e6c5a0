package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Invite   InviteConfig   `mapstructure:"invite"`
	Email    EmailConfig    `mapstructure:"email"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres, sqlite
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	Path            string        `mapstructure:"path"` // sqlite file path
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DSN returns the postgres connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisConfig holds Redis configuration. An empty address disables Redis;
// the resend cooldown then degrades to always-allow.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig holds authentication configuration. The JWT secret signs both
// access tokens and invitation tokens.
type AuthConfig struct {
	JWTSecret         string        `mapstructure:"jwt_secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_token_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// InviteConfig holds invitation policy configuration.
type InviteConfig struct {
	// DefaultExpiryDays applies when neither the request nor the
	// organization specifies an expiry period.
	DefaultExpiryDays int `mapstructure:"default_expiry_days"`
	// ClientBaseURL is the web client origin embedded in register links.
	ClientBaseURL string `mapstructure:"client_base_url"`
	// ResendCooldown is the minimum interval between resends of one invite.
	ResendCooldown time.Duration `mapstructure:"resend_cooldown"`
}

// EmailConfig holds outbound email configuration.
type EmailConfig struct {
	Provider    string     `mapstructure:"provider"` // smtp, noop
	FromAddress string     `mapstructure:"from_address"`
	FromName    string     `mapstructure:"from_name"`
	QueueSize   int        `mapstructure:"queue_size"`
	Workers     int        `mapstructure:"workers"`
	SMTP        SMTPConfig `mapstructure:"smtp"`
}

// SMTPConfig holds SMTP transport configuration.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/teampulse")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found, use defaults and env
	}

	v.SetEnvPrefix("TEAMPULSE")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Override with environment variables for sensitive values
	if secret := os.Getenv("TEAMPULSE_JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if password := os.Getenv("TEAMPULSE_DB_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}
	if password := os.Getenv("TEAMPULSE_REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if password := os.Getenv("TEAMPULSE_SMTP_PASSWORD"); password != "" {
		cfg.Email.SMTP.Password = password
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)

	// Database defaults
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.database", "teampulse")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.path", "teampulse.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.conn_max_idle_time", 30*time.Minute)

	// Redis defaults (disabled unless an address is configured)
	v.SetDefault("redis.db", 0)

	// Auth defaults
	v.SetDefault("auth.access_token_expiry", 15*time.Minute)
	v.SetDefault("auth.issuer", "teampulse")

	// Invite defaults
	v.SetDefault("invite.default_expiry_days", 7)
	v.SetDefault("invite.client_base_url", "http://localhost:4200")
	v.SetDefault("invite.resend_cooldown", time.Minute)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.from_address", "no-reply@teampulse.local")
	v.SetDefault("email.from_name", "TeamPulse")
	v.SetDefault("email.queue_size", 256)
	v.SetDefault("email.workers", 4)
	v.SetDefault("email.smtp.port", 587)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
