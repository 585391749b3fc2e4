package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Environment   string              `mapstructure:"environment"`
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Security      SecurityConfig      `mapstructure:"security"`
	OAuth         OAuthConfig         `mapstructure:"oauth"`
	Mailer        MailerConfig        `mapstructure:"mailer"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Source          string        `mapstructure:"source"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type SecurityConfig struct {
	// Symmetric secret for session and reset tokens.
	TokenSecret     string        `mapstructure:"token_secret"`
	SessionTokenTTL time.Duration `mapstructure:"session_token_ttl"`
	ResetTokenTTL   time.Duration `mapstructure:"reset_token_ttl"`
	BCryptCost      int           `mapstructure:"bcrypt_cost"`
}

type OAuthConfig struct {
	Apple  AppleConfig  `mapstructure:"apple"`
	Google GoogleConfig `mapstructure:"google"`
}

type AppleConfig struct {
	ClientID string `mapstructure:"client_id"`
	KeysURL  string `mapstructure:"keys_url"`
}

type GoogleConfig struct {
	ClientID string `mapstructure:"client_id"`
}

type MailerConfig struct {
	SMTPHost    string `mapstructure:"smtp_host"`
	SMTPPort    int    `mapstructure:"smtp_port"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	From        string `mapstructure:"from"`
	FrontendURL string `mapstructure:"frontend_url"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	defaultSessionTokenTTL = 24 * time.Hour
	defaultResetTokenTTL   = time.Hour
	defaultMaxOpenConns    = 10
)

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// LoadConfigFromEnv builds the config from environment variables for
// container deployments where no config file is mounted.
func LoadConfigFromEnv() *Config {
	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:              getEnvAsInt("HTTP_PORT", 3000),
			BaseURL:           getEnv("HTTP_BASE_URL", "http://localhost:3000"),
			AllowedOrigins:    getEnv("HTTP_ALLOWED_ORIGINS", "*"),
			ReadHeaderTimeout: getEnvAsDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:      getEnvAsDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:       getEnvAsDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "postgres"),
			Source:          getEnv("DB_SOURCE", ""),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", defaultMaxOpenConns),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Security: SecurityConfig{
			TokenSecret:     getEnv("JWT_SECRET", ""),
			SessionTokenTTL: getEnvAsDuration("JWT_EXPIRATION", defaultSessionTokenTTL),
			ResetTokenTTL:   getEnvAsDuration("JWT_RESET_EXPIRATION", defaultResetTokenTTL),
			BCryptCost:      getEnvAsInt("BCRYPT_SALT_ROUNDS", bcrypt.DefaultCost),
		},
		OAuth: OAuthConfig{
			Apple: AppleConfig{
				ClientID: getEnv("APPLE_CLIENT_ID", ""),
				KeysURL:  getEnv("APPLE_KEYS_URL", "https://appleid.apple.com/auth/keys"),
			},
			Google: GoogleConfig{
				ClientID: getEnv("GOOGLE_CLIENT_ID", ""),
			},
		},
		Mailer: MailerConfig{
			SMTPHost:    getEnv("SMTP_HOST", ""),
			SMTPPort:    getEnvAsInt("SMTP_PORT", 587),
			Username:    getEnv("SMTP_USER", ""),
			Password:    getEnv("SMTP_PASS", ""),
			From:        getEnv("EMAIL_FROM", "support@example.com"),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case "", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported driver %q", c.Driver)
	}
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *SecurityConfig) Validate() error {
	if c.TokenSecret == "" {
		return errors.New("token_secret is required")
	}
	if c.BCryptCost != 0 && (c.BCryptCost < bcrypt.MinCost || c.BCryptCost > bcrypt.MaxCost) {
		return fmt.Errorf("bcrypt_cost out of range: %d", c.BCryptCost)
	}
	return nil
}

// SessionTTL returns the configured session token lifetime, defaulting to 24h.
func (c *SecurityConfig) SessionTTL() time.Duration {
	if c.SessionTokenTTL <= 0 {
		return defaultSessionTokenTTL
	}
	return c.SessionTokenTTL
}

// ResetTTL returns the configured reset token lifetime, defaulting to 1h.
func (c *SecurityConfig) ResetTTL() time.Duration {
	if c.ResetTokenTTL <= 0 {
		return defaultResetTokenTTL
	}
	return c.ResetTokenTTL
}

func (c *SecurityConfig) Cost() int {
	if c.BCryptCost == 0 {
		return bcrypt.DefaultCost
	}
	return c.BCryptCost
}
