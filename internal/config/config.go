package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Email       EmailConfig       `yaml:"email"`
	Maps        MapsConfig        `yaml:"maps"`
	Stripe      StripeConfig      `yaml:"stripe"`
	ESignatures ESignaturesConfig `yaml:"esignatures"`
	Push        PushConfig        `yaml:"push"`
	Auth        AuthConfig        `yaml:"auth"`
	Frontend    FrontendConfig    `yaml:"frontend"`
	Log         LogConfig         `yaml:"log"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// EmailConfig contains SendGrid settings
type EmailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromEmail      string `yaml:"from_email"`
	FromName       string `yaml:"from_name"`
}

// MapsConfig contains Google Maps Distance Matrix settings
type MapsConfig struct {
	APIKey string `yaml:"api_key"`
}

// StripeConfig contains payment link settings
type StripeConfig struct {
	SecretKey string `yaml:"secret_key"`
}

// ESignaturesConfig contains eSignatures.io settings
type ESignaturesConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	TemplateID string `yaml:"template_id"`
}

// PushConfig selects and configures the push notification provider.
// Provider is "pushover", "fcm" or "" (push disabled).
type PushConfig struct {
	Provider string         `yaml:"provider"`
	Pushover PushoverConfig `yaml:"pushover"`
	FCM      FCMConfig      `yaml:"fcm"`
}

type PushoverConfig struct {
	Token   string `yaml:"token"`
	UserKey string `yaml:"user_key"`
}

type FCMConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	Topic           string `yaml:"topic"`
}

// AuthConfig contains back-office operator credentials and JWT settings
type AuthConfig struct {
	JWTSecret         string `yaml:"jwt_secret"`
	AdminEmail        string `yaml:"admin_email"`
	AdminPasswordHash string `yaml:"admin_password_hash"` // bcrypt
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// FrontendConfig contains the customer-facing site settings
type FrontendConfig struct {
	URL string `yaml:"url"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	QuoteFollowUps         string `yaml:"quote_follow_ups"`
	InstallationReminders  string `yaml:"installation_reminders"`
	QuoteFollowUpAfterDays int    `yaml:"quote_follow_up_after_days"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Provider credentials
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridAPIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.FromEmail = val
	}
	if val := os.Getenv("GOOGLE_MAPS_API_KEY"); val != "" {
		c.Maps.APIKey = val
	}
	if val := os.Getenv("STRIPE_SECRET_KEY"); val != "" {
		c.Stripe.SecretKey = val
	}
	if val := os.Getenv("ESIGNATURES_API_KEY"); val != "" {
		c.ESignatures.APIKey = val
	}
	if val := os.Getenv("PUSHOVER_API_TOKEN"); val != "" {
		c.Push.Pushover.Token = val
	}
	if val := os.Getenv("PUSHOVER_USER_KEY"); val != "" {
		c.Push.Pushover.UserKey = val
	}

	// Auth
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.Auth.JWTSecret = val
	}

	// Frontend
	if val := os.Getenv("FRONTEND_URL"); val != "" {
		c.Frontend.URL = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

var frontendURLPattern = regexp.MustCompile(`^https?://.+`)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// Auth validation
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.Auth.AdminEmail == "" {
		return fmt.Errorf("admin email is required")
	}
	if c.Auth.AdminPasswordHash == "" {
		return fmt.Errorf("admin password hash is required")
	}
	if c.Auth.AccessTokenExpiry <= 0 {
		c.Auth.AccessTokenExpiry = 60
	}

	// Frontend validation; payment link redirects and quote links depend on it
	if !frontendURLPattern.MatchString(c.Frontend.URL) {
		return fmt.Errorf("invalid frontend URL: %q", c.Frontend.URL)
	}

	// Push validation
	switch c.Push.Provider {
	case "", "pushover", "fcm":
	default:
		return fmt.Errorf("unsupported push provider: %q", c.Push.Provider)
	}
	if c.Push.Provider == "pushover" && (c.Push.Pushover.Token == "" || c.Push.Pushover.UserKey == "") {
		return fmt.Errorf("pushover token and user key are required")
	}
	if c.Push.Provider == "fcm" && c.Push.FCM.CredentialsFile == "" {
		return fmt.Errorf("FCM credentials file is required")
	}

	// ESignatures defaults
	if c.ESignatures.BaseURL == "" {
		c.ESignatures.BaseURL = "https://esignatures.io/api"
	}

	// Scheduler defaults
	if c.Scheduler.QuoteFollowUps == "" {
		c.Scheduler.QuoteFollowUps = "0 0 15 * * *" // 3 PM UTC daily
	}
	if c.Scheduler.InstallationReminders == "" {
		c.Scheduler.InstallationReminders = "0 0 13 * * *" // 1 PM UTC daily
	}
	if c.Scheduler.QuoteFollowUpAfterDays <= 0 {
		c.Scheduler.QuoteFollowUpAfterDays = 3
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
