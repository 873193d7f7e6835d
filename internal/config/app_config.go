package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/shaharia-lab/bankalerts/internal/notification"
)

// DefaultLocalEnvFile is read on startup when present. Variables already set
// in the process environment take precedence over the file.
const DefaultLocalEnvFile = "env/local.env"

// AppConfig holds all application-level configuration loaded from environment variables.
// It is built once at startup and only read afterwards.
type AppConfig struct {
	// Port is the HTTP server port. Defaults to 8990.
	Port int `envconfig:"PORT" default:"8990"`

	// LogLevel sets the minimum log level (debug, info, warn, error). Defaults to info.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// LogDir enables rotating file logs under this directory. Empty logs to stderr.
	LogDir string `envconfig:"BANKALERTS_LOG_DIR"`

	// CORSOrigins is the comma separated list of allowed browser origins.
	CORSOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// MailFrom is the sender address for outgoing email.
	MailFrom string `envconfig:"NOTIFICATION_MAIL_FROM" default:"noreply@bank.example"`

	// MailMockDelivery logs emails instead of sending them.
	MailMockDelivery bool `envconfig:"NOTIFICATION_MAIL_MOCK_DELIVERY" default:"true"`

	MailHost       string `envconfig:"NOTIFICATION_MAIL_HOST" default:"localhost"`
	MailPort       int    `envconfig:"NOTIFICATION_MAIL_PORT" default:"587"`
	MailUsername   string `envconfig:"NOTIFICATION_MAIL_USERNAME"`
	MailPassword   string `envconfig:"NOTIFICATION_MAIL_PASSWORD"`
	MailEncryption string `envconfig:"NOTIFICATION_MAIL_ENCRYPTION" default:"starttls"`

	// SMSMockDelivery logs SMS messages instead of sending them.
	SMSMockDelivery bool   `envconfig:"NOTIFICATION_SMS_MOCK_DELIVERY" default:"true"`
	SMSBaseURL      string `envconfig:"NOTIFICATION_SMS_BASE_URL"`
	SMSAPIKey       string `envconfig:"NOTIFICATION_SMS_API_KEY"`
	SMSSenderID     string `envconfig:"NOTIFICATION_SMS_SENDER_ID"`

	// HighValueThreshold is the default amount, in any currency, at or above
	// which a transaction triggers an alert.
	HighValueThreshold decimal.Decimal `envconfig:"NOTIFICATION_THRESHOLDS_HIGH_VALUE_TRANSACTION" default:"10000"`
}

// smsAliases maps provider-style variable names onto SMS settings that were
// left empty.
var smsAliases = []struct {
	env    string
	target func(*AppConfig) *string
}{
	{"TWILIO_BASE_URL", func(c *AppConfig) *string { return &c.SMSBaseURL }},
	{"TWILIO_API_KEY", func(c *AppConfig) *string { return &c.SMSAPIKey }},
	{"TWILIO_SENDER_ID", func(c *AppConfig) *string { return &c.SMSSenderID }},
}

// Load reads AppConfig from environment variables using envconfig, after
// merging envFile into the environment when that file exists.
func Load(envFile string) (*AppConfig, error) {
	if envFile != "" {
		if err := loadEnvFile(envFile); err != nil {
			return nil, err
		}
	}

	var c AppConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	for _, a := range smsAliases {
		if dst := a.target(&c); *dst == "" {
			*dst = os.Getenv(a.env)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("checking env file %q: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %q: %w", path, err)
	}
	return nil
}

// Validate checks the values the dispatchers and service depend on.
func (c *AppConfig) Validate() error {
	if !c.HighValueThreshold.IsPositive() {
		return fmt.Errorf("invalid config: high value threshold must be positive, got %s", c.HighValueThreshold)
	}
	if _, err := mail.ParseAddress(c.MailFrom); err != nil {
		return fmt.Errorf("invalid config: mail from address %q: %w", c.MailFrom, err)
	}
	if !c.MailMockDelivery && strings.TrimSpace(c.MailHost) == "" {
		return errors.New("invalid config: NOTIFICATION_MAIL_HOST is required for live email delivery")
	}
	if !c.SMSMockDelivery {
		if c.SMSBaseURL == "" {
			return errors.New("invalid config: NOTIFICATION_SMS_BASE_URL is required for live sms delivery")
		}
		if c.SMSAPIKey == "" {
			return errors.New("invalid config: NOTIFICATION_SMS_API_KEY is required for live sms delivery")
		}
	}
	return nil
}

// SlogLevel converts the LogLevel string to a slog.Level.
// Unknown values default to slog.LevelInfo.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SMTP returns the mailer connection settings.
func (c *AppConfig) SMTP() notification.SMTPConfig {
	return notification.SMTPConfig{
		Host:       c.MailHost,
		Port:       c.MailPort,
		Username:   c.MailUsername,
		Password:   c.MailPassword,
		FromAddr:   c.MailFrom,
		Encryption: c.MailEncryption,
	}
}

// EmailOptions returns the email dispatcher settings.
func (c *AppConfig) EmailOptions() notification.EmailOptions {
	return notification.EmailOptions{MockDelivery: c.MailMockDelivery}
}

// SMSOptions returns the SMS dispatcher settings.
func (c *AppConfig) SMSOptions() notification.SMSOptions {
	return notification.SMSOptions{
		MockDelivery: c.SMSMockDelivery,
		APIKey:       c.SMSAPIKey,
		SenderID:     c.SMSSenderID,
	}
}
