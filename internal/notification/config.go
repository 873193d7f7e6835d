package notification

// SMTPConfig holds connection parameters for the SMTP mailer.
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	FromAddr   string
	Encryption string // "none", "starttls", "ssl_tls"
}

// EmailOptions configures an EmailDispatcher.
type EmailOptions struct {
	MockDelivery bool
}

// SMSOptions configures an SMSDispatcher.
type SMSOptions struct {
	MockDelivery bool
	APIKey       string
	SenderID     string
}
