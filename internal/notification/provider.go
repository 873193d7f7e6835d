// Package notification renders banking notifications and hands them to a
// delivery channel (email over SMTP or SMS over an HTTP gateway).
package notification

import "context"

// Mailer is the transport behind the email channel.
type Mailer interface {
	// Name returns the transport identifier (e.g. "smtp").
	Name() string
	// Send delivers msg. Implementations must be safe for concurrent use.
	Send(ctx context.Context, msg EmailMessage) error
}

// SMSGateway is the transport behind the SMS channel. Post sends payload as
// JSON to path, relative to the gateway's base URL.
type SMSGateway interface {
	Post(ctx context.Context, path string, payload any) error
}
