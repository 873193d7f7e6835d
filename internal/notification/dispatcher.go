package notification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Channel names a delivery channel.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// DeliveryError reports that the transport behind a channel failed during
// live delivery. Err is the transport's original error.
type DeliveryError struct {
	Channel Channel
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to send notification %s: %v", e.Channel, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// EmailDispatcher hands composed emails to a Mailer, or only logs them when
// mock delivery is enabled.
type EmailDispatcher struct {
	mailer Mailer
	opts   EmailOptions
	logger *slog.Logger
}

// NewEmailDispatcher creates an EmailDispatcher. mailer may be nil when
// opts.MockDelivery is set.
func NewEmailDispatcher(mailer Mailer, opts EmailOptions, logger *slog.Logger) *EmailDispatcher {
	return &EmailDispatcher{mailer: mailer, opts: opts, logger: logger}
}

// Dispatch delivers msg. In mock mode it never fails; in live mode any
// transport error comes back as a *DeliveryError.
func (d *EmailDispatcher) Dispatch(ctx context.Context, msg EmailMessage) error {
	if d.opts.MockDelivery {
		d.logger.Info("mock email delivery",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject),
			slog.String("body", msg.Body),
		)
		return nil
	}

	if err := d.mailer.Send(ctx, msg); err != nil {
		return &DeliveryError{Channel: ChannelEmail, Err: err}
	}
	d.logger.Info("dispatched email notification",
		slog.String("to", msg.To),
		slog.String("transport", d.mailer.Name()),
	)
	return nil
}

// smsPayload is the provider's send-SMS request body.
type smsPayload struct {
	From string `json:"From"`
	To   string `json:"To"`
	Msg  string `json:"Msg"`
}

// SMSDispatcher hands composed SMS messages to an SMSGateway, or only logs
// them when mock delivery is enabled.
type SMSDispatcher struct {
	gateway SMSGateway
	opts    SMSOptions
	logger  *slog.Logger
}

// NewSMSDispatcher creates an SMSDispatcher. gateway may be nil when
// opts.MockDelivery is set.
func NewSMSDispatcher(gateway SMSGateway, opts SMSOptions, logger *slog.Logger) *SMSDispatcher {
	return &SMSDispatcher{gateway: gateway, opts: opts, logger: logger}
}

// Dispatch delivers msg. The destination is sanitized before it reaches the
// gateway; gateway errors come back as a *DeliveryError.
func (d *SMSDispatcher) Dispatch(ctx context.Context, msg SmsMessage) error {
	if d.opts.MockDelivery {
		d.logger.Info("mock sms delivery",
			slog.String("to", msg.To),
			slog.String("body", msg.Body),
		)
		return nil
	}

	payload := smsPayload{
		From: d.opts.SenderID,
		To:   SanitizePhone(msg.To),
		Msg:  msg.Body,
	}
	if err := d.gateway.Post(ctx, sendPath(d.opts.APIKey), payload); err != nil {
		return &DeliveryError{Channel: ChannelSMS, Err: err}
	}
	d.logger.Info("dispatched sms notification", slog.String("to", payload.To))
	return nil
}

func sendPath(apiKey string) string {
	return "/" + apiKey + "/ADDON_SERVICES/SEND/TSMS"
}

// SanitizePhone keeps only digits and a '+' that precedes every digit.
// "+1 (555) 123-4567" becomes "+15551234567".
func SanitizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
