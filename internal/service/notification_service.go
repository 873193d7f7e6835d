package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shaharia-lab/bankalerts/internal/metrics"
	"github.com/shaharia-lab/bankalerts/internal/notification"
)

// Notification kinds used for logging and metrics.
const (
	KindHighValueTransaction = "high_value_transaction"
	KindAccountStatusChange  = "account_status_change"
	KindAccountEvent         = "account_event"
	KindTestEmail            = "test_email"
	KindTestSMS              = "test_sms"
)

const (
	testEmailSubject = "Banking Alerts test notification"
	testEmailBody    = "This is a test notification from Banking Alerts.\n\nYour email delivery configuration is working correctly."
	testSMSBody      = "Banking Alerts test notification: your SMS delivery configuration is working correctly."
)

// EmailDispatcher delivers composed emails.
type EmailDispatcher interface {
	Dispatch(ctx context.Context, msg notification.EmailMessage) error
}

// SMSDispatcher delivers composed SMS messages.
type SMSDispatcher interface {
	Dispatch(ctx context.Context, msg notification.SmsMessage) error
}

// NotificationService turns inbound banking events into at most one
// outbound message each.
type NotificationService interface {
	// HandleHighValueTransaction emails an alert when the amount reaches the
	// effective threshold. It reports whether a message was dispatched;
	// an amount below threshold yields (false, nil).
	HandleHighValueTransaction(ctx context.Context, req notification.HighValueTransactionRequest) (bool, error)
	// HandleAccountStatusChange always emails the customer.
	HandleAccountStatusChange(ctx context.Context, req notification.AccountStatusChangeRequest) error
	// HandleAccountEvent always emails the customer.
	HandleAccountEvent(ctx context.Context, req notification.AccountEventRequest) error
	// SendTestEmail sends a fixed message to to through the email channel.
	SendTestEmail(ctx context.Context, to string) error
	// SendTestSMS sends a fixed message to to through the SMS channel.
	SendTestSMS(ctx context.Context, to string) error
}

// notificationServiceImpl implements NotificationService.
type notificationServiceImpl struct {
	composer  notification.Composer
	email     EmailDispatcher
	sms       SMSDispatcher
	threshold decimal.Decimal
	metrics   *metrics.Recorder
	logger    *slog.Logger
}

// NewNotificationService creates a new NotificationService. threshold is the
// configured high value threshold applied when a request has no override.
func NewNotificationService(
	email EmailDispatcher,
	sms SMSDispatcher,
	threshold decimal.Decimal,
	recorder *metrics.Recorder,
	logger *slog.Logger,
) NotificationService {
	return &notificationServiceImpl{
		email:     email,
		sms:       sms,
		threshold: threshold,
		metrics:   recorder,
		logger:    logger,
	}
}

func (s *notificationServiceImpl) HandleHighValueTransaction(ctx context.Context, req notification.HighValueTransactionRequest) (bool, error) {
	if err := validateHighValueTransaction(req); err != nil {
		return false, err
	}

	logger := s.requestLogger(KindHighValueTransaction, req.AccountNumber)
	threshold := notification.ResolveThreshold(req.ThresholdOverride, s.threshold)
	if req.Amount.LessThan(threshold) {
		logger.Info("skipping high value alert for transaction below threshold",
			slog.String("amount", req.Amount.String()),
			slog.String("threshold", threshold.String()),
		)
		s.metrics.Observe(KindHighValueTransaction, true, nil)
		return false, nil
	}

	msg := s.composer.ComposeHighValueTransaction(req, decimal.NewNullDecimal(threshold))
	if err := s.sendEmail(ctx, logger, KindHighValueTransaction, msg); err != nil {
		return false, err
	}
	return true, nil
}

func (s *notificationServiceImpl) HandleAccountStatusChange(ctx context.Context, req notification.AccountStatusChangeRequest) error {
	if err := validateAccountStatusChange(req); err != nil {
		return err
	}
	logger := s.requestLogger(KindAccountStatusChange, req.AccountNumber)
	return s.sendEmail(ctx, logger, KindAccountStatusChange, s.composer.ComposeAccountStatusChange(req))
}

func (s *notificationServiceImpl) HandleAccountEvent(ctx context.Context, req notification.AccountEventRequest) error {
	if err := validateAccountEvent(req); err != nil {
		return err
	}
	logger := s.requestLogger(KindAccountEvent, req.AccountNumber).
		With(slog.String("event_type", string(req.EventType)))
	return s.sendEmail(ctx, logger, KindAccountEvent, s.composer.ComposeAccountEvent(req))
}

// SendTestEmail lets operators verify mail credentials. It goes through the
// same dispatcher, so mock delivery only logs the message.
func (s *notificationServiceImpl) SendTestEmail(ctx context.Context, to string) error {
	if err := requireEmail("to", to); err != nil {
		return err
	}
	msg := notification.EmailMessage{To: to, Subject: testEmailSubject, Body: testEmailBody}
	return s.sendEmail(ctx, s.requestLogger(KindTestEmail, ""), KindTestEmail, msg)
}

// SendTestSMS lets operators verify gateway credentials.
func (s *notificationServiceImpl) SendTestSMS(ctx context.Context, to string) error {
	if notification.SanitizePhone(to) == "" {
		return &ValidationError{Field: "to", Message: "must be a phone number"}
	}
	logger := s.requestLogger(KindTestSMS, "")
	err := s.sms.Dispatch(ctx, s.composer.ComposeSMS(to, testSMSBody))
	s.metrics.Observe(KindTestSMS, false, err)
	if err != nil {
		logger.Error("sms dispatch failed", slog.String("error", err.Error()))
		return fmt.Errorf("dispatching test sms: %w", err)
	}
	return nil
}

func (s *notificationServiceImpl) sendEmail(ctx context.Context, logger *slog.Logger, kind string, msg notification.EmailMessage) error {
	err := s.email.Dispatch(ctx, msg)
	s.metrics.Observe(kind, false, err)
	if err != nil {
		logger.Error("email dispatch failed", slog.String("error", err.Error()))
		return fmt.Errorf("dispatching %s notification: %w", kind, err)
	}
	logger.Info("notification dispatched", slog.String("subject", msg.Subject))
	return nil
}

// requestLogger tags every log line of one handled request with a fresh
// notification id.
func (s *notificationServiceImpl) requestLogger(kind, accountNumber string) *slog.Logger {
	l := s.logger.With(
		slog.String("notification_id", uuid.NewString()),
		slog.String("kind", kind),
	)
	if accountNumber != "" {
		l = l.With(slog.String("account", accountNumber))
	}
	return l
}
