package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/bankalerts/internal/metrics"
	"github.com/shaharia-lab/bankalerts/internal/notification"
	"github.com/shaharia-lab/bankalerts/internal/service"
	"github.com/shaharia-lab/bankalerts/internal/service/mocks"
)

type harness struct {
	email   *mocks.MockEmailDispatcher
	sms     *mocks.MockSMSDispatcher
	metrics *metrics.Recorder
	svc     service.NotificationService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		email:   new(mocks.MockEmailDispatcher),
		sms:     new(mocks.MockSMSDispatcher),
		metrics: metrics.NewRecorder(prometheus.NewRegistry()),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h.svc = service.NewNotificationService(h.email, h.sms, decimal.NewFromInt(10000), h.metrics, logger)
	return h
}

func (h *harness) count(kind, outcome string) float64 {
	return testutil.ToFloat64(h.metrics.Notifications().WithLabelValues(kind, outcome))
}

func transaction(amount int64) notification.HighValueTransactionRequest {
	return notification.HighValueTransactionRequest{
		AccountNumber: "1234567890",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		TxnType:       "DEBIT",
		Amount:        decimal.NewFromInt(amount),
		Currency:      "USD",
	}
}

func TestHandleHighValueTransaction_Dispatched(t *testing.T) {
	h := newHarness(t)

	var sent notification.EmailMessage
	h.email.On("Dispatch", mock.Anything, mock.AnythingOfType("notification.EmailMessage")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(notification.EmailMessage) }).
		Return(nil).Once()

	dispatched, err := h.svc.HandleHighValueTransaction(context.Background(), transaction(15000))
	require.NoError(t, err)
	assert.True(t, dispatched)

	assert.Equal(t, "jane@example.com", sent.To)
	assert.Contains(t, sent.Subject, "High value DEBIT alert for account 1234567890")
	assert.Contains(t, sent.Body, "Amount: $15,000.00")
	assert.Contains(t, sent.Body, "Notification threshold: $10,000.00")
	assert.Equal(t, 1.0, h.count(service.KindHighValueTransaction, metrics.OutcomeDispatched))
	h.email.AssertExpectations(t)
}

func TestHandleHighValueTransaction_BelowThreshold(t *testing.T) {
	h := newHarness(t)

	dispatched, err := h.svc.HandleHighValueTransaction(context.Background(), transaction(5000))
	require.NoError(t, err)
	assert.False(t, dispatched)

	h.email.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	assert.Equal(t, 1.0, h.count(service.KindHighValueTransaction, metrics.OutcomeSkipped))
}

func TestHandleHighValueTransaction_ThresholdBoundary(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		override     decimal.NullDecimal
		wantDispatch bool
	}{
		{"equal to default", "10000", decimal.NullDecimal{}, true},
		{"just below default", "9999.99", decimal.NullDecimal{}, false},
		{"above default", "10000.01", decimal.NullDecimal{}, true},
		{"override lowers threshold", "5000", decimal.NewNullDecimal(decimal.NewFromInt(1000)), true},
		{"override raises threshold", "15000", decimal.NewNullDecimal(decimal.NewFromInt(20000)), false},
		{"zero override ignored", "5000", decimal.NewNullDecimal(decimal.Zero), false},
		{"negative override ignored", "15000", decimal.NewNullDecimal(decimal.NewFromInt(-1)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.email.On("Dispatch", mock.Anything, mock.Anything).Return(nil).Maybe()

			req := transaction(0)
			req.Amount = decimal.RequireFromString(tt.amount)
			req.ThresholdOverride = tt.override

			dispatched, err := h.svc.HandleHighValueTransaction(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDispatch, dispatched)
			if tt.wantDispatch {
				h.email.AssertNumberOfCalls(t, "Dispatch", 1)
			} else {
				h.email.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestHandleHighValueTransaction_OverrideRendered(t *testing.T) {
	h := newHarness(t)
	h.email.On("Dispatch", mock.Anything, mock.MatchedBy(func(m notification.EmailMessage) bool {
		return containsAll(m.Body, "Amount: $5,000.00", "Notification threshold: $1,000.00")
	})).Return(nil).Once()

	req := transaction(5000)
	req.ThresholdOverride = decimal.NewNullDecimal(decimal.NewFromInt(1000))

	dispatched, err := h.svc.HandleHighValueTransaction(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, dispatched)
	h.email.AssertExpectations(t)
}

func TestHandleHighValueTransaction_DeliveryError(t *testing.T) {
	h := newHarness(t)
	cause := errors.New("smtp: connection refused")
	h.email.On("Dispatch", mock.Anything, mock.Anything).
		Return(&notification.DeliveryError{Channel: notification.ChannelEmail, Err: cause})

	dispatched, err := h.svc.HandleHighValueTransaction(context.Background(), transaction(15000))
	require.Error(t, err)
	assert.False(t, dispatched)

	var de *notification.DeliveryError
	assert.ErrorAs(t, err, &de)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1.0, h.count(service.KindHighValueTransaction, metrics.OutcomeFailed))
}

func TestHandleHighValueTransaction_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*notification.HighValueTransactionRequest)
		wantField string
	}{
		{"missing account", func(r *notification.HighValueTransactionRequest) { r.AccountNumber = " " }, "accountNumber"},
		{"missing name", func(r *notification.HighValueTransactionRequest) { r.CustomerName = "" }, "customerName"},
		{"bad email", func(r *notification.HighValueTransactionRequest) { r.CustomerEmail = "jane" }, "customerEmail"},
		{"missing txn type", func(r *notification.HighValueTransactionRequest) { r.TxnType = "" }, "txnType"},
		{"zero amount", func(r *notification.HighValueTransactionRequest) { r.Amount = decimal.Zero }, "amount"},
		{"negative amount", func(r *notification.HighValueTransactionRequest) { r.Amount = decimal.NewFromInt(-10) }, "amount"},
		{"missing currency", func(r *notification.HighValueTransactionRequest) { r.Currency = "" }, "currency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			req := transaction(15000)
			tt.mutate(&req)

			_, err := h.svc.HandleHighValueTransaction(context.Background(), req)
			var ve *service.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
			h.email.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
		})
	}
}

func TestHandleAccountStatusChange(t *testing.T) {
	h := newHarness(t)
	h.email.On("Dispatch", mock.Anything, mock.MatchedBy(func(m notification.EmailMessage) bool {
		return m.To == "john@example.com" &&
			m.Subject == "Account status updated for account 9876543210" &&
			containsAll(m.Body, "Previous status: Pending KYC", "Current status: Active")
	})).Return(nil).Once()

	err := h.svc.HandleAccountStatusChange(context.Background(), notification.AccountStatusChangeRequest{
		AccountNumber:  "9876543210",
		CustomerName:   "John Smith",
		CustomerEmail:  "john@example.com",
		PreviousStatus: "Pending KYC",
		CurrentStatus:  "Active",
	})
	require.NoError(t, err)
	h.email.AssertExpectations(t)
	assert.Equal(t, 1.0, h.count(service.KindAccountStatusChange, metrics.OutcomeDispatched))
}

func TestHandleAccountStatusChange_Validation(t *testing.T) {
	h := newHarness(t)
	err := h.svc.HandleAccountStatusChange(context.Background(), notification.AccountStatusChangeRequest{
		AccountNumber: "1", CustomerName: "A", CustomerEmail: "a@example.com", PreviousStatus: "Active",
	})
	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "currentStatus", ve.Field)
}

func TestHandleAccountEvent(t *testing.T) {
	h := newHarness(t)
	h.email.On("Dispatch", mock.Anything, mock.MatchedBy(func(m notification.EmailMessage) bool {
		return m.Subject == "Congratulations! Your loan is closed"
	})).Return(nil).Once()

	err := h.svc.HandleAccountEvent(context.Background(), notification.AccountEventRequest{
		AccountNumber: "222333444",
		CustomerName:  "Mary Major",
		CustomerEmail: "mary@example.com",
		EventType:     notification.LoanCleared,
	})
	require.NoError(t, err)
	h.email.AssertExpectations(t)
}

func TestHandleAccountEvent_Validation(t *testing.T) {
	tests := []struct {
		name      string
		eventType notification.AccountEventType
	}{
		{"missing", ""},
		{"unknown", "ACCOUNT_CLOSED"},
		{"wrong case", "loan_cleared"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			err := h.svc.HandleAccountEvent(context.Background(), notification.AccountEventRequest{
				AccountNumber: "1", CustomerName: "A", CustomerEmail: "a@example.com", EventType: tt.eventType,
			})
			var ve *service.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "eventType", ve.Field)
			h.email.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
		})
	}
}

func TestHandleAccountEvent_DeliveryError(t *testing.T) {
	h := newHarness(t)
	h.email.On("Dispatch", mock.Anything, mock.Anything).
		Return(&notification.DeliveryError{Channel: notification.ChannelEmail, Err: errors.New("boom")})

	err := h.svc.HandleAccountEvent(context.Background(), notification.AccountEventRequest{
		AccountNumber: "1", CustomerName: "A", CustomerEmail: "a@example.com", EventType: notification.BillCleared,
	})
	var de *notification.DeliveryError
	assert.ErrorAs(t, err, &de)
}

func TestSendTestEmail(t *testing.T) {
	h := newHarness(t)
	h.email.On("Dispatch", mock.Anything, mock.MatchedBy(func(m notification.EmailMessage) bool {
		return m.To == "ops@example.com"
	})).Return(nil).Once()

	require.NoError(t, h.svc.SendTestEmail(context.Background(), "ops@example.com"))
	h.email.AssertExpectations(t)

	var ve *service.ValidationError
	assert.ErrorAs(t, h.svc.SendTestEmail(context.Background(), "nope"), &ve)
}

func TestSendTestSMS(t *testing.T) {
	h := newHarness(t)
	h.sms.On("Dispatch", mock.Anything, mock.MatchedBy(func(m notification.SmsMessage) bool {
		return m.To == "+1 555 0100"
	})).Return(nil).Once()

	require.NoError(t, h.svc.SendTestSMS(context.Background(), "+1 555 0100"))
	h.sms.AssertExpectations(t)

	var ve *service.ValidationError
	assert.ErrorAs(t, h.svc.SendTestSMS(context.Background(), "n/a"), &ve)
}

// Wires the real dispatchers in mock mode: nothing reaches the transport.
type recordingMailer struct{ calls int }

func (m *recordingMailer) Name() string { return "recording" }
func (m *recordingMailer) Send(_ context.Context, _ notification.EmailMessage) error {
	m.calls++
	return nil
}

func TestMockDelivery_EndToEnd(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mailer := &recordingMailer{}
	email := notification.NewEmailDispatcher(mailer, notification.EmailOptions{MockDelivery: true}, logger)
	sms := notification.NewSMSDispatcher(nil, notification.SMSOptions{MockDelivery: true}, logger)
	svc := service.NewNotificationService(email, sms, decimal.NewFromInt(10000),
		metrics.NewRecorder(prometheus.NewRegistry()), logger)

	dispatched, err := svc.HandleHighValueTransaction(context.Background(), transaction(15000))
	require.NoError(t, err)
	assert.True(t, dispatched)
	require.NoError(t, svc.SendTestSMS(context.Background(), "+15550100"))
	assert.Zero(t, mailer.calls)
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
