package notification

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// HighValueTransactionRequest describes a transaction that may warrant a
// high value alert.
type HighValueTransactionRequest struct {
	AccountNumber string          `json:"accountNumber" yaml:"accountNumber"`
	CustomerName  string          `json:"customerName" yaml:"customerName"`
	CustomerEmail string          `json:"customerEmail" yaml:"customerEmail"`
	TxnType       string          `json:"txnType" yaml:"txnType"`
	Amount        decimal.Decimal `json:"amount" yaml:"amount"`
	Currency      string          `json:"currency" yaml:"currency"`
	Counterparty  string          `json:"counterparty,omitempty" yaml:"counterparty,omitempty"`
	Reference     string          `json:"reference,omitempty" yaml:"reference,omitempty"`

	// ThresholdOverride replaces the configured threshold when it is set and
	// strictly positive.
	ThresholdOverride decimal.NullDecimal `json:"thresholdOverride" yaml:"thresholdOverride,omitempty"`
}

// AccountStatusChangeRequest reports a transition between two account
// status labels.
type AccountStatusChangeRequest struct {
	AccountNumber  string `json:"accountNumber" yaml:"accountNumber"`
	CustomerName   string `json:"customerName" yaml:"customerName"`
	CustomerEmail  string `json:"customerEmail" yaml:"customerEmail"`
	PreviousStatus string `json:"previousStatus" yaml:"previousStatus"`
	CurrentStatus  string `json:"currentStatus" yaml:"currentStatus"`
	Remarks        string `json:"remarks,omitempty" yaml:"remarks,omitempty"`
}

// AccountEventRequest reports one of the fixed AccountEventType events.
type AccountEventRequest struct {
	AccountNumber string           `json:"accountNumber" yaml:"accountNumber"`
	CustomerName  string           `json:"customerName" yaml:"customerName"`
	CustomerEmail string           `json:"customerEmail" yaml:"customerEmail"`
	EventType     AccountEventType `json:"eventType" yaml:"eventType"`
	Description   string           `json:"description,omitempty" yaml:"description,omitempty"`
}

// AccountEventType is the closed set of account events that produce a
// notification.
type AccountEventType string

const (
	AccountNumberUpdated      AccountEventType = "ACCOUNT_NUMBER_UPDATED"
	ContactInformationUpdated AccountEventType = "CONTACT_INFORMATION_UPDATED"
	DocumentUpdated           AccountEventType = "DOCUMENT_UPDATED"
	LoanTaken                 AccountEventType = "LOAN_TAKEN"
	LoanCleared               AccountEventType = "LOAN_CLEARED"
	BillCleared               AccountEventType = "BILL_CLEARED"
)

// AccountEventTypes lists every AccountEventType in declaration order.
var AccountEventTypes = []AccountEventType{
	AccountNumberUpdated,
	ContactInformationUpdated,
	DocumentUpdated,
	LoanTaken,
	LoanCleared,
	BillCleared,
}

// ErrUnknownAccountEventType is returned for event names outside the closed set.
var ErrUnknownAccountEventType = errors.New("unknown account event type")

// ParseAccountEventType returns the AccountEventType named exactly by s.
// Names are case sensitive and are not trimmed.
func ParseAccountEventType(s string) (AccountEventType, error) {
	t := AccountEventType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownAccountEventType, s)
	}
	return t, nil
}

// Valid reports whether t is one of the declared event types.
func (t AccountEventType) Valid() bool {
	for _, known := range AccountEventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// UnmarshalText rejects names outside the closed set so that an unknown
// event never reaches the composer.
func (t *AccountEventType) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountEventType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// isBlank reports whether s is empty or only whitespace.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
