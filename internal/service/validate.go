package service

import (
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shaharia-lab/bankalerts/internal/notification"
)

func requireField(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: field + " is required"}
	}
	return nil
}

func requireEmail(field, value string) error {
	if err := requireField(field, value); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return &ValidationError{Field: field, Message: "must be a valid email address"}
	}
	return nil
}

func requireCustomer(accountNumber, name, email string) error {
	if err := requireField("accountNumber", accountNumber); err != nil {
		return err
	}
	if err := requireField("customerName", name); err != nil {
		return err
	}
	return requireEmail("customerEmail", email)
}

func validateHighValueTransaction(req notification.HighValueTransactionRequest) error {
	if err := requireCustomer(req.AccountNumber, req.CustomerName, req.CustomerEmail); err != nil {
		return err
	}
	if err := requireField("txnType", req.TxnType); err != nil {
		return err
	}
	if !req.Amount.GreaterThan(decimal.Zero) {
		return &ValidationError{Field: "amount", Message: "must be greater than zero"}
	}
	if len(strings.TrimSpace(req.Currency)) != 3 {
		return &ValidationError{Field: "currency", Message: "must be a three letter currency code"}
	}
	return nil
}

func validateAccountStatusChange(req notification.AccountStatusChangeRequest) error {
	if err := requireCustomer(req.AccountNumber, req.CustomerName, req.CustomerEmail); err != nil {
		return err
	}
	if err := requireField("previousStatus", req.PreviousStatus); err != nil {
		return err
	}
	return requireField("currentStatus", req.CurrentStatus)
}

func validateAccountEvent(req notification.AccountEventRequest) error {
	if err := requireCustomer(req.AccountNumber, req.CustomerName, req.CustomerEmail); err != nil {
		return err
	}
	if req.EventType == "" {
		return &ValidationError{Field: "eventType", Message: "eventType is required"}
	}
	if !req.EventType.Valid() {
		return &ValidationError{Field: "eventType", Message: "unknown event type " + string(req.EventType)}
	}
	return nil
}
