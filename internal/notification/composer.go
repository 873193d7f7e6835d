package notification

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const signOff = "Regards,\nBanking Alerts Team"

// Composer renders requests into channel-ready messages. It performs no I/O
// and the same input always yields the same message.
type Composer struct{}

// ComposeHighValueTransaction renders the alert for a transaction at or above
// threshold. The threshold line is omitted when threshold is not set.
func (Composer) ComposeHighValueTransaction(req HighValueTransactionRequest, threshold decimal.NullDecimal) EmailMessage {
	subject := fmt.Sprintf("High value %s alert for account %s", req.TxnType, req.AccountNumber)

	var b strings.Builder
	writeGreeting(&b, req.CustomerName)
	fmt.Fprintf(&b, "We detected a high value %s on your account %s.\n",
		strings.ToLower(req.TxnType), req.AccountNumber)
	fmt.Fprintf(&b, "Amount: %s\n", FormatCurrency(req.Amount, req.Currency))
	if threshold.Valid {
		fmt.Fprintf(&b, "Notification threshold: %s\n", FormatCurrency(threshold.Decimal, req.Currency))
	}
	writeOptional(&b, "Counterparty", req.Counterparty)
	writeOptional(&b, "Reference", req.Reference)
	b.WriteString("\nIf you did not authorize this transaction, please contact support immediately.\n\n")
	b.WriteString(signOff)

	return EmailMessage{To: req.CustomerEmail, Subject: subject, Body: b.String()}
}

// ComposeAccountStatusChange renders a status transition notice.
func (Composer) ComposeAccountStatusChange(req AccountStatusChangeRequest) EmailMessage {
	subject := "Account status updated for account " + req.AccountNumber

	var b strings.Builder
	writeGreeting(&b, req.CustomerName)
	fmt.Fprintf(&b, "There has been an update to the status of your account %s.\n", req.AccountNumber)
	fmt.Fprintf(&b, "Previous status: %s\n", req.PreviousStatus)
	fmt.Fprintf(&b, "Current status: %s\n", req.CurrentStatus)
	writeOptional(&b, "Additional details", req.Remarks)
	b.WriteString("\nIf you were not expecting this update, please reach out to customer support.\n\n")
	b.WriteString(signOff)

	return EmailMessage{To: req.CustomerEmail, Subject: subject, Body: b.String()}
}

// ComposeAccountEvent renders the notice for one of the fixed account events.
func (Composer) ComposeAccountEvent(req AccountEventRequest) EmailMessage {
	subject, lead := accountEventTemplate(req.EventType, req.AccountNumber)

	var b strings.Builder
	writeGreeting(&b, req.CustomerName)
	b.WriteString(lead)
	b.WriteString("\n")
	if !isBlank(req.Description) {
		fmt.Fprintf(&b, "Details: %s\n", req.Description)
	}
	b.WriteString("\nIf you have any questions, please contact customer care.\n\n")
	b.WriteString(signOff)

	return EmailMessage{To: req.CustomerEmail, Subject: subject, Body: b.String()}
}

// ComposeSMS builds an SMS addressed to the raw number to.
func (Composer) ComposeSMS(to, body string) SmsMessage {
	return SmsMessage{To: to, Body: body}
}

// accountEventTemplate returns the subject and lead sentence for t.
// The switch must stay exhaustive over AccountEventTypes; reaching the panic
// means a new event type was declared without a template.
func accountEventTemplate(t AccountEventType, acct string) (subject, lead string) {
	switch t {
	case AccountNumberUpdated:
		return "Account number updated for account " + acct,
			"Your account number was recently updated for account " + acct + "."
	case ContactInformationUpdated:
		return "Contact information updated",
			"Your contact information linked to account " + acct + " was updated."
	case DocumentUpdated:
		return "Documents updated for your account",
			"New documents were added or existing documents were updated for your account."
	case LoanTaken:
		return "Loan disbursal confirmation",
			"We have processed your new loan request successfully."
	case LoanCleared:
		return "Congratulations! Your loan is closed",
			"We have received full repayment of your loan associated with account " + acct + "."
	case BillCleared:
		return "Bill payment confirmation",
			"Your recent bill has been cleared for account " + acct + "."
	}
	panic(fmt.Sprintf("notification: no template for account event type %q", string(t)))
}

func writeGreeting(b *strings.Builder, name string) {
	fmt.Fprintf(b, "Hi %s,\n\n", name)
}

func writeOptional(b *strings.Builder, label, value string) {
	if isBlank(value) {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}
