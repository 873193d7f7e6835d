package notification

// EmailMessage is a rendered email ready to be handed to a dispatcher.
type EmailMessage struct {
	To      string
	Subject string
	Body    string
}

// SmsMessage is a rendered SMS. To holds the number as supplied by the
// caller; sanitization happens at dispatch time.
type SmsMessage struct {
	To   string
	Body string
}
