package notification

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func TestTLSPolicyFromEncryption(t *testing.T) {
	assert.Equal(t, mail.TLSMandatory, tlsPolicyFromEncryption("ssl_tls"))
	assert.Equal(t, mail.TLSOpportunistic, tlsPolicyFromEncryption("starttls"))
	assert.Equal(t, mail.NoTLS, tlsPolicyFromEncryption("none"))
	assert.Equal(t, mail.NoTLS, tlsPolicyFromEncryption(""))
}

func TestBuildEmailHTML_EscapesContent(t *testing.T) {
	html, err := buildEmailHTML("Alert <b>", "Amount: $1 & more")
	require.NoError(t, err)
	assert.Contains(t, html, "Alert &lt;b&gt;")
	assert.Contains(t, html, "Amount: $1 &amp; more")
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
}

func TestSMTPMailer_InvalidAddresses(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "localhost", Port: 2525, FromAddr: "not an address"})
	err := m.Send(context.Background(), EmailMessage{To: "jane@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from address")

	m = NewSMTPMailer(SMTPConfig{Host: "localhost", Port: 2525, FromAddr: "noreply@bank.example"})
	err = m.Send(context.Background(), EmailMessage{To: "bad recipient"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid recipient")
}

func TestSMTPMailer_Name(t *testing.T) {
	assert.Equal(t, "smtp", NewSMTPMailer(SMTPConfig{}).Name())
}
