package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shaharia-lab/bankalerts/internal/notification"
)

// Request kinds accepted by the preview command.
const (
	previewHighValue    = "high-value"
	previewStatusChange = "status-change"
	previewAccountEvent = "account-event"
)

var (
	previewLabelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	previewSubjectStyle = lipgloss.NewStyle().Bold(true)
	previewNoticeStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("11"))
	previewBodyStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// NewPreviewCmd returns the "preview" subcommand that renders the email a
// request would produce without dispatching it.
func NewPreviewCmd() *cobra.Command {
	var (
		kind      string
		file      string
		threshold string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the notification for a request file without sending it",
		Long: `Read a request from a YAML or JSON file (or stdin with --file -) and print
the email it would produce. Field names match the HTTP API.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configured, err := decimal.NewFromString(threshold)
			if err != nil {
				return fmt.Errorf("invalid --threshold %q: %w", threshold, err)
			}

			raw, err := readPreviewInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			msg, ok, err := composePreview(kind, raw, configured)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				_, err = fmt.Fprintln(out, previewNoticeStyle.Render("Transaction below threshold; no notification would be sent."))
				return err
			}
			_, err = fmt.Fprintln(out, renderPreview(msg))
			return err
		},
	}

	cmd.Flags().StringVar(&kind, "type", previewHighValue,
		fmt.Sprintf("Request type: %s, %s or %s", previewHighValue, previewStatusChange, previewAccountEvent))
	cmd.Flags().StringVarP(&file, "file", "f", "-", "Request file, or - for stdin")
	cmd.Flags().StringVar(&threshold, "threshold", "10000", "Configured high value threshold")
	return cmd
}

func readPreviewInput(stdin io.Reader, file string) ([]byte, error) {
	if file == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	return raw, nil
}

// composePreview decodes raw as the request named by kind and composes its
// email. JSON input decodes too since it is valid YAML. ok is false when a
// high value transaction falls below the effective threshold.
func composePreview(kind string, raw []byte, configured decimal.Decimal) (msg notification.EmailMessage, ok bool, err error) {
	var composer notification.Composer

	switch kind {
	case previewHighValue:
		var req notification.HighValueTransactionRequest
		if err := yaml.Unmarshal(raw, &req); err != nil {
			return msg, false, fmt.Errorf("decoding high value transaction: %w", err)
		}
		threshold := notification.ResolveThreshold(req.ThresholdOverride, configured)
		if req.Amount.LessThan(threshold) {
			return msg, false, nil
		}
		return composer.ComposeHighValueTransaction(req, decimal.NewNullDecimal(threshold)), true, nil
	case previewStatusChange:
		var req notification.AccountStatusChangeRequest
		if err := yaml.Unmarshal(raw, &req); err != nil {
			return msg, false, fmt.Errorf("decoding account status change: %w", err)
		}
		return composer.ComposeAccountStatusChange(req), true, nil
	case previewAccountEvent:
		var req notification.AccountEventRequest
		if err := yaml.Unmarshal(raw, &req); err != nil {
			return msg, false, fmt.Errorf("decoding account event: %w", err)
		}
		if !req.EventType.Valid() {
			return msg, false, fmt.Errorf("eventType is required")
		}
		return composer.ComposeAccountEvent(req), true, nil
	default:
		return msg, false, fmt.Errorf("unknown request type %q", kind)
	}
}

func renderPreview(msg notification.EmailMessage) string {
	var b strings.Builder
	b.WriteString(previewLabelStyle.Render("To:      "))
	b.WriteString(msg.To)
	b.WriteString("\n")
	b.WriteString(previewLabelStyle.Render("Subject: "))
	b.WriteString(previewSubjectStyle.Render(msg.Subject))
	b.WriteString("\n")
	b.WriteString(previewBodyStyle.Render(msg.Body))
	return b.String()
}
