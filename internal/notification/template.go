package notification

import (
	"bytes"
	"html/template"
)

// emailTmpl is the HTML alternative attached to every outgoing email.
// {{.Subject}} and {{.Body}} are auto-escaped by html/template.
var emailTmpl = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1.0">
  <title>{{.Subject}}</title>
</head>
<body style="margin:0;padding:0;background-color:#f3f5f8;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%" cellpadding="0" cellspacing="0" role="presentation"
         style="background-color:#f3f5f8;padding:32px 16px;">
    <tr>
      <td align="center">
        <table width="600" cellpadding="0" cellspacing="0" role="presentation"
               style="max-width:600px;width:100%;border:1px solid #dde3ea;">
          <tr>
            <td style="background-color:#0b3d6e;padding:20px 32px;">
              <span style="font-size:18px;font-weight:700;color:#ffffff;">Banking Alerts</span>
            </td>
          </tr>
          <tr>
            <td style="background-color:#eef3f9;padding:14px 32px;">
              <p style="margin:0;font-size:15px;font-weight:600;color:#0b3d6e;">{{.Subject}}</p>
            </td>
          </tr>
          <tr>
            <td style="background-color:#ffffff;padding:28px 32px;">
              <div style="font-size:14px;line-height:1.6;color:#1f2933;white-space:pre-wrap;">{{.Body}}</div>
            </td>
          </tr>
          <tr>
            <td style="background-color:#f9fafb;padding:16px 32px;border-top:1px solid #dde3ea;">
              <p style="margin:0;font-size:12px;color:#6b7785;">
                This is an automated message. Please do not reply to this email.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>
`))

// buildEmailHTML renders the HTML email template with the given subject and body.
func buildEmailHTML(subject, body string) (string, error) {
	var buf bytes.Buffer
	err := emailTmpl.Execute(&buf, struct{ Subject, Body string }{subject, body})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
