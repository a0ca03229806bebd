package email

import (
	"bytes"
	"html/template"
)

type notificationData struct {
	Title   string
	Heading string
	Body    string
}

// One layout serves all notification mail; per-event wording comes in through
// the heading and body.
var notificationTmpl = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body style="font-family:Arial,Helvetica,sans-serif;background:#f4f4f5;margin:0;padding:24px;">
<table role="presentation" width="100%" style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:8px;">
<tr><td style="padding:32px;">
<h1 style="font-size:20px;margin:0 0 16px;color:#18181b;">{{.Heading}}</h1>
<p style="font-size:15px;line-height:1.6;color:#3f3f46;white-space:pre-line;">{{.Body}}</p>
<p style="font-size:12px;color:#a1a1aa;margin-top:32px;">ConectaLeads</p>
</td></tr>
</table>
</body>
</html>`))

func renderNotification(data notificationData) (string, error) {
	var buf bytes.Buffer
	if err := notificationTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
