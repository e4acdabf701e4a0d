package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

// operatorData feeds the internal new-lead notification.
type operatorData struct {
	Kind      string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
	Industry  string
	Message   string
	Details   map[string]string
}

// confirmationData feeds the submitter thank-you email.
type confirmationData struct {
	FirstName string
	Label     string
}

const operatorSubject = `New {{.Kind}} Lead: {{.FirstName}} {{.LastName}}`

const operatorHTML = `<h2>New Lead Submission</h2>
<p><strong>Type:</strong> {{.Kind}}</p>
<p><strong>Name:</strong> {{.FirstName}} {{.LastName}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
{{- if .Phone}}
<p><strong>Phone:</strong> {{.Phone}}</p>
{{- end}}
{{- if .Company}}
<p><strong>Company:</strong> {{.Company}}</p>
{{- end}}
{{- if .Industry}}
<p><strong>Industry:</strong> {{.Industry}}</p>
{{- end}}
{{- if .Message}}
<p><strong>Message:</strong> {{.Message}}</p>
{{- end}}
{{- range $k, $v := .Details}}
<p><strong>{{$k}}:</strong> {{$v}}</p>
{{- end}}
`

const operatorText = `New Lead Submission

Type: {{.Kind}}
Name: {{.FirstName}} {{.LastName}}
Email: {{.Email}}
{{- if .Phone}}
Phone: {{.Phone}}
{{- end}}
{{- if .Company}}
Company: {{.Company}}
{{- end}}
{{- if .Industry}}
Industry: {{.Industry}}
{{- end}}
{{- if .Message}}
Message: {{.Message}}
{{- end}}
{{- range $k, $v := .Details}}
{{$k}}: {{$v}}
{{- end}}
`

const confirmationSubject = "Thank you for contacting Spurtek"

const confirmationHTML = `<h2>Thank you, {{.FirstName}}!</h2>
<p>We've received your {{.Label}} and will get back to you soon.</p>
<p>Our team typically responds within 24-48 hours.</p>
<p>Best regards,<br>The Spurtek Team</p>
`

const confirmationText = `Thank you, {{.FirstName}}!

We've received your {{.Label}} and will get back to you soon.
Our team typically responds within 24-48 hours.

Best regards,
The Spurtek Team
`

var (
	operatorSubjectTmpl  = texttemplate.Must(texttemplate.New("operator_subject").Option("missingkey=error").Parse(operatorSubject))
	operatorHTMLTmpl     = htmltemplate.Must(htmltemplate.New("operator_html").Option("missingkey=error").Parse(operatorHTML))
	operatorTextTmpl     = texttemplate.Must(texttemplate.New("operator_text").Option("missingkey=error").Parse(operatorText))
	confirmationHTMLTmpl = htmltemplate.Must(htmltemplate.New("confirmation_html").Option("missingkey=error").Parse(confirmationHTML))
	confirmationTextTmpl = texttemplate.Must(texttemplate.New("confirmation_text").Option("missingkey=error").Parse(confirmationText))
)

func render(name string, execute func(*bytes.Buffer) error) (string, error) {
	var buf bytes.Buffer
	if err := execute(&buf); err != nil {
		return "", fmt.Errorf("notify: render %s: %w", name, err)
	}
	return buf.String(), nil
}

func renderOperator(data operatorData) (EmailMessage, error) {
	subject, err := render("operator subject", func(b *bytes.Buffer) error { return operatorSubjectTmpl.Execute(b, data) })
	if err != nil {
		return EmailMessage{}, err
	}
	html, err := render("operator html", func(b *bytes.Buffer) error { return operatorHTMLTmpl.Execute(b, data) })
	if err != nil {
		return EmailMessage{}, err
	}
	text, err := render("operator text", func(b *bytes.Buffer) error { return operatorTextTmpl.Execute(b, data) })
	if err != nil {
		return EmailMessage{}, err
	}
	return EmailMessage{Subject: subject, HTML: html, Body: text}, nil
}

func renderConfirmation(data confirmationData) (EmailMessage, error) {
	html, err := render("confirmation html", func(b *bytes.Buffer) error { return confirmationHTMLTmpl.Execute(b, data) })
	if err != nil {
		return EmailMessage{}, err
	}
	text, err := render("confirmation text", func(b *bytes.Buffer) error { return confirmationTextTmpl.Execute(b, data) })
	if err != nil {
		return EmailMessage{}, err
	}
	return EmailMessage{Subject: confirmationSubject, HTML: html, Body: text}, nil
}
