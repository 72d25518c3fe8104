package mailer

import (
	"errors"
	"fmt"

	mailtpl "github.com/oksasatya/campus-doctor-directory/pkg/mailer/templates"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either pre-rendered Subject/Text/HTML, or a Template name with Data.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "verify_code"
	Data     map[string]any `json:"data,omitempty"`
}

// BuildMessage turns a queued job into a deliverable message, rendering the
// template when one is named.
func BuildMessage(job EmailJob) (Message, error) {
	if job.To == "" {
		return Message{}, ErrNoRecipient
	}
	if job.Template == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return Message{}, errors.New("either template or subject with text/html is required")
		}
		return Message{To: job.To, Subject: job.Subject, Text: job.Text, HTML: job.HTML}, nil
	}

	data := job.Data
	if data == nil {
		data = map[string]any{}
	}
	if v, ok := data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		data["Email"] = job.To
	}
	subject, text, html, err := mailtpl.Render(job.Template, data)
	if err != nil {
		return Message{}, err
	}
	return Message{To: job.To, Subject: subject, Text: text, HTML: html, Template: job.Template, Data: data}, nil
}
