package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTP sends mail through an SMTP relay with gomail.
type SMTP struct {
	From   string
	dialer *gomail.Dialer
}

func NewSMTP(host string, port int, username, password, from string) *SMTP {
	return &SMTP{
		From:   from,
		dialer: gomail.NewDialer(host, port, username, password),
	}
}

func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(buildSMTPMessage(s.From, msg)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func buildSMTPMessage(from string, msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	if msg.HTML != "" {
		m.SetBody("text/html", msg.HTML)
		if msg.Text != "" {
			m.AddAlternative("text/plain", msg.Text)
		}
	} else {
		m.SetBody("text/plain", msg.Text)
	}
	return m
}
