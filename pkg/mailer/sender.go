package mailer

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrNoRecipient is returned when a message has an empty To.
var ErrNoRecipient = errors.New("no recipient specified")

// Message is a single outbound email. HTML is the primary body; Text is an
// optional plain-text alternative. Template and Data name the source the
// bodies were rendered from, so a queued delivery can be rendered again by
// the worker.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string

	Template string
	Data     map[string]any
}

// Sender delivers a message or reports why it could not.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the log instead of delivering them. Used when
// MAIL_PROVIDER=log, typically in development.
type LogSender struct {
	Logger *logrus.Logger
}

func NewLogSender(logger *logrus.Logger) *LogSender {
	return &LogSender{Logger: logger}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"to":      msg.To,
			"subject": msg.Subject,
			"text":    msg.Text,
		}).Info("mail delivery disabled; message logged")
	}
	return nil
}
