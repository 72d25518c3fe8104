package mocks

import (
	"context"
	"sync"

	"github.com/oksasatya/campus-doctor-directory/pkg/mailer"
)

// Sender records every message it is asked to send. SendFunc, when set,
// decides the result.
type Sender struct {
	SendFunc func(ctx context.Context, msg mailer.Message) error

	mu   sync.Mutex
	Sent []mailer.Message
}

func NewSender() *Sender {
	return &Sender{}
}

func (m *Sender) Send(ctx context.Context, msg mailer.Message) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, msg)
	m.mu.Unlock()
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return nil
}

// Last returns the most recent message, or false if none was sent.
func (m *Sender) Last() (mailer.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return mailer.Message{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}

var _ mailer.Sender = (*Sender)(nil)
