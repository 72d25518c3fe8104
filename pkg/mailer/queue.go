package mailer

import "context"

// JobPublisher is the subset of helpers.RabbitPublisher the queue sender needs.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueSender hands messages to the email worker through a queue. Templated
// messages travel as template name plus data and are rendered by the worker;
// anything else is published pre-rendered. A publish failure is the delivery
// failure seen by the caller.
type QueueSender struct {
	Pub JobPublisher
}

func NewQueueSender(pub JobPublisher) *QueueSender {
	return &QueueSender{Pub: pub}
}

func (q *QueueSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	if msg.Template != "" {
		return q.Pub.PublishJSON(ctx, EmailJob{To: msg.To, Template: msg.Template, Data: msg.Data})
	}
	return q.Pub.PublishJSON(ctx, EmailJob{
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Text,
		HTML:    msg.HTML,
	})
}
