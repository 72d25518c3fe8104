package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oksasatya/campus-doctor-directory/pkg/mailer"
)

// outcome says what to do with a delivery after handling it.
type outcome int

const (
	ack outcome = iota
	drop
	retry
)

// handle decodes one queued job and sends it. Malformed or unrenderable
// jobs are dropped; send failures are retried.
func handle(ctx context.Context, sender mailer.Sender, body []byte) (outcome, error) {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return drop, fmt.Errorf("bad message: %w", err)
	}
	msg, err := mailer.BuildMessage(job)
	if err != nil {
		return drop, fmt.Errorf("render %s: %w", job.Template, err)
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := sender.Send(c, msg); err != nil {
		return retry, fmt.Errorf("send to %s: %w", msg.To, err)
	}
	return ack, nil
}

// settle applies the redelivery policy: a failed send is requeued once and
// dropped when it fails again.
func settle(res outcome, redelivered bool) outcome {
	if res == retry && redelivered {
		return drop
	}
	return res
}

var (
	errSMTPNotConfigured    = errors.New("smtp not configured")
	errMailgunNotConfigured = errors.New("mailgun not configured")
)
