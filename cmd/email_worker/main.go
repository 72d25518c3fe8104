package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-doctor-directory/config"
	"github.com/oksasatya/campus-doctor-directory/pkg/helpers"
	"github.com/oksasatya/campus-doctor-directory/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	sender, err := workerSender(cfg)
	if err != nil {
		log.Fatal(err)
	}

	consumer, msgs, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, 16)
	if err != nil {
		log.Fatalf("amqp consume: %v", err)
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			res, err := handle(ctx, sender, msg.Body)
			switch settle(res, msg.Redelivered) {
			case ack:
				_ = msg.Ack(false)
			case drop:
				logger.WithError(err).Warn("dropping email job")
				_ = msg.Nack(false, false)
			case retry:
				logger.WithError(err).Error("email send failed; requeueing")
				_ = msg.Nack(false, true)
			}
		}
	}()

	logger.WithFields(logrus.Fields{
		"queue":    cfg.RabbitMQEmailQueue,
		"provider": cfg.WorkerMailProvider,
	}).Info("email worker listening")
	<-stop
	logger.Info("shutting down...")
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// workerSender builds the real delivery backend. The queue and log providers
// make no sense here.
func workerSender(cfg *config.Config) (mailer.Sender, error) {
	switch cfg.WorkerMailProvider {
	case "smtp":
		if cfg.SMTPHost == "" || cfg.SMTPFrom == "" {
			return nil, errSMTPNotConfigured
		}
		return mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom), nil
	default:
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			return nil, errMailgunNotConfigured
		}
		return mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender), nil
	}
}
