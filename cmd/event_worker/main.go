package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-profile-manager/config"
	"github.com/oksasatya/go-profile-manager/pkg/helpers"
	"github.com/oksasatya/go-profile-manager/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-event-worker", cfg.Env, cfg.LogLevel)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventsQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	var sender mailer.Sender = mailer.LogSender{Logger: logger}
	if cfg.MailSendEnabled {
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			log.Fatal("Mailgun not configured")
		}
		sender = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	} else {
		logger.Warn("MAIL_SEND_ENABLED=false; emails are logged, not sent")
	}

	// prefetch for fair dispatch
	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue, 16)
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}

	h := &mailer.EventHandler{
		Sender:      sender,
		AppName:     cfg.AppName,
		CompanyName: cfg.CompanyName,
		Logger:      logger,
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range consumer.Deliveries {
			c, cancelMsg := context.WithTimeout(ctx, 15*time.Second)
			err := h.Handle(c, msg.Body)
			cancelMsg()
			switch {
			case err == nil:
				_ = msg.Ack(false)
			case errors.Is(err, mailer.ErrBadMessage):
				helpers.LogError(logger, "dropping message", err, logrus.Fields{"message_id": msg.MessageId})
				_ = msg.Nack(false, false)
			default:
				helpers.LogError(logger, "send failed; requeueing", err, logrus.Fields{"message_id": msg.MessageId})
				_ = msg.Nack(false, true)
			}
		}
	}()

	logger.Infof("event worker listening on queue=%s", cfg.RabbitMQEventsQueue)
	<-stop
	logger.Info("shutting down...")
	cancel()
	consumer.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
