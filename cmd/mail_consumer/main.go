package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/SeakMengs/FacultyCert/internal/config"
	"github.com/SeakMengs/FacultyCert/internal/env"
	"github.com/SeakMengs/FacultyCert/internal/mailer"
	"github.com/SeakMengs/FacultyCert/internal/queue"
	"github.com/SeakMengs/FacultyCert/internal/util"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

const (
	MAX_WORKER = 3
)

func main() {
	cfg := config.GetConfig()
	logger := util.NewLogger(cfg.ENV)
	defer logger.Sync()

	if !cfg.RabbitMQ.Enabled() {
		logger.Fatal("RabbitMQ is not configured, mail is sent inline by the api")
	}

	mail, err := mailer.New(cfg.Mail, cfg.IsProduction(), logger)
	if err != nil {
		logger.Fatalf("Failed to create mailer: %v", err)
	}

	app := queue.MailConsumerContext{
		Config: &cfg,
		Logger: logger,
		Mailer: mail,
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL())
	if err != nil {
		logger.Panic("Error connecting to RabbitMQ: ", err)
	}
	defer func() {
		if err := rabbitMQ.Close(); err != nil {
			logger.Errorf("Failed to close RabbitMQ connection: %v", err)
		}
	}()
	logger.Info("RabbitMQ connected")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rabbitMQ.ConsumeMailJob(ctx, mailJobHandler, MAX_WORKER, &app); err != nil {
		logger.Fatalf("Failed to consume mail job: %v", err)
	}
	logger.Infof("Started consuming mail job with %d workers", MAX_WORKER)

	<-ctx.Done()
	logger.Info("Shutting down mail consumer")
}

func mailJobHandler(ctx context.Context, job queue.MailJobPayload, app *queue.MailConsumerContext) (bool, error) {
	app.Logger.Debugf("Sending %s to %s", job.TemplateFile, job.ToEmail)
	return queue.SendMailJob(app.Mailer, job)
}
