package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SeakMengs/FacultyCert/internal/config"
	"github.com/SeakMengs/FacultyCert/internal/mailer"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type MailConsumerContext struct {
	Config *config.Config
	Logger *zap.SugaredLogger
	Mailer mailer.Client
}

type MailJobPayload struct {
	ToName       string                  `json:"to_name"`
	ToEmail      string                  `json:"to_email"`
	TemplateFile mailer.MailTemplateFile `json:"template_file"`
	Data         json.RawMessage         `json:"data"`
	CreatedAt    string                  `json:"created_at"`
	Try          int                     `json:"try" default:"0"`
}

func NewMailJobPayload[T any](toName, toEmail string, templateFile mailer.MailTemplateFile, data T) (MailJobPayload, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return MailJobPayload{}, fmt.Errorf("failed to marshal data: %w", err)
	}

	return MailJobPayload{
		ToName:       toName,
		ToEmail:      toEmail,
		TemplateFile: templateFile,
		Data:         dataBytes,
		Try:          0,
		CreatedAt:    time.Now().Format(time.RFC3339),
	}, nil
}

func NewCertificateIssuedMailJob(toName, toEmail string, data mailer.CertificateIssuedData) (MailJobPayload, error) {
	return NewMailJobPayload(toName, toEmail, mailer.TemplateCertificateIssued, data)
}

// SendMailJob decodes the job data for its template and sends it. The bool reports
// whether a failure is worth retrying.
func SendMailJob(client mailer.Client, job MailJobPayload) (bool, error) {
	var data any
	switch job.TemplateFile {
	case mailer.TemplateCertificateIssued:
		var d mailer.CertificateIssuedData
		if err := json.Unmarshal(job.Data, &d); err != nil {
			return false, fmt.Errorf("failed to unmarshal CertificateIssuedData: %w", err)
		}
		data = d
	default:
		return false, fmt.Errorf("unknown mail template: %s", job.TemplateFile)
	}

	status, err := client.Send(job.TemplateFile, job.ToName, job.ToEmail, data)
	if err != nil {
		return true, fmt.Errorf("failed to send email: %w", err)
	}
	if status >= 400 {
		return status >= 500, fmt.Errorf("mail provider responded with status %d", status)
	}

	return false, nil
}

type MailJobHandler func(ctx context.Context, jobPayload MailJobPayload, app *MailConsumerContext) (bool, error)

func (r *RabbitMQ) ConsumeMailJob(ctx context.Context, handler MailJobHandler, maxWorker int, app *MailConsumerContext) error {
	msgs, err := r.Consume(QueueMail)
	if err != nil {
		return fmt.Errorf("failed to start consuming mail jobs: %w", err)
	}

	for i := range maxWorker {
		go func(workerNumber int) {
			runMailWorker(ctx, r, workerNumber, msgs, handler, app)
		}(i + 1)
	}

	return nil
}

func runMailWorker(ctx context.Context, rabbitMQ *RabbitMQ, workerNumber int, msgs <-chan amqp091.Delivery, handler MailJobHandler, app *MailConsumerContext) {
	for {
		select {
		case <-ctx.Done():
			app.Logger.Infof("[Mail Worker %d] Shutting down", workerNumber)
			return
		case msg, ok := <-msgs:
			if !ok {
				app.Logger.Infof("[Mail Worker %d] Message channel closed", workerNumber)
				return
			}
			processMailJob(ctx, rabbitMQ, workerNumber, msg, handler, app)
		}
	}
}

func processMailJob(ctx context.Context, rabbitMQ *RabbitMQ, workerNumber int, msg amqp091.Delivery, handler MailJobHandler, app *MailConsumerContext) {
	if msg.Body == nil {
		app.Logger.Warnf("[Mail Worker %d] Received empty message body", workerNumber)
		_ = rabbitMQ.DeadLetter(msg)
		return
	}

	var jobPayload MailJobPayload
	if err := json.Unmarshal(msg.Body, &jobPayload); err != nil {
		app.Logger.Warnf("[Mail Worker %d] Invalid payload: %v", workerNumber, err)
		_ = rabbitMQ.DeadLetter(msg)
		return
	}

	workerPrefix := fmt.Sprintf("[Mail Worker %d: Retry %d]", workerNumber, jobPayload.Try)

	shouldRequeue, err := handler(ctx, jobPayload, app)
	if err != nil {
		app.Logger.Errorf("%s Handler error processing mail job for recipient: %s, template: %s: %v",
			workerPrefix, jobPayload.ToEmail, jobPayload.TemplateFile, err)

		if !shouldRequeue || jobPayload.Try >= MAX_QUEUE_RETRY {
			app.Logger.Warnf("%s Dead-lettering mail job for recipient: %s, template: %s (retry: %d, shouldRequeue: %v)",
				workerPrefix, jobPayload.ToEmail, jobPayload.TemplateFile, jobPayload.Try, shouldRequeue)
			_ = rabbitMQ.DeadLetter(msg)
			return
		}

		requeueMailJob(ctx, rabbitMQ, workerPrefix, msg, jobPayload, app)
		return
	}

	app.Logger.Infof("%s Successfully processed mail job for recipient: %s, template: %s",
		workerPrefix, jobPayload.ToEmail, jobPayload.TemplateFile)
	_ = rabbitMQ.Ack(msg)
}

// requeueMailJob publishes a copy with the try counter bumped, then acks the original.
func requeueMailJob(ctx context.Context, rabbitMQ *RabbitMQ, workerPrefix string, msg amqp091.Delivery, jobPayload MailJobPayload, app *MailConsumerContext) {
	jobPayload.Try++
	payloadBytes, err := json.Marshal(jobPayload)
	if err != nil {
		app.Logger.Errorf("%s Failed to marshal mail payload for requeue: %v", workerPrefix, err)
		_ = rabbitMQ.DeadLetter(msg)
		return
	}

	if err := rabbitMQ.Publish(ctx, QueueMail, payloadBytes); err != nil {
		app.Logger.Errorf("%s Failed to requeue mail job for recipient: %s, template: %s: %v",
			workerPrefix, jobPayload.ToEmail, jobPayload.TemplateFile, err)
		_ = rabbitMQ.DeadLetter(msg)
		return
	}

	app.Logger.Infof("%s Requeued mail job for recipient: %s, template: %s",
		workerPrefix, jobPayload.ToEmail, jobPayload.TemplateFile)
	_ = rabbitMQ.Ack(msg)
}
