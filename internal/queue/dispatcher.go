package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SeakMengs/FacultyCert/internal/issuer"
	"github.com/SeakMengs/FacultyCert/internal/mailer"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey QueueName, body []byte) error
}

// MailDispatcher queues mail jobs for the mail consumer. Without a publisher the job is
// sent inline.
type MailDispatcher struct {
	publisher Publisher
	mailer    mailer.Client
	logger    *zap.SugaredLogger
}

func NewMailDispatcher(publisher Publisher, client mailer.Client, logger *zap.SugaredLogger) *MailDispatcher {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &MailDispatcher{publisher: publisher, mailer: client, logger: logger}
}

func (d *MailDispatcher) Dispatch(ctx context.Context, job MailJobPayload) error {
	if d.publisher != nil {
		body, err := json.Marshal(job)
		if err != nil {
			return fmt.Errorf("failed to marshal mail job: %w", err)
		}
		return d.publisher.Publish(ctx, QueueMail, body)
	}

	if d.mailer == nil {
		d.logger.Warnf("no mailer configured, dropping %s mail to %s", job.TemplateFile, job.ToEmail)
		return nil
	}

	_, err := SendMailJob(d.mailer, job)
	return err
}

func (d *MailDispatcher) CertificateIssued(ctx context.Context, n issuer.Notification) error {
	job, err := NewCertificateIssuedMailJob(n.ProfessorName, n.Email, mailer.CertificateIssuedData{
		AppName:          util.GetAppName(),
		ProfessorName:    n.ProfessorName,
		VerificationCode: n.VerificationCode,
		VerificationLink: n.VerificationLink,
		IssuedAt:         n.IssuedAt.Format("January 2, 2006 15:04 MST"),
		Regenerated:      n.Regenerated,
	})
	if err != nil {
		return err
	}

	return d.Dispatch(ctx, job)
}
