package mailer

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type SendGridMailer struct {
	fromEmail string
	fromName  string
	client    *sendgrid.Client
	isSandBox bool
	logger    *zap.SugaredLogger
}

func NewSendgrid(apiKey, fromEmail, fromName string, isProduction bool, logger *zap.SugaredLogger) *SendGridMailer {
	// For unit test
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &SendGridMailer{
		fromEmail: fromEmail,
		fromName:  fromName,
		client:    sendgrid.NewSendClient(apiKey),
		// Sandbox mode only validates the request, nothing is delivered
		isSandBox: !isProduction,
		logger:    logger,
	}
}

// Send renders templateFile with data and delivers it, retrying with a linear backoff.
//
//	status, err := m.Send(mailer.TemplateCertificateIssued, "Ada Lovelace", "ada@example.edu", mailer.CertificateIssuedData{...})
func (m SendGridMailer) Send(templateFile MailTemplateFile, toName, toEmail string, data any) (int, error) {
	subject, body, err := render(templateFile, data)
	if err != nil {
		m.logger.Errorf("Error occurred during mail template rendering, error: %v", err)
		return -1, err
	}

	message := mail.NewSingleEmail(mail.NewEmail(m.fromName, m.fromEmail), subject, mail.NewEmail(toName, toEmail), "", body)
	message.SetMailSettings(&mail.MailSettings{
		SandboxMode: &mail.Setting{
			Enable: &m.isSandBox,
		},
	})

	var lastErr error
	for i := 0; i < MAX_RETRY; i++ {
		response, err := m.client.Send(message)
		if err == nil && response.StatusCode < http.StatusInternalServerError {
			return response.StatusCode, nil
		}

		lastErr = err
		if lastErr == nil {
			lastErr = fmt.Errorf("sendgrid responded %d: %s", response.StatusCode, response.Body)
		}
		time.Sleep(time.Second * time.Duration(i+1))
	}

	m.logger.Errorf("Failed to send email after %d attempt, error: %v", MAX_RETRY, lastErr)

	return -1, fmt.Errorf("failed to send email after %d attempt: %w", MAX_RETRY, lastErr)
}
