package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/SeakMengs/FacultyCert/internal/config"
	"go.uber.org/zap"
)

const MAX_RETRY = 3

type MailTemplateFile string

const (
	TemplateCertificateIssued MailTemplateFile = "templates/certificate_issued.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile MailTemplateFile, toName, toEmail string, data any) (int, error)
}

type CertificateIssuedData struct {
	AppName          string `json:"app_name"`
	ProfessorName    string `json:"professor_name"`
	VerificationCode string `json:"verification_code"`
	VerificationLink string `json:"verification_link"`
	IssuedAt         string `json:"issued_at"`
	Regenerated      bool   `json:"regenerated"`
}

// New picks the driver named by cfg.DRIVER.
func New(cfg config.MailConfig, isProduction bool, logger *zap.SugaredLogger) (Client, error) {
	switch cfg.DRIVER {
	case config.MailDriverSendGrid:
		return NewSendgrid(cfg.SEND_GRID.API_KEY, cfg.FROM_EMAIL, cfg.FROM_NAME, isProduction, logger), nil
	case config.MailDriverSMTP:
		return NewSMTPMailer(cfg.SMTP, cfg.FROM_EMAIL, cfg.FROM_NAME, logger), nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.DRIVER)
	}
}

// render executes the "subject" and "body" blocks of an embedded template.
func render(templateFile MailTemplateFile, data any) (string, string, error) {
	tmpl, err := template.ParseFS(FS, string(templateFile))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse mail template %s: %w", templateFile, err)
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return "", "", fmt.Errorf("failed to render subject of %s: %w", templateFile, err)
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		return "", "", fmt.Errorf("failed to render body of %s: %w", templateFile, err)
	}

	return subject.String(), body.String(), nil
}
