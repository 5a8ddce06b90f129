package mailer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/SeakMengs/FacultyCert/internal/config"
)

func TestRenderCertificateIssued(t *testing.T) {
	data := CertificateIssuedData{
		AppName:          "FacultyCert",
		ProfessorName:    "Ada Lovelace",
		VerificationCode: "abc123",
		VerificationLink: "https://cert.example.edu/verify/abc123",
		IssuedAt:         "2025-05-01",
	}

	tests := []struct {
		name        string
		regenerated bool
		wantSubject string
		wantBody    string
	}{
		{"issued", false, "Your academic load certificate is ready", "was issued for you on 2025-05-01"},
		{"reissued", true, "Your academic load certificate was reissued", "no longer valid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data.Regenerated = tt.regenerated
			subject, body, err := render(TemplateCertificateIssued, data)
			if err != nil {
				t.Fatalf("render() error: %v", err)
			}
			if subject != tt.wantSubject {
				t.Errorf("subject = %q, want %q", subject, tt.wantSubject)
			}
			for _, want := range []string{tt.wantBody, "Dear Ada Lovelace", data.VerificationLink} {
				if !strings.Contains(body, want) {
					t.Errorf("body does not contain %q", want)
				}
			}
		})
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, _, err := render("templates/missing.tmpl", nil); err == nil {
		t.Fatal("expected an error for a missing template")
	}
}

func TestSMTPMessageHeaders(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{HOST: "smtp.example.edu", PORT: 587, USERNAME: "noreply@example.edu"}, "", "FacultyCert", nil)

	msg, err := m.message(TemplateCertificateIssued, "Ada Lovelace", "ada@example.edu", CertificateIssuedData{ProfessorName: "Ada Lovelace"})
	if err != nil {
		t.Fatalf("message() error: %v", err)
	}

	if got := msg.GetHeader("To"); len(got) != 1 || !strings.Contains(got[0], "ada@example.edu") {
		t.Errorf("To = %v", got)
	}
	if got := msg.GetHeader("From"); len(got) != 1 || !strings.Contains(got[0], "noreply@example.edu") {
		t.Errorf("From = %v", got)
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error: %v", err)
	}
	if !strings.Contains(buf.String(), "text/html") {
		t.Error("message body is not html")
	}
}

func TestNewPicksDriver(t *testing.T) {
	tests := []struct {
		driver  string
		want    string
		wantErr bool
	}{
		{config.MailDriverSendGrid, "*mailer.SendGridMailer", false},
		{config.MailDriverSMTP, "*mailer.SMTPMailer", false},
		{"pigeon", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			client, err := New(config.MailConfig{DRIVER: tt.driver}, false, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			switch client.(type) {
			case *SendGridMailer:
				if tt.want != "*mailer.SendGridMailer" {
					t.Errorf("got SendGridMailer, want %s", tt.want)
				}
			case *SMTPMailer:
				if tt.want != "*mailer.SMTPMailer" {
					t.Errorf("got SMTPMailer, want %s", tt.want)
				}
			}
		})
	}
}
