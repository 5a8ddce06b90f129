package queue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/SeakMengs/FacultyCert/internal/issuer"
	"github.com/SeakMengs/FacultyCert/internal/mailer"
)

type fakePublisher struct {
	queue  QueueName
	bodies [][]byte
}

func (f *fakePublisher) Publish(ctx context.Context, routingKey QueueName, body []byte) error {
	f.queue = routingKey
	f.bodies = append(f.bodies, body)
	return nil
}

type fakeMailer struct {
	status int
	err    error
	sent   []any
	to     []string
}

func (f *fakeMailer) Send(templateFile mailer.MailTemplateFile, toName, toEmail string, data any) (int, error) {
	f.sent = append(f.sent, data)
	f.to = append(f.to, toEmail)
	return f.status, f.err
}

func notification() issuer.Notification {
	return issuer.Notification{
		ProfessorName:    "Ada Lovelace",
		Email:            "ada@example.edu",
		VerificationCode: "abc",
		VerificationLink: "https://cert.example.edu/verify/abc",
		IssuedAt:         time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestCertificateIssuedIsQueued(t *testing.T) {
	publisher := &fakePublisher{}
	m := &fakeMailer{status: http.StatusOK}
	d := NewMailDispatcher(publisher, m, nil)

	if err := d.CertificateIssued(context.Background(), notification()); err != nil {
		t.Fatalf("CertificateIssued() error: %v", err)
	}

	if publisher.queue != QueueMail || len(publisher.bodies) != 1 {
		t.Fatalf("published %d jobs to %q", len(publisher.bodies), publisher.queue)
	}
	if len(m.sent) != 0 {
		t.Error("queued mail was also sent inline")
	}

	var job MailJobPayload
	if err := json.Unmarshal(publisher.bodies[0], &job); err != nil {
		t.Fatalf("job is not json: %v", err)
	}
	if job.ToEmail != "ada@example.edu" || job.TemplateFile != mailer.TemplateCertificateIssued || job.Try != 0 {
		t.Errorf("unexpected job: %+v", job)
	}

	var data mailer.CertificateIssuedData
	if err := json.Unmarshal(job.Data, &data); err != nil {
		t.Fatalf("job data: %v", err)
	}
	if data.VerificationLink != "https://cert.example.edu/verify/abc" || data.IssuedAt != "May 1, 2025 10:00 UTC" {
		t.Errorf("unexpected data: %+v", data)
	}
}

func TestCertificateIssuedInlineWithoutBroker(t *testing.T) {
	m := &fakeMailer{status: http.StatusAccepted}
	d := NewMailDispatcher(nil, m, nil)

	if err := d.CertificateIssued(context.Background(), notification()); err != nil {
		t.Fatalf("CertificateIssued() error: %v", err)
	}
	if len(m.sent) != 1 || m.to[0] != "ada@example.edu" {
		t.Fatalf("sent = %v to %v", m.sent, m.to)
	}
	if _, ok := m.sent[0].(mailer.CertificateIssuedData); !ok {
		t.Errorf("data type = %T", m.sent[0])
	}
}

func TestSendMailJob(t *testing.T) {
	job, err := NewCertificateIssuedMailJob("Ada", "ada@example.edu", mailer.CertificateIssuedData{ProfessorName: "Ada"})
	if err != nil {
		t.Fatalf("NewCertificateIssuedMailJob() error: %v", err)
	}

	tests := []struct {
		name        string
		job         MailJobPayload
		mailer      *fakeMailer
		wantErr     bool
		wantRequeue bool
	}{
		{"sent", job, &fakeMailer{status: http.StatusAccepted}, false, false},
		{"transport error", job, &fakeMailer{err: errors.New("dial tcp")}, true, true},
		{"server error", job, &fakeMailer{status: http.StatusBadGateway}, true, true},
		{"rejected", job, &fakeMailer{status: http.StatusForbidden}, true, false},
		{"unknown template", MailJobPayload{TemplateFile: "templates/nope.tmpl"}, &fakeMailer{}, true, false},
		{"bad data", MailJobPayload{TemplateFile: mailer.TemplateCertificateIssued, Data: json.RawMessage(`[`)}, &fakeMailer{}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requeue, err := SendMailJob(tt.mailer, tt.job)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SendMailJob() error = %v, wantErr %v", err, tt.wantErr)
			}
			if requeue != tt.wantRequeue {
				t.Errorf("requeue = %v, want %v", requeue, tt.wantRequeue)
			}
		})
	}
}
