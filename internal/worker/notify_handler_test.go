package worker

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"resumeforge/internal/tasks"
)

type captureMailer struct {
	to      []string
	subject []string
	body    []string
}

func (m *captureMailer) Send(_ context.Context, to, subject, body string) error {
	m.to = append(m.to, to)
	m.subject = append(m.subject, subject)
	m.body = append(m.body, body)
	return nil
}

func TestNotifyTaskHandler_ProcessContact(t *testing.T) {
	mailer := &captureMailer{}
	h := NewNotifyTaskHandler(mailer, "admin@example.com", slog.Default())

	task, err := tasks.NewContactNotifyTask(tasks.ContactNotifyPayload{
		MessageID: 7,
		Name:      "Ada",
		Email:     "ada@example.com",
		Reason:    "feedback",
		Subject:   "Hello",
	})
	if err != nil {
		t.Fatalf("build task: %v", err)
	}

	if err := h.ProcessContact(context.Background(), task); err != nil {
		t.Fatalf("process contact: %v", err)
	}

	if len(mailer.to) != 1 || mailer.to[0] != "admin@example.com" {
		t.Fatalf("contact notification must go to the admin, got %v", mailer.to)
	}
	if !strings.Contains(mailer.body[0], "Ada") || !strings.Contains(mailer.body[0], "#7") {
		t.Fatalf("unexpected body %q", mailer.body[0])
	}
}

func TestNotifyTaskHandler_ProcessNewsletter(t *testing.T) {
	mailer := &captureMailer{}
	h := NewNotifyTaskHandler(mailer, "admin@example.com", slog.Default())

	task, err := tasks.NewNewsletterNotifyTask(tasks.NewsletterNotifyPayload{
		SubscriberID: 3,
		Email:        "ada@example.com",
	})
	if err != nil {
		t.Fatalf("build task: %v", err)
	}

	if err := h.ProcessNewsletter(context.Background(), task); err != nil {
		t.Fatalf("process newsletter: %v", err)
	}

	if len(mailer.to) != 1 || mailer.to[0] != "ada@example.com" {
		t.Fatalf("welcome mail must go to the subscriber, got %v", mailer.to)
	}
}
