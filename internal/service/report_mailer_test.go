package service

import (
	"context"
	"strings"
	"testing"

	"alphabetquest/internal/models"
)

type fakeSender struct {
	enabled bool
	sent    []string
	body    string
}

func (f *fakeSender) IsEnabled() bool { return f.enabled }

func (f *fakeSender) Send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	f.sent = append(f.sent, toEmail)
	f.body = textBody
	return nil
}

func TestSendReport(t *testing.T) {
	progress := newFakeProgressStore()
	progress.counts = models.StatusCounts{Mastered: 3, Learning: 5, New: 18}
	profiles := newFakeProfileStore(1)
	reports := NewReportService(progress, newFakeSessionStore(), profiles)
	sender := &fakeSender{enabled: true}
	m := NewReportMailer(reports, profiles, sender, "parent@example.com")

	if err := m.SendReport(context.Background()); err != nil {
		t.Fatalf("SendReport() error = %v", err)
	}

	if len(sender.sent) != 1 || sender.sent[0] != "parent@example.com" {
		t.Fatalf("sent to %v, want parent@example.com", sender.sent)
	}
	if !strings.Contains(sender.body, "kid-1") {
		t.Errorf("report body missing profile name: %q", sender.body)
	}
	if !strings.Contains(sender.body, "Mastered: 3") {
		t.Errorf("report body missing counts: %q", sender.body)
	}
}

func TestSendReportSkipsWhenUnconfigured(t *testing.T) {
	profiles := newFakeProfileStore(1)
	reports := NewReportService(newFakeProgressStore(), newFakeSessionStore(), profiles)

	disabled := &fakeSender{enabled: false}
	m := NewReportMailer(reports, profiles, disabled, "parent@example.com")
	if err := m.SendReport(context.Background()); err != nil {
		t.Fatalf("SendReport() error = %v", err)
	}
	if len(disabled.sent) != 0 {
		t.Error("sent despite disabled sender")
	}

	noRecipient := &fakeSender{enabled: true}
	m = NewReportMailer(reports, profiles, noRecipient, "")
	if err := m.SendReport(context.Background()); err != nil {
		t.Fatalf("SendReport() error = %v", err)
	}
	if len(noRecipient.sent) != 0 {
		t.Error("sent with no recipient configured")
	}
}
