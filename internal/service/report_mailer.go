package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"alphabetquest/internal/models"
)

// Sender is the email delivery used by the report mailer
type Sender interface {
	IsEnabled() bool
	Send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error
}

// ReportMailer composes and sends the periodic progress report email
type ReportMailer struct {
	reports  *ReportService
	profiles ProfileStore
	sender   Sender
	toEmail  string
}

// NewReportMailer creates a new report mailer
func NewReportMailer(reports *ReportService, profiles ProfileStore, sender Sender, toEmail string) *ReportMailer {
	return &ReportMailer{
		reports:  reports,
		profiles: profiles,
		sender:   sender,
		toEmail:  toEmail,
	}
}

// SendReport emails a progress summary for every profile. It is a no-op when
// the sender is disabled or no recipient is configured.
func (m *ReportMailer) SendReport(ctx context.Context) error {
	if !m.sender.IsEnabled() || m.toEmail == "" {
		log.Println("Progress report skipped: email not configured")
		return nil
	}

	profiles, err := m.profiles.List()
	if err != nil {
		return fmt.Errorf("failed to list profiles for report: %w", err)
	}
	if len(profiles) == 0 {
		log.Println("Progress report skipped: no profiles")
		return nil
	}

	var html, text strings.Builder
	html.WriteString("<h1>Alphabet Progress Report</h1>")
	text.WriteString("Alphabet Progress Report\n\n")

	for _, profile := range profiles {
		summary, err := m.reports.GetProgressSummary(models.ModeBoth, profile.ID)
		if err != nil {
			return fmt.Errorf("failed to summarise progress for %s: %w", profile.Name, err)
		}
		writeProfileSection(&html, &text, profile, summary)
	}

	subject := fmt.Sprintf("Alphabet Progress Report - %s", time.Now().Format("2 January 2006"))
	return m.sender.Send(ctx, m.toEmail, subject, html.String(), text.String())
}

func writeProfileSection(html, text *strings.Builder, profile models.Profile, summary *models.ProgressSummary) {
	c := summary.Counts
	fmt.Fprintf(html, "<h2>%s %s</h2>", profile.Avatar, profile.Name)
	fmt.Fprintf(html, "<p>Mastered: %d &middot; Learning: %d &middot; Not started: %d</p>", c.Mastered, c.Learning, c.New)
	fmt.Fprintf(text, "%s\n  Mastered: %d, Learning: %d, Not started: %d\n", profile.Name, c.Mastered, c.Learning, c.New)

	if len(summary.ProblemLetters) > 0 {
		letters := make([]string, 0, len(summary.ProblemLetters))
		for _, pl := range summary.ProblemLetters {
			letters = append(letters, pl.Character)
		}
		fmt.Fprintf(html, "<p>Needs practice: %s</p>", strings.Join(letters, ", "))
		fmt.Fprintf(text, "  Needs practice: %s\n", strings.Join(letters, ", "))
	}

	if len(summary.RecentSessions) > 0 {
		last := summary.RecentSessions[0]
		if last.TotalCards > 0 {
			pct := 100 * last.CorrectCount / last.TotalCards
			fmt.Fprintf(html, "<p>Last session: %d/%d correct (%d%%)</p>", last.CorrectCount, last.TotalCards, pct)
			fmt.Fprintf(text, "  Last session: %d/%d correct (%d%%)\n", last.CorrectCount, last.TotalCards, pct)
		}
	}
	text.WriteString("\n")
}
