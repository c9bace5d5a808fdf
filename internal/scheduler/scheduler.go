package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Mailer sends the periodic progress report
type Mailer interface {
	SendReport(ctx context.Context) error
}

// Scheduler runs the daily progress report job
type Scheduler struct {
	scheduler *gocron.Scheduler
	mailer    Mailer
	hour      int
}

// New creates a new scheduler that sends the report at the given local hour
func New(mailer Mailer, hour int) *Scheduler {
	s := gocron.NewScheduler(time.Local)
	return &Scheduler{
		scheduler: s,
		mailer:    mailer,
		hour:      hour,
	}
}

// Start begins running scheduled tasks in the background
func (s *Scheduler) Start() {
	at := fmt.Sprintf("%02d:00", s.hour)
	if _, err := s.scheduler.Every(1).Day().At(at).Do(s.sendReport); err != nil {
		log.Printf("Error scheduling progress report: %v", err)
		return
	}
	s.scheduler.StartAsync()
	log.Printf("Progress report scheduled daily at %s", at)
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) sendReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.mailer.SendReport(ctx); err != nil {
		log.Printf("Error sending progress report: %v", err)
	}
}
