// Package scheduler runs the daily panchang job and keeps its latest result.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/kundli-service/internal/config"
	"github.com/Dan9191/kundli-service/internal/models"
)

// jobTimeout bounds one run of the daily job
const jobTimeout = 2 * time.Minute

// PanchangComputer computes the panchang of a civil date at a place
type PanchangComputer interface {
	DailyPanchang(ctx context.Context, date time.Time, loc models.Location) (models.PanchangDay, error)
}

// Notifier delivers the daily panchang
type Notifier interface {
	SendPanchangDigest(to []string, d models.DailyPanchang) error
}

// Scheduler computes the panchang of the configured location on a cron
// schedule and optionally mails it.
type Scheduler struct {
	cron       *cron.Cron
	svc        PanchangComputer
	notifier   Notifier
	recipients []string
	zone       *time.Location
	loc        models.Location
	log        *logrus.Logger
	now        func() time.Time

	mu     sync.RWMutex
	latest *models.DailyPanchang
}

// New registers the daily job. A nil notifier disables the digest email.
func New(cfg *config.Config, svc PanchangComputer, notifier Notifier, log *logrus.Logger) (*Scheduler, error) {
	zone, err := time.LoadLocation(cfg.DigestTimezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load digest timezone: %w", err)
	}
	s := &Scheduler{
		cron:       cron.New(cron.WithLocation(zone)),
		svc:        svc,
		notifier:   notifier,
		recipients: cfg.DigestRecipients,
		zone:       zone,
		loc:        models.Location{Latitude: cfg.DigestLatitude, Longitude: cfg.DigestLongitude},
		log:        log,
		now:        time.Now,
	}
	_, err = s.cron.AddFunc(cfg.DigestSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if err := s.Run(ctx); err != nil {
			s.log.Errorf("Daily panchang job failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid DIGEST_SCHEDULE %q: %w", cfg.DigestSchedule, err)
	}
	return s, nil
}

// Start runs the cron in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Infof("Daily panchang job scheduled, %d entries", len(s.cron.Entries()))
}

// Stop stops the cron and waits for a running job to finish or ctx to end
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Run computes today's panchang, stores it and mails the digest
func (s *Scheduler) Run(ctx context.Context) error {
	now := s.now().In(s.zone)
	p, err := s.svc.DailyPanchang(ctx, now, s.loc)
	if err != nil {
		return fmt.Errorf("failed to compute daily panchang: %w", err)
	}
	d := models.DailyPanchang{
		Date:        now.Format("2006-01-02"),
		Timezone:    s.zone.String(),
		Location:    s.loc,
		Panchang:    p,
		GeneratedAt: now,
	}

	s.mu.Lock()
	s.latest = &d
	s.mu.Unlock()
	s.log.WithFields(logrus.Fields{"date": d.Date, "tithi": p.Tithi}).Info("Daily panchang computed")

	if s.notifier == nil || len(s.recipients) == 0 {
		return nil
	}
	return s.notifier.SendPanchangDigest(s.recipients, d)
}

// Latest returns the most recently computed daily panchang
func (s *Scheduler) Latest() (models.DailyPanchang, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return models.DailyPanchang{}, false
	}
	return *s.latest, true
}
