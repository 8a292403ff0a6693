package scheduler

import (
	"context"
	"fmt"
	"time"

	"nice_day_bot/internal/app" // For DigestResult
	"nice_day_bot/internal/domain/biorhythm"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DigestRunner is the part of app.DigestService the scheduler drives.
type DigestRunner interface {
	SendDaily(ctx context.Context, date biorhythm.Date) (app.DigestResult, error)
	SendMonthlyOutlook(ctx context.Context, year, month int) (app.DigestResult, error)
}

const jobTimeout = 10 * time.Minute

type DigestScheduler struct {
	cronEngine         *cron.Cron
	runner             DigestRunner
	logger             *logrus.Entry
	location           *time.Location
	now                func() time.Time
	cronSpecDaily      string
	cronSpecMonthly    string // e.g. "0 9 1 * *" (9:00 AM on the 1st)
	dailyScheduleSpec  cron.Schedule
	monthlyOutlookSpec cron.Schedule
}

// NewDigestScheduler parses both cron specs and rejects invalid ones.
func NewDigestScheduler(
	runner DigestRunner,
	logger *logrus.Entry,
	location *time.Location,
	cronSpecDaily string, // e.g., "0 8 * * *" (8:00 AM daily)
	cronSpecMonthly string,
) (*DigestScheduler, error) {
	if location == nil {
		location = time.UTC
	}
	daily, err := cron.ParseStandard(cronSpecDaily)
	if err != nil {
		return nil, fmt.Errorf("invalid daily digest cron spec %q: %w", cronSpecDaily, err)
	}
	monthly, err := cron.ParseStandard(cronSpecMonthly)
	if err != nil {
		return nil, fmt.Errorf("invalid monthly outlook cron spec %q: %w", cronSpecMonthly, err)
	}
	return &DigestScheduler{
		cronEngine:         cron.New(cron.WithLocation(location)),
		runner:             runner,
		logger:             logger,
		location:           location,
		now:                time.Now,
		cronSpecDaily:      cronSpecDaily,
		cronSpecMonthly:    cronSpecMonthly,
		dailyScheduleSpec:  daily,
		monthlyOutlookSpec: monthly,
	}, nil
}

func (s *DigestScheduler) Start() {
	s.logger.Info("Starting digest scheduler...")

	s.cronEngine.Schedule(s.dailyScheduleSpec, cron.FuncJob(func() {
		s.logger.WithField("spec", s.cronSpecDaily).Info("Cron job triggered for daily digest.")
		s.runDaily()
	}))
	s.cronEngine.Schedule(s.monthlyOutlookSpec, cron.FuncJob(func() {
		s.logger.WithField("spec", s.cronSpecMonthly).Info("Cron job triggered for monthly outlook.")
		s.runMonthly()
	}))

	s.cronEngine.Start()
	s.logger.WithFields(logrus.Fields{
		"location":     s.location.String(),
		"next_daily":   s.dailyScheduleSpec.Next(s.now().In(s.location)).Format(time.RFC3339),
		"next_monthly": s.monthlyOutlookSpec.Next(s.now().In(s.location)).Format(time.RFC3339),
	}).Info("Digest scheduler started with jobs.")
}

func (s *DigestScheduler) today() biorhythm.Date {
	return biorhythm.FromTime(s.now().In(s.location))
}

func (s *DigestScheduler) jobLogger(job string) *logrus.Entry {
	return s.logger.WithFields(logrus.Fields{"job": job, "job_id": uuid.NewString()})
}

func (s *DigestScheduler) runDaily() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	log := s.jobLogger("daily_digest")

	today := s.today()
	res, err := s.runner.SendDaily(ctx, today)
	if err != nil {
		log.WithError(err).WithField("date", today.String()).Error("Daily digest failed")
		return
	}
	log.WithFields(logrus.Fields{"date": today.String(), "sent": res.Sent, "skipped": res.Skipped, "failed": res.Failed}).
		Info("Daily digest completed")
}

// runMonthly sends the outlook of the month that contains today, so the default spec
// (the 1st) previews the month just starting.
func (s *DigestScheduler) runMonthly() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	log := s.jobLogger("monthly_outlook")

	today := s.today()
	res, err := s.runner.SendMonthlyOutlook(ctx, today.Year, today.Month)
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{"year": today.Year, "month": today.Month}).Error("Monthly outlook failed")
		return
	}
	log.WithFields(logrus.Fields{"year": today.Year, "month": today.Month, "sent": res.Sent, "skipped": res.Skipped, "failed": res.Failed}).
		Info("Monthly outlook completed")
}

func (s *DigestScheduler) Stop() {
	s.logger.Info("Stopping digest scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Digest scheduler gracefully stopped.")
}
