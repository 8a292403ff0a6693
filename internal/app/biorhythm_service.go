package app

import (
	"context"
	"fmt"
	"time"

	"nice_day_bot/internal/domain/biorhythm"
	"nice_day_bot/internal/domain/subscriber"

	"github.com/sirupsen/logrus"
)

// BiorhythmService answers rhythm queries for registered subscribers.
type BiorhythmService struct {
	repo        subscriber.Repository
	clock       clock
	rangeBefore int
	rangeAfter  int
	log         *logrus.Entry
}

func NewBiorhythmService(repo subscriber.Repository, loc *time.Location, rangeBefore, rangeAfter int, log *logrus.Entry) *BiorhythmService {
	return &BiorhythmService{
		repo:        repo,
		clock:       newClock(loc),
		rangeBefore: rangeBefore,
		rangeAfter:  rangeAfter,
		log:         log,
	}
}

// Today returns the current date in the configured time zone.
func (s *BiorhythmService) Today() biorhythm.Date {
	return s.clock.today()
}

func (s *BiorhythmService) birthOf(ctx context.Context, telegramID int64) (*subscriber.Subscriber, biorhythm.Date, error) {
	sub, err := s.repo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, biorhythm.Date{}, err
	}
	if !sub.HasBirthDate() {
		return sub, biorhythm.Date{}, ErrBirthDateNotSet
	}
	return sub, *sub.BirthDate, nil
}

// Reading builds the report for target and records target in the subscriber's history.
func (s *BiorhythmService) Reading(ctx context.Context, telegramID int64, target biorhythm.Date) (DailyReport, error) {
	sub, birth, err := s.birthOf(ctx, telegramID)
	if err != nil {
		return DailyReport{}, err
	}
	report, err := BuildDailyReport(birth, target)
	if err != nil {
		return DailyReport{}, err
	}

	sub.History = sub.History.Push(target)
	if err := s.repo.Update(ctx, sub); err != nil {
		// The reading itself is still valid; only the history entry is lost.
		s.log.WithError(err).WithField("subscriber_id", sub.ID).Warn("Failed to save lookup history")
	}
	return report, nil
}

// Month returns the best and worst day of year/month.
func (s *BiorhythmService) Month(ctx context.Context, telegramID int64, year, month int) (biorhythm.MonthlyExtrema, error) {
	_, birth, err := s.birthOf(ctx, telegramID)
	if err != nil {
		return biorhythm.MonthlyExtrema{}, err
	}
	return biorhythm.ScanMonth(birth, year, month)
}

// Year returns the monthly extrema of all twelve months of year.
func (s *BiorhythmService) Year(ctx context.Context, telegramID int64, year int) ([]biorhythm.MonthlyExtrema, error) {
	_, birth, err := s.birthOf(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	return biorhythm.ScanYear(birth, year)
}

// Range returns the configured window of days around center.
func (s *BiorhythmService) Range(ctx context.Context, telegramID int64, center biorhythm.Date) (biorhythm.Series, error) {
	_, birth, err := s.birthOf(ctx, telegramID)
	if err != nil {
		return biorhythm.Series{}, err
	}
	series, err := biorhythm.ComputeRange(birth, center, s.rangeBefore, s.rangeAfter)
	if err != nil {
		return biorhythm.Series{}, fmt.Errorf("failed to compute range around %s: %w", center, err)
	}
	return series, nil
}

// History returns the subscriber's recent lookups, most recent first.
func (s *BiorhythmService) History(ctx context.Context, telegramID int64) (biorhythm.History, error) {
	sub, err := s.repo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	return sub.History, nil
}
