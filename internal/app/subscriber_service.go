package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nice_day_bot/internal/domain/biorhythm"
	"nice_day_bot/internal/domain/subscriber"
	idb "nice_day_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
)

// Custom application-level errors
var ErrAdminNotAuthorized = errors.New("performing user is not authorized as an admin")
var ErrBirthDateNotSet = errors.New("birth date is not set")
var ErrBirthDateInFuture = errors.New("birth date cannot be in the future")

// clock resolves "today" in the configured time zone.
type clock struct {
	loc *time.Location
	now func() time.Time
}

func newClock(loc *time.Location) clock {
	if loc == nil {
		loc = time.UTC
	}
	return clock{loc: loc, now: time.Now}
}

func (c clock) today() biorhythm.Date {
	return biorhythm.FromTime(c.now().In(c.loc))
}

type SubscriberService struct {
	repo            subscriber.Repository
	adminTelegramID int64
	clock           clock
	log             *logrus.Entry
}

func NewSubscriberService(repo subscriber.Repository, adminID int64, loc *time.Location, log *logrus.Entry) *SubscriberService {
	return &SubscriberService{
		repo:            repo,
		adminTelegramID: adminID,
		clock:           newClock(loc),
		log:             log,
	}
}

// IsAdmin reports whether telegramID is the configured administrator.
func (s *SubscriberService) IsAdmin(telegramID int64) bool {
	return telegramID == s.adminTelegramID
}

// Register returns the subscriber for telegramID, creating it on first contact.
// The boolean is true when a new record was created.
func (s *SubscriberService) Register(ctx context.Context, telegramID int64, firstName string) (*subscriber.Subscriber, bool, error) {
	existing, err := s.repo.GetByTelegramID(ctx, telegramID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, idb.ErrSubscriberNotFound) {
		return nil, false, fmt.Errorf("failed to look up subscriber: %w", err)
	}

	sub := &subscriber.Subscriber{
		TelegramID: telegramID,
		FirstName:  firstName,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		if errors.Is(err, idb.ErrDuplicateTelegramID) {
			// Lost a race with a concurrent /start from the same user.
			existing, getErr := s.repo.GetByTelegramID(ctx, telegramID)
			if getErr != nil {
				return nil, false, fmt.Errorf("failed to reload subscriber: %w", getErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to create subscriber: %w", err)
	}
	s.log.WithFields(logrus.Fields{"subscriber_id": sub.ID, "telegram_id": telegramID}).Info("Subscriber registered")
	return sub, true, nil
}

// Get returns the subscriber for telegramID or idb.ErrSubscriberNotFound.
func (s *SubscriberService) Get(ctx context.Context, telegramID int64) (*subscriber.Subscriber, error) {
	return s.repo.GetByTelegramID(ctx, telegramID)
}

// SetBirthDate stores the birth date, registering the user if needed.
func (s *SubscriberService) SetBirthDate(ctx context.Context, telegramID int64, firstName string, birth biorhythm.Date) (*subscriber.Subscriber, error) {
	if err := birth.Validate(); err != nil {
		return nil, err
	}
	if s.clock.today().Before(birth) {
		return nil, ErrBirthDateInFuture
	}

	sub, _, err := s.Register(ctx, telegramID, firstName)
	if err != nil {
		return nil, err
	}
	sub.BirthDate = &birth
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to save birth date: %w", err)
	}
	return sub, nil
}

// SetDigest turns the daily digest on or off. Enabling requires a birth date.
func (s *SubscriberService) SetDigest(ctx context.Context, telegramID int64, enabled bool) (*subscriber.Subscriber, error) {
	sub, err := s.repo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if enabled && !sub.HasBirthDate() {
		return nil, ErrBirthDateNotSet
	}
	if sub.DigestEnabled == enabled {
		return sub, nil
	}
	sub.DigestEnabled = enabled
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to update digest preference: %w", err)
	}
	return sub, nil
}

// ListAll returns every subscriber. Admin only.
func (s *SubscriberService) ListAll(ctx context.Context, performingAdminID int64) ([]*subscriber.Subscriber, error) {
	if !s.IsAdmin(performingAdminID) {
		return nil, ErrAdminNotAuthorized
	}
	subs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return subs, nil
}
