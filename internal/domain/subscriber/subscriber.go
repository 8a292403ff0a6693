package subscriber

import (
	"time"

	"nice_day_bot/internal/domain/biorhythm"
)

// Subscriber is a Telegram user of the bot.
type Subscriber struct {
	ID            int64
	TelegramID    int64
	FirstName     string
	BirthDate     *biorhythm.Date // nil until the user registers one
	DigestEnabled bool
	History       biorhythm.History
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasBirthDate reports whether rhythms can be computed for s.
func (s *Subscriber) HasBirthDate() bool {
	return s.BirthDate != nil
}
