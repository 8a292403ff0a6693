package subscriber

import (
	"context"
)

// Repository defines the operations for persisting and retrieving Subscriber entities.
type Repository interface {
	Create(ctx context.Context, s *Subscriber) error
	GetByID(ctx context.Context, id int64) (*Subscriber, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*Subscriber, error)
	Update(ctx context.Context, s *Subscriber) error // FirstName, BirthDate, DigestEnabled, History
	ListDigestRecipients(ctx context.Context) ([]*Subscriber, error)
	ListAll(ctx context.Context) ([]*Subscriber, error) // For admin purposes
}
