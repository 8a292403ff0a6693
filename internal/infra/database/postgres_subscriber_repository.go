package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nice_day_bot/internal/domain/biorhythm"
	"nice_day_bot/internal/domain/subscriber"

	"github.com/lib/pq"
)

// Custom errors
var ErrSubscriberNotFound = errors.New("subscriber not found")
var ErrDuplicateTelegramID = errors.New("subscriber with this Telegram ID already exists")

const subscriberColumns = `id, telegram_id, first_name, birth_date, digest_enabled, history, created_at, updated_at`

type PostgresSubscriberRepository struct {
	db *sql.DB
}

func NewPostgresSubscriberRepository(db *sql.DB) *PostgresSubscriberRepository {
	return &PostgresSubscriberRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscriber(row rowScanner) (*subscriber.Subscriber, error) {
	s := &subscriber.Subscriber{}
	var birth sql.NullTime
	var history []string
	if err := row.Scan(&s.ID, &s.TelegramID, &s.FirstName, &birth, &s.DigestEnabled, pq.Array(&history), &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if birth.Valid {
		d := biorhythm.Date{Year: birth.Time.Year(), Month: int(birth.Time.Month()), Day: birth.Time.Day()}
		s.BirthDate = &d
	}
	s.History = biorhythm.ParseHistory(history)
	return s, nil
}

func birthDateParam(d *biorhythm.Date) sql.NullTime {
	if d == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: d.UTC(), Valid: true}
}

func (r *PostgresSubscriberRepository) Create(ctx context.Context, s *subscriber.Subscriber) error {
	query := `INSERT INTO subscribers (telegram_id, first_name, birth_date, digest_enabled, history)
               VALUES ($1, $2, $3, $4, $5)
               RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		s.TelegramID, s.FirstName, birthDateParam(s.BirthDate), s.DigestEnabled, pq.Array(s.History.Strings()),
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "subscribers_telegram_id_key") {
			return ErrDuplicateTelegramID
		}
		return fmt.Errorf("error creating subscriber: %w", err)
	}
	return nil
}

func (r *PostgresSubscriberRepository) GetByID(ctx context.Context, id int64) (*subscriber.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE id = $1`
	s, err := scanSubscriber(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriberNotFound
		}
		return nil, fmt.Errorf("error getting subscriber by ID: %w", err)
	}
	return s, nil
}

func (r *PostgresSubscriberRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*subscriber.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE telegram_id = $1`
	s, err := scanSubscriber(r.db.QueryRowContext(ctx, query, telegramID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriberNotFound
		}
		return nil, fmt.Errorf("error getting subscriber by Telegram ID: %w", err)
	}
	return s, nil
}

func (r *PostgresSubscriberRepository) Update(ctx context.Context, s *subscriber.Subscriber) error {
	query := `UPDATE subscribers
               SET first_name = $1, birth_date = $2, digest_enabled = $3, history = $4, updated_at = NOW()
               WHERE id = $5
               RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		s.FirstName, birthDateParam(s.BirthDate), s.DigestEnabled, pq.Array(s.History.Strings()), s.ID,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSubscriberNotFound
		}
		return fmt.Errorf("error updating subscriber: %w", err)
	}
	return nil
}

// ListDigestRecipients returns subscribers that opted into digests and have a birth date.
func (r *PostgresSubscriberRepository) ListDigestRecipients(ctx context.Context) ([]*subscriber.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM subscribers
               WHERE digest_enabled = TRUE AND birth_date IS NOT NULL ORDER BY id`
	return r.list(ctx, query, "digest recipients")
}

func (r *PostgresSubscriberRepository) ListAll(ctx context.Context) ([]*subscriber.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM subscribers ORDER BY id`
	return r.list(ctx, query, "all subscribers")
}

func (r *PostgresSubscriberRepository) list(ctx context.Context, query, what string) ([]*subscriber.Subscriber, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", what, err)
	}
	defer rows.Close()

	subscribers := make([]*subscriber.Subscriber, 0)
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning %s: %w", what, err)
		}
		subscribers = append(subscribers, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", what, err)
	}
	return subscribers, nil
}
