// internal/infra/database/postgres_digest_repository.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nice_day_bot/internal/domain/digest"
)

// Custom errors specific to the digest repository
var ErrDigestRunNotFound = errors.New("digest run not found")
var ErrDuplicateDigestRun = errors.New("digest run for this date and type already exists")
var ErrDeliveryNotFound = errors.New("digest delivery not found")

type PostgresDigestRepository struct {
	db *sql.DB
}

func NewPostgresDigestRepository(db *sql.DB) *PostgresDigestRepository {
	return &PostgresDigestRepository{db: db}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// --- Run Methods ---

func (r *PostgresDigestRepository) CreateRun(ctx context.Context, run *digest.Run) error {
	query := `INSERT INTO digest_runs (run_date, run_type)
               VALUES ($1, $2)
               RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, dateOnly(run.RunDate), run.Type).Scan(&run.ID, &run.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "digest_runs_date_type_unique") {
			return ErrDuplicateDigestRun
		}
		return fmt.Errorf("error creating digest run: %w", err)
	}
	return nil
}

func (r *PostgresDigestRepository) GetRunByDateAndType(ctx context.Context, runDate time.Time, runType digest.RunType) (*digest.Run, error) {
	query := `SELECT id, run_date, run_type, created_at FROM digest_runs WHERE run_date = $1 AND run_type = $2`
	run := digest.Run{}
	err := r.db.QueryRowContext(ctx, query, dateOnly(runDate), runType).Scan(&run.ID, &run.RunDate, &run.Type, &run.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDigestRunNotFound
		}
		return nil, fmt.Errorf("error getting digest run by date and type: %w", err)
	}
	return &run, nil
}

// --- Delivery Methods ---

func (r *PostgresDigestRepository) RecordDelivery(ctx context.Context, d *digest.Delivery) error {
	query := `INSERT INTO digest_deliveries (run_id, subscriber_id, status, error, sent_at)
               VALUES ($1, $2, $3, $4, NOW())
               ON CONFLICT ON CONSTRAINT digest_deliveries_run_subscriber_unique
               DO UPDATE SET status = EXCLUDED.status, error = EXCLUDED.error, sent_at = EXCLUDED.sent_at
               RETURNING id, sent_at`
	err := r.db.QueryRowContext(ctx, query, d.RunID, d.SubscriberID, d.Status, d.Error).Scan(&d.ID, &d.SentAt)
	if err != nil {
		return fmt.Errorf("error recording digest delivery: %w", err)
	}
	return nil
}

func (r *PostgresDigestRepository) GetDelivery(ctx context.Context, runID, subscriberID int64) (*digest.Delivery, error) {
	query := `SELECT id, run_id, subscriber_id, status, error, sent_at
               FROM digest_deliveries WHERE run_id = $1 AND subscriber_id = $2`
	d := digest.Delivery{}
	err := r.db.QueryRowContext(ctx, query, runID, subscriberID).Scan(&d.ID, &d.RunID, &d.SubscriberID, &d.Status, &d.Error, &d.SentAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("error getting digest delivery: %w", err)
	}
	return &d, nil
}

func (r *PostgresDigestRepository) ListDeliveries(ctx context.Context, runID int64) ([]*digest.Delivery, error) {
	query := `SELECT id, run_id, subscriber_id, status, error, sent_at
               FROM digest_deliveries WHERE run_id = $1 ORDER BY subscriber_id`
	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("error listing digest deliveries: %w", err)
	}
	defer rows.Close()

	deliveries := make([]*digest.Delivery, 0)
	for rows.Next() {
		d := &digest.Delivery{}
		if err := rows.Scan(&d.ID, &d.RunID, &d.SubscriberID, &d.Status, &d.Error, &d.SentAt); err != nil {
			return nil, fmt.Errorf("error scanning digest delivery: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating digest deliveries: %w", err)
	}
	return deliveries, nil
}
