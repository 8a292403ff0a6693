// internal/domain/digest/repository.go
package digest

import (
	"context"
	"time"
)

// Repository defines operations for digest runs and their deliveries.
type Repository interface {
	CreateRun(ctx context.Context, run *Run) error
	GetRunByDateAndType(ctx context.Context, runDate time.Time, runType RunType) (*Run, error)

	// RecordDelivery inserts or overwrites the delivery of a run to one subscriber.
	RecordDelivery(ctx context.Context, d *Delivery) error
	GetDelivery(ctx context.Context, runID, subscriberID int64) (*Delivery, error)
	ListDeliveries(ctx context.Context, runID int64) ([]*Delivery, error)
}
