// internal/domain/digest/delivery.go
package digest

import (
	"database/sql"
	"time"
)

// DeliveryStatus is the outcome of sending a run to one subscriber.
type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "SENT"
	DeliveryFailed DeliveryStatus = "FAILED"
)

// Delivery records that a run was sent (or failed) for a subscriber.
// Corresponds to the 'digest_deliveries' table.
type Delivery struct {
	ID           int64
	RunID        int64
	SubscriberID int64
	Status       DeliveryStatus
	Error        sql.NullString
	SentAt       time.Time
}
