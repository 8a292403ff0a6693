// internal/domain/digest/run.go
package digest

import "time"

// RunType tells a daily digest apart from a monthly outlook.
type RunType string

const (
	RunTypeDaily   RunType = "DAILY"
	RunTypeMonthly RunType = "MONTHLY"
)

// Run is one scheduled broadcast, e.g. the daily digest of 2025-05-14.
// Corresponds to the 'digest_runs' table.
type Run struct {
	ID        int64
	RunDate   time.Time // date only
	Type      RunType
	CreatedAt time.Time
}
