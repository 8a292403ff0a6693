package scheduler

import (
	"testing"

	"go.uber.org/goleak"
)

// Stop must leave no cron goroutines behind.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
