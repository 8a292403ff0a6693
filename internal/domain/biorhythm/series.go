// internal/domain/biorhythm/series.go
package biorhythm

import (
	"errors"
	"fmt"
)

// MaxRangeDays bounds each side of a range request.
const MaxRangeDays = 366

var ErrInvalidRange = errors.New("range bounds must be between 0 and 366 days")

// Series is a day-by-day rhythm table. All slices share the same length and index.
type Series struct {
	Dates        []Date
	Physical     []int
	Emotional    []int
	Intellectual []int
	Combined     []float64 // one decimal
}

// Len returns the number of days in the series.
func (s Series) Len() int {
	return len(s.Dates)
}

// At returns the snapshot of the i-th day.
func (s Series) At(i int) Snapshot {
	return Snapshot{Physical: s.Physical[i], Emotional: s.Emotional[i], Intellectual: s.Intellectual[i]}
}

// ComputeRange returns the series from center-before to center+after inclusive.
func ComputeRange(birth, center Date, before, after int) (Series, error) {
	if before < 0 || before > MaxRangeDays || after < 0 || after > MaxRangeDays {
		return Series{}, fmt.Errorf("%w: before=%d after=%d", ErrInvalidRange, before, after)
	}
	centerDays, err := DaysSinceBirth(birth, center)
	if err != nil {
		return Series{}, err
	}

	n := before + after + 1
	s := Series{
		Dates:        make([]Date, 0, n),
		Physical:     make([]int, 0, n),
		Emotional:    make([]int, 0, n),
		Intellectual: make([]int, 0, n),
		Combined:     make([]float64, 0, n),
	}
	start := center.AddDays(-before)
	for i := 0; i < n; i++ {
		snap := SnapshotAt(centerDays - before + i)
		s.Dates = append(s.Dates, start.AddDays(i))
		s.Physical = append(s.Physical, snap.Physical)
		s.Emotional = append(s.Emotional, snap.Emotional)
		s.Intellectual = append(s.Intellectual, snap.Intellectual)
		s.Combined = append(s.Combined, CombinedDisplay(snap))
	}
	return s, nil
}
