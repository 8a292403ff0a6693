// internal/domain/organclock/organclock.go
package organclock

import (
	"errors"
	"fmt"
	"sort"
)

var ErrIncompleteSchedule = errors.New("organ schedule must cover every hour of the day exactly once")

// Window is one slot of the 24-hour organ clock. End is exclusive and may be smaller than
// Start when the window wraps midnight (23 -> 1).
type Window struct {
	Start       int
	End         int
	Organ       string
	Description string
	Activities  string
	Tips        string
}

// Contains reports whether hour (0-23) falls inside w.
func (w Window) Contains(hour int) bool {
	if w.Start < w.End {
		return hour >= w.Start && hour < w.End
	}
	return hour >= w.Start || hour < w.End
}

// Range formats the window as "HH:00-HH:00".
func (w Window) Range() string {
	return fmt.Sprintf("%02d:00-%02d:00", w.Start, w.End)
}

// Schedule is a validated set of windows covering the whole day.
type Schedule struct {
	windows []Window
}

// NewSchedule checks that every hour is covered by exactly one window.
func NewSchedule(windows []Window) (*Schedule, error) {
	var covered [24]int
	for _, w := range windows {
		if w.Start < 0 || w.Start > 23 || w.End < 0 || w.End > 23 || w.Start == w.End {
			return nil, fmt.Errorf("%w: bad window %s for %s", ErrIncompleteSchedule, w.Range(), w.Organ)
		}
		for h := 0; h < 24; h++ {
			if w.Contains(h) {
				covered[h]++
			}
		}
	}
	for h, n := range covered {
		if n != 1 {
			return nil, fmt.Errorf("%w: hour %d covered %d times", ErrIncompleteSchedule, h, n)
		}
	}

	sorted := make([]Window, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	return &Schedule{windows: sorted}, nil
}

// At returns the window active at hour.
func (s *Schedule) At(hour int) (Window, bool) {
	for _, w := range s.windows {
		if w.Contains(hour) {
			return w, true
		}
	}
	return Window{}, false
}

// Windows returns the windows ordered by start hour.
func (s *Schedule) Windows() []Window {
	out := make([]Window, len(s.windows))
	copy(out, s.windows)
	return out
}
