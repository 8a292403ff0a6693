// internal/domain/biorhythm/cycle.go
package biorhythm

import "math"

// Cycle identifies one of the three fixed-period rhythms.
type Cycle string

const (
	Physical     Cycle = "physical"
	Emotional    Cycle = "emotional"
	Intellectual Cycle = "intellectual"
)

const (
	PhysicalPeriod     = 23
	EmotionalPeriod    = 28
	IntellectualPeriod = 33
)

// Cycles lists the rhythms in display order.
func Cycles() []Cycle {
	return []Cycle{Physical, Emotional, Intellectual}
}

// Period returns the cycle length in days, or 0 for an unknown cycle.
func (c Cycle) Period() int {
	switch c {
	case Physical:
		return PhysicalPeriod
	case Emotional:
		return EmotionalPeriod
	case Intellectual:
		return IntellectualPeriod
	default:
		return 0
	}
}

func (c Cycle) String() string {
	return string(c)
}

// Title is the capitalised display name.
func (c Cycle) Title() string {
	switch c {
	case Physical:
		return "Physical"
	case Emotional:
		return "Emotional"
	case Intellectual:
		return "Intellectual"
	default:
		return string(c)
	}
}

// CycleValue returns round(100 * sin(2*pi*days/period)), rounded half away from zero.
// The result is always within [-100, 100].
func CycleValue(days, period int) int {
	// Reducing first keeps CycleValue(d, p) == CycleValue(d+p, p) exact in floating point.
	r := CycleDay(days, period)
	return int(math.Round(100 * math.Sin(2*math.Pi*float64(r)/float64(period))))
}

// CycleDay returns how far into its current cycle a rhythm is, in 0..period-1.
func CycleDay(days, period int) int {
	r := days % period
	if r < 0 {
		r += period
	}
	return r
}

// Snapshot holds the three rhythm values for a single day.
type Snapshot struct {
	Physical     int `json:"physical"`
	Emotional    int `json:"emotional"`
	Intellectual int `json:"intellectual"`
}

// Value returns the component for c.
func (s Snapshot) Value(c Cycle) int {
	switch c {
	case Physical:
		return s.Physical
	case Emotional:
		return s.Emotional
	case Intellectual:
		return s.Intellectual
	default:
		return 0
	}
}

// SnapshotAt builds a snapshot from an already normalised day count.
func SnapshotAt(days int) Snapshot {
	return Snapshot{
		Physical:     CycleValue(days, PhysicalPeriod),
		Emotional:    CycleValue(days, EmotionalPeriod),
		Intellectual: CycleValue(days, IntellectualPeriod),
	}
}

// ComputeSnapshot returns the rhythm values of target relative to birth.
func ComputeSnapshot(birth, target Date) (Snapshot, error) {
	days, err := DaysSinceBirth(birth, target)
	if err != nil {
		return Snapshot{}, err
	}
	return SnapshotAt(days), nil
}
