// internal/domain/biorhythm/status.go
package biorhythm

// Status is the qualitative label of a rhythm value.
type Status string

const (
	StatusExtremePositive Status = "extreme-positive"
	StatusVeryGood        Status = "very-good"
	StatusGood            Status = "good"
	StatusFair            Status = "fair"
	StatusPlateau         Status = "plateau"
	StatusFairLow         Status = "fair-low"
	StatusPoor            Status = "poor"
	StatusVeryBad         Status = "very-bad"
	StatusExtremeNegative Status = "extreme-negative"
)

type statusBand struct {
	min      int
	positive Status
	negative Status
}

// Ordered from the strongest band down; the first band whose threshold |v| reaches wins.
var statusBands = []statusBand{
	{min: 90, positive: StatusExtremePositive, negative: StatusExtremeNegative},
	{min: 70, positive: StatusVeryGood, negative: StatusVeryBad},
	{min: 50, positive: StatusGood, negative: StatusPoor},
	{min: 30, positive: StatusFair, negative: StatusFairLow},
}

// ClassifyStatus maps a rhythm or combined value onto a Status. Values outside [-100, 100]
// fall into the outermost band.
func ClassifyStatus(v int) Status {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	for _, b := range statusBands {
		if abs >= b.min {
			if v > 0 {
				return b.positive
			}
			return b.negative
		}
	}
	return StatusPlateau
}

var statusLabels = map[Status]string{
	StatusExtremePositive: "Excellent",
	StatusVeryGood:        "Very good",
	StatusGood:            "Good",
	StatusFair:            "Fair",
	StatusPlateau:         "Plateau",
	StatusFairLow:         "Slightly low",
	StatusPoor:            "Poor",
	StatusVeryBad:         "Very poor",
	StatusExtremeNegative: "Terrible",
}

// Label returns the human readable form of s.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}
