// internal/domain/biorhythm/combined.go
package biorhythm

import "math"

// Weights of the combined value. They add up to exactly 1.00; an even 1/3 split gives
// different results and must not be used.
const (
	PhysicalWeight     = 0.33
	EmotionalWeight    = 0.33
	IntellectualWeight = 0.34
)

// Combined is the unrounded weighted blend of the three rhythms.
func Combined(s Snapshot) float64 {
	return float64(s.Physical)*PhysicalWeight +
		float64(s.Emotional)*EmotionalWeight +
		float64(s.Intellectual)*IntellectualWeight
}

// CombinedDisplay rounds the combined value to one decimal place.
func CombinedDisplay(s Snapshot) float64 {
	return math.Round(Combined(s)*10) / 10
}

// CombinedRounded rounds the combined value to an integer. Monthly extrema are compared
// on this value.
func CombinedRounded(s Snapshot) int {
	return int(math.Round(Combined(s)))
}
