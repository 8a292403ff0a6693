package app

import (
	"nice_day_bot/internal/domain/biorhythm"
)

// CycleReading is one rhythm of a DailyReport.
type CycleReading struct {
	Cycle  biorhythm.Cycle
	Value  int
	Day    int // 1-based position within the period
	Period int
	Status biorhythm.Status
	Tip    string
}

// DailyReport is everything shown for a single date.
type DailyReport struct {
	Date           biorhythm.Date
	DaysSinceBirth int
	Snapshot       biorhythm.Snapshot
	Cycles         []CycleReading
	Combined       float64 // one decimal
	CombinedStatus biorhythm.Status
	CombinedTip    string
	Advice         biorhythm.Advice
}

var tipKinds = map[biorhythm.Cycle]biorhythm.TipKind{
	biorhythm.Physical:     biorhythm.TipPhysical,
	biorhythm.Emotional:    biorhythm.TipEmotional,
	biorhythm.Intellectual: biorhythm.TipIntellectual,
}

// BuildDailyReport computes the report of target for someone born on birth.
func BuildDailyReport(birth, target biorhythm.Date) (DailyReport, error) {
	days, err := biorhythm.DaysSinceBirth(birth, target)
	if err != nil {
		return DailyReport{}, err
	}
	snap := biorhythm.SnapshotAt(days)

	r := DailyReport{
		Date:           target,
		DaysSinceBirth: days,
		Snapshot:       snap,
		Combined:       biorhythm.CombinedDisplay(snap),
		Advice:         biorhythm.AdviseFor(snap),
	}
	for _, c := range biorhythm.Cycles() {
		v := snap.Value(c)
		r.Cycles = append(r.Cycles, CycleReading{
			Cycle:  c,
			Value:  v,
			Day:    biorhythm.CycleDay(days, c.Period()) + 1,
			Period: c.Period(),
			Status: biorhythm.ClassifyStatus(v),
			Tip:    biorhythm.PredictionTip(tipKinds[c], v),
		})
	}
	rounded := biorhythm.CombinedRounded(snap)
	r.CombinedStatus = biorhythm.ClassifyStatus(rounded)
	r.CombinedTip = biorhythm.PredictionTip(biorhythm.TipCombined, rounded)
	return r, nil
}
