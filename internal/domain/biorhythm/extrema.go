// internal/domain/biorhythm/extrema.go
package biorhythm

import (
	"golang.org/x/sync/errgroup"
)

// Sentinels sit just outside the reachable combined range so the first scanned day always
// replaces them.
const (
	highSentinel = -101
	lowSentinel  = 101
)

// DayReading is one scanned day: its date, rounded combined value and components.
type DayReading struct {
	Date     Date
	Combined int
	Snapshot Snapshot
}

// MonthlyExtrema holds the best and worst day of a month by rounded combined value.
type MonthlyExtrema struct {
	Year  int
	Month int
	High  DayReading
	Low   DayReading
}

// ScanMonth evaluates every day of year/month and returns the days with the highest and
// lowest rounded combined value. On ties the earliest day wins.
func ScanMonth(birth Date, year, month int) (MonthlyExtrema, error) {
	last, err := DaysInMonth(year, month)
	if err != nil {
		return MonthlyExtrema{}, err
	}
	days := make([]Date, 0, last)
	for day := 1; day <= last; day++ {
		days = append(days, Date{Year: year, Month: month, Day: day})
	}

	high, low, err := scanDays(days, func(d Date) (Snapshot, error) {
		return ComputeSnapshot(birth, d)
	})
	if err != nil {
		return MonthlyExtrema{}, err
	}
	return MonthlyExtrema{Year: year, Month: month, High: high, Low: low}, nil
}

// scanDays walks days in order keeping the running max and min. Comparisons are strict so
// an equal value found later never displaces an earlier one.
func scanDays(days []Date, eval func(Date) (Snapshot, error)) (DayReading, DayReading, error) {
	high := DayReading{Combined: highSentinel}
	low := DayReading{Combined: lowSentinel}

	for _, d := range days {
		snap, err := eval(d)
		if err != nil {
			return DayReading{}, DayReading{}, err
		}
		reading := DayReading{Date: d, Combined: CombinedRounded(snap), Snapshot: snap}
		if reading.Combined > high.Combined {
			high = reading
		}
		if reading.Combined < low.Combined {
			low = reading
		}
	}
	return high, low, nil
}

// ScanYear runs ScanMonth for all twelve months of year. Months are scanned concurrently;
// the result is ordered January to December.
func ScanYear(birth Date, year int) ([]MonthlyExtrema, error) {
	if err := birth.Validate(); err != nil {
		return nil, err
	}

	out := make([]MonthlyExtrema, 12)
	var g errgroup.Group
	for m := 1; m <= 12; m++ {
		m := m
		g.Go(func() error {
			ext, err := ScanMonth(birth, year, m)
			if err != nil {
				return err
			}
			out[m-1] = ext
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
