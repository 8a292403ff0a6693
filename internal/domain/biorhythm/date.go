// internal/domain/biorhythm/date.go
package biorhythm

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// InvalidDateError is returned whenever a year/month/day triple does not name a real
// calendar day. Nothing in this package clamps or guesses a nearby date.
type InvalidDateError struct {
	Field  string // "month", "day" or "date"
	Value  string
	Reason string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Date is a calendar day with no time of day. All arithmetic on it happens at UTC midnight.
type Date struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31
}

// NewDate validates the triple and returns the corresponding Date.
func NewDate(year, month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// MustDate is NewDate for literals known to be valid. It panics otherwise.
func MustDate(year, month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return Date{}, &InvalidDateError{Field: "date", Value: s, Reason: "expected YYYY-MM-DD"}
	}
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

// FromTime returns the calendar day t falls on in t's own location.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Validate reports whether d names a real calendar day.
func (d Date) Validate() error {
	if d.Month < 1 || d.Month > 12 {
		return &InvalidDateError{Field: "month", Value: fmt.Sprint(d.Month), Reason: "must be between 1 and 12"}
	}
	last, _ := DaysInMonth(d.Year, d.Month)
	if d.Day < 1 || d.Day > last {
		return &InvalidDateError{
			Field:  "day",
			Value:  fmt.Sprint(d.Day),
			Reason: fmt.Sprintf("must be between 1 and %d for %04d-%02d", last, d.Year, d.Month),
		}
	}
	return nil
}

// UTC returns midnight UTC of d.
func (d Date) UTC() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns d shifted by n days (n may be negative).
func (d Date) AddDays(n int) Date {
	return FromTime(d.UTC().AddDate(0, 0, n))
}

func (d Date) Before(other Date) bool {
	return d.UTC().Before(other.UTC())
}

func (d Date) Equal(other Date) bool {
	return d == other
}

// IsZero reports whether d is the zero value (which is not a valid date).
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DaysInMonth returns the number of days in the given month, using day 0 of the following
// month in UTC to land on the last day of this one.
func DaysInMonth(year, month int) (int, error) {
	if month < 1 || month > 12 {
		return 0, &InvalidDateError{Field: "month", Value: fmt.Sprint(month), Reason: "must be between 1 and 12"}
	}
	return time.Date(year, time.Month(month+1), 0, 0, 0, 0, 0, time.UTC).Day(), nil
}

// DaysSinceBirth returns the signed number of whole days from birth to target.
// Negative when target precedes birth.
func DaysSinceBirth(birth, target Date) (int, error) {
	if err := birth.Validate(); err != nil {
		return 0, err
	}
	if err := target.Validate(); err != nil {
		return 0, err
	}
	// Both ends sit on UTC midnight, so the difference is an exact multiple of a day.
	diff := target.UTC().Unix() - birth.UTC().Unix()
	return int(floorDiv(diff, secondsPerDay)), nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
