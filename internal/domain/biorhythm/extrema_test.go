package biorhythm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanMonth(t *testing.T) {
	birth := MustDate(1991, 1, 1)

	ext, err := ScanMonth(birth, 2024, 1)
	require.NoError(t, err)

	assert.Equal(t, 2024, ext.Year)
	assert.Equal(t, 1, ext.Month)
	assert.GreaterOrEqual(t, ext.High.Combined, ext.Low.Combined)
	for _, r := range []DayReading{ext.High, ext.Low} {
		assert.Regexp(t, `^2024-01-(0[1-9]|[12][0-9]|3[01])$`, r.Date.String())
		assert.Equal(t, CombinedRounded(r.Snapshot), r.Combined)
	}

	// Jan 28 and Jan 29 both round to 59; the earlier day must win.
	assert.Equal(t, MustDate(2024, 1, 28), ext.High.Date)
	assert.Equal(t, 59, ext.High.Combined)
	assert.Equal(t, Snapshot{Physical: 98, Emotional: 43, Intellectual: 37}, ext.High.Snapshot)

	assert.Equal(t, MustDate(2024, 1, 15), ext.Low.Date)
	assert.Equal(t, -64, ext.Low.Combined)
}

func TestScanMonthMatchesBruteForce(t *testing.T) {
	birth := MustDate(1985, 7, 14)
	for month := 1; month <= 12; month++ {
		ext, err := ScanMonth(birth, 2025, month)
		require.NoError(t, err)

		last, err := DaysInMonth(2025, month)
		require.NoError(t, err)
		maxV, minV := -1000, 1000
		for day := 1; day <= last; day++ {
			snap, err := ComputeSnapshot(birth, MustDate(2025, month, day))
			require.NoError(t, err)
			v := CombinedRounded(snap)
			if v > maxV {
				maxV = v
			}
			if v < minV {
				minV = v
			}
		}
		assert.Equal(t, maxV, ext.High.Combined, "month %d", month)
		assert.Equal(t, minV, ext.Low.Combined, "month %d", month)
	}
}

func TestScanMonthIsDeterministic(t *testing.T) {
	birth := MustDate(1991, 1, 1)
	first, err := ScanMonth(birth, 2024, 1)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := ScanMonth(birth, 2024, 1)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestScanMonthInvalidMonth(t *testing.T) {
	birth := MustDate(1991, 1, 1)
	for _, m := range []int{0, 13, -1} {
		_, err := ScanMonth(birth, 2024, m)
		var invalid *InvalidDateError
		require.True(t, errors.As(err, &invalid), "month %d", m)
		assert.Equal(t, "month", invalid.Field)
	}
}

func TestScanMonthInvalidBirth(t *testing.T) {
	_, err := ScanMonth(Date{Year: 1991, Month: 2, Day: 31}, 2024, 1)
	var invalid *InvalidDateError
	assert.True(t, errors.As(err, &invalid))
}

func TestScanDaysTieBreak(t *testing.T) {
	days := []Date{MustDate(2024, 5, 1), MustDate(2024, 5, 2), MustDate(2024, 5, 3), MustDate(2024, 5, 4)}
	values := map[Date]Snapshot{
		days[0]: {Physical: 50, Emotional: 50, Intellectual: 50},
		days[1]: {Physical: -40, Emotional: -40, Intellectual: -40},
		days[2]: {Physical: 50, Emotional: 50, Intellectual: 50},
		days[3]: {Physical: -40, Emotional: -40, Intellectual: -40},
	}

	high, low, err := scanDays(days, func(d Date) (Snapshot, error) { return values[d], nil })
	require.NoError(t, err)
	assert.Equal(t, days[0], high.Date)
	assert.Equal(t, 50, high.Combined)
	assert.Equal(t, days[1], low.Date)
	assert.Equal(t, -40, low.Combined)
}

func TestScanDaysFlatMonth(t *testing.T) {
	days := []Date{MustDate(2024, 6, 1), MustDate(2024, 6, 2)}
	high, low, err := scanDays(days, func(Date) (Snapshot, error) { return Snapshot{}, nil })
	require.NoError(t, err)
	// With a constant value the first day is both the high and the low point.
	assert.Equal(t, days[0], high.Date)
	assert.Equal(t, days[0], low.Date)
}

func TestScanYear(t *testing.T) {
	birth := MustDate(1991, 1, 1)
	year, err := ScanYear(birth, 2024)
	require.NoError(t, err)
	require.Len(t, year, 12)

	for i, ext := range year {
		assert.Equal(t, i+1, ext.Month)
		single, err := ScanMonth(birth, 2024, i+1)
		require.NoError(t, err)
		assert.Equal(t, single, ext)
	}

	_, err = ScanYear(Date{}, 2024)
	assert.Error(t, err)
}
