package organclock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoHourDay() []Window {
	var ws []Window
	for start := 1; start < 25; start += 2 {
		ws = append(ws, Window{Start: start % 24, End: (start + 2) % 24, Organ: "organ"})
	}
	return ws
}

func TestNewScheduleAndAt(t *testing.T) {
	s, err := NewSchedule(twoHourDay())
	require.NoError(t, err)
	require.Len(t, s.Windows(), 12)

	w, ok := s.At(0)
	require.True(t, ok)
	assert.Equal(t, 23, w.Start)
	assert.Equal(t, 1, w.End)

	w, ok = s.At(23)
	require.True(t, ok)
	assert.Equal(t, 23, w.Start)

	w, ok = s.At(7)
	require.True(t, ok)
	assert.Equal(t, "07:00-09:00", w.Range())
}

func TestNewScheduleRejectsGapsAndOverlaps(t *testing.T) {
	gap := twoHourDay()[1:]
	_, err := NewSchedule(gap)
	assert.True(t, errors.Is(err, ErrIncompleteSchedule))

	overlap := append(twoHourDay(), Window{Start: 5, End: 6, Organ: "extra"})
	_, err = NewSchedule(overlap)
	assert.True(t, errors.Is(err, ErrIncompleteSchedule))

	_, err = NewSchedule([]Window{{Start: 3, End: 3}})
	assert.True(t, errors.Is(err, ErrIncompleteSchedule))
}

func TestWindowContains(t *testing.T) {
	w := Window{Start: 23, End: 1}
	assert.True(t, w.Contains(23))
	assert.True(t, w.Contains(0))
	assert.False(t, w.Contains(1))
	assert.False(t, w.Contains(22))
}
