package biorhythm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredictionTip(t *testing.T) {
	assert.Equal(t, predictionTips[TipPhysical].highPeak, PredictionTip(TipPhysical, 50))
	assert.Equal(t, predictionTips[TipPhysical].positive, PredictionTip(TipPhysical, 0))
	assert.Equal(t, predictionTips[TipEmotional].negative, PredictionTip(TipEmotional, -50))
	assert.Equal(t, predictionTips[TipIntellectual].lowPeak, PredictionTip(TipIntellectual, -51))
	assert.Equal(t, predictionTips[TipCombined].highPeak, PredictionTip(TipCombined, 100))
	assert.Empty(t, PredictionTip(TipKind("maya"), 10))
}

func TestStateOf(t *testing.T) {
	tests := map[int]State{
		100: StateExcellent,
		71:  StateExcellent,
		70:  StateGood,
		31:  StateGood,
		30:  StateNormal,
		-29: StateNormal,
		-30: StatePoor,
		-69: StatePoor,
		-70: StateCritical,
	}
	for v, want := range tests {
		assert.Equal(t, want, StateOf(v), "value %d", v)
	}
}

func TestAdviseFor(t *testing.T) {
	t.Run("strong day", func(t *testing.T) {
		a := AdviseFor(Snapshot{Physical: 90, Emotional: 80, Intellectual: 75})
		assert.Contains(t, a.Exercise, "High-intensity")
		assert.Contains(t, a.Work, "complex problems")
		assert.Contains(t, a.Social, "new people")
		assert.Contains(t, a.Rest, "normal routine")
		assert.False(t, strings.Contains(a.Diet, "Bananas"))
	})

	t.Run("low day", func(t *testing.T) {
		a := AdviseFor(Snapshot{Physical: -80, Emotional: -40, Intellectual: -90})
		assert.Contains(t, a.Exercise, "Rest first")
		assert.Contains(t, a.Diet, "light, nourishing")
		assert.Contains(t, a.Diet, "Bananas")
		assert.Contains(t, a.Rest, "plenty of sleep")
		assert.Contains(t, a.Work, "postpone")
	})
}
