// internal/domain/biorhythm/advice.go
package biorhythm

// TipKind selects which prediction table to read. It covers the three cycles plus the
// combined value.
type TipKind string

const (
	TipPhysical     TipKind = "physical"
	TipEmotional    TipKind = "emotional"
	TipIntellectual TipKind = "intellectual"
	TipCombined     TipKind = "combined"
)

type tipSet struct {
	highPeak, positive, negative, lowPeak string
}

var predictionTips = map[TipKind]tipSet{
	TipPhysical: {
		highPeak: "Physical energy will peak: a good time for sport and demanding work.",
		positive: "Physical condition is improving: you can step up your exercise a little.",
		negative: "Physical energy may dip: pace your activities sensibly.",
		lowPeak:  "Physical energy will bottom out: plan fewer strenuous activities in advance.",
	},
	TipEmotional: {
		highPeak: "Mood will peak: a good time for social events and teamwork.",
		positive: "Mood is settling: getting along with people should be easy.",
		negative: "Mood may fluctuate: keep an eye on your reactions.",
		lowPeak:  "Mood will bottom out: avoid important social occasions and conflict.",
	},
	TipIntellectual: {
		highPeak: "Thinking will be especially sharp: schedule creative work and study.",
		positive: "Mental state is improving: good for tasks that need thought.",
		negative: "Mental efficiency may drop: stick to routine tasks.",
		lowPeak:  "Thinking will be sluggish: avoid complex decisions and hard problems.",
	},
	TipCombined: {
		highPeak: "Overall condition will peak: schedule important events and key decisions.",
		positive: "Overall condition is improving: plan your activities as usual.",
		negative: "Overall condition may dip: adjust the intensity of your plans.",
		lowPeak:  "Overall condition will bottom out: avoid big decisions and heavy exertion.",
	},
}

// PredictionTip returns the forecast sentence for value of the given kind:
// >=50 high peak, >=0 positive, >=-50 negative, otherwise low peak.
func PredictionTip(kind TipKind, value int) string {
	set, ok := predictionTips[kind]
	if !ok {
		return ""
	}
	switch {
	case value >= 50:
		return set.highPeak
	case value >= 0:
		return set.positive
	case value >= -50:
		return set.negative
	default:
		return set.lowPeak
	}
}

// State is the coarse five-level condition used to pick life advice.
type State string

const (
	StateExcellent State = "excellent"
	StateGood      State = "good"
	StateNormal    State = "normal"
	StatePoor      State = "poor"
	StateCritical  State = "critical"
)

// StateOf buckets a rhythm value in [-100, 100].
func StateOf(v int) State {
	switch {
	case v > 70:
		return StateExcellent
	case v > 30:
		return StateGood
	case v > -30:
		return StateNormal
	case v > -70:
		return StatePoor
	default:
		return StateCritical
	}
}

func (s State) low() bool {
	return s == StatePoor || s == StateCritical
}

// Advice is a set of everyday suggestions derived from a snapshot.
type Advice struct {
	Exercise string
	Diet     string
	Work     string
	Rest     string
	Social   string
}

// AdviseFor derives exercise, diet, work, rest and social suggestions from s.
func AdviseFor(s Snapshot) Advice {
	physical := StateOf(s.Physical)
	emotional := StateOf(s.Emotional)
	intellectual := StateOf(s.Intellectual)

	var a Advice

	switch physical {
	case StateExcellent:
		a.Exercise = "High-intensity training is fine today: running, swimming, strength work."
	case StateGood:
		a.Exercise = "Moderate exercise suits you: brisk walking, yoga, aerobics."
	case StateNormal:
		a.Exercise = "Keep it light: a walk and some stretching."
	default:
		a.Exercise = "Rest first and skip strenuous exercise."
	}

	if physical.low() {
		a.Diet = "Choose light, nourishing food such as porridge, soup and fruit."
	} else {
		a.Diet = "Keep a balanced diet with enough protein and vitamins."
	}
	if emotional.low() {
		a.Diet += " Bananas and nuts can help steady your mood."
	}

	switch intellectual {
	case StateExcellent:
		a.Work = "Take on complex problems and creative work."
	case StateGood:
		a.Work = "A good day for important meetings and decisions."
	case StateNormal:
		a.Work = "Routine work will go smoothly."
	default:
		a.Work = "Stick to simple, repetitive tasks and postpone important decisions."
	}

	if physical.low() || emotional.low() {
		a.Rest = "Get plenty of sleep, consider a short nap and avoid staying up late."
	} else {
		a.Rest = "Keep your normal routine and balance work with rest."
	}

	switch emotional {
	case StateExcellent:
		a.Social = "Great for social events and meeting new people."
	case StateGood:
		a.Social = "Fine for small gatherings with friends."
	case StateNormal:
		a.Social = "Keep socialising at a normal pace."
	default:
		a.Social = "Spend time alone or with close friends and skip large crowds."
	}

	return a
}
