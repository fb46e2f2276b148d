package layout

import "math"

// Preset score biases. Scores are costs: lower wins.
const (
	// landscapeBias favors 4:3 for single short posts
	landscapeBias = -0.02
	singlePostMax = 1

	// portraitBias favors 9:16 for long threads
	portraitBias    = -0.03
	longThreadCount = 3
)

// Evaluation scores one measurement. Score is a cost; lower always wins.
type Evaluation struct {
	Preset CanvasPreset

	// Valid is true when the card fits the preset's safe height
	Valid bool

	// WasteRatio is the fraction of safe height left empty when valid
	WasteRatio float64

	// Score is WasteRatio plus aspect biases, +Inf for invalid presets
	Score float64
}

// Evaluator scores measurements against thread length
type Evaluator struct{}

// Evaluate scores a single measurement
func (Evaluator) Evaluate(m Measurement, threadLength int) Evaluation {
	eval := Evaluation{
		Preset: m.Preset,
		Valid:  m.AvailableHeight > 0 && m.CardHeight <= m.AvailableHeight,
	}

	if !eval.Valid {
		eval.Score = math.Inf(1)
		return eval
	}

	eval.WasteRatio = (m.AvailableHeight - m.CardHeight) / m.AvailableHeight
	eval.Score = eval.WasteRatio

	switch m.Preset {
	case PresetLandscape4x3:
		if threadLength <= singlePostMax {
			eval.Score += landscapeBias
		}
	case PresetPortrait9x16:
		if threadLength >= longThreadCount {
			eval.Score += portraitBias
		}
	}

	return eval
}

// EvaluateAll scores every measurement, preserving order
func (e Evaluator) EvaluateAll(measurements []Measurement, threadLength int) []Evaluation {
	evaluations := make([]Evaluation, 0, len(measurements))
	for _, m := range measurements {
		evaluations = append(evaluations, e.Evaluate(m, threadLength))
	}
	return evaluations
}

// FindBest returns the valid evaluation with the lowest score, or nil
// when no preset fits
func FindBest(evaluations []Evaluation) *Evaluation {
	var best *Evaluation
	for i := range evaluations {
		eval := &evaluations[i]
		if !eval.Valid {
			continue
		}
		if best == nil || eval.Score < best.Score {
			best = eval
		}
	}
	return best
}
