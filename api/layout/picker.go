package layout

import "github.com/pojntfx/sharecard/api/sharecard"

// paginationOverflowFactor is how far past the tallest preset's safe
// height a card may run before pagination kicks in. The threshold is
// specific to 9:16: shorter presets fall back to it instead.
const paginationOverflowFactor = 1.75

// Selection is the outcome of automatic preset picking
type Selection struct {
	// Preset is the chosen canvas
	Preset CanvasPreset

	// Measurement is the card measurement for the chosen preset
	Measurement Measurement

	// Evaluation is the score for the chosen preset; invalid when the
	// picker fell back to the tallest preset
	Evaluation Evaluation

	// ShouldPaginate is set when even the tallest preset cannot hold
	// the card within the overflow factor
	ShouldPaginate bool
}

// AutoPresetPicker measures and scores a document across all presets and
// picks the best-fitting canvas
type AutoPresetPicker struct {
	measurer  *CardMeasurer
	evaluator Evaluator
}

// NewAutoPresetPicker creates a picker on top of a card measurer
func NewAutoPresetPicker(measurer *CardMeasurer) *AutoPresetPicker {
	return &AutoPresetPicker{measurer: measurer}
}

// SelectPreset picks the best-scoring valid preset for a document, or
// falls back to the tallest preset and flags pagination when nothing
// fits. It never fails: some selection is always returned.
func (p *AutoPresetPicker) SelectPreset(doc *sharecard.Document) Selection {
	threadLength := p.threadLength(doc)

	measurements := p.measurer.MeasureAll(doc)
	evaluations := p.evaluator.EvaluateAll(measurements, threadLength)

	if best := FindBest(evaluations); best != nil {
		return Selection{
			Preset:      best.Preset,
			Measurement: measurementFor(measurements, best.Preset),
			Evaluation:  *best,
		}
	}

	// Nothing fits: fall back to the tallest preset
	tallest := measurementFor(measurements, PresetPortrait9x16)

	return Selection{
		Preset:         PresetPortrait9x16,
		Measurement:    tallest,
		Evaluation:     evaluationFor(evaluations, PresetPortrait9x16),
		ShouldPaginate: tallest.CardHeight > paginationOverflowFactor*tallest.AvailableHeight,
	}
}

// threadLength counts the post header plus every comment row
func (p *AutoPresetPicker) threadLength(doc *sharecard.Document) int {
	if doc == nil {
		return 0
	}
	return 1 + doc.CommentCount()
}

func measurementFor(measurements []Measurement, preset CanvasPreset) Measurement {
	for _, m := range measurements {
		if m.Preset == preset {
			return m
		}
	}
	return Measurement{Preset: preset}
}

func evaluationFor(evaluations []Evaluation, preset CanvasPreset) Evaluation {
	for _, e := range evaluations {
		if e.Preset == preset {
			return e
		}
	}
	return Evaluation{Preset: preset}
}
