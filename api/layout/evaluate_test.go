package layout

import (
	"math"
	"testing"
)

func TestEvaluateValidity(t *testing.T) {
	evaluator := Evaluator{}

	fits := evaluator.Evaluate(Measurement{Preset: PresetSquare1x1, CardHeight: 800, AvailableHeight: 1000}, 2)
	if !fits.Valid {
		t.Error("card below available height must be valid")
	}
	if got, want := fits.WasteRatio, 0.2; math.Abs(got-want) > 1e-9 {
		t.Errorf("WasteRatio = %v, want %v", got, want)
	}

	overflow := evaluator.Evaluate(Measurement{Preset: PresetSquare1x1, CardHeight: 1200, AvailableHeight: 1000}, 2)
	if overflow.Valid {
		t.Error("card above available height must be invalid")
	}
	if overflow.WasteRatio != 0 {
		t.Errorf("invalid WasteRatio = %v, want 0", overflow.WasteRatio)
	}
	if !math.IsInf(overflow.Score, 1) {
		t.Errorf("invalid Score = %v, want +Inf", overflow.Score)
	}
}

func TestEvaluateBiases(t *testing.T) {
	evaluator := Evaluator{}

	m43 := Measurement{Preset: PresetLandscape4x3, CardHeight: 800, AvailableHeight: 1000}
	m916 := Measurement{Preset: PresetPortrait9x16, CardHeight: 800, AvailableHeight: 1000}

	t.Run("single post favors landscape", func(t *testing.T) {
		score43 := evaluator.Evaluate(m43, 1).Score
		score916 := evaluator.Evaluate(m916, 1).Score
		if score43 >= score916 {
			t.Errorf("4:3 score %v should beat 9:16 score %v for a single post", score43, score916)
		}
	})

	t.Run("long thread favors tall portrait", func(t *testing.T) {
		score43 := evaluator.Evaluate(m43, 3).Score
		score916 := evaluator.Evaluate(m916, 3).Score
		if score916 >= score43 {
			t.Errorf("9:16 score %v should beat 4:3 score %v for a long thread", score916, score43)
		}
	})

	t.Run("biases inactive between thresholds", func(t *testing.T) {
		score43 := evaluator.Evaluate(m43, 2).Score
		score916 := evaluator.Evaluate(m916, 2).Score
		if score43 != score916 {
			t.Errorf("scores should tie at thread length 2: %v vs %v", score43, score916)
		}
	})
}

func TestFindBest(t *testing.T) {
	evaluations := []Evaluation{
		{Preset: PresetLandscape4x3, Valid: false, Score: math.Inf(1)},
		{Preset: PresetSquare1x1, Valid: true, Score: 0.30},
		{Preset: PresetPortrait4x5, Valid: true, Score: 0.12},
		{Preset: PresetPortrait9x16, Valid: true, Score: 0.45},
	}

	best := FindBest(evaluations)
	if best == nil {
		t.Fatal("expected a best evaluation")
	}
	if best.Preset != PresetPortrait4x5 {
		t.Errorf("best = %s, want 4:5 (lowest score wins)", best.Preset)
	}
}

func TestFindBestNoneValid(t *testing.T) {
	evaluations := []Evaluation{
		{Preset: PresetLandscape4x3, Score: math.Inf(1)},
		{Preset: PresetPortrait9x16, Score: math.Inf(1)},
	}

	if best := FindBest(evaluations); best != nil {
		t.Errorf("expected nil when nothing fits, got %s", best.Preset)
	}
}
