package layout

const (
	// insetFraction is the base safe-zone margin as a fraction of the
	// short side
	insetFraction = 0.08

	// minBaseInset is the smallest base margin in pixels
	minBaseInset = 64

	// Messaging apps crop image sides more aggressively than top and
	// bottom, so horizontal margins get a wider multiplier
	horizontalInsetScale = 1.15
	verticalInsetScale   = 0.90
)

// SafeInsets are the per-edge safe-zone margins of a canvas
type SafeInsets struct {
	Horizontal float64 `json:"horizontal" yaml:"horizontal"`
	Vertical   float64 `json:"vertical" yaml:"vertical"`
}

// SafeInsetsFor computes the safe-zone margins for a short side
func SafeInsetsFor(shortSide float64) SafeInsets {
	base := insetFraction * shortSide
	if base < minBaseInset {
		base = minBaseInset
	}

	return SafeInsets{
		Horizontal: base * horizontalInsetScale,
		Vertical:   base * verticalInsetScale,
	}
}

// MaxCardWidth returns the widest a card can be inside the preset's
// safe zone
func MaxCardWidth(preset CanvasPreset, shortSide float64) float64 {
	width, _ := preset.CanvasSize(shortSide)
	insets := SafeInsetsFor(shortSide)
	return width - 2*insets.Horizontal
}

// MaxCardHeight returns the tallest a card can be inside the preset's
// safe zone
func MaxCardHeight(preset CanvasPreset, shortSide float64) float64 {
	_, height := preset.CanvasSize(shortSide)
	insets := SafeInsetsFor(shortSide)
	return height - 2*insets.Vertical
}
