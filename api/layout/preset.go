package layout

// CanvasPreset is one of the four fixed share-canvas aspect ratios.
// The set is closed; sizing and scoring switch over it exhaustively.
type CanvasPreset int

const (
	// PresetLandscape4x3 is the landscape canvas, best for single posts
	PresetLandscape4x3 CanvasPreset = iota

	// PresetSquare1x1 is the square canvas
	PresetSquare1x1

	// PresetPortrait4x5 is the portrait canvas used by photo feeds
	PresetPortrait4x5

	// PresetPortrait9x16 is the tall story-format canvas
	PresetPortrait9x16
)

// AllPresets returns the presets ordered by canvas height at a fixed
// short side, shortest first
func AllPresets() []CanvasPreset {
	return []CanvasPreset{
		PresetLandscape4x3,
		PresetSquare1x1,
		PresetPortrait4x5,
		PresetPortrait9x16,
	}
}

// String returns a human-readable name for the preset
func (p CanvasPreset) String() string {
	switch p {
	case PresetLandscape4x3:
		return "4:3"
	case PresetSquare1x1:
		return "1:1"
	case PresetPortrait4x5:
		return "4:5"
	case PresetPortrait9x16:
		return "9:16"
	default:
		return "unknown"
	}
}

// AspectRatio returns width divided by height
func (p CanvasPreset) AspectRatio() float64 {
	switch p {
	case PresetLandscape4x3:
		return 4.0 / 3.0
	case PresetSquare1x1:
		return 1.0
	case PresetPortrait4x5:
		return 4.0 / 5.0
	case PresetPortrait9x16:
		return 9.0 / 16.0
	default:
		return 1.0
	}
}

// CanvasSize returns the pixel dimensions for a given short side. The
// short side is the smaller of the two: the height for landscape, the
// width for square and portrait.
func (p CanvasPreset) CanvasSize(shortSide float64) (width, height float64) {
	switch p {
	case PresetLandscape4x3:
		return shortSide * 4.0 / 3.0, shortSide
	case PresetSquare1x1:
		return shortSide, shortSide
	case PresetPortrait4x5:
		return shortSide, shortSide * 5.0 / 4.0
	case PresetPortrait9x16:
		return shortSide, shortSide * 16.0 / 9.0
	default:
		return shortSide, shortSide
	}
}
