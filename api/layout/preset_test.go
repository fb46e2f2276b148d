package layout

import "testing"

func TestCanvasSizeShortSide(t *testing.T) {
	tests := []struct {
		preset     CanvasPreset
		wantWidth  float64
		wantHeight float64
	}{
		{PresetLandscape4x3, 1440, 1080},
		{PresetSquare1x1, 1080, 1080},
		{PresetPortrait4x5, 1080, 1350},
		{PresetPortrait9x16, 1080, 1920},
	}

	for _, tt := range tests {
		t.Run(tt.preset.String(), func(t *testing.T) {
			width, height := tt.preset.CanvasSize(1080)
			if width != tt.wantWidth || height != tt.wantHeight {
				t.Errorf("CanvasSize(1080) = (%v, %v), want (%v, %v)",
					width, height, tt.wantWidth, tt.wantHeight)
			}

			short := width
			if height < width {
				short = height
			}
			if short != 1080 {
				t.Errorf("short side = %v, want 1080", short)
			}
		})
	}
}

func TestPresetHeightMonotonicity(t *testing.T) {
	presets := AllPresets()

	previous := 0.0
	for _, preset := range presets {
		_, height := preset.CanvasSize(1080)
		if height < previous {
			t.Errorf("canvas height decreased at %s: %v < %v", preset, height, previous)
		}
		previous = height
	}
}

func TestAspectRatio(t *testing.T) {
	for _, preset := range AllPresets() {
		width, height := preset.CanvasSize(1080)
		want := width / height
		if got := preset.AspectRatio(); got != want {
			t.Errorf("%s AspectRatio = %v, want %v", preset, got, want)
		}
	}
}

func TestSafeInsetsFor(t *testing.T) {
	t.Run("proportional above floor", func(t *testing.T) {
		insets := SafeInsetsFor(1080)

		base := 0.08 * 1080
		if got, want := insets.Horizontal, base*1.15; got != want {
			t.Errorf("Horizontal = %v, want %v", got, want)
		}
		if got, want := insets.Vertical, base*0.90; got != want {
			t.Errorf("Vertical = %v, want %v", got, want)
		}
	})

	t.Run("floored for small canvases", func(t *testing.T) {
		insets := SafeInsetsFor(400)

		// 8% of 400 is 32, below the 64px floor
		if got, want := insets.Horizontal, 64*1.15; got != want {
			t.Errorf("Horizontal = %v, want %v", got, want)
		}
		if got, want := insets.Vertical, 64*0.90; got != want {
			t.Errorf("Vertical = %v, want %v", got, want)
		}
	})

	t.Run("horizontal wider than vertical", func(t *testing.T) {
		insets := SafeInsetsFor(1080)
		if insets.Horizontal <= insets.Vertical {
			t.Error("horizontal inset must exceed vertical inset")
		}
	})
}

func TestMaxCardDimensions(t *testing.T) {
	for _, preset := range AllPresets() {
		width, height := preset.CanvasSize(1080)
		insets := SafeInsetsFor(1080)

		if got, want := MaxCardWidth(preset, 1080), width-2*insets.Horizontal; got != want {
			t.Errorf("%s MaxCardWidth = %v, want %v", preset, got, want)
		}
		if got, want := MaxCardHeight(preset, 1080), height-2*insets.Vertical; got != want {
			t.Errorf("%s MaxCardHeight = %v, want %v", preset, got, want)
		}
	}
}
