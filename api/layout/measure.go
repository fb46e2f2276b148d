package layout

import (
	"math"
	"unicode/utf8"

	"github.com/pojntfx/sharecard/api/sharecard"
)

// Height estimate terms. The estimate does not have to match the real
// renderer, only to stay stable across runs for the same document.
const (
	estimateBasePadding   = 48.0
	estimateAuthorRow     = 64.0
	estimateLineHeight    = 22.0
	estimateCharsPerLine  = 50
	estimateStatsRow      = 32.0
	estimateMediaBlock    = 180.0
	estimateLinkPreview   = 120.0
	estimateQuoteBlock    = 100.0
	estimateCommentHeight = 80.0
)

// HeightMeasurer is the rendering collaborator that lays a document out
// at a width and reports the resulting pixel height. Implementations may
// be UI-thread bound; returning ok=false (or being absent entirely)
// makes the measurer fall back to a deterministic estimate.
type HeightMeasurer interface {
	MeasureHeight(doc *sharecard.Document, width float64) (height float64, ok bool)
}

// Measurement is the result of measuring one document against one preset
type Measurement struct {
	Preset CanvasPreset

	// CardWidth is the rendering width inside the preset's safe zone
	CardWidth float64

	// CardHeight is the measured or estimated laid-out height
	CardHeight float64

	// AvailableHeight is the preset's safe content height
	AvailableHeight float64

	// Estimated is true when the fallback estimate was used
	Estimated bool
}

// CardMeasurer measures a document's card height per preset
type CardMeasurer struct {
	shortSide float64
	renderer  HeightMeasurer
}

// NewCardMeasurer creates a measurer for a pixel short side. renderer
// may be nil; every measurement then uses the estimate.
func NewCardMeasurer(shortSide float64, renderer HeightMeasurer) *CardMeasurer {
	return &CardMeasurer{
		shortSide: shortSide,
		renderer:  renderer,
	}
}

// Measure computes the card measurement for one preset
func (m *CardMeasurer) Measure(doc *sharecard.Document, preset CanvasPreset) Measurement {
	width := MaxCardWidth(preset, m.shortSide)

	measurement := Measurement{
		Preset:          preset,
		CardWidth:       width,
		AvailableHeight: MaxCardHeight(preset, m.shortSide),
	}

	if m.renderer != nil {
		if height, ok := m.renderer.MeasureHeight(doc, width); ok {
			measurement.CardHeight = height
			return measurement
		}
	}

	measurement.CardHeight = EstimateCardHeight(doc)
	measurement.Estimated = true
	return measurement
}

// MeasureAll measures the document against every preset, in preset order
func (m *CardMeasurer) MeasureAll(doc *sharecard.Document) []Measurement {
	presets := AllPresets()
	measurements := make([]Measurement, 0, len(presets))
	for _, preset := range presets {
		measurements = append(measurements, m.Measure(doc, preset))
	}
	return measurements
}

// EstimateCardHeight is the deterministic fallback height estimate:
// header padding and author row, a line estimate for the content, fixed
// blocks for stats, media, link previews and quotes, and a fixed height
// per comment row.
func EstimateCardHeight(doc *sharecard.Document) float64 {
	if doc == nil {
		return estimateBasePadding
	}

	height := estimateBasePadding + estimateAuthorRow
	height += contentLines(doc.Header.Content) * estimateLineHeight

	if doc.IncludePostDetails {
		height += estimateStatsRow
	}
	if doc.Header.MediaCount > 0 {
		height += estimateMediaBlock
	}
	if doc.Header.HasLinkPreview {
		height += estimateLinkPreview
	}
	if doc.Header.HasQuote {
		height += estimateQuoteBlock
	}

	height += float64(doc.CommentCount()) * estimateCommentHeight

	return height
}

// contentLines estimates roughly one line per 50 characters, minimum one
func contentLines(content string) float64 {
	runes := utf8.RuneCountInString(content)
	if runes == 0 {
		return 0
	}
	return math.Ceil(float64(runes) / float64(estimateCharsPerLine))
}
