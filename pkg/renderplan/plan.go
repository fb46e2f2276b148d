// Package renderplan assembles the full output of the share-card
// pipeline: the document, the chosen canvas, and the render-ready pages.
package renderplan

import (
	"github.com/pojntfx/sharecard/api/layout"
	"github.com/pojntfx/sharecard/api/sharecard"
)

// Plan is everything a renderer needs to draw the share image(s)
type Plan struct {
	// Document is the composed share document
	Document *sharecard.Document `json:"document" yaml:"document"`

	// Preset is the chosen canvas preset name
	Preset string `json:"preset" yaml:"preset"`

	// Canvas dimensions in pixels
	CanvasWidth  float64 `json:"canvasWidth" yaml:"canvasWidth"`
	CanvasHeight float64 `json:"canvasHeight" yaml:"canvasHeight"`

	// Insets are the safe-zone margins
	Insets layout.SafeInsets `json:"insets" yaml:"insets"`

	// CardWidth and CardHeight are the measured card dimensions
	CardWidth  float64 `json:"cardWidth" yaml:"cardWidth"`
	CardHeight float64 `json:"cardHeight" yaml:"cardHeight"`

	// Estimated is true when the height came from the fallback estimate
	Estimated bool `json:"estimated" yaml:"estimated"`

	// ShouldPaginate is true when the card overflowed onto extra pages
	ShouldPaginate bool `json:"shouldPaginate" yaml:"shouldPaginate"`

	// Pages are the render-ready page slices
	Pages []layout.Page `json:"pages" yaml:"pages"`
}

// Build runs the layout pipeline for a document at a pixel short side.
// renderer may be nil; heights then come from the deterministic
// estimate.
func Build(doc *sharecard.Document, shortSide float64, renderer layout.HeightMeasurer) *Plan {
	picker := layout.NewAutoPresetPicker(layout.NewCardMeasurer(shortSide, renderer))
	selection := picker.SelectPreset(doc)

	pages := layout.NewPaginator(shortSide).Paginate(doc, selection)

	width, height := selection.Preset.CanvasSize(shortSide)

	return &Plan{
		Document:       doc,
		Preset:         selection.Preset.String(),
		CanvasWidth:    width,
		CanvasHeight:   height,
		Insets:         layout.SafeInsetsFor(shortSide),
		CardWidth:      selection.Measurement.CardWidth,
		CardHeight:     selection.Measurement.CardHeight,
		Estimated:      selection.Measurement.Estimated,
		ShouldPaginate: selection.ShouldPaginate,
		Pages:          pages,
	}
}
