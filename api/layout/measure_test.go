package layout

import (
	"strings"
	"testing"

	"github.com/pojntfx/sharecard/api/sharecard"
)

// fixedMeasurer is a rendering collaborator stub returning one height
type fixedMeasurer struct {
	height float64
	ok     bool
	calls  int
}

func (f *fixedMeasurer) MeasureHeight(doc *sharecard.Document, width float64) (float64, bool) {
	f.calls++
	return f.height, f.ok
}

func testDocument(comments int) *sharecard.Document {
	doc := &sharecard.Document{
		Header: sharecard.PostRenderable{
			Content: "a post body that is exactly long enough to span a couple of lines on the card",
		},
	}
	for i := 0; i < comments; i++ {
		doc.ReplySubtree = append(doc.ReplySubtree, sharecard.CommentRenderable{
			ID:      "comment",
			Content: "a reply",
		})
	}
	return doc
}

func TestMeasureUsesCollaborator(t *testing.T) {
	renderer := &fixedMeasurer{height: 812, ok: true}
	measurer := NewCardMeasurer(1080, renderer)

	m := measurer.Measure(testDocument(2), PresetSquare1x1)

	if m.Estimated {
		t.Error("collaborator result should not be flagged as estimated")
	}
	if m.CardHeight != 812 {
		t.Errorf("CardHeight = %v, want collaborator height 812", m.CardHeight)
	}
	if renderer.calls != 1 {
		t.Errorf("collaborator called %d times, want 1", renderer.calls)
	}
	if got, want := m.CardWidth, MaxCardWidth(PresetSquare1x1, 1080); got != want {
		t.Errorf("CardWidth = %v, want %v", got, want)
	}
}

func TestMeasureFallsBackToEstimate(t *testing.T) {
	tests := []struct {
		name     string
		renderer HeightMeasurer
	}{
		{"no collaborator", nil},
		{"collaborator declines", &fixedMeasurer{ok: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			measurer := NewCardMeasurer(1080, tt.renderer)
			m := measurer.Measure(testDocument(2), PresetSquare1x1)

			if !m.Estimated {
				t.Error("expected estimate fallback")
			}
			if m.CardHeight <= 0 {
				t.Errorf("estimate = %v, want positive", m.CardHeight)
			}
		})
	}
}

func TestEstimateStableAcrossRuns(t *testing.T) {
	doc := testDocument(3)

	first := EstimateCardHeight(doc)
	for i := 0; i < 5; i++ {
		if got := EstimateCardHeight(doc); got != first {
			t.Fatalf("estimate changed between runs: %v vs %v", got, first)
		}
	}
}

func TestEstimateGrowsWithContent(t *testing.T) {
	short := testDocument(0)
	long := testDocument(0)
	long.Header.Content = strings.Repeat("more words ", 50)

	if EstimateCardHeight(long) <= EstimateCardHeight(short) {
		t.Error("longer content must estimate taller")
	}

	withComments := testDocument(4)
	if got, want := EstimateCardHeight(withComments)-EstimateCardHeight(testDocument(0)), 4*estimateCommentHeight; got != want {
		t.Errorf("comment contribution = %v, want %v", got, want)
	}
}

func TestEstimateAddsFixedBlocks(t *testing.T) {
	base := testDocument(0)

	withMedia := testDocument(0)
	withMedia.Header.MediaCount = 2
	if EstimateCardHeight(withMedia) <= EstimateCardHeight(base) {
		t.Error("media must add height")
	}

	withLink := testDocument(0)
	withLink.Header.HasLinkPreview = true
	if EstimateCardHeight(withLink) <= EstimateCardHeight(base) {
		t.Error("link preview must add height")
	}

	withQuote := testDocument(0)
	withQuote.Header.HasQuote = true
	if EstimateCardHeight(withQuote) <= EstimateCardHeight(base) {
		t.Error("quote must add height")
	}

	withStats := testDocument(0)
	withStats.IncludePostDetails = true
	if EstimateCardHeight(withStats) <= EstimateCardHeight(base) {
		t.Error("stats row must add height")
	}
}

func TestMeasureAllCoversEveryPreset(t *testing.T) {
	measurer := NewCardMeasurer(1080, nil)

	measurements := measurer.MeasureAll(testDocument(1))

	if len(measurements) != len(AllPresets()) {
		t.Fatalf("got %d measurements, want %d", len(measurements), len(AllPresets()))
	}
	for i, preset := range AllPresets() {
		if measurements[i].Preset != preset {
			t.Errorf("measurement %d is for %s, want %s", i, measurements[i].Preset, preset)
		}
	}
}
