package layout

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pojntfx/sharecard/api/sharecard"
)

func pagedDocument(comments int) *sharecard.Document {
	doc := &sharecard.Document{
		Header: sharecard.PostRenderable{
			ID:      "root",
			Content: "a shared post",
		},
		ShowWatermark: true,
	}
	for i := 0; i < comments; i++ {
		doc.ReplySubtree = append(doc.ReplySubtree, sharecard.CommentRenderable{
			ID: fmt.Sprintf("c%02d", i),
		})
	}
	return doc
}

func TestPaginateSinglePage(t *testing.T) {
	doc := pagedDocument(5)
	selection := Selection{Preset: PresetSquare1x1, ShouldPaginate: false}

	pages := NewPaginator(1080).Paginate(doc, selection)

	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	page := pages[0]
	if page.Index != 1 || page.TotalPages != 1 {
		t.Errorf("page numbering = %d/%d, want 1/1", page.Index, page.TotalPages)
	}
	if page.Header == nil || page.Header.ID != "root" {
		t.Error("single page must carry the header unchanged")
	}
	if len(page.Comments) != 5 {
		t.Errorf("got %d comments, want all 5", len(page.Comments))
	}
	if !page.ShowWatermark {
		t.Error("single page keeps the watermark")
	}
}

func TestPaginateSplitsOversizedDocument(t *testing.T) {
	doc := pagedDocument(40)
	selection := Selection{Preset: PresetPortrait9x16, ShouldPaginate: true}

	pages := NewPaginator(300).Paginate(doc, selection)

	if len(pages) < 2 {
		t.Fatalf("got %d pages, want a multi-page split", len(pages))
	}

	if pages[0].Header == nil {
		t.Error("page 1 must carry the header")
	}
	if !pages[0].ShowWatermark {
		t.Error("page 1 must keep the watermark")
	}

	for i, page := range pages {
		if page.Index != i+1 {
			t.Errorf("page %d has index %d", i, page.Index)
		}
		if page.TotalPages != len(pages) {
			t.Errorf("page %d TotalPages = %d, want %d", page.Index, page.TotalPages, len(pages))
		}
		if i > 0 {
			if page.Header != nil {
				t.Errorf("page %d must not carry the header", page.Index)
			}
			if page.ShowWatermark {
				t.Errorf("page %d must not carry the watermark", page.Index)
			}
		}
	}

	// Every comment survives, in order, exactly once
	var all []string
	for _, page := range pages {
		for _, c := range page.Comments {
			all = append(all, c.ID)
		}
	}
	if len(all) != 40 {
		t.Fatalf("%d comments across pages, want 40", len(all))
	}
	for i, id := range all {
		if want := fmt.Sprintf("c%02d", i); id != want {
			t.Errorf("comment %d = %s, want %s", i, id, want)
		}
	}
}

func TestPaginateHeaderReservesPageOneSpace(t *testing.T) {
	short := pagedDocument(40)

	tall := pagedDocument(40)
	tall.Header.Content = strings.Repeat("a very long shared post ", 40)

	selection := Selection{Preset: PresetPortrait9x16, ShouldPaginate: true}
	paginator := NewPaginator(1080)

	shortPages := paginator.Paginate(short, selection)
	tallPages := paginator.Paginate(tall, selection)

	if len(tallPages[0].Comments) >= len(shortPages[0].Comments) {
		t.Errorf("taller header should leave less room on page 1: %d vs %d",
			len(tallPages[0].Comments), len(shortPages[0].Comments))
	}
}

func TestPaginateMinimumCommentsPerPage(t *testing.T) {
	doc := pagedDocument(6)
	// Header estimate far exceeds the page budget
	doc.Header.Content = strings.Repeat("overflowing header content ", 100)
	doc.Header.MediaCount = 1
	doc.Header.HasLinkPreview = true
	doc.Header.HasQuote = true

	selection := Selection{Preset: PresetPortrait9x16, ShouldPaginate: true}
	pages := NewPaginator(300).Paginate(doc, selection)

	for _, page := range pages {
		if len(page.Comments) > 0 && len(page.Comments) < minCommentsPerPage && page.Index != len(pages) {
			t.Errorf("page %d has %d comments, below the minimum", page.Index, len(page.Comments))
		}
	}
	if len(pages[0].Comments) != minCommentsPerPage {
		t.Errorf("page 1 should still take %d comments, got %d",
			minCommentsPerPage, len(pages[0].Comments))
	}
}

func TestPaginateDeterministic(t *testing.T) {
	doc := pagedDocument(25)
	selection := Selection{Preset: PresetPortrait9x16, ShouldPaginate: true}
	paginator := NewPaginator(300)

	first := paginator.Paginate(doc, selection)
	second := paginator.Paginate(doc, selection)

	if len(first) != len(second) {
		t.Fatalf("page counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if len(first[i].Comments) != len(second[i].Comments) {
			t.Errorf("page %d sizes differ: %d vs %d",
				i+1, len(first[i].Comments), len(second[i].Comments))
		}
	}
}
