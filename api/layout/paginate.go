package layout

import "github.com/pojntfx/sharecard/api/sharecard"

const (
	// paginationCommentHeight is the per-comment height budget used when
	// slicing pages; an approximation, not a measurement
	paginationCommentHeight = 100.0

	// minCommentsPerPage keeps pages from degenerating when the header
	// estimate eats most of the budget
	minCommentsPerPage = 2
)

// Page is one render-ready slice of a paginated document
type Page struct {
	// Index is the 1-based page number
	Index int `json:"index" yaml:"index"`

	// TotalPages is the final page count, stamped after slicing
	TotalPages int `json:"totalPages" yaml:"totalPages"`

	// Header is the post header; only page 1 carries it
	Header *sharecard.PostRenderable `json:"header,omitempty" yaml:"header,omitempty"`

	// Comments are the comment rows on this page in display order
	Comments []sharecard.CommentRenderable `json:"comments" yaml:"comments"`

	// ShowWatermark is retained only on page 1
	ShowWatermark bool `json:"showWatermark" yaml:"showWatermark"`
}

// Paginator splits oversized documents into pages sized by an
// estimated-height budget
type Paginator struct {
	shortSide float64
}

// NewPaginator creates a paginator for a pixel short side
func NewPaginator(shortSide float64) *Paginator {
	return &Paginator{shortSide: shortSide}
}

// Paginate splits a document according to a preset selection. When the
// selection does not call for pagination the document comes back as a
// single unchanged page.
func (p *Paginator) Paginate(doc *sharecard.Document, selection Selection) []Page {
	header := doc.Header

	if !selection.ShouldPaginate {
		return []Page{{
			Index:         1,
			TotalPages:    1,
			Header:        &header,
			Comments:      doc.AllComments(),
			ShowWatermark: doc.ShowWatermark,
		}}
	}

	budget := MaxCardHeight(selection.Preset, p.shortSide)
	comments := doc.AllComments()

	// First pass: build pages. Page 1 reserves space for the header
	// before filling with comments; later pages are comments-only.
	var pages []Page

	firstCapacity := pageCapacity(budget - headerEstimate(doc))
	first := Page{
		Index:         1,
		Header:        &header,
		ShowWatermark: doc.ShowWatermark,
	}
	first.Comments, comments = takeComments(comments, firstCapacity)
	pages = append(pages, first)

	capacity := pageCapacity(budget)
	for len(comments) > 0 {
		page := Page{Index: len(pages) + 1}
		page.Comments, comments = takeComments(comments, capacity)
		pages = append(pages, page)
	}

	// Second pass: stamp the final count into every page
	for i := range pages {
		pages[i].TotalPages = len(pages)
	}

	return pages
}

// pageCapacity converts a height budget into a comment count
func pageCapacity(available float64) int {
	capacity := int(available / paginationCommentHeight)
	if capacity < minCommentsPerPage {
		capacity = minCommentsPerPage
	}
	return capacity
}

func takeComments(comments []sharecard.CommentRenderable, n int) (page, rest []sharecard.CommentRenderable) {
	if n > len(comments) {
		n = len(comments)
	}
	return comments[:n], comments[n:]
}

// headerEstimate reserves page-1 space for the post header based on its
// content length and attachments
func headerEstimate(doc *sharecard.Document) float64 {
	height := estimateBasePadding + estimateAuthorRow
	height += contentLines(doc.Header.Content) * estimateLineHeight

	if doc.Header.MediaCount > 0 {
		height += estimateMediaBlock
	}
	if doc.Header.HasLinkPreview {
		height += estimateLinkPreview
	}
	if doc.Header.HasQuote {
		height += estimateQuoteBlock
	}

	return height
}
