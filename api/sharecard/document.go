package sharecard

import (
	"time"

	"github.com/pojntfx/sharecard/api/thread"
)

// PostRenderable is the flattened, anonymization-applied view model for
// the card header. Produced once per build; immutable.
type PostRenderable struct {
	ID           string `json:"id" yaml:"id"`
	AuthorName   string `json:"authorName" yaml:"authorName"`
	AuthorHandle string `json:"authorHandle,omitempty" yaml:"authorHandle,omitempty"`
	AuthorAvatar string `json:"authorAvatar,omitempty" yaml:"authorAvatar,omitempty"`

	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`

	Likes   int `json:"likes" yaml:"likes"`
	Reposts int `json:"reposts" yaml:"reposts"`
	Replies int `json:"replies" yaml:"replies"`

	MediaCount     int    `json:"mediaCount,omitempty" yaml:"mediaCount,omitempty"`
	HasLinkPreview bool   `json:"hasLinkPreview,omitempty" yaml:"hasLinkPreview,omitempty"`
	HasQuote       bool   `json:"hasQuote,omitempty" yaml:"hasQuote,omitempty"`
	QuotedContent  string `json:"quotedContent,omitempty" yaml:"quotedContent,omitempty"`
}

// CommentRenderable is the flattened view model for one comment row
type CommentRenderable struct {
	ID           string `json:"id" yaml:"id"`
	AuthorName   string `json:"authorName" yaml:"authorName"`
	AuthorHandle string `json:"authorHandle,omitempty" yaml:"authorHandle,omitempty"`
	AuthorAvatar string `json:"authorAvatar,omitempty" yaml:"authorAvatar,omitempty"`

	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`

	Likes int `json:"likes" yaml:"likes"`

	// Depth is the indentation level on the card
	Depth int `json:"depth" yaml:"depth"`

	// IsSelected marks the comment the share was initiated from
	IsSelected bool `json:"isSelected,omitempty" yaml:"isSelected,omitempty"`

	// ReplyingTo is the display label of the author being replied to,
	// already anonymized when usernames are hidden
	ReplyingTo string `json:"replyingTo,omitempty" yaml:"replyingTo,omitempty"`
}

// Document is the immutable value object the layout and render stages
// consume. Constructed once by a Builder; rebuilt whenever a user-facing
// toggle changes.
//
// Invariant: the selected comment appears exactly once across
// AncestorChain and ReplySubtree, and never inside AncestorChain.
type Document struct {
	// SelectedPost is the domain post the share was initiated from
	SelectedPost *thread.Post `json:"-" yaml:"-"`

	// SelectedCommentID is set when a comment (not the root post) was
	// selected
	SelectedCommentID string `json:"selectedCommentId,omitempty" yaml:"selectedCommentId,omitempty"`

	// Header is the root post of the thread, always rendered at the top
	// of the card and never as a comment row
	Header PostRenderable `json:"header" yaml:"header"`

	// AncestorChain holds the comments between the root and the selected
	// comment, oldest first
	AncestorChain []CommentRenderable `json:"ancestorChain,omitempty" yaml:"ancestorChain,omitempty"`

	// ReplySubtree holds the selected comment (when one exists) followed
	// by its pruned replies in display order
	ReplySubtree []CommentRenderable `json:"replySubtree,omitempty" yaml:"replySubtree,omitempty"`

	IncludePostDetails bool `json:"includePostDetails" yaml:"includePostDetails"`
	HideUsernames      bool `json:"hideUsernames" yaml:"hideUsernames"`
	ShowWatermark      bool `json:"showWatermark" yaml:"showWatermark"`
	IncludeReplies     bool `json:"includeReplies" yaml:"includeReplies"`
}

// AllComments concatenates the ancestor chain and the reply subtree in
// display order
func (d *Document) AllComments() []CommentRenderable {
	out := make([]CommentRenderable, 0, len(d.AncestorChain)+len(d.ReplySubtree))
	out = append(out, d.AncestorChain...)
	out = append(out, d.ReplySubtree...)
	return out
}

// CommentCount returns the number of comment rows on the card
func (d *Document) CommentCount() int {
	return len(d.AncestorChain) + len(d.ReplySubtree)
}
