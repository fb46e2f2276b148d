package thread

import "time"

// Platform identifies the network a post originates from
type Platform string

const (
	PlatformMastodon Platform = "mastodon"
	PlatformBluesky  Platform = "bluesky"
)

// SortOrder controls how sibling replies are ranked during pruning
type SortOrder string

const (
	// SortTop ranks by engagement score, newest first on ties
	SortTop SortOrder = "top"

	// SortNewest ranks by creation time, newest first
	SortNewest SortOrder = "newest"

	// SortOldest ranks by creation time, oldest first
	SortOldest SortOrder = "oldest"
)

// Post is one post or reply as fetched from a platform.
// Immutable once fetched; the slicing pipeline never modifies it.
type Post struct {
	// ID is the primary post identifier (Mastodon status ID or AT-URI)
	ID string

	// PlatformID is a secondary platform identifier for the same post
	// (e.g. the Bluesky CID), used as a matching fallback because a
	// reply's declared parent may be expressed in either form
	PlatformID string

	// Platform is the originating network
	Platform Platform

	// AuthorID is the stable account identifier (account ID or DID)
	AuthorID string

	// AuthorHandle is the account handle (e.g. "user@mastodon.social")
	AuthorHandle string

	// AuthorName is the display name shown on cards
	AuthorName string

	// AuthorAvatar is the avatar URL, if any
	AuthorAvatar string

	// Content is the plain-text post body
	Content string

	// URL is the canonical web URL of the post
	URL string

	// CreatedAt is the post creation time
	CreatedAt time.Time

	// Engagement counts
	Likes   int
	Reposts int
	Replies int

	// InReplyToID is the declared parent post ID; empty for roots.
	// May be expressed in a different ID format than the parent's own ID.
	InReplyToID string

	// Original is the boosted/reposted post, if this post is a repost
	Original *Post

	// Quoted is the quoted post, if any
	Quoted *Post

	// MediaCount is the number of attached media items
	MediaCount int

	// Link is the attached link preview, if any
	Link *LinkPreview
}

// LinkPreview is OpenGraph-style metadata attached to a post
type LinkPreview struct {
	URL         string
	Title       string
	Description string
	ImageURL    string
}

// EngagementScore is the ranking score used by SortTop
func (p *Post) EngagementScore() int {
	return p.Likes + 2*p.Reposts + p.Replies
}

// ThreadContext bundles every post known to belong to one thread.
// Supplied by a provider; read-only input to the slicing pipeline.
type ThreadContext struct {
	// MainPost is the post the thread was fetched around, if known
	MainPost *Post

	// Ancestors are posts above MainPost, oldest first
	Ancestors []*Post

	// Descendants are posts below MainPost, in fetch order
	Descendants []*Post
}

// AllPosts returns ancestors, main post, and descendants as one flat list
// in display order
func (tc *ThreadContext) AllPosts() []*Post {
	if tc == nil {
		return nil
	}

	posts := make([]*Post, 0, len(tc.Ancestors)+1+len(tc.Descendants))
	posts = append(posts, tc.Ancestors...)
	if tc.MainPost != nil {
		posts = append(posts, tc.MainPost)
	}
	posts = append(posts, tc.Descendants...)
	return posts
}

// CommentNode is one node of a reply tree built by the slicer.
// Built fresh per pruning call; never persisted.
type CommentNode struct {
	Post     *Post
	ParentID string
	Children []*CommentNode
}

// PruneConfig bounds a reply-subtree pruning pass
type PruneConfig struct {
	// MaxTotal caps the number of replies returned across all depths
	MaxTotal int

	// MaxDepth caps how many hops below the selected post are visited;
	// 1 keeps direct replies only
	MaxDepth int

	// MaxPerNode caps how many children of each node are kept
	MaxPerNode int

	// Sort ranks siblings before the per-node cap is applied
	Sort SortOrder
}
