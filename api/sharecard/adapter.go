package sharecard

import "github.com/pojntfx/sharecard/api/thread"

// Adapter converts domain posts into renderables, applying anonymization.
// The builder depends only on this signature; platform apps can swap in
// their own conversion.
type Adapter interface {
	// RenderPost converts a post into the card header renderable
	RenderPost(p *thread.Post, config Config, mapping *UserMapping) PostRenderable

	// RenderComment converts a post into a comment-row renderable
	RenderComment(p *thread.Post, depth int, selected bool, replyingTo string, config Config, mapping *UserMapping) CommentRenderable

	// DisplayName returns the author label for a post, anonymized when
	// usernames are hidden
	DisplayName(p *thread.Post, config Config, mapping *UserMapping) string
}

// DefaultAdapter is the stock conversion used when no platform-specific
// adapter is supplied
type DefaultAdapter struct{}

// DisplayName returns the author label for a post
func (DefaultAdapter) DisplayName(p *thread.Post, config Config, mapping *UserMapping) string {
	if p == nil {
		return ""
	}

	if config.HideUsernames {
		return mapping.Anonymize(authorKey(p))
	}

	if p.AuthorName != "" {
		return p.AuthorName
	}
	return p.AuthorHandle
}

// RenderPost converts a post into the card header renderable
func (a DefaultAdapter) RenderPost(p *thread.Post, config Config, mapping *UserMapping) PostRenderable {
	if p == nil {
		return PostRenderable{}
	}

	// Reposts render the original post's content under the booster's name
	source := p
	if p.Original != nil {
		source = p.Original
	}

	r := PostRenderable{
		ID:         source.ID,
		AuthorName: a.DisplayName(source, config, mapping),
		Content:    source.Content,
		CreatedAt:  source.CreatedAt,
		MediaCount: source.MediaCount,
	}

	if !config.HideUsernames {
		r.AuthorHandle = source.AuthorHandle
		r.AuthorAvatar = source.AuthorAvatar
	}

	if config.IncludePostDetails {
		r.Likes = source.Likes
		r.Reposts = source.Reposts
		r.Replies = source.Replies
	}

	if source.Link != nil {
		r.HasLinkPreview = true
	}

	if source.Quoted != nil {
		r.HasQuote = true
		r.QuotedContent = source.Quoted.Content
	}

	return r
}

// RenderComment converts a post into a comment-row renderable
func (a DefaultAdapter) RenderComment(p *thread.Post, depth int, selected bool, replyingTo string, config Config, mapping *UserMapping) CommentRenderable {
	if p == nil {
		return CommentRenderable{}
	}

	r := CommentRenderable{
		ID:         p.ID,
		AuthorName: a.DisplayName(p, config, mapping),
		Content:    p.Content,
		CreatedAt:  p.CreatedAt,
		Depth:      depth,
		IsSelected: selected,
		ReplyingTo: replyingTo,
	}

	if !config.HideUsernames {
		r.AuthorHandle = p.AuthorHandle
		r.AuthorAvatar = p.AuthorAvatar
	}

	if config.IncludePostDetails {
		r.Likes = p.Likes
	}

	return r
}

// authorKey picks the stable identity used for anonymization numbering
func authorKey(p *thread.Post) string {
	if p.AuthorID != "" {
		return p.AuthorID
	}
	return p.AuthorHandle
}
