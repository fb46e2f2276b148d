package sharecard

import (
	"sort"

	"github.com/pojntfx/sharecard/api/thread"
)

// sparseReplyThreshold is the direct-reply count under which the reply
// depth is widened by one level so a shallow branch still fills the card
const sparseReplyThreshold = 3

// Builder assembles share-image documents from a post and its thread
// context. It is stateless and safe to reuse across documents; the only
// mutable state a build touches is the caller's UserMapping.
type Builder struct {
	slicer  *thread.Slicer
	adapter Adapter
}

// NewBuilder creates a builder with the stock adapter
func NewBuilder() *Builder {
	return NewBuilderWithAdapter(DefaultAdapter{})
}

// NewBuilderWithAdapter creates a builder with a custom renderable adapter
func NewBuilderWithAdapter(adapter Adapter) *Builder {
	return &Builder{
		slicer:  thread.NewSlicer(),
		adapter: adapter,
	}
}

// BuildDocument builds a document for sharing a post itself: the post
// becomes the header and, when replies are included, its direct top-level
// replies become depth-0 comment rows.
func (b *Builder) BuildDocument(post *thread.Post, tc *thread.ThreadContext, config Config, mapping *UserMapping) *Document {
	if mapping == nil {
		mapping = NewUserMapping()
	}

	doc := &Document{
		SelectedPost:       post,
		Header:             b.adapter.RenderPost(post, config, mapping),
		IncludePostDetails: config.IncludePostDetails,
		HideUsernames:      config.HideUsernames,
		ShowWatermark:      config.ShowWatermark,
		IncludeReplies:     config.IncludeLater,
	}

	if post == nil || !config.IncludeLater || tc == nil {
		return doc
	}

	// Top-level rows are flat by construction, so selection happens over
	// the filtered set without re-deriving the tree
	candidates := topLevelReplies(post, tc.Descendants)
	selected := b.selectReplies(nil, candidates, config)

	postLabel := b.adapter.DisplayName(post, config, mapping)
	for _, reply := range selected {
		doc.ReplySubtree = append(doc.ReplySubtree,
			b.adapter.RenderComment(reply, 0, false, postLabel, config, mapping))
	}

	return doc
}

// BuildCommentDocument builds a document for sharing a comment within a
// thread: the thread root becomes the header, the comment's pruned
// ancestor chain sits above it, and its pruned reply subtree below.
//
// The selected comment is rendered exactly once, always inside the reply
// subtree, regardless of toggles.
func (b *Builder) BuildCommentDocument(selected *thread.Post, tc *thread.ThreadContext, config Config, mapping *UserMapping) *Document {
	if selected == nil {
		return b.BuildDocument(nil, tc, config, mapping)
	}
	if mapping == nil {
		mapping = NewUserMapping()
	}

	all := tc.AllPosts()
	if !containsID(all, selected.ID) {
		// Selected post missing from its own context: treat it as its
		// own root rather than failing
		all = append(all, selected)
	}

	root := threadRoot(all)

	doc := &Document{
		SelectedPost:       selected,
		SelectedCommentID:  selected.ID,
		Header:             b.adapter.RenderPost(root, config, mapping),
		IncludePostDetails: config.IncludePostDetails,
		HideUsernames:      config.HideUsernames,
		ShowWatermark:      config.ShowWatermark,
		IncludeReplies:     config.IncludeLater,
	}

	// Ancestor chain between root and selected, header and selected
	// stripped out
	var ancestors []*thread.Post
	if config.IncludeEarlier {
		chain := b.slicer.BuildAncestorChain(selected, all, config.MaxParentComments(selected))
		for _, p := range chain {
			if p.ID == selected.ID || (root != nil && p.ID == root.ID) {
				continue
			}
			ancestors = append(ancestors, p)
		}

		rootLabel := b.adapter.DisplayName(root, config, mapping)
		for i, p := range ancestors {
			replyingTo := rootLabel
			if i > 0 {
				replyingTo = b.adapter.DisplayName(ancestors[i-1], config, mapping)
			}
			doc.AncestorChain = append(doc.AncestorChain,
				b.adapter.RenderComment(p, i, false, replyingTo, config, mapping))
		}
	}

	// Selected comment depth: normalized to 0 without ancestors
	selectedDepth := len(doc.AncestorChain)

	selectedLabel := ""
	if len(ancestors) > 0 {
		selectedLabel = b.adapter.DisplayName(ancestors[len(ancestors)-1], config, mapping)
	} else if root != nil && root.ID != selected.ID && thread.MatchesPost(selected.InReplyToID, root) {
		selectedLabel = b.adapter.DisplayName(root, config, mapping)
	}

	doc.ReplySubtree = append(doc.ReplySubtree,
		b.adapter.RenderComment(selected, selectedDepth, true, selectedLabel, config, mapping))

	if !config.IncludeLater {
		return doc
	}

	replies := b.selectReplies(selected, all, config)

	// Depths are derived by walking reply links among the selected set
	// only, starting at the selected comment's depth
	depths := map[string]int{selected.ID: selectedDepth}
	parents := map[string]*thread.Post{}
	resolved := append([]*thread.Post{selected}, replies...)

	for _, reply := range replies {
		depth := selectedDepth + 1
		for _, parent := range resolved {
			if parent.ID == reply.ID {
				continue
			}
			if thread.MatchesPost(reply.InReplyToID, parent) {
				if d, ok := depths[parent.ID]; ok {
					depth = d + 1
				}
				parents[reply.ID] = parent
				break
			}
		}
		depths[reply.ID] = depth
	}

	for _, reply := range replies {
		replyingTo := b.adapter.DisplayName(selected, config, mapping)
		if parent, ok := parents[reply.ID]; ok {
			replyingTo = b.adapter.DisplayName(parent, config, mapping)
		}
		doc.ReplySubtree = append(doc.ReplySubtree,
			b.adapter.RenderComment(reply, depths[reply.ID], false, replyingTo, config, mapping))
	}

	return doc
}

// selectReplies picks which replies under parent make it onto the card.
// Sparse threads (fewer than 3 direct replies) get one extra level of
// depth so the card isn't nearly empty.
func (b *Builder) selectReplies(parent *thread.Post, candidates []*thread.Post, config Config) []*thread.Post {
	if !config.IncludeLater {
		return nil
	}

	pruneConfig := config.PruneConfig()

	if parent != nil {
		if len(directChildren(parent, candidates)) < sparseReplyThreshold {
			pruneConfig.MaxDepth = 2
		}
		return b.slicer.PruneReplySubtree(parent, candidates, pruneConfig)
	}

	// No resolvable parent: flat sort-and-truncate
	sorted := make([]*thread.Post, 0, len(candidates))
	sorted = append(sorted, candidates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, c := sorted[i], sorted[j]
		if as, cs := a.EngagementScore(), c.EngagementScore(); as != cs {
			return as > cs
		}
		if !a.CreatedAt.Equal(c.CreatedAt) {
			return a.CreatedAt.After(c.CreatedAt)
		}
		return a.ID < c.ID
	})

	if len(sorted) > pruneConfig.MaxTotal {
		sorted = sorted[:pruneConfig.MaxTotal]
	}
	return sorted
}

// topLevelReplies filters descendants to direct replies of the target
// post. A reply with an absent or unresolvable parent reference still
// qualifies when nothing else in the list replies through it.
func topLevelReplies(post *thread.Post, descendants []*thread.Post) []*thread.Post {
	var direct []*thread.Post

	for _, reply := range descendants {
		if reply == nil || reply.ID == post.ID {
			continue
		}

		if thread.MatchesPost(reply.InReplyToID, post) {
			direct = append(direct, reply)
			continue
		}

		if (reply.InReplyToID == "" || !parentInList(reply, post, descendants)) &&
			!isReplyTarget(reply, descendants) {
			direct = append(direct, reply)
		}
	}

	return direct
}

// parentInList reports whether the reply's declared parent resolves to
// the target post or any other descendant
func parentInList(reply, post *thread.Post, descendants []*thread.Post) bool {
	if reply.InReplyToID == "" {
		return false
	}
	if thread.MatchesPost(reply.InReplyToID, post) {
		return true
	}
	for _, candidate := range descendants {
		if candidate == nil || candidate.ID == reply.ID {
			continue
		}
		if thread.MatchesPost(reply.InReplyToID, candidate) {
			return true
		}
	}
	return false
}

// isReplyTarget reports whether any other descendant replies to this post
func isReplyTarget(post *thread.Post, descendants []*thread.Post) bool {
	for _, candidate := range descendants {
		if candidate == nil || candidate.ID == post.ID {
			continue
		}
		if thread.MatchesPost(candidate.InReplyToID, post) {
			return true
		}
	}
	return false
}

// directChildren returns the candidates whose declared parent is the
// given post
func directChildren(parent *thread.Post, candidates []*thread.Post) []*thread.Post {
	var children []*thread.Post
	for _, candidate := range candidates {
		if candidate == nil || candidate.ID == parent.ID {
			continue
		}
		if thread.MatchesPost(candidate.InReplyToID, parent) {
			children = append(children, candidate)
		}
	}
	return children
}

// threadRoot picks the thread root: the first post without a parent
// reference, else the first post in display order
func threadRoot(all []*thread.Post) *thread.Post {
	for _, p := range all {
		if p != nil && p.InReplyToID == "" {
			return p
		}
	}
	for _, p := range all {
		if p != nil {
			return p
		}
	}
	return nil
}

func containsID(posts []*thread.Post, id string) bool {
	for _, p := range posts {
		if p != nil && p.ID == id {
			return true
		}
	}
	return false
}
