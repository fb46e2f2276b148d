package thread

import "sort"

// Slicer builds and prunes reply trees from flat post lists.
//
// Parent/child relationships are resolved by ID matching on every call
// rather than held as object references: the tree is rebuilt fresh from
// an acyclic reply relation each time, so cycles cannot occur and no
// graph state outlives a call.
type Slicer struct{}

// NewSlicer creates a new thread slicer
func NewSlicer() *Slicer {
	return &Slicer{}
}

// BuildAncestorChain walks parent links upward from the given post through
// the candidate list, returning the visited posts oldest first. The given
// post is the last element. The walk stops after maxDepth ancestors or as
// soon as a declared parent cannot be found in candidates — a missing
// parent is normal graph shape, not an error.
func (s *Slicer) BuildAncestorChain(from *Post, candidates []*Post, maxDepth int) []*Post {
	if from == nil {
		return nil
	}

	chain := []*Post{from}

	current := from
	for i := 0; i < maxDepth; i++ {
		if current.InReplyToID == "" {
			break
		}

		parent := findParent(current, candidates)
		if parent == nil {
			break
		}

		chain = append([]*Post{parent}, chain...)
		current = parent
	}

	return chain
}

// BuildThreadGraph builds one CommentNode per distinct post ID and attaches
// each node to its parent, resolved by robust ID matching. Posts whose
// declared parent is absent from the list become roots; multiple roots are
// valid and expected when posts come from different fetch batches.
func (s *Slicer) BuildThreadGraph(posts []*Post) []*CommentNode {
	nodes := make([]*CommentNode, 0, len(posts))
	byID := make(map[string]*CommentNode, len(posts))

	for _, p := range posts {
		if p == nil {
			continue
		}
		if _, ok := byID[p.ID]; ok {
			// Exactly one node per distinct post ID
			continue
		}

		node := &CommentNode{Post: p, ParentID: p.InReplyToID}
		nodes = append(nodes, node)
		byID[p.ID] = node
	}

	var roots []*CommentNode
	for _, node := range nodes {
		parent := findParentNode(node, nodes)
		if parent == nil || parent == node {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return roots
}

// PruneReplySubtree returns the replies below the selected post, pruned by
// the config's total, depth, and fan-out limits. The selected post itself
// is excluded. Output order is deterministic for identical input.
func (s *Slicer) PruneReplySubtree(from *Post, candidates []*Post, config PruneConfig) []*Post {
	if from == nil || config.MaxTotal <= 0 || config.MaxDepth <= 0 {
		return nil
	}

	selected := s.subtreeRoot(from, candidates)

	var result []*Post
	var walk func(node *CommentNode, depth int)
	walk = func(node *CommentNode, depth int) {
		if depth > config.MaxDepth {
			return
		}

		children := sortReplies(node.Children, config.Sort)
		if config.MaxPerNode > 0 && len(children) > config.MaxPerNode {
			children = children[:config.MaxPerNode]
		}

		for _, child := range children {
			if len(result) >= config.MaxTotal {
				return
			}
			result = append(result, child.Post)
			walk(child, depth+1)
		}
	}
	walk(selected, 1)

	return result
}

// subtreeRoot locates the selected post's node in the graph built over
// candidates, synthesizing one if the selected post is absent from the
// candidate list (the pipeline stays permissive rather than failing).
func (s *Slicer) subtreeRoot(from *Post, candidates []*Post) *CommentNode {
	all := candidates
	if !containsPost(candidates, from) {
		all = append([]*Post{from}, candidates...)
	}

	roots := s.BuildThreadGraph(all)

	if node := findNode(roots, from); node != nil {
		return node
	}

	// Selected post is in the graph but unreachable as its own subtree;
	// treat it as a fresh root with no replies
	return &CommentNode{Post: from, ParentID: from.InReplyToID}
}

func containsPost(posts []*Post, p *Post) bool {
	for _, candidate := range posts {
		if candidate != nil && candidate.ID == p.ID {
			return true
		}
	}
	return false
}

func findNode(roots []*CommentNode, p *Post) *CommentNode {
	for _, root := range roots {
		if MatchesPost(p.ID, root.Post) {
			return root
		}
		if node := findNode(root.Children, p); node != nil {
			return node
		}
	}
	return nil
}

// findParent resolves a post's declared parent within candidates
func findParent(of *Post, candidates []*Post) *Post {
	if of.InReplyToID == "" {
		return nil
	}
	for _, candidate := range candidates {
		if candidate == nil || candidate.ID == of.ID {
			continue
		}
		if MatchesPost(of.InReplyToID, candidate) {
			return candidate
		}
	}
	return nil
}

func findParentNode(of *CommentNode, nodes []*CommentNode) *CommentNode {
	if of.ParentID == "" {
		return nil
	}
	for _, candidate := range nodes {
		if candidate == of {
			continue
		}
		if MatchesPost(of.ParentID, candidate.Post) {
			return candidate
		}
	}
	return nil
}

// sortReplies returns a sorted copy of siblings. Ties always fall back to
// post ID so identical inputs yield identical ordering.
func sortReplies(nodes []*CommentNode, order SortOrder) []*CommentNode {
	sorted := make([]*CommentNode, len(nodes))
	copy(sorted, nodes)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Post, sorted[j].Post

		switch order {
		case SortNewest:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		case SortOldest:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		default: // SortTop
			as, bs := a.EngagementScore(), b.EngagementScore()
			if as != bs {
				return as > bs
			}
			// Equal engagement falls back to newer first
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}

		return a.ID < b.ID
	})

	return sorted
}
