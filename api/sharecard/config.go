package sharecard

import (
	"unicode/utf8"

	"github.com/pojntfx/sharecard/api/thread"
)

const (
	// shortContentThreshold is the rune count under which a selected
	// reply gets a deeper ancestor window: short replies carry less
	// standalone context
	shortContentThreshold = 20

	maxRepliesTotal   = 6
	maxReplyDepth     = 1
	maxRepliesPerNode = 3
)

// Config is an immutable snapshot of the share-card toggles. Derived
// limits are pure functions of the toggles and the selected post.
type Config struct {
	// IncludeEarlier shows the ancestor chain above the selected comment
	IncludeEarlier bool

	// IncludeLater shows replies below the shared post or comment
	IncludeLater bool

	// HideUsernames replaces author identities with "User N" labels
	// and suppresses avatars
	HideUsernames bool

	// ShowWatermark renders the app watermark on the card
	ShowWatermark bool

	// IncludePostDetails renders engagement counts and timestamps
	IncludePostDetails bool
}

// DefaultConfig returns the toggles a fresh share sheet starts with
func DefaultConfig() Config {
	return Config{
		IncludeEarlier:     true,
		IncludeLater:       true,
		IncludePostDetails: true,
		ShowWatermark:      true,
	}
}

// MaxParentComments returns how many ancestors of the selected post are
// shown above it
func (c Config) MaxParentComments(selected *thread.Post) int {
	if !c.IncludeEarlier {
		return 0
	}

	if selected != nil && utf8.RuneCountInString(selected.Content) < shortContentThreshold {
		return 3
	}
	return 2
}

// MaxRepliesTotal caps replies across all depths
func (c Config) MaxRepliesTotal() int {
	if !c.IncludeLater {
		return 0
	}
	return maxRepliesTotal
}

// MaxReplyDepth caps how deep below the shared post replies are taken
func (c Config) MaxReplyDepth() int {
	if !c.IncludeLater {
		return 0
	}
	return maxReplyDepth
}

// MaxRepliesPerNode caps the fan-out kept under each reply
func (c Config) MaxRepliesPerNode() int {
	return maxRepliesPerNode
}

// SortOrder ranks sibling replies during pruning
func (c Config) SortOrder() thread.SortOrder {
	return thread.SortTop
}

// PruneConfig bundles the derived limits for the slicer
func (c Config) PruneConfig() thread.PruneConfig {
	return thread.PruneConfig{
		MaxTotal:   c.MaxRepliesTotal(),
		MaxDepth:   c.MaxReplyDepth(),
		MaxPerNode: c.MaxRepliesPerNode(),
		Sort:       c.SortOrder(),
	}
}
