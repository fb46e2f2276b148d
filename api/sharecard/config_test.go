package sharecard

import (
	"testing"

	"github.com/pojntfx/sharecard/api/thread"
)

func TestMaxParentComments(t *testing.T) {
	tests := []struct {
		name           string
		includeEarlier bool
		content        string
		want           int
	}{
		{"disabled", false, "short", 0},
		{"short reply gets deeper window", true, "ok!", 3},
		{"nineteen runes still short", true, "1234567890123456789", 3},
		{"twenty runes is long", true, "12345678901234567890", 2},
		{"long reply", true, "this is a reply with plenty of standalone context", 2},
		{"multibyte runes counted as runes", true, "日本語の短い返信です", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Config{IncludeEarlier: tt.includeEarlier}
			post := &thread.Post{Content: tt.content}
			if got := config.MaxParentComments(post); got != tt.want {
				t.Errorf("MaxParentComments = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDerivedReplyLimits(t *testing.T) {
	on := Config{IncludeLater: true}
	off := Config{IncludeLater: false}

	if got := on.MaxRepliesTotal(); got != 6 {
		t.Errorf("MaxRepliesTotal with replies on = %d, want 6", got)
	}
	if got := off.MaxRepliesTotal(); got != 0 {
		t.Errorf("MaxRepliesTotal with replies off = %d, want 0", got)
	}
	if got := on.MaxReplyDepth(); got != 1 {
		t.Errorf("MaxReplyDepth with replies on = %d, want 1", got)
	}
	if got := off.MaxReplyDepth(); got != 0 {
		t.Errorf("MaxReplyDepth with replies off = %d, want 0", got)
	}
	if got := on.MaxRepliesPerNode(); got != 3 {
		t.Errorf("MaxRepliesPerNode = %d, want 3", got)
	}
	if got := on.SortOrder(); got != thread.SortTop {
		t.Errorf("SortOrder = %v, want %v", got, thread.SortTop)
	}
}

func TestPruneConfig(t *testing.T) {
	config := Config{IncludeLater: true}

	pc := config.PruneConfig()
	if pc.MaxTotal != 6 || pc.MaxDepth != 1 || pc.MaxPerNode != 3 || pc.Sort != thread.SortTop {
		t.Errorf("unexpected prune config: %+v", pc)
	}
}
