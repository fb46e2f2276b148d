package thread

import "testing"

func TestIDsMatch(t *testing.T) {
	tests := []struct {
		name       string
		ref        string
		id         string
		platformID string
		want       bool
	}{
		{"exact match", "109372818", "109372818", "", true},
		{"no match", "109372818", "109372819", "", false},
		{"empty ref", "", "109372818", "", false},
		{"empty id", "109372818", "", "", false},
		{"platform id fallback", "bafyreib2x", "at://did:plc:abc/app.bsky.feed.post/3k2a", "bafyreib2x", true},
		{"platform id mismatch", "bafyreib2x", "at://did:plc:abc/app.bsky.feed.post/3k2a", "bafyreixyz", false},
		{
			"at-uri rkey match across authorities",
			"at://did:plc:abc/app.bsky.feed.post/3k2akqetl5i2e",
			"at://user.bsky.social/app.bsky.feed.post/3k2akqetl5i2e",
			"",
			true,
		},
		{
			"at-uri rkey mismatch",
			"at://did:plc:abc/app.bsky.feed.post/3k2akqetl5i2e",
			"at://did:plc:abc/app.bsky.feed.post/3k2akqetl5i2f",
			"",
			false,
		},
		{
			"at-uri against bare id with same suffix",
			"at://did:plc:abc/app.bsky.feed.post/3k2a",
			"prefix/3k2a",
			"",
			true,
		},
		{"plain ids never compared by suffix", "a/123", "b/123", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IDsMatch(tt.ref, tt.id, tt.platformID); got != tt.want {
				t.Errorf("IDsMatch(%q, %q, %q) = %v, want %v", tt.ref, tt.id, tt.platformID, got, tt.want)
			}
		})
	}
}

func TestMatchesPost(t *testing.T) {
	p := &Post{
		ID:         "at://did:plc:abc/app.bsky.feed.post/3k2a",
		PlatformID: "bafyreib2x",
	}

	if !MatchesPost("bafyreib2x", p) {
		t.Error("expected platform ID to match")
	}
	if !MatchesPost("at://user.example/app.bsky.feed.post/3k2a", p) {
		t.Error("expected rkey to match")
	}
	if MatchesPost("something-else", p) {
		t.Error("expected no match")
	}
	if MatchesPost("bafyreib2x", nil) {
		t.Error("nil post must never match")
	}
}

func TestRkey(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"at://did:plc:abc/app.bsky.feed.post/3k2a", "3k2a"},
		{"no-slashes", ""},
		{"trailing/", ""},
	}

	for _, tt := range tests {
		if got := rkey(tt.id); got != tt.want {
			t.Errorf("rkey(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
