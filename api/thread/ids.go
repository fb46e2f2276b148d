package thread

import "strings"

// IDsMatch reports whether a declared post reference matches a candidate
// post's identity. platformID is the candidate's secondary platform
// identifier (e.g. a Bluesky CID) and may be empty.
//
// Matching is layered: exact ID equality first, then the platform-specific
// fallback, then AT-URI rkey comparison — a reply fetched from one endpoint
// may reference its parent in a different ID format than the parent's own
// primary ID.
func IDsMatch(ref, id, platformID string) bool {
	if ref == "" || id == "" {
		return false
	}

	if ref == id {
		return true
	}

	if platformID != "" && ref == platformID {
		return true
	}

	// Bluesky AT-URIs can differ textually (did vs. handle authority)
	// while naming the same record; compare the trailing rkey instead
	if isATURI(ref) || isATURI(id) {
		refKey := rkey(ref)
		idKey := rkey(id)
		return refKey != "" && refKey == idKey
	}

	return false
}

// MatchesPost reports whether ref identifies the given post
func MatchesPost(ref string, p *Post) bool {
	if p == nil {
		return false
	}
	return IDsMatch(ref, p.ID, p.PlatformID)
}

func isATURI(id string) bool {
	return strings.Contains(id, "at://") || strings.Contains(id, "app.bsky.feed.post")
}

// rkey returns the trailing path segment of an AT-URI
func rkey(id string) string {
	idx := strings.LastIndex(id, "/")
	if idx < 0 || idx == len(id)-1 {
		return ""
	}
	return id[idx+1:]
}
