package providers

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/pojntfx/sharecard/api/thread"
)

// Ref identifies one post on one platform
type Ref struct {
	// Platform is the network the post lives on
	Platform thread.Platform

	// ID is the post identifier: a Mastodon status ID or a Bluesky
	// AT-URI
	ID string

	// Server is the instance base URL; Mastodon only
	Server string
}

// String returns a cache-key form of the reference
func (r Ref) String() string {
	if r.Server != "" {
		return fmt.Sprintf("%s:%s:%s", r.Platform, r.Server, r.ID)
	}
	return fmt.Sprintf("%s:%s", r.Platform, r.ID)
}

// Provider fetches the thread context around a post
type Provider interface {
	// FetchThread returns every post known to belong to the referenced
	// post's thread
	FetchThread(ctx context.Context, ref Ref) (*thread.ThreadContext, error)

	// Platform returns the network this provider serves
	Platform() thread.Platform
}

// Registry holds the configured providers by platform
type Registry struct {
	providers map[thread.Platform]Provider
	mu        sync.RWMutex
}

// NewRegistry creates an empty provider registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[thread.Platform]Provider),
	}
}

// Register adds or replaces the provider for its platform
func (r *Registry) Register(provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers[provider.Platform()] = provider
}

// Get returns the provider for a platform
func (r *Registry) Get(platform thread.Platform) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, ok := r.providers[platform]
	return provider, ok
}

// FetchThread resolves the reference's platform and fetches its thread
func (r *Registry) FetchThread(ctx context.Context, ref Ref) (*thread.ThreadContext, error) {
	provider, ok := r.Get(ref.Platform)
	if !ok {
		return nil, fmt.Errorf("no provider registered for platform %q", ref.Platform)
	}

	return provider.FetchThread(ctx, ref)
}

// ParseRef parses a post reference from user input: a raw AT-URI, a
// bsky.app post URL, or a Mastodon status URL.
func ParseRef(raw string) (Ref, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Ref{}, fmt.Errorf("empty post reference")
	}

	if strings.HasPrefix(raw, "at://") {
		return Ref{Platform: thread.PlatformBluesky, ID: raw}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Ref{}, fmt.Errorf("failed to parse post reference %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Ref{}, fmt.Errorf("unsupported post reference %q", raw)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	// bsky.app/profile/<handle>/post/<rkey>
	if u.Host == "bsky.app" && len(segments) == 4 && segments[0] == "profile" && segments[2] == "post" {
		return Ref{
			Platform: thread.PlatformBluesky,
			ID:       fmt.Sprintf("at://%s/app.bsky.feed.post/%s", segments[1], segments[3]),
		}, nil
	}

	// Mastodon status URLs: /@user/<id> or /users/<user>/statuses/<id>
	if len(segments) >= 2 {
		last := segments[len(segments)-1]
		if isDigits(last) {
			return Ref{
				Platform: thread.PlatformMastodon,
				ID:       last,
				Server:   fmt.Sprintf("%s://%s", u.Scheme, u.Host),
			}, nil
		}
	}

	return Ref{}, fmt.Errorf("unrecognized post reference %q", raw)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
