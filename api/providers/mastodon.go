package providers

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/mattn/go-mastodon"

	"github.com/pojntfx/sharecard/api/thread"
)

var (
	lineBreakPattern = regexp.MustCompile(`(?i)<br\s*/?>|</p>`)
	htmlTagPattern   = regexp.MustCompile(`<[^>]+>`)
)

// MastodonConfig holds configuration for the Mastodon thread provider
type MastodonConfig struct {
	Server       string `yaml:"server"`
	ClientID     string `yaml:"clientId"`
	ClientSecret string `yaml:"clientSecret"`
	AccessToken  string `yaml:"accessToken"`
}

// MastodonProvider fetches thread contexts from a Mastodon instance
type MastodonProvider struct {
	config MastodonConfig
	client *mastodon.Client
}

// NewMastodon creates a new Mastodon thread provider
func NewMastodon(config MastodonConfig) *MastodonProvider {
	client := mastodon.NewClient(&mastodon.Config{
		Server:       config.Server,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		AccessToken:  config.AccessToken,
	})

	return &MastodonProvider{
		config: config,
		client: client,
	}
}

// Platform returns the platform name
func (m *MastodonProvider) Platform() thread.Platform {
	return thread.PlatformMastodon
}

// FetchThread fetches the status and its context (ancestors and
// descendants) and maps them into a thread context
func (m *MastodonProvider) FetchThread(ctx context.Context, ref Ref) (*thread.ThreadContext, error) {
	status, err := m.client.GetStatus(ctx, mastodon.ID(ref.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch status %s: %w", ref.ID, err)
	}

	statusContext, err := m.client.GetStatusContext(ctx, mastodon.ID(ref.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch status context for %s: %w", ref.ID, err)
	}

	tc := &thread.ThreadContext{
		MainPost: statusToPost(status),
	}
	for _, s := range statusContext.Ancestors {
		tc.Ancestors = append(tc.Ancestors, statusToPost(s))
	}
	for _, s := range statusContext.Descendants {
		tc.Descendants = append(tc.Descendants, statusToPost(s))
	}

	return tc, nil
}

// statusToPost maps a Mastodon status to the slicing pipeline's post type
func statusToPost(s *mastodon.Status) *thread.Post {
	if s == nil {
		return nil
	}

	p := &thread.Post{
		ID:           string(s.ID),
		Platform:     thread.PlatformMastodon,
		AuthorID:     string(s.Account.ID),
		AuthorHandle: s.Account.Acct,
		AuthorName:   s.Account.DisplayName,
		AuthorAvatar: s.Account.Avatar,
		Content:      stripHTML(s.Content),
		URL:          s.URL,
		CreatedAt:    s.CreatedAt,
		Likes:        int(s.FavouritesCount),
		Reposts:      int(s.ReblogsCount),
		Replies:      int(s.RepliesCount),
		InReplyToID:  idString(s.InReplyToID),
		MediaCount:   len(s.MediaAttachments),
	}

	if p.AuthorName == "" {
		p.AuthorName = s.Account.Username
	}

	if s.Reblog != nil {
		p.Original = statusToPost(s.Reblog)
	}

	if s.Card != nil && s.Card.URL != "" {
		p.Link = &thread.LinkPreview{
			URL:         s.Card.URL,
			Title:       s.Card.Title,
			Description: s.Card.Description,
			ImageURL:    s.Card.Image,
		}
	}

	return p
}

// idString normalizes Mastodon's loosely-typed status ID fields, which
// decode as strings or numbers depending on the instance
func idString(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case mastodon.ID:
		return string(id)
	case float64:
		return fmt.Sprintf("%.0f", id)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", id)
	}
}

// stripHTML flattens Mastodon's HTML content to the plain text the card
// renders
func stripHTML(content string) string {
	text := lineBreakPattern.ReplaceAllString(content, "\n")
	text = htmlTagPattern.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	return strings.TrimSpace(text)
}
