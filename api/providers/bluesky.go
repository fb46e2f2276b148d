package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bluesky-social/indigo/api/atproto"
	"github.com/bluesky-social/indigo/api/bsky"
	"github.com/bluesky-social/indigo/xrpc"

	"github.com/pojntfx/sharecard/api/thread"
)

const (
	// How far up and down getPostThread is asked to hydrate; the slicer
	// prunes far below these anyway
	blueskyParentHeight = 20
	blueskyThreadDepth  = 10
)

// BlueskyConfig holds configuration for the Bluesky thread provider
type BlueskyConfig struct {
	Server     string `yaml:"server"`
	Identifier string `yaml:"identifier"`
	Password   string `yaml:"password"`
}

// BlueskyProvider fetches thread contexts from a Bluesky PDS
type BlueskyProvider struct {
	config     BlueskyConfig
	client     *xrpc.Client
	authorized bool
}

// NewBluesky creates a new Bluesky thread provider
func NewBluesky(config BlueskyConfig) *BlueskyProvider {
	if config.Server == "" {
		config.Server = "https://bsky.social"
	}

	return &BlueskyProvider{
		config: config,
		client: &xrpc.Client{
			Host: config.Server,
			Client: &http.Client{
				Timeout: 30 * time.Second,
			},
		},
	}
}

// Platform returns the platform name
func (b *BlueskyProvider) Platform() thread.Platform {
	return thread.PlatformBluesky
}

// authorize authenticates with Bluesky and stores the session
func (b *BlueskyProvider) authorize(ctx context.Context) error {
	if b.authorized {
		return nil
	}

	session, err := atproto.ServerCreateSession(ctx, b.client, &atproto.ServerCreateSession_Input{
		Identifier: b.config.Identifier,
		Password:   b.config.Password,
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b.client.Auth = &xrpc.AuthInfo{
		AccessJwt:  session.AccessJwt,
		RefreshJwt: session.RefreshJwt,
		Handle:     session.Handle,
		Did:        session.Did,
	}
	b.authorized = true

	return nil
}

// FetchThread fetches the post thread and flattens the recursive view
// into a thread context: parents above the post become ancestors, the
// reply tree below becomes descendants
func (b *BlueskyProvider) FetchThread(ctx context.Context, ref Ref) (*thread.ThreadContext, error) {
	if err := b.authorize(ctx); err != nil {
		return nil, err
	}

	resp, err := bsky.FeedGetPostThread(ctx, b.client, blueskyThreadDepth, blueskyParentHeight, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post thread %s: %w", ref.ID, err)
	}

	if resp.Thread == nil || resp.Thread.FeedDefs_ThreadViewPost == nil {
		return nil, fmt.Errorf("post thread %s is not viewable", ref.ID)
	}

	view := resp.Thread.FeedDefs_ThreadViewPost

	tc := &thread.ThreadContext{
		MainPost: postViewToPost(view.Post),
	}

	// Walk the parent chain upward, then reverse into oldest-first order
	var parents []*thread.Post
	for parent := view.Parent; parent != nil && parent.FeedDefs_ThreadViewPost != nil; parent = parent.FeedDefs_ThreadViewPost.Parent {
		if p := postViewToPost(parent.FeedDefs_ThreadViewPost.Post); p != nil {
			parents = append(parents, p)
		}
	}
	for i := len(parents) - 1; i >= 0; i-- {
		tc.Ancestors = append(tc.Ancestors, parents[i])
	}

	collectReplies(view.Replies, tc)

	return tc, nil
}

// collectReplies flattens the reply tree depth-first into descendants
func collectReplies(replies []*bsky.FeedDefs_ThreadViewPost_Replies_Elem, tc *thread.ThreadContext) {
	for _, reply := range replies {
		if reply == nil || reply.FeedDefs_ThreadViewPost == nil {
			continue
		}

		view := reply.FeedDefs_ThreadViewPost
		if p := postViewToPost(view.Post); p != nil {
			tc.Descendants = append(tc.Descendants, p)
		}

		collectReplies(view.Replies, tc)
	}
}

// postViewToPost maps a hydrated Bluesky post view to the slicing
// pipeline's post type
func postViewToPost(view *bsky.FeedDefs_PostView) *thread.Post {
	if view == nil {
		return nil
	}

	p := &thread.Post{
		ID:         view.Uri,
		PlatformID: view.Cid,
		Platform:   thread.PlatformBluesky,
	}

	if view.Author != nil {
		p.AuthorID = view.Author.Did
		p.AuthorHandle = view.Author.Handle
		if view.Author.DisplayName != nil {
			p.AuthorName = *view.Author.DisplayName
		}
		if p.AuthorName == "" {
			p.AuthorName = view.Author.Handle
		}
		if view.Author.Avatar != nil {
			p.AuthorAvatar = *view.Author.Avatar
		}
	}

	if view.LikeCount != nil {
		p.Likes = int(*view.LikeCount)
	}
	if view.RepostCount != nil {
		p.Reposts = int(*view.RepostCount)
	}
	if view.ReplyCount != nil {
		p.Replies = int(*view.ReplyCount)
	}

	if view.Record != nil {
		if record, ok := view.Record.Val.(*bsky.FeedPost); ok {
			p.Content = record.Text

			if createdAt, err := time.Parse(time.RFC3339, record.CreatedAt); err == nil {
				p.CreatedAt = createdAt
			}

			if record.Reply != nil && record.Reply.Parent != nil {
				p.InReplyToID = record.Reply.Parent.Uri
			}

			applyEmbed(p, record.Embed)
		}
	}

	return p
}

// applyEmbed maps a post record's embed into media, link-preview, and
// quote fields
func applyEmbed(p *thread.Post, embed *bsky.FeedPost_Embed) {
	if embed == nil {
		return
	}

	if embed.EmbedImages != nil {
		p.MediaCount = len(embed.EmbedImages.Images)
	}

	if embed.EmbedExternal != nil && embed.EmbedExternal.External != nil {
		external := embed.EmbedExternal.External
		p.Link = &thread.LinkPreview{
			URL:         external.Uri,
			Title:       external.Title,
			Description: external.Description,
		}
	}

	if embed.EmbedRecord != nil && embed.EmbedRecord.Record != nil {
		// The quoted record is hydrated separately; keep the reference
		p.Quoted = &thread.Post{
			ID:       embed.EmbedRecord.Record.Uri,
			Platform: thread.PlatformBluesky,
		}
	}

	if embed.EmbedRecordWithMedia != nil && embed.EmbedRecordWithMedia.Record != nil &&
		embed.EmbedRecordWithMedia.Record.Record != nil {
		p.Quoted = &thread.Post{
			ID:       embed.EmbedRecordWithMedia.Record.Record.Uri,
			Platform: thread.PlatformBluesky,
		}
	}
}
