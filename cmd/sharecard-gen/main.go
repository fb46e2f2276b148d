package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pojntfx/sharecard/api/providers"
	"github.com/pojntfx/sharecard/api/sharecard"
	"github.com/pojntfx/sharecard/api/thread"
	"github.com/pojntfx/sharecard/pkg/renderplan"
	"github.com/pojntfx/sharecard/pkg/threadcache"
)

func main() {
	verbosity := flag.String("verbosity", "info", "Log level (debug, info, warn, error)")
	accountsFile := flag.String("accounts", filepath.Join("data", "accounts.yaml"), "Accounts configuration file")
	ref := flag.String("ref", "", "Post reference: Mastodon status URL, bsky.app post URL, or AT-URI")
	comment := flag.String("comment", "", "ID of the comment to share instead of the post itself")

	includeEarlier := flag.Bool("earlier", true, "Include the ancestor chain above the selected comment")
	includeLater := flag.Bool("later", true, "Include replies below the shared post or comment")
	hideUsernames := flag.Bool("anonymize", false, "Replace author identities with User N labels")
	showWatermark := flag.Bool("watermark", true, "Render the watermark on page 1")
	shortSide := flag.Float64("short-side", 1080, "Canvas short side in pixels")

	cachePath := flag.String("cache", "", "Thread cache database path (empty to disable caching)")
	cacheTTL := flag.Duration("cache-ttl", 15*time.Minute, "How long cached threads stay fresh")
	format := flag.String("format", "yaml", "Output format (yaml or json)")

	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*verbosity)); err != nil {
		panic(err)
	}

	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	if *ref == "" {
		log.Error("Post reference is required")
		os.Exit(1)
	}

	postRef, err := providers.ParseRef(*ref)
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("Reading accounts configuration", "file", *accountsFile)

	config, err := providers.LoadConfig(*accountsFile)
	if err != nil {
		panic(err)
	}
	registry := config.NewRegistry()

	tc, err := fetchThread(ctx, log, registry, postRef, *cachePath, *cacheTTL)
	if err != nil {
		panic(err)
	}

	shareConfig := sharecard.Config{
		IncludeEarlier:     *includeEarlier,
		IncludeLater:       *includeLater,
		HideUsernames:      *hideUsernames,
		ShowWatermark:      *showWatermark,
		IncludePostDetails: true,
	}

	doc := buildDocument(tc, *comment, shareConfig)

	log.Info("Built share document",
		"comments", doc.CommentCount(),
		"selectedComment", doc.SelectedCommentID)

	plan := renderplan.Build(doc, *shortSide, nil)

	log.Info("Selected canvas preset",
		"preset", plan.Preset,
		"pages", len(plan.Pages),
		"paginated", plan.ShouldPaginate)

	var output []byte
	if *format == "json" {
		output, err = json.MarshalIndent(plan, "", "  ")
	} else {
		output, err = yaml.Marshal(plan)
	}
	if err != nil {
		panic(err)
	}

	fmt.Print(string(output))
}

// fetchThread resolves the thread context, going through the cache when
// one is configured
func fetchThread(
	ctx context.Context,
	log *slog.Logger,
	registry *providers.Registry,
	ref providers.Ref,
	cachePath string,
	cacheTTL time.Duration,
) (*thread.ThreadContext, error) {
	if cachePath == "" {
		log.Info("Fetching thread", "ref", ref.String())

		return registry.FetchThread(ctx, ref)
	}

	cache, err := threadcache.Open(cachePath)
	if err != nil {
		return nil, err
	}
	defer cache.Close()

	if tc, ok, err := cache.Get(ctx, ref.String(), cacheTTL); err != nil {
		return nil, err
	} else if ok {
		log.Info("Using cached thread", "ref", ref.String())
		return tc, nil
	}

	log.Info("Fetching thread", "ref", ref.String())

	tc, err := registry.FetchThread(ctx, ref)
	if err != nil {
		return nil, err
	}

	if err := cache.Put(ctx, ref.String(), tc); err != nil {
		log.Warn("Failed to cache thread", "error", err)
	}

	return tc, nil
}

// buildDocument builds the share document for either the main post or a
// selected comment within the thread
func buildDocument(tc *thread.ThreadContext, commentID string, config sharecard.Config) *sharecard.Document {
	builder := sharecard.NewBuilder()
	mapping := sharecard.NewUserMapping()

	if commentID != "" {
		for _, p := range tc.AllPosts() {
			if thread.MatchesPost(commentID, p) {
				return builder.BuildCommentDocument(p, tc, config, mapping)
			}
		}
	}

	return builder.BuildDocument(tc.MainPost, tc, config, mapping)
}
