package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pojntfx/sharecard/api/providers"
	"github.com/pojntfx/sharecard/api/sharecard"
	"github.com/pojntfx/sharecard/api/thread"
	"github.com/pojntfx/sharecard/pkg/renderplan"
	"github.com/pojntfx/sharecard/pkg/threadcache"
)

// RegistryHolder swaps the provider registry when the accounts file
// changes, with debouncing so rapid saves reload once
type RegistryHolder struct {
	accountsFile string
	mu           sync.RWMutex
	registry     *providers.Registry
	debounce     time.Duration
}

func NewRegistryHolder(accountsFile string) *RegistryHolder {
	return &RegistryHolder{
		accountsFile: accountsFile,
		debounce:     2 * time.Second, // Wait 2 seconds after last change before reloading
	}
}

func (h *RegistryHolder) Reload() error {
	config, err := providers.LoadConfig(h.accountsFile)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.registry = config.NewRegistry()
	h.mu.Unlock()

	return nil
}

func (h *RegistryHolder) TriggerReload() {
	// Debounce: wait a bit before reloading to batch rapid changes
	time.AfterFunc(h.debounce, func() {
		if err := h.Reload(); err != nil {
			log.Printf("Accounts reload failed: %v", err)

			return
		}

		log.Println("Reloaded accounts configuration")
	})
}

func (h *RegistryHolder) Registry() *providers.Registry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.registry
}

func main() {
	laddr := flag.String("laddr", "localhost:1316", "Listen address for the preview server")
	accountsFile := flag.String("accounts", filepath.Join("data", "accounts.yaml"), "Accounts configuration file")

	cachePath := flag.String("cache", "", "Thread cache database path (empty to disable caching)")
	cacheTTL := flag.Duration("cache-ttl", 15*time.Minute, "How long cached threads stay fresh")

	verbose := flag.Bool("verbose", false, "Enable verbose logging")

	flag.Parse()

	holder := NewRegistryHolder(*accountsFile)
	if err := holder.Reload(); err != nil {
		log.Fatalf("Initial accounts load failed: %v", err)
	}

	// Set up file watcher for the accounts file
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("Failed to create file watcher: %v", err)
	}
	defer watcher.Close()

	// Watch the directory; editors often replace the file on save, which
	// would orphan a watch on the file itself
	if err := watcher.Add(filepath.Dir(*accountsFile)); err != nil {
		log.Printf("Warning: Failed to watch accounts directory: %v", err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(*accountsFile) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					log.Printf("Accounts file changed: %s", event.Name)

					holder.TriggerReload()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Watcher error: %v", err)
			}
		}
	}()

	var cache *threadcache.Cache
	if *cachePath != "" {
		cache, err = threadcache.Open(*cachePath)
		if err != nil {
			log.Fatalf("Failed to open thread cache: %v", err)
		}
		defer cache.Close()
	}

	mux := http.NewServeMux()
	mux.Handle("/card", createCardHandler(holder, cache, *cacheTTL, *verbose))

	log.Println("Preview server listening on", *laddr)
	panic(http.ListenAndServe(*laddr, mux))
}

// createCardHandler creates the handler that fetches a thread, builds
// the share document, and returns the full render plan as JSON
func createCardHandler(holder *RegistryHolder, cache *threadcache.Cache, cacheTTL time.Duration, verbose bool) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(rw, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		query := r.URL.Query()

		ref, err := providers.ParseRef(query.Get("ref"))
		if err != nil {
			http.Error(rw, err.Error(), http.StatusBadRequest)
			return
		}

		if verbose {
			log.Println("Building card for", ref.String())
		}

		tc, err := lookupThread(r.Context(), holder.Registry(), cache, cacheTTL, ref)
		if err != nil {
			log.Println("Could not fetch thread:", err)
			http.Error(rw, err.Error(), http.StatusBadGateway)
			return
		}

		config := sharecard.DefaultConfig()
		config.IncludeEarlier = boolParam(query.Get("earlier"), config.IncludeEarlier)
		config.IncludeLater = boolParam(query.Get("later"), config.IncludeLater)
		config.HideUsernames = boolParam(query.Get("anon"), config.HideUsernames)
		config.ShowWatermark = boolParam(query.Get("watermark"), config.ShowWatermark)

		shortSide := 1080.0
		if raw := query.Get("shortSide"); raw != "" {
			if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 {
				shortSide = parsed
			}
		}

		builder := sharecard.NewBuilder()
		mapping := sharecard.NewUserMapping()

		doc := buildRequestedDocument(builder, tc, query.Get("comment"), config, mapping)

		plan := renderplan.Build(doc, shortSide, nil)

		rw.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(rw).Encode(plan); err != nil {
			log.Println("Could not send result to client:", err)
		}
	})
}

// lookupThread fetches the thread context, consulting the cache first
// when one is configured
func lookupThread(
	ctx context.Context,
	registry *providers.Registry,
	cache *threadcache.Cache,
	cacheTTL time.Duration,
	ref providers.Ref,
) (*thread.ThreadContext, error) {
	if cache == nil {
		return registry.FetchThread(ctx, ref)
	}

	if tc, ok, err := cache.Get(ctx, ref.String(), cacheTTL); err != nil {
		return nil, err
	} else if ok {
		return tc, nil
	}

	tc, err := registry.FetchThread(ctx, ref)
	if err != nil {
		return nil, err
	}

	if err := cache.Put(ctx, ref.String(), tc); err != nil {
		log.Println("Could not cache thread:", err)
	}

	return tc, nil
}

// buildRequestedDocument builds the document for the main post, or for
// a selected comment when the request names one found in the thread
func buildRequestedDocument(
	builder *sharecard.Builder,
	tc *thread.ThreadContext,
	commentID string,
	config sharecard.Config,
	mapping *sharecard.UserMapping,
) *sharecard.Document {
	if commentID != "" {
		for _, p := range tc.AllPosts() {
			if thread.MatchesPost(commentID, p) {
				return builder.BuildCommentDocument(p, tc, config, mapping)
			}
		}
	}

	return builder.BuildDocument(tc.MainPost, tc, config, mapping)
}

func boolParam(raw string, fallback bool) bool {
	if raw == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}

	return parsed
}
