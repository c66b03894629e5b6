package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/mmukex/techpulse/internal/config"
)

type Fetcher struct {
	parser      *gofeed.Parser
	timeout     time.Duration
	concurrency int
	log         *slog.Logger
}

func NewFetcher(cfg config.FetchConfig, log *slog.Logger) *Fetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = cfg.UserAgent

	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Fetcher{
		parser:      parser,
		timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
		concurrency: concurrency,
		log:         log,
	}
}

// Fetch retrieves and parses a single feed. Entries without a title or
// link are skipped.
func (f *Fetcher) Fetch(ctx context.Context, src config.Feed) ([]Article, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	parsed, err := f.parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", src.Name, err)
	}

	var articles []Article
	for _, item := range parsed.Items {
		article, ok := newArticle(
			item.Title,
			item.Link,
			itemDescription(item),
			itemPublished(item),
			src.Name,
			src.Category,
			itemAuthor(item, parsed),
			src.Priority,
		)
		if !ok {
			f.log.Debug("skipping entry without title or link", "feed", src.Name)
			continue
		}
		articles = append(articles, article)
	}

	return articles, nil
}

// FetchAll retrieves every configured feed with bounded concurrency.
// A failing feed is logged and contributes nothing; the remaining feeds
// are unaffected. The result is sorted newest first, undated articles last.
func (f *Fetcher) FetchAll(ctx context.Context, sources []config.Feed) []Article {
	f.log.Info("fetching feeds", "feeds", len(sources), "workers", f.concurrency)

	perFeed := make([][]Article, len(sources))

	var wg sync.WaitGroup
	sem := make(chan struct{}, f.concurrency)

	for i, src := range sources {
		wg.Add(1)
		go func(i int, src config.Feed) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			articles, err := f.Fetch(ctx, src)
			if err != nil {
				f.log.Warn("feed fetch failed", "feed", src.Name, "error", err)
				return
			}

			f.log.Info("feed fetched", "feed", src.Name, "articles", len(articles))
			perFeed[i] = articles
		}(i, src)
	}

	wg.Wait()

	// Flatten in configuration order so repeated runs over the same input
	// produce identical output regardless of fetch completion order.
	var all []Article
	succeeded := 0
	for _, articles := range perFeed {
		if articles != nil {
			succeeded++
		}
		all = append(all, articles...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return publishedOrZero(all[i]).After(publishedOrZero(all[j]))
	})

	f.log.Info("fetch complete", "succeeded", succeeded, "failed", len(sources)-succeeded, "articles", len(all))
	return all
}

func publishedOrZero(a Article) time.Time {
	if a.Published == nil {
		return time.Time{}
	}
	return *a.Published
}

// itemDescription prefers the summary field and falls back to full
// content, mirroring how RSS and Atom feeds spread this across fields.
func itemDescription(item *gofeed.Item) string {
	if item.Description != "" {
		return item.Description
	}
	return item.Content
}

func itemPublished(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed
	}
	return item.UpdatedParsed
}

func itemAuthor(item *gofeed.Item, parsed *gofeed.Feed) string {
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	if len(parsed.Authors) > 0 && parsed.Authors[0] != nil {
		return parsed.Authors[0].Name
	}
	return ""
}
