package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"
)

// FeedLookup finds trending article links for a topic in a news feed
type FeedLookup struct {
	urlTemplate string
	client      *http.Client
}

// NewFeedLookup creates a lookup against the feed URL template, which must contain {{.topic}}
func NewFeedLookup(urlTemplate string) *FeedLookup {
	return &FeedLookup{
		urlTemplate: urlTemplate,
		client:      &http.Client{},
	}
}

// FeedURL substitutes the topic into the template as-is, without escaping
func (f *FeedLookup) FeedURL(topic string) string {
	return strings.ReplaceAll(f.urlTemplate, topicPlaceholder, topic)
}

// TrendingArticles returns up to count entry links in feed order.
// An unreachable or unparsable feed yields no links.
func (f *FeedLookup) TrendingArticles(ctx context.Context, topic string, count int) ([]string, error) {
	feedURL := f.FeedURL(topic)
	log.Printf("→ Looking up feed: %s", feedURL)

	fp := gofeed.NewParser()
	fp.Client = f.client
	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		// A canceled request is the caller's failure, not the feed's.
		if ctx.Err() != nil {
			return nil, fmt.Errorf("parsing feed %s: %w", feedURL, ctx.Err())
		}
		log.Printf("✗ Feed unavailable, continuing without articles: %v", err)
		return []string{}, nil
	}

	links := make([]string, 0, max(count, 0))
	for _, item := range feed.Items {
		if len(links) >= count {
			break
		}
		links = append(links, item.Link)
	}

	log.Printf("✓ Found %d of %d entries", len(links), len(feed.Items))
	return links, nil
}
