package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// ContentResult represents the result of fetching content
type ContentResult struct {
	Text string // visible text, or Markdown when the markdown format is configured
}

// ContentFetcher handles fetching and processing content from URLs
type ContentFetcher struct {
	handlers []ContentHandler
	client   *http.Client
}

// NewContentFetcher creates a new content fetcher with default handlers for the given article format
func NewContentFetcher(format string) *ContentFetcher {
	f := &ContentFetcher{
		client: &http.Client{},
	}

	// Register handlers (most specific first)
	f.AddHandler(&PlainTextHandler{})
	if format == formatMarkdown {
		f.AddHandler(&MarkdownHandler{converter: md.NewConverter("", true, nil)}) // fallback
	} else {
		f.AddHandler(&HTMLHandler{}) // fallback
	}

	return f
}

// AddHandler adds a content handler to the chain
func (f *ContentFetcher) AddHandler(handler ContentHandler) {
	f.handlers = append(f.handlers, handler)
}

// FetchContent fetches and processes content using handler chain
func (f *ContentFetcher) FetchContent(ctx context.Context, url string) (*ContentResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	// Error pages are parsed like any other document.
	if resp.StatusCode != http.StatusOK {
		log.Printf("Warning: HTTP %d for %s, summarizing the returned page", resp.StatusCode, url)
	}

	// Find handler based on URL + response headers
	for _, handler := range f.handlers {
		if handler.CanHandle(url, resp) {
			return handler.Handle(url, resp)
		}
	}

	return nil, fmt.Errorf("no handler found for %s", url)
}
