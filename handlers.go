package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// ContentHandler processes URLs based on response inspection
type ContentHandler interface {
	CanHandle(url string, resp *http.Response) bool
	Handle(url string, resp *http.Response) (*ContentResult, error)
}

var debugEnabled bool

// SetDebugMode enables or disables debug logging
func SetDebugMode(enabled bool) {
	debugEnabled = enabled
}

func debugLog(format string, args ...interface{}) {
	if debugEnabled {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// PlainTextHandler passes text/plain bodies through unchanged
type PlainTextHandler struct{}

func (h *PlainTextHandler) CanHandle(url string, resp *http.Response) bool {
	return strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain")
}

func (h *PlainTextHandler) Handle(url string, resp *http.Response) (*ContentResult, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return &ContentResult{Text: string(body)}, nil
}

// HTMLHandler extracts the visible text of an HTML page (fallback)
type HTMLHandler struct{}

func (h *HTMLHandler) CanHandle(url string, resp *http.Response) bool {
	return true // Always handles as fallback
}

func (h *HTMLHandler) Handle(url string, resp *http.Response) (*ContentResult, error) {
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML from %s: %w", url, err)
	}

	doc.Find("script, style, noscript, template").Remove()
	text := doc.Text()
	debugLog("extracted %d bytes of text from %s", len(text), url)

	return &ContentResult{Text: text}, nil
}

// MarkdownHandler converts HTML pages to Markdown (fallback)
type MarkdownHandler struct {
	converter *md.Converter
}

func (h *MarkdownHandler) CanHandle(url string, resp *http.Response) bool {
	return true // Always handles as fallback
}

func (h *MarkdownHandler) Handle(url string, resp *http.Response) (*ContentResult, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	markdown, err := h.converter.ConvertString(string(body))
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}

	return &ContentResult{Text: markdown}, nil
}
