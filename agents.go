package main

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"
)

// maxArticleChars caps the article text submitted for summarization
const maxArticleChars = 1000

// ContentSource fetches the text of a page
type ContentSource interface {
	FetchContent(ctx context.Context, url string) (*ContentResult, error)
}

// PodcastAgents fills the prompt templates and runs them through the generator
type PodcastAgents struct {
	generator   Generator
	fetcher     ContentSource
	config      *Config
	temperature float64
}

// NewPodcastAgents creates the summarizer, listener responder and script composer
func NewPodcastAgents(generator Generator, fetcher ContentSource, config *Config) *PodcastAgents {
	return &PodcastAgents{
		generator:   generator,
		fetcher:     fetcher,
		config:      config,
		temperature: config.Settings.Generator.Temperature,
	}
}

// Summarize fetches url and asks for a three-sentence summary of its first maxArticleChars characters
func (pa *PodcastAgents) Summarize(ctx context.Context, url string) (string, error) {
	log.Printf("→ Summarizing %s", url)
	content, err := pa.fetcher.FetchContent(ctx, url)
	if err != nil {
		return "", err
	}

	prompt := strings.ReplaceAll(pa.config.GetSummaryPrompt(), textPlaceholder, truncateChars(content.Text, maxArticleChars))
	summary, err := pa.generator.Generate(prompt, pa.temperature)
	if err != nil {
		return "", err
	}

	log.Printf("✓ Summarized %s", url)
	return summary, nil
}

// RespondToListener writes a host-style reply to a listener message
func (pa *PodcastAgents) RespondToListener(message string) (string, error) {
	log.Printf("→ Replying to listener...")
	prompt := strings.ReplaceAll(pa.config.GetListenerPrompt(), messagePlaceholder, message)
	reply, err := pa.generator.Generate(prompt, pa.temperature)
	if err != nil {
		return "", err
	}

	log.Printf("✓ Listener reply written")
	return reply, nil
}

// ComposeScript assembles the five-part script from the summaries and the listener reply
func (pa *PodcastAgents) ComposeScript(summaries []string, listenerReply string) (string, error) {
	log.Printf("→ Composing script from %d summaries...", len(summaries))
	prompt := strings.NewReplacer(
		summariesPlaceholder, strings.Join(summaries, "\n"),
		listenerReplyPlaceholder, listenerReply,
	).Replace(pa.config.GetScriptPrompt())

	script, err := pa.generator.Generate(prompt, pa.temperature)
	if err != nil {
		return "", err
	}

	log.Printf("✓ Script composed")
	return script, nil
}

// truncateChars keeps the first n characters of s
func truncateChars(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
