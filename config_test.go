package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestNewConfigDefaults(t *testing.T) {
	config, err := NewConfig(nil)
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}

	s := config.Settings
	if s.Server.Address != ":8000" {
		t.Errorf("server.address = %q, want :8000", s.Server.Address)
	}
	if s.Generator.Temperature != 0.7 {
		t.Errorf("generator.temperature = %v, want 0.7", s.Generator.Temperature)
	}
	if s.Feed.URLTemplate != "https://news.google.com/rss/search?q={{.topic}}&hl=ja&gl=JP&ceid=JP:ja" {
		t.Errorf("feed.url_template = %q", s.Feed.URLTemplate)
	}
	if s.Article.Format != formatText {
		t.Errorf("article.format = %q, want %q", s.Article.Format, formatText)
	}
	if s.Pipeline.SummaryConcurrency != 1 {
		t.Errorf("pipeline.summary_concurrency = %d, want 1", s.Pipeline.SummaryConcurrency)
	}
	if s.Generator.SystemPrompt != "" {
		t.Errorf("generator.system_prompt = %q, want empty", s.Generator.SystemPrompt)
	}
	if config.GetSummaryPrompt() != defaultSummaryPrompt {
		t.Error("GetSummaryPrompt() should return the embedded default")
	}
}

func TestNewConfigSettingsOverlay(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "settings.yaml", `
generator:
  model: claude-test
article:
  format: markdown
pipeline:
  summary_concurrency: 0
`)

	config, err := NewConfig(&ConfigOverrides{SettingsPath: &path})
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}

	s := config.Settings
	if s.Generator.Model != "claude-test" {
		t.Errorf("generator.model = %q, want claude-test", s.Generator.Model)
	}
	if s.Generator.Temperature != 0.7 {
		t.Errorf("generator.temperature = %v, want embedded 0.7", s.Generator.Temperature)
	}
	if s.Article.Format != formatMarkdown {
		t.Errorf("article.format = %q, want markdown", s.Article.Format)
	}
	if s.Pipeline.SummaryConcurrency != 1 {
		t.Errorf("summary_concurrency = %d, want floor of 1", s.Pipeline.SummaryConcurrency)
	}
}

func TestNewConfigErrors(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.yaml")
	badYAML := writeFile(t, dir, "bad.yaml", "server: [")
	badFormat := writeFile(t, dir, "format.yaml", "article:\n  format: pdf\n")
	badFeed := writeFile(t, dir, "feed.yaml", "feed:\n  url_template: https://example.com/rss\n")
	badSummary := writeFile(t, dir, "summary.md", "Summarize this.")
	badScript := writeFile(t, dir, "script.md", "Summaries: {{.summaries}}")

	tests := []struct {
		name      string
		overrides *ConfigOverrides
		errSubstr string
	}{
		{"explicit settings file missing", &ConfigOverrides{SettingsPath: &missing}, "failed to read settings file"},
		{"invalid YAML", &ConfigOverrides{SettingsPath: &badYAML}, "failed to parse settings YAML"},
		{"unknown article format", &ConfigOverrides{SettingsPath: &badFormat}, "article format must be"},
		{"feed template without topic", &ConfigOverrides{SettingsPath: &badFeed}, "url_template must contain {{.topic}}"},
		{"summary prompt without text", &ConfigOverrides{SummaryPromptPath: &badSummary}, "summary prompt template must contain {{.text}}"},
		{"script prompt without reply", &ConfigOverrides{ScriptPromptPath: &badScript}, "script prompt template must contain {{.listener_response}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.overrides)
			if err == nil {
				t.Fatal("NewConfig() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errSubstr) {
				t.Errorf("NewConfig() error = %q, want it to contain %q", err.Error(), tt.errSubstr)
			}
		})
	}
}

func TestPromptOverrides(t *testing.T) {
	dir := t.TempDir()
	summary := writeFile(t, dir, "summary.md", "Three sentences please: {{.text}}")
	listener := writeFile(t, dir, "listener.md", "Reply: {{.message}}")

	config, err := NewConfig(&ConfigOverrides{
		SummaryPromptPath:  &summary,
		ListenerPromptPath: &listener,
	})
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}

	if got := config.GetSummaryPrompt(); got != "Three sentences please: {{.text}}" {
		t.Errorf("GetSummaryPrompt() = %q", got)
	}
	if got := config.GetListenerPrompt(); got != "Reply: {{.message}}" {
		t.Errorf("GetListenerPrompt() = %q", got)
	}
	if got := config.GetScriptPrompt(); got != defaultScriptPrompt {
		t.Error("GetScriptPrompt() should return the embedded default without an override")
	}

	// Templates are read once, so later edits and deletions have no effect.
	writeFile(t, dir, "summary.md", "No placeholder anymore")
	if err := os.Remove(listener); err != nil {
		t.Fatal(err)
	}
	if got := config.GetSummaryPrompt(); got != "Three sentences please: {{.text}}" {
		t.Errorf("GetSummaryPrompt() after edit = %q", got)
	}
	if got := config.GetListenerPrompt(); got != "Reply: {{.message}}" {
		t.Errorf("GetListenerPrompt() after delete = %q", got)
	}
}

func TestPromptOverrideUnreadable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.md")

	_, err := NewConfig(&ConfigOverrides{ScriptPromptPath: &missing})
	if err == nil {
		t.Fatal("NewConfig() expected error for an unreadable prompt file")
	}
	if !strings.Contains(err.Error(), "failed to read prompt file "+missing) {
		t.Errorf("NewConfig() error = %q", err.Error())
	}
}

func TestEnsureConfigExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".podcast-writer")

	written, err := ensureConfigExists(dir)
	if err != nil {
		t.Fatalf("ensureConfigExists() error = %v", err)
	}
	if len(written) != 4 {
		t.Errorf("ensureConfigExists() wrote %d files, want 4", len(written))
	}

	custom := writeFile(t, dir, "settings.yaml", "server:\n  address: \":9000\"\n")

	written, err = ensureConfigExists(dir)
	if err != nil {
		t.Fatalf("second ensureConfigExists() error = %v", err)
	}
	if len(written) != 0 {
		t.Errorf("second run wrote %v, want nothing", written)
	}

	content, err := os.ReadFile(custom)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), ":9000") {
		t.Error("ensureConfigExists() overwrote an existing file")
	}

	config, err := NewConfig(&ConfigOverrides{SettingsPath: &custom})
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	if config.Settings.Server.Address != ":9000" {
		t.Errorf("server.address = %q, want :9000", config.Settings.Server.Address)
	}
}
