package main

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigDir = ".podcast-writer"

	topicPlaceholder         = "{{.topic}}"
	textPlaceholder          = "{{.text}}"
	messagePlaceholder       = "{{.message}}"
	summariesPlaceholder     = "{{.summaries}}"
	listenerReplyPlaceholder = "{{.listener_response}}"

	formatText     = "text"
	formatMarkdown = "markdown"
)

// ConfigOverrides allows overriding embedded defaults with file paths
type ConfigOverrides struct {
	SettingsPath       *string
	SummaryPromptPath  *string
	ListenerPromptPath *string
	ScriptPromptPath   *string
}

// Embedded configuration files
//
//go:embed config/settings.yaml
var defaultSettings string

//go:embed config/summary-prompt.md
var defaultSummaryPrompt string

//go:embed config/listener-prompt.md
var defaultListenerPrompt string

//go:embed config/script-prompt.md
var defaultScriptPrompt string

// Settings represents the YAML configuration structure
type Settings struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Feed struct {
		URLTemplate string `yaml:"url_template"`
	} `yaml:"feed"`
	Generator struct {
		Model        string  `yaml:"model"`
		MaxTokens    int     `yaml:"max_tokens"`
		Temperature  float64 `yaml:"temperature"`
		SystemPrompt string  `yaml:"system_prompt"`
	} `yaml:"generator"`
	Article struct {
		Format string `yaml:"format"`
	} `yaml:"article"`
	Pipeline struct {
		SummaryConcurrency int `yaml:"summary_concurrency"`
	} `yaml:"pipeline"`
}

// Config holds configuration and overrides
type Config struct {
	Settings  *Settings
	Overrides *ConfigOverrides

	summaryPrompt  string
	listenerPrompt string
	scriptPrompt   string
}

// NewConfig loads settings and prompt templates once and validates them.
func NewConfig(overrides *ConfigOverrides) (*Config, error) {
	var settings *Settings
	var err error
	if overrides != nil && overrides.SettingsPath != nil {
		settings, err = loadSettings(*overrides.SettingsPath, true)
	} else {
		settings, err = loadSettings(getConfigPath("settings.yaml"), false)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	config := &Config{
		Settings:       settings,
		Overrides:      overrides,
		summaryPrompt:  defaultSummaryPrompt,
		listenerPrompt: defaultListenerPrompt,
		scriptPrompt:   defaultScriptPrompt,
	}
	if overrides != nil {
		prompts := []struct {
			path *string
			dst  *string
		}{
			{overrides.SummaryPromptPath, &config.summaryPrompt},
			{overrides.ListenerPromptPath, &config.listenerPrompt},
			{overrides.ScriptPromptPath, &config.scriptPrompt},
		}
		for _, p := range prompts {
			if p.path == nil {
				continue
			}
			content, err := os.ReadFile(*p.path)
			if err != nil {
				return nil, fmt.Errorf("failed to read prompt file %s: %w", *p.path, err)
			}
			*p.dst = string(content)
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// GetSummaryPrompt returns the summary prompt (from override file or embedded)
func (c *Config) GetSummaryPrompt() string {
	return c.summaryPrompt
}

// GetListenerPrompt returns the listener reply prompt (from override file or embedded)
func (c *Config) GetListenerPrompt() string {
	return c.listenerPrompt
}

// GetScriptPrompt returns the script prompt (from override file or embedded)
func (c *Config) GetScriptPrompt() string {
	return c.scriptPrompt
}

func (c *Config) validate() error {
	if !strings.Contains(c.Settings.Feed.URLTemplate, topicPlaceholder) {
		return fmt.Errorf("feed url_template must contain %s variable", topicPlaceholder)
	}

	switch c.Settings.Article.Format {
	case formatText, formatMarkdown:
	default:
		return fmt.Errorf("article format must be %q or %q, got %q", formatText, formatMarkdown, c.Settings.Article.Format)
	}

	required := []struct {
		name        string
		template    string
		placeholder string
	}{
		{"summary", c.summaryPrompt, textPlaceholder},
		{"listener", c.listenerPrompt, messagePlaceholder},
		{"script", c.scriptPrompt, summariesPlaceholder},
		{"script", c.scriptPrompt, listenerReplyPlaceholder},
	}
	for _, r := range required {
		if !strings.Contains(r.template, r.placeholder) {
			return fmt.Errorf("%s prompt template must contain %s variable", r.name, r.placeholder)
		}
	}
	return nil
}

// loadSettings overlays the settings file onto the embedded defaults.
// A missing file is an error only when required is set.
func loadSettings(settingsPath string, required bool) (*Settings, error) {
	var settings Settings
	if err := yaml.Unmarshal([]byte(defaultSettings), &settings); err != nil {
		return nil, fmt.Errorf("failed to parse embedded settings: %w", err)
	}

	data, err := os.ReadFile(settingsPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
		}
	case os.IsNotExist(err) && !required:
		debugLog("settings file %s not found, using embedded defaults", settingsPath)
	default:
		return nil, fmt.Errorf("failed to read settings file %s: %w", settingsPath, err)
	}

	if settings.Pipeline.SummaryConcurrency < 1 {
		log.Printf("Warning: pipeline.summary_concurrency is %d, defaulting to 1", settings.Pipeline.SummaryConcurrency)
		settings.Pipeline.SummaryConcurrency = 1
	}

	return &settings, nil
}

// getConfigPath returns the path to a config file in .podcast-writer directory
func getConfigPath(filename string) string {
	return filepath.Join(defaultConfigDir, filename)
}

// ensureConfigExists writes the embedded defaults into dir, keeping files that already exist.
func ensureConfigExists(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	files := []struct {
		name    string
		content string
	}{
		{"settings.yaml", defaultSettings},
		{"summary-prompt.md", defaultSummaryPrompt},
		{"listener-prompt.md", defaultListenerPrompt},
		{"script-prompt.md", defaultScriptPrompt},
	}

	var written []string
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
