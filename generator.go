package main

import (
	"errors"
	"fmt"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"
)

// Generator turns a prompt into text at the given sampling temperature
type Generator interface {
	Generate(prompt string, temperature float64) (string, error)
}

// AnthropicGenerator is a stateless Generator backed by the Anthropic API
type AnthropicGenerator struct {
	apiKey       string
	model        string
	maxTokens    int
	systemPrompt string
}

// NewAnthropicGenerator creates a generator holding the credential for the life of the process
func NewAnthropicGenerator(apiKey string, settings *Settings) (*AnthropicGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("creating generator: API key is empty")
	}

	return &AnthropicGenerator{
		apiKey:       apiKey,
		model:        settings.Generator.Model,
		maxTokens:    settings.Generator.MaxTokens,
		systemPrompt: settings.Generator.SystemPrompt,
	}, nil
}

// Generate sends a single prompt and returns the first text block verbatim
func (g *AnthropicGenerator) Generate(prompt string, temperature float64) (string, error) {
	settings := types.RequestSettings{
		Model:       g.model,
		MaxTokens:   g.maxTokens,
		Temperature: temperature,
	}
	debugLog("generating with %s (temperature %.2f, prompt %d bytes)", g.model, temperature, len(prompt))

	response, err := anthropic.PromptWithSettings(g.systemPrompt, prompt, "", g.apiKey, settings)
	if err != nil {
		return "", fmt.Errorf("text generation failed: %w", err)
	}

	if len(response.Content) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	return response.Content[0].Text, nil
}
