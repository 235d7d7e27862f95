package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	apiKey             string
	settingsPath       string
	summaryPromptPath  string
	listenerPromptPath string
	scriptPromptPath   string
	debugMode          bool

	serveAddr       string
	numArticles     int
	listenerMessage string
)

var rootCmd = &cobra.Command{
	Use:   "podcast-writer",
	Short: "Podcast script generation from trending news using AI",
	Long:  `Looks up trending news for a topic, summarizes the articles and writes a podcast script.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugMode {
			SetDebugMode(true)
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve POST /generate_podcast",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		config, processor := mustBuildProcessor()

		addr := config.Settings.Server.Address
		if serveAddr != "" {
			addr = serveAddr
		}

		r := SetupRouter(processor)
		log.Printf("Starting server on %s", addr)
		if err := r.Run(addr); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate a single podcast script and print it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, processor := mustBuildProcessor()

		req := PodcastRequest{
			Topic:           args[0],
			NumArticles:     numArticles,
			ListenerMessage: listenerMessage,
		}

		script, err := processor.Generate(context.Background(), req)
		if err != nil {
			log.Fatalf("Processing failed: %v", err)
		}
		fmt.Println(script)
	},
}

var feedCmd = &cobra.Command{
	Use:   "feed <topic>",
	Short: "Print the trending article links for a topic",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := mustLoadConfig()

		links, err := NewFeedLookup(config.Settings.Feed.URLTemplate).TrendingArticles(context.Background(), args[0], numArticles)
		if err != nil {
			log.Fatalf("Feed lookup failed: %v", err)
		}
		fmt.Println(strings.Join(links, "\n"))
	},
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize <url>",
	Short: "Summarize a single article",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := mustLoadConfig()
		agents := NewPodcastAgents(mustGenerator(config), NewContentFetcher(config.Settings.Article.Format), config)

		summary, err := agents.Summarize(context.Background(), args[0])
		if err != nil {
			log.Fatalf("Summarization failed: %v", err)
		}
		fmt.Println(summary)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings and prompts to " + defaultConfigDir,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		written, err := ensureConfigExists(defaultConfigDir)
		if err != nil {
			log.Fatalf("Init failed: %v", err)
		}
		for _, path := range written {
			log.Printf("✓ Wrote %s", path)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Anthropic API key")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Path to settings YAML file")
	rootCmd.PersistentFlags().StringVar(&summaryPromptPath, "summary-prompt", "", "Path to custom summary prompt file")
	rootCmd.PersistentFlags().StringVar(&listenerPromptPath, "listener-prompt", "", "Path to custom listener reply prompt file")
	rootCmd.PersistentFlags().StringVar(&scriptPromptPath, "script-prompt", "", "Path to custom script prompt file")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.address)")

	generateCmd.Flags().IntVarP(&numArticles, "num-articles", "n", defaultNumArticles, "Number of articles to summarize")
	generateCmd.Flags().StringVarP(&listenerMessage, "message", "m", "", "Listener message to reply to")

	feedCmd.Flags().IntVarP(&numArticles, "num-articles", "n", defaultNumArticles, "Number of links to print")

	rootCmd.AddCommand(serveCmd, generateCmd, feedCmd, summarizeCmd, initCmd)
}

// configOverrides collects file overrides from flags, falling back to prompts written by init
func configOverrides() *ConfigOverrides {
	overrides := &ConfigOverrides{}
	if settingsPath != "" {
		overrides.SettingsPath = &settingsPath
	}
	overrides.SummaryPromptPath = promptOverride(summaryPromptPath, "summary-prompt.md")
	overrides.ListenerPromptPath = promptOverride(listenerPromptPath, "listener-prompt.md")
	overrides.ScriptPromptPath = promptOverride(scriptPromptPath, "script-prompt.md")
	return overrides
}

func promptOverride(flagValue, filename string) *string {
	if flagValue != "" {
		return &flagValue
	}
	path := getConfigPath(filename)
	if _, err := os.Stat(path); err == nil {
		return &path
	}
	return nil
}

func mustLoadConfig() *Config {
	config, err := NewConfig(configOverrides())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return config
}

func mustGenerator(config *Config) Generator {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		log.Fatal("API key required: use --api-key flag or ANTHROPIC_API_KEY environment variable")
	}

	generator, err := NewAnthropicGenerator(apiKey, config.Settings)
	if err != nil {
		log.Fatalf("Failed to create generator: %v", err)
	}
	return generator
}

func mustBuildProcessor() (*Config, *PodcastProcessor) {
	config := mustLoadConfig()
	agents := NewPodcastAgents(mustGenerator(config), NewContentFetcher(config.Settings.Article.Format), config)
	processor := NewPodcastProcessor(
		NewFeedLookup(config.Settings.Feed.URLTemplate),
		agents,
		config.Settings.Pipeline.SummaryConcurrency,
	)
	return config, processor
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
