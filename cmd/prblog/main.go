package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abuzarmahmood/pr-blog-bot/internal/article"
	"github.com/abuzarmahmood/pr-blog-bot/internal/config"
	"github.com/abuzarmahmood/pr-blog-bot/internal/console"
	"github.com/abuzarmahmood/pr-blog-bot/internal/gh"
	"github.com/abuzarmahmood/pr-blog-bot/internal/images"
	"github.com/abuzarmahmood/pr-blog-bot/internal/llm"
	"github.com/abuzarmahmood/pr-blog-bot/internal/logging"
	"github.com/abuzarmahmood/pr-blog-bot/internal/search"
)

var (
	flagRepo        string
	flagPR          int
	flagDirection   string
	flagOutput      string
	flagUpdate      string
	flagSkipSearch  bool
	flagSkipImage   bool
	flagIncludeDiff bool
)

var rootCmd = &cobra.Command{
	Use:          "prblog",
	Short:        "Generate a blog post from a GitHub pull request",
	Long:         "prblog fetches a pull request's metadata, commits, and diff, and drives an LLM to write a Markdown blog article about the change, optionally illustrated and enriched with web search results.",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagRepo, "repo", "", "repository in the format owner/name (or a repository URL)")
	rootCmd.Flags().IntVar(&flagPR, "pr", 0, "pull request number")
	rootCmd.Flags().StringVar(&flagDirection, "direction", "", "direction for the blog post")
	rootCmd.Flags().StringVar(&flagOutput, "output", "", "output file path (default: blog_post_<pr>_<date>.md)")
	rootCmd.Flags().StringVar(&flagUpdate, "update", "", "path to an existing blog post to update instead of generating a new one")
	rootCmd.Flags().BoolVar(&flagSkipSearch, "skip-search", false, "skip web-search enrichment")
	rootCmd.Flags().BoolVar(&flagSkipImage, "skip-image", false, "skip illustration generation")
	rootCmd.Flags().BoolVar(&flagIncludeDiff, "include-diff", false, "embed a token-budgeted diff excerpt in the draft prompt")
}

// imageService combines generation and download behind the orchestrator's
// image interface.
type imageService struct {
	*images.Client
	dl *images.Downloader
}

func (s *imageService) Download(ctx context.Context, url, dest string) bool {
	return s.dl.Download(ctx, url, dest)
}

func run(cmd *cobra.Command, _ []string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	log := logging.New(logging.Configure(config.LogLevel()))
	out := console.New()
	ctx := cmd.Context()

	textClient, err := llm.NewClient(llm.Config{
		APIKey:      config.OpenAIAPIKey(),
		Model:       config.TextModel(),
		MaxTokens:   config.MaxTokens(),
		Temperature: config.Temperature(),
		CallTimeout: config.LLMCallTimeout(),
	}, log)
	if err != nil {
		return err
	}

	gen := &article.Generator{
		Text:    textClient,
		Console: out,
		Log:     log,
	}

	if flagUpdate != "" {
		if _, err := os.Stat(flagUpdate); err != nil {
			return fmt.Errorf("blog post file %s does not exist", flagUpdate)
		}
		return gen.Revise(ctx, flagUpdate, flagDirection)
	}

	if flagRepo == "" || flagPR <= 0 {
		return fmt.Errorf("--repo and --pr are required to generate a new blog post")
	}
	owner, name, err := gh.ParseRepoArg(flagRepo)
	if err != nil {
		return err
	}

	gen.Collector = gh.NewClient(gh.NewGitHubClient(config.GitHubToken()), log)

	imgClient, err := images.NewClient(images.Config{
		APIKey: config.OpenAIAPIKey(),
		Model:  config.ImageModel(),
		Size:   config.ImageSize(),
	}, log)
	if err != nil {
		return err
	}
	gen.Images = &imageService{
		Client: imgClient,
		dl:     &images.Downloader{Timeout: config.DownloadTimeout(), Log: log},
	}

	if key := config.SearchAPIKey(); key != "" {
		gen.Searcher = search.NewBraveClient(config.SearchEndpoint(), key, log)
	} else {
		gen.Searcher = search.Disabled{}
	}

	_, err = gen.Generate(ctx, owner, name, flagPR, article.Options{
		Direction:   flagDirection,
		OutputPath:  flagOutput,
		SkipImages:  flagSkipImage,
		SkipSearch:  flagSkipSearch,
		IncludeDiff: flagIncludeDiff,
		ImageDir:    config.ImageDir(),
		SearchCount: config.SearchResultCount(),
	})
	return err
}

func main() {
	config.Init(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
