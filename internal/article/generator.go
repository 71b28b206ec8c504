// Package article drives the generation pipeline: collect pull request data,
// draft the post, illustrate, enrich, and persist.
package article

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abuzarmahmood/pr-blog-bot/internal/console"
	"github.com/abuzarmahmood/pr-blog-bot/internal/diff"
	"github.com/abuzarmahmood/pr-blog-bot/internal/gh"
	"github.com/abuzarmahmood/pr-blog-bot/internal/logging"
	"github.com/abuzarmahmood/pr-blog-bot/internal/search"
)

// Token budget for the optional diff excerpt embedded in the draft prompt.
const diffExcerptTokens = 3000

// Collector retrieves the assembled pull request data.
type Collector interface {
	Collect(ctx context.Context, owner, repo string, number int) (*gh.PullRequestInfo, error)
}

// TextGenerator performs one generative-text call.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// ImageService generates an illustration and downloads it. Download reports
// success only; its failures degrade the pipeline, never abort it.
type ImageService interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Download(ctx context.Context, url, dest string) bool
}

// Options control a single generation run.
type Options struct {
	Direction   string
	OutputPath  string
	SkipImages  bool
	SkipSearch  bool
	IncludeDiff bool
	ImageDir    string
	SearchCount int
}

// Generator sequences the pipeline. All stages run strictly in order; a
// failure in any required stage aborts the run with nothing written.
type Generator struct {
	Collector Collector
	Text      TextGenerator
	Images    ImageService
	Searcher  search.Searcher
	Console   *console.Printer
	Log       logging.Logger

	// Now stamps the default output filename; nil means time.Now.
	Now func() time.Time
}

// Generate runs the full pipeline for one pull request and returns the path
// of the written article.
func (g *Generator) Generate(ctx context.Context, owner, repo string, number int, opts Options) (string, error) {
	g.Console.Step("Collecting data for %s/%s#%d", owner, repo, number)
	info, err := g.Collector.Collect(ctx, owner, repo, number)
	if err != nil {
		return "", err
	}
	g.Console.Done("Collected %d commits, %d changed files", len(info.Commits), info.Diff.FileCount)

	g.Console.Step("Drafting blog post")
	var excerpt string
	if opts.IncludeDiff {
		excerpt = diff.Excerpt(info.DiffText, diffExcerptTokens)
	}
	draft, err := g.Text.Generate(ctx, draftSystemPrompt, BuildDraftPrompt(info, opts.Direction, excerpt))
	if err != nil {
		return "", fmt.Errorf("draft generation: %w", err)
	}
	g.Console.Done("Draft generated")

	draft, err = g.illustrate(ctx, info, draft, opts)
	if err != nil {
		return "", err
	}

	draft, err = g.enrich(ctx, info, draft, opts)
	if err != nil {
		return "", err
	}

	path := opts.OutputPath
	if path == "" {
		now := time.Now
		if g.Now != nil {
			now = g.Now
		}
		path = DefaultOutputPath(number, now())
	}
	if err := os.WriteFile(path, []byte(draft), 0o644); err != nil {
		return "", fmt.Errorf("write article: %w", err)
	}
	g.Console.Done("Blog post saved to %s", path)
	return path, nil
}

// illustrate runs the optional image stage. A generated-and-downloaded
// illustration is spliced after the leading heading; any failure (or an
// explicit skip) falls back to one text call asking the model to insert an
// image, taken only when the draft still has none.
func (g *Generator) illustrate(ctx context.Context, info *gh.PullRequestInfo, draft string, opts Options) (string, error) {
	placed := false
	if !opts.SkipImages && g.Images != nil {
		g.Console.Step("Generating illustration")
		url, err := g.Images.Generate(ctx, BuildIllustrationPrompt(info))
		if err != nil {
			g.Log.Error(err, "illustration generation failed", "pr", info.Number)
			g.Console.Warn("Illustration generation failed, falling back to text-only")
		} else {
			dest := filepath.Join(opts.ImageDir, fmt.Sprintf("pr_%d_illustration.png", info.Number))
			if g.Images.Download(ctx, url, dest) {
				draft = SpliceImage(draft, ImageRef(dest, info.Title))
				placed = true
				g.Console.Done("Illustration saved to %s", dest)
			} else {
				g.Console.Warn("Illustration download failed, falling back to text-only")
			}
		}
	}

	if !placed && !HasImageReference(draft) {
		g.Console.Step("Asking the model to insert an image")
		updated, err := g.Text.Generate(ctx, draftSystemPrompt, BuildImageFallbackPrompt(draft))
		if err != nil {
			return "", fmt.Errorf("image fallback generation: %w", err)
		}
		draft = updated
	}
	return draft, nil
}

// enrich runs the optional web-search stage. An empty result set, a nil
// searcher, or a search failure leaves the draft unchanged; only the
// generative-text call itself is fatal.
func (g *Generator) enrich(ctx context.Context, info *gh.PullRequestInfo, draft string, opts Options) (string, error) {
	if opts.SkipSearch || g.Searcher == nil {
		return draft, nil
	}

	g.Console.Step("Searching the web for related content")
	results, err := g.Searcher.Search(ctx, BuildSearchQuery(info), opts.SearchCount)
	if err != nil {
		g.Log.Error(err, "web search failed", "pr", info.Number)
		g.Console.Warn("Web search failed, skipping enrichment")
		return draft, nil
	}
	if len(results) == 0 {
		g.Console.Step("No related content found, skipping enrichment")
		return draft, nil
	}

	g.Console.Step("Enhancing blog post with %d related resources", len(results))
	updated, err := g.Text.Generate(ctx, enrichSystemPrompt, BuildEnrichmentPrompt(draft, results))
	if err != nil {
		return "", fmt.Errorf("enrichment generation: %w", err)
	}
	g.Console.Done("Blog post enhanced")
	return updated, nil
}

// Revise rewrites an existing article in place under new direction.
func (g *Generator) Revise(ctx context.Context, path, direction string) error {
	existing, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read article %s: %w", path, err)
	}

	g.Console.Step("Updating blog post %s", path)
	updated, err := g.Text.Generate(ctx, revisionSystemPrompt, BuildRevisionPrompt(string(existing), direction))
	if err != nil {
		return fmt.Errorf("revision generation: %w", err)
	}

	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("write article: %w", err)
	}
	g.Console.Done("Updated blog post saved to %s", path)
	return nil
}

// DefaultOutputPath names the article after the request number and date.
func DefaultOutputPath(number int, now time.Time) string {
	return fmt.Sprintf("blog_post_%d_%s.md", number, now.Format("20060102"))
}
