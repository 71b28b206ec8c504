package article

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr"

	"github.com/abuzarmahmood/pr-blog-bot/internal/console"
	"github.com/abuzarmahmood/pr-blog-bot/internal/gh"
	"github.com/abuzarmahmood/pr-blog-bot/internal/logging"
	"github.com/abuzarmahmood/pr-blog-bot/internal/search"
)

type fakeCollector struct {
	info *gh.PullRequestInfo
	err  error
}

func (f *fakeCollector) Collect(context.Context, string, string, int) (*gh.PullRequestInfo, error) {
	return f.info, f.err
}

type fakeText struct {
	replies []string
	prompts []string
	systems []string
	err     error
}

func (f *fakeText) Generate(_ context.Context, system, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.systems = append(f.systems, system)
	f.prompts = append(f.prompts, prompt)
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

type fakeImages struct {
	url         string
	genErr      error
	downloadOK  bool
	downloaded  string
	genCalls    int
	downloadTry int
}

func (f *fakeImages) Generate(context.Context, string) (string, error) {
	f.genCalls++
	return f.url, f.genErr
}

func (f *fakeImages) Download(_ context.Context, _, dest string) bool {
	f.downloadTry++
	if f.downloadOK {
		f.downloaded = dest
		os.MkdirAll(filepath.Dir(dest), 0o755)
		os.WriteFile(dest, []byte("png"), 0o644)
	}
	return f.downloadOK
}

type fakeSearcher struct {
	results []search.Result
	err     error
	query   string
}

func (f *fakeSearcher) Search(_ context.Context, query string, _ int) ([]search.Result, error) {
	f.query = query
	return f.results, f.err
}

func newGenerator(c Collector, text TextGenerator, img ImageService, s search.Searcher) *Generator {
	return &Generator{
		Collector: c,
		Text:      text,
		Images:    img,
		Searcher:  s,
		Console:   console.NewWriter(&bytes.Buffer{}),
		Log:       logging.New(logr.Discard()),
		Now:       func() time.Time { return time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC) },
	}
}

func TestGenerateDraftWithIllustration(t *testing.T) {
	dir := t.TempDir()
	text := &fakeText{replies: []string{"# Generated Title\n\nBody text."}}
	images := &fakeImages{url: "https://img.example/pic.png", downloadOK: true}
	g := newGenerator(&fakeCollector{info: testInfo()}, text, images, search.Disabled{})

	out := filepath.Join(dir, "post.md")
	path, err := g.Generate(context.Background(), "octocat", "hello", 42, Options{
		OutputPath: out,
		ImageDir:   filepath.Join(dir, "images"),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if path != out {
		t.Fatalf("unexpected output path %q", path)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(string(content), "\n")
	if lines[0] != "# Generated Title" {
		t.Fatalf("expected mocked draft heading first, got %q", lines[0])
	}
	if lines[1] != "" || !strings.HasPrefix(lines[2], "![") {
		t.Fatalf("expected image reference directly after the heading, got:\n%s", content)
	}
	if !strings.Contains(string(content), "Body text.") {
		t.Fatalf("draft body lost:\n%s", content)
	}
	if images.genCalls != 1 || images.downloadTry != 1 {
		t.Fatalf("expected one generate and one download, got %d/%d", images.genCalls, images.downloadTry)
	}
	// Illustration succeeded, so no fallback text call happened.
	if len(text.prompts) != 1 {
		t.Fatalf("expected a single text call, got %d", len(text.prompts))
	}
}

func TestGenerateFallbackWhenIllustrationFails(t *testing.T) {
	dir := t.TempDir()
	text := &fakeText{replies: []string{
		"No heading draft without picture.",
		"Draft with ![inserted](img.png) reference.",
	}}
	images := &fakeImages{genErr: errors.New("image service down")}
	g := newGenerator(&fakeCollector{info: testInfo()}, text, images, search.Disabled{})

	out := filepath.Join(dir, "post.md")
	if _, err := g.Generate(context.Background(), "octocat", "hello", 42, Options{OutputPath: out, ImageDir: dir}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	content, _ := os.ReadFile(out)
	if !strings.Contains(string(content), "![inserted](img.png)") {
		t.Fatalf("expected fallback draft with image, got:\n%s", content)
	}
	if len(text.prompts) != 2 {
		t.Fatalf("expected draft + fallback calls, got %d", len(text.prompts))
	}
	if !strings.Contains(text.prompts[1], "no illustrative image") {
		t.Fatalf("second call must be the image fallback prompt:\n%s", text.prompts[1])
	}
}

func TestGenerateSkipImagesKeepsDraftWithImage(t *testing.T) {
	dir := t.TempDir()
	text := &fakeText{replies: []string{"# T\n\n![already](there.png)"}}
	images := &fakeImages{}
	g := newGenerator(&fakeCollector{info: testInfo()}, text, images, search.Disabled{})

	out := filepath.Join(dir, "post.md")
	if _, err := g.Generate(context.Background(), "octocat", "hello", 42, Options{OutputPath: out, SkipImages: true}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if images.genCalls != 0 {
		t.Fatalf("image service must not be called when skipped, got %d calls", images.genCalls)
	}
	if len(text.prompts) != 1 {
		t.Fatalf("no fallback call expected when the draft already has an image, got %d", len(text.prompts))
	}
}

func TestGenerateEnrichment(t *testing.T) {
	dir := t.TempDir()
	text := &fakeText{replies: []string{
		"# T\n\n![i](x.png)\n\nDraft.",
		"# T\n\n![i](x.png)\n\nDraft.\n\n## Related Resources\n- link",
	}}
	searcher := &fakeSearcher{results: []search.Result{{Title: "Doc", URL: "https://example.com", Snippet: "s"}}}
	g := newGenerator(&fakeCollector{info: testInfo()}, text, &fakeImages{}, searcher)

	out := filepath.Join(dir, "post.md")
	if _, err := g.Generate(context.Background(), "octocat", "hello", 42, Options{OutputPath: out, SkipImages: true}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if searcher.query != "Add retry logic go" {
		t.Fatalf("unexpected search query %q", searcher.query)
	}
	content, _ := os.ReadFile(out)
	if !strings.Contains(string(content), "Related Resources") {
		t.Fatalf("expected enriched draft to be persisted:\n%s", content)
	}
}

func TestGenerateEmptySearchSkipsEnrichment(t *testing.T) {
	dir := t.TempDir()
	text := &fakeText{replies: []string{"# T\n\n![i](x.png)\n\nDraft."}}
	g := newGenerator(&fakeCollector{info: testInfo()}, text, &fakeImages{}, &fakeSearcher{})

	out := filepath.Join(dir, "post.md")
	if _, err := g.Generate(context.Background(), "octocat", "hello", 42, Options{OutputPath: out, SkipImages: true}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(text.prompts) != 1 {
		t.Fatalf("enrichment must be skipped on empty results, got %d text calls", len(text.prompts))
	}
}

func TestGenerateCollectFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	g := newGenerator(&fakeCollector{err: errors.New("api: 404")}, &fakeText{replies: []string{"x"}}, &fakeImages{}, search.Disabled{})

	out := filepath.Join(dir, "post.md")
	if _, err := g.Generate(context.Background(), "octocat", "hello", 42, Options{OutputPath: out}); err == nil {
		t.Fatal("expected collect error")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatal("no output file may exist after a failed run")
	}
}

func TestGenerateDefaultOutputPath(t *testing.T) {
	if got := DefaultOutputPath(42, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)); got != "blog_post_42_20240315.md" {
		t.Fatalf("unexpected default path %q", got)
	}
}

func TestRevise(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "existing.md")
	if err := os.WriteFile(path, []byte("# Old\n\nOld body."), 0o644); err != nil {
		t.Fatal(err)
	}

	text := &fakeText{replies: []string{"# Old\n\nRevised body."}}
	g := newGenerator(&fakeCollector{}, text, &fakeImages{}, search.Disabled{})

	if err := g.Revise(context.Background(), path, "mention the new flag"); err != nil {
		t.Fatalf("Revise: %v", err)
	}
	content, _ := os.ReadFile(path)
	if !strings.Contains(string(content), "Revised body.") {
		t.Fatalf("expected revised content, got:\n%s", content)
	}
	if !strings.Contains(text.prompts[0], "mention the new flag") {
		t.Fatalf("revision prompt missing direction:\n%s", text.prompts[0])
	}
}

func TestReviseMissingFile(t *testing.T) {
	g := newGenerator(&fakeCollector{}, &fakeText{replies: []string{"x"}}, &fakeImages{}, search.Disabled{})
	if err := g.Revise(context.Background(), filepath.Join(t.TempDir(), "absent.md"), ""); err == nil {
		t.Fatal("expected error for missing article")
	}
}
