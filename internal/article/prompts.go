package article

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abuzarmahmood/pr-blog-bot/internal/gh"
	"github.com/abuzarmahmood/pr-blog-bot/internal/search"
)

// System roles for the four generation tasks.
const (
	draftSystemPrompt    = "You are a technical writer creating a blog post about code changes."
	enrichSystemPrompt   = "You are a technical writer enhancing a blog post with additional information."
	revisionSystemPrompt = "You are a technical writer updating a blog post with new information."
)

const maxKeyFiles = 5

// BuildDraftPrompt assembles the initial article prompt from pull request
// data, an optional user direction, and an optional diff excerpt.
func BuildDraftPrompt(info *gh.PullRequestInfo, direction, diffExcerpt string) string {
	var b strings.Builder

	b.WriteString("Write a technical blog post about the following GitHub pull request:\n\n")
	fmt.Fprintf(&b, "Title: %s\n\n", info.Title)
	fmt.Fprintf(&b, "Description:\n%s\n\n", info.Description)
	fmt.Fprintf(&b, "Author: %s\n", info.Author)
	fmt.Fprintf(&b, "Created: %s\n", info.CreatedAt.Format("January 2, 2006"))
	fmt.Fprintf(&b, "URL: %s\n", info.URL)
	fmt.Fprintf(&b, "Contributors: %s\n\n", strings.Join(info.Contributors, ", "))

	b.WriteString("Summary of changes:\n")
	fmt.Fprintf(&b, "- Files changed: %d\n", info.Diff.FileCount)
	fmt.Fprintf(&b, "- Additions: %d\n", info.Diff.Additions)
	fmt.Fprintf(&b, "- Deletions: %d\n", info.Diff.Deletions)
	fmt.Fprintf(&b, "- Languages: %s\n\n", strings.Join(info.Diff.Languages, ", "))

	fmt.Fprintf(&b, "Commit summary:\n%s\n", SummarizeCommits(info.Commits))

	files := info.Diff.FilesChanged
	if len(files) > maxKeyFiles {
		files = files[:maxKeyFiles]
	}
	fmt.Fprintf(&b, "\nKey files changed:\n%s\n", strings.Join(files, ", "))

	if diffExcerpt != "" {
		fmt.Fprintf(&b, "\nRelevant excerpt from the diff:\n\n```diff\n%s\n```\n", diffExcerpt)
	}

	if direction != "" {
		fmt.Fprintf(&b, "\nAdditional direction for the blog post:\n%s\n", direction)
	}

	b.WriteString(`
The blog post should:
1. Have a catchy title
2. Include an introduction explaining the purpose of the changes
3. Highlight the key technical aspects of the changes
4. Explain the impact or benefits of these changes
5. Include code examples where relevant
6. End with a conclusion

Format the blog post in Markdown.
`)

	return b.String()
}

// BuildIllustrationPrompt describes the header illustration for the
// image-generation call.
func BuildIllustrationPrompt(info *gh.PullRequestInfo) string {
	subject := strings.Join(info.Diff.Languages, ", ")
	if subject == "" {
		subject = "software"
	}
	return fmt.Sprintf(
		"A professional technical illustration for a software engineering blog post titled %q. "+
			"The change involves %s code. Clean, modern, abstract style suitable for an article header. "+
			"No text in the image.",
		info.Title, subject)
}

// BuildImageFallbackPrompt asks the model to add an image reference itself
// when no generated illustration could be placed.
func BuildImageFallbackPrompt(draft string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here is a blog post:\n\n%s\n\n", draft)
	b.WriteString("The post has no illustrative image. Insert at least one Markdown image reference " +
		"(![caption](url)) at an appropriate place, using a relevant publicly accessible image. " +
		"Return the complete blog post in Markdown format.\n")
	return b.String()
}

// BuildSearchQuery derives the enrichment search query from the request
// title and the inferred languages.
func BuildSearchQuery(info *gh.PullRequestInfo) string {
	return strings.TrimSpace(info.Title + " " + strings.Join(info.Diff.Languages, " "))
}

// BuildEnrichmentPrompt embeds the current draft and a structured dump of
// the search results. When the draft has no image reference an extra
// mandatory instruction asks for one.
func BuildEnrichmentPrompt(draft string, results []search.Result) string {
	dump, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		dump = []byte("[]")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here is a blog post:\n\n%s\n\n", draft)
	fmt.Fprintf(&b, "Here are some related resources from the web:\n\n%s\n\n", dump)
	b.WriteString("Enhance the blog post by incorporating relevant information from these resources.\n")
	b.WriteString("Add a \"Related Resources\" section at the end with links to the most relevant resources.\n")
	b.WriteString("Keep the blog post in Markdown format.\n")
	if !HasImageReference(draft) {
		b.WriteString("The enhanced blog post must include at least one Markdown image reference.\n")
	}
	return b.String()
}

// BuildRevisionPrompt embeds an existing article and new direction text.
func BuildRevisionPrompt(draft, direction string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here is an existing blog post:\n\n%s\n\n", draft)
	fmt.Fprintf(&b, "Update this blog post based on the following new information or direction:\n\n%s\n\n", direction)
	b.WriteString("Keep the blog post in Markdown format.\n")
	return b.String()
}
