package gh

import (
	"time"

	"github.com/google/go-github/v66/github"

	"github.com/abuzarmahmood/pr-blog-bot/internal/diff"
)

// PullRequestInfo is everything the article pipeline needs about one pull
// request. It is assembled once per run from live API data.
type PullRequestInfo struct {
	Owner       string
	Repo        string
	Number      int
	Title       string
	Description string
	Author      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	URL         string

	// Contributors is the de-duplicated union of commit authors,
	// committers, and the pull request author, in first-appearance order.
	Contributors []string

	Diff     diff.Summary
	DiffText string
	Commits  []*github.RepositoryCommit
}

// contributors derives the contributor list. Identities prefer the GitHub
// login and fall back to the git author/committer name.
func contributors(pr *github.PullRequest, commits []*github.RepositoryCommit) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	add(pr.GetUser().GetLogin())
	for _, c := range commits {
		add(identity(c.GetAuthor(), c.GetCommit().GetAuthor()))
		add(identity(c.GetCommitter(), c.GetCommit().GetCommitter()))
	}
	return out
}

func identity(user *github.User, git *github.CommitAuthor) string {
	if login := user.GetLogin(); login != "" {
		return login
	}
	return git.GetName()
}
