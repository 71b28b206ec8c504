// Package gh talks to the GitHub API and assembles pull request data for
// article generation.
package gh

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"github.com/abuzarmahmood/pr-blog-bot/internal/diff"
	"github.com/abuzarmahmood/pr-blog-bot/internal/logging"
)

// NewGitHubClient returns a go-github client. An empty token yields an
// unauthenticated client; otherwise requests carry the bearer token.
func NewGitHubClient(token string) *github.Client {
	if token == "" {
		return github.NewClient(&http.Client{Timeout: 30 * time.Second})
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = 30 * time.Second
	return github.NewClient(tc)
}

// Client fetches pull request data. Each fetch is a single attempt; a
// non-success response fails the call immediately.
type Client struct {
	gh  *github.Client
	log logging.Logger
}

func NewClient(gh *github.Client, log logging.Logger) *Client {
	return &Client{gh: gh, log: log.WithName("gh")}
}

// Collect performs the three reads for a pull request (metadata, commit
// list, unified diff) and assembles a PullRequestInfo. Any failure aborts
// with no partial result.
func (c *Client) Collect(ctx context.Context, owner, repo string, number int) (*PullRequestInfo, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("fetch pull request %s/%s#%d: %w", owner, repo, number, err)
	}
	c.log.Debug("fetched pull request", "title", pr.GetTitle())

	commits, err := c.listCommits(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("fetch commits for %s/%s#%d: %w", owner, repo, number, err)
	}
	c.log.Debug("fetched commits", "count", len(commits))

	diffText, _, err := c.gh.PullRequests.GetRaw(ctx, owner, repo, number, github.RawOptions{Type: github.Diff})
	if err != nil {
		return nil, fmt.Errorf("fetch diff for %s/%s#%d: %w", owner, repo, number, err)
	}

	info := buildPullRequestInfo(owner, repo, pr, commits, diffText)
	c.log.Info("collected pull request",
		"pr", number,
		"files", info.Diff.FileCount,
		"additions", info.Diff.Additions,
		"deletions", info.Diff.Deletions,
		"commits", len(commits),
	)
	return info, nil
}

func (c *Client) listCommits(ctx context.Context, owner, repo string, number int) ([]*github.RepositoryCommit, error) {
	var all []*github.RepositoryCommit
	opts := &github.ListOptions{PerPage: 100}
	for {
		commits, resp, err := c.gh.PullRequests.ListCommits(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, commits...)
		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

func buildPullRequestInfo(owner, repo string, pr *github.PullRequest, commits []*github.RepositoryCommit, diffText string) *PullRequestInfo {
	return &PullRequestInfo{
		Owner:        owner,
		Repo:         repo,
		Number:       pr.GetNumber(),
		Title:        pr.GetTitle(),
		Description:  pr.GetBody(),
		Author:       pr.GetUser().GetLogin(),
		CreatedAt:    pr.GetCreatedAt().Time,
		UpdatedAt:    pr.GetUpdatedAt().Time,
		URL:          pr.GetHTMLURL(),
		Contributors: contributors(pr, commits),
		Diff:         diff.Parse(diffText),
		DiffText:     diffText,
		Commits:      commits,
	}
}
