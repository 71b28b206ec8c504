package article

import (
	"fmt"
	"strings"

	"github.com/google/go-github/v66/github"
)

// SummarizeCommits renders a commit list as a numbered narrative of subject
// lines. An empty list yields the fixed sentence "No commits found."
func SummarizeCommits(commits []*github.RepositoryCommit) string {
	if len(commits) == 0 {
		return "No commits found."
	}

	var b strings.Builder
	b.WriteString("The changes include:\n\n")
	for i, c := range commits {
		subject, _, _ := strings.Cut(c.GetCommit().GetMessage(), "\n")
		fmt.Fprintf(&b, "%d. %s\n", i+1, subject)
	}
	return b.String()
}
