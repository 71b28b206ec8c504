package gh

import (
	"fmt"
	"strings"

	vcsurl "github.com/gitsight/go-vcsurl"
)

// ParseRepoArg resolves a repository argument into (owner, name). It accepts
// the plain "owner/name" form as well as full repository URLs such as
// "https://github.com/owner/name".
func ParseRepoArg(arg string) (owner, name string, err error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", "", fmt.Errorf("repository must be in the format owner/name")
	}

	if strings.Contains(arg, "://") || strings.HasPrefix(arg, "git@") {
		info, perr := vcsurl.Parse(arg)
		if perr != nil || info.Username == "" || info.Name == "" {
			return "", "", fmt.Errorf("could not parse repository URL %q", arg)
		}
		return info.Username, info.Name, nil
	}

	parts := strings.Split(arg, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository must be in the format owner/name, got %q", arg)
	}
	return parts[0], parts[1], nil
}
