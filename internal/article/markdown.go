package article

import (
	"fmt"
	"path/filepath"
	"strings"
)

// HasImageReference reports whether the draft contains a Markdown image
// reference of the form ![caption](url).
func HasImageReference(draft string) bool {
	return strings.Contains(draft, "![") && strings.Contains(draft, "](")
}

// ImageRef builds a Markdown image reference for a downloaded illustration.
func ImageRef(path, title string) string {
	return fmt.Sprintf("![Illustration: %s](%s)", title, filepath.ToSlash(path))
}

// SpliceImage inserts ref directly after the draft's leading heading line,
// or at the very start when the first line is not a heading.
func SpliceImage(draft, ref string) string {
	if draft == "" {
		return ref + "\n"
	}
	first, rest, hasMore := strings.Cut(draft, "\n")
	if strings.HasPrefix(strings.TrimSpace(first), "#") {
		if !hasMore {
			return first + "\n\n" + ref + "\n"
		}
		return first + "\n\n" + ref + "\n" + rest
	}
	return ref + "\n\n" + draft
}
