// Package diff extracts structured information from unified-diff text.
package diff

import (
	"regexp"
	"sort"
	"strings"
)

// Summary holds the aggregate counts parsed out of a unified diff.
// FileCount always equals len(FilesChanged).
type Summary struct {
	FilesChanged []string
	FileCount    int
	Additions    int
	Deletions    int
	Languages    []string
}

var (
	fileHeaderRe = regexp.MustCompile(`diff --git a/(.*?) b/`)
	additionRe   = regexp.MustCompile(`(?m)^\+[^+]`)
	deletionRe   = regexp.MustCompile(`(?m)^-[^-]`)
)

// Parse scans unified-diff text and returns a Summary. It never fails; an
// empty input yields zero counts.
//
// File paths are taken from the a/ side of each `diff --git` header in order
// of appearance. Repeated headers for the same path (renames) are kept as
// repeated entries. Addition and deletion counts exclude the +++/--- file
// header lines. Languages are the de-duplicated filename extensions of the
// changed paths, leading dot stripped, sorted for deterministic output.
func Parse(diffText string) Summary {
	var files []string
	for _, m := range fileHeaderRe.FindAllStringSubmatch(diffText, -1) {
		files = append(files, m[1])
	}

	langSet := make(map[string]struct{})
	for _, f := range files {
		if ext := extension(f); ext != "" {
			langSet[ext] = struct{}{}
		}
	}
	languages := make([]string, 0, len(langSet))
	for ext := range langSet {
		languages = append(languages, ext)
	}
	sort.Strings(languages)

	return Summary{
		FilesChanged: files,
		FileCount:    len(files),
		Additions:    len(additionRe.FindAllString(diffText, -1)),
		Deletions:    len(deletionRe.FindAllString(diffText, -1)),
		Languages:    languages,
	}
}

// extension returns the filename extension without its leading dot, or ""
// when the path has none. A dotfile like .gitignore has no extension.
func extension(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return ""
	}
	return base[i+1:]
}
