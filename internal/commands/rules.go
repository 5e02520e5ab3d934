// Package commands contains the traversal and aggregation logic behind repostats.
package commands

import (
	"strings"

	"github.com/temirov/repostats/internal/utils"
)

const extensionSeparator = "."

// ExclusionRules holds the directory names and file extensions skipped during traversal.
// Matching is exact and case-sensitive; a zero value excludes nothing.
type ExclusionRules struct {
	directories map[string]struct{}
	extensions  map[string]struct{}
}

// NewExclusionRules builds an immutable rule set. Extensions include their
// leading dot, for example ".log". Empty and duplicate values are ignored.
func NewExclusionRules(directoryNames []string, extensions []string) ExclusionRules {
	rules := ExclusionRules{
		directories: make(map[string]struct{}),
		extensions:  make(map[string]struct{}),
	}
	for _, directoryName := range utils.DeduplicatePatterns(directoryNames) {
		rules.directories[directoryName] = struct{}{}
	}
	for _, extension := range utils.DeduplicatePatterns(extensions) {
		rules.extensions[extension] = struct{}{}
	}
	return rules
}

// DefaultExclusionRules returns the fixed rule set used by the command line tool.
func DefaultExclusionRules() ExclusionRules {
	return NewExclusionRules(utils.DefaultExcludedDirectories(), utils.DefaultExcludedExtensions())
}

// SkipsDirectory reports whether a directory with this name is skipped together with its subtree.
func (rules ExclusionRules) SkipsDirectory(name string) bool {
	_, excluded := rules.directories[name]
	return excluded
}

// SkipsFile reports whether a file with this name is skipped because of its extension.
func (rules ExclusionRules) SkipsFile(name string) bool {
	extension := FileExtension(name)
	if extension == utils.EmptyString {
		return false
	}
	_, excluded := rules.extensions[extension]
	return excluded
}

// FileExtension returns the suffix of name starting at its last dot.
// Leading dots do not start an extension, so ".bashrc" has none while
// "archive.tar.gz" has ".gz" and "name." has ".".
func FileExtension(name string) string {
	withoutLeadingDots := strings.TrimLeft(name, extensionSeparator)
	separatorIndex := strings.LastIndex(withoutLeadingDots, extensionSeparator)
	if separatorIndex < 0 {
		return utils.EmptyString
	}
	return withoutLeadingDots[separatorIndex:]
}
