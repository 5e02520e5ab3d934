// Package utils contains general helper functions used across the repostats tool.
package utils

const (
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// NodeModulesDirectoryName is the name of the npm dependency cache directory.
	NodeModulesDirectoryName = "node_modules"
)

// DefaultExcludedDirectories returns the directory names skipped by every run.
func DefaultExcludedDirectories() []string {
	return []string{NodeModulesDirectoryName, GitDirectoryName}
}

// DefaultExcludedExtensions returns the file extensions skipped by every run.
func DefaultExcludedExtensions() []string {
	return nil
}

// DeduplicatePatterns removes duplicate values from a slice while preserving order.
// The first occurrence of each unique value is kept and empty values are dropped.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if pattern == EmptyString {
			continue
		}
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}
