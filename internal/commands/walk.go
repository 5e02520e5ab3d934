package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/repostats/internal/types"
)

const (
	// errorReadDirectoryFormat is used when a directory cannot be listed.
	errorReadDirectoryFormat = "reading directory %s: %w"
	// errorReadFileFormat is used when a file cannot be read.
	errorReadFileFormat = "reading file %s: %w"
	// errorEmptyRootMessage is used when traversal is requested without a root.
	errorEmptyRootMessage = "traversal root path is empty"
	// errorUnsupportedDenominatorFormat is used for an unknown progress denominator.
	errorUnsupportedDenominatorFormat = "unsupported progress denominator %q"
)

// directoryLevel describes the directory being walked after one of its files was measured.
type directoryLevel struct {
	Path          string
	Totals        types.Totals
	ListingLength int
}

// treeWalker holds the recursion shared by the counting and processing passes.
// Excluded directories are pruned at the point of recursion, so their subtrees
// are never listed; files are filtered by extension before measure is called.
type treeWalker struct {
	rules     ExclusionRules
	measure   func(path string) (types.Totals, error)
	afterFile func(level directoryLevel)
}

// walk returns the totals of the subtree rooted at directoryPath. The first
// filesystem error aborts the walk and is returned unchanged by every caller.
func (walker treeWalker) walk(ctx context.Context, directoryPath string) (types.Totals, error) {
	if contextError := ctx.Err(); contextError != nil {
		return types.Totals{}, contextError
	}

	entries, readError := readDirectoryUnsorted(directoryPath)
	if readError != nil {
		return types.Totals{}, fmt.Errorf(errorReadDirectoryFormat, directoryPath, readError)
	}

	var levelTotals types.Totals
	for _, entry := range entries {
		if contextError := ctx.Err(); contextError != nil {
			return types.Totals{}, contextError
		}
		childPath := filepath.Join(directoryPath, entry.Name())

		if entry.IsDir() {
			if walker.rules.SkipsDirectory(entry.Name()) {
				continue
			}
			childTotals, walkError := walker.walk(ctx, childPath)
			if walkError != nil {
				return types.Totals{}, walkError
			}
			levelTotals = levelTotals.Add(childTotals)
			continue
		}

		if walker.rules.SkipsFile(entry.Name()) {
			continue
		}
		fileTotals, measureError := walker.measure(childPath)
		if measureError != nil {
			return types.Totals{}, measureError
		}
		levelTotals = levelTotals.Add(fileTotals)
		if walker.afterFile != nil {
			walker.afterFile(directoryLevel{Path: directoryPath, Totals: levelTotals, ListingLength: len(entries)})
		}
	}

	return levelTotals, nil
}

// readDirectoryUnsorted lists a directory in the order the operating system returns it.
func readDirectoryUnsorted(directoryPath string) ([]os.DirEntry, error) {
	directoryHandle, openError := os.Open(directoryPath)
	if openError != nil {
		return nil, openError
	}
	defer directoryHandle.Close()
	return directoryHandle.ReadDir(-1)
}

func validateRoot(root string) error {
	if root == "" {
		return errors.New(errorEmptyRootMessage)
	}
	return nil
}
