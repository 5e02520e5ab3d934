package commands

import (
	"context"

	"github.com/temirov/repostats/internal/types"
)

// CountEligible returns the number of files under root that survive the
// exclusion rules. File contents are never read.
func CountEligible(ctx context.Context, root string, rules ExclusionRules) (int, error) {
	if rootError := validateRoot(root); rootError != nil {
		return 0, rootError
	}
	walker := treeWalker{
		rules: rules,
		measure: func(string) (types.Totals, error) {
			return types.Totals{Files: 1}, nil
		},
	}
	totals, walkError := walker.walk(ctx, root)
	if walkError != nil {
		return 0, walkError
	}
	return totals.Files, nil
}
