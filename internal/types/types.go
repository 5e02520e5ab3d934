// Package types defines every cross‑package data structure used by the repostats CLI.
package types

const (
	// DenominatorGlobal divides processed files by the eligible total of the whole run.
	DenominatorGlobal = "global"
	// DenominatorDirectory divides the running count of a directory level by its listing length.
	DenominatorDirectory = "directory"
)

// Totals is the aggregate line, word and file count over a subtree.
// The zero value is the identity for Add.
type Totals struct {
	Lines int `json:"lines"`
	Words int `json:"words"`
	Files int `json:"files"`
}

// Add returns the componentwise sum of both totals.
func (totals Totals) Add(other Totals) Totals {
	return Totals{
		Lines: totals.Lines + other.Lines,
		Words: totals.Words + other.Words,
		Files: totals.Files + other.Files,
	}
}

// IsSupportedDenominator reports whether mode names a known progress denominator.
func IsSupportedDenominator(mode string) bool {
	switch mode {
	case DenominatorGlobal, DenominatorDirectory:
		return true
	default:
		return false
	}
}
