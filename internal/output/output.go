// Package output renders run events for the terminal.
package output

import (
	"fmt"
	"io"

	"github.com/temirov/repostats/internal/types"
)

const (
	totalLinesFormat = "Total lines: %d"
	totalWordsFormat = "Total words: %d"
	totalFilesFormat = "Total files: %d"

	warningPrefix = "Warning: "

	// FailedMessage finalizes the progress indicator when a pass fails.
	FailedMessage = "Processing failed."
	// InterruptedMessage finalizes the progress indicator when a run ends without a result.
	InterruptedMessage = "Processing interrupted."
)

// FormatTotals returns the three summary lines printed after a successful run.
func FormatTotals(totals types.Totals) []string {
	return []string{
		fmt.Sprintf(totalLinesFormat, totals.Lines),
		fmt.Sprintf(totalWordsFormat, totals.Words),
		fmt.Sprintf(totalFilesFormat, totals.Files),
	}
}

// WriteTotals prints the summary lines to writer.
func WriteTotals(writer io.Writer, totals types.Totals) error {
	for _, line := range FormatTotals(totals) {
		if _, writeError := fmt.Fprintln(writer, line); writeError != nil {
			return writeError
		}
	}
	return nil
}
