package commands

import (
	"context"
	"fmt"

	"github.com/temirov/repostats/internal/types"
)

const (
	// ProgressMessageFormat renders processed files against a denominator.
	ProgressMessageFormat = "Processing files... (%d/%d)"
	// ProgressUnknownTotalFormat renders processed files when no total is known.
	ProgressUnknownTotalFormat = "Processing files... (%d)"
)

// ProgressReporter receives the status line while files are processed.
type ProgressReporter interface {
	Report(message string)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(message string)

// Report calls the underlying function.
func (reporterFunc ProgressReporterFunc) Report(message string) {
	reporterFunc(message)
}

// ProcessorOptions configures an aggregating pass.
type ProcessorOptions struct {
	Rules    ExclusionRules
	Progress ProgressReporter
	// Total is the eligible file count from a previous CountEligible pass; zero means unknown.
	Total int
	// Denominator selects types.DenominatorGlobal (default) or types.DenominatorDirectory.
	Denominator string
}

// Processor reads every eligible file and folds its metrics into tree-wide totals.
type Processor struct {
	options   ProcessorOptions
	processed int
}

// NewProcessor returns a Processor for the provided options.
func NewProcessor(options ProcessorOptions) *Processor {
	if options.Denominator == "" {
		options.Denominator = types.DenominatorGlobal
	}
	return &Processor{options: options}
}

// Process walks root depth-first, reading one file at a time in listing order,
// and returns the combined totals. Any filesystem error aborts the pass.
func (processor *Processor) Process(ctx context.Context, root string) (types.Totals, error) {
	if rootError := validateRoot(root); rootError != nil {
		return types.Totals{}, rootError
	}
	if !types.IsSupportedDenominator(processor.options.Denominator) {
		return types.Totals{}, fmt.Errorf(errorUnsupportedDenominatorFormat, processor.options.Denominator)
	}
	processor.processed = 0

	walker := treeWalker{
		rules:     processor.options.Rules,
		measure:   measureFile,
		afterFile: processor.reportProgress,
	}
	return walker.walk(ctx, root)
}

// Processed returns the number of files measured by the most recent Process call.
func (processor *Processor) Processed() int {
	return processor.processed
}

func measureFile(path string) (types.Totals, error) {
	metrics, countError := CountFile(path)
	if countError != nil {
		return types.Totals{}, countError
	}
	return types.Totals{Lines: metrics.Lines, Words: metrics.Words, Files: 1}, nil
}

func (processor *Processor) reportProgress(level directoryLevel) {
	processor.processed++
	if processor.options.Progress == nil {
		return
	}
	processor.options.Progress.Report(processor.progressMessage(level))
}

// progressMessage renders the status line. In directory mode the fraction is the
// running file count of the current level over its listing length, which is not
// monotonic across the run.
func (processor *Processor) progressMessage(level directoryLevel) string {
	if processor.options.Denominator == types.DenominatorDirectory {
		return fmt.Sprintf(ProgressMessageFormat, level.Totals.Files, level.ListingLength)
	}
	if processor.options.Total <= 0 {
		return fmt.Sprintf(ProgressUnknownTotalFormat, processor.processed)
	}
	return fmt.Sprintf(ProgressMessageFormat, processor.processed, processor.options.Total)
}
