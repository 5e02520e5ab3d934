package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/temirov/repostats/internal/services/stream"
	"github.com/temirov/repostats/internal/types"
)

type rawStreamRenderer struct {
	stdout   io.Writer
	stderr   io.Writer
	progress ProgressSink
	warnings []string
	totals   *types.Totals
	failure  string
}

// NewRawStreamRenderer returns a renderer that forwards status text to progress
// and prints the plain totals to stdout once the run succeeded. Warnings are
// held back until the progress line is finalized.
func NewRawStreamRenderer(stdout, stderr io.Writer, progress ProgressSink) StreamRenderer {
	if progress == nil {
		progress = NoopProgressSink{}
	}
	return &rawStreamRenderer{stdout: stdout, stderr: stderr, progress: progress}
}

func (renderer *rawStreamRenderer) Handle(event stream.Event) error {
	switch event.Kind {
	case stream.EventKindStart:
		renderer.progress.Start(stream.CountingMessage)
	case stream.EventKindCounted:
		if event.Counted != nil {
			renderer.progress.Report(stream.FoundMessage(event.Counted.Files))
		}
	case stream.EventKindProgress:
		if event.Progress != nil {
			renderer.progress.Report(event.Progress.Message)
		}
	case stream.EventKindWarning:
		if event.Message != nil {
			renderer.warnings = append(renderer.warnings, event.Message.Message)
		}
	case stream.EventKindError:
		if event.Err != nil {
			renderer.failure = event.Err.Message
		}
	case stream.EventKindSummary:
		if event.Summary != nil {
			totals := event.Summary.Totals
			renderer.totals = &totals
		}
	}
	return nil
}

func (renderer *rawStreamRenderer) Flush() error {
	switch {
	case renderer.failure != "":
		renderer.progress.Fail(FailedMessage)
	case renderer.totals == nil:
		renderer.progress.Fail(InterruptedMessage)
	default:
		renderer.progress.Finish(stream.CompletedMessage)
	}

	if renderer.stderr != nil {
		warningLabel := color.New(color.FgYellow)
		for _, warning := range renderer.warnings {
			fmt.Fprintln(renderer.stderr, warningLabel.Sprint(warningPrefix)+warning)
		}
	}

	if renderer.failure != "" || renderer.totals == nil || renderer.stdout == nil {
		return nil
	}
	return WriteTotals(renderer.stdout, *renderer.totals)
}
