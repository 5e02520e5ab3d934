// Package stream runs the counting and processing passes and publishes their progress as events.
package stream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/repostats/internal/commands"
)

const (
	// CountingMessage is the status shown while eligible files are counted.
	CountingMessage = "Counting files..."
	// FoundMessageFormat is the status shown once the counting pass completes.
	FoundMessageFormat = "Found %d files to process"
	// CompletedMessage is the status shown once the processing pass completes.
	CompletedMessage = "Processing complete."

	errorEmptyRootMessage  = "stream: root path is empty"
	errorNilChannelMessage = "stream: event channel is nil"
)

// Options configures a run.
type Options struct {
	Root        string
	Rules       commands.ExclusionRules
	Denominator string
	Logger      *zap.Logger
}

type emitter struct {
	ctx  context.Context
	out  chan<- Event
	root string
}

func newEmitter(ctx context.Context, out chan<- Event, root string) *emitter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &emitter{ctx: ctx, out: out, root: root}
}

func (e *emitter) send(event Event) error {
	event.Version = SchemaVersion
	if event.Path == "" {
		event.Path = e.root
	}
	if event.EmittedAt.IsZero() {
		event.EmittedAt = time.Now().UTC()
	}
	select {
	case <-e.ctx.Done():
		return e.ctx.Err()
	case e.out <- event:
		return nil
	}
}

func (e *emitter) fail(cause error) error {
	if !errors.Is(cause, context.Canceled) {
		_ = e.send(Event{Kind: EventKindError, Err: &ErrorEvent{Message: cause.Error()}})
	}
	return cause
}

// progressEmitter forwards processor status lines as progress events. A send
// that fails because the run was cancelled is dropped; the walk notices the
// cancellation before its next entry.
type progressEmitter struct {
	emitter   *emitter
	total     int
	processed int
}

func (reporter *progressEmitter) Report(message string) {
	reporter.processed++
	_ = reporter.emitter.send(Event{
		Kind: EventKindProgress,
		Progress: &ProgressEvent{
			Message:   message,
			Processed: reporter.processed,
			Total:     reporter.total,
		},
	})
}

// Run counts the eligible files under options.Root, then processes them,
// publishing start, counted, progress, summary and done events on out. The
// first failure is published as an error event and returned; no summary
// follows it.
func Run(ctx context.Context, options Options, out chan<- Event) error {
	if options.Root == "" {
		return errors.New(errorEmptyRootMessage)
	}
	if out == nil {
		return errors.New(errorNilChannelMessage)
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	emitter := newEmitter(ctx, out, options.Root)
	if err := emitter.send(Event{Kind: EventKindStart}); err != nil {
		return err
	}

	countStartedAt := time.Now()
	total, countError := commands.CountEligible(emitter.ctx, options.Root, options.Rules)
	if countError != nil {
		logger.Debug("counting pass failed", zap.String("root", options.Root), zap.Error(countError))
		return emitter.fail(countError)
	}
	logger.Debug("counting pass finished", zap.String("root", options.Root), zap.Int("files", total), zap.Duration("elapsed", time.Since(countStartedAt)))
	if err := emitter.send(Event{Kind: EventKindCounted, Counted: &CountedEvent{Files: total}}); err != nil {
		return err
	}

	processStartedAt := time.Now()
	processor := commands.NewProcessor(commands.ProcessorOptions{
		Rules:       options.Rules,
		Progress:    &progressEmitter{emitter: emitter, total: total},
		Total:       total,
		Denominator: options.Denominator,
	})
	totals, processError := processor.Process(emitter.ctx, options.Root)
	if processError != nil {
		logger.Debug("processing pass failed", zap.String("root", options.Root), zap.Error(processError))
		return emitter.fail(processError)
	}
	logger.Debug("processing pass finished",
		zap.String("root", options.Root),
		zap.Int("lines", totals.Lines),
		zap.Int("words", totals.Words),
		zap.Int("files", totals.Files),
		zap.Duration("elapsed", time.Since(processStartedAt)),
	)
	if totals.Files != total {
		warning := fmt.Sprintf("tree changed during the run: counted %d files, processed %d", total, totals.Files)
		if err := emitter.send(Event{Kind: EventKindWarning, Message: &LogEvent{Level: "warning", Message: warning}}); err != nil {
			return err
		}
	}

	if err := emitter.send(Event{Kind: EventKindSummary, Summary: &SummaryEvent{Totals: totals}}); err != nil {
		return err
	}
	return emitter.send(Event{Kind: EventKindDone})
}

// FoundMessage renders the status shown after the counting pass.
func FoundMessage(total int) string {
	return fmt.Sprintf(FoundMessageFormat, total)
}

var _ commands.ProgressReporter = (*progressEmitter)(nil)
