// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/repostats/internal/commands"
	"github.com/temirov/repostats/internal/config"
	"github.com/temirov/repostats/internal/output"
	"github.com/temirov/repostats/internal/services/stream"
	"github.com/temirov/repostats/internal/utils"
)

const (
	versionFlagName      = "version"
	versionTemplate      = utils.ApplicationName + " version: %s\n"
	rootUse              = utils.ApplicationName
	rootShortDescription = "count lines, words and files below the current directory"
	rootLongDescription  = `repostats walks the current working directory and prints the total number
of lines, words and files it contains. The node_modules and .git directories
are always skipped. A live progress line is shown on terminals; it can be
tuned in .repostats.yaml or through REPOSTATS_PROGRESS_* variables.`
	rootUsageExample = `  # Count the current repository
  repostats

  # Use the per-directory progress fraction
  REPOSTATS_PROGRESS_DENOMINATOR=directory repostats`

	versionFlagDescription      = "display application version"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	configurationErrorFormat    = "load configuration: %w"
	interruptedErrorFormat      = "run interrupted: %w"
)

// Execute runs the repostats application.
func Execute(logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	rootCommand := createRootCommand(logger, os.Stdout, os.Stderr)
	return rootCommand.ExecuteContext(ctx)
}

// createRootCommand builds the root Cobra command.
func createRootCommand(logger *zap.Logger, stdout io.Writer, stderr io.Writer) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				fmt.Fprintf(stdout, versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			workingDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
			}
			configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: workingDirectory})
			if configurationError != nil {
				return fmt.Errorf(configurationErrorFormat, configurationError)
			}
			return runStatistics(command.Context(), logger, stdout, stderr, workingDirectory, configuration)
		},
	}
	rootCommand.SetOut(stdout)
	rootCommand.SetErr(stderr)
	rootCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	return rootCommand
}

// runStatistics counts and processes workingDirectory with the fixed exclusion rules.
func runStatistics(
	ctx context.Context,
	logger *zap.Logger,
	stdout io.Writer,
	stderr io.Writer,
	workingDirectory string,
	configuration config.ApplicationConfiguration,
) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var progress output.ProgressSink = output.NoopProgressSink{}
	if configuration.ProgressEnabled() {
		progress = output.NewSpinner(stderr, configuration.Progress.Interval)
	}
	renderer := output.NewRawStreamRenderer(stdout, stderr, progress)

	defer func() {
		if flushErr := renderer.Flush(); flushErr != nil && err == nil {
			err = flushErr
		}
	}()

	options := stream.Options{
		Root:        workingDirectory,
		Rules:       commands.DefaultExclusionRules(),
		Denominator: configuration.Progress.Denominator,
		Logger:      logger,
	}
	logger.Debug("starting run", zap.String("root", workingDirectory), zap.String("denominator", options.Denominator))

	producer := func(streamCtx context.Context, ch chan<- stream.Event) error {
		return stream.Run(streamCtx, options, ch)
	}
	consumer := func(event stream.Event) error {
		return renderer.Handle(event)
	}

	if dispatchErr := dispatchStream(ctx, producer, consumer); dispatchErr != nil {
		if errors.Is(dispatchErr, context.Canceled) {
			return fmt.Errorf(interruptedErrorFormat, dispatchErr)
		}
		return dispatchErr
	}
	return nil
}

func dispatchStream(
	ctx context.Context,
	produce func(context.Context, chan<- stream.Event) error,
	consume func(stream.Event) error,
) error {
	group, streamCtx := errgroup.WithContext(ctx)
	events := make(chan stream.Event)

	group.Go(func() error {
		defer close(events)
		return produce(streamCtx, events)
	})

	group.Go(func() error {
		for {
			select {
			case <-streamCtx.Done():
				return streamCtx.Err()
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := consume(event); err != nil {
					return err
				}
			}
		}
	})

	return group.Wait()
}
