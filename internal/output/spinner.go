package output

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	// DefaultSpinnerInterval is the frame interval used when none is configured.
	DefaultSpinnerInterval = 80 * time.Millisecond

	successSymbol = "✔"
	failureSymbol = "✖"
	clearLine     = "\r\x1b[K"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ProgressSink renders a single live status line. The driver owns its
// lifecycle: Start once, Report any number of times, then Finish or Fail.
type ProgressSink interface {
	Start(text string)
	Report(text string)
	Finish(text string)
	Fail(text string)
}

// NoopProgressSink discards every update.
type NoopProgressSink struct{}

func (NoopProgressSink) Start(string) {}

func (NoopProgressSink) Report(string) {}

func (NoopProgressSink) Finish(string) {}

func (NoopProgressSink) Fail(string) {}

// Spinner is a ProgressSink that animates on a terminal. When the writer is
// not a terminal it prints nothing until the final Finish or Fail line.
type Spinner struct {
	mutex       sync.Mutex
	writer      io.Writer
	interactive bool
	interval    time.Duration
	text        string
	frame       int
	started     bool
	finished    bool
	stop        chan struct{}
	stopped     chan struct{}
}

// NewSpinner returns a Spinner writing to writer, animating only when writer is a terminal.
func NewSpinner(writer io.Writer, interval time.Duration) *Spinner {
	return newSpinner(writer, interval, isTerminal(writer))
}

func newSpinner(writer io.Writer, interval time.Duration, interactive bool) *Spinner {
	if interval <= 0 {
		interval = DefaultSpinnerInterval
	}
	return &Spinner{
		writer:      writer,
		interactive: interactive,
		interval:    interval,
		stop:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}
}

func isTerminal(writer io.Writer) bool {
	file, isFile := writer.(*os.File)
	if !isFile {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// Start shows text and begins animating. Calls after the first are ignored.
func (spinner *Spinner) Start(text string) {
	spinner.mutex.Lock()
	defer spinner.mutex.Unlock()
	if spinner.started || spinner.finished {
		return
	}
	spinner.started = true
	spinner.text = text
	if !spinner.interactive {
		close(spinner.stopped)
		return
	}
	spinner.render()
	go spinner.animate()
}

// Report replaces the status text.
func (spinner *Spinner) Report(text string) {
	spinner.mutex.Lock()
	defer spinner.mutex.Unlock()
	if spinner.finished {
		return
	}
	spinner.text = text
	if spinner.interactive && spinner.started {
		spinner.render()
	}
}

// Finish stops the animation and prints text with a success mark.
func (spinner *Spinner) Finish(text string) {
	spinner.finalize(color.New(color.FgGreen).Sprint(successSymbol), text)
}

// Fail stops the animation and prints text with a failure mark.
func (spinner *Spinner) Fail(text string) {
	spinner.finalize(color.New(color.FgRed).Sprint(failureSymbol), text)
}

// Text returns the current status text.
func (spinner *Spinner) Text() string {
	spinner.mutex.Lock()
	defer spinner.mutex.Unlock()
	return spinner.text
}

func (spinner *Spinner) finalize(symbol string, text string) {
	spinner.mutex.Lock()
	if spinner.finished {
		spinner.mutex.Unlock()
		return
	}
	spinner.finished = true
	wasStarted := spinner.started
	spinner.text = text
	spinner.mutex.Unlock()

	if wasStarted {
		if spinner.interactive {
			close(spinner.stop)
		}
		<-spinner.stopped
	}

	spinner.mutex.Lock()
	defer spinner.mutex.Unlock()
	if spinner.interactive {
		fmt.Fprint(spinner.writer, clearLine)
	}
	fmt.Fprintf(spinner.writer, "%s %s\n", symbol, text)
}

func (spinner *Spinner) animate() {
	defer close(spinner.stopped)
	ticker := time.NewTicker(spinner.interval)
	defer ticker.Stop()
	for {
		select {
		case <-spinner.stop:
			return
		case <-ticker.C:
			spinner.mutex.Lock()
			spinner.frame = (spinner.frame + 1) % len(spinnerFrames)
			spinner.render()
			spinner.mutex.Unlock()
		}
	}
}

// render draws the current frame; callers hold the mutex.
func (spinner *Spinner) render() {
	frame := color.New(color.FgCyan).Sprint(spinnerFrames[spinner.frame])
	fmt.Fprintf(spinner.writer, "%s%s %s", clearLine, frame, spinner.text)
}
