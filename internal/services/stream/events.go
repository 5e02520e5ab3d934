package stream

import (
	"time"

	"github.com/temirov/repostats/internal/types"
)

// SchemaVersion is stamped on every emitted event.
const SchemaVersion = 1

type EventKind string

const (
	EventKindStart    EventKind = "start"
	EventKindCounted  EventKind = "counted"
	EventKindProgress EventKind = "progress"
	EventKindSummary  EventKind = "summary"
	EventKindWarning  EventKind = "warning"
	EventKindError    EventKind = "error"
	EventKindDone     EventKind = "done"
)

// Event is one step of a run, in the order the producer observed it.
type Event struct {
	Version   int       `json:"version"`
	Kind      EventKind `json:"kind"`
	Path      string    `json:"path,omitempty"`
	EmittedAt time.Time `json:"emittedAt,omitempty"`

	Counted  *CountedEvent  `json:"counted,omitempty"`
	Progress *ProgressEvent `json:"progress,omitempty"`
	Summary  *SummaryEvent  `json:"summary,omitempty"`
	Message  *LogEvent      `json:"message,omitempty"`
	Err      *ErrorEvent    `json:"error,omitempty"`
}

// CountedEvent carries the result of the counting pass.
type CountedEvent struct {
	Files int `json:"files"`
}

// ProgressEvent carries the status line emitted after each processed file.
type ProgressEvent struct {
	Message   string `json:"message"`
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
}

type SummaryEvent struct {
	Totals types.Totals `json:"totals"`
}

type LogEvent struct {
	Level   string `json:"level,omitempty"`
	Message string `json:"message"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}
