package output

import (
	"github.com/temirov/repostats/internal/services/stream"
)

// StreamRenderer consumes run events and writes the final result on Flush.
type StreamRenderer interface {
	Handle(event stream.Event) error
	Flush() error
}
