package observability

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// InitFrameLogger returns a structured logger for frame dumps. Console
// output is human readable; otherwise each event is one JSON line.
func InitFrameLogger(out io.Writer, app string, console bool) zerolog.Logger {
	if console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(out).With().Timestamp().Str("app", app).Logger()
}

// FrameEvent is the loggable summary of one frame.
type FrameEvent struct {
	Direction  string
	Command    string
	Status     uint8
	BodyLength int64
	Fields     map[string]any
}

func LogFrame(logger zerolog.Logger, ev FrameEvent) {
	event := logger.Info()
	if ev.Status != 0 {
		event = logger.Warn()
	}
	event = event.
		Str("direction", ev.Direction).
		Str("command", ev.Command).
		Uint8("status", ev.Status).
		Int64("body_length", ev.BodyLength)
	if len(ev.Fields) > 0 {
		event = event.Fields(ev.Fields)
	}
	event.Msg("frame")
}
