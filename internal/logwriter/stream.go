package logwriter

import (
	"io"
	"strings"
	"time"

	"github.com/sessiond/sessiond/internal/events"
)

// timestampLayout matches the classic single-line daemon log format.
const timestampLayout = "2006-01-02 15:04:05"

// StreamWriter renders events as text lines on an arbitrary sink, which
// may be a terminal, a pipe or an open file. Each line is terminated with
// a newline; colour escape sequences are passed through verbatim when the
// caller supplies them.
type StreamWriter struct {
	writerState

	out io.Writer
	now func() time.Time
}

// NewStreamWriter creates a StreamWriter on the given sink.
func NewStreamWriter(out io.Writer) *StreamWriter {
	return &StreamWriter{
		writerState: newWriterState(),
		out:         out,
		now:         time.Now,
	}
}

// Flush flushes the sink when it supports flushing (bufio writers, files
// exposing Sync). Callers should flush before the process exits.
func (w *StreamWriter) Flush() error {
	switch s := w.out.(type) {
	case interface{ Flush() error }:
		return s.Flush()
	case interface{ Sync() error }:
		return s.Sync()
	}
	return nil
}

// WriteData renders the pending metadata line (when enabled and present)
// followed by the data line. The sticky prepend label, when set and
// matched, is resolved in front of the message body; with the one-shot
// meta-line flag it also leads the metadata line.
func (w *StreamWriter) WriteData(data, colourStart, colourEnd string) {
	defer w.resetAfterWrite()

	if w.logMeta && !w.meta.Empty() {
		metaLine := ""
		if w.prependToMetaLine {
			metaLine += w.meta.Lookup(w.prependLabel, true, " ")
		}
		metaLine += w.meta.String()
		// A set holding only skip entries renders nothing; no blank line.
		if metaLine != "" {
			var line strings.Builder
			line.WriteString(w.stamp())
			line.WriteString(colourStart)
			line.WriteString(metaLine)
			line.WriteString(colourEnd)
			io.WriteString(w.out, line.String()+"\n")
		}
	}

	var line strings.Builder
	line.WriteString(w.stamp())
	line.WriteString(colourStart)
	if w.prependLabel != "" {
		line.WriteString(w.meta.Lookup(w.prependLabel, true, " "))
	}
	line.WriteString(data)
	line.WriteString(colourEnd)
	io.WriteString(w.out, line.String()+"\n")
}

// WritePrefixed formats the group/category prefix into the data line.
func (w *StreamWriter) WritePrefixed(grp events.Group, ctg events.Category, data, colourStart, colourEnd string) {
	ev := events.LogEvent{Group: grp, Category: ctg}
	w.WriteData(ev.Prefix()+data, colourStart, colourEnd)
}

// WriteEvent writes a populated log event with its group/category prefix.
func (w *StreamWriter) WriteEvent(ev events.LogEvent) {
	w.WritePrefixed(ev.Group, ev.Category, ev.Message, "", "")
}

func (w *StreamWriter) stamp() string {
	if !w.timestamp {
		return ""
	}
	return w.now().Format(timestampLayout) + " "
}
