package logwriter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"

	"github.com/sessiond/sessiond/internal/events"
)

// fieldPrefix namespaces the structured fields this service submits so
// they never collide with fields the journal defines itself.
const fieldPrefix = "SESSIOND_"

// JournalPriority returns the journal severity for a log category. Total
// over the closed category set; out-of-range values map to the critical
// priority.
func JournalPriority(ctg events.Category) journal.Priority {
	switch ctg {
	case events.Debug:
		return journal.PriDebug
	case events.Info:
		return journal.PriInfo
	case events.Warn:
		return journal.PriWarning
	case events.Error:
		return journal.PriErr
	case events.Critical:
		return journal.PriCrit
	case events.Fatal:
		return journal.PriAlert
	}
	return journal.PriCrit
}

// JournaldWriter submits events to the systemd journal as one atomic
// structured record: a namespaced field per metadata entry, the session
// token when present, the log group and category, and the message. The
// journal supplies its own timestamps, so TimestampEnabled reports true
// unconditionally. Submission failures are reported on the diagnostics
// stream and never raised to the caller.
type JournaldWriter struct {
	writerState

	send func(message string, priority journal.Priority, vars map[string]string) error
	diag io.Writer
}

// NewJournaldWriter creates a writer submitting to the local journal.
// Diagnostics go to stderr.
func NewJournaldWriter() *JournaldWriter {
	return &JournaldWriter{
		writerState: newWriterState(),
		send:        journal.Send,
		diag:        os.Stderr,
	}
}

// TimestampEnabled always reports true: the journal timestamps every
// record itself.
func (w *JournaldWriter) TimestampEnabled() bool {
	return true
}

// WriteData submits the data as an informational record with no group.
func (w *JournaldWriter) WriteData(data, colourStart, colourEnd string) {
	w.WriteEvent(events.NewLogEvent(events.GroupUndefined, events.Info, data))
}

// WritePrefixed submits the data under the given group and category; the
// textual prefix is skipped in favour of the structured fields.
func (w *JournaldWriter) WritePrefixed(grp events.Group, ctg events.Category, data, colourStart, colourEnd string) {
	w.WriteEvent(events.NewLogEvent(grp, ctg, data))
}

// WriteEvent submits one structured journal record. The field map is
// rebuilt per call; nothing is retained across submissions.
func (w *JournaldWriter) WriteEvent(ev events.LogEvent) {
	defer w.resetAfterWrite()

	vars := make(map[string]string, w.meta.Len()+3)
	for _, record := range w.meta.Records(true, false) {
		name, value, ok := strings.Cut(record, "=")
		if !ok {
			continue
		}
		vars[fieldPrefix+sanitizeFieldName(name)] = value
	}

	if ev.SessionToken != "" {
		vars[fieldPrefix+"SESSION_TOKEN"] = ev.SessionToken
	}
	vars[fieldPrefix+"LOG_GROUP"] = ev.Group.String()
	vars[fieldPrefix+"LOG_CATEGORY"] = ev.Category.String()

	msg := ""
	if w.prependPrefix && w.prependToMetaLine {
		msg = w.meta.Lookup(w.prependLabel, true, " ")
	}
	msg += ev.Message

	if err := w.send(msg, JournalPriority(ev.Category), vars); err != nil {
		fmt.Fprintf(w.diag, "journal submission failed: %v\n", err)
	}
}

// sanitizeFieldName maps a metadata label onto the journal's field-name
// alphabet (upper-case letters, digits, underscore).
func sanitizeFieldName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
