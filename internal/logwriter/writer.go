package logwriter

import (
	"github.com/sessiond/sessiond/internal/events"
	"github.com/sessiond/sessiond/internal/logmeta"
)

// Writer renders log events to one destination. Concrete backends:
// StreamWriter, ColourStreamWriter, SyslogWriter, JournaldWriter.
//
// WritePrefixed defaults to formatting the group/category prefix into the
// data handed to WriteData; backends that encode severity natively
// (syslog, journald) override it with a structured mapping instead.
type Writer interface {
	// EnableTimestamp turns timestamp prefixes on or off.
	EnableTimestamp(enabled bool)
	// TimestampEnabled reports whether the destination will carry a
	// timestamp, either written by this backend or supplied by the
	// destination's own daemon.
	TimestampEnabled() bool

	// EnableMetadata turns metadata collection and rendering on or off.
	EnableMetadata(enabled bool)
	MetadataEnabled() bool

	// EnableMessagePrepend controls whether a resolved sticky prepend
	// value may be surfaced before the message body.
	EnableMessagePrepend(enabled bool)
	MessagePrependEnabled() bool

	// AddMeta attaches a literal metadata value to the next write.
	AddMeta(label, value string, skip bool)
	// AddMetaTag attaches a shared-tag metadata value to the next write.
	AddMetaTag(label string, tag *logmeta.Tag, skip bool)

	// SetPrependMeta marks one metadata label whose resolved value is
	// placed immediately before the next write's message body. When
	// alsoOnMetaLine is set the value is surfaced before the metadata
	// line as well; that flag is one-shot and resets on every write.
	SetPrependMeta(label string, alsoOnMetaLine bool)

	// WriteData writes a raw line, optionally wrapped in colour escape
	// sequences.
	WriteData(data, colourStart, colourEnd string)
	// WritePrefixed writes a line prefixed with group/category
	// information, or its backend-specific structured equivalent.
	WritePrefixed(grp events.Group, ctg events.Category, data, colourStart, colourEnd string)
	// WriteEvent writes a populated log event.
	WriteEvent(ev events.LogEvent)
}

// writerState carries the flags and pending metadata shared by every
// backend. It is embedded, not exported; the promoted methods satisfy the
// flag/metadata half of the Writer interface.
type writerState struct {
	timestamp     bool
	logMeta       bool
	prependPrefix bool

	meta              logmeta.Set
	prependLabel      string
	prependToMetaLine bool
}

func newWriterState() writerState {
	return writerState{
		timestamp:     true,
		logMeta:       true,
		prependPrefix: true,
	}
}

func (s *writerState) EnableTimestamp(enabled bool) { s.timestamp = enabled }

func (s *writerState) TimestampEnabled() bool { return s.timestamp }

func (s *writerState) EnableMetadata(enabled bool) { s.logMeta = enabled }

func (s *writerState) MetadataEnabled() bool { return s.logMeta }

func (s *writerState) EnableMessagePrepend(enabled bool) { s.prependPrefix = enabled }

func (s *writerState) MessagePrependEnabled() bool { return s.prependPrefix }

func (s *writerState) AddMeta(label, value string, skip bool) {
	if s.logMeta {
		s.meta.Add(label, value, skip)
	}
}

func (s *writerState) AddMetaTag(label string, tag *logmeta.Tag, skip bool) {
	if s.logMeta {
		s.meta.AddTag(label, tag, skip)
	}
}

func (s *writerState) SetPrependMeta(label string, alsoOnMetaLine bool) {
	s.prependLabel = label
	s.prependToMetaLine = alsoOnMetaLine
}

// resetAfterWrite clears the metadata set and all one-shot prepend state.
// Every backend defers this at the top of its write path so failures
// cannot leak stale metadata into the next call.
func (s *writerState) resetAfterWrite() {
	s.prependLabel = ""
	s.prependToMetaLine = false
	s.meta.Clear()
}
