package logwriter

import (
	"io"

	"github.com/muesli/termenv"

	"github.com/sessiond/sessiond/internal/events"
)

// ColourMode selects how a ColourStreamWriter picks colours for a line.
type ColourMode uint8

const (
	// ColourNone disables colouring entirely.
	ColourNone ColourMode = iota
	// ColourByCategory picks the colour from the severity alone.
	ColourByCategory
	// ColourByGroup picks the colour from the subsystem, overridden by
	// the category colour when the severity exceeds Info.
	ColourByGroup
)

// ParseColourMode maps a configuration string onto a ColourMode.
func ParseColourMode(s string) ColourMode {
	switch s {
	case "category":
		return ColourByCategory
	case "group":
		return ColourByGroup
	}
	return ColourNone
}

type colourSpec struct {
	colour string
	bold   bool
}

// Fixed total mappings over the closed category and group sets. An
// out-of-range value falls back to the most severe category colour.
var categoryColours = map[events.Category]colourSpec{
	events.Debug:    {colour: "12"},
	events.Info:     {colour: "10"},
	events.Warn:     {colour: "11"},
	events.Error:    {colour: "9"},
	events.Critical: {colour: "13"},
	events.Fatal:    {colour: "9", bold: true},
}

var groupColours = map[events.Group]colourSpec{
	events.GroupUndefined: {colour: "7"},
	events.GroupBackend:   {colour: "14"},
	events.GroupClient:    {colour: "12"},
	events.GroupConfig:    {colour: "13"},
	events.GroupNetwork:   {colour: "10"},
	events.GroupSessions:  {colour: "11"},
	events.GroupLogger:    {colour: "6"},
	events.GroupExtension: {colour: "5"},
}

// ColourScheme turns categories and groups into ANSI escape sequences.
// The profile is fixed at construction so output does not depend on
// terminal detection.
type ColourScheme struct {
	mode    ColourMode
	profile termenv.Profile
}

// NewColourScheme creates a scheme using the basic 16-colour ANSI profile.
func NewColourScheme(mode ColourMode) *ColourScheme {
	return &ColourScheme{mode: mode, profile: termenv.ANSI}
}

// Mode returns the colour selection policy.
func (s *ColourScheme) Mode() ColourMode {
	return s.mode
}

// ByCategory returns the start sequence for the given severity.
func (s *ColourScheme) ByCategory(ctg events.Category) string {
	spec, ok := categoryColours[ctg]
	if !ok {
		spec = categoryColours[events.Fatal]
	}
	return s.sequence(spec)
}

// ByGroup returns the start sequence for the given subsystem.
func (s *ColourScheme) ByGroup(grp events.Group) string {
	spec, ok := groupColours[grp]
	if !ok {
		spec = groupColours[events.GroupUndefined]
	}
	return s.sequence(spec)
}

// Reset returns the sequence that restores default attributes.
func (s *ColourScheme) Reset() string {
	return termenv.CSI + termenv.ResetSeq + "m"
}

func (s *ColourScheme) sequence(spec colourSpec) string {
	seq := ""
	if spec.bold {
		seq += termenv.CSI + termenv.BoldSeq + "m"
	}
	return seq + termenv.CSI + s.profile.Color(spec.colour).Sequence(false) + "m"
}

// ColourStreamWriter decorates a StreamWriter with a colour policy. It is
// a single decoration level: the scheme is a value composed into the
// writer, not a further subclass layer.
type ColourStreamWriter struct {
	*StreamWriter

	scheme *ColourScheme
}

// NewColourStreamWriter creates a coloured stream writer on the given sink.
func NewColourStreamWriter(out io.Writer, scheme *ColourScheme) *ColourStreamWriter {
	return &ColourStreamWriter{
		StreamWriter: NewStreamWriter(out),
		scheme:       scheme,
	}
}

// WritePrefixed applies the scheme's colour policy. Under ColourByGroup
// the message body keeps the group colour while the line is initialised
// with the category colour whenever the severity exceeds Info.
func (w *ColourStreamWriter) WritePrefixed(grp events.Group, ctg events.Category, data, colourStart, colourEnd string) {
	switch w.scheme.Mode() {
	case ColourByCategory:
		w.StreamWriter.WritePrefixed(grp, ctg, data,
			w.scheme.ByCategory(ctg), w.scheme.Reset())

	case ColourByGroup:
		grpCol := w.scheme.ByGroup(grp)
		lineCol := grpCol
		if ctg > events.Info {
			lineCol = w.scheme.ByCategory(ctg)
		}
		w.StreamWriter.WritePrefixed(grp, ctg, grpCol+data,
			lineCol, w.scheme.Reset())

	default:
		w.StreamWriter.WritePrefixed(grp, ctg, data, colourStart, colourEnd)
	}
}

// WriteEvent routes through the colour policy; the embedded
// StreamWriter's WriteEvent would bypass it.
func (w *ColourStreamWriter) WriteEvent(ev events.LogEvent) {
	w.WritePrefixed(ev.Group, ev.Category, ev.Message, "", "")
}
