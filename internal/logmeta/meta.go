package logmeta

import "strings"

// ValueKind discriminates the two metadata value representations.
type ValueKind uint8

const (
	// KindLiteral holds a plain string value.
	KindLiteral ValueKind = iota
	// KindTagRef references a shared Tag rendered on demand.
	KindTagRef
)

// Value is a single labelled piece of context attached to a log event.
// Exactly one of the literal string or the tag reference is meaningful,
// determined by the kind. A Value marked Skip is excluded from
// human-readable rendering but still available for lookup by label.
type Value struct {
	Label string
	Skip  bool

	kind    ValueKind
	literal string
	tag     *Tag
}

// NewValue creates a literal metadata value.
func NewValue(label, literal string, skip bool) Value {
	return Value{Label: label, Skip: skip, kind: KindLiteral, literal: literal}
}

// NewTagValue creates a metadata value referencing a shared tag.
func NewTagValue(label string, tag *Tag, skip bool) Value {
	return Value{Label: label, Skip: skip, kind: KindTagRef, tag: tag}
}

// Kind returns the value representation.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Rendered returns the textual form of the value. The encapsulateTag flag
// only affects tag references; literals render identically either way.
func (v Value) Rendered(encapsulateTag bool) string {
	switch v.kind {
	case KindLiteral:
		return v.literal
	case KindTagRef:
		if v.tag == nil {
			return ""
		}
		return v.tag.Render(encapsulateTag)
	}
	return ""
}

// Set is an ordered collection of metadata values attached to the next
// write. It is exclusively owned by one writer or sender; there is no
// internal locking. Insertion order is preserved and significant for
// rendering. The zero value is an empty, usable set.
type Set struct {
	values []Value
}

// Add appends a literal metadata value.
func (s *Set) Add(label, value string, skip bool) {
	s.values = append(s.values, NewValue(label, value, skip))
}

// AddTag appends a metadata value referencing a shared tag.
func (s *Set) AddTag(label string, tag *Tag, skip bool) {
	s.values = append(s.values, NewTagValue(label, tag, skip))
}

// Lookup scans for the first value with the given label and returns its
// rendered form followed by postfix, or the empty string when the label is
// not present. Skip entries participate in lookup.
func (s *Set) Lookup(label string, encapsulateTag bool, postfix string) string {
	for _, v := range s.values {
		if v.Label == label {
			return v.Rendered(encapsulateTag) + postfix
		}
	}
	return ""
}

// Records renders the non-skip values as discrete "LABEL=value" strings for
// structured backends. Tag references honour encapsulateTag; literals do
// not change.
func (s *Set) Records(upcaseLabels, encapsulateTag bool) []string {
	records := make([]string, 0, len(s.values))
	for _, v := range s.values {
		if v.Skip {
			continue
		}
		label := v.Label
		if upcaseLabels {
			label = strings.ToUpper(label)
		}
		if v.kind == KindTagRef {
			records = append(records, label+"="+v.Rendered(encapsulateTag))
		} else {
			records = append(records, label+"="+v.Rendered(true))
		}
	}
	return records
}

// String joins the non-skip values as "label=value" pairs separated by
// ", ", preserving insertion order.
func (s *Set) String() string {
	var b strings.Builder
	first := true
	for _, v := range s.values {
		if v.Skip {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		b.WriteString(v.Label)
		b.WriteString("=")
		b.WriteString(v.Rendered(true))
		first = false
	}
	return b.String()
}

// Len returns the number of values, including skip entries.
func (s *Set) Len() int {
	return len(s.values)
}

// Empty reports whether the set holds no values.
func (s *Set) Empty() bool {
	return len(s.values) == 0
}

// Clear discards all values. Writers call this unconditionally after every
// write so stale metadata never leaks into the next one.
func (s *Set) Clear() {
	s.values = s.values[:0]
}
