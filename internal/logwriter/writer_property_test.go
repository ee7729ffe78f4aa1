package logwriter

import (
	"bytes"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/sessiond/sessiond/internal/events"
)

// For any sequence of AddMeta calls followed by a write, the metadata set
// is empty immediately after the call returns.
func TestMetadataAlwaysClearedAfterWrite(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var buf bytes.Buffer
		w := NewStreamWriter(&buf)
		w.EnableTimestamp(false)

		n := rapid.IntRange(0, 8).Draw(rt, "n")
		for i := 0; i < n; i++ {
			w.AddMeta(
				rapid.StringMatching(`[a-z]{1,8}`).Draw(rt, "label"),
				rapid.StringMatching(`[a-z0-9]{1,8}`).Draw(rt, "value"),
				rapid.Bool().Draw(rt, "skip"),
			)
		}
		w.WriteData(rapid.StringMatching(`[a-z ]{1,20}`).Draw(rt, "msg"), "", "")

		if !w.meta.Empty() {
			rt.Errorf("metadata set holds %d entries after write", w.meta.Len())
		}
		if w.prependLabel != "" || w.prependToMetaLine {
			rt.Error("prepend state not reset after write")
		}
	})
}

// For any write with a sticky prepend label and a matching entry, the
// rendered output contains the resolved value before the message body.
func TestPrependValuePrecedesMessage(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var buf bytes.Buffer
		w := NewStreamWriter(&buf)
		w.EnableTimestamp(false)

		label := rapid.StringMatching(`[a-z]{1,8}`).Draw(rt, "label")
		value := rapid.StringMatching(`[a-z0-9]{1,8}`).Draw(rt, "value")
		msg := rapid.StringMatching(`[a-z]{1,12}`).Draw(rt, "msg")

		w.SetPrependMeta(label, false)
		w.AddMeta(label, value, true)
		w.WriteData(msg, "", "")

		out := strings.TrimSuffix(buf.String(), "\n")
		if out != value+" "+msg {
			rt.Errorf("output = %q, want %q", out, value+" "+msg)
		}
	})
}

// Consecutive writes never share metadata: whatever the first write
// attached, the second write's output contains no metadata line.
func TestConsecutiveWritesIsolated(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var buf bytes.Buffer
		w := NewStreamWriter(&buf)
		w.EnableTimestamp(false)

		label := rapid.StringMatching(`[a-z]{1,8}`).Draw(rt, "label")
		value := rapid.StringMatching(`[a-z0-9]{1,8}`).Draw(rt, "value")
		w.AddMeta(label, value, false)
		w.WriteData("first", "", "")

		buf.Reset()
		w.WriteData("second", "", "")

		out := strings.TrimSuffix(buf.String(), "\n")
		if out != "second" {
			rt.Errorf("second write rendered %q, want bare message", out)
		}
	})
}

// The severity-to-priority mappings agree on relative ordering with the
// category order itself: a more severe category never maps to a less
// urgent syslog priority (syslog priorities decrease with urgency).
func TestSyslogMappingMonotone(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := events.Category(rapid.IntRange(0, int(events.Fatal)).Draw(rt, "a"))
		b := events.Category(rapid.IntRange(0, int(events.Fatal)).Draw(rt, "b"))
		if a < b && SyslogPriority(a) < SyslogPriority(b) {
			rt.Errorf("category %s maps to more urgent priority than %s", a, b)
		}
	})
}
