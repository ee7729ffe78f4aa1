package logwriter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sessiond/sessiond/internal/events"
	"github.com/sessiond/sessiond/internal/logmeta"
)

func newTestStreamWriter(buf *bytes.Buffer) *StreamWriter {
	w := NewStreamWriter(buf)
	w.EnableTimestamp(false)
	return w
}

func lines(buf *bytes.Buffer) []string {
	out := strings.TrimSuffix(buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestStreamWriterMetadataLine(t *testing.T) {
	var buf bytes.Buffer
	w := newTestStreamWriter(&buf)

	w.AddMeta("user", "alice", false)
	w.AddMeta("ip", "10.0.0.1", true)
	w.WriteData("connected", "", "")

	got := lines(&buf)
	if len(got) != 2 {
		t.Fatalf("got %d lines, want metadata line + message: %q", len(got), got)
	}
	if !strings.Contains(got[0], "user=alice") {
		t.Errorf("metadata line %q missing user=alice", got[0])
	}
	if strings.Contains(got[0], "ip=10.0.0.1") {
		t.Errorf("metadata line %q contains skip entry", got[0])
	}
	if got[1] != "connected" {
		t.Errorf("message line = %q, want connected", got[1])
	}
}

func TestStreamWriterMetadataClearedAfterWrite(t *testing.T) {
	var buf bytes.Buffer
	w := newTestStreamWriter(&buf)

	w.AddMeta("user", "alice", false)
	w.WriteData("first", "", "")

	buf.Reset()
	w.WriteData("second", "", "")

	got := lines(&buf)
	if len(got) != 1 {
		t.Fatalf("second write produced %d lines, want 1: %q", len(got), got)
	}
	if strings.Contains(got[0], "user=alice") {
		t.Errorf("stale metadata leaked into second write: %q", got[0])
	}
}

func TestStreamWriterPrependMeta(t *testing.T) {
	var buf bytes.Buffer
	w := newTestStreamWriter(&buf)

	w.SetPrependMeta("user", false)
	w.AddMeta("user", "bob", false)
	w.WriteData("login", "", "")

	got := lines(&buf)
	msg := got[len(got)-1]
	if !strings.HasPrefix(msg, "bob login") {
		t.Errorf("message line = %q, want prefix %q", msg, "bob login")
	}
}

func TestStreamWriterPrependOnMetaLine(t *testing.T) {
	var buf bytes.Buffer
	w := newTestStreamWriter(&buf)

	w.SetPrependMeta("session", true)
	w.AddMeta("session", "s-42", true)
	w.AddMeta("user", "bob", false)
	w.WriteData("login", "", "")

	got := lines(&buf)
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(got), got)
	}
	if !strings.HasPrefix(got[0], "s-42 ") {
		t.Errorf("metadata line = %q, want s-42 prefix", got[0])
	}
	if !strings.HasPrefix(got[1], "s-42 login") {
		t.Errorf("message line = %q, want s-42 login", got[1])
	}
}

func TestStreamWriterPrependMissingLabel(t *testing.T) {
	var buf bytes.Buffer
	w := newTestStreamWriter(&buf)

	w.SetPrependMeta("absent", false)
	w.WriteData("still works", "", "")

	got := lines(&buf)
	if len(got) != 1 || got[0] != "still works" {
		t.Errorf("output = %q, want plain message when prepend label is unmatched", got)
	}
}

func TestStreamWriterPrependStateIsOneShot(t *testing.T) {
	var buf bytes.Buffer
	w := newTestStreamWriter(&buf)

	w.SetPrependMeta("user", true)
	w.AddMeta("user", "bob", false)
	w.WriteData("first", "", "")

	buf.Reset()
	w.AddMeta("user", "bob", false)
	w.WriteData("second", "", "")

	got := lines(&buf)
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(got), got)
	}
	if strings.HasPrefix(got[0], "bob ") {
		t.Errorf("prepend flag leaked into next write's metadata line: %q", got[0])
	}
	if strings.HasPrefix(got[1], "bob ") {
		t.Errorf("prepend label leaked into next write's message: %q", got[1])
	}
}

func TestStreamWriterTagMetadata(t *testing.T) {
	var buf bytes.Buffer
	w := newTestStreamWriter(&buf)

	tag := logmeta.NewTag("busname", "/session/1")
	w.AddMetaTag("session", tag, false)
	w.WriteData("up", "", "")

	got := lines(&buf)
	if !strings.Contains(got[0], "session="+tag.Render(true)) {
		t.Errorf("metadata line %q missing encapsulated tag", got[0])
	}
}

func TestStreamWriterColourPassthrough(t *testing.T) {
	var buf bytes.Buffer
	w := newTestStreamWriter(&buf)

	w.WriteData("alert", "<C>", "</C>")

	got := lines(&buf)
	if got[0] != "<C>alert</C>" {
		t.Errorf("line = %q, want colour markers wrapped around data", got[0])
	}
}

func TestStreamWriterTimestamp(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamWriter(&buf)
	w.now = func() time.Time {
		return time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC)
	}

	w.WriteData("stamped", "", "")

	got := lines(&buf)
	if got[0] != "2026-08-23 10:30:00 stamped" {
		t.Errorf("line = %q, want timestamp prefix", got[0])
	}
	if !w.TimestampEnabled() {
		t.Error("TimestampEnabled should default to true")
	}
}

func TestStreamWriterWritePrefixed(t *testing.T) {
	var buf bytes.Buffer
	w := newTestStreamWriter(&buf)

	w.WritePrefixed(events.GroupBackend, events.Warn, "slow response", "", "")

	got := lines(&buf)
	if got[0] != "BACKEND WARN: slow response" {
		t.Errorf("line = %q, want group/category prefix", got[0])
	}
}

func TestStreamWriterMetadataDisabled(t *testing.T) {
	var buf bytes.Buffer
	w := newTestStreamWriter(&buf)
	w.EnableMetadata(false)

	w.AddMeta("user", "alice", false)
	w.WriteData("quiet", "", "")

	got := lines(&buf)
	if len(got) != 1 || got[0] != "quiet" {
		t.Errorf("output = %q, want single plain line with metadata disabled", got)
	}
}

func TestStreamWriterFlush(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamWriter(&buf)
	// bytes.Buffer has no Flush or Sync; this must be a no-op.
	if err := w.Flush(); err != nil {
		t.Errorf("Flush on plain buffer: %v", err)
	}
}
