package logmeta

import (
	"strings"
	"testing"
)

func TestLiteralValueRendering(t *testing.T) {
	v := NewValue("user", "alice", false)
	if v.Kind() != KindLiteral {
		t.Fatalf("kind = %v, want KindLiteral", v.Kind())
	}
	// Encapsulation only affects tag references.
	if v.Rendered(true) != "alice" || v.Rendered(false) != "alice" {
		t.Errorf("literal rendered as %q / %q, want alice for both",
			v.Rendered(true), v.Rendered(false))
	}
}

func TestTagValueRendering(t *testing.T) {
	tag := NewTag("net.sessiond", "/sessions/1")
	v := NewTagValue("session", tag, false)

	plain := v.Rendered(false)
	encaps := v.Rendered(true)

	if encaps != "{tag:"+plain+"}" {
		t.Errorf("encapsulated form %q does not wrap plain form %q", encaps, plain)
	}
	if len(plain) != 64 {
		t.Errorf("plain tag length = %d, want 64 hex chars", len(plain))
	}
}

func TestTagDeterministic(t *testing.T) {
	a := NewTag("origin", "x")
	b := NewTag("origin", "x")
	c := NewTag("origin", "y")

	if a.Render(false) != b.Render(false) {
		t.Error("identical origins must produce identical tags")
	}
	if a.Render(false) == c.Render(false) {
		t.Error("different origins must produce different tags")
	}
}

func TestSetLookup(t *testing.T) {
	var s Set
	s.Add("user", "alice", false)
	s.Add("user", "bob", false)
	s.Add("ip", "10.0.0.1", true)

	if got := s.Lookup("user", true, " "); got != "alice " {
		t.Errorf("Lookup(user) = %q, want first match %q", got, "alice ")
	}
	// Skip entries are still found by lookup.
	if got := s.Lookup("ip", true, ""); got != "10.0.0.1" {
		t.Errorf("Lookup(ip) = %q, want 10.0.0.1", got)
	}
	if got := s.Lookup("absent", true, " "); got != "" {
		t.Errorf("Lookup(absent) = %q, want empty", got)
	}
}

func TestSetString(t *testing.T) {
	var s Set
	s.Add("user", "alice", false)
	s.Add("ip", "10.0.0.1", true)
	s.Add("device", "tun0", false)

	if got, want := s.String(), "user=alice, device=tun0"; got != want {
		t.Errorf("Set.String() = %q, want %q", got, want)
	}
}

func TestSetRecords(t *testing.T) {
	tag := NewTag("session", "1")
	var s Set
	s.Add("user", "alice", false)
	s.Add("internal", "x", true)
	s.AddTag("session", tag, false)

	records := s.Records(true, false)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2 (skip entries excluded)", len(records))
	}
	if records[0] != "USER=alice" {
		t.Errorf("records[0] = %q, want USER=alice", records[0])
	}
	if records[1] != "SESSION="+tag.Render(false) {
		t.Errorf("records[1] = %q, want plain tag form", records[1])
	}
	for _, r := range records {
		if strings.Contains(r, "internal") {
			t.Errorf("skip entry leaked into records: %q", r)
		}
	}
}

func TestSetClear(t *testing.T) {
	var s Set
	s.Add("a", "1", false)
	s.Add("b", "2", false)

	if s.Empty() || s.Len() != 2 {
		t.Fatalf("unexpected set shape before clear: len=%d", s.Len())
	}
	s.Clear()
	if !s.Empty() || s.Len() != 0 {
		t.Errorf("set not empty after Clear: len=%d", s.Len())
	}
	if got := s.String(); got != "" {
		t.Errorf("cleared set renders %q, want empty", got)
	}
}
