package signals

import (
	"bytes"
	"testing"

	"pgregory.net/rapid"

	"github.com/sessiond/sessiond/internal/events"
	"github.com/sessiond/sessiond/internal/logwriter"
)

func propertySender(t *rapid.T) (*Sender, *fakeTransport) {
	transport := newFakeTransport()
	s, err := NewSender(transport, logwriter.NewStreamWriter(&bytes.Buffer{}), SenderConfig{
		Group:          events.GroupBackend,
		SessionToken:   "tok",
		ManagerService: "net.sessiond.manager",
		LoggerService:  "net.sessiond.log",
		Diagnostics:    &bytes.Buffer{},
		Terminator:     &fakeScheduler{},
	})
	if err != nil {
		t.Fatalf("creating sender: %v", err)
	}
	return s, transport
}

func statusGen() *rapid.Generator[events.Status] {
	return rapid.Custom(func(t *rapid.T) events.Status {
		return events.NewStatus(
			events.StatusMajor(rapid.IntRange(0, 3).Draw(t, "major")),
			events.StatusMinor(rapid.IntRange(0, 7).Draw(t, "minor")),
			rapid.StringN(0, 32, 64).Draw(t, "msg"),
		)
	})
}

// The retained snapshot always equals the last status sent, no matter
// what other traffic is interleaved.
func TestLastStatusTracksFinalSend(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s, _ := propertySender(t)

		statuses := rapid.SliceOfN(statusGen(), 1, 16).Draw(t, "statuses")
		for _, st := range statuses {
			s.SendStatusChangeEvent(st)
			if rapid.Bool().Draw(t, "interleave") {
				s.Log(events.NewLogEvent(events.GroupBackend, events.Info, "x"), true)
			}
		}

		got, ok := s.LastStatusChange()
		if !ok {
			t.Fatal("no snapshot after sends")
		}
		if want := statuses[len(statuses)-1]; got != want {
			t.Fatalf("snapshot = %+v, want %+v", got, want)
		}
	})
}

// Registration requests never leak into the general subscriber fan-out,
// and broadcast signals never reach a registration-only recipient kind.
func TestSignalKindsStayInTheirGroups(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s, transport := propertySender(t)

		n := rapid.IntRange(1, 20).Draw(t, "ops")
		for i := 0; i < n; i++ {
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				s.SendRegistrationRequest(":1.99", "tok", 1)
			case 1:
				s.SendStatusChangeEvent(statusGen().Draw(t, "st"))
			case 2:
				s.Log(events.NewLogEvent(events.GroupBackend, events.Warn,
					rapid.StringN(1, 16, 32).Draw(t, "m")), false)
			}
		}

		for _, sig := range transport.sent {
			if sig.name == SignalRegistrationRequest && sig.recipient != ":1.10" {
				t.Fatalf("registration reached %s", sig.recipient)
			}
			if sig.name != SignalRegistrationRequest &&
				sig.recipient != ":1.10" && sig.recipient != ":1.20" {
				t.Fatalf("%s reached unexpected recipient %s", sig.name, sig.recipient)
			}
		}
	})
}

// Every remote log payload carries the sender's session token regardless
// of what the caller put on the event.
func TestRemoteLogAlwaysCarriesSessionToken(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s, transport := propertySender(t)

		n := rapid.IntRange(1, 12).Draw(t, "n")
		for i := 0; i < n; i++ {
			ev := events.NewLogEvent(events.GroupBackend, events.Info,
				rapid.StringN(1, 24, 48).Draw(t, "msg"))
			if rapid.Bool().Draw(t, "pretagged") {
				ev = ev.WithSessionToken(rapid.StringN(1, 8, 16).Draw(t, "stale"))
			}
			s.Log(ev, false)
		}

		for _, sig := range transport.byName(SignalLog) {
			if got := sig.payload.Map()["session_token"]; got != "tok" {
				t.Fatalf("payload token = %v, want tok", got)
			}
		}
	})
}
