package signals

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/sessiond/sessiond/internal/events"
	"github.com/sessiond/sessiond/internal/logwriter"
	"github.com/sessiond/sessiond/internal/procctl"
)

// defaultFatalGrace is how long a fatal message is given to leave the
// process before termination. Best-effort: nothing confirms remote
// delivery before the timer fires.
const defaultFatalGrace = 3 * time.Second

// RecipientGroup is a named set of recipient addresses for one signal
// kind. Membership is append-only during setup and read-only afterwards;
// groups are never shared between signal kinds.
type RecipientGroup struct {
	name    string
	targets []string
}

// NewRecipientGroup creates an empty group.
func NewRecipientGroup(name string) *RecipientGroup {
	return &RecipientGroup{name: name}
}

// Name returns the group's name.
func (g *RecipientGroup) Name() string { return g.name }

// AddTarget appends a recipient address.
func (g *RecipientGroup) AddTarget(addr string) {
	g.targets = append(g.targets, addr)
}

// Targets returns a copy of the recipient addresses.
func (g *RecipientGroup) Targets() []string {
	out := make([]string, len(g.targets))
	copy(out, g.targets)
	return out
}

// TerminationScheduler is the narrow process-control surface the fatal
// path consumes. *procctl.Terminator satisfies it.
type TerminationScheduler interface {
	Schedule(delay time.Duration, sig unix.Signal) bool
}

// SenderConfig carries the construction parameters for a Sender.
type SenderConfig struct {
	// Group tags every log event this sender emits.
	Group events.Group
	// SessionToken is stamped onto every outgoing log event so external
	// aggregation can demultiplex sessions.
	SessionToken string
	// ManagerService and LoggerService are the well-known names of the
	// session manager and the log service; both are resolved at
	// construction time.
	ManagerService string
	LoggerService  string
	// LogLevel is the minimum severity forwarded; defaults to Debug.
	LogLevel events.Category
	// FatalGrace overrides the fatal-path grace delay when positive.
	FatalGrace time.Duration
	// Diagnostics receives delivery-failure reports; defaults to stderr.
	Diagnostics io.Writer
	// Terminator performs the delayed process termination; defaults to a
	// fresh procctl.Terminator.
	Terminator TerminationScheduler
}

// Sender bridges a local log writer to remote subscribers. Status,
// attention and log signals go to the general subscriber group; the
// registration request goes to its own group holding only the session
// manager. Normal operation is single-threaded; only the fatal-path
// termination timer runs concurrently.
type Sender struct {
	transport Transport
	writer    logwriter.Writer

	group        events.Group
	sessionToken string
	logLevel     events.Category

	subscribers  *RecipientGroup
	registration *RecipientGroup

	lastStatus    *events.Status
	lastLog       events.LogEvent
	haveLastLog   bool
	suppressedLog int

	grace time.Duration
	term  TerminationScheduler
	diag  io.Writer
}

// NewSender resolves the manager and logger services through the
// transport and builds the per-kind recipient groups: both services
// subscribe to status/attention/log signals, while registration requests
// go to the manager alone.
func NewSender(transport Transport, writer logwriter.Writer, cfg SenderConfig) (*Sender, error) {
	managerAddr, err := transport.ResolveAddress(cfg.ManagerService)
	if err != nil {
		return nil, fmt.Errorf("resolving session manager: %w", err)
	}
	loggerAddr, err := transport.ResolveAddress(cfg.LoggerService)
	if err != nil {
		return nil, fmt.Errorf("resolving log service: %w", err)
	}

	subscribers := NewRecipientGroup("subscribers")
	subscribers.AddTarget(managerAddr)
	subscribers.AddTarget(loggerAddr)

	registration := NewRecipientGroup("sessionmgr")
	registration.AddTarget(managerAddr)

	s := &Sender{
		transport:    transport,
		writer:       writer,
		group:        cfg.Group,
		sessionToken: cfg.SessionToken,
		logLevel:     cfg.LogLevel,
		subscribers:  subscribers,
		registration: registration,
		grace:        cfg.FatalGrace,
		term:         cfg.Terminator,
		diag:         cfg.Diagnostics,
	}
	if s.grace <= 0 {
		s.grace = defaultFatalGrace
	}
	if s.term == nil {
		s.term = procctl.NewTerminator()
	}
	if s.diag == nil {
		s.diag = os.Stderr
	}
	return s, nil
}

// SetLogLevel adjusts the minimum severity forwarded by Log.
func (s *Sender) SetLogLevel(level events.Category) {
	s.logLevel = level
}

// SendStatusChange notifies subscribers of a status transition given as
// raw major/minor parts plus optional free-text detail.
func (s *Sender) SendStatusChange(major events.StatusMajor, minor events.StatusMinor, msg string) {
	s.SendStatusChangeEvent(events.NewStatus(major, minor, msg))
}

// SendStatusChangeEvent notifies subscribers of a status transition and
// retains it for LastStatusChange.
func (s *Sender) SendStatusChangeEvent(st events.Status) {
	retained := st
	s.lastStatus = &retained
	s.broadcast(SignalStatusChange, Payload{
		{Name: "major", Value: uint32(st.Major)},
		{Name: "minor", Value: uint32(st.Minor)},
		{Name: "status_message", Value: st.Message},
	})
}

// LastStatusChange returns a snapshot of the most recently sent status
// change, letting a late-joining subscriber or diagnostic query learn the
// current status without waiting for the next transition.
func (s *Sender) LastStatusChange() (events.Status, bool) {
	if s.lastStatus == nil {
		return events.Status{}, false
	}
	return *s.lastStatus, true
}

// SendAttentionRequired tells subscribers the backend needs external
// input or feedback. Fire-and-forget; no snapshot is retained.
func (s *Sender) SendAttentionRequired(attType events.AttentionType, attGroup events.AttentionGroup, msg string) {
	s.broadcast(SignalAttentionRequired, Payload{
		{Name: "attention_type", Value: uint32(attType)},
		{Name: "attention_group", Value: uint32(attGroup)},
		{Name: "message", Value: msg},
	})
}

// SendRegistrationRequest announces this backend to the session manager:
// its bus address, session token and process id. Only the registration
// group is addressed. Reports whether every delivery succeeded.
func (s *Sender) SendRegistrationRequest(busName, token string, pid int) bool {
	payload := Payload{
		{Name: "busname", Value: busName},
		{Name: "token", Value: token},
		{Name: "pid", Value: int32(pid)},
	}
	ok := true
	for _, addr := range s.registration.Targets() {
		if err := s.transport.SendPointToPoint(addr, SignalRegistrationRequest, payload); err != nil {
			fmt.Fprintf(s.diag, "RegistrationRequest to %s failed: %v\n", addr, err)
			ok = false
		}
	}
	return ok
}

// Log re-tags the event with this session's token, writes it through the
// local writer and fans it out to subscribers. Events below the severity
// threshold are dropped. With duplicateCheck set, consecutive identical
// records are suppressed and summarised when the run of duplicates ends.
func (s *Sender) Log(ev events.LogEvent, duplicateCheck bool) {
	if ev.Category < s.logLevel {
		return
	}
	ev = ev.WithSessionToken(s.sessionToken)

	if duplicateCheck {
		if s.haveLastLog && s.lastLog.SameRecord(ev) {
			s.suppressedLog++
			return
		}
		if s.suppressedLog > 0 {
			summary := events.NewLogEvent(s.lastLog.Group, s.lastLog.Category,
				fmt.Sprintf("message repeated %d times", s.suppressedLog)).
				WithSessionToken(s.sessionToken)
			s.emit(summary)
			s.suppressedLog = 0
		}
	}
	s.lastLog = ev
	s.haveLastLog = true
	s.emit(ev)
}

// LogFatal emits a final fatal message through both the local writer and
// the remote log channel, then arms the delayed process termination. The
// grace delay gives the asynchronous transport a chance to deliver the
// message; delivery is not confirmed. Repeated calls never arm a second
// timer. The call itself returns; the process ends when the timer fires.
func (s *Sender) LogFatal(msg string) {
	s.emit(events.NewLogEvent(s.group, events.Fatal, msg).
		WithSessionToken(s.sessionToken))
	s.term.Schedule(s.grace, unix.SIGHUP)
}

// emit performs one local write plus remote fan-out, bypassing threshold
// and duplicate bookkeeping.
func (s *Sender) emit(ev events.LogEvent) {
	s.writer.WriteEvent(ev)
	s.broadcast(SignalLog, Payload{
		{Name: "group", Value: uint32(ev.Group)},
		{Name: "category", Value: uint32(ev.Category)},
		{Name: "message", Value: ev.Message},
		{Name: "session_token", Value: ev.SessionToken},
	})
}

// broadcast sends one signal to every general subscriber. Failures are
// diagnostic noise, never errors: notification delivery is best-effort.
func (s *Sender) broadcast(signalName string, payload Payload) {
	for _, addr := range s.subscribers.Targets() {
		if err := s.transport.SendPointToPoint(addr, signalName, payload); err != nil {
			fmt.Fprintf(s.diag, "%s signal to %s failed: %v\n", signalName, addr, err)
		}
	}
}
