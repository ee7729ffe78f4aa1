package events

// StatusMajor is the coarse classification of a status transition.
type StatusMajor uint8

const (
	MajorUnset StatusMajor = iota
	MajorConnection
	MajorSession
	MajorProcess
)

var statusMajorNames = [...]string{
	MajorUnset:      "UNSET",
	MajorConnection: "CONNECTION",
	MajorSession:    "SESSION",
	MajorProcess:    "PROCESS",
}

func (m StatusMajor) String() string {
	if int(m) < len(statusMajorNames) {
		return statusMajorNames[m]
	}
	return statusMajorNames[MajorUnset]
}

// StatusMinor refines a StatusMajor into the concrete transition.
type StatusMinor uint8

const (
	MinorUnset StatusMinor = iota
	MinorConnecting
	MinorConnected
	MinorDisconnected
	MinorAuthRequired
	MinorProcessStarted
	MinorProcessStopped
	MinorProcessKilled
)

var statusMinorNames = [...]string{
	MinorUnset:          "UNSET",
	MinorConnecting:     "CONNECTING",
	MinorConnected:      "CONNECTED",
	MinorDisconnected:   "DISCONNECTED",
	MinorAuthRequired:   "AUTH_REQUIRED",
	MinorProcessStarted: "PROCESS_STARTED",
	MinorProcessStopped: "PROCESS_STOPPED",
	MinorProcessKilled:  "PROCESS_KILLED",
}

func (m StatusMinor) String() string {
	if int(m) < len(statusMinorNames) {
		return statusMinorNames[m]
	}
	return statusMinorNames[MinorUnset]
}

// Status describes a major/minor status transition with optional free-text
// detail.
type Status struct {
	Major   StatusMajor
	Minor   StatusMinor
	Message string
}

// NewStatus creates a Status event.
func NewStatus(major StatusMajor, minor StatusMinor, msg string) Status {
	return Status{Major: major, Minor: minor, Message: msg}
}

// String renders the status transition for human-readable log output.
func (s Status) String() string {
	out := s.Major.String() + "/" + s.Minor.String()
	if s.Message != "" {
		out += " " + s.Message
	}
	return out
}
