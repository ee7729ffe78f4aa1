package events

// LogEvent is a single log record: which subsystem produced it, how severe
// it is, the message text, and optionally the session token of the backend
// session it belongs to.
type LogEvent struct {
	Group        Group
	Category     Category
	Message      string
	SessionToken string
}

// NewLogEvent creates a LogEvent without a session token.
func NewLogEvent(grp Group, ctg Category, msg string) LogEvent {
	return LogEvent{Group: grp, Category: ctg, Message: msg}
}

// WithSessionToken returns a copy of the event tagged with the given
// session token.
func (e LogEvent) WithSessionToken(token string) LogEvent {
	e.SessionToken = token
	return e
}

// Prefix renders the textual group/category prefix placed before the
// message body by line-oriented writers.
func (e LogEvent) Prefix() string {
	return e.Group.String() + " " + e.Category.String() + ": "
}

// SameRecord reports whether two events carry the same group, category and
// message. The session token is ignored; duplicate suppression compares
// what a subscriber would see.
func (e LogEvent) SameRecord(other LogEvent) bool {
	return e.Group == other.Group &&
		e.Category == other.Category &&
		e.Message == other.Message
}
