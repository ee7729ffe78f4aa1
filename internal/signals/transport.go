package signals

// Signal names emitted by a backend session process.
const (
	SignalLog                 = "Log"
	SignalStatusChange        = "StatusChange"
	SignalAttentionRequired   = "AttentionRequired"
	SignalRegistrationRequest = "RegistrationRequest"
)

// Field is one named value in an outgoing signal payload.
type Field struct {
	Name  string
	Value any
}

// Payload is the ordered field list of an outgoing signal. Order is
// significant for transports with positional marshalling (D-Bus bodies);
// map-shaped transports use the field names.
type Payload []Field

// Values returns the field values in payload order.
func (p Payload) Values() []any {
	vals := make([]any, len(p))
	for i, f := range p {
		vals[i] = f.Value
	}
	return vals
}

// Map returns the fields keyed by name. Duplicate names keep the last
// value; senders in this package never emit duplicates.
func (p Payload) Map() map[string]any {
	m := make(map[string]any, len(p))
	for _, f := range p {
		m[f.Name] = f.Value
	}
	return m
}

// Transport is the narrow surface of the IPC layer this package consumes.
// Connection establishment, credentials and bus lifecycle belong to the
// concrete implementations and their callers, not to this interface.
type Transport interface {
	// ResolveAddress turns a well-known service name into the concrete
	// recipient address signals are sent to.
	ResolveAddress(serviceName string) (string, error)
	// SendPointToPoint delivers one signal to one recipient.
	SendPointToPoint(recipient, signalName string, payload Payload) error
}
