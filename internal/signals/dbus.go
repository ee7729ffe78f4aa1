package signals

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// DBusTransport emits signals as destination-addressed (unicast) D-Bus
// signal messages, so only the resolved recipient sees them rather than
// every match-rule subscriber on the bus.
type DBusTransport struct {
	conn  *dbus.Conn
	path  dbus.ObjectPath
	iface string
}

// NewDBusTransport wraps an established bus connection. The object path
// and interface name every emitted signal as originating from this
// backend session object.
func NewDBusTransport(conn *dbus.Conn, path dbus.ObjectPath, iface string) *DBusTransport {
	return &DBusTransport{conn: conn, path: path, iface: iface}
}

// ConnectSystemBus establishes a system-bus connection and wraps it.
func ConnectSystemBus(path dbus.ObjectPath, iface string) (*DBusTransport, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("connecting to system bus: %w", err)
	}
	return NewDBusTransport(conn, path, iface), nil
}

// LocalAddress returns this connection's unique bus name, used by the
// registration request to identify the backend to the session manager.
func (t *DBusTransport) LocalAddress() string {
	names := t.conn.Names()
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// ResolveAddress asks the bus daemon for the unique name currently owning
// the given well-known service name.
func (t *DBusTransport) ResolveAddress(serviceName string) (string, error) {
	var owner string
	err := t.conn.BusObject().
		Call("org.freedesktop.DBus.GetNameOwner", 0, serviceName).
		Store(&owner)
	if err != nil {
		return "", fmt.Errorf("resolving owner of %s: %w", serviceName, err)
	}
	return owner, nil
}

// SendPointToPoint emits one unicast signal to the recipient.
func (t *DBusTransport) SendPointToPoint(recipient, signalName string, payload Payload) error {
	body := payload.Values()
	msg := &dbus.Message{
		Type: dbus.TypeSignal,
		Headers: map[dbus.HeaderField]dbus.Variant{
			dbus.FieldPath:        dbus.MakeVariant(t.path),
			dbus.FieldInterface:   dbus.MakeVariant(t.iface),
			dbus.FieldMember:      dbus.MakeVariant(signalName),
			dbus.FieldDestination: dbus.MakeVariant(recipient),
		},
		Body: body,
	}
	if len(body) > 0 {
		msg.Headers[dbus.FieldSignature] = dbus.MakeVariant(dbus.SignatureOf(body...))
	}

	call := t.conn.Send(msg, nil)
	if call != nil && call.Err != nil {
		return fmt.Errorf("emitting %s to %s: %w", signalName, recipient, call.Err)
	}
	return nil
}

// Close tears down the underlying bus connection.
func (t *DBusTransport) Close() error {
	return t.conn.Close()
}
