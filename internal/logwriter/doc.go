// Package logwriter implements the output backends that render a log
// event into a destination-specific representation: a plain text stream,
// an ANSI-coloured terminal stream, the syslog daemon, and the systemd
// journal.
//
// All backends share one contract. Metadata attached via AddMeta before a
// write belongs to exactly that write: an enabled, non-empty metadata set
// is rendered first (as a joined line on stream backends, as discrete
// structured fields on the journal), a sticky prepend label set via
// SetPrependMeta is resolved and surfaced immediately before the message
// body, and both the metadata set and the prepend state are reset
// unconditionally after every write, whether or not rendering succeeded.
//
// The syslog and journald backends report TimestampEnabled() == true
// unconditionally because their daemons supply their own timestamps.
package logwriter
