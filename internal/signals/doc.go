// Package signals implements the signal-emission layer that bridges a
// local log writer to remote subscribers. A Sender owns per-kind recipient
// groups and emits StatusChange, AttentionRequired, RegistrationRequest
// and Log notifications as point-to-point signals over a narrow Transport
// interface; D-Bus and Redis pub/sub transports are provided.
//
// Delivery is best-effort: a failed send is reported on the diagnostics
// stream and never propagates to the caller, with the single exception of
// SendRegistrationRequest, which reports success as a boolean. The fatal
// log path emits a final message through both the local writer and the
// remote channel, then arms a delayed, non-cancellable process
// termination.
package signals
