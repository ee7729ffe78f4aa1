package logwriter

import (
	"fmt"
	"log/syslog"

	"github.com/sessiond/sessiond/internal/events"
)

// SyslogPriority returns the syslog severity for a log category. The
// mapping is total over the closed category set; an out-of-range value
// maps to LOG_CRIT, the most severe mapping short of the fatal alert.
func SyslogPriority(ctg events.Category) syslog.Priority {
	switch ctg {
	case events.Debug:
		return syslog.LOG_DEBUG
	case events.Info:
		return syslog.LOG_INFO
	case events.Warn:
		return syslog.LOG_WARNING
	case events.Error:
		return syslog.LOG_ERR
	case events.Critical:
		return syslog.LOG_CRIT
	case events.Fatal:
		return syslog.LOG_ALERT
	}
	return syslog.LOG_CRIT
}

// syslogSink is the narrow surface of *syslog.Writer the backend needs;
// tests substitute a recording fake.
type syslogSink interface {
	log(p syslog.Priority, msg string) error
	Close() error
}

type systemSyslog struct {
	w *syslog.Writer
}

func (s *systemSyslog) log(p syslog.Priority, msg string) error {
	switch p {
	case syslog.LOG_DEBUG:
		return s.w.Debug(msg)
	case syslog.LOG_INFO:
		return s.w.Info(msg)
	case syslog.LOG_NOTICE:
		return s.w.Notice(msg)
	case syslog.LOG_WARNING:
		return s.w.Warning(msg)
	case syslog.LOG_ERR:
		return s.w.Err(msg)
	case syslog.LOG_CRIT:
		return s.w.Crit(msg)
	case syslog.LOG_ALERT:
		return s.w.Alert(msg)
	default:
		return s.w.Emerg(msg)
	}
}

func (s *systemSyslog) Close() error {
	return s.w.Close()
}

// SyslogWriter sends events to the host syslog daemon. Colours and
// timestamps are ignored; the daemon supplies its own timestamps, so
// TimestampEnabled reports true unconditionally. When metadata is present
// it is sent as a separate syslog call at the same priority as the
// message.
type SyslogWriter struct {
	writerState

	sink syslogSink
}

// NewSyslogWriter connects to the local syslog daemon under the given
// program tag and facility.
func NewSyslogWriter(tag string, facility syslog.Priority) (*SyslogWriter, error) {
	w, err := syslog.New(facility|syslog.LOG_INFO, tag)
	if err != nil {
		return nil, fmt.Errorf("connecting to syslog: %w", err)
	}
	return &SyslogWriter{
		writerState: newWriterState(),
		sink:        &systemSyslog{w: w},
	}, nil
}

// TimestampEnabled always reports true: the syslog daemon timestamps every
// record itself.
func (w *SyslogWriter) TimestampEnabled() bool {
	return true
}

// Close disconnects from the syslog daemon.
func (w *SyslogWriter) Close() error {
	return w.sink.Close()
}

// WriteData logs the pending metadata (if any) and the data at LOG_INFO.
func (w *SyslogWriter) WriteData(data, colourStart, colourEnd string) {
	w.write(syslog.LOG_INFO, "", data)
}

// WritePrefixed logs at the priority mapped from the category and includes
// the group/category prefix in the message text.
func (w *SyslogWriter) WritePrefixed(grp events.Group, ctg events.Category, data, colourStart, colourEnd string) {
	ev := events.LogEvent{Group: grp, Category: ctg}
	w.write(SyslogPriority(ctg), ev.Prefix(), data)
}

// WriteEvent logs a populated event.
func (w *SyslogWriter) WriteEvent(ev events.LogEvent) {
	w.write(SyslogPriority(ev.Category), ev.Prefix(), ev.Message)
}

func (w *SyslogWriter) write(prio syslog.Priority, prefix, data string) {
	defer w.resetAfterWrite()

	prepend := ""
	if w.prependToMetaLine {
		prepend = w.meta.Lookup(w.prependLabel, true, " ")
	}

	if w.logMeta && !w.meta.Empty() {
		if metaLine := prepend + w.meta.String(); metaLine != "" {
			w.sink.log(prio, metaLine)
		}
	}
	w.sink.log(prio, prepend+prefix+data)
}
