// Package events defines the value types that flow through the logging
// and signal-emission layers: log severity categories, log groups, the
// LogEvent record itself, backend status transitions, and the
// attention-required classifiers used when a backend needs external input.
//
// All types in this package are plain values with no behaviour beyond
// rendering and comparison; they carry no references to the transports or
// writers that consume them.
package events
