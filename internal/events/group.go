package events

import (
	"fmt"
	"strings"
)

// Group identifies the subsystem a log event originates from, independent
// of its severity.
type Group uint8

const (
	GroupUndefined Group = iota
	GroupBackend
	GroupClient
	GroupConfig
	GroupNetwork
	GroupSessions
	GroupLogger
	GroupExtension
)

var groupNames = [...]string{
	GroupUndefined: "UNDEFINED",
	GroupBackend:   "BACKEND",
	GroupClient:    "CLIENT",
	GroupConfig:    "CONFIG",
	GroupNetwork:   "NETWORK",
	GroupSessions:  "SESSIONS",
	GroupLogger:    "LOGGER",
	GroupExtension: "EXTENSION",
}

// String returns the upper-case name of the group.
func (g Group) String() string {
	if int(g) < len(groupNames) {
		return groupNames[g]
	}
	return groupNames[GroupUndefined]
}

// ParseGroup converts a case-insensitive group name into a Group.
func ParseGroup(s string) (Group, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range groupNames {
		if n == name {
			return Group(i), nil
		}
	}
	return GroupUndefined, fmt.Errorf("unknown log group %q", s)
}
