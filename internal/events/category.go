package events

import (
	"fmt"
	"strings"
)

// Category is the severity of a log event. Categories form a total order:
// Debug < Info < Warn < Error < Critical < Fatal.
type Category uint8

const (
	Debug Category = iota
	Info
	Warn
	Error
	Critical
	Fatal
)

var categoryNames = [...]string{
	Debug:    "DEBUG",
	Info:     "INFO",
	Warn:     "WARN",
	Error:    "ERROR",
	Critical: "CRITICAL",
	Fatal:    "FATAL",
}

// String returns the upper-case name of the category. Values outside the
// defined set render as FATAL; the mapping tables in the writer backends
// treat an unmapped category as the most severe one.
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return categoryNames[Fatal]
}

// ParseCategory converts a case-insensitive category name into a Category.
func ParseCategory(s string) (Category, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return Debug, fmt.Errorf("unknown log category %q", s)
}
