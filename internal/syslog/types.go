package syslog

import "time"

// Facility code, accepted in config either as a number or as a name ("local0")
type Facility int

// Severity code, accepted in config either as a number or as a name ("warning")
type Severity int

// Builds RFC 5424 records for one source
type Formatter struct {
	Facility Facility
	Severity Severity
	Hostname string
	AppName  string
	PID      int
	Now      func() time.Time // wall clock, replaced in tests
}
