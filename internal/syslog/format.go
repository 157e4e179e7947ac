// RFC 5424 message construction for forwarded log lines
package syslog

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	protocolVersion int    = 1
	nilValue        string = "-"
	timestampLayout string = "2006-01-02T15:04:05.000000Z"
)

// Creates a formatter for the local host and process
func NewFormatter(facility Facility, severity Severity, appName string) (formatter *Formatter, err error) {
	hostname, err := os.Hostname()
	if err != nil {
		err = fmt.Errorf("failed to determine local hostname: %w", err)
		return
	}

	formatter = &Formatter{
		Facility: facility,
		Severity: severity,
		Hostname: hostname,
		AppName:  appName,
		PID:      os.Getpid(),
		Now:      time.Now,
	}
	return
}

// PRI value: facility*8 + severity
func (formatter *Formatter) Priority() (priority int) {
	priority = int(formatter.Facility)*8 + int(formatter.Severity)
	return
}

// Wire record for one line: <PRI>1 TIMESTAMP HOSTNAME APP_NAME PID - - MESSAGE
//
// The line is not escaped. Embedded newlines or control characters end up in the frame as-is.
func (formatter *Formatter) Format(line string) (message string) {
	now := time.Now
	if formatter.Now != nil {
		now = formatter.Now
	}

	var builder strings.Builder
	builder.Grow(64 + len(formatter.Hostname) + len(formatter.AppName) + len(line))

	builder.WriteByte('<')
	builder.WriteString(strconv.Itoa(formatter.Priority()))
	builder.WriteByte('>')
	builder.WriteString(strconv.Itoa(protocolVersion))
	builder.WriteByte(' ')
	builder.WriteString(now().UTC().Format(timestampLayout))
	builder.WriteByte(' ')
	builder.WriteString(orNil(formatter.Hostname))
	builder.WriteByte(' ')
	builder.WriteString(orNil(formatter.AppName))
	builder.WriteByte(' ')
	builder.WriteString(strconv.Itoa(formatter.PID))
	builder.WriteString(" - - ") // MSGID and STRUCTURED-DATA
	builder.WriteString(line)

	message = builder.String()
	return
}

func orNil(field string) string {
	if field == "" {
		return nilValue
	}
	return field
}
