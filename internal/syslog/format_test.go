package syslog

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"
)

func fixedFormatter(facility Facility, severity Severity) *Formatter {
	return &Formatter{
		Facility: facility,
		Severity: severity,
		Hostname: "web01",
		AppName:  "syslog_forwarder",
		PID:      4242,
		Now: func() time.Time {
			return time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.FixedZone("CET", 3600))
		},
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name      string
		formatter *Formatter
		line      string
		expect    string
	}{
		{
			name:      "default priority",
			formatter: fixedFormatter(1, 6),
			line:      "GET /index.html 200",
			expect:    "<14>1 2026-03-14T08:26:53.589793Z web01 syslog_forwarder 4242 - - GET /index.html 200",
		},
		{
			name:      "lowest priority",
			formatter: fixedFormatter(0, 0),
			line:      "panic",
			expect:    "<0>1 2026-03-14T08:26:53.589793Z web01 syslog_forwarder 4242 - - panic",
		},
		{
			name:      "highest priority",
			formatter: fixedFormatter(23, 7),
			line:      "trace",
			expect:    "<191>1 2026-03-14T08:26:53.589793Z web01 syslog_forwarder 4242 - - trace",
		},
		{
			name:      "empty line",
			formatter: fixedFormatter(1, 6),
			line:      "",
			expect:    "<14>1 2026-03-14T08:26:53.589793Z web01 syslog_forwarder 4242 - - ",
		},
		{
			name: "nil values for empty host and app",
			formatter: &Formatter{
				Facility: 3,
				Severity: 3,
				PID:      1,
				Now:      func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) },
			},
			line:   "x",
			expect: "<27>1 2026-01-01T00:00:00.000000Z - - 1 - - x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.formatter.Format(tt.line)
			if got != tt.expect {
				t.Errorf("\ngot  %q\nwant %q", got, tt.expect)
			}
		})
	}
}

func TestFormat_PriorityAndHeaderFields(t *testing.T) {
	const line = "user login failed for admin from 10.0.0.7"

	for facility := 0; facility <= MaxFacility; facility++ {
		for severity := 0; severity <= MaxSeverity; severity++ {
			formatter := fixedFormatter(Facility(facility), Severity(severity))
			msg := formatter.Format(line)

			wantPri := facility*8 + severity
			if formatter.Priority() != wantPri {
				t.Fatalf("f=%d s=%d: priority %d, want %d", facility, severity, formatter.Priority(), wantPri)
			}

			fields := strings.SplitN(msg, " ", 8)
			if len(fields) != 8 {
				t.Fatalf("f=%d s=%d: expected 7 header fields plus message, got %d fields in %q", facility, severity, len(fields), msg)
			}
			if fields[0] != "<"+strconv.Itoa(wantPri)+">1" {
				t.Fatalf("f=%d s=%d: unexpected PRI/VERSION %q", facility, severity, fields[0])
			}
			if fields[7] != line {
				t.Fatalf("f=%d s=%d: message mangled: %q", facility, severity, fields[7])
			}
			if strings.Contains(msg, "\n") {
				t.Fatalf("f=%d s=%d: record contains newline", facility, severity)
			}
		}
	}
}

func TestNewFormatter(t *testing.T) {
	formatter, err := NewFormatter(1, 6, "myapp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if formatter.PID <= 0 {
		t.Errorf("expected process id, got %d", formatter.PID)
	}
	if formatter.Hostname == "" {
		t.Errorf("expected hostname to be set")
	}

	msg := formatter.Format("hello")
	fields := strings.SplitN(msg, " ", 8)
	if fields[1][len(fields[1])-1] != 'Z' {
		t.Errorf("timestamp not UTC: %q", fields[1])
	}
	if fields[4] != fmt.Sprint(formatter.PID) {
		t.Errorf("pid field: got %q want %d", fields[5], formatter.PID)
	}
}
