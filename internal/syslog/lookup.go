package syslog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	MaxFacility int = 23
	MaxSeverity int = 7
)

var facilityToCode = map[string]int{
	"kern":     0,
	"user":     1,
	"mail":     2,
	"daemon":   3,
	"auth":     4,
	"syslog":   5,
	"lpr":      6,
	"news":     7,
	"uucp":     8,
	"cron":     9,
	"authpriv": 10,
	"ftp":      11,
	"ntp":      12,
	"security": 13,
	"console":  14,
	"solaris":  15,
	"local0":   16,
	"local1":   17,
	"local2":   18,
	"local3":   19,
	"local4":   20,
	"local5":   21,
	"local6":   22,
	"local7":   23,
}

var severityToCode = map[string]int{
	"emerg":   0,
	"alert":   1,
	"crit":    2,
	"err":     3,
	"warning": 4,
	"notice":  5,
	"info":    6,
	"debug":   7,
}

// Reverse lookups, read-only after package init
var codeToFacility = reverseMap(facilityToCode)
var codeToSeverity = reverseMap(severityToCode)

func reverseMap(forward map[string]int) (reverse map[int]string) {
	reverse = make(map[int]string, len(forward))
	for name, code := range forward {
		reverse[code] = name
	}
	return
}

// Convert facility string to numeric code
func FacilityToCode(facility string) (code int, err error) {
	code, exists := facilityToCode[strings.ToLower(facility)]
	if !exists {
		err = fmt.Errorf("unknown facility name: %s", facility)
	}
	return
}

// Convert severity string to numeric code
func SeverityToCode(severity string) (code int, err error) {
	code, exists := severityToCode[strings.ToLower(severity)]
	if !exists {
		err = fmt.Errorf("unknown severity name: %s", severity)
	}
	return
}

// Convert facility code to string
func CodeToFacility(code int) (facility string, err error) {
	facility, exists := codeToFacility[code]
	if !exists {
		err = fmt.Errorf("unknown facility code: %d", code)
	}
	return
}

// Convert severity code to string
func CodeToSeverity(code int) (severity string, err error) {
	severity, exists := codeToSeverity[code]
	if !exists {
		err = fmt.Errorf("unknown severity code: %d", code)
	}
	return
}

func (facility *Facility) UnmarshalJSON(data []byte) (err error) {
	code, err := unmarshalCode(data, FacilityToCode)
	if err != nil {
		err = fmt.Errorf("invalid facility: %w", err)
		return
	}
	*facility = Facility(code)
	return
}

func (severity *Severity) UnmarshalJSON(data []byte) (err error) {
	code, err := unmarshalCode(data, SeverityToCode)
	if err != nil {
		err = fmt.Errorf("invalid severity: %w", err)
		return
	}
	*severity = Severity(code)
	return
}

// Accepts a JSON number or a JSON string holding either a number or a name
func unmarshalCode(data []byte, byName func(string) (int, error)) (code int, err error) {
	var name string
	if json.Unmarshal(data, &name) == nil {
		code, err = strconv.Atoi(name)
		if err == nil {
			return
		}
		code, err = byName(name)
		return
	}

	err = json.Unmarshal(data, &code)
	if err != nil {
		err = fmt.Errorf("expected integer code or name, got %s", string(data))
		return
	}
	return
}

func (facility Facility) String() string {
	name, err := CodeToFacility(int(facility))
	if err != nil {
		return strconv.Itoa(int(facility))
	}
	return name
}

func (severity Severity) String() string {
	name, err := CodeToSeverity(int(severity))
	if err != nil {
		return strconv.Itoa(int(severity))
	}
	return name
}
