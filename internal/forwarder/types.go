package forwarder

import (
	"context"
	"syslogfwd/internal/externalio/file"
	"syslogfwd/internal/network"
	"syslogfwd/internal/syslog"
	"sync/atomic"
	"time"
)

// On-disk configuration. Pointers distinguish absent keys from zero values.
type JSONConfig struct {
	ServerIP       *string          `json:"server_ip"`
	ServerPort     *int             `json:"server_port"`
	LogFile        *string          `json:"log_file"`
	Protocol       *string          `json:"protocol,omitempty"`
	Facility       *syslog.Facility `json:"facility,omitempty"`
	Severity       *syslog.Severity `json:"severity,omitempty"`
	AppName        *string          `json:"app_name,omitempty"`
	ReconnectDelay *float64         `json:"reconnect_delay,omitempty"` // seconds
	ReadDelay      *float64         `json:"read_delay,omitempty"`      // seconds
	WatchEvents    *bool            `json:"watch_events,omitempty"`
}

type Config struct {
	// Destination
	ServerIP   string
	ServerPort int
	Protocol   string

	// Source
	LogFile     string
	ReadDelay   time.Duration
	WatchEvents bool

	// Record header
	Facility syslog.Facility
	Severity syslog.Severity
	AppName  string

	ReconnectDelay time.Duration
}

// Forwarding loop state
type State int

const (
	StateRunning State = iota
	StateReconnecting
	StateTerminated
)

// Produces appended lines, blocking until one is available
type LineSource interface {
	Next(ctx context.Context) (line string, err error)
}

// Delivers records to the collector
type Sender interface {
	Send(ctx context.Context, message string) (err error)
	Reconnect(ctx context.Context) (err error)
	Close() (err error)
}

type Stats struct {
	LinesRead         atomic.Uint64 // lines taken from the source
	Sent              atomic.Uint64 // records handed to the transport without error
	SendFailures      atomic.Uint64 // records lost to a send error
	Dropped           atomic.Uint64 // lines discarded while the connection was down
	Reconnects        atomic.Uint64 // successful reconnects
	ReconnectFailures atomic.Uint64 // failed reconnect attempts
}

// Drives Tailer -> Formatter -> Transport
type Loop struct {
	source         LineSource
	formatter      *syslog.Formatter
	sender         Sender
	protocol       string
	reconnectDelay time.Duration
	state          State
	Stats          Stats
}

type Daemon struct {
	cfg       Config
	tailer    *file.Tailer
	transport *network.Transport
	loop      *Loop
}
