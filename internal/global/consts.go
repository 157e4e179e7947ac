package global

import "time"

const (
	// Descriptive Names for available verbosity levels
	VerbosityNone int = iota
	VerbosityStandard
	VerbosityProgress
	VerbosityData
	VerbosityFullData
	VerbosityDebug

	// Descriptive names for available severity levels
	ErrorLog string = "Error"
	WarnLog  string = "Warn"
	InfoLog  string = "Info"
)

const (
	ProgVersion  string = "v1.2.0"
	ProgBaseName string = "syslogfwd"

	// Context keys
	LoggerKey  CtxKey = "logger"  // Diagnostics sink carried by every component context
	LogTagsKey CtxKey = "logtags" // List of tags in order of broad->specific appended/popped at various parts of the program

	DefaultConfigPath string = "config.json"

	// Config defaults for optional keys
	DefaultProtocol       string        = "udp"
	DefaultFacility       uint16        = 1 // user
	DefaultSeverity       uint16        = 6 // info
	DefaultAppName        string        = "syslog_forwarder"
	DefaultReconnectDelay time.Duration = 5 * time.Second
	DefaultReadDelay      time.Duration = 100 * time.Millisecond

	// RFC 5424 field limits
	MaxAppNameLength int = 48

	// Namespacing Name Components
	NSTest      string = "Test"
	NSCLI       string = "CLI"
	NSForwarder string = "Forwarder"
	NSTailer    string = "Tailer"
	NSTransport string = "Transport"
	NSWatcher   string = "Watcher"
	NSLifecycle string = "Lifecycle"
)
