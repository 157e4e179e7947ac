package forwarder

import (
	"encoding/json"
	"fmt"
	"math"
	"net"
	"os"
	"strconv"
	"strings"
	"syslogfwd/internal/global"
	"syslogfwd/internal/network"
	"syslogfwd/internal/syslog"
	"time"

	"github.com/tidwall/jsonc"
)

// Loads JSON config from file. Comments and trailing commas are accepted.
func LoadConfig(path string) (cfg JSONConfig, err error) {
	configFile, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("failed to read config file: %w", err)
		return
	}

	err = json.Unmarshal(jsonc.ToJSON(configFile), &cfg)
	if err != nil {
		err = fmt.Errorf("invalid config syntax in '%s': %w", path, err)
		return
	}
	return
}

// Parses JSON config into daemon config, applying defaults for absent optional keys
func (cfg JSONConfig) NewDaemonConf() (config Config, err error) {
	var missing []string
	if cfg.ServerIP == nil {
		missing = append(missing, "server_ip")
	}
	if cfg.ServerPort == nil {
		missing = append(missing, "server_port")
	}
	if cfg.LogFile == nil {
		missing = append(missing, "log_file")
	}
	if len(missing) > 0 {
		err = &MissingKeysError{Keys: missing}
		return
	}

	// Required settings
	config.ServerIP = strings.TrimSpace(*cfg.ServerIP)
	config.ServerPort = *cfg.ServerPort
	config.LogFile = *cfg.LogFile

	config.setDefaults()

	// Optional settings
	if cfg.Protocol != nil {
		config.Protocol = strings.ToLower(strings.TrimSpace(*cfg.Protocol))
	}
	if cfg.Facility != nil {
		config.Facility = *cfg.Facility
	}
	if cfg.Severity != nil {
		config.Severity = *cfg.Severity
	}
	if cfg.AppName != nil {
		config.AppName = *cfg.AppName
	}
	if cfg.WatchEvents != nil {
		config.WatchEvents = *cfg.WatchEvents
	}
	if cfg.ReconnectDelay != nil {
		config.ReconnectDelay, err = secondsToDuration(*cfg.ReconnectDelay)
		if err != nil {
			err = fmt.Errorf("invalid reconnect_delay: %w", err)
			return
		}
	}
	if cfg.ReadDelay != nil {
		config.ReadDelay, err = secondsToDuration(*cfg.ReadDelay)
		if err != nil {
			err = fmt.Errorf("invalid read_delay: %w", err)
			return
		}
	}

	err = config.Validate()
	return
}

// Sets defaults for every optional setting
func (cfg *Config) setDefaults() {
	cfg.Protocol = global.DefaultProtocol
	cfg.Facility = syslog.Facility(global.DefaultFacility)
	cfg.Severity = syslog.Severity(global.DefaultSeverity)
	cfg.AppName = global.DefaultAppName
	cfg.ReconnectDelay = global.DefaultReconnectDelay
	cfg.ReadDelay = global.DefaultReadDelay
}

// Checks value ranges
func (cfg Config) Validate() (err error) {
	if cfg.ServerIP == "" {
		err = fmt.Errorf("server_ip must not be empty")
		return
	}
	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		err = fmt.Errorf("server_port %d out of range 1-65535", cfg.ServerPort)
		return
	}
	if cfg.Protocol != network.ProtocolUDP && cfg.Protocol != network.ProtocolTCP {
		err = fmt.Errorf("invalid protocol '%s', use 'udp' or 'tcp'", cfg.Protocol)
		return
	}
	if cfg.LogFile == "" {
		err = fmt.Errorf("log_file must not be empty")
		return
	}
	if cfg.Facility < 0 || int(cfg.Facility) > syslog.MaxFacility {
		err = fmt.Errorf("facility %d out of range 0-%d", cfg.Facility, syslog.MaxFacility)
		return
	}
	if cfg.Severity < 0 || int(cfg.Severity) > syslog.MaxSeverity {
		err = fmt.Errorf("severity %d out of range 0-%d", cfg.Severity, syslog.MaxSeverity)
		return
	}
	if len(cfg.AppName) > global.MaxAppNameLength {
		err = fmt.Errorf("app_name longer than %d characters", global.MaxAppNameLength)
		return
	}
	for _, char := range cfg.AppName {
		// Header fields are space separated printable ASCII
		if char < '!' || char > '~' {
			err = fmt.Errorf("app_name contains invalid character %q", char)
			return
		}
	}
	if cfg.ReadDelay <= 0 {
		err = fmt.Errorf("read_delay must be greater than zero")
		return
	}
	if cfg.ReconnectDelay < 0 {
		err = fmt.Errorf("reconnect_delay must not be negative")
		return
	}
	return
}

// host:port of the collector
func (cfg Config) ServerAddress() string {
	return net.JoinHostPort(cfg.ServerIP, strconv.Itoa(cfg.ServerPort))
}

func secondsToDuration(seconds float64) (duration time.Duration, err error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		err = fmt.Errorf("expected non-negative number of seconds, got %v", seconds)
		return
	}
	if seconds > math.MaxInt64/float64(time.Second) {
		err = fmt.Errorf("%v seconds is too large", seconds)
		return
	}
	duration = time.Duration(seconds * float64(time.Second))
	return
}
