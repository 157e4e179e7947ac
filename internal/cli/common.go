package cli

import (
	"flag"
	"syslogfwd/internal/global"
)

func SetGlobalArguments(fs *flag.FlagSet, verbose *bool) {
	fs.BoolVar(verbose, "v", false, "Show each forwarded record")
	fs.BoolVar(verbose, "verbose", false, "Show each forwarded record")
}

func SetCommon(fs *flag.FlagSet, configPath *string) {
	fs.StringVar(configPath, "c", global.DefaultConfigPath, "Path to the configuration file")
	fs.StringVar(configPath, "config", global.DefaultConfigPath, "Path to the configuration file")
}

// Log level requested on the command line
func LogLevel(verbose bool) (level int) {
	level = global.VerbosityStandard
	if verbose {
		level = global.VerbosityData
	}
	return
}
