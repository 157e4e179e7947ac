package cli

import "syslogfwd/internal/global"

func DefineOptions() (cmdOpts *global.CommandSet) {
	// Root level
	root := &global.CommandSet{
		Description:     "Syslog Forwarder (syslogfwd)",
		FullDescription: "  Follows a log file and forwards each new line as an RFC 5424 syslog message over UDP or TCP",
		CommandName:     RootCLICommand,
		UsageOption:     "[options]",
		ChildCommands:   make(map[string]*global.CommandSet),
	}

	// Version Info
	root.ChildCommands["version"] = &global.CommandSet{
		CommandName:     "version",
		Description:     "Show Version Information",
		FullDescription: "Display meta information about program",
	}

	cmdOpts = root
	return
}
