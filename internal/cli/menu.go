package cli

import (
	"flag"
	"fmt"
	"io"
	"runtime"
	"sort"
	"strings"
	"syslogfwd/internal/global"
)

const (
	RootCLICommand  string = "root"
	helpMenuTrailer string = `
The configuration file is JSON (comments allowed) with required keys
server_ip, server_port and log_file.
`
)

// Full standardized help menu (wraps option printer as well)
func PrintHelpMenu(output io.Writer, fs *flag.FlagSet, command string, rootCmd *global.CommandSet) {
	const baseIndentSpaces = 2

	curCmdSet := rootCmd
	if command != "" && command != RootCLICommand {
		cmd, ok := rootCmd.ChildCommands[command]
		if !ok {
			fmt.Fprintf(output, "Unknown command: %s\n", command)
			return
		}
		curCmdSet = cmd
	}

	// Build full usage path, root name is the program itself
	usageParts := []string{fs.Name()}
	if curCmdSet != rootCmd {
		usageParts = append(usageParts, curCmdSet.CommandName)
	}
	if curCmdSet.UsageOption != "" {
		usageParts = append(usageParts, curCmdSet.UsageOption)
	}
	if len(curCmdSet.ChildCommands) > 0 {
		usageParts = append(usageParts, "[subcommand]")
	}

	fmt.Fprintf(output, "Usage: %s\n\n", strings.Join(usageParts, " "))

	// Description
	if curCmdSet == rootCmd {
		fmt.Fprintln(output, curCmdSet.Description)
		fmt.Fprintln(output, curCmdSet.FullDescription)
		fmt.Fprintln(output)
	} else if curCmdSet.FullDescription != "" {
		fmt.Fprintln(output, "  Description:")
		fmt.Fprintf(output, "    %s\n\n", curCmdSet.FullDescription)
	}

	// Subcommands
	if len(curCmdSet.ChildCommands) > 0 {
		indent := strings.Repeat(" ", baseIndentSpaces)
		fmt.Fprintf(output, "%sSubcommands:\n", indent)

		maxLen := 0
		subNames := make([]string, 0, len(curCmdSet.ChildCommands))
		for name := range curCmdSet.ChildCommands {
			maxLen = max(maxLen, len(name))
			subNames = append(subNames, name)
		}
		sort.Strings(subNames)

		cmdIndent := strings.Repeat(" ", baseIndentSpaces+2)
		for _, name := range subNames {
			padding := strings.Repeat(" ", maxLen-len(name)+2)
			fmt.Fprintf(output, "%s%s%s - %s\n", cmdIndent, name, padding, curCmdSet.ChildCommands[name].Description)
		}
		fmt.Fprintln(output)
	}

	printFlagOptions(output, fs, baseIndentSpaces)

	// Top-level trailer
	if curCmdSet == rootCmd {
		fmt.Fprint(output, helpMenuTrailer)
	}
}

// Custom printer to merge short/long aliases and indent automatically
func printFlagOptions(output io.Writer, fs *flag.FlagSet, baseIndentSpaces int) {
	const shortLongArgJoiner string = ", " // like "  -c[, ]--config  Some usage text"
	const argToUsageSpaces int = 2         // like "  -c, --config[  ]Some usage text"

	type optInfo struct {
		names      []string
		usage      string
		defaultVal string
	}

	// Aliases share exact usage text
	seen := make(map[string]*optInfo)
	var opts []*optInfo
	fs.VisitAll(func(arg *flag.Flag) {
		name := "--" + arg.Name
		if len(arg.Name) == 1 {
			name = "-" + arg.Name
		}

		opt, ok := seen[arg.Usage]
		if !ok {
			opt = &optInfo{usage: arg.Usage, defaultVal: arg.DefValue}
			seen[arg.Usage] = opt
			opts = append(opts, opt)
		}
		opt.names = append(opt.names, name)
	})

	// Short names before long names
	for _, opt := range opts {
		sort.Slice(opt.names, func(indexA, indexB int) bool {
			return len(opt.names[indexA]) < len(opt.names[indexB])
		})
	}
	sort.Slice(opts, func(indexA, indexB int) bool {
		return strings.ToLower(opts[indexA].names[0]) < strings.ToLower(opts[indexB].names[0])
	})

	maxLen := 0
	for _, opt := range opts {
		maxLen = max(maxLen, len(strings.Join(opt.names, shortLongArgJoiner)))
	}

	fmt.Fprintf(output, "%sOptions:\n", strings.Repeat(" ", baseIndentSpaces))
	indent := strings.Repeat(" ", baseIndentSpaces)
	for _, opt := range opts {
		left := strings.Join(opt.names, shortLongArgJoiner)
		padding := strings.Repeat(" ", maxLen-len(left)+argToUsageSpaces)

		// Skip printing any "empty" defaults
		desc := opt.usage
		if opt.defaultVal != "" && opt.defaultVal != "false" && opt.defaultVal != "0" {
			desc += fmt.Sprintf(" [default: %s]", opt.defaultVal)
		}

		fmt.Fprintf(output, "%s%s%s%s\n", indent, left, padding, desc)
	}
}

func PrintVersion(output io.Writer, verbose bool) {
	if !verbose {
		fmt.Fprintln(output, global.ProgVersion)
		return
	}
	fmt.Fprintf(output, "%s %s\n", global.ProgBaseName, global.ProgVersion)
	fmt.Fprintf(output, "Built using %s(%s) for %s on %s\n", runtime.Version(), runtime.Compiler, runtime.GOOS, runtime.GOARCH)
}
