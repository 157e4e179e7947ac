package main

import (
	"context"
	"flag"
	"os"
	"syslogfwd/internal/cli"
	"syslogfwd/internal/global"
	"syslogfwd/internal/logctx"
)

func main() {
	cliOpts := cli.DefineOptions()

	var configPath string
	var verbose bool
	commandFlags := flag.NewFlagSet(global.ProgBaseName, flag.ExitOnError)
	cli.SetGlobalArguments(commandFlags, &verbose)
	cli.SetCommon(commandFlags, &configPath)

	commandFlags.Usage = func() {
		cli.PrintHelpMenu(os.Stdout, commandFlags, cli.RootCLICommand, cliOpts)
	}
	commandFlags.Parse(os.Args[1:])

	// Process commands
	switch commandFlags.Arg(0) {
	case "":
	case "version":
		cli.PrintVersion(os.Stdout, verbose)
		return
	default:
		cli.PrintHelpMenu(os.Stdout, commandFlags, cli.RootCLICommand, cliOpts)
		os.Exit(1)
	}

	// Setting global logging.
	// Logger outlives the daemon context so shutdown messages still print.
	ctx, cancel := context.WithCancel(context.Background())
	loggerDone := make(chan struct{})
	ctx = logctx.New(ctx, "global", cli.LogLevel(verbose), loggerDone)
	logger := logctx.GetLogger(ctx)
	logctx.StartWatcher(logger, os.Stdout)

	exitCode := cli.ForwardMode(ctx, configPath)

	// Finish up any stdout writes for global logger
	cancel()
	close(loggerDone)
	logger.Wake()
	logger.Wait()
	os.Exit(exitCode)
}
