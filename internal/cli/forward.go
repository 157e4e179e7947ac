package cli

import (
	"context"
	"fmt"
	"os"
	"syslogfwd/internal/forwarder"
	"syslogfwd/internal/global"
	"syslogfwd/internal/lifecycle"
	"syslogfwd/internal/logctx"
)

// Loads config and runs the forwarder until interrupted. Returns the process exit code.
func ForwardMode(ctx context.Context, configPath string) (exitCode int) {
	ctx = logctx.AppendCtxTag(ctx, global.NSCLI)

	jsonCfg, err := forwarder.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = 1
		return
	}

	daemonConfig, err := jsonCfg.NewDaemonConf()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in config '%s': %v\n", configPath, err)
		exitCode = 1
		return
	}

	daemonCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go lifecycle.SignalHandler(daemonCtx, cancel)

	daemon := forwarder.NewDaemon(daemonConfig)
	err = daemon.Start(daemonCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting forwarder: %v\n", err)
		exitCode = 1
		return
	}

	err = lifecycle.NotifyReady(daemonCtx)
	if err != nil {
		logctx.LogEvent(daemonCtx, global.VerbosityStandard, global.WarnLog,
			"Systemd notify ready failed: %v\n", err)
	}
	err = lifecycle.NotifyStatus(daemonCtx, fmt.Sprintf("Forwarding %s to %s", daemonConfig.LogFile, daemonConfig.ServerAddress()))
	if err != nil {
		logctx.LogEvent(daemonCtx, global.VerbosityProgress, global.WarnLog,
			"Systemd notify status failed: %v\n", err)
	}

	err = daemon.Run(daemonCtx)

	notifyErr := lifecycle.NotifyStopping(ctx)
	if notifyErr != nil {
		logctx.LogEvent(ctx, global.VerbosityProgress, global.WarnLog,
			"Systemd notify stopping failed: %v\n", notifyErr)
	}

	if err != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog, "Forwarder stopped: %v\n", err)
		exitCode = 1
		return
	}
	return
}
