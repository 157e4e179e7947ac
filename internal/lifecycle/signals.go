package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"syslogfwd/internal/global"
	"syslogfwd/internal/logctx"
)

// Signals that stop the forwarder
var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT}

// Handles all incoming signals from external sources.
// A shutdown signal cancels the daemon context. Returns once ctx is done.
func SignalHandler(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 10)
	signal.Notify(sigChan, shutdownSignals...)
	defer signal.Stop(sigChan)

	handleSignals(ctx, sigChan, cancel)
}

func handleSignals(ctx context.Context, sigChan <-chan os.Signal, cancel context.CancelFunc) {
	ctx = logctx.AppendCtxTag(ctx, global.NSLifecycle)
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigChan:
			logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
				"Received signal: %v, shutting down\n", sig)

			// Initiate daemon shutdown
			cancel()
			return
		}
	}
}
