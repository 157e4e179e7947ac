package forwarder

import (
	"context"
	"syslogfwd/internal/externalio/file"
	"syslogfwd/internal/global"
	"syslogfwd/internal/logctx"
	"syslogfwd/internal/network"
	"syslogfwd/internal/syslog"
)

func NewDaemon(cfg Config) (daemon *Daemon) {
	daemon = &Daemon{cfg: cfg}
	return
}

// Connects to the collector and opens the source file.
// Nothing is left open when an error is returned.
func (daemon *Daemon) Start(ctx context.Context) (err error) {
	ctx = logctx.AppendCtxTag(ctx, global.NSForwarder)

	formatter, err := syslog.NewFormatter(daemon.cfg.Facility, daemon.cfg.Severity, daemon.cfg.AppName)
	if err != nil {
		err = &FatalError{Op: "create formatter", Err: err}
		return
	}

	transportCtx := logctx.AppendCtxTag(ctx, global.NSTransport)
	daemon.transport, err = network.Open(transportCtx, daemon.cfg.Protocol, daemon.cfg.ServerAddress())
	if err != nil {
		err = &FatalError{Op: "connect", Err: err}
		return
	}

	daemon.tailer, err = file.NewTailer(ctx, logctx.GetTagList(ctx), daemon.cfg.LogFile,
		daemon.cfg.ReadDelay, daemon.cfg.WatchEvents)
	if err != nil {
		daemon.transport.Close()
		daemon.transport = nil
		err = &FatalError{Op: "open source", Err: err}
		return
	}

	daemon.loop = newLoop(daemon.tailer, formatter, daemon.transport, daemon.transport.Protocol(), daemon.cfg.ReconnectDelay)

	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"Forwarding '%s' to %s://%s with priority %d (%s.%s)\n",
		daemon.cfg.LogFile, daemon.transport.Protocol(), daemon.transport.Address(),
		formatter.Priority(), daemon.cfg.Facility, daemon.cfg.Severity)
	return
}

// Runs the forwarding loop until ctx is cancelled or a fatal error occurs.
// The connection and the source file are closed on return.
func (daemon *Daemon) Run(ctx context.Context) (err error) {
	ctx = logctx.AppendCtxTag(ctx, global.NSForwarder)

	err = daemon.loop.Run(logctx.AppendCtxTag(ctx, global.NSTransport))

	closeErr := daemon.tailer.Close()
	if closeErr != nil {
		logctx.LogEvent(ctx, global.VerbosityProgress, global.WarnLog,
			"error closing source file: %v\n", closeErr)
	}

	stats := daemon.Stats()
	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"Stopped: %d lines read, %d sent, %d send failures, %d dropped, %d reconnects (%d failed)\n",
		stats.LinesRead.Load(), stats.Sent.Load(), stats.SendFailures.Load(), stats.Dropped.Load(),
		stats.Reconnects.Load(), stats.ReconnectFailures.Load())
	return
}

// Loop counters, nil before Start
func (daemon *Daemon) Stats() (stats *Stats) {
	if daemon.loop == nil {
		return
	}
	stats = &daemon.loop.Stats
	return
}
