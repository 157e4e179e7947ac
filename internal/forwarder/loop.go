package forwarder

import (
	"context"
	"fmt"
	"syslogfwd/internal/global"
	"syslogfwd/internal/logctx"
	"syslogfwd/internal/network"
	"syslogfwd/internal/syslog"
	"time"
)

func newLoop(source LineSource, formatter *syslog.Formatter, sender Sender, protocol string, reconnectDelay time.Duration) (loop *Loop) {
	loop = &Loop{
		source:         source,
		formatter:      formatter,
		sender:         sender,
		protocol:       protocol,
		reconnectDelay: reconnectDelay,
		state:          StateRunning,
	}
	return
}

func (state State) String() string {
	switch state {
	case StateRunning:
		return "running"
	case StateReconnecting:
		return "reconnecting"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("unknown(%d)", int(state))
	}
}

// Current loop state. Only meaningful from the loop goroutine or after Run returns.
func (loop *Loop) State() State {
	return loop.state
}

// Forwards lines until ctx is cancelled or the source fails.
// Cancellation returns nil. Source failures return a FatalError.
// The sender is closed in both cases.
func (loop *Loop) Run(ctx context.Context) (err error) {
	defer func() {
		loop.state = StateTerminated
		closeErr := loop.sender.Close()
		if closeErr != nil {
			logctx.LogEvent(ctx, global.VerbosityProgress, global.WarnLog,
				"error closing collector connection: %v\n", closeErr)
		}
	}()

	for {
		var line string
		line, err = loop.source.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				err = nil
				return
			}
			err = &FatalError{Op: "read source", Err: err}
			return
		}
		loop.Stats.LinesRead.Add(1)

		if loop.state == StateReconnecting {
			err = loop.reconnect(ctx)
			if ctx.Err() != nil {
				err = nil
				return
			}
			if err != nil {
				// Connection still down, this line has nowhere to go
				loop.Stats.Dropped.Add(1)
				err = nil
				continue
			}
		}

		loop.forward(ctx, line)
		if ctx.Err() != nil {
			return
		}
	}
}

// Formats and sends one line, moving to reconnecting on TCP failures
func (loop *Loop) forward(ctx context.Context, line string) {
	message := loop.formatter.Format(line)

	err := loop.sender.Send(ctx, message)
	if err == nil {
		loop.Stats.Sent.Add(1)
		logctx.LogEvent(ctx, global.VerbosityData, global.InfoLog, "Sent: %s\n", message)
		return
	}
	loop.Stats.SendFailures.Add(1)

	if loop.protocol != network.ProtocolTCP {
		// Datagrams are fire and forget
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog, "%v\n", err)
		return
	}

	logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
		"%v, reconnecting in %v\n", err, loop.reconnectDelay)
	loop.state = StateReconnecting

	// The failed record is not resent. A failed reconnect is already logged and counted.
	loop.reconnect(ctx)
}

// Waits the reconnect delay then attempts one reconnect
func (loop *Loop) reconnect(ctx context.Context) (err error) {
	if loop.reconnectDelay > 0 {
		timer := time.NewTimer(loop.reconnectDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			err = ctx.Err()
			return
		case <-timer.C:
		}
	}

	err = loop.sender.Reconnect(ctx)
	if err != nil {
		loop.Stats.ReconnectFailures.Add(1)
		if ctx.Err() == nil {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
				"reconnect failed: %v\n", err)
		}
		return
	}

	loop.Stats.Reconnects.Add(1)
	loop.state = StateRunning
	return
}
