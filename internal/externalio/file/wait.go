package file

import (
	"context"
	"fmt"
	"path/filepath"
	"syslogfwd/internal/global"
	"syslogfwd/internal/logctx"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Sleeps for the full delay
func (pollWaiter) Wait(ctx context.Context, maxDelay time.Duration) (err error) {
	timer := time.NewTimer(maxDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		err = ctx.Err()
	case <-timer.C:
	}
	return
}

func (pollWaiter) Close() (err error) {
	return
}

// Watches the parent directory so rotation (rename/create) of the file is also seen
func newEventWaiter(filePath string) (wait *eventWaiter, err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		err = fmt.Errorf("failed to initialize file watcher: %w", err)
		return
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		watcher.Close()
		err = fmt.Errorf("failed to resolve source file path: %w", err)
		return
	}

	err = watcher.Add(filepath.Dir(absPath))
	if err != nil {
		watcher.Close()
		err = fmt.Errorf("failed to add directory '%s' to file watcher: %w", filepath.Dir(absPath), err)
		return
	}

	wait = &eventWaiter{
		watcher:  watcher,
		filePath: absPath,
	}
	return
}

// Returns on the first event for the file, or after maxDelay as a fallback poll
func (wait *eventWaiter) Wait(ctx context.Context, maxDelay time.Duration) (err error) {
	ctx = logctx.AppendCtxTag(ctx, global.NSWatcher)

	timer := time.NewTimer(maxDelay)
	defer timer.Stop()

	events := wait.watcher.Events
	watchErrors := wait.watcher.Errors

	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		case <-timer.C:
			return
		case event, ok := <-events:
			if !ok {
				// Watcher gone, remaining wait is a plain poll
				events = nil
				continue
			}
			if filepath.Clean(event.Name) != wait.filePath {
				continue
			}
			logctx.LogEvent(ctx, global.VerbosityDebug, global.InfoLog,
				"file event %s on '%s'\n", event.Op, event.Name)
			return
		case watchErr, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				continue
			}
			logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
				"file watcher error: %v\n", watchErr)
		}
	}
}

func (wait *eventWaiter) Close() (err error) {
	err = wait.watcher.Close()
	return
}
