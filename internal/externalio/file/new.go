package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"syslogfwd/internal/global"
	"syslogfwd/internal/logctx"
	"time"
)

// Creates a tailer positioned at the current end of filePath.
// A missing file is created empty so the forwarder can start before the writer does.
func NewTailer(ctx context.Context, namespace []string, filePath string, readDelay time.Duration, watchEvents bool) (tailer *Tailer, err error) {
	if filePath == "" {
		err = fmt.Errorf("no source file path given")
		return
	}
	if readDelay <= 0 {
		err = fmt.Errorf("read delay must be positive, got %v", readDelay)
		return
	}

	file, err := os.OpenFile(filePath, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		err = fmt.Errorf("failed to open source file: %w", err)
		return
	}

	// Lines written while not running are not forwarded
	offset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		file.Close()
		err = fmt.Errorf("failed to seek to end of source file: %w", err)
		return
	}

	identity, err := handleIdentity(file)
	if err != nil {
		file.Close()
		return
	}

	var wait waiter = pollWaiter{}
	if watchEvents {
		wait, err = newEventWaiter(filePath)
		if err != nil {
			file.Close()
			return
		}
	}

	tailer = &Tailer{
		Namespace: append(append([]string{}, namespace...), global.NSTailer),
		filePath:  filePath,
		file:      file,
		cursor:    offset,
		identity:  identity,
		readDelay: readDelay,
		waiter:    wait,
	}

	logctx.LogEvent(tailer.logCtx(ctx), global.VerbosityStandard, global.InfoLog,
		"Following '%s' from offset %d\n", filePath, offset)
	return
}

// Releases the file handle and any watcher
func (tailer *Tailer) Close() (err error) {
	if tailer == nil {
		return
	}
	if tailer.waiter != nil {
		err = tailer.waiter.Close()
	}
	if tailer.file != nil {
		closeErr := tailer.file.Close()
		if err == nil {
			err = closeErr
		}
		tailer.file = nil
	}
	return
}

// Current read offset
func (tailer *Tailer) Cursor() int64 {
	return tailer.cursor
}

func (tailer *Tailer) logCtx(ctx context.Context) context.Context {
	return logctx.OverwriteCtxTag(ctx, tailer.Namespace)
}
