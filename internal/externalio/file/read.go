package file

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"syslogfwd/internal/global"
	"syslogfwd/internal/logctx"
)

// Blocks until the next complete line is appended and returns it without its line terminator.
// Returns ctx.Err() once ctx is cancelled; any other error is not recoverable.
func (tailer *Tailer) Next(ctx context.Context) (line string, err error) {
	logCtx := tailer.logCtx(ctx)

	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		// Record current file position before read
		currentPos := tailer.cursor

		var raw []byte
		var complete bool
		raw, complete, err = tailer.readLine()
		if err != nil {
			err = fmt.Errorf("failed reading '%s' at offset %d: %w", tailer.filePath, currentPos, err)
			return
		}
		if complete {
			tailer.cursor += int64(len(raw))
			line = string(trimLineEnding(raw))
			return
		}

		// No full line available (partial line or end of file)
		var pathInfo fileInfo
		pathInfo, err = statPath(tailer.filePath)
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("%w: %s", ErrFileRemoved, tailer.filePath)
			return
		} else if err != nil {
			return
		}

		if pathInfo.identity != tailer.identity {
			err = tailer.reopen(logCtx, currentPos)
			if err != nil {
				return
			}
			continue
		}

		if pathInfo.size < currentPos {
			logctx.LogEvent(logCtx, global.VerbosityStandard, global.WarnLog,
				"'%s' truncated to %d bytes, restarting from beginning (was at offset %d)\n",
				tailer.filePath, pathInfo.size, currentPos)
			tailer.cursor = 0
			tailer.reader = nil
			continue
		}

		err = tailer.waiter.Wait(logCtx, tailer.readDelay)
		if err != nil {
			return
		}
	}
}

// Lazy infinite sequence of appended lines. Ends after the first error.
// Ranging again continues from the current cursor.
func (tailer *Tailer) Lines(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for {
			line, err := tailer.Next(ctx)
			if !yield(line, err) || err != nil {
				return
			}
		}
	}
}

// Reads from cursor up to and including the next newline.
// complete is false when end of file was reached first; the partial bytes are not consumed.
func (tailer *Tailer) readLine() (raw []byte, complete bool, err error) {
	if tailer.reader == nil {
		_, err = tailer.file.Seek(tailer.cursor, io.SeekStart)
		if err != nil {
			return
		}
		tailer.reader = bufio.NewReader(tailer.file)
	}

	raw, err = tailer.reader.ReadBytes('\n')
	if err == io.EOF {
		// Partial bytes stay unread, next attempt re-seeks to cursor
		tailer.reader = nil
		raw = nil
		err = nil
		return
	} else if err != nil {
		tailer.reader = nil
		return
	}

	complete = true
	return
}

// Switches to the file now found at the path after a rotation
func (tailer *Tailer) reopen(ctx context.Context, previousPos int64) (err error) {
	file, err := os.Open(tailer.filePath)
	if err != nil {
		err = fmt.Errorf("failed to reopen rotated source file: %w", err)
		return
	}

	identity, err := handleIdentity(file)
	if err != nil {
		file.Close()
		return
	}

	tailer.file.Close()
	tailer.file = file
	tailer.identity = identity
	tailer.reader = nil
	tailer.cursor = 0

	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"'%s' was rotated, following new file from beginning (old file ended at offset %d)\n",
		tailer.filePath, previousPos)
	return
}

// Strips the trailing newline and a carriage return before it
func trimLineEnding(raw []byte) []byte {
	raw = bytes.TrimSuffix(raw, []byte{'\n'})
	raw = bytes.TrimSuffix(raw, []byte{'\r'})
	return raw
}
