package file

import (
	"bufio"
	"context"
	"errors"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

var ErrFileRemoved = errors.New("source file was removed")

// Follows one growing file and yields each newly appended complete line.
// The cursor is only touched by the goroutine calling Next.
type Tailer struct {
	Namespace []string
	filePath  string
	file      *os.File
	reader    *bufio.Reader // nil when the next read must re-seek to cursor
	cursor    int64         // offset of the first byte not yet yielded
	identity  fileIdentity  // device/inode of the open handle
	readDelay time.Duration
	waiter    waiter
}

type fileIdentity struct {
	device uint64
	inode  uint64
}

// Blocks until new data may be available or maxDelay passes
type waiter interface {
	Wait(ctx context.Context, maxDelay time.Duration) (err error)
	Close() (err error)
}

type pollWaiter struct{}

// Wakes early on filesystem events for the watched file
type eventWaiter struct {
	watcher  *fsnotify.Watcher
	filePath string
}
