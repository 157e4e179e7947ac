package file

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

type fileInfo struct {
	identity fileIdentity
	size     int64
}

// Stats whatever file currently lives at path
func statPath(path string) (info fileInfo, err error) {
	var stat unix.Stat_t
	err = unix.Stat(path, &stat)
	if err != nil {
		err = &os.PathError{Op: "stat", Path: path, Err: err}
		return
	}

	info = fileInfo{
		identity: fileIdentity{device: uint64(stat.Dev), inode: uint64(stat.Ino)},
		size:     stat.Size,
	}
	return
}

// Device and inode of an open handle, stays valid after the path is renamed or removed
func handleIdentity(file *os.File) (identity fileIdentity, err error) {
	rawConn, err := file.SyscallConn()
	if err != nil {
		err = fmt.Errorf("failed to access source file descriptor: %w", err)
		return
	}

	var stat unix.Stat_t
	var statErr error
	err = rawConn.Control(func(fd uintptr) {
		statErr = unix.Fstat(int(fd), &stat)
	})
	if err == nil {
		err = statErr
	}
	if err != nil {
		err = fmt.Errorf("unable to stat source file: %w", err)
		return
	}

	identity = fileIdentity{device: uint64(stat.Dev), inode: uint64(stat.Ino)}
	return
}
