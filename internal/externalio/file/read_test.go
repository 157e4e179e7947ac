package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syslogfwd/internal/global"
	"syslogfwd/internal/logctx"
	"testing"
	"time"
)

const testReadDelay = 10 * time.Millisecond

func newTestTailer(t *testing.T, path string, watchEvents bool, readDelay time.Duration) (ctx context.Context, tailer *Tailer, recorder *logctx.Recorder) {
	t.Helper()
	recorder = logctx.NewRecorder(global.VerbosityDebug)
	ctx = logctx.WithSink(context.Background(), recorder)

	tailer, err := NewTailer(ctx, []string{global.NSTest}, path, readDelay, watchEvents)
	if err != nil {
		t.Fatalf("failed to create tailer: %v", err)
	}
	t.Cleanup(func() { tailer.Close() })
	return
}

func appendText(t *testing.T, path string, text string) {
	t.Helper()
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		t.Fatalf("failed to open for append: %v", err)
	}
	defer file.Close()
	if _, err := file.WriteString(text); err != nil {
		t.Fatalf("failed to append: %v", err)
	}
}

func nextWithin(t *testing.T, ctx context.Context, tailer *Tailer, timeout time.Duration) (line string, err error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	line, err = tailer.Next(ctx)
	return
}

func expectLines(t *testing.T, ctx context.Context, tailer *Tailer, want ...string) {
	t.Helper()
	for i, expected := range want {
		line, err := nextWithin(t, ctx, tailer, 2*time.Second)
		if err != nil {
			t.Fatalf("line %d: unexpected error: %v", i, err)
		}
		if line != expected {
			t.Fatalf("line %d: got %q want %q", i, line, expected)
		}
	}
}

func expectNoLine(t *testing.T, ctx context.Context, tailer *Tailer) {
	t.Helper()
	line, err := nextWithin(t, ctx, tailer, 100*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected no line, got %q (err %v)", line, err)
	}
}

func TestNewTailer_StartsAtEndOfFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	appendText(t, path, "written before start\nanother old line\n")

	ctx, tailer, _ := newTestTailer(t, path, false, testReadDelay)
	if tailer.Cursor() != 38 {
		t.Fatalf("expected cursor at end of file (38), got %d", tailer.Cursor())
	}

	expectNoLine(t, ctx, tailer)

	appendText(t, path, "first new line\nsecond new line\n")
	expectLines(t, ctx, tailer, "first new line", "second new line")
	if tailer.Cursor() != 38+31 {
		t.Errorf("cursor not advanced past yielded lines: %d", tailer.Cursor())
	}
}

func TestNewTailer_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-yet.log")

	ctx, tailer, _ := newTestTailer(t, path, false, testReadDelay)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to be created: %v", err)
	}
	if tailer.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", tailer.Cursor())
	}

	appendText(t, path, "hello\n")
	expectLines(t, ctx, tailer, "hello")
}

func TestNewTailer_InvalidArguments(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name      string
		path      string
		readDelay time.Duration
	}{
		{
			name:      "empty path",
			path:      "",
			readDelay: testReadDelay,
		},
		{
			name:      "zero read delay",
			path:      filepath.Join(t.TempDir(), "a.log"),
			readDelay: 0,
		},
		{
			name:      "missing directory",
			path:      filepath.Join(t.TempDir(), "nope", "a.log"),
			readDelay: testReadDelay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tailer, err := NewTailer(ctx, nil, tt.path, tt.readDelay, false)
			if err == nil {
				tailer.Close()
				t.Fatal("expected error")
			}
		})
	}
}

func TestNext_PartialLineHeldUntilNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	ctx, tailer, _ := newTestTailer(t, path, false, testReadDelay)

	appendText(t, path, "incomplete")
	expectNoLine(t, ctx, tailer)
	if tailer.Cursor() != 0 {
		t.Fatalf("partial line must not advance cursor, got %d", tailer.Cursor())
	}

	appendText(t, path, " but now finished\nnext")
	expectLines(t, ctx, tailer, "incomplete but now finished")
	expectNoLine(t, ctx, tailer)

	appendText(t, path, "\n")
	expectLines(t, ctx, tailer, "next")
}

func TestNext_LineEndings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	ctx, tailer, _ := newTestTailer(t, path, false, testReadDelay)

	appendText(t, path, "windows line\r\n\n  padded  \n")
	expectLines(t, ctx, tailer, "windows line", "", "  padded  ")
}

func TestNext_Truncation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	ctx, tailer, recorder := newTestTailer(t, path, false, testReadDelay)

	appendText(t, path, "alpha\nbravo\ncharlie\n")
	expectLines(t, ctx, tailer, "alpha", "bravo", "charlie")

	if err := os.Truncate(path, 0); err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
	// Same bytes as before the truncation must be forwarded again
	appendText(t, path, "alpha\n")
	expectLines(t, ctx, tailer, "alpha")
	if tailer.Cursor() != 6 {
		t.Errorf("expected cursor 6 after truncation, got %d", tailer.Cursor())
	}

	if recorder.Count(global.WarnLog, "truncated") != 1 {
		t.Errorf("expected one truncation diagnostic, got %v", recorder.Events())
	}
}

func TestNext_Rotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	ctx, tailer, recorder := newTestTailer(t, path, false, testReadDelay)

	appendText(t, path, "old\n")
	expectLines(t, ctx, tailer, "old")

	if err := os.Rename(path, path+".1"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	// New file longer than old cursor so only the inode change reveals the rotation
	appendText(t, path, "first line of the new file\n")
	expectLines(t, ctx, tailer, "first line of the new file")

	appendText(t, path+".1", "late write to rotated file\n")
	appendText(t, path, "second line of the new file\n")
	expectLines(t, ctx, tailer, "second line of the new file")

	if recorder.Count(global.InfoLog, "was rotated") != 1 {
		t.Errorf("expected one rotation diagnostic, got %v", recorder.Events())
	}
}

func TestNext_FileRemovedIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	ctx, tailer, _ := newTestTailer(t, path, false, testReadDelay)

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	_, err := nextWithin(t, ctx, tailer, 2*time.Second)
	if !errors.Is(err, ErrFileRemoved) {
		t.Fatalf("expected ErrFileRemoved, got %v", err)
	}
}

func TestNext_Cancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	_, tailer, _ := newTestTailer(t, path, false, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := tailer.Next(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("cancellation was not observed during read delay")
	}
}

func TestNext_WatchEventsWakeEarly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	// Read delay far beyond the test timeout, only a file event can deliver the line in time
	ctx, tailer, recorder := newTestTailer(t, path, true, time.Minute)

	go func() {
		time.Sleep(50 * time.Millisecond)
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return
		}
		defer file.Close()
		file.WriteString("woken by event\n")
	}()

	expectLines(t, ctx, tailer, "woken by event")

	var watcherEvents int
	for _, event := range recorder.Events() {
		if !strings.Contains(event.Message, "file event") {
			continue
		}
		watcherEvents++
		if len(event.Tags) == 0 || event.Tags[len(event.Tags)-1] != global.NSWatcher {
			t.Errorf("file event logged with tags %v, expected %s last", event.Tags, global.NSWatcher)
		}
	}
	if watcherEvents == 0 {
		t.Errorf("expected a file event diagnostic, got %v", recorder.Events())
	}
}

func TestLines_Restartable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	ctx, tailer, _ := newTestTailer(t, path, false, testReadDelay)

	appendText(t, path, "one\ntwo\nthree\n")

	var got []string
	for line, err := range tailer.Lines(ctx) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, line)
		if len(got) == 2 {
			break
		}
	}

	// Second range continues where the first stopped
	for line, err := range tailer.Lines(ctx) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, line)
		break
	}

	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}
