package logctx

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"syslogfwd/internal/global"
	"testing"
)

type lockedBuffer struct {
	mutex sync.Mutex
	buf   bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buf.String()
}

func TestStartWatcher_DrainsBeforeExit(t *testing.T) {
	done := make(chan struct{})
	ctx := New(context.Background(), global.NSTest, global.VerbosityStandard, done)
	ctx = AppendCtxTag(ctx, global.NSForwarder)
	logger := GetLogger(ctx)

	output := &lockedBuffer{}
	StartWatcher(logger, output)

	LogEvent(ctx, global.VerbosityStandard, global.InfoLog, "first\n")
	LogEvent(ctx, global.VerbosityStandard, global.WarnLog, "second\n")
	LogEvent(ctx, global.VerbosityStandard, global.ErrorLog, "third\n")

	close(done)
	logger.Wake()
	logger.Wait()

	lines := strings.Split(strings.TrimSuffix(output.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 output lines, got %d: %q", len(lines), output.String())
	}
	for i, want := range []string{"[Forwarder] [Info] first", "[Forwarder] [Warn] second", "[Forwarder] [Error] third"} {
		if !strings.HasSuffix(lines[i], want) {
			t.Errorf("line %d: got %q, want suffix %q", i, lines[i], want)
		}
	}
}
