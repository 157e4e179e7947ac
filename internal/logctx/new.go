package logctx

import (
	"context"
	"syslogfwd/internal/global"
	"sync"
	"time"
)

// Logger Constructor
//
// loglevel
//
//	0 - None: quiet (prints nothing but errors)
//	1 - Standard: normal progress messages
//	2 - Progress: more progress messages (no actual data outputted)
//	3 - Data: shows each forwarded record
//	4 - FullData: shows full data being processed
//	5 - Debug: shows extra data during processing (offsets, sizes)
func NewLogger(id string, logLevel int, done <-chan struct{}) (logger *Logger) {
	logger = &Logger{
		ID:         id,
		CreatedAt:  time.Now(),
		queue:      make([]Event, 0),
		Done:       done,
		PrintLevel: logLevel,
		wg:         &sync.WaitGroup{},
	}
	logger.cond = sync.NewCond(&logger.mutex)
	return
}

// Logger Constructor.
// Embeds logger in returned context using provided context as base.
func New(baseCtx context.Context, id string, logLevel int, done <-chan struct{}) (ctxLogger context.Context) {
	logger := NewLogger(id, logLevel, done)
	ctxLogger = WithSink(baseCtx, logger)
	return
}

// Attach any sink to context
func WithSink(ctx context.Context, sink Sink) (ctxSink context.Context) {
	ctxSink = context.WithValue(ctx, global.LoggerKey, sink)
	return
}

// Extracts sink from context or returns nil
func GetSink(ctx context.Context) (sink Sink) {
	sink, ok := ctx.Value(global.LoggerKey).(Sink)
	if ok {
		return
	}
	sink = nil
	return
}

// Extracts Logger from context or returns nil
func GetLogger(ctx context.Context) (logger *Logger) {
	logger, ok := ctx.Value(global.LoggerKey).(*Logger)
	if ok {
		return
	}
	logger = nil
	return
}

// Change the logger's level
func SetLogLevel(ctx context.Context, newLevel int) {
	switch sink := GetSink(ctx).(type) {
	case *Logger:
		sink.mutex.Lock()
		defer sink.mutex.Unlock()
		sink.PrintLevel = newLevel
	case *Recorder:
		sink.mutex.Lock()
		defer sink.mutex.Unlock()
		sink.PrintLevel = newLevel
	}
}
