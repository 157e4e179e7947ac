package logctx

import (
	"sync"
	"time"
)

// Destination for diagnostic events. Components never hold a sink directly,
// they retrieve it from the context they were handed.
type Sink interface {
	Log(eventLevel int, severity string, tags []string, message string)
}

// Log Event Structure
type Event struct {
	Timestamp time.Time
	Severity  string
	Tags      []string
	Message   string
}

// Logger Struct
type Logger struct {
	ID         string
	CreatedAt  time.Time
	queue      []Event         // event buffer
	mutex      sync.Mutex      // protects buffer
	cond       *sync.Cond      // condition to signal new events
	Done       <-chan struct{} // closed when the program is exiting
	PrintLevel int             // Level at which the message should be recorded
	wg         *sync.WaitGroup // Holds main execution threads until log watchers are done handling events
}

// In-memory sink, keeps every accepted event for later inspection
type Recorder struct {
	PrintLevel int
	mutex      sync.Mutex
	events     []Event
}
