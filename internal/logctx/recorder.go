package logctx

import (
	"strings"
	"syslogfwd/internal/global"
	"time"
)

func NewRecorder(logLevel int) (recorder *Recorder) {
	recorder = &Recorder{PrintLevel: logLevel}
	return
}

// Stores event using the same level filtering as the Logger
func (recorder *Recorder) Log(eventLevel int, eventSeverity string, tags []string, fullMessage string) {
	recorder.mutex.Lock()
	defer recorder.mutex.Unlock()

	if eventLevel > recorder.PrintLevel && eventSeverity != global.ErrorLog {
		return
	}

	recorder.events = append(recorder.events, Event{
		Timestamp: time.Now(),
		Tags:      append([]string(nil), tags...),
		Severity:  eventSeverity,
		Message:   fullMessage,
	})
}

// Copy of all recorded events, oldest first
func (recorder *Recorder) Events() (events []Event) {
	recorder.mutex.Lock()
	defer recorder.mutex.Unlock()

	events = make([]Event, len(recorder.events))
	copy(events, recorder.events)
	return
}

// Count of recorded events with given severity whose message contains text
func (recorder *Recorder) Count(severity string, text string) (count int) {
	for _, event := range recorder.Events() {
		if severity != "" && event.Severity != severity {
			continue
		}
		if strings.Contains(event.Message, text) {
			count++
		}
	}
	return
}
