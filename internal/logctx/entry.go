// Central logging system. Buffers messages and writes to configured outputs
package logctx

import (
	"context"
	"fmt"
	"strings"
)

// Entry for logging events
func LogEvent(ctx context.Context, eventLevel int, severity string, message string, vars ...any) {
	sink := GetSink(ctx)
	if sink == nil {
		return
	}

	// Retrieve current tag list
	tags := GetTagList(ctx)

	var newMsg string
	// vars might be empty - check to omit formatting
	if len(vars) == 0 || !strings.Contains(message, "%") {
		// Avoiding 'extra' print to log entries
		newMsg = message
	} else {
		newMsg = fmt.Sprintf(message, vars...)
	}

	sink.Log(eventLevel, severity, tags, newMsg)
}
