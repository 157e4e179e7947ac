package logctx

import (
	"fmt"
	"io"
)

// Starts a go routine that reads events and writes formatted output to io.Writer.
// Stops when logger.Done is closed and the queue has drained.
func StartWatcher(logger *Logger, output io.Writer) {
	logger.wg.Add(1)
	go func() {
		defer logger.wg.Done()

		for {
			logger.mutex.Lock()

			// Wait for events
			for len(logger.queue) == 0 {
				select {
				case <-logger.Done:
					logger.mutex.Unlock()
					return
				default:
					logger.cond.Wait()
				}
			}

			// Pop one event from the front of the queue
			event := logger.queue[0]
			logger.queue = logger.queue[1:]
			logger.mutex.Unlock()

			// printf to allow caller to determine newlines
			fmt.Fprintf(output, "%s", event.Format())
		}
	}()
}

// Hold main thread exit until logger is finished its work
func (logger *Logger) Wait() {
	logger.wg.Wait()
}

// Wake signals/broadcasts to any goroutines waiting on the condition variable
func (logger *Logger) Wake() {
	logger.mutex.Lock()
	defer logger.mutex.Unlock()
	logger.cond.Broadcast()
}
