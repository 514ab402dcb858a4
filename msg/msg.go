// Package msg implements program log output: a simple message sink plus a
// fixed-capacity formatting buffer for environments where every byte of
// formatting work is metered.
package msg

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

// Sink receives log messages.
type Sink func(message string)

var sink atomic.Value

func init() {
	sink.Store(Sink(func(message string) {
		zap.L().Info(message)
	}))
}

// SetSink replaces the destination for logged messages and returns the
// previous sink. The default sink writes to the global zap logger.
func SetSink(s Sink) Sink {
	previous := sink.Swap(s)
	return previous.(Sink)
}

// Log prints a message to the log.
func Log(message string) {
	sink.Load().(Sink)(message)
}

// Logf formats according to fmt rules and prints the result to the log.
// Note that fmt formatting is relatively expensive; in metered environments
// prefer a Buffer.
func Logf(format string, args ...interface{}) {
	Log(fmt.Sprintf(format, args...))
}
