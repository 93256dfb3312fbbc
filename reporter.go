package triplebuffer

import (
	"sync/atomic"

	"github.com/go-logr/logr"
)

// Reporter is used to report values that were overwritten before the reader
// claimed them. Alert is called on the writer's goroutine from inside
// Publish, so it should return quickly.
type Reporter interface {
	Alert(dropped uint64)
}

// AlertFunc type is an adapter to allow the use of ordinary functions as
// Reporters.
type AlertFunc func(dropped uint64)

// Alert calls f(dropped).
func (f AlertFunc) Alert(dropped uint64) {
	f(dropped)
}

// Assert reporter implements Reporter.
var _ Reporter = reporter{}

// reporter is a struct that satisfies the Reporter interface, but
// doesn't actually do anything. Just in case no Reporter is set.
type reporter struct{}

func (r reporter) Alert(dropped uint64) {}

type logReporter struct {
	log   logr.Logger
	total atomic.Uint64
}

// NewLogReporter returns a Reporter that logs every overwritten value to log
// at verbosity 1, along with the running total.
func NewLogReporter(log logr.Logger) Reporter {
	return &logReporter{log: log}
}

func (r *logReporter) Alert(dropped uint64) {
	total := r.total.Add(dropped)
	r.log.V(1).Info("triple buffer overwrote unread value", "dropped", dropped, "total", total)
}
