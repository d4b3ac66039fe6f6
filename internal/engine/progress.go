package engine

import "sync/atomic"

// ProgressUpdate is one entry on the progress channel: the outer attempt
// number, the best fitness seen so far and the wall-clock time spent.
type ProgressUpdate struct {
	Iteration   int     `json:"iteration"`
	BestFitness float64 `json:"best_fitness"`
	ElapsedSec  float64 `json:"elapsed_sec"`
}

// CancelFlag requests cooperative cancellation of a running generation. The
// zero value is ready to use, and a nil *CancelFlag never cancels. The
// engine polls the flag at the top of each outer attempt and once per
// placement iteration; there is no preemption.
type CancelFlag struct {
	cancelled atomic.Bool
}

// Cancel requests cancellation. Safe to call from any goroutine.
func (c *CancelFlag) Cancel() {
	c.cancelled.Store(true)
}

// Cancelled reports whether cancellation has been requested.
func (c *CancelFlag) Cancelled() bool {
	return c != nil && c.cancelled.Load()
}

// publish sends an update without blocking, so a slow or absent reader
// never stalls generation.
func publish(progress chan<- ProgressUpdate, u ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- u:
	default:
	}
}
