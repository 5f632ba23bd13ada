// Package bridge carries "there are mpv events to read" from the mpv reader
// goroutine to the UI goroutine.
package bridge

// Wakeup is a single-slot signal. Notify may be called from any goroutine
// and never blocks; notifications that arrive before the receiver drains the
// slot collapse into one. No data travels with the signal: the receiver
// polls the engine for the actual events.
type Wakeup struct {
	ch chan struct{}
}

// NewWakeup returns an empty signal.
func NewWakeup() *Wakeup {
	return &Wakeup{ch: make(chan struct{}, 1)}
}

// Notify marks the slot as set.
func (w *Wakeup) Notify() {
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

// C returns the receive side. One receive succeeds per set slot.
func (w *Wakeup) C() <-chan struct{} {
	return w.ch
}
