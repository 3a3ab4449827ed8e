package store

import (
	"sync"

	"locate-go/internal/log"
	"locate-go/locate"
)

// Writer decouples state saves from the ingest path. Save enqueues the
// snapshot and returns immediately; a single worker goroutine performs the
// actual writes. The queue holds one snapshot: when a newer one arrives
// before the worker catches up, the older snapshot is replaced. Only the
// latest full table matters, so coalescing loses nothing.
type Writer struct {
	inner locate.StateStore
	queue chan map[string]locate.DeviceState
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewWriter wraps inner and starts the write worker.
func NewWriter(inner locate.StateStore) *Writer {
	w := &Writer{
		inner: inner,
		queue: make(chan map[string]locate.DeviceState, 1),
	}
	w.wg.Add(1)
	go w.loop()
	return w
}

// Load delegates to the wrapped store.
func (w *Writer) Load() (map[string]locate.DeviceState, error) {
	return w.inner.Load()
}

// Save enqueues a snapshot for writing and never blocks. It always returns
// nil: write errors surface in the worker as log entries, matching the
// best-effort durability contract.
func (w *Writer) Save(states map[string]locate.DeviceState) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	for {
		select {
		case w.queue <- states:
			return nil
		default:
			// Full: discard the queued older snapshot and retry.
			select {
			case <-w.queue:
			default:
			}
		}
	}
}

// Close drains the queue, waits for the final write and stops the worker.
func (w *Writer) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()
	w.wg.Wait()
}

func (w *Writer) loop() {
	defer w.wg.Done()
	for states := range w.queue {
		if err := w.inner.Save(states); err != nil {
			log.Warn("async state save failed", "error", err)
		}
	}
}
