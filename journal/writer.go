// Package journal captures accepted readings as JSON lines so a session can
// be replayed through the engine offline.
package journal

import (
	"bufio"
	"encoding/json"
	"os"
	"sync"
	"time"
)

// Entry is one captured reading.
type Entry struct {
	At       time.Time `json:"ts"`
	DeviceID string    `json:"device"`
	AnchorID string    `json:"anchor"`
	Distance float64   `json:"distance"`
}

// Writer appends entries to a journal file. Appends from concurrent message
// handlers are serialized with a mutex.
type Writer struct {
	mu sync.Mutex
	f  *os.File
	w  *bufio.Writer
}

// NewWriter opens (or creates) a journal file for appending.
func NewWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &Writer{f: f, w: bufio.NewWriter(f)}, nil
}

// Append writes one entry as a JSON line.
func (jw *Writer) Append(e Entry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	jw.mu.Lock()
	defer jw.mu.Unlock()
	if _, err := jw.w.Write(b); err != nil {
		return err
	}
	return jw.w.WriteByte('\n')
}

// Close flushes buffered entries and closes the file.
func (jw *Writer) Close() error {
	jw.mu.Lock()
	defer jw.mu.Unlock()
	if err := jw.w.Flush(); err != nil {
		jw.f.Close()
		return err
	}
	return jw.f.Close()
}
