package journal

import (
	"bufio"
	"encoding/json"
	"os"

	"locate-go/internal/log"
)

// Read loads all entries from a journal file in order. Unparsable lines
// (e.g. a torn final line from a crashed run) are skipped, not fatal.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries := []Entry{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		b := sc.Bytes()
		if len(b) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(b, &e); err != nil {
			log.Debug("skipping corrupt journal line", "line", line, "error", err)
			continue
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return entries, err
	}
	return entries, nil
}
