package journal

import (
	"fmt"
	"os"
	"sync"
)

// File appends one line per Printf call to a log file shared by every
// session. Lines from concurrent sessions never interleave.
type File struct {
	mu sync.Mutex
	f  *os.File
}

func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening session log %s: %w", path, err)
	}
	return &File{f: f}, nil
}

func (j *File) Printf(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	if len(line) == 0 || line[len(line)-1] != '\n' {
		line += "\n"
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	// a failed write must not stop the game
	_, _ = j.f.WriteString(line)
}

func (j *File) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.f.Close()
}
