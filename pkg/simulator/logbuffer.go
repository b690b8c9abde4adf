package simulator

import (
	"sync"
	"time"

	"mbgatectl/pkg/utils/uuidutil"
)

// LogEntry is one line of the gateway diagnostic log exposed at /api/logs.
type LogEntry struct {
	ID      string    `json:"id"`
	Time    time.Time `json:"time"`
	Op      string    `json:"op"`
	SlaveID uint8     `json:"slave_id"`
	Address uint16    `json:"address"`
	Count   int       `json:"count"`
	Success bool      `json:"success"`
	Detail  string    `json:"detail,omitempty"`
}

// logBuffer keeps the most recent operations, oldest evicted first.
type logBuffer struct {
	mux     sync.Mutex
	max     int
	entries []LogEntry
}

func newLogBuffer(max int) *logBuffer {
	return &logBuffer{
		max:     max,
		entries: make([]LogEntry, 0, max),
	}
}

func (l *logBuffer) Append(entry LogEntry) {
	entry.ID = uuidutil.UUID()
	entry.Time = time.Now()

	l.mux.Lock()
	defer l.mux.Unlock()
	if len(l.entries) == l.max {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:l.max-1]
	}
	l.entries = append(l.entries, entry)
}

func (l *logBuffer) Snapshot() []LogEntry {
	l.mux.Lock()
	defer l.mux.Unlock()
	return append(make([]LogEntry, 0, len(l.entries)), l.entries...)
}
