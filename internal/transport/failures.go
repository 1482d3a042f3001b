package transport

import (
	"sync"
	"time"
)

const failureLogCap = 50

// FailureEntry — запись журнала сбоев.
// Журнал живёт в памяти процесса и ни на что не влияет
type FailureEntry struct {
	RequestID string
	URL       string
	Message   string
	HadToken  bool
	At        time.Time
}

type failureLog struct {
	mu      sync.Mutex
	entries []FailureEntry
	limit   int
}

func newFailureLog(limit int) *failureLog {
	return &failureLog{limit: limit}
}

func (l *failureLog) add(entry FailureEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.At = time.Now()
	l.entries = append(l.entries, entry)
	if len(l.entries) > l.limit {
		l.entries = l.entries[len(l.entries)-l.limit:]
	}
}

func (l *failureLog) snapshot() []FailureEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]FailureEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
