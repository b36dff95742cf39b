package app

import (
	"sync"
	"time"
)

const fetchLogMaxEntries = 200

// FetchLogEntry records a single outbound fetch (feed, boundary, news).
type FetchLogEntry struct {
	Time     time.Time
	Service  string
	URL      string
	Status   int
	Duration time.Duration
	Error    string
}

var (
	fetchLogMu      sync.Mutex
	fetchLogEntries []*FetchLogEntry
)

// RecordFetch appends an outbound fetch record to the in-memory log.
// When the log exceeds fetchLogMaxEntries the oldest entries are dropped.
func RecordFetch(service, url string, status int, duration time.Duration, fetchErr error) {
	entry := &FetchLogEntry{
		Time:     time.Now(),
		Service:  service,
		URL:      url,
		Status:   status,
		Duration: duration,
	}
	if fetchErr != nil {
		entry.Error = fetchErr.Error()
	}
	fetchLogMu.Lock()
	fetchLogEntries = append(fetchLogEntries, entry)
	if len(fetchLogEntries) > fetchLogMaxEntries {
		fetchLogEntries = fetchLogEntries[len(fetchLogEntries)-fetchLogMaxEntries:]
	}
	fetchLogMu.Unlock()
}

// GetFetchLog returns a copy of the fetch log in reverse-chronological order.
func GetFetchLog() []*FetchLogEntry {
	fetchLogMu.Lock()
	defer fetchLogMu.Unlock()
	result := make([]*FetchLogEntry, len(fetchLogEntries))
	for i, e := range fetchLogEntries {
		result[len(fetchLogEntries)-1-i] = e
	}
	return result
}
