package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/zentharo/request-service/internal/workflow"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	statusCounts workflow.Statistics
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// SetStatusCounts stores the latest per-status request statistics.
func (m *Metrics) SetStatusCounts(stats workflow.Statistics) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusCounts = stats
}

// StatusCounts returns the last recorded statistics snapshot.
func (m *Metrics) StatusCounts() workflow.Statistics {
	if m == nil {
		return workflow.Statistics{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statusCounts
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
