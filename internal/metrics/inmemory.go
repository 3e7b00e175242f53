package metrics

import (
	"strconv"
	"sync"
	"time"
)

// Snapshot captures current in-memory counters.
// Map keys join labels with "/", e.g. "login/success" or "walker/create".
type Snapshot struct {
	AuthEvents       map[string]uint64
	ListingMutations map[string]uint64
	ListQueries      map[string]uint64
	HTTPRequests     map[string]uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	mu               sync.Mutex
	authEvents       map[string]uint64
	listingMutations map[string]uint64
	listQueries      map[string]uint64
	httpRequests     map[string]uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		authEvents:       make(map[string]uint64),
		listingMutations: make(map[string]uint64),
		listQueries:      make(map[string]uint64),
		httpRequests:     make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		AuthEvents:       copyCounts(m.authEvents),
		ListingMutations: copyCounts(m.listingMutations),
		ListQueries:      copyCounts(m.listQueries),
		HTTPRequests:     copyCounts(m.httpRequests),
	}
}

// IncAuthEvent increments the auth event counter.
func (m *InMemoryRecorder) IncAuthEvent(event, outcome string) {
	m.inc(m.authEvents, event+"/"+outcome)
}

// IncListingMutation increments the mutation counter.
func (m *InMemoryRecorder) IncListingMutation(entity, op string) {
	m.inc(m.listingMutations, entity+"/"+op)
}

// ObserveListQuery counts list queries per entity.
func (m *InMemoryRecorder) ObserveListQuery(entity string, duration time.Duration) {
	m.inc(m.listQueries, entity)
}

// ObserveHTTPRequest counts requests per method, route and status.
func (m *InMemoryRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.inc(m.httpRequests, method+"/"+route+"/"+strconv.Itoa(status))
}

func (m *InMemoryRecorder) inc(counts map[string]uint64, key string) {
	m.mu.Lock()
	counts[key]++
	m.mu.Unlock()
}

func copyCounts(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
