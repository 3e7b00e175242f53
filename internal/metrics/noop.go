package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncAuthEvent is a no-op.
func (n *NoopRecorder) IncAuthEvent(event, outcome string) {}

// IncListingMutation is a no-op.
func (n *NoopRecorder) IncListingMutation(entity, op string) {}

// ObserveListQuery is a no-op.
func (n *NoopRecorder) ObserveListQuery(entity string, duration time.Duration) {}

// ObserveHTTPRequest is a no-op.
func (n *NoopRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {}
