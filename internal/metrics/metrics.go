// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
type Recorder interface {
	// Auth metrics. event: "register", "login", "logout"; outcome: "success", "failure".
	IncAuthEvent(event, outcome string)

	// Listing mutations. entity: "request", "walker"; op: "create", "update", "delete".
	IncListingMutation(entity, op string)
	ObserveListQuery(entity string, duration time.Duration)

	// HTTP metrics keyed by route pattern.
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}
