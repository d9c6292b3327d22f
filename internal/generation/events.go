// internal/generation/events.go
package generation

import (
	"context"
	"sync"
	"time"
)

// Event is the envelope published for generation lifecycle notifications.
// Consumers are best-effort observers: emission failures are logged by the
// emitter implementation and never surface into the generation flow.
type Event struct {
	Type       EventType   `json:"type"`
	RequestID  string      `json:"requestId"`
	ResourceID ResourceID  `json:"resourceId"`
	CustomerID string      `json:"customerId"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload,omitempty"`
}

type EventType string

const (
	EventGenerationStarted   EventType = "generation.started"
	EventGenerationProgress  EventType = "generation.progress"
	EventGenerationCompleted EventType = "generation.completed"
	EventGenerationFailed    EventType = "generation.failed"
)

// StartedPayload accompanies generation.started.
type StartedPayload struct {
	Recommendation Tier `json:"recommendation"`
	Score          int  `json:"score"`
}

// ProgressPayload accompanies generation.progress. Percent is monotone
// non-decreasing within a single request.
type ProgressPayload struct {
	Stage   string `json:"stage"`
	Percent int    `json:"percent"`
}

// CompletedPayload accompanies generation.completed.
type CompletedPayload struct {
	Method     Tier    `json:"method"`
	Quality    int     `json:"quality"`
	Cost       float64 `json:"cost"`
	DurationMS int64   `json:"duration"`
}

// FailedPayload accompanies generation.failed.
type FailedPayload struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// Emitter publishes lifecycle events. Implementations must be safe for
// concurrent use and must not block generation on downstream latency.
type Emitter interface {
	Emit(ctx context.Context, event Event)
}

// NoOpEmitter discards all events.
type NoOpEmitter struct{}

func (NoOpEmitter) Emit(context.Context, Event) {}

// progressGuard enforces monotone progress percentages for one request.
// Late or out-of-order stage reports are clamped, not dropped, so the
// stage label still reaches subscribers.
type progressGuard struct {
	mu      sync.Mutex
	highest int
}

func (g *progressGuard) clamp(percent int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if percent < g.highest {
		return g.highest
	}
	g.highest = percent
	return percent
}
