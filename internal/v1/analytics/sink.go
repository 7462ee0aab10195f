// Package analytics implements the fire-and-forget event logger the
// dispatcher calls on join, start, move, and end. Its only contract is:
// never block the game loop, never surface an error to the caller.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// Event is one analytics record. Fields beyond Kind are family-specific and
// passed through as a raw JSON-able map rather than a closed struct, since
// the dispatcher emits a different shape per event kind.
type Event struct {
	Kind      string         `json:"kind"`
	RoomID    string         `json:"roomId"`
	Family    string         `json:"family,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Sink posts events to a remote endpoint, guarded by a circuit breaker so a
// failing or slow analytics backend can never back-pressure the game loop.
// An empty endpoint disables the sink entirely (Track becomes a no-op), per
// the "absence disables analytics" environment contract.
type Sink struct {
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
	queue    chan Event
}

// New builds a sink. When endpoint is empty, Track silently drops every
// event and no goroutine or HTTP client is created.
func New(endpoint string) *Sink {
	if endpoint == "" {
		return &Sink{}
	}

	s := &Sink{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 3 * time.Second},
		queue:    make(chan Event, 256),
	}
	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "analytics-sink",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	go s.run()
	return s
}

// Track enqueues an event for delivery. It never blocks: a full queue drops
// the event, and this is the only permitted failure mode.
func (s *Sink) Track(kind, roomID, family string, data map[string]any) {
	if s.queue == nil {
		return
	}
	evt := Event{Kind: kind, RoomID: roomID, Family: family, Data: data}
	select {
	case s.queue <- evt:
	default:
		slog.Warn("analytics queue full, dropping event", "kind", kind, "roomId", roomID)
	}
}

func (s *Sink) run() {
	for evt := range s.queue {
		evt.Timestamp = time.Now()
		_, err := s.breaker.Execute(func() (any, error) {
			return nil, s.post(evt)
		})
		if err != nil {
			slog.Debug("analytics delivery failed, dropping", "error", err)
		}
	}
}

func (s *Sink) post(evt Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}
