package activity

import (
	"context"
	"sync"
)

// CaptureHook keeps normalized events in memory. When Verbs is set only
// events with one of those verbs are kept.
type CaptureHook struct {
	Verbs  []string
	Events []Event
	Err    error
	mu     sync.Mutex
}

// Notify records the event and returns the configured error, if any.
func (h *CaptureHook) Notify(_ context.Context, event Event) error {
	normalized := NormalizeEvent(event)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.accepts(normalized.Verb) {
		h.Events = append(h.Events, normalized)
	}
	return h.Err
}

func (h *CaptureHook) accepts(verb string) bool {
	if len(h.Verbs) == 0 {
		return true
	}
	for _, allowed := range h.Verbs {
		if allowed == verb {
			return true
		}
	}
	return false
}

// Last returns the most recent event.
func (h *CaptureHook) Last() (Event, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.Events) == 0 {
		return Event{}, false
	}
	return h.Events[len(h.Events)-1], true
}

// Snapshots lists the snapshot IDs of captured events in order, skipping
// events that carry none.
func (h *CaptureHook) Snapshots() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var ids []string
	for _, event := range h.Events {
		if id := event.SnapshotID(); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
