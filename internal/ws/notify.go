package ws

import (
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"
)

// JobsUpdatedEvent tells connected review pages to refresh their snapshot.
type JobsUpdatedEvent struct {
	Type      string `json:"type"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyJobsUpdated broadcasts after a mutating flow (add, import, delete,
// status, clear). A nil default hub makes this a no-op.
func NotifyJobsUpdated(action string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	action = strings.TrimSpace(action)
	if action == "" {
		return
	}

	evt := JobsUpdatedEvent{
		Type:      "jobs_updated",
		Action:    action,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
