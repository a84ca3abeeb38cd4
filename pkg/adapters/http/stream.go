package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/trinomial/pkg/domain"
)

// StreamManager fans rendered explanations out to SSE subscribers.
// Subscribers may filter by form kind; the empty kind receives everything.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[domain.FormKind]map[chan string]struct{}
}

// NewStreamManager creates an empty manager.
func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[domain.FormKind]map[chan string]struct{}),
	}
}

// Subscribe registers a buffered channel. The returned func unsubscribes and closes it.
func (sm *StreamManager) Subscribe(kind domain.FormKind) (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[kind]; !ok {
		sm.subscribers[kind] = make(map[chan string]struct{})
	}
	sm.subscribers[kind][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if subs, ok := sm.subscribers[kind]; ok {
				delete(subs, ch)
				close(ch)
				if len(subs) == 0 {
					delete(sm.subscribers, kind)
				}
			}
		})
	}
}

// Broadcast sends msg to subscribers of kind and to unfiltered subscribers.
// Slow clients drop messages rather than block the engine.
func (sm *StreamManager) Broadcast(kind domain.FormKind, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	send := func(subs map[chan string]struct{}) {
		for ch := range subs {
			select {
			case ch <- msg:
			default:
				slog.Warn("SSE: Client buffer full, dropping message", "form", kind)
			}
		}
	}
	send(sm.subscribers[""])
	if kind != "" {
		send(sm.subscribers[kind])
	}
}

// Hooks returns lifecycle hooks that broadcast every rendered explanation.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRendered: func(ctx context.Context, e *domain.RenderEvent) {
			if e.Explanation == nil {
				return
			}
			data, err := json.Marshal(e.Explanation)
			if err != nil {
				return
			}
			sm.Broadcast(e.Explanation.Form.Kind, string(data))
		},
	}
}
