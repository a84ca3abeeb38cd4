package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventParsed     EventType = "parsed"
	EventClassified EventType = "classified"
	EventSearched   EventType = "searched"
	EventRendered   EventType = "rendered"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Input     string    `json:"input"`
}

// ParseEvent reports the outcome of tokenizing the input.
type ParseEvent struct {
	EventBase
	Terms []Term `json:"terms,omitempty"`
	Err   error  `json:"-"`
}

// ClassifyEvent reports the classified form.
type ClassifyEvent struct {
	EventBase
	Form Form `json:"form"`
}

// SearchEvent reports a factor search.
type SearchEvent struct {
	EventBase
	B        int64         `json:"b"`
	C        int64         `json:"c"`
	Pair     *FactorPair   `json:"pair,omitempty"`
	Duration time.Duration `json:"duration"`
}

// RenderEvent reports the final explanation.
type RenderEvent struct {
	EventBase
	Explanation *Explanation `json:"explanation"`
	Cached      bool         `json:"cached"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnParsed     func(context.Context, *ParseEvent)
	OnClassified func(context.Context, *ClassifyEvent)
	OnSearched   func(context.Context, *SearchEvent)
	OnRendered   func(context.Context, *RenderEvent)
}

// Merge returns hooks that call h first, then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnParsed:     chain(h.OnParsed, other.OnParsed),
		OnClassified: chain(h.OnClassified, other.OnClassified),
		OnSearched:   chain(h.OnSearched, other.OnSearched),
		OnRendered:   chain(h.OnRendered, other.OnRendered),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
