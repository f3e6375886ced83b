// Package watch turns one-shot list queries into feeds that re-emit a fresh
// snapshot after every committed change to the tables they read.
package watch

import (
	"context"
	"sync"
)

// Hub fans table-change notifications out to subscribers.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan struct{}]struct{})}
}

// Publish signals every subscriber of the given tables. It never blocks; a
// subscriber that has not consumed its previous signal keeps a single pending
// one.
func (h *Hub) Publish(tables ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, table := range tables {
		for ch := range h.subs[table] {
			select {
			case ch <- struct{}{}:
			default:
			}
		}
	}
}

// Subscribe returns a channel signalled after changes to any of tables, and
// a function that removes the subscription.
func (h *Hub) Subscribe(tables ...string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	for _, table := range tables {
		if h.subs[table] == nil {
			h.subs[table] = make(map[chan struct{}]struct{})
		}
		h.subs[table][ch] = struct{}{}
	}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for _, table := range tables {
				delete(h.subs[table], ch)
				if len(h.subs[table]) == 0 {
					delete(h.subs, table)
				}
			}
		})
	}
}

// Subscribers reports how many subscriptions are attached to table.
func (h *Hub) Subscribers(table string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[table])
}

// QueryFunc loads the current snapshot of a feed.
type QueryFunc[T any] func(ctx context.Context) ([]T, error)

// Feed is a live query result. C yields the initial snapshot and then a new
// snapshot after every change; it is closed when the context ends or a query
// fails, after which Err reports the failure, if any.
type Feed[T any] struct {
	C <-chan []T

	mu  sync.Mutex
	err error
}

func (f *Feed[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Feed[T]) fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

// Observe starts a feed over query, refreshed whenever one of tables is
// published. The subscription is taken before the first query so no commit
// between the two is missed.
func Observe[T any](ctx context.Context, h *Hub, query QueryFunc[T], tables ...string) *Feed[T] {
	out := make(chan []T)
	feed := &Feed[T]{C: out}
	signal, cancel := h.Subscribe(tables...)

	go func() {
		defer close(out)
		defer cancel()

		for {
			rows, err := query(ctx)
			if err != nil {
				if ctx.Err() == nil {
					feed.fail(err)
				}
				return
			}

			select {
			case out <- rows:
			case <-ctx.Done():
				return
			}

			select {
			case <-signal:
			case <-ctx.Done():
				return
			}
		}
	}()

	return feed
}
