package server

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// runRegistry tracks the cancel functions of active batch runs. Each run owns
// its own context, so cancelling one never affects a later run.
type runRegistry struct {
	mu     sync.Mutex
	next   uint64
	active map[string]context.CancelFunc
	wg     sync.WaitGroup
}

func newRunRegistry() *runRegistry {
	return &runRegistry{active: make(map[string]context.CancelFunc)}
}

// start registers a run derived from parent. An empty id is replaced by a
// generated one; an id already in use is rejected.
func (r *runRegistry) start(parent context.Context, id string) (string, context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == "" {
		r.next++
		id = fmt.Sprintf("run-%d", r.next)
	}
	if _, exists := r.active[id]; exists {
		return "", nil, fmt.Errorf("export run %q is already active", id)
	}

	ctx, cancel := context.WithCancel(parent)
	r.active[id] = cancel
	r.wg.Add(1)
	return id, ctx, nil
}

// finish releases a run started with start.
func (r *runRegistry) finish(id string) {
	r.mu.Lock()
	cancel, ok := r.active[id]
	delete(r.active, id)
	r.mu.Unlock()

	if ok {
		cancel()
		r.wg.Done()
	}
}

// cancel requests cancellation of the run with the given id, or of every
// active run when id is empty. It returns the ids it cancelled.
func (r *runRegistry) cancel(id string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cancelled []string
	for runID, cancel := range r.active {
		if id != "" && runID != id {
			continue
		}
		cancel()
		cancelled = append(cancelled, runID)
	}
	sort.Strings(cancelled)
	return cancelled
}

func (r *runRegistry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

func (r *runRegistry) wait() {
	r.wg.Wait()
}
