package inflight

import (
	"context"
	"sync"

	"github.com/brightpath/student-portal-api/internal/ports"
)

// Registry is the process-wide in-flight submission guard.
// It maps a payment reference to a one-shot result cell while a submission for
// that reference executes. Check-and-insert happens under one lock, so two
// concurrent Acquire calls for the same reference yield exactly one leader.
type Registry struct {
	mu    sync.Mutex
	cells map[string]*cell
}

// NewRegistry creates an empty in-flight registry.
func NewRegistry() *Registry {
	return &Registry{cells: map[string]*cell{}}
}

type cell struct {
	done chan struct{}
	res  ports.Settled
}

type handle struct {
	reg    *Registry
	ref    string
	c      *cell
	leader bool
	once   sync.Once
}

func (r *Registry) Acquire(reference string) ports.InFlightHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.cells[reference]; ok {
		return &handle{reg: r, ref: reference, c: c}
	}
	c := &cell{done: make(chan struct{})}
	r.cells[reference] = c
	return &handle{reg: r, ref: reference, c: c, leader: true}
}

// Len reports the number of live entries. Test and readiness visibility only.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cells)
}

func (h *handle) Leader() bool { return h.leader }

// Complete removes the registry entry and then unblocks every waiter.
// The entry is gone before waiters wake, so a request that arrives after
// completion claims the reference fresh instead of joining a stale cell.
func (h *handle) Complete(res ports.Settled) {
	if !h.leader {
		return
	}
	h.once.Do(func() {
		h.reg.mu.Lock()
		delete(h.reg.cells, h.ref)
		h.reg.mu.Unlock()
		h.c.res = res
		close(h.c.done)
	})
}

func (h *handle) Wait(ctx context.Context) (ports.Settled, error) {
	select {
	case <-h.c.done:
		return h.c.res, nil
	case <-ctx.Done():
		return ports.Settled{}, ctx.Err()
	}
}
