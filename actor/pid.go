// Package actor is a minimal single-threaded-mailbox process runtime,
// generalized from the teacher's own SerialLauncher/launchChan goroutine
// pattern into the addressable-process + dispatch + delay + link model the
// scheduler's connection state machine is built on.
package actor

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/mesosphere/pesos-go/mesos"
)

// PID is an alias for mesos.Address: every spawned Process is reachable at
// one.
type PID = mesos.Address

var pidCounter uint64

// nextID returns a unique process name of the form "scheduler(1)",
// "scheduler(2)", ... within this binary, matching libprocess's own
// ProcessBase id scheme.
func nextID(prefix string) string {
	n := atomic.AddUint64(&pidCounter, 1)
	return fmt.Sprintf("%s(%d)", prefix, n)
}

// registry tracks live processes by PID so a Context can route Dispatch and
// Send calls to the right mailbox.
type registry struct {
	mu        sync.RWMutex
	processes map[string]*mailbox
}

func newRegistry() *registry {
	return &registry{processes: make(map[string]*mailbox)}
}

func (r *registry) add(pid PID, mb *mailbox) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processes[pid.String()] = mb
}

func (r *registry) remove(pid PID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.processes, pid.String())
}

func (r *registry) get(pid PID) (*mailbox, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mb, ok := r.processes[pid.String()]
	return mb, ok
}

// snapshot returns the PIDs of every currently-registered process.
func (r *registry) snapshot() []PID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pids := make([]PID, 0, len(r.processes))
	for _, mb := range r.processes {
		pids = append(pids, mb.pid)
	}
	return pids
}
