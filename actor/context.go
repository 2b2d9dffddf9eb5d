package actor

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/golang/glog"
	"github.com/gogo/protobuf/proto"
)

// ErrNoTransport is returned by Send when the destination PID is not hosted
// in this Context and the Context was built without a Transport able to
// reach remote peers.
var ErrNoTransport = errors.New("actor: no transport configured for remote send")

// Context hosts a set of spawned processes, their PIDs, a pluggable
// Transport for talking to remote peers, and the timer wheel behind Delay.
// spec.md leaves the actor runtime itself unspecified (it is treated as an
// external collaborator); this is the minimal substitute that satisfies the
// semantics spec.md's SchedulerProcess needs: single-threaded mailbox
// dispatch, delayed self-dispatch, and linking for death notification.
type Context struct {
	host      string
	transport Transport

	reg *registry

	mu     sync.Mutex
	timers map[string][]*time.Timer
	links  map[string][]func()
}

// NewContext creates a Context whose spawned processes are reachable at
// host:port over the given Transport. A nil Transport is valid for
// single-process tests that never need to Send to a remote PID.
func NewContext(host string, transport Transport) *Context {
	c := &Context{
		host:      host,
		transport: transport,
		reg:       newRegistry(),
		timers:    make(map[string][]*time.Timer),
		links:     make(map[string][]func()),
	}
	if transport != nil {
		transport.Bind(c)
	}
	return c
}

var defaultContext *Context
var defaultOnce sync.Once

// Default returns a lazily-initialized loopback-only Context, for callers
// (like cmd/example-framework) that don't need multiple isolated runtimes.
func Default() *Context {
	defaultOnce.Do(func() {
		defaultContext = NewContext("localhost", NewLoopbackTransport())
	})
	return defaultContext
}

// Spawn assigns p a PID and starts its mailbox goroutine. port is the
// libprocess-style port this context's processes are addressable on; 0
// means loopback-only (no real listener backs it).
func (c *Context) Spawn(p Process, port int) PID {
	pid := PID{ID: nextID(p.Name()), Host: c.host, Port: port}
	mb := newMailbox(pid, p)
	c.reg.add(pid, mb)
	go mb.run()
	log.V(1).Infof("actor: spawned %s", pid)
	return pid
}

// Terminate stops pid's mailbox goroutine after draining pending work, and
// fires any links registered against it.
func (c *Context) Terminate(pid PID) {
	mb, ok := c.reg.get(pid)
	if !ok {
		return
	}
	mb.stop()
	c.reg.remove(pid)
	c.fireLinks(pid)
}

// Dispatch runs fn on pid's mailbox goroutine, serialized with every other
// call dispatched to that process. It returns immediately; fn runs
// asynchronously.
func (c *Context) Dispatch(pid PID, fn func()) {
	mb, ok := c.reg.get(pid)
	if !ok {
		log.V(2).Infof("actor: dispatch to unknown process %s dropped", pid)
		return
	}
	mb.post(fn)
}

// Delay schedules fn to run on pid's mailbox after d, the actor-runtime
// equivalent of the original's self.delay(seconds, self.detect). Cancelling
// is not exposed because nothing in this driver ever needs to cancel a
// pending backoff retry — a newer detection always simply supersedes an
// older one once it lands (guarded by the caller checking current state).
func (c *Context) Delay(d time.Duration, pid PID, fn func()) {
	t := time.AfterFunc(d, func() {
		c.Dispatch(pid, fn)
	})
	c.mu.Lock()
	c.timers[pid.String()] = append(c.timers[pid.String()], t)
	c.mu.Unlock()
}

// Link registers cb to run once pid terminates or a transport-level
// disconnect is observed for it, mirroring self.link(self.master) in the
// original — the scheduler process uses this to notice a dead master
// without waiting for the next explicit detection round.
func (c *Context) Link(pid PID, cb func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.links[pid.String()] = append(c.links[pid.String()], cb)
}

func (c *Context) fireLinks(pid PID) {
	c.mu.Lock()
	cbs := c.links[pid.String()]
	delete(c.links, pid.String())
	c.mu.Unlock()
	for _, cb := range cbs {
		cb()
	}
}

// Deliver routes an inbound message to the process at pid, as decoded by a
// Transport from the wire. It is exported so Transport implementations
// outside this package can feed messages in.
func (c *Context) Deliver(pid PID, from PID, msg proto.Message) {
	mb, ok := c.reg.get(pid)
	if !ok {
		log.V(2).Infof("actor: message for unknown process %s dropped", pid)
		return
	}
	mb.deliver(from, msg)
}

// BrokenLink lets a Transport report that pid is no longer reachable
// (connection reset, HTTP error), so any Link callbacks registered against
// it fire without waiting for an explicit Terminate.
func (c *Context) BrokenLink(pid PID) {
	c.fireLinks(pid)
}

// Send delivers msg to the process at pid, which may live in this Context
// (loopback, direct mailbox delivery) or across a Transport (remote
// master). from identifies the sending process, so the Receive side can
// validate origin the way SchedulerProcess's @valid_origin check does.
func (c *Context) Send(ctx context.Context, from, pid PID, msg proto.Message) error {
	if mb, ok := c.reg.get(pid); ok {
		mb.deliver(from, msg)
		return nil
	}
	if c.transport == nil {
		return ErrNoTransport
	}
	return c.transport.Send(ctx, from, pid, msg)
}
