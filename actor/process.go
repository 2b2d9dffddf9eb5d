package actor

import (
	"sync"

	log "github.com/golang/glog"
	"github.com/gogo/protobuf/proto"
)

// Process is anything that can be spawned into a Context. Spawn gives it a
// PID and starts its single-goroutine mailbox loop. Receive is invoked,
// serialized with every Dispatch/Delay call targeting the same PID, whenever
// a message arrives addressed to this process — locally or over a
// Transport — exactly as a libprocess ProcessBase's visit() methods only
// ever run on that process's own thread.
type Process interface {
	// Name is used to build this process's PID (e.g. "scheduler",
	// "master-detector"); Spawn appends a unique numeric suffix.
	Name() string

	// Receive handles one inbound message from the given sender. It runs
	// on the process's own mailbox goroutine.
	Receive(from PID, msg proto.Message)
}

// mailbox is the single-consumer goroutine backing one spawned process. All
// calls routed to a process — local dispatch, delayed dispatch, or an
// inbound wire message decoded by a Transport — land here as a func() and
// run strictly one at a time, in arrival order. This generalizes the
// teacher's own launchChan/pauseChan SerialLauncher select loop
// (scheduler/scheduler.go) from a single-purpose launch queue into a
// general-purpose actor mailbox.
type mailbox struct {
	pid     PID
	proc    Process
	inbox   chan func()
	done    chan struct{}
	closeMu sync.Mutex
	closed  bool
}

func newMailbox(pid PID, proc Process) *mailbox {
	return &mailbox{
		pid:   pid,
		proc:  proc,
		inbox: make(chan func(), 64),
		done:  make(chan struct{}),
	}
}

func (m *mailbox) run() {
	defer close(m.done)
	for fn := range m.inbox {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Errorf("actor: process %s: panic in mailbox: %v", m.pid, r)
				}
			}()
			fn()
		}()
	}
}

// post enqueues fn to run on this process's mailbox goroutine. It is safe to
// call post after the mailbox has been closed; the call is silently
// dropped, matching libprocess's "dispatch to a terminated PID is a no-op"
// semantics.
func (m *mailbox) post(fn func()) {
	m.closeMu.Lock()
	defer m.closeMu.Unlock()
	if m.closed {
		log.V(2).Infof("actor: dropping dispatch to terminated process %s", m.pid)
		return
	}
	select {
	case m.inbox <- fn:
	default:
		// Mailbox full: run it anyway rather than silently drop a scheduler
		// callback; logged since it means the process is falling behind.
		log.Warningf("actor: mailbox for %s is full, blocking", m.pid)
		m.inbox <- fn
	}
}

func (m *mailbox) deliver(from PID, msg proto.Message) {
	m.post(func() {
		m.proc.Receive(from, msg)
	})
}

func (m *mailbox) stop() {
	m.closeMu.Lock()
	if m.closed {
		m.closeMu.Unlock()
		return
	}
	m.closed = true
	close(m.inbox)
	m.closeMu.Unlock()
	<-m.done
}
