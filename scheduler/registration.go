package scheduler

import (
	"time"

	"github.com/mesosphere/pesos-go/detector"
	"github.com/mesosphere/pesos-go/mesos"
	"github.com/mesosphere/pesos-go/rpc"
)

// Backoff bounds for re-detecting and re-registering with a master, carried
// over unchanged from the original's module-level constants.
const (
	masterDetectionRetrySeconds = 10 * time.Second
	masterInitialBackoff        = 2 * time.Second
	masterMaxBackoff            = 60 * time.Second
)

// detect starts one round of master detection in its own goroutine (it
// necessarily blocks on the detector), posting the result back onto the
// process's own mailbox via detected once it resolves. gen is the
// generation this round belongs to; if a newer round has started by the
// time this one resolves, its result is dropped — this is the Go
// equivalent of the original simply calling self.detect() again each time
// and relying on the detector's own future bookkeeping; the generation
// counter substitutes for that since this detector interface is
// call/response rather than future-based.
func (p *SchedulerProcess) detect() {
	p.mu.Lock()
	p.detectGen++
	gen := p.detectGen
	previous := p.masterInfo
	p.mu.Unlock()

	go func() {
		future, err := p.detector.Detect(p.lifecycle, previous)
		p.ctx.Dispatch(p.pid, func() {
			if p.lifecycle.Err() != nil {
				return
			}
			if err != nil {
				warnf("master detector failed: %v; retrying in %s", err, masterDetectionRetrySeconds)
				p.ctx.Delay(masterDetectionRetrySeconds, p.pid, p.detect)
				return
			}
			p.detected(gen, future)
		})
	}()
}

// detected processes one detection result: a newly elected master (or none)
// replacing whatever master the process previously knew about.
func (p *SchedulerProcess) detected(gen uint64, future detector.Future) {
	p.mu.Lock()
	if gen != p.detectGen {
		p.mu.Unlock()
		logf("dropping stale detection result from generation %d (current %d)", gen, p.detectGen)
		return
	}
	if p.aborted {
		p.mu.Unlock()
		return
	}

	wasConnected := p.connected
	p.connected = false
	oldMaster := p.master
	p.masterInfo = future.MasterInfo

	if future.MasterInfo == nil {
		p.master = mesos.Address{}
		p.mu.Unlock()
		if wasConnected {
			p.notifyDisconnected()
		}
		logf("no master detected")
		// Keep watching; a future round will pick up the next election.
		p.detect()
		return
	}

	newMaster := mesos.MasterInfoAddress(future.MasterInfo)
	p.master = newMaster
	p.backoff = masterInitialBackoff
	p.mu.Unlock()

	if wasConnected && oldMaster != newMaster {
		p.notifyDisconnected()
	}

	logf("new master detected at %s", newMaster)
	p.ctx.Link(newMaster, func() {
		p.ctx.Dispatch(p.pid, p.onMasterLinkBroken)
	})
	p.doRegistration(newMaster, masterInitialBackoff)

	// Keep watching for the next election once this round is fully
	// handled; detect() guards staleness via detectGen so a fresher result
	// always wins.
	p.detect()
}

// onMasterLinkBroken fires when the transport reports the current master
// unreachable, equivalent to the original's exited(self, pid) handler
// calling self.detect() again immediately rather than waiting out the
// normal retry interval.
func (p *SchedulerProcess) onMasterLinkBroken() {
	p.mu.Lock()
	if p.aborted {
		p.mu.Unlock()
		return
	}
	wasConnected := p.connected
	p.connected = false
	p.mu.Unlock()
	if wasConnected {
		p.notifyDisconnected()
	}
	warnf("lost link to master %s", p.master)
	p.detect()
}

// doRegistration sends a Register or Reregister message to master and, if
// no FrameworkRegistered(Re)Message has arrived by the time backoff
// elapses, doubles the backoff (capped at masterMaxBackoff) and tries
// again against the same master; the retry chain ends once the current
// master is a different one, whose detection starts its own. This implements
// spec.md's resolution of the Open Question around the original's backoff
// formula: conventional min(backoff*2, cap) rather than the original's
// max(...), which spec.md flags as likely a transcription bug.
func (p *SchedulerProcess) doRegistration(master mesos.Address, backoff time.Duration) {
	p.mu.RLock()
	aborted := p.aborted
	connected := p.connected
	current := p.master
	p.mu.RUnlock()
	if aborted || connected || current != master {
		return
	}

	if p.frameworkID() == nil {
		p.sendRegister(master)
	} else {
		p.sendReregister(master)
	}

	next := backoff * 2
	if next > masterMaxBackoff {
		next = masterMaxBackoff
	}
	p.ctx.Delay(backoff, p.pid, func() {
		p.doRegistration(master, next)
	})
}

// persistFrameworkID is called when a FrameworkRegistered message assigns a FrameworkID,
// stashing it in ZooKeeper (when a persistence URI was configured) so a
// restarted driver can reregister as the same framework. Errors are logged
// rather than fatal: losing persistence only risks a future restart
// registering as a new framework, not breaking the current session.
func (p *SchedulerProcess) persistFrameworkID(id *mesos.FrameworkID) {
	if p.zkURI == "" || id == nil {
		return
	}
	if err := rpc.PersistFrameworkID(p.zkURI, id.GetValue()); err != nil {
		errf("failed to persist framework id %s: %v", id.GetValue(), err)
	}
}

func (p *SchedulerProcess) clearPersistedState() {
	if p.zkURI == "" {
		return
	}
	if err := rpc.ClearZKState(p.zkURI); err != nil {
		errf("failed to clear persisted framework id: %v", err)
	}
}
