/**
 * Licensed to the Apache Software Foundation (ASF) under one
 * or more contributor license agreements.  See the NOTICE file
 * distributed with this work for additional information
 * regarding copyright ownership.  The ASF licenses this file
 * to you under the Apache License, Version 2.0 (the
 * "License"); you may not use this file except in compliance
 * with the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/gogo/protobuf/proto"

	"github.com/mesosphere/pesos-go/actor"
	"github.com/mesosphere/pesos-go/detector"
	"github.com/mesosphere/pesos-go/mesos"
)

// SchedulerProcess is the actor-side half of the driver: it owns the
// connection/registration/offer state machine and is the only thing that
// ever touches a master-facing mesos.Address directly. Everything here runs
// on a single mailbox goroutine (via actor.Context), so the fields below
// need no locking from inside process.go itself; mu exists only to let
// Driver's facade methods (running on caller goroutines) read a consistent
// snapshot of connection/abort state without a round trip through the
// mailbox.
type SchedulerProcess struct {
	pid actor.PID
	ctx *actor.Context

	driver   *Driver
	user     Scheduler
	detector detector.MasterDetector

	frameworkInfo *mesos.FrameworkInfo
	credential    *mesos.Credential
	zkURI         string

	offers *offerTable

	// lifecycle is cancelled on abort, unblocking any MasterDetector.Detect
	// call currently in flight rather than leaking its goroutine for the
	// life of the binary.
	lifecycle context.Context
	cancel    context.CancelFunc

	mu         sync.RWMutex
	fwID       *mesos.FrameworkID
	master     mesos.Address
	masterInfo *mesos.MasterInfo
	connected  bool
	aborted    bool
	// failover is set initially iff the driver was constructed with a
	// non-empty FrameworkInfo.id, set again by a graceful stop(failover=false),
	// and cleared on every successful (re)registration; it controls the
	// Failover bit sent on ReregisterFrameworkMessage.
	failover  bool
	backoff   time.Duration
	detectGen uint64
}

// newSchedulerProcess constructs the process without spawning it; Spawn
// assigns the PID and starts its mailbox goroutine.
func newSchedulerProcess(ctx *actor.Context, user Scheduler, frameworkInfo *mesos.FrameworkInfo, cred *mesos.Credential, det detector.MasterDetector, zkURI string) *SchedulerProcess {
	lifecycle, cancel := context.WithCancel(context.Background())
	p := &SchedulerProcess{
		ctx:           ctx,
		user:          user,
		detector:      det,
		frameworkInfo: frameworkInfo,
		credential:    cred,
		zkURI:         zkURI,
		offers:        newOfferTable(),
		backoff:       masterInitialBackoff,
		failover:      frameworkInfo.HasID(),
		lifecycle:     lifecycle,
		cancel:        cancel,
	}
	if frameworkInfo.HasID() {
		p.fwID = frameworkInfo.GetID()
	}
	return p
}

func (p *SchedulerProcess) Name() string { return "scheduler" }

func (p *SchedulerProcess) frameworkID() *mesos.FrameworkID {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fwID
}

func (p *SchedulerProcess) isAborted() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.aborted
}

func (p *SchedulerProcess) isConnected() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.connected
}

func (p *SchedulerProcess) isFailover() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.failover
}

// abort marks the process aborted and clears connected; once aborted is set
// it never clears, matching the driver Status state machine's monotonic
// ABORTED transition.
func (p *SchedulerProcess) abort() {
	p.mu.Lock()
	p.aborted = true
	p.connected = false
	p.mu.Unlock()
	p.cancel()
}

// stop implements the stop(failover) transition: a graceful stop
// (failover=false) disconnects immediately, marks this incarnation as the
// one to fail over from, and unregisters with the master; a failover stop
// leaves master-side state alone so the next incarnation reregisters as the
// same framework.
func (p *SchedulerProcess) stop(failover bool) {
	if failover {
		return
	}
	p.mu.Lock()
	p.connected = false
	p.failover = true
	p.mu.Unlock()
	p.sendUnregister()
}

// Receive implements actor.Process: every inbound wire message lands here,
// on this process's own mailbox goroutine, one at a time. This is the
// single dispatch point the original's ProtobufProcess machinery provided
// via its per-message-type install() table.
func (p *SchedulerProcess) Receive(from actor.PID, msg proto.Message) {
	if p.isAborted() {
		logf("ignoring %T: process is aborted", msg)
		return
	}

	switch m := msg.(type) {
	case *mesos.FrameworkRegisteredMessage:
		p.handleRegistered(m, from)
	case *mesos.FrameworkReregisteredMessage:
		p.handleReregistered(m, from)
	case *mesos.ResourceOffersMessage:
		p.handleResourceOffers(m, from)
	case *mesos.RescindResourceOfferMessage:
		p.handleRescindOffer(m, from)
	case *mesos.StatusUpdateMessage:
		p.handleStatusUpdate(m.Update, from)
	case *mesos.LostSlaveMessage:
		p.handleLostSlave(m, from)
	case *mesos.ExecutorToFrameworkMessage:
		p.handleExecutorMessage(m, from)
	case *mesos.FrameworkErrorMessage:
		p.handleError(m, from)
	default:
		warnf("ignoring unrecognized message %T from %s", msg, from)
	}
}

// validOrigin reports whether from is the master this process currently
// considers authoritative, logging and returning false otherwise —
// mirroring the original's @valid_origin decorator, which drops any message
// not sent by the current leading master.
func (p *SchedulerProcess) validOrigin(from actor.PID) bool {
	p.mu.RLock()
	expected := p.master
	p.mu.RUnlock()
	if from != expected {
		logRejectedOrigin(from, expected)
		return false
	}
	return true
}

func (p *SchedulerProcess) handleRegistered(m *mesos.FrameworkRegisteredMessage, from actor.PID) {
	if !p.validOrigin(from) {
		return
	}
	if p.isConnected() {
		logf("ignoring duplicate FrameworkRegistered: already connected")
		return
	}
	p.mu.Lock()
	p.fwID = m.FrameworkID
	p.connected = true
	p.failover = false
	p.masterInfo = m.MasterInfo
	p.mu.Unlock()

	p.persistFrameworkID(m.FrameworkID)
	logf("registered with master %s, framework id %s", from, m.FrameworkID.GetValue())
	p.user.Registered(p.driver, m.FrameworkID, m.MasterInfo)
}

func (p *SchedulerProcess) handleReregistered(m *mesos.FrameworkReregisteredMessage, from actor.PID) {
	if !p.validOrigin(from) {
		return
	}
	if p.isConnected() {
		logf("ignoring duplicate FrameworkReregistered: already connected")
		return
	}
	if current := p.frameworkID(); current.GetValue() != m.FrameworkID.GetValue() {
		warnf("ignoring FrameworkReregistered for unknown framework id %s, want %s",
			m.FrameworkID.GetValue(), current.GetValue())
		return
	}
	p.mu.Lock()
	p.connected = true
	p.failover = false
	p.masterInfo = m.MasterInfo
	p.mu.Unlock()

	logf("reregistered with master %s", from)
	p.user.Reregistered(p.driver, m.MasterInfo)
}

func (p *SchedulerProcess) notifyDisconnected() {
	p.offers.forgetAll()
	p.user.Disconnected(p.driver)
}

func (p *SchedulerProcess) handleResourceOffers(m *mesos.ResourceOffersMessage, from actor.PID) {
	if !p.requireConnected() || !p.validOrigin(from) {
		return
	}
	for i, o := range m.Offers {
		addr := from
		if i < len(m.PIDs) {
			if a, err := mesos.ParseAddress(m.PIDs[i]); err == nil {
				addr = a
			}
		}
		p.offers.record(o.GetId(), o.SlaveID, addr)
	}
	logOffers(m.Offers)
	p.user.ResourceOffers(p.driver, m.Offers)
}

func (p *SchedulerProcess) handleRescindOffer(m *mesos.RescindResourceOfferMessage, from actor.PID) {
	if !p.requireConnected() || !p.validOrigin(from) {
		return
	}
	p.offers.forget(m.OfferID)
	p.user.OfferRescinded(p.driver, m.OfferID)
}

// handleStatusUpdate is shared by wire-delivered status updates (from ==
// master) and locally synthesized ones (from == p.pid, see launch.go's
// localLost). Wire-delivered updates pass the connected and origin guards
// and are acknowledged to the master before the callback runs; local ones
// skip those guards and are never acknowledged, since no master sent them.
func (p *SchedulerProcess) handleStatusUpdate(update *mesos.StatusUpdate, from actor.PID) {
	local := from == p.pid
	if !local && (!p.requireConnected() || !p.validOrigin(from)) {
		return
	}
	if !local {
		p.sendStatusUpdateAck(update)
	}
	p.user.StatusUpdate(p.driver, update.GetStatus())
}

func (p *SchedulerProcess) handleLostSlave(m *mesos.LostSlaveMessage, from actor.PID) {
	if !p.requireConnected() || !p.validOrigin(from) {
		return
	}
	p.offers.forgetSlave(m.SlaveID)
	p.user.SlaveLost(p.driver, m.SlaveID)
}

// handleExecutorMessage forwards an executor-originated message straight to
// the scheduler callback. Unlike the master-originated handlers above, this
// one is neither connected- nor origin-gated: it arrives relayed through
// whichever slave is currently hosting the executor, not the master, so
// requiring p.master as the sender would drop every one of these.
func (p *SchedulerProcess) handleExecutorMessage(m *mesos.ExecutorToFrameworkMessage, from actor.PID) {
	p.user.FrameworkMessage(p.driver, m.ExecutorID, m.SlaveID, m.Data)
}

// completedFrameworkError is the literal message text a master sends when a
// framework it considers permanently done attempts to reregister; seeing it
// means any persisted FrameworkID is now meaningless and should be dropped,
// matching bluepeppers-etcd-mesos's own Error handler for this exact string.
const completedFrameworkError = "Completed framework attempted to re-register"

func (p *SchedulerProcess) handleError(m *mesos.FrameworkErrorMessage, from actor.PID) {
	if !p.validOrigin(from) {
		return
	}
	errf("fatal error from master: %s", m.GetMessage())
	if m.GetMessage() == completedFrameworkError {
		p.clearPersistedState()
	}
	p.user.Error(p.driver, m.GetMessage())
}

// requireConnected mirrors the original's @ignore_if_disconnected decorator:
// a handful of handlers are meaningless (and unsafe to act on) before
// registration has completed.
func (p *SchedulerProcess) requireConnected() bool {
	if !p.isConnected() {
		logf("ignoring message: not yet connected to a master")
		return false
	}
	return true
}
