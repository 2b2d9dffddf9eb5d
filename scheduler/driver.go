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
	"fmt"
	"sync"

	"github.com/mesosphere/pesos-go/actor"
	"github.com/mesosphere/pesos-go/detector"
	"github.com/mesosphere/pesos-go/mesos"
)

// Status is the driver's lifecycle state. It only ever moves forward:
// NotStarted -> Running -> {Aborted, Stopped}, with one deliberate quirk
// carried over from the original — Stop() on an already-Aborted driver
// stores Stopped internally but still returns Aborted to the caller, since
// the original's stop() returns self.status even though it has just set
// self.status = mesos_pb2.DRIVER_STOPPED two lines above a check for the
// aborted case. See (*Driver).Stop.
type Status int32

const (
	StatusNotStarted Status = iota
	StatusRunning
	StatusAborted
	StatusStopped
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "DRIVER_NOT_STARTED"
	case StatusRunning:
		return "DRIVER_RUNNING"
	case StatusAborted:
		return "DRIVER_ABORTED"
	case StatusStopped:
		return "DRIVER_STOPPED"
	case StatusError:
		return "DRIVER_ERROR"
	default:
		return fmt.Sprintf("DRIVER_UNKNOWN(%d)", int32(s))
	}
}

// DriverConfig bundles everything NewDriver needs beyond the mandatory
// Scheduler/FrameworkInfo/master-uri triple, following the same
// functional-options shape the sibling cd9f3d0c main builds its
// scheduler.DriverConfig with (WithAuthContext, ...).
type DriverConfig struct {
	credential      *mesos.Credential
	frameworkIDZkURI string
	actorContext    *actor.Context
	port            int
}

// Option configures a DriverConfig.
type Option func(*DriverConfig)

// WithCredential attaches authentication material the driver stores but
// never sends, consumes or validates — an explicit extension point, per
// spec.md.
func WithCredential(cred *mesos.Credential) Option {
	return func(c *DriverConfig) { c.credential = cred }
}

// WithFrameworkIDPersistence points the driver at a ZooKeeper znode used to
// remember its FrameworkID across restarts, so a failed-over scheduler
// reregisters as the same framework instead of a new one.
func WithFrameworkIDPersistence(zkURI string) Option {
	return func(c *DriverConfig) { c.frameworkIDZkURI = zkURI }
}

// WithActorContext supplies an already-constructed *actor.Context, e.g. one
// shared with other processes in the same binary. If omitted, NewDriver
// uses actor.Default().
func WithActorContext(ctx *actor.Context) Option {
	return func(c *DriverConfig) { c.actorContext = ctx }
}

// WithPort sets the libprocess-style port this driver's SchedulerProcess is
// reachable on, for deployments where the master needs to reach it back
// over an HTTPTransport. 0 (the default) means loopback-only.
func WithPort(port int) Option {
	return func(c *DriverConfig) { c.port = port }
}

// Driver is the synchronous, thread-safe facade described in spec.md §4.2:
// every exported method may be called from any goroutine and serializes
// safely with the SchedulerProcess actor underneath.
type Driver struct {
	mu   sync.Mutex
	cond *sync.Cond

	status  Status
	process *SchedulerProcess
	ctx     *actor.Context
}

// NewDriver constructs a driver for the given Scheduler, FrameworkInfo, and
// master URI (either "zk://..." or a direct "host:port"), applying any
// options. It does not start anything — call Start or Run.
func NewDriver(user Scheduler, frameworkInfo *mesos.FrameworkInfo, masterURI string, opts ...Option) (*Driver, error) {
	cfg := &DriverConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.actorContext == nil {
		cfg.actorContext = actor.Default()
	}

	det, err := detector.FromURI(masterURI)
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}

	d := &Driver{ctx: cfg.actorContext, status: StatusNotStarted}
	d.cond = sync.NewCond(&d.mu)
	d.process = newSchedulerProcess(cfg.actorContext, user, frameworkInfo, cfg.credential, det, cfg.frameworkIDZkURI)
	d.process.driver = d
	return d, nil
}

// Status returns the driver's current lifecycle state.
func (d *Driver) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Start spawns the SchedulerProcess and kicks off master detection. It is
// the Go equivalent of the original's start(): an explicit lifecycle step
// distinct from registration itself, which happens asynchronously once a
// master is detected.
func (d *Driver) Start() (Status, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status != StatusNotStarted {
		return d.status, fmt.Errorf("scheduler: driver already started (status %s)", d.status)
	}
	d.process.pid = d.ctx.Spawn(d.process, 0)
	d.status = StatusRunning
	d.process.detect()
	return d.status, nil
}

// Stop halts the driver. If failover is true, the framework's tasks are
// left running for a subsequent driver instance to reregister against and
// reconcile; if false, an UnregisterFrameworkMessage is sent so the master
// tears everything down immediately.
//
// Stop on an already-Aborted driver reproduces the original's quirk: it
// records StatusStopped internally (so a later Status() call reports
// Stopped) but returns StatusAborted to this call's caller, exactly
// matching PesosSchedulerDriver.stop()'s own self-contradictory return.
func (d *Driver) Stop(failover bool) (Status, error) {
	d.mu.Lock()
	status := d.status
	if status != StatusRunning && status != StatusAborted {
		d.mu.Unlock()
		return status, fmt.Errorf("scheduler: cannot stop a driver with status %s", status)
	}
	wasAborted := status == StatusAborted
	d.mu.Unlock()

	d.process.stop(failover)
	d.process.cancel()
	d.ctx.Terminate(d.process.pid)

	d.mu.Lock()
	d.status = StatusStopped
	d.mu.Unlock()
	d.cond.Broadcast()

	if wasAborted {
		return StatusAborted, nil
	}
	return StatusStopped, nil
}

// Abort disconnects the driver from the master without unregistering the
// framework, so a subsequent driver (with the same FrameworkID) can take
// over. Once aborted, every inbound message the SchedulerProcess receives
// is dropped.
func (d *Driver) Abort() (Status, error) {
	d.mu.Lock()
	status := d.status
	if status != StatusRunning {
		d.mu.Unlock()
		return status, fmt.Errorf("scheduler: cannot abort a driver with status %s", status)
	}
	d.mu.Unlock()

	d.process.abort()
	d.ctx.Terminate(d.process.pid)

	d.mu.Lock()
	d.status = StatusAborted
	d.mu.Unlock()
	d.cond.Broadcast()
	return StatusAborted, nil
}

// Join blocks until the driver stops or aborts, returning the final status
// — the synchronous counterpart to Run.
func (d *Driver) Join() (Status, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for d.status == StatusRunning || d.status == StatusNotStarted {
		d.cond.Wait()
	}
	return d.status, nil
}

// Run starts the driver and blocks until it stops or aborts, the composition
// spec.md §4.2 calls out as a convenience over Start+Join.
func (d *Driver) Run() (Status, error) {
	if _, err := d.Start(); err != nil {
		return d.Status(), err
	}
	return d.Join()
}

// dispatchIfRunning dispatches fn onto the process mailbox only if the
// driver is currently RUNNING, matching spec.md's status==RUNNING
// precondition shared by every one of these command methods: a command
// issued before Start or after Stop/Abort is silently ignored rather than
// queued for a process that may no longer exist.
func (d *Driver) dispatchIfRunning(fn func()) Status {
	status := d.Status()
	if status == StatusRunning {
		d.ctx.Dispatch(d.process.pid, fn)
	}
	return status
}

// LaunchTasks asks the master to launch tasks against the given offers.
func (d *Driver) LaunchTasks(offerIDs []*mesos.OfferID, tasks []*mesos.TaskInfo, filters *mesos.Filters) (Status, error) {
	return d.dispatchIfRunning(func() { d.process.launchTasks(offerIDs, tasks, filters) }), nil
}

// KillTask asks the master to kill a running task.
func (d *Driver) KillTask(taskID *mesos.TaskID) (Status, error) {
	return d.dispatchIfRunning(func() { d.process.sendKillTask(taskID) }), nil
}

// DeclineOffer is exactly LaunchTasks with an empty task list: it tells the
// master this framework has nothing to run against the offer right now.
func (d *Driver) DeclineOffer(offerID *mesos.OfferID, filters *mesos.Filters) (Status, error) {
	return d.LaunchTasks([]*mesos.OfferID{offerID}, nil, filters)
}

// ReviveOffers clears any filters this framework has previously set via
// DeclineOffer, so the master resumes sending it every eligible offer.
func (d *Driver) ReviveOffers() (Status, error) {
	return d.dispatchIfRunning(d.process.sendReviveOffers), nil
}

// RequestResources asks the master to consider acquiring additional
// resources on this framework's behalf, outside the regular offer cycle.
func (d *Driver) RequestResources(requests []*mesos.Request) (Status, error) {
	return d.dispatchIfRunning(func() { d.process.sendRequestResources(requests) }), nil
}

// SendFrameworkMessage relays an opaque message to a specific executor.
func (d *Driver) SendFrameworkMessage(executorID *mesos.ExecutorID, slaveID *mesos.SlaveID, data []byte) (Status, error) {
	return d.dispatchIfRunning(func() { d.process.sendFrameworkMessage(executorID, slaveID, data) }), nil
}

// ReconcileTasks asks the master to resend the latest known status for the
// given tasks (or every task this framework knows about, if statuses is
// empty), used to recover from a missed status update after a disconnect.
func (d *Driver) ReconcileTasks(statuses []*mesos.TaskStatus) (Status, error) {
	return d.dispatchIfRunning(func() { d.process.sendReconcileTasks(statuses) }), nil
}

// The aliases below reproduce the original's bottom-of-file camelCase /
// snake_case method aliasing (PesosSchedulerDriver lines 524-531) as plain
// Go method aliases, for callers porting code written against that naming.

func (d *Driver) Launch_tasks(offerIDs []*mesos.OfferID, tasks []*mesos.TaskInfo, filters *mesos.Filters) (Status, error) {
	return d.LaunchTasks(offerIDs, tasks, filters)
}

func (d *Driver) Kill_task(taskID *mesos.TaskID) (Status, error) { return d.KillTask(taskID) }

func (d *Driver) Decline_offer(offerID *mesos.OfferID, filters *mesos.Filters) (Status, error) {
	return d.DeclineOffer(offerID, filters)
}

func (d *Driver) Revive_offers() (Status, error) { return d.ReviveOffers() }

func (d *Driver) Request_resources(requests []*mesos.Request) (Status, error) {
	return d.RequestResources(requests)
}

func (d *Driver) Send_framework_message(executorID *mesos.ExecutorID, slaveID *mesos.SlaveID, data []byte) (Status, error) {
	return d.SendFrameworkMessage(executorID, slaveID, data)
}

func (d *Driver) Reconcile_tasks(statuses []*mesos.TaskStatus) (Status, error) {
	return d.ReconcileTasks(statuses)
}
