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

// Package scheduler implements a Mesos framework-side scheduler driver: the
// SchedulerProcess connection/registration/offer state machine, and the
// SchedulerDriver facade a framework author's own policy code calls into.
package scheduler

import "github.com/mesosphere/pesos-go/mesos"

// Scheduler is the set of callbacks a framework author implements; the
// driver invokes each one serially, on the SchedulerProcess's own mailbox
// goroutine, in response to whatever the master (or the driver itself) has
// reported.
type Scheduler interface {
	// Registered is invoked once the driver has successfully registered
	// with a master, either for the first time (fresh FrameworkID) or after
	// this same FrameworkID had previously registered elsewhere.
	Registered(driver *Driver, frameworkID *mesos.FrameworkID, masterInfo *mesos.MasterInfo)

	// Reregistered is invoked whenever the driver reregisters with a
	// (possibly new) master after having previously registered.
	Reregistered(driver *Driver, masterInfo *mesos.MasterInfo)

	// Disconnected is invoked when the driver loses its connection to the
	// master, e.g. because the master failed over or the network link
	// broke; the driver transparently attempts to reconnect.
	Disconnected(driver *Driver)

	// ResourceOffers is invoked when resources have been offered to this
	// framework. A single offer per agent is guaranteed to be outstanding
	// at most once at a time.
	ResourceOffers(driver *Driver, offers []*mesos.Offer)

	// OfferRescinded is invoked when an offer is no longer valid, e.g.
	// because the agent it was on was removed. Any task launch already in
	// flight against that offer will fail.
	OfferRescinded(driver *Driver, offerID *mesos.OfferID)

	// StatusUpdate is invoked whenever a task's status changes, including
	// status updates this driver has synthesized locally (TASK_LOST for a
	// malformed task, or for a launch attempted while disconnected).
	StatusUpdate(driver *Driver, status *mesos.TaskStatus)

	// FrameworkMessage is invoked when an executor sends this framework an
	// opaque message.
	FrameworkMessage(driver *Driver, executorID *mesos.ExecutorID, slaveID *mesos.SlaveID, data []byte)

	// SlaveLost is invoked when an agent has been determined unreachable
	// (e.g. health check failure) or gone for good; tasks running on it
	// should be considered lost.
	SlaveLost(driver *Driver, slaveID *mesos.SlaveID)

	// ExecutorLost reports that an executor has exited or terminated,
	// carrying its exit status when known. No message this driver handles
	// triggers it, so the driver never invokes it.
	ExecutorLost(driver *Driver, executorID *mesos.ExecutorID, slaveID *mesos.SlaveID, status int)

	// Error is invoked when the driver or the master detects an
	// unrecoverable error, e.g. a framework that has already completed
	// attempting to reregister. It is the framework's cue to clean up and
	// shut down.
	Error(driver *Driver, message string)
}
