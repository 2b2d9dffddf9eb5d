package scheduler

import (
	"fmt"
	"time"

	"github.com/mesosphere/pesos-go/mesos"
)

// launchTasks validates and forwards a launch request, the Go rendering of
// the original's launch_tasks. Exactly one of TaskInfo.Executor or
// TaskInfo.Command must be set; a task naming an ExecutorInfo must either
// leave its FrameworkID unset (auto-filled with this driver's own) or name
// this driver's FrameworkID explicitly — anything else is malformed. Every
// malformed task is immediately failed with a locally synthesized
// TASK_LOST, fed back through handleStatusUpdate the way the original's
// _local_lost re-enters status_update rather than calling the scheduler
// callback directly; such local updates are not acknowledged to the master.
//
// The input tasks are never mutated: a defensive copy is built for each
// valid task before forwarding, per spec.md's explicit instruction to drop
// the original's mutate-in-place behavior.
func (p *SchedulerProcess) launchTasks(offerIDs []*mesos.OfferID, tasks []*mesos.TaskInfo, filters *mesos.Filters) {
	if p.isAborted() {
		return
	}

	if !p.isConnected() {
		for _, t := range tasks {
			p.localLost(t, "Master Disconnected")
		}
		return
	}

	frameworkID := p.frameworkID()
	valid := make([]*mesos.TaskInfo, 0, len(tasks))

	for _, t := range tasks {
		reason, ok := validateTask(t, frameworkID)
		if !ok {
			p.localLost(t, reason)
			continue
		}
		valid = append(valid, copyTaskForLaunch(t, frameworkID))
	}

	if filters == nil {
		filters = &mesos.Filters{}
	}
	p.sendLaunchTasks(offerIDs, valid, filters)

	for _, id := range offerIDs {
		p.offers.forget(id)
	}
}

// validateTask reports whether t is well-formed, and if not, the reason to
// report in its synthesized TASK_LOST.
func validateTask(t *mesos.TaskInfo, frameworkID *mesos.FrameworkID) (reason string, ok bool) {
	hasExecutor := t.HasExecutor()
	hasCommand := t.HasCommand()
	if hasExecutor == hasCommand {
		return fmt.Sprintf("task %s must set exactly one of executor or command", t.GetTaskId().GetValue()), false
	}
	if hasExecutor {
		exec := t.Executor
		if exec.HasFrameworkID() && exec.FrameworkID.GetValue() != frameworkID.GetValue() {
			return fmt.Sprintf("task %s names executor framework id %s, want %s",
				t.GetTaskId().GetValue(), exec.FrameworkID.GetValue(), frameworkID.GetValue()), false
		}
	}
	return "", true
}

// copyTaskForLaunch returns a shallow copy of t suitable for forwarding,
// filling in the executor's FrameworkID when the caller left it unset.
func copyTaskForLaunch(t *mesos.TaskInfo, frameworkID *mesos.FrameworkID) *mesos.TaskInfo {
	cp := *t
	if cp.Executor != nil {
		execCopy := *cp.Executor
		if !execCopy.HasFrameworkID() {
			execCopy.FrameworkID = frameworkID
		}
		cp.Executor = &execCopy
	}
	return &cp
}

// localLost synthesizes a TASK_LOST status update for a task that was never
// actually sent to a master, passing it to handleStatusUpdate with this
// process's own pid as the sender, matching the original's _local_lost
// calling self.status_update with a locally built StatusUpdateMessage
// instead of invoking the scheduler callback directly. The own-pid sender
// makes handleStatusUpdate skip the connected/origin guards and the
// acknowledgement.
func (p *SchedulerProcess) localLost(t *mesos.TaskInfo, reason string) {
	warnf("failing malformed task %s locally: %s", t.GetTaskId().GetValue(), reason)
	state := mesos.TaskLost
	now := float64(time.Now().UnixNano()) / 1e9
	update := &mesos.StatusUpdate{
		FrameworkID: p.frameworkID(),
		Status: &mesos.TaskStatus{
			TaskID:  t.GetTaskId(),
			State:   &state,
			Message: &reason,
		},
		Timestamp: &now,
		UUID:      newUUID(),
	}
	p.handleStatusUpdate(update, p.pid)
}
