package scheduler

import (
	"context"

	"github.com/gogo/protobuf/proto"

	"github.com/mesosphere/pesos-go/mesos"
)

// send is a small wrapper around actor.Context.Send bound to "whatever
// master this process currently believes is authoritative," logging rather
// than propagating a failure — matching the original, where every outbound
// call is fire-and-forget from the caller's perspective (the actor runtime
// handles retries/disconnects underneath).
func (p *SchedulerProcess) send(msg proto.Message) {
	p.mu.RLock()
	master := p.master
	p.mu.RUnlock()
	if master.Empty() {
		warnf("dropping %T: no master currently known", msg)
		return
	}
	if err := p.ctx.Send(context.Background(), p.pid, master, msg); err != nil {
		errf("failed to send %T to %s: %v", msg, master, err)
	}
}

func (p *SchedulerProcess) sendRegister(master mesos.Address) {
	p.send(&mesos.RegisterFrameworkMessage{Framework: p.frameworkInfo})
}

func (p *SchedulerProcess) sendReregister(master mesos.Address) {
	failover := p.isFailover()
	fi := *p.frameworkInfo
	fi.ID = p.frameworkID()
	p.send(&mesos.ReregisterFrameworkMessage{Framework: &fi, Failover: &failover})
}

func (p *SchedulerProcess) sendLaunchTasks(offerIDs []*mesos.OfferID, tasks []*mesos.TaskInfo, filters *mesos.Filters) {
	p.send(&mesos.LaunchTasksMessage{
		FrameworkID: p.frameworkID(),
		Tasks:       tasks,
		Filters:     filters,
		OfferIDs:    offerIDs,
	})
}

func (p *SchedulerProcess) sendStatusUpdateAck(update *mesos.StatusUpdate) {
	p.send(&mesos.StatusUpdateAcknowledgementMessage{
		FrameworkID: p.frameworkID(),
		SlaveID:     update.GetStatus().SlaveID,
		TaskID:      update.GetStatus().GetTaskId(),
		UUID:        update.UUID,
	})
}

func (p *SchedulerProcess) sendKillTask(taskID *mesos.TaskID) {
	if !p.requireConnected() {
		return
	}
	p.send(&mesos.KillTaskMessage{FrameworkID: p.frameworkID(), TaskID: taskID})
}

func (p *SchedulerProcess) sendReviveOffers() {
	if !p.requireConnected() {
		return
	}
	p.send(&mesos.ReviveOffersMessage{FrameworkID: p.frameworkID()})
}

func (p *SchedulerProcess) sendRequestResources(requests []*mesos.Request) {
	if !p.requireConnected() {
		return
	}
	p.send(&mesos.ResourceRequestMessage{FrameworkID: p.frameworkID(), Requests: requests})
}

func (p *SchedulerProcess) sendFrameworkMessage(executorID *mesos.ExecutorID, slaveID *mesos.SlaveID, data []byte) {
	if !p.requireConnected() {
		return
	}
	msg := &mesos.FrameworkToExecutorMessage{
		SlaveID:     slaveID,
		FrameworkID: p.frameworkID(),
		ExecutorID:  executorID,
		Data:        data,
	}
	if addr, ok := p.offers.addressOf(slaveID.GetValue()); ok {
		if err := p.ctx.Send(context.Background(), p.pid, addr, msg); err != nil {
			errf("failed to send %T to %s: %v", msg, addr, err)
		}
		return
	}
	warnf("no cached address for slave %s; sending framework message through the master", slaveID.GetValue())
	p.send(msg)
}

func (p *SchedulerProcess) sendReconcileTasks(statuses []*mesos.TaskStatus) {
	if !p.requireConnected() {
		return
	}
	p.send(&mesos.ReconcileTasksMessage{FrameworkID: p.frameworkID(), Statuses: statuses})
}

func (p *SchedulerProcess) sendUnregister() {
	p.send(&mesos.UnregisterFrameworkMessage{FrameworkID: p.frameworkID()})
}
