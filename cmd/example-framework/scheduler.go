package main

import (
	"fmt"
	"sync/atomic"

	"github.com/gogo/protobuf/proto"
	log "github.com/golang/glog"

	"github.com/mesosphere/pesos-go/mesos"
	"github.com/mesosphere/pesos-go/rpc"
	"github.com/mesosphere/pesos-go/scheduler"
)

// exampleScheduler launches one task on each offer with enough cpu and mem,
// declines every other offer, and logs every callback, demonstrating the
// full Scheduler interface without any real workload-placement policy.
type exampleScheduler struct {
	driver *scheduler.Driver

	cpusPerTask float64
	memPerTask  float64
	command     string
	zkURI       string

	taskCounter uint64
}

func (s *exampleScheduler) Registered(driver *scheduler.Driver, frameworkID *mesos.FrameworkID, masterInfo *mesos.MasterInfo) {
	log.Infof("registered as framework %s with master %s", frameworkID.GetValue(), masterInfo.GetHostname())
}

func (s *exampleScheduler) Reregistered(driver *scheduler.Driver, masterInfo *mesos.MasterInfo) {
	log.Infof("reregistered with master %s", masterInfo.GetHostname())
}

func (s *exampleScheduler) Disconnected(driver *scheduler.Driver) {
	log.Warning("disconnected from master")
}

func (s *exampleScheduler) ResourceOffers(driver *scheduler.Driver, offers []*mesos.Offer) {
	for _, offer := range offers {
		if !s.fits(offer) {
			driver.DeclineOffer(offer.GetId(), nil)
			continue
		}
		task := s.newTask(offer)
		driver.LaunchTasks([]*mesos.OfferID{offer.GetId()}, []*mesos.TaskInfo{task}, nil)
	}
}

func (s *exampleScheduler) fits(offer *mesos.Offer) bool {
	var cpus, mem float64
	for _, r := range offer.Resources {
		switch r.GetName() {
		case "cpus":
			cpus += r.GetScalar().GetValue()
		case "mem":
			mem += r.GetScalar().GetValue()
		}
	}
	return cpus >= s.cpusPerTask && mem >= s.memPerTask
}

func (s *exampleScheduler) newTask(offer *mesos.Offer) *mesos.TaskInfo {
	id := atomic.AddUint64(&s.taskCounter, 1)
	taskID := fmt.Sprintf("example-task-%d", id)
	shell := true
	return &mesos.TaskInfo{
		Name:    proto.String(taskID),
		TaskID:  &mesos.TaskID{Value: proto.String(taskID)},
		SlaveID: offer.SlaveID,
		Resources: []*mesos.Resource{
			mesos.NewScalarResource("cpus", s.cpusPerTask),
			mesos.NewScalarResource("mem", s.memPerTask),
		},
		Command: &mesos.CommandInfo{
			Value: proto.String(s.command),
			Shell: &shell,
		},
	}
}

func (s *exampleScheduler) OfferRescinded(driver *scheduler.Driver, offerID *mesos.OfferID) {
	log.Infof("offer %s rescinded", offerID.GetValue())
}

func (s *exampleScheduler) StatusUpdate(driver *scheduler.Driver, status *mesos.TaskStatus) {
	log.Infof("task %s is now %s: %s", status.GetTaskId().GetValue(), status.GetState(), status.GetMessage())
}

func (s *exampleScheduler) FrameworkMessage(driver *scheduler.Driver, executorID *mesos.ExecutorID, slaveID *mesos.SlaveID, data []byte) {
	log.Infof("framework message from executor %s: %q", executorID.GetValue(), data)
}

func (s *exampleScheduler) SlaveLost(driver *scheduler.Driver, slaveID *mesos.SlaveID) {
	log.Warningf("slave %s lost", slaveID.GetValue())
}

func (s *exampleScheduler) ExecutorLost(driver *scheduler.Driver, executorID *mesos.ExecutorID, slaveID *mesos.SlaveID, status int) {
	log.Warningf("executor %s on slave %s lost, status %d", executorID.GetValue(), slaveID.GetValue(), status)
}

func (s *exampleScheduler) Error(driver *scheduler.Driver, message string) {
	log.Errorf("fatal scheduler error: %s", message)
	if s.zkURI != "" {
		if err := rpc.ClearZKState(s.zkURI); err != nil {
			log.Errorf("failed to clear persisted framework id after fatal error: %v", err)
		}
	}
}
