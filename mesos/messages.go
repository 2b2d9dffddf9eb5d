package mesos

import "github.com/gogo/protobuf/proto"

// The types below are the internal.* wire messages exchanged between a
// framework's SchedulerProcess and the master's process, mirroring
// mesos-go/mesosproto's internal message set. Each satisfies proto.Message
// so it can travel through an actor.Transport the same way a real libprocess
// message would.

// RegisterFrameworkMessage is sent to a newly detected master by a framework
// that has no FrameworkID yet, and re-sent on the registration backoff
// schedule until the master replies.
type RegisterFrameworkMessage struct {
	Framework *FrameworkInfo `protobuf:"bytes,1,req,name=framework" json:"framework,omitempty"`
}

func (m *RegisterFrameworkMessage) Reset()         { *m = RegisterFrameworkMessage{} }
func (m *RegisterFrameworkMessage) String() string { return proto.CompactTextString(m) }
func (*RegisterFrameworkMessage) ProtoMessage()    {}

// ReregisterFrameworkMessage is sent on every subsequent detection of a
// (possibly new) master, carrying the framework ID assigned on first
// registration.
type ReregisterFrameworkMessage struct {
	Framework *FrameworkInfo `protobuf:"bytes,1,req,name=framework" json:"framework,omitempty"`
	Failover  *bool          `protobuf:"varint,2,opt,name=failover" json:"failover,omitempty"`
}

func (m *ReregisterFrameworkMessage) Reset()         { *m = ReregisterFrameworkMessage{} }
func (m *ReregisterFrameworkMessage) String() string { return proto.CompactTextString(m) }
func (*ReregisterFrameworkMessage) ProtoMessage()    {}

// UnregisterFrameworkMessage tells the master this framework is going away
// for good.
type UnregisterFrameworkMessage struct {
	FrameworkID *FrameworkID `protobuf:"bytes,1,req,name=framework_id" json:"framework_id,omitempty"`
}

func (m *UnregisterFrameworkMessage) Reset()         { *m = UnregisterFrameworkMessage{} }
func (m *UnregisterFrameworkMessage) String() string { return proto.CompactTextString(m) }
func (*UnregisterFrameworkMessage) ProtoMessage()    {}

// FrameworkRegisteredMessage is the master's reply to RegisterFrameworkMessage.
type FrameworkRegisteredMessage struct {
	FrameworkID *FrameworkID `protobuf:"bytes,1,req,name=framework_id" json:"framework_id,omitempty"`
	MasterInfo  *MasterInfo  `protobuf:"bytes,2,req,name=master_info" json:"master_info,omitempty"`
}

func (m *FrameworkRegisteredMessage) Reset()         { *m = FrameworkRegisteredMessage{} }
func (m *FrameworkRegisteredMessage) String() string { return proto.CompactTextString(m) }
func (*FrameworkRegisteredMessage) ProtoMessage()    {}

// FrameworkReregisteredMessage is the master's reply to
// ReregisterFrameworkMessage.
type FrameworkReregisteredMessage struct {
	FrameworkID *FrameworkID `protobuf:"bytes,1,req,name=framework_id" json:"framework_id,omitempty"`
	MasterInfo  *MasterInfo  `protobuf:"bytes,2,req,name=master_info" json:"master_info,omitempty"`
}

func (m *FrameworkReregisteredMessage) Reset()         { *m = FrameworkReregisteredMessage{} }
func (m *FrameworkReregisteredMessage) String() string { return proto.CompactTextString(m) }
func (*FrameworkReregisteredMessage) ProtoMessage()    {}

// ResourceOffersMessage carries a batch of offers to the framework.
type ResourceOffersMessage struct {
	Offers    []*Offer   `protobuf:"bytes,1,rep,name=offers" json:"offers,omitempty"`
	PIDs      []string   `protobuf:"bytes,2,rep,name=pids" json:"pids,omitempty"`
}

func (m *ResourceOffersMessage) Reset()         { *m = ResourceOffersMessage{} }
func (m *ResourceOffersMessage) String() string { return proto.CompactTextString(m) }
func (*ResourceOffersMessage) ProtoMessage()    {}

// RescindResourceOfferMessage withdraws a previously sent offer.
type RescindResourceOfferMessage struct {
	OfferID *OfferID `protobuf:"bytes,1,req,name=offer_id" json:"offer_id,omitempty"`
}

func (m *RescindResourceOfferMessage) Reset()         { *m = RescindResourceOfferMessage{} }
func (m *RescindResourceOfferMessage) String() string { return proto.CompactTextString(m) }
func (*RescindResourceOfferMessage) ProtoMessage()    {}

// LaunchTasksMessage asks the master to launch the given tasks against the
// listed offers.
type LaunchTasksMessage struct {
	FrameworkID *FrameworkID `protobuf:"bytes,1,req,name=framework_id" json:"framework_id,omitempty"`
	Tasks       []*TaskInfo  `protobuf:"bytes,2,rep,name=tasks" json:"tasks,omitempty"`
	Filters     *Filters     `protobuf:"bytes,4,opt,name=filters" json:"filters,omitempty"`
	OfferIDs    []*OfferID   `protobuf:"bytes,5,rep,name=offer_ids" json:"offer_ids,omitempty"`
}

func (m *LaunchTasksMessage) Reset()         { *m = LaunchTasksMessage{} }
func (m *LaunchTasksMessage) String() string { return proto.CompactTextString(m) }
func (*LaunchTasksMessage) ProtoMessage()    {}

// KillTaskMessage asks the master to kill a running task.
type KillTaskMessage struct {
	FrameworkID *FrameworkID `protobuf:"bytes,1,req,name=framework_id" json:"framework_id,omitempty"`
	TaskID      *TaskID      `protobuf:"bytes,2,req,name=task_id" json:"task_id,omitempty"`
}

func (m *KillTaskMessage) Reset()         { *m = KillTaskMessage{} }
func (m *KillTaskMessage) String() string { return proto.CompactTextString(m) }
func (*KillTaskMessage) ProtoMessage()    {}

// StatusUpdateMessage carries a task status transition from the master (or
// is synthesized locally for a lost task).
type StatusUpdateMessage struct {
	Update *StatusUpdate `protobuf:"bytes,1,req,name=update" json:"update,omitempty"`
	Pid    *string       `protobuf:"bytes,2,opt,name=pid" json:"pid,omitempty"`
}

func (m *StatusUpdateMessage) Reset()         { *m = StatusUpdateMessage{} }
func (m *StatusUpdateMessage) String() string { return proto.CompactTextString(m) }
func (*StatusUpdateMessage) ProtoMessage()    {}

// StatusUpdate wraps a TaskStatus with the framework it belongs to and the
// time the master/executor generated it.
type StatusUpdate struct {
	FrameworkID *FrameworkID `protobuf:"bytes,1,req,name=framework_id" json:"framework_id,omitempty"`
	Status      *TaskStatus  `protobuf:"bytes,3,req,name=status" json:"status,omitempty"`
	Timestamp   *float64     `protobuf:"fixed64,5,req,name=timestamp" json:"timestamp,omitempty"`
	UUID        []byte       `protobuf:"bytes,6,req,name=uuid" json:"uuid,omitempty"`
}

func (m *StatusUpdate) GetStatus() *TaskStatus {
	if m != nil {
		return m.Status
	}
	return nil
}

// StatusUpdateAcknowledgementMessage is sent by the framework to confirm
// processing of a StatusUpdateMessage.
type StatusUpdateAcknowledgementMessage struct {
	FrameworkID *FrameworkID `protobuf:"bytes,1,req,name=framework_id" json:"framework_id,omitempty"`
	SlaveID     *SlaveID     `protobuf:"bytes,2,req,name=slave_id" json:"slave_id,omitempty"`
	TaskID      *TaskID      `protobuf:"bytes,3,req,name=task_id" json:"task_id,omitempty"`
	UUID        []byte       `protobuf:"bytes,4,req,name=uuid" json:"uuid,omitempty"`
}

func (m *StatusUpdateAcknowledgementMessage) Reset() {
	*m = StatusUpdateAcknowledgementMessage{}
}
func (m *StatusUpdateAcknowledgementMessage) String() string { return proto.CompactTextString(m) }
func (*StatusUpdateAcknowledgementMessage) ProtoMessage()    {}

// ReviveOffersMessage asks the master to remove any active offer filters for
// this framework.
type ReviveOffersMessage struct {
	FrameworkID *FrameworkID `protobuf:"bytes,1,req,name=framework_id" json:"framework_id,omitempty"`
}

func (m *ReviveOffersMessage) Reset()         { *m = ReviveOffersMessage{} }
func (m *ReviveOffersMessage) String() string { return proto.CompactTextString(m) }
func (*ReviveOffersMessage) ProtoMessage()    {}

// ResourceRequestMessage asks the master to consider additional resources,
// outside of the regular offer cycle.
type ResourceRequestMessage struct {
	FrameworkID *FrameworkID `protobuf:"bytes,1,req,name=framework_id" json:"framework_id,omitempty"`
	Requests    []*Request   `protobuf:"bytes,2,rep,name=requests" json:"requests,omitempty"`
}

func (m *ResourceRequestMessage) Reset()         { *m = ResourceRequestMessage{} }
func (m *ResourceRequestMessage) String() string { return proto.CompactTextString(m) }
func (*ResourceRequestMessage) ProtoMessage()    {}

// ReconcileTasksMessage asks the master to resend the latest status for the
// listed tasks (or all tasks known to this framework if empty).
type ReconcileTasksMessage struct {
	FrameworkID *FrameworkID  `protobuf:"bytes,1,req,name=framework_id" json:"framework_id,omitempty"`
	Statuses    []*TaskStatus `protobuf:"bytes,2,rep,name=statuses" json:"statuses,omitempty"`
}

func (m *ReconcileTasksMessage) Reset()         { *m = ReconcileTasksMessage{} }
func (m *ReconcileTasksMessage) String() string { return proto.CompactTextString(m) }
func (*ReconcileTasksMessage) ProtoMessage()    {}

// FrameworkToExecutorMessage carries an opaque framework message destined
// for a specific executor.
type FrameworkToExecutorMessage struct {
	SlaveID     *SlaveID     `protobuf:"bytes,1,req,name=slave_id" json:"slave_id,omitempty"`
	FrameworkID *FrameworkID `protobuf:"bytes,2,req,name=framework_id" json:"framework_id,omitempty"`
	ExecutorID  *ExecutorID  `protobuf:"bytes,3,req,name=executor_id" json:"executor_id,omitempty"`
	Data        []byte       `protobuf:"bytes,4,req,name=data" json:"data,omitempty"`
}

func (m *FrameworkToExecutorMessage) Reset()         { *m = FrameworkToExecutorMessage{} }
func (m *FrameworkToExecutorMessage) String() string { return proto.CompactTextString(m) }
func (*FrameworkToExecutorMessage) ProtoMessage()    {}

// ExecutorToFrameworkMessage is the opposite direction: an executor's
// opaque message, relayed to the framework's scheduler.
type ExecutorToFrameworkMessage struct {
	SlaveID     *SlaveID     `protobuf:"bytes,1,req,name=slave_id" json:"slave_id,omitempty"`
	FrameworkID *FrameworkID `protobuf:"bytes,2,req,name=framework_id" json:"framework_id,omitempty"`
	ExecutorID  *ExecutorID  `protobuf:"bytes,3,req,name=executor_id" json:"executor_id,omitempty"`
	Data        []byte       `protobuf:"bytes,4,req,name=data" json:"data,omitempty"`
}

func (m *ExecutorToFrameworkMessage) Reset()         { *m = ExecutorToFrameworkMessage{} }
func (m *ExecutorToFrameworkMessage) String() string { return proto.CompactTextString(m) }
func (*ExecutorToFrameworkMessage) ProtoMessage()    {}

// LostSlaveMessage informs the framework that an agent is gone for good.
type LostSlaveMessage struct {
	SlaveID *SlaveID `protobuf:"bytes,1,req,name=slave_id" json:"slave_id,omitempty"`
}

func (m *LostSlaveMessage) Reset()         { *m = LostSlaveMessage{} }
func (m *LostSlaveMessage) String() string { return proto.CompactTextString(m) }
func (*LostSlaveMessage) ProtoMessage()    {}

// FrameworkErrorMessage is a fatal, unrecoverable error pushed by the master
// (e.g. framework completed / duplicate framework ID).
type FrameworkErrorMessage struct {
	Message *string `protobuf:"bytes,2,req,name=message" json:"message,omitempty"`
}

func (m *FrameworkErrorMessage) Reset()         { *m = FrameworkErrorMessage{} }
func (m *FrameworkErrorMessage) String() string { return proto.CompactTextString(m) }
func (*FrameworkErrorMessage) ProtoMessage()    {}

func (m *FrameworkErrorMessage) GetMessage() string {
	if m != nil && m.Message != nil {
		return *m.Message
	}
	return ""
}
