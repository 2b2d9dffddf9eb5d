// Package mesos holds the structural data types exchanged between a
// framework scheduler and a Mesos master: FrameworkInfo, Offer, TaskInfo,
// TaskStatus and friends. The protobuf catalog itself is a structural input
// to the scheduler driver (it is generated from mesos.proto upstream); this
// package hand-models the same shape in the style of mesos-go's mesosproto
// package so call sites read identically, without vendoring a competing
// scheduler-driver implementation.
package mesos

import (
	"fmt"

	"github.com/gogo/protobuf/proto"
)

// FrameworkID uniquely identifies a framework, assigned by the master on
// first registration.
type FrameworkID struct {
	Value *string `protobuf:"bytes,1,req,name=value" json:"value,omitempty"`
}

func (m *FrameworkID) Reset()         { *m = FrameworkID{} }
func (m *FrameworkID) String() string { return proto.CompactTextString(m) }
func (*FrameworkID) ProtoMessage()    {}

func (m *FrameworkID) GetValue() string {
	if m != nil && m.Value != nil {
		return *m.Value
	}
	return ""
}

// SlaveID uniquely identifies an agent (slave) process.
type SlaveID struct {
	Value *string `protobuf:"bytes,1,req,name=value" json:"value,omitempty"`
}

func (m *SlaveID) Reset()         { *m = SlaveID{} }
func (m *SlaveID) String() string { return proto.CompactTextString(m) }
func (*SlaveID) ProtoMessage()    {}

func (m *SlaveID) GetValue() string {
	if m != nil && m.Value != nil {
		return *m.Value
	}
	return ""
}

// OfferID uniquely identifies a resource offer.
type OfferID struct {
	Value *string `protobuf:"bytes,1,req,name=value" json:"value,omitempty"`
}

func (m *OfferID) Reset()         { *m = OfferID{} }
func (m *OfferID) String() string { return proto.CompactTextString(m) }
func (*OfferID) ProtoMessage()    {}

func (m *OfferID) GetValue() string {
	if m != nil && m.Value != nil {
		return *m.Value
	}
	return ""
}

// ExecutorID uniquely identifies an executor within a framework.
type ExecutorID struct {
	Value *string `protobuf:"bytes,1,req,name=value" json:"value,omitempty"`
}

func (m *ExecutorID) Reset()         { *m = ExecutorID{} }
func (m *ExecutorID) String() string { return proto.CompactTextString(m) }
func (*ExecutorID) ProtoMessage()    {}

func (m *ExecutorID) GetValue() string {
	if m != nil && m.Value != nil {
		return *m.Value
	}
	return ""
}

// TaskID uniquely identifies a task within a framework.
type TaskID struct {
	Value *string `protobuf:"bytes,1,req,name=value" json:"value,omitempty"`
}

func (m *TaskID) Reset()         { *m = TaskID{} }
func (m *TaskID) String() string { return proto.CompactTextString(m) }
func (*TaskID) ProtoMessage()    {}

func (m *TaskID) GetValue() string {
	if m != nil && m.Value != nil {
		return *m.Value
	}
	return ""
}

// MasterInfo describes the current elected master.
type MasterInfo struct {
	ID       *string `protobuf:"bytes,1,req,name=id" json:"id,omitempty"`
	IP       *uint32 `protobuf:"varint,2,req,name=ip" json:"ip,omitempty"`
	Port     *uint32 `protobuf:"varint,3,req,name=port" json:"port,omitempty"`
	Hostname *string `protobuf:"bytes,4,opt,name=hostname" json:"hostname,omitempty"`
	PID      *string `protobuf:"bytes,5,opt,name=pid" json:"pid,omitempty"`
}

func (m *MasterInfo) Reset()         { *m = MasterInfo{} }
func (m *MasterInfo) String() string { return proto.CompactTextString(m) }
func (*MasterInfo) ProtoMessage()    {}

func (m *MasterInfo) GetHostname() string {
	if m != nil && m.Hostname != nil {
		return *m.Hostname
	}
	return ""
}

func (m *MasterInfo) GetPort() uint32 {
	if m != nil && m.Port != nil {
		return *m.Port
	}
	return 0
}

// Credential is an opaque authentication extension point; the core stores
// it but never consumes it.
type Credential struct {
	Principal *string `protobuf:"bytes,1,req,name=principal" json:"principal,omitempty"`
	Secret    []byte  `protobuf:"bytes,2,opt,name=secret" json:"secret,omitempty"`
}

func (m *Credential) Reset()         { *m = Credential{} }
func (m *Credential) String() string { return proto.CompactTextString(m) }
func (*Credential) ProtoMessage()    {}

// FrameworkInfo identifies a framework to the master.
type FrameworkInfo struct {
	ID              *FrameworkID `protobuf:"bytes,1,opt,name=id" json:"id,omitempty"`
	User            *string      `protobuf:"bytes,2,req,name=user" json:"user,omitempty"`
	Name            *string      `protobuf:"bytes,3,req,name=name" json:"name,omitempty"`
	Hostname        *string      `protobuf:"bytes,4,opt,name=hostname" json:"hostname,omitempty"`
	Role            *string      `protobuf:"bytes,5,opt,name=role" json:"role,omitempty"`
	Principal       *string      `protobuf:"bytes,6,opt,name=principal" json:"principal,omitempty"`
	Checkpoint      *bool        `protobuf:"varint,7,opt,name=checkpoint" json:"checkpoint,omitempty"`
	FailoverTimeout *float64     `protobuf:"fixed64,8,opt,name=failover_timeout" json:"failover_timeout,omitempty"`
}

func (m *FrameworkInfo) Reset()         { *m = FrameworkInfo{} }
func (m *FrameworkInfo) String() string { return proto.CompactTextString(m) }
func (*FrameworkInfo) ProtoMessage()    {}

func (m *FrameworkInfo) HasID() bool {
	return m != nil && m.ID != nil && m.ID.Value != nil && *m.ID.Value != ""
}

func (m *FrameworkInfo) GetID() *FrameworkID {
	if m != nil {
		return m.ID
	}
	return nil
}

func (m *FrameworkInfo) GetUser() string {
	if m != nil && m.User != nil {
		return *m.User
	}
	return ""
}

func (m *FrameworkInfo) GetHostname() string {
	if m != nil && m.Hostname != nil {
		return *m.Hostname
	}
	return ""
}

// ValueType enumerates the kinds of resource value.
type ValueType int32

const (
	ValueScalar ValueType = iota
	ValueRanges
	ValueSet
)

// ValueScalarValue carries a scalar resource quantity (e.g. cpus, mem).
type ValueScalarValue struct {
	Value *float64 `protobuf:"fixed64,1,req,name=value" json:"value,omitempty"`
}

func (m *ValueScalarValue) GetValue() float64 {
	if m != nil && m.Value != nil {
		return *m.Value
	}
	return 0
}

// ValueRange is an inclusive [Begin, End] range, used for port resources.
type ValueRange struct {
	Begin *uint64 `protobuf:"varint,1,req,name=begin" json:"begin,omitempty"`
	End   *uint64 `protobuf:"varint,2,req,name=end" json:"end,omitempty"`
}

// ValueRanges is a list of ranges.
type ValueRanges struct {
	Range []*ValueRange `protobuf:"bytes,1,rep,name=range" json:"range,omitempty"`
}

func (m *ValueRanges) GetRange() []*ValueRange {
	if m != nil {
		return m.Range
	}
	return nil
}

// Resource describes one named resource (cpus, mem, disk, ports, ...)
// offered by, or requested on, an agent.
type Resource struct {
	Name   *string      `protobuf:"bytes,1,req,name=name" json:"name,omitempty"`
	Type   *ValueType   `protobuf:"varint,2,req,name=type" json:"type,omitempty"`
	Scalar *ValueScalarValue `protobuf:"bytes,3,opt,name=scalar" json:"scalar,omitempty"`
	Ranges *ValueRanges `protobuf:"bytes,4,opt,name=ranges" json:"ranges,omitempty"`
	Role   *string      `protobuf:"bytes,6,opt,name=role" json:"role,omitempty"`
}

func (m *Resource) GetName() string {
	if m != nil && m.Name != nil {
		return *m.Name
	}
	return ""
}

func (m *Resource) GetScalar() *ValueScalarValue {
	if m != nil {
		return m.Scalar
	}
	return nil
}

func (m *Resource) GetRanges() *ValueRanges {
	if m != nil {
		return m.Ranges
	}
	return nil
}

// NewScalarResource builds a scalar resource, mirroring mesosutil's helper
// of the same name.
func NewScalarResource(name string, value float64) *Resource {
	t := ValueScalar
	return &Resource{
		Name:   proto.String(name),
		Type:   &t,
		Scalar: &ValueScalarValue{Value: proto.Float64(value)},
	}
}

// Attribute is an opaque agent attribute (e.g. rack=1, os=centos7).
type Attribute struct {
	Name *string `protobuf:"bytes,1,req,name=name" json:"name,omitempty"`
	Text *string `protobuf:"bytes,2,opt,name=text" json:"text,omitempty"`
}

// Offer is a timestamped promise from the master granting a bundle of
// resources on a specific slave.
type Offer struct {
	ID          *OfferID       `protobuf:"bytes,1,req,name=id" json:"id,omitempty"`
	FrameworkID *FrameworkID   `protobuf:"bytes,2,req,name=framework_id" json:"framework_id,omitempty"`
	SlaveID     *SlaveID       `protobuf:"bytes,3,req,name=slave_id" json:"slave_id,omitempty"`
	Hostname    *string        `protobuf:"bytes,4,req,name=hostname" json:"hostname,omitempty"`
	Resources   []*Resource    `protobuf:"bytes,5,rep,name=resources" json:"resources,omitempty"`
	Attributes  []*Attribute   `protobuf:"bytes,7,rep,name=attributes" json:"attributes,omitempty"`
	ExecutorIDs []*ExecutorID  `protobuf:"bytes,8,rep,name=executor_ids" json:"executor_ids,omitempty"`
}

func (m *Offer) Reset()         { *m = Offer{} }
func (m *Offer) String() string { return proto.CompactTextString(m) }
func (*Offer) ProtoMessage()    {}

func (m *Offer) GetId() *OfferID {
	if m != nil {
		return m.ID
	}
	return nil
}

func (m *Offer) GetSlaveId() *SlaveID {
	if m != nil {
		return m.SlaveID
	}
	return nil
}

func (m *Offer) GetHostname() string {
	if m != nil && m.Hostname != nil {
		return *m.Hostname
	}
	return ""
}

// CommandInfoURI is a single fetchable artifact for a command.
type CommandInfoURI struct {
	Value      *string `protobuf:"bytes,1,req,name=value" json:"value,omitempty"`
	Executable *bool   `protobuf:"varint,2,opt,name=executable" json:"executable,omitempty"`
}

// CommandInfo describes how to invoke a task or executor.
type CommandInfo struct {
	URIs  []*CommandInfoURI `protobuf:"bytes,1,rep,name=uris" json:"uris,omitempty"`
	Value *string           `protobuf:"bytes,3,opt,name=value" json:"value,omitempty"`
	Shell *bool             `protobuf:"varint,6,opt,name=shell" json:"shell,omitempty"`
}

// ExecutorInfo describes the executor a task runs under.
type ExecutorInfo struct {
	ExecutorID  *ExecutorID  `protobuf:"bytes,1,req,name=executor_id" json:"executor_id,omitempty"`
	FrameworkID *FrameworkID `protobuf:"bytes,8,opt,name=framework_id" json:"framework_id,omitempty"`
	Command     *CommandInfo `protobuf:"bytes,7,req,name=command" json:"command,omitempty"`
	Name        *string      `protobuf:"bytes,9,opt,name=name" json:"name,omitempty"`
	Resources   []*Resource  `protobuf:"bytes,5,rep,name=resources" json:"resources,omitempty"`
}

func (m *ExecutorInfo) HasFrameworkID() bool {
	return m != nil && m.FrameworkID != nil && m.FrameworkID.Value != nil && *m.FrameworkID.Value != ""
}

// TaskInfo describes a task to be launched against an offer.
type TaskInfo struct {
	Name      *string       `protobuf:"bytes,1,req,name=name" json:"name,omitempty"`
	TaskID    *TaskID       `protobuf:"bytes,2,req,name=task_id" json:"task_id,omitempty"`
	SlaveID   *SlaveID      `protobuf:"bytes,3,req,name=slave_id" json:"slave_id,omitempty"`
	Resources []*Resource   `protobuf:"bytes,4,rep,name=resources" json:"resources,omitempty"`
	Executor  *ExecutorInfo `protobuf:"bytes,5,opt,name=executor" json:"executor,omitempty"`
	Command   *CommandInfo  `protobuf:"bytes,7,opt,name=command" json:"command,omitempty"`
	Data      []byte        `protobuf:"bytes,6,opt,name=data" json:"data,omitempty"`
}

func (m *TaskInfo) GetTaskId() *TaskID {
	if m != nil {
		return m.TaskID
	}
	return nil
}

// HasExecutor / HasCommand let launch validation reproduce the original's
// task.HasField('executor') / task.HasField('command') checks without a
// generated-code HasField method.
func (m *TaskInfo) HasExecutor() bool { return m != nil && m.Executor != nil }
func (m *TaskInfo) HasCommand() bool  { return m != nil && m.Command != nil }

// TaskState enumerates the lifecycle states of a task.
type TaskState int32

const (
	TaskStaging TaskState = iota
	TaskStarting
	TaskRunning
	TaskFinished
	TaskFailed
	TaskKilled
	TaskLost
	TaskError
)

func (s TaskState) String() string {
	switch s {
	case TaskStaging:
		return "TASK_STAGING"
	case TaskStarting:
		return "TASK_STARTING"
	case TaskRunning:
		return "TASK_RUNNING"
	case TaskFinished:
		return "TASK_FINISHED"
	case TaskFailed:
		return "TASK_FAILED"
	case TaskKilled:
		return "TASK_KILLED"
	case TaskLost:
		return "TASK_LOST"
	case TaskError:
		return "TASK_ERROR"
	default:
		return fmt.Sprintf("TASK_UNKNOWN(%d)", int32(s))
	}
}

// TaskStatus carries a task's state transition; each update carries a uuid
// that the framework must acknowledge.
type TaskStatus struct {
	TaskID    *TaskID    `protobuf:"bytes,1,req,name=task_id" json:"task_id,omitempty"`
	State     *TaskState `protobuf:"varint,2,req,name=state" json:"state,omitempty"`
	Message   *string    `protobuf:"bytes,3,opt,name=message" json:"message,omitempty"`
	SlaveID   *SlaveID   `protobuf:"bytes,5,opt,name=slave_id" json:"slave_id,omitempty"`
	Timestamp *float64   `protobuf:"fixed64,6,opt,name=timestamp" json:"timestamp,omitempty"`
	UUID      []byte     `protobuf:"bytes,11,opt,name=uuid" json:"uuid,omitempty"`
}

func (m *TaskStatus) Reset()         { *m = TaskStatus{} }
func (m *TaskStatus) String() string { return proto.CompactTextString(m) }
func (*TaskStatus) ProtoMessage()    {}

func (m *TaskStatus) GetTaskId() *TaskID {
	if m != nil {
		return m.TaskID
	}
	return nil
}

func (m *TaskStatus) GetState() TaskState {
	if m != nil && m.State != nil {
		return *m.State
	}
	return TaskStaging
}

func (m *TaskStatus) GetMessage() string {
	if m != nil && m.Message != nil {
		return *m.Message
	}
	return ""
}

// Filters constrains which resources an offer response applies to.
type Filters struct {
	RefuseSeconds *float64 `protobuf:"fixed64,1,opt,name=refuse_seconds" json:"refuse_seconds,omitempty"`
}

func (m *Filters) Reset()         { *m = Filters{} }
func (m *Filters) String() string { return proto.CompactTextString(m) }
func (*Filters) ProtoMessage()    {}

// Request is a bare resource request not tied to any task, used by
// SchedulerDriver.requestResources.
type Request struct {
	SlaveID   *SlaveID    `protobuf:"bytes,1,opt,name=slave_id" json:"slave_id,omitempty"`
	Resources []*Resource `protobuf:"bytes,2,rep,name=resources" json:"resources,omitempty"`
}
