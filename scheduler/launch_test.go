package scheduler

import (
	"testing"

	"github.com/gogo/protobuf/proto"

	"github.com/mesosphere/pesos-go/mesos"
)

func fwID(v string) *mesos.FrameworkID { return &mesos.FrameworkID{Value: &v} }

func TestValidateTaskExactlyOneOfExecutorOrCommand(t *testing.T) {
	fw := fwID("fw-1")
	taskID := &mesos.TaskID{Value: proto.String("t1")}

	neither := &mesos.TaskInfo{TaskID: taskID}
	if _, ok := validateTask(neither, fw); ok {
		t.Error("a task with neither executor nor command should be invalid")
	}

	both := &mesos.TaskInfo{TaskID: taskID, Executor: &mesos.ExecutorInfo{}, Command: &mesos.CommandInfo{}}
	if _, ok := validateTask(both, fw); ok {
		t.Error("a task with both executor and command should be invalid")
	}

	commandOnly := &mesos.TaskInfo{TaskID: taskID, Command: &mesos.CommandInfo{}}
	if _, ok := validateTask(commandOnly, fw); !ok {
		t.Error("a task with only a command should be valid")
	}
}

func TestValidateTaskExecutorFrameworkIDMatch(t *testing.T) {
	fw := fwID("fw-1")
	taskID := &mesos.TaskID{Value: proto.String("t1")}

	unset := &mesos.TaskInfo{TaskID: taskID, Executor: &mesos.ExecutorInfo{}}
	if _, ok := validateTask(unset, fw); !ok {
		t.Error("an executor with no FrameworkID set should be valid (auto-filled later)")
	}

	matching := &mesos.TaskInfo{TaskID: taskID, Executor: &mesos.ExecutorInfo{FrameworkID: fwID("fw-1")}}
	if _, ok := validateTask(matching, fw); !ok {
		t.Error("an executor naming this driver's own framework id should be valid")
	}

	mismatched := &mesos.TaskInfo{TaskID: taskID, Executor: &mesos.ExecutorInfo{FrameworkID: fwID("someone-else")}}
	if _, ok := validateTask(mismatched, fw); ok {
		t.Error("an executor naming a different framework id should be invalid")
	}
}

func TestCopyTaskForLaunchFillsUnsetExecutorFrameworkID(t *testing.T) {
	fw := fwID("fw-1")
	original := &mesos.TaskInfo{
		TaskID:   &mesos.TaskID{Value: proto.String("t1")},
		Executor: &mesos.ExecutorInfo{},
	}

	cp := copyTaskForLaunch(original, fw)

	if original.Executor.FrameworkID != nil {
		t.Error("copyTaskForLaunch must not mutate the caller's original task")
	}
	if cp.Executor.FrameworkID.GetValue() != "fw-1" {
		t.Errorf("copy's executor framework id = %q, want fw-1", cp.Executor.FrameworkID.GetValue())
	}
}

func TestCopyTaskForLaunchPreservesExplicitExecutorFrameworkID(t *testing.T) {
	fw := fwID("fw-1")
	original := &mesos.TaskInfo{
		TaskID:   &mesos.TaskID{Value: proto.String("t1")},
		Executor: &mesos.ExecutorInfo{FrameworkID: fwID("fw-1")},
	}

	cp := copyTaskForLaunch(original, fw)
	if cp.Executor.FrameworkID.GetValue() != "fw-1" {
		t.Errorf("copy's executor framework id = %q, want fw-1", cp.Executor.FrameworkID.GetValue())
	}
}
