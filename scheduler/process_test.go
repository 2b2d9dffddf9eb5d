package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gogo/protobuf/proto"

	"github.com/mesosphere/pesos-go/actor"
	"github.com/mesosphere/pesos-go/detector"
	"github.com/mesosphere/pesos-go/mesos"
)

// fakeDetector hands back detection results exactly when the test pushes
// them, blocking Detect in between — giving the test full control over the
// pacing of the registration state machine's re-detect loop, which would
// otherwise race ahead through a pre-filled slice of results instantly.
type fakeDetector struct {
	ch chan detector.Future
}

func newFakeDetector(initial ...detector.Future) *fakeDetector {
	d := &fakeDetector{ch: make(chan detector.Future, 8)}
	for _, f := range initial {
		d.ch <- f
	}
	return d
}

func (d *fakeDetector) push(f detector.Future) { d.ch <- f }

func (d *fakeDetector) Detect(ctx context.Context, previous *mesos.MasterInfo) (detector.Future, error) {
	select {
	case f := <-d.ch:
		return f, nil
	case <-ctx.Done():
		return detector.Future{}, ctx.Err()
	}
}

// recordingTransport captures every message a SchedulerProcess sends to a
// PID not hosted in its own Context (i.e. everything addressed to "master"),
// standing in for a real master process reachable over the wire.
type recordingTransport struct {
	mu   sync.Mutex
	ctx  *actor.Context
	sent []proto.Message
}

func (t *recordingTransport) Bind(c *actor.Context) { t.ctx = c }

func (t *recordingTransport) Send(ctx context.Context, from, to actor.PID, msg proto.Message) error {
	t.mu.Lock()
	t.sent = append(t.sent, msg)
	t.mu.Unlock()
	return nil
}

func (t *recordingTransport) snapshot() []proto.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]proto.Message, len(t.sent))
	copy(out, t.sent)
	return out
}

// fakeScheduler records every callback invocation for assertion.
type fakeScheduler struct {
	mu sync.Mutex

	registered   int
	reregistered int
	disconnected int
	offers       [][]*mesos.Offer
	rescinded    []*mesos.OfferID
	statuses     []*mesos.TaskStatus
	frameworkMsg int
	slaveLost    int
	executorLost int
	errors       []string
}

func (s *fakeScheduler) Registered(driver *Driver, frameworkID *mesos.FrameworkID, masterInfo *mesos.MasterInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registered++
}
func (s *fakeScheduler) Reregistered(driver *Driver, masterInfo *mesos.MasterInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reregistered++
}
func (s *fakeScheduler) Disconnected(driver *Driver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disconnected++
}
func (s *fakeScheduler) ResourceOffers(driver *Driver, offers []*mesos.Offer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offers = append(s.offers, offers)
}
func (s *fakeScheduler) OfferRescinded(driver *Driver, offerID *mesos.OfferID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rescinded = append(s.rescinded, offerID)
}
func (s *fakeScheduler) StatusUpdate(driver *Driver, status *mesos.TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, status)
}
func (s *fakeScheduler) FrameworkMessage(driver *Driver, executorID *mesos.ExecutorID, slaveID *mesos.SlaveID, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frameworkMsg++
}
func (s *fakeScheduler) SlaveLost(driver *Driver, slaveID *mesos.SlaveID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slaveLost++
}
func (s *fakeScheduler) ExecutorLost(driver *Driver, executorID *mesos.ExecutorID, slaveID *mesos.SlaveID, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.executorLost++
}
func (s *fakeScheduler) Error(driver *Driver, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, message)
}

func (s *fakeScheduler) registeredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registered
}
func (s *fakeScheduler) statusCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.statuses)
}
func (s *fakeScheduler) lastStatus() *mesos.TaskStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.statuses) == 0 {
		return nil
	}
	return s.statuses[len(s.statuses)-1]
}
func (s *fakeScheduler) offersCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.offers)
}
func (s *fakeScheduler) disconnectedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disconnected
}

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition never became true within timeout")
}

func newHarness(t *testing.T, initial ...detector.Future) (*Driver, *fakeScheduler, *recordingTransport, *fakeDetector, mesos.Address) {
	t.Helper()
	transport := &recordingTransport{}
	ctx := actor.NewContext("scheduler-host", transport)
	user := &fakeScheduler{}
	det := newFakeDetector(initial...)
	fwinfo := &mesos.FrameworkInfo{User: proto.String("u"), Name: proto.String("test-framework")}

	proc := newSchedulerProcess(ctx, user, fwinfo, nil, det, "")
	d := &Driver{ctx: ctx, status: StatusNotStarted, process: proc}
	d.cond = sync.NewCond(&d.mu)
	proc.driver = d

	var masterAddr mesos.Address
	if len(initial) > 0 && initial[0].MasterInfo != nil {
		masterAddr = mesos.MasterInfoAddress(initial[0].MasterInfo)
	}
	return d, user, transport, det, masterAddr
}

func u32Ptr(v uint32) *uint32 { return &v }

func testMasterInfo(host string, port uint32) *mesos.MasterInfo {
	return &mesos.MasterInfo{
		ID:       proto.String("master-1"),
		Hostname: proto.String(host),
		Port:     u32Ptr(port),
	}
}

func containsMessageType(msgs []proto.Message, want proto.Message) bool {
	wantName := messageTypeName(want)
	for _, m := range msgs {
		if messageTypeName(m) == wantName {
			return true
		}
	}
	return false
}

func messageTypeName(m proto.Message) string {
	switch m.(type) {
	case *mesos.RegisterFrameworkMessage:
		return "register"
	case *mesos.ReregisterFrameworkMessage:
		return "reregister"
	case *mesos.LaunchTasksMessage:
		return "launch"
	case *mesos.StatusUpdateAcknowledgementMessage:
		return "ack"
	case *mesos.UnregisterFrameworkMessage:
		return "unregister"
	default:
		return "other"
	}
}

// waitForRegisterSent blocks until the process has sent its first
// RegisterFrameworkMessage — the point at which p.master is guaranteed to
// already be set (doRegistration runs synchronously, in the same mailbox
// invocation, right after detected() assigns the new master address), so
// simulating an inbound message "from" that master afterward is race-free.
func waitForRegisterSent(t *testing.T, transport *recordingTransport) {
	t.Helper()
	waitUntil(t, func() bool {
		return containsMessageType(transport.snapshot(), &mesos.RegisterFrameworkMessage{})
	})
}

func TestRegistrationHappyPath(t *testing.T) {
	mi := testMasterInfo("10.0.0.1", 5050)
	d, user, transport, _, masterAddr := newHarness(t, detector.Future{MasterInfo: mi})

	if _, err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitForRegisterSent(t, transport)

	assignedFwID := fwID("fw-123")
	d.ctx.Send(context.Background(), masterAddr, d.process.pid, &mesos.FrameworkRegisteredMessage{
		FrameworkID: assignedFwID,
		MasterInfo:  mi,
	})

	waitUntil(t, func() bool { return user.registeredCount() == 1 })
	if !d.process.isConnected() {
		t.Error("process should be connected after FrameworkRegisteredMessage")
	}
	if d.process.frameworkID().GetValue() != "fw-123" {
		t.Errorf("frameworkID = %q, want fw-123", d.process.frameworkID().GetValue())
	}
}

func TestResourceOffersRecordedAndDelivered(t *testing.T) {
	mi := testMasterInfo("10.0.0.1", 5050)
	d, user, transport, _, masterAddr := newHarness(t, detector.Future{MasterInfo: mi})
	if _, err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitForRegisterSent(t, transport)

	d.ctx.Send(context.Background(), masterAddr, d.process.pid, &mesos.FrameworkRegisteredMessage{
		FrameworkID: fwID("fw-1"), MasterInfo: mi,
	})
	waitUntil(t, func() bool { return user.registeredCount() == 1 })

	offer := &mesos.Offer{
		ID:       oid("offer-1"),
		SlaveID:  sid("slave-1"),
		Hostname: proto.String("agent-1"),
	}
	d.ctx.Send(context.Background(), masterAddr, d.process.pid, &mesos.ResourceOffersMessage{
		Offers: []*mesos.Offer{offer},
		PIDs:   []string{"slave(1)@10.0.0.2:5051"},
	})

	waitUntil(t, func() bool { return user.offersCount() == 1 })
	if d.process.offers.outstandingCount() != 1 {
		t.Errorf("outstandingCount = %d, want 1", d.process.offers.outstandingCount())
	}
}

func TestResourceOffersIgnoredBeforeConnected(t *testing.T) {
	mi := testMasterInfo("10.0.0.1", 5050)
	d, user, transport, _, masterAddr := newHarness(t, detector.Future{MasterInfo: mi})
	if _, err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitForRegisterSent(t, transport)

	offer := &mesos.Offer{ID: oid("offer-1"), SlaveID: sid("slave-1"), Hostname: proto.String("agent-1")}
	d.ctx.Send(context.Background(), masterAddr, d.process.pid, &mesos.ResourceOffersMessage{Offers: []*mesos.Offer{offer}})

	time.Sleep(30 * time.Millisecond)
	if user.offersCount() != 0 {
		t.Error("offers delivered before registration should be dropped")
	}
}

func TestResourceOffersIgnoredFromWrongOrigin(t *testing.T) {
	mi := testMasterInfo("10.0.0.1", 5050)
	d, user, transport, _, masterAddr := newHarness(t, detector.Future{MasterInfo: mi})
	if _, err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitForRegisterSent(t, transport)
	d.ctx.Send(context.Background(), masterAddr, d.process.pid, &mesos.FrameworkRegisteredMessage{FrameworkID: fwID("fw-1"), MasterInfo: mi})
	waitUntil(t, func() bool { return user.registeredCount() == 1 })

	impostor := mesos.Address{ID: "master", Host: "6.6.6.6", Port: 1}
	offer := &mesos.Offer{ID: oid("offer-1"), SlaveID: sid("slave-1"), Hostname: proto.String("agent-1")}
	d.ctx.Send(context.Background(), impostor, d.process.pid, &mesos.ResourceOffersMessage{Offers: []*mesos.Offer{offer}})

	time.Sleep(30 * time.Millisecond)
	if user.offersCount() != 0 {
		t.Error("offers from a non-leading master should be dropped")
	}
}

func TestLaunchTasksValidTaskForwardedAndOfferForgotten(t *testing.T) {
	mi := testMasterInfo("10.0.0.1", 5050)
	d, user, transport, _, masterAddr := newHarness(t, detector.Future{MasterInfo: mi})
	if _, err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitForRegisterSent(t, transport)
	d.ctx.Send(context.Background(), masterAddr, d.process.pid, &mesos.FrameworkRegisteredMessage{FrameworkID: fwID("fw-1"), MasterInfo: mi})
	waitUntil(t, func() bool { return user.registeredCount() == 1 })

	offer := &mesos.Offer{ID: oid("offer-1"), SlaveID: sid("slave-1"), Hostname: proto.String("agent-1")}
	d.ctx.Send(context.Background(), masterAddr, d.process.pid, &mesos.ResourceOffersMessage{Offers: []*mesos.Offer{offer}})
	waitUntil(t, func() bool { return user.offersCount() == 1 })

	task := &mesos.TaskInfo{
		Name:    proto.String("t1"),
		TaskID:  &mesos.TaskID{Value: proto.String("t1")},
		SlaveID: sid("slave-1"),
		Command: &mesos.CommandInfo{Value: proto.String("true")},
	}
	d.LaunchTasks([]*mesos.OfferID{oid("offer-1")}, []*mesos.TaskInfo{task}, nil)

	waitUntil(t, func() bool {
		return containsMessageType(transport.snapshot(), &mesos.LaunchTasksMessage{})
	})
	waitUntil(t, func() bool { return d.process.offers.outstandingCount() == 0 })
}

func TestLaunchTasksMalformedTaskLocallyLost(t *testing.T) {
	mi := testMasterInfo("10.0.0.1", 5050)
	d, user, transport, _, masterAddr := newHarness(t, detector.Future{MasterInfo: mi})
	if _, err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitForRegisterSent(t, transport)
	d.ctx.Send(context.Background(), masterAddr, d.process.pid, &mesos.FrameworkRegisteredMessage{FrameworkID: fwID("fw-1"), MasterInfo: mi})
	waitUntil(t, func() bool { return user.registeredCount() == 1 })

	malformed := &mesos.TaskInfo{
		Name:   proto.String("bad"),
		TaskID: &mesos.TaskID{Value: proto.String("bad")},
		// Neither Executor nor Command set.
	}
	d.LaunchTasks([]*mesos.OfferID{oid("offer-x")}, []*mesos.TaskInfo{malformed}, nil)

	waitUntil(t, func() bool { return user.statusCount() == 1 })
	status := user.lastStatus()
	if status.GetState() != mesos.TaskLost {
		t.Errorf("malformed task status = %v, want TASK_LOST", status.GetState())
	}

	// A locally synthesized status update must not be acknowledged back to
	// the master: only the LaunchTasksMessage for the (empty) valid set
	// should have gone out, never a StatusUpdateAcknowledgementMessage.
	if containsMessageType(transport.snapshot(), &mesos.StatusUpdateAcknowledgementMessage{}) {
		t.Error("a locally synthesized status update should not be acknowledged to master")
	}
}

func TestStatusUpdateFromMasterIsAcknowledged(t *testing.T) {
	mi := testMasterInfo("10.0.0.1", 5050)
	d, user, transport, _, masterAddr := newHarness(t, detector.Future{MasterInfo: mi})
	if _, err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitForRegisterSent(t, transport)
	d.ctx.Send(context.Background(), masterAddr, d.process.pid, &mesos.FrameworkRegisteredMessage{FrameworkID: fwID("fw-1"), MasterInfo: mi})
	waitUntil(t, func() bool { return user.registeredCount() == 1 })

	state := mesos.TaskRunning
	update := &mesos.StatusUpdate{
		FrameworkID: fwID("fw-1"),
		Status:      &mesos.TaskStatus{TaskID: &mesos.TaskID{Value: proto.String("t1")}, State: &state},
		UUID:        []byte("uuid-1"),
	}
	d.ctx.Send(context.Background(), masterAddr, d.process.pid, &mesos.StatusUpdateMessage{Update: update})

	waitUntil(t, func() bool { return user.statusCount() == 1 })
	waitUntil(t, func() bool {
		return containsMessageType(transport.snapshot(), &mesos.StatusUpdateAcknowledgementMessage{})
	})
}

func TestAbortSwallowsSubsequentTraffic(t *testing.T) {
	mi := testMasterInfo("10.0.0.1", 5050)
	d, user, transport, _, masterAddr := newHarness(t, detector.Future{MasterInfo: mi})
	if _, err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitForRegisterSent(t, transport)
	d.ctx.Send(context.Background(), masterAddr, d.process.pid, &mesos.FrameworkRegisteredMessage{FrameworkID: fwID("fw-1"), MasterInfo: mi})
	waitUntil(t, func() bool { return user.registeredCount() == 1 })

	if _, err := d.Abort(); err != nil {
		t.Fatalf("Abort: %v", err)
	}
	waitUntil(t, func() bool { return d.process.isAborted() })

	offer := &mesos.Offer{ID: oid("offer-1"), SlaveID: sid("slave-1"), Hostname: proto.String("agent-1")}
	d.ctx.Send(context.Background(), masterAddr, d.process.pid, &mesos.ResourceOffersMessage{Offers: []*mesos.Offer{offer}})

	time.Sleep(30 * time.Millisecond)
	if user.offersCount() != 0 {
		t.Error("messages received after Abort should be dropped entirely")
	}
}

func TestDisconnectThenReconnectNotifiesAndClearsOffers(t *testing.T) {
	mi1 := testMasterInfo("10.0.0.1", 5050)
	mi2 := testMasterInfo("10.0.0.9", 5050)
	d, user, transport, det, masterAddr1 := newHarness(t, detector.Future{MasterInfo: mi1})
	if _, err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitForRegisterSent(t, transport)
	d.ctx.Send(context.Background(), masterAddr1, d.process.pid, &mesos.FrameworkRegisteredMessage{FrameworkID: fwID("fw-1"), MasterInfo: mi1})
	waitUntil(t, func() bool { return user.registeredCount() == 1 })

	offer := &mesos.Offer{ID: oid("offer-1"), SlaveID: sid("slave-1"), Hostname: proto.String("agent-1")}
	d.ctx.Send(context.Background(), masterAddr1, d.process.pid, &mesos.ResourceOffersMessage{Offers: []*mesos.Offer{offer}})
	waitUntil(t, func() bool { return d.process.offers.outstandingCount() == 1 })

	// Master election reports no leader: the process should notify
	// Disconnected and drop every outstanding offer (the master considers
	// them all implicitly rescinded).
	det.push(detector.Future{MasterInfo: nil})
	waitUntil(t, func() bool { return user.disconnectedCount() >= 1 })
	waitUntil(t, func() bool { return d.process.offers.outstandingCount() == 0 })

	// A new master is elected: the process should attempt to reregister
	// against it (FrameworkID was already assigned).
	det.push(detector.Future{MasterInfo: mi2})
	waitUntil(t, func() bool {
		return containsMessageType(transport.snapshot(), &mesos.ReregisterFrameworkMessage{})
	})
}

func TestAbortUnblocksMasterDetectionGoroutine(t *testing.T) {
	mi := testMasterInfo("10.0.0.1", 5050)
	d, user, transport, _, masterAddr := newHarness(t, detector.Future{MasterInfo: mi})
	if _, err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitForRegisterSent(t, transport)
	d.ctx.Send(context.Background(), masterAddr, d.process.pid, &mesos.FrameworkRegisteredMessage{FrameworkID: fwID("fw-1"), MasterInfo: mi})
	waitUntil(t, func() bool { return user.registeredCount() == 1 })

	// detect() has already re-triggered itself after the first round and is
	// now blocked waiting on the (empty) fake detector channel.
	lifecycle := d.process.lifecycle
	if _, err := d.Abort(); err != nil {
		t.Fatalf("Abort: %v", err)
	}
	select {
	case <-lifecycle.Done():
	case <-time.After(time.Second):
		t.Fatal("abort() should cancel the process lifecycle context, unblocking the pending Detect call")
	}
}
