package scheduler

import (
	"sync"

	"github.com/mesosphere/pesos-go/mesos"
)

// offerTable tracks every outstanding offer's slave and that slave's
// address, generalizing the original's saved_offers (a
// defaultdict(dict) keyed OfferID -> SlaveID -> pid) and saved_slaves
// (SlaveID -> pid) into a single type the SchedulerProcess owns.
//
// Because SchedulerProcess only ever touches this from its own mailbox
// goroutine, the mutex here exists solely so tests can read the table from
// their own goroutine without racing the mailbox.
type offerTable struct {
	mu         sync.Mutex
	offerSlave map[string]string        // OfferID.Value -> SlaveID.Value
	slaveAddr  map[string]mesos.Address // SlaveID.Value -> agent address
}

func newOfferTable() *offerTable {
	return &offerTable{
		offerSlave: make(map[string]string),
		slaveAddr:  make(map[string]mesos.Address),
	}
}

// record stores an offer's slave pairing and that slave's address, called
// once per offer in ResourceOffers.
func (t *offerTable) record(offerID *mesos.OfferID, slave *mesos.SlaveID, addr mesos.Address) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.offerSlave[offerID.GetValue()] = slave.GetValue()
	t.slaveAddr[slave.GetValue()] = addr
}

// slaveFor returns the slave ID an offer was made against, and whether the
// offer is still known (it is removed once launched, rescinded, or
// declined).
func (t *offerTable) slaveFor(offerID *mesos.OfferID) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.offerSlave[offerID.GetValue()]
	return s, ok
}

// addressOf returns the last known address of a slave, regardless of
// whether any of its offers are still outstanding — the original keeps
// saved_slaves around independently of saved_offers for exactly this
// reason (framework messages need to reach a slave long after its offers
// are gone).
func (t *offerTable) addressOf(slaveID string) (mesos.Address, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	a, ok := t.slaveAddr[slaveID]
	return a, ok
}

// forget removes an offer from the table (launched, declined, or
// rescinded); it does not touch the slave address cache.
func (t *offerTable) forget(offerID *mesos.OfferID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.offerSlave, offerID.GetValue())
}

// forgetAll clears every outstanding offer, used on disconnect: offers do
// not survive a reconnect, since the master considers them all implicitly
// rescinded.
func (t *offerTable) forgetAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.offerSlave = make(map[string]string)
}

// forgetSlave removes every offer known to be on slaveID, and the slave's
// cached address, called on SlaveLost.
func (t *offerTable) forgetSlave(slaveID *mesos.SlaveID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := slaveID.GetValue()
	for offerID, sid := range t.offerSlave {
		if sid == id {
			delete(t.offerSlave, offerID)
		}
	}
	delete(t.slaveAddr, id)
}

// outstandingCount reports how many offers are currently tracked; used by
// tests asserting the table-cleared-on-disconnect invariant.
func (t *offerTable) outstandingCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.offerSlave)
}
