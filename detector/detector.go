// Package detector implements the master-detector external collaborator
// spec.md names but specifies only at its interface: something that watches
// for the currently elected Mesos master and reports changes to it.
package detector

import (
	"context"
	"errors"
	"strings"

	"github.com/mesosphere/pesos-go/mesos"
)

// ErrNoLeader reports that no master is currently elected — e.g. the
// ZooKeeper leader znode is absent, or a quorum of masters hasn't settled
// yet. No detector in this package returns it: ZKDetector waits for a
// leader znode to appear instead.
var ErrNoLeader = errors.New("detector: no master currently elected")

// Future is the result of one round of detection: the master that is now
// current, which may be nil if leadership was lost and nothing has been
// elected yet. This mirrors the original's detected(self, future) callback
// argument, where future.result() is either a MasterInfo or None.
type Future struct {
	MasterInfo *mesos.MasterInfo
}

// MasterDetector watches for the current Mesos master and reports the
// result of each detection round until ctx is cancelled or Detect returns an
// error. previous is the master the caller currently knows about (nil on
// the very first call); a correct implementation only yields a new Future
// when the elected master actually differs from previous, mirroring the
// original's own "detected" suppression of no-op repeated callbacks at the
// detector level.
type MasterDetector interface {
	// Detect blocks until a master change (or ctx cancellation / fatal
	// error) and returns the new state.
	Detect(ctx context.Context, previous *mesos.MasterInfo) (Future, error)
}

// FromURI builds the right MasterDetector for a master URI of either form:
//
//	zk://host1:port1,host2:port2/path      -- ZooKeeper-backed HA detection
//	host:port                              -- direct, non-HA master address
func FromURI(uri string) (MasterDetector, error) {
	if strings.HasPrefix(uri, "zk://") {
		return NewZKDetector(uri)
	}
	return NewStaticDetector(uri)
}
