package scheduler

import (
	log "github.com/golang/glog"

	"github.com/mesosphere/pesos-go/mesos"
)

// logOffers dumps the hostnames and ids of a batch of offers at V(2), the
// same verbosity the teacher reserves for offer/launch internals
// (scheduler/scheduler.go's log.V(2).Infoln around ResourceOffers).
func logOffers(offers []*mesos.Offer) {
	if !log.V(2) {
		return
	}
	for _, o := range offers {
		log.Infof("offer %s on %s", o.GetId().GetValue(), o.GetHostname())
	}
}

// logRejectedOrigin matches the original's
// log.warning('Ignoring message from non-leading master %s' % from_pid).
func logRejectedOrigin(from mesos.Address, expected mesos.Address) {
	log.Warningf("ignoring message from non-leading master %s (expected %s)", from, expected)
}

// logf/warnf/errf let the rest of the package log without every file
// re-importing glog under its usual alias.
func logf(format string, args ...interface{})  { log.Infof(format, args...) }
func warnf(format string, args ...interface{}) { log.Warningf(format, args...) }
func errf(format string, args ...interface{})  { log.Errorf(format, args...) }
