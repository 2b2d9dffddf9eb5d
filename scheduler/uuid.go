package scheduler

import (
	"crypto/rand"

	log "github.com/golang/glog"
)

// newUUID returns 16 random bytes for a StatusUpdate's uuid field. Every
// status update, master-originated or locally synthesized, needs one so the
// driver's acknowledgement bookkeeping can address it uniquely.
func newUUID() []byte {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand.Read on a real OS does not fail; if it somehow does,
		// degrade to a zero uuid rather than panicking mid-launch.
		log.Errorf("scheduler: failed to generate uuid: %v", err)
	}
	return b
}
