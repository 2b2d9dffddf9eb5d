package detector

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mesosphere/pesos-go/mesos"
)

// StaticDetector reports a single fixed master address and never changes
// its mind, the non-HA case spec.md's §6 allows as an alternative to
// ZooKeeper-backed detection.
type StaticDetector struct {
	master *mesos.MasterInfo
	done   bool
}

// NewStaticDetector parses a bare "host:port" master address.
func NewStaticDetector(hostport string) (*StaticDetector, error) {
	host, portStr, ok := cut(hostport, ":")
	if !ok {
		return nil, fmt.Errorf("detector: malformed static master address %q, want host:port", hostport)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("detector: malformed static master address %q: %w", hostport, err)
	}
	return &StaticDetector{
		master: &mesos.MasterInfo{
			ID:       strPtr(fmt.Sprintf("static-%s-%d", host, port)),
			Hostname: strPtr(host),
			Port:     u32Ptr(uint32(port)),
		},
	}, nil
}

// Detect yields the fixed master exactly once; every subsequent call blocks
// until ctx is cancelled, since a static address never changes.
func (d *StaticDetector) Detect(ctx context.Context, previous *mesos.MasterInfo) (Future, error) {
	if !d.done {
		d.done = true
		return Future{MasterInfo: d.master}, nil
	}
	<-ctx.Done()
	return Future{}, ctx.Err()
}

func cut(s, sep string) (before, after string, found bool) {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}

func strPtr(s string) *string { return &s }
func u32Ptr(v uint32) *uint32 { return &v }
