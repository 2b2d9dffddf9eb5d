package detector

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	log "github.com/golang/glog"
	"github.com/samuel/go-zookeeper/zk"

	"github.com/mesosphere/pesos-go/mesos"
)

const (
	leaderPrefix  = "info_"
	connectTimeout = 10 * time.Second
)

// ZKDetector watches a ZooKeeper ensemble for the lowest-sequence
// "info_NNNNNNNNNN" child of the election path, which Mesos convention
// reserves for the current elected master, the same layout the teacher's
// own ZkConnect/ZkServers/ZkChroot fields assume (scheduler/scheduler.go).
type ZKDetector struct {
	servers []string
	path    string

	conn *zk.Conn
}

// NewZKDetector parses a "zk://host1:port1,host2:port2/path" master URI and
// opens a connection to the ensemble. The path component is the election
// root, conventionally "/mesos".
func NewZKDetector(uri string) (*ZKDetector, error) {
	servers, path, err := ParseZKURI(uri)
	if err != nil {
		return nil, err
	}
	conn, _, err := zk.Connect(servers, connectTimeout)
	if err != nil {
		return nil, fmt.Errorf("detector: connecting to zookeeper %v: %w", servers, err)
	}
	return &ZKDetector{servers: servers, path: path, conn: conn}, nil
}

// ParseZKURI splits a "zk://host1:port1,host2:port2/chroot/path" master URI
// into the server list zk.Connect wants and the election path, mirroring
// the sibling cd9f3d0c main's rpc.ParseZKURI.
func ParseZKURI(uri string) (servers []string, path string, err error) {
	const prefix = "zk://"
	if !strings.HasPrefix(uri, prefix) {
		return nil, "", fmt.Errorf("detector: master uri %q missing zk:// prefix", uri)
	}
	rest := uri[len(prefix):]
	slash := strings.Index(rest, "/")
	if slash < 0 {
		return nil, "", fmt.Errorf("detector: master uri %q missing election path", uri)
	}
	hosts, path := rest[:slash], rest[slash:]
	if hosts == "" || path == "" || path == "/" {
		return nil, "", fmt.Errorf("detector: master uri %q has empty host list or path", uri)
	}
	return strings.Split(hosts, ","), path, nil
}

// zkMasterInfo mirrors the subset of Mesos's JSON-encoded MasterInfo znode
// payload this driver actually consumes.
type zkMasterInfo struct {
	ID       string `json:"id"`
	PID      string `json:"pid"`
	Hostname string `json:"hostname"`
	Port     uint32 `json:"port"`
}

// Detect blocks until the leader znode's identity changes from previous,
// ctx is cancelled, or a non-retryable ZooKeeper error occurs.
func (d *ZKDetector) Detect(ctx context.Context, previous *mesos.MasterInfo) (Future, error) {
	for {
		children, _, events, err := d.conn.ChildrenW(d.path)
		if err != nil {
			return Future{}, fmt.Errorf("detector: listing %s: %w", d.path, err)
		}

		leader, ok := lowestSequenceChild(children)
		if !ok {
			log.Warningf("detector: no leader znode under %s yet", d.path)
			if !waitForChange(ctx, events) {
				return Future{}, ctx.Err()
			}
			continue
		}

		mi, err := d.readMasterInfo(leader)
		if err != nil {
			return Future{}, err
		}
		if mastersEqual(mi, previous) {
			if !waitForChange(ctx, events) {
				return Future{}, ctx.Err()
			}
			continue
		}
		return Future{MasterInfo: mi}, nil
	}
}

func (d *ZKDetector) readMasterInfo(child string) (*mesos.MasterInfo, error) {
	data, _, err := d.conn.Get(d.path + "/" + child)
	if err != nil {
		return nil, fmt.Errorf("detector: reading leader znode %s: %w", child, err)
	}
	var parsed zkMasterInfo
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("detector: decoding leader znode %s: %w", child, err)
	}
	return &mesos.MasterInfo{
		ID:       strPtr(parsed.ID),
		PID:      strPtr(parsed.PID),
		Hostname: strPtr(parsed.Hostname),
		Port:     u32Ptr(parsed.Port),
	}, nil
}

// lowestSequenceChild picks the info_NNNNNNNNNN child with the smallest
// sequence number, Mesos's own convention for "current leader."
func lowestSequenceChild(children []string) (string, bool) {
	var candidates []string
	for _, c := range children {
		if strings.HasPrefix(c, leaderPrefix) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.Slice(candidates, func(i, j int) bool {
		si, _ := strconv.Atoi(strings.TrimPrefix(candidates[i], leaderPrefix))
		sj, _ := strconv.Atoi(strings.TrimPrefix(candidates[j], leaderPrefix))
		return si < sj
	})
	return candidates[0], true
}

func mastersEqual(a, b *mesos.MasterInfo) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.GetHostname() == b.GetHostname() && a.GetPort() == b.GetPort()
}

func waitForChange(ctx context.Context, events <-chan zk.Event) bool {
	select {
	case <-events:
		return true
	case <-ctx.Done():
		return false
	}
}

// Close releases the ZooKeeper connection.
func (d *ZKDetector) Close() {
	d.conn.Close()
}
