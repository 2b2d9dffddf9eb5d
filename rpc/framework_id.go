/**
 * Licensed to the Apache Software Foundation (ASF) under one
 * or more contributor license agreements.  See the NOTICE file
 * distributed with this work for additional information
 * regarding copyright ownership.  The ASF licenses this file
 * to you under the Apache License, Version 2.0 (the
 * "License"); you may not use this file except in compliance
 * with the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package rpc persists a framework's identity across failovers: the
// FrameworkID a master assigns on first registration, stashed in ZooKeeper
// so a restarted scheduler can reregister as the same framework instead of
// registering as a new one.
package rpc

import (
	"errors"
	"strings"
	"time"

	log "github.com/golang/glog"
	"github.com/samuel/go-zookeeper/zk"
)

// ErrNoFrameworkID is returned by GetPreviousFrameworkID when the znode is
// absent, mirroring zk.ErrNoNode the way the sibling main's flow expects to
// distinguish "never registered before" from a real ZooKeeper failure.
var ErrNoFrameworkID = errors.New("rpc: no previously persisted framework id")

const (
	zkWorldACL    = zk.PermAll
	retryAttempts = 5
)

// ParseZKURI splits a "zk://host1:port1,host2:port2/chroot/path" persistence
// URI into the server list zk.Connect wants and the znode path framework-ID
// state is kept under.
func ParseZKURI(uri string) (servers []string, path string, err error) {
	const prefix = "zk://"
	if !strings.HasPrefix(uri, prefix) {
		return nil, "", errors.New("rpc: zk uri missing zk:// prefix")
	}
	rest := uri[len(prefix):]
	slash := strings.Index(rest, "/")
	if slash < 0 {
		return nil, "", errors.New("rpc: zk uri missing znode path")
	}
	return strings.Split(rest[:slash], ","), rest[slash:], nil
}

// dial connects to the ensemble and retries transient failures with the
// same doubling backoff the teacher uses for its etcd member-configuration
// HTTP calls, applied here to ZK session establishment instead.
func dial(servers []string) (*zk.Conn, error) {
	backoff := 1
	var lastErr error
	for retries := 0; retries < retryAttempts; retries++ {
		conn, _, err := zk.Connect(servers, 10*time.Second)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		log.Warningf("rpc: failed to connect to zookeeper %v: %v. "+
			"Backing off for %d seconds and retrying.", servers, err, backoff)
		time.Sleep(time.Duration(backoff) * time.Second)
		backoff = backoff << 1
	}
	return nil, lastErr
}

func ensurePath(conn *zk.Conn, path string) error {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	cur := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		cur += "/" + p
		exists, _, err := conn.Exists(cur)
		if err != nil {
			return err
		}
		if !exists {
			_, err := conn.Create(cur, nil, 0, zk.WorldACL(zkWorldACL))
			if err != nil && err != zk.ErrNodeExists {
				return err
			}
		}
	}
	return nil
}

// PersistFrameworkID writes id to the given ZooKeeper path, creating any
// missing parent znodes along the way. The scheduler calls it each time a
// FrameworkRegistered message assigns a FrameworkID.
func PersistFrameworkID(zkURI, id string) error {
	servers, path, err := ParseZKURI(zkURI)
	if err != nil {
		return err
	}
	conn, err := dial(servers)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := ensurePath(conn, parentPath(path)); err != nil {
		return err
	}

	backoff := 1
	var lastErr error
	for retries := 0; retries < retryAttempts; retries++ {
		exists, stat, err := conn.Exists(path)
		if err != nil {
			lastErr = err
		} else if exists {
			_, err = conn.Set(path, []byte(id), stat.Version)
			if err == nil {
				log.Infof("rpc: persisted framework id %q to %s", id, path)
				return nil
			}
			lastErr = err
		} else {
			_, err = conn.Create(path, []byte(id), 0, zk.WorldACL(zkWorldACL))
			if err == nil {
				log.Infof("rpc: persisted framework id %q to %s", id, path)
				return nil
			}
			lastErr = err
		}
		log.Warningf("rpc: failed to persist framework id: %v. "+
			"Backing off for %d seconds and retrying.", lastErr, backoff)
		time.Sleep(time.Duration(backoff) * time.Second)
		backoff = backoff << 1
	}
	return lastErr
}

// GetPreviousFrameworkID reads back a framework ID persisted by
// PersistFrameworkID, returning ErrNoFrameworkID if nothing has been
// persisted yet (the znode doesn't exist), matching the sibling main's
// zk.ErrNoNode handling around its own rpc.GetPreviousFrameworkID call.
func GetPreviousFrameworkID(zkURI string) (string, error) {
	servers, path, err := ParseZKURI(zkURI)
	if err != nil {
		return "", err
	}
	conn, err := dial(servers)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	data, _, err := conn.Get(path)
	if err == zk.ErrNoNode {
		return "", ErrNoFrameworkID
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ClearZKState removes the persisted framework ID, used when the master
// reports this framework as permanently gone ("Completed framework attempted
// to re-register") and the next run should register fresh.
func ClearZKState(zkURI string) error {
	servers, path, err := ParseZKURI(zkURI)
	if err != nil {
		return err
	}
	conn, err := dial(servers)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, stat, err := conn.Exists(path)
	if err != nil {
		return err
	}
	if stat == nil || stat.Mtime == 0 {
		return nil
	}
	if err := conn.Delete(path, -1); err != nil && err != zk.ErrNoNode {
		return err
	}
	log.Infof("rpc: cleared persisted framework id at %s", path)
	return nil
}

func parentPath(path string) string {
	i := strings.LastIndex(path, "/")
	if i <= 0 {
		return "/"
	}
	return path[:i]
}
