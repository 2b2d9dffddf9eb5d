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

// Command example-framework wires the scheduler package together into a
// runnable Mesos framework: it registers, launches one task on every offer
// with enough cpu and mem, declines the rest, and logs every status update.
// It exists to exercise the driver end-to-end, not as a framework anyone
// would actually deploy.
package main

import (
	"flag"
	"os"
	"os/user"

	"github.com/gogo/protobuf/proto"
	log "github.com/golang/glog"

	"github.com/mesosphere/pesos-go/mesos"
	"github.com/mesosphere/pesos-go/rpc"
	"github.com/mesosphere/pesos-go/scheduler"
)

func main() {
	master := flag.String("master", "127.0.0.1:5050", "Master address <ip:port>, or zk://host1:port1,host2:port2/chroot")
	name := flag.String("name", "example-framework", "Name this framework registers under")
	zkFrameworkPersist := flag.String("zk-framework-persist", "", "Zookeeper URI of the form zk://host1:port1,host2:port2/chroot/path, used to persist the framework ID across restarts")
	failoverTimeoutSeconds := flag.Float64("failover-timeout-seconds", 60*60*24*7, "Mesos framework failover timeout in seconds")
	cpusPerTask := flag.Float64("task-cpus", 0.1, "CPUs to request per launched task")
	memPerTask := flag.Float64("task-mem", 32, "Memory (MB) to request per launched task")
	taskCommand := flag.String("task-command", "echo hello from pesos-go", "Shell command each launched task runs")
	mesosAuthPrincipal := flag.String("mesos-authentication-principal", "", "Mesos authentication principal")
	mesosAuthSecretFile := flag.String("mesos-authentication-secret-file", "", "Mesos authentication secret file")
	flag.Parse()

	fwinfo := &mesos.FrameworkInfo{
		User:            proto.String(currentUser()),
		Name:            proto.String(*name),
		Hostname:        proto.String(hostname()),
		Checkpoint:      proto.Bool(true),
		FailoverTimeout: proto.Float64(*failoverTimeoutSeconds),
	}

	var cred *mesos.Credential
	if *mesosAuthPrincipal != "" {
		fwinfo.Principal = proto.String(*mesosAuthPrincipal)
		secret, err := os.ReadFile(*mesosAuthSecretFile)
		if err != nil {
			log.Fatalf("reading mesos authentication secret file: %v", err)
		}
		cred = &mesos.Credential{Principal: proto.String(*mesosAuthPrincipal), Secret: secret}
	}

	opts := []scheduler.Option{}
	if cred != nil {
		opts = append(opts, scheduler.WithCredential(cred))
	}
	if *zkFrameworkPersist != "" {
		opts = append(opts, scheduler.WithFrameworkIDPersistence(*zkFrameworkPersist))

		previous, err := rpc.GetPreviousFrameworkID(*zkFrameworkPersist)
		switch {
		case err == rpc.ErrNoFrameworkID:
			log.Info("no previously persisted framework id in zookeeper")
		case err != nil:
			log.Fatalf("could not retrieve previous framework id: %v", err)
		default:
			log.Infof("found stored framework id in zookeeper, attempting to reuse: %s", previous)
			fwinfo.ID = &mesos.FrameworkID{Value: proto.String(previous)}
		}
	}

	sched := &exampleScheduler{
		cpusPerTask: *cpusPerTask,
		memPerTask:  *memPerTask,
		command:     *taskCommand,
		zkURI:       *zkFrameworkPersist,
	}

	driver, err := scheduler.NewDriver(sched, fwinfo, *master, opts...)
	if err != nil {
		log.Fatalf("unable to create scheduler driver: %v", err)
	}
	sched.driver = driver

	status, err := driver.Run()
	if err != nil {
		log.Infof("framework stopped with status %s and error: %v", status, err)
		return
	}
	log.Infof("framework stopped with status %s", status)
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		log.Warningf("could not determine hostname, defaulting to empty: %v", err)
		return ""
	}
	return h
}

func currentUser() string {
	u, err := user.Current()
	if err != nil {
		log.Warningf("could not determine current user: %v", err)
		return ""
	}
	return u.Username
}
