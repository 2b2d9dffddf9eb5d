package detector

import (
	"testing"

	"github.com/mesosphere/pesos-go/mesos"
)

func TestParseZKURI(t *testing.T) {
	servers, path, err := ParseZKURI("zk://host1:2181,host2:2181/mesos")
	if err != nil {
		t.Fatalf("ParseZKURI: %v", err)
	}
	wantServers := []string{"host1:2181", "host2:2181"}
	if len(servers) != len(wantServers) {
		t.Fatalf("servers = %v, want %v", servers, wantServers)
	}
	for i := range servers {
		if servers[i] != wantServers[i] {
			t.Errorf("servers[%d] = %q, want %q", i, servers[i], wantServers[i])
		}
	}
	if path != "/mesos" {
		t.Errorf("path = %q, want %q", path, "/mesos")
	}
}

func TestParseZKURIMalformed(t *testing.T) {
	cases := []string{
		"host1:2181/mesos",       // missing zk:// prefix
		"zk://host1:2181",        // missing path
		"zk:///mesos",            // empty host list
		"zk://host1:2181/",       // empty path
	}
	for _, uri := range cases {
		if _, _, err := ParseZKURI(uri); err == nil {
			t.Errorf("ParseZKURI(%q): expected error, got nil", uri)
		}
	}
}

func TestLowestSequenceChild(t *testing.T) {
	children := []string{"info_0000000003", "info_0000000001", "info_0000000002", "junk"}
	got, ok := lowestSequenceChild(children)
	if !ok {
		t.Fatal("expected a leader to be found")
	}
	if got != "info_0000000001" {
		t.Errorf("lowestSequenceChild = %q, want %q", got, "info_0000000001")
	}
}

func TestLowestSequenceChildNoneFound(t *testing.T) {
	_, ok := lowestSequenceChild([]string{"not-a-leader", "also-not"})
	if ok {
		t.Error("expected no leader znode to be found")
	}
}

func TestMastersEqual(t *testing.T) {
	a := &mesos.MasterInfo{Hostname: strPtr("m1"), Port: u32Ptr(5050)}
	b := &mesos.MasterInfo{Hostname: strPtr("m1"), Port: u32Ptr(5050)}
	c := &mesos.MasterInfo{Hostname: strPtr("m2"), Port: u32Ptr(5050)}

	if !mastersEqual(a, b) {
		t.Error("identical masters should compare equal")
	}
	if mastersEqual(a, c) {
		t.Error("different hostnames should not compare equal")
	}
	if mastersEqual(nil, a) || mastersEqual(a, nil) {
		t.Error("a nil master should only equal another nil master")
	}
	if !mastersEqual(nil, nil) {
		t.Error("nil should equal nil")
	}
}
