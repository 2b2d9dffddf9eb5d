package mesos

import (
	"fmt"
	"strconv"
	"strings"
)

// Address identifies an addressable libprocess endpoint: a process name
// hosted at host:port, formatted as "name@host:port" on the wire (mirroring
// compactor's PID). The master, a framework's scheduler process, and any
// transport peer are all named this way.
type Address struct {
	ID   string
	Host string
	Port int
}

// String renders the wire form "id@host:port", matching the PID string form
// the teacher logs throughout (e.g. "Ignoring message from non-leading
// master %s" % from_pid).
func (a Address) String() string {
	return fmt.Sprintf("%s@%s:%d", a.ID, a.Host, a.Port)
}

// HostPort renders "host:port" alone, the form a MasterInfo or a direct
// master URI carries.
func (a Address) HostPort() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// Empty reports whether this is the zero Address.
func (a Address) Empty() bool {
	return a.Host == "" && a.Port == 0 && a.ID == ""
}

// ParseAddress parses the "id@host:port" wire form produced by String.
func ParseAddress(s string) (Address, error) {
	at := strings.LastIndex(s, "@")
	if at < 0 {
		return Address{}, fmt.Errorf("mesos: malformed address %q: missing '@'", s)
	}
	id, hostport := s[:at], s[at+1:]
	host, portStr, err := splitHostPort(hostport)
	if err != nil {
		return Address{}, fmt.Errorf("mesos: malformed address %q: %w", s, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return Address{}, fmt.Errorf("mesos: malformed address %q: bad port: %w", s, err)
	}
	return Address{ID: id, Host: host, Port: port}, nil
}

func splitHostPort(hostport string) (string, string, error) {
	i := strings.LastIndex(hostport, ":")
	if i < 0 {
		return "", "", fmt.Errorf("missing ':'")
	}
	return hostport[:i], hostport[i+1:], nil
}

// MasterInfoAddress builds the Address a MasterInfo is reachable at,
// matching the "master@host:port" PID the original constructs from
// detected MasterInfo messages.
func MasterInfoAddress(mi *MasterInfo) Address {
	if mi == nil {
		return Address{}
	}
	return Address{ID: "master", Host: mi.GetHostname(), Port: int(mi.GetPort())}
}
