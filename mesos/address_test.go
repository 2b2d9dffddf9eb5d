package mesos

import "testing"

func TestAddressStringRoundTrip(t *testing.T) {
	cases := []Address{
		{ID: "master", Host: "10.0.0.1", Port: 5050},
		{ID: "scheduler(1)", Host: "localhost", Port: 0},
	}
	for _, want := range cases {
		got, err := ParseAddress(want.String())
		if err != nil {
			t.Fatalf("ParseAddress(%q): %v", want.String(), err)
		}
		if got != want {
			t.Errorf("round trip %q: got %+v, want %+v", want.String(), got, want)
		}
	}
}

func TestParseAddressMalformed(t *testing.T) {
	cases := []string{
		"no-at-sign:5050",
		"master@no-port",
		"master@host:notaport",
	}
	for _, s := range cases {
		if _, err := ParseAddress(s); err == nil {
			t.Errorf("ParseAddress(%q): expected error, got nil", s)
		}
	}
}

func TestAddressEmpty(t *testing.T) {
	if !(Address{}).Empty() {
		t.Error("zero Address should be Empty")
	}
	if (Address{Host: "h"}).Empty() {
		t.Error("Address with Host set should not be Empty")
	}
}

func TestMasterInfoAddress(t *testing.T) {
	if got := MasterInfoAddress(nil); !got.Empty() {
		t.Errorf("MasterInfoAddress(nil) = %+v, want empty", got)
	}

	port := uint32(5050)
	host := "master.example.com"
	mi := &MasterInfo{Hostname: &host, Port: &port}
	got := MasterInfoAddress(mi)
	want := Address{ID: "master", Host: host, Port: 5050}
	if got != want {
		t.Errorf("MasterInfoAddress = %+v, want %+v", got, want)
	}
}
