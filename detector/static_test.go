package detector

import (
	"context"
	"testing"
	"time"
)

func TestNewStaticDetectorParsesHostPort(t *testing.T) {
	d, err := NewStaticDetector("10.0.0.5:5050")
	if err != nil {
		t.Fatalf("NewStaticDetector: %v", err)
	}
	if got := d.master.GetHostname(); got != "10.0.0.5" {
		t.Errorf("Hostname = %q, want %q", got, "10.0.0.5")
	}
	if got := d.master.GetPort(); got != 5050 {
		t.Errorf("Port = %d, want 5050", got)
	}
}

func TestNewStaticDetectorMalformed(t *testing.T) {
	cases := []string{"noport", "host:notanumber"}
	for _, hp := range cases {
		if _, err := NewStaticDetector(hp); err == nil {
			t.Errorf("NewStaticDetector(%q): expected error, got nil", hp)
		}
	}
}

func TestStaticDetectorDetectOnceThenBlocks(t *testing.T) {
	d, err := NewStaticDetector("10.0.0.5:5050")
	if err != nil {
		t.Fatalf("NewStaticDetector: %v", err)
	}

	future, err := d.Detect(context.Background(), nil)
	if err != nil {
		t.Fatalf("first Detect: %v", err)
	}
	if future.MasterInfo == nil {
		t.Fatal("first Detect should yield the fixed master")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = d.Detect(ctx, future.MasterInfo)
	if err == nil {
		t.Error("second Detect should block until ctx cancellation and then return an error")
	}
}

func TestFromURIDispatchesOnScheme(t *testing.T) {
	det, err := FromURI("10.0.0.5:5050")
	if err != nil {
		t.Fatalf("FromURI direct address: %v", err)
	}
	if _, ok := det.(*StaticDetector); !ok {
		t.Errorf("FromURI(host:port) = %T, want *StaticDetector", det)
	}
}
