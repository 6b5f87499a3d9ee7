package ports

import "testing"

func TestRequestPortExclusivity(t *testing.T) {
	r := NewRegistry()

	h1 := r.RequestPort(0x20)
	if h1 == nil {
		t.Fatal("expected first request to succeed")
	}
	if h2 := r.RequestPort(0x20); h2 != nil {
		t.Fatal("expected second request for the same port to fail")
	}
	if !r.IsInUse(0x20) {
		t.Fatal("expected port to be reported in use")
	}

	r.ReleasePort(h1)
	if r.IsInUse(0x20) {
		t.Fatal("expected port to be free after release")
	}
	if h3 := r.RequestPort(0x20); h3 == nil {
		t.Fatal("expected request to succeed again after release")
	}
}

func TestRequestPortDistinctPorts(t *testing.T) {
	r := NewRegistry()
	h1 := r.RequestPort(0x20)
	h2 := r.RequestPort(0x21)
	if h1 == nil || h2 == nil {
		t.Fatal("expected both distinct ports to be claimable")
	}
	if h1.Port() != 0x20 || h2.Port() != 0x21 {
		t.Fatal("handle did not remember its port number")
	}
}

func TestRegistryFull(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 64; i++ {
		if r.RequestPort(uint16(i)) == nil {
			t.Fatalf("expected port %d to be claimable (slot %d/64)", i, i)
		}
	}
	if h := r.RequestPort(64); h != nil {
		t.Fatal("expected registry to be full")
	}
}

func TestReleaseNilIsNoOp(t *testing.T) {
	r := NewRegistry()
	r.ReleasePort(nil) // must not panic
}

func TestDefaultRegistryIsSingleton(t *testing.T) {
	if Default() != Default() {
		t.Fatal("Default() must return the same registry every time")
	}
}
