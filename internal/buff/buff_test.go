package buff

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

func TestTracker_ActiveWindow(t *testing.T) {
	tr := NewTracker()
	start := time.Unix(1000, 0)

	tr.Activate(Speed, start)

	if !tr.IsActive(Speed, start.Add(4900*time.Millisecond)) {
		t.Error("buff should be active at T+4.9s")
	}
	if !tr.IsActive(Speed, start.Add(5*time.Second)) {
		t.Error("buff should be active at exactly T+5s")
	}
	if tr.IsActive(Speed, start.Add(5100*time.Millisecond)) {
		t.Error("buff should be inactive at T+5.1s")
	}
	if tr.IsActive(Shield, start) {
		t.Error("untracked buff should be inactive")
	}
}

func TestTracker_RefreshExtends(t *testing.T) {
	tr := NewTracker()
	start := time.Unix(1000, 0)

	tr.Activate(TripleShot, start)
	tr.Activate(TripleShot, start.Add(3*time.Second))

	if !tr.IsActive(TripleShot, start.Add(7*time.Second)) {
		t.Error("refreshed buff should still be active at T+7s")
	}
	if len(tr.activated) != 1 {
		t.Errorf("tracked = %d, want 1", len(tr.activated))
	}
}

func TestTracker_Sweep(t *testing.T) {
	tr := NewTracker()
	start := time.Unix(1000, 0)

	tr.Activate(Speed, start)
	tr.Activate(Shield, start.Add(3*time.Second))
	tr.Sweep(start.Add(6 * time.Second))

	if len(tr.activated) != 1 {
		t.Fatalf("tracked after sweep = %d, want 1", len(tr.activated))
	}
	active := tr.Active(start.Add(6 * time.Second))
	if len(active) != 1 || active[0] != Shield {
		t.Errorf("Active = %v, want [shield]", active)
	}
}

func TestTracker_Remaining(t *testing.T) {
	tr := NewTracker()
	start := time.Unix(1000, 0)
	tr.Activate(SuperMode, start)

	if got := tr.Remaining(SuperMode, start.Add(2*time.Second)); got != 3*time.Second {
		t.Errorf("Remaining = %v, want 3s", got)
	}
	if got := tr.Remaining(SuperMode, start.Add(6*time.Second)); got != 0 {
		t.Errorf("Remaining after expiry = %v, want 0", got)
	}
}

func TestKindString(t *testing.T) {
	for k := Kind(0); k < numKinds; k++ {
		if k.String() == "unknown" {
			t.Errorf("kind %d has no name", k)
		}
	}
	if Kind(99).String() != "unknown" {
		t.Error("out of range kind should be unknown")
	}
}

func TestTracker_ActiveIffWithinDuration(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tr := NewTracker()
		start := time.Unix(0, 0)
		k := Kind(rapid.IntRange(0, int(numKinds)-1).Draw(t, "kind"))
		offset := time.Duration(rapid.Int64Range(0, int64(20*time.Second)).Draw(t, "offset"))

		tr.Activate(k, start)
		got := tr.IsActive(k, start.Add(offset))
		want := offset <= Duration
		if got != want {
			t.Fatalf("IsActive at +%v = %v, want %v", offset, got, want)
		}
	})
}
