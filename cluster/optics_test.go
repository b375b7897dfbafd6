package cluster

import "testing"

func TestOPTICSSeparatesBlobs(t *testing.T) {
	points := twoBlobs(30, 14)
	op := NewOPTICS(OPTICSConfig{MinSamples: 5, Xi: 0.05, MinClusterSize: 5})
	if err := op.Fit(points); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	labels := op.Labels()

	distinct := make(map[int]bool)
	for _, l := range labels {
		if l != Noise {
			distinct[l] = true
		}
	}
	if len(distinct) < 2 {
		t.Fatalf("got %d clusters, want >= 2 (labels %v)", len(distinct), labels)
	}

	// No extracted cluster may span both blobs.
	for l := range distinct {
		var inFirst, inSecond bool
		for i, li := range labels {
			if li != l {
				continue
			}
			if i < 30 {
				inFirst = true
			} else {
				inSecond = true
			}
		}
		if inFirst && inSecond {
			t.Errorf("cluster %d spans both blobs", l)
		}
	}
}

func TestOPTICSOrderingCoversAllPoints(t *testing.T) {
	points := twoBlobs(20, 15)
	op := NewOPTICS(OPTICSConfig{MinSamples: 3, Xi: 0.05})
	if err := op.Fit(points); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	seen := make(map[int]bool)
	for _, i := range op.Ordering() {
		seen[i] = true
	}
	if len(seen) != 40 {
		t.Errorf("ordering covers %d points, want 40", len(seen))
	}
	if got := len(op.Reachability()); got != 40 {
		t.Errorf("reachability length: got %d, want 40", got)
	}
}

func TestOPTICSFractionalMinClusterSize(t *testing.T) {
	points := twoBlobs(25, 16)
	// 0.2 of 50 points = 10; each 25-point blob clears it.
	op := NewOPTICS(OPTICSConfig{MinSamples: 5, Xi: 0.05, MinClusterSize: 0.2})
	if err := op.Fit(points); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	distinct := make(map[int]bool)
	for _, l := range op.Labels() {
		if l != Noise {
			distinct[l] = true
		}
	}
	if len(distinct) < 2 {
		t.Errorf("got %d clusters, want >= 2", len(distinct))
	}
}

func TestOPTICSValidation(t *testing.T) {
	points := twoBlobs(5, 17)
	if err := NewOPTICS(OPTICSConfig{MinSamples: 1, Xi: 0.05}).Fit(points); err == nil {
		t.Error("expected error for MinSamples=1")
	}
	if err := NewOPTICS(OPTICSConfig{MinSamples: 3, Xi: 0}).Fit(points); err == nil {
		t.Error("expected error for Xi=0")
	}
	if err := NewOPTICS(OPTICSConfig{MinSamples: 3, Xi: 1}).Fit(points); err == nil {
		t.Error("expected error for Xi=1")
	}
}
