package cluster

import "testing"

func TestBirchSeparatesBlobs(t *testing.T) {
	points := twoBlobs(40, 18)
	b := NewBirch(DefaultBirchConfig(2))
	if err := b.Fit(points); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	checkBlobSeparation(t, b.Labels(), 40)
	if sub := b.Subclusters(); sub < 2 || sub >= 80 {
		t.Errorf("subclusters: got %d, want condensed into [2, 80)", sub)
	}
}

func TestBirchThresholdControlsCondensation(t *testing.T) {
	points := twoBlobs(30, 19)
	coarse := NewBirch(BirchConfig{Threshold: 2.0, NClusters: 2})
	fine := NewBirch(BirchConfig{Threshold: 0.05, NClusters: 2})
	if err := coarse.Fit(points); err != nil {
		t.Fatalf("coarse Fit: %v", err)
	}
	if err := fine.Fit(points); err != nil {
		t.Fatalf("fine Fit: %v", err)
	}
	if coarse.Subclusters() > fine.Subclusters() {
		t.Errorf("coarse threshold built %d subclusters, fine built %d; want coarse <= fine",
			coarse.Subclusters(), fine.Subclusters())
	}
}

func TestBirchValidation(t *testing.T) {
	points := twoBlobs(5, 20)
	if err := NewBirch(BirchConfig{Threshold: -1, NClusters: 2}).Fit(points); err == nil {
		t.Error("expected error for negative threshold")
	}
	if err := NewBirch(BirchConfig{Threshold: 0.5, NClusters: 0}).Fit(points); err == nil {
		t.Error("expected error for NClusters=0")
	}
}
