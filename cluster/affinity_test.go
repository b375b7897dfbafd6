package cluster

import "testing"

func TestAffinityPropagationTwoClusters(t *testing.T) {
	points := [][]float64{
		{0, 0}, {0.1, 0}, {0, 0.1},
		{10, 10}, {10.1, 10}, {10, 10.1},
	}
	ap := NewAffinityPropagation(AffinityPropagationConfig{Damping: 0.9, Preference: -50})
	if err := ap.Fit(points); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	labels := ap.Labels()
	checkBlobSeparation(t, labels, 3)
}

func TestAffinityPropagationValidation(t *testing.T) {
	points := [][]float64{{0, 0}, {1, 1}}
	for _, damping := range []float64{0.4, 1.0, 1.5} {
		ap := NewAffinityPropagation(AffinityPropagationConfig{Damping: damping, Preference: -10})
		if err := ap.Fit(points); err == nil {
			t.Errorf("expected error for damping %f", damping)
		}
	}
}

func TestAffinityPropagationEmpty(t *testing.T) {
	ap := NewAffinityPropagation(DefaultAffinityPropagationConfig())
	if err := ap.Fit(nil); err != nil {
		t.Fatalf("Fit on empty input: %v", err)
	}
	if got := len(ap.Labels()); got != 0 {
		t.Errorf("labels: got %d, want 0", got)
	}
}
