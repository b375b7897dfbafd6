package neighbors

import "testing"

func TestEstimateBandwidthPositive(t *testing.T) {
	points := randomPoints(200, 2, 13)
	bw := EstimateBandwidth(points, 0.3)
	if bw <= 0 {
		t.Fatalf("bandwidth: got %f, want > 0", bw)
	}
}

func TestEstimateBandwidthMonotoneInQuantile(t *testing.T) {
	points := randomPoints(150, 2, 17)
	small := EstimateBandwidth(points, 0.1)
	large := EstimateBandwidth(points, 0.9)
	if small > large {
		t.Errorf("quantile 0.1 bandwidth %f exceeds quantile 0.9 bandwidth %f", small, large)
	}
}

func TestEstimateBandwidthDegenerate(t *testing.T) {
	if bw := EstimateBandwidth(nil, 0.3); bw != 0 {
		t.Errorf("empty input: got %f, want 0", bw)
	}
	if bw := EstimateBandwidth([][]float64{{1, 2}}, 0.3); bw != 0 {
		t.Errorf("single point: got %f, want 0", bw)
	}
}

func TestKthDistances(t *testing.T) {
	points := [][]float64{{0, 0}, {1, 0}, {3, 0}}
	got := KthDistances(points, 1)
	want := []float64{1, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("KthDistances[%d]: got %f, want %f", i, got[i], want[i])
		}
	}

	got = KthDistances(points, 2)
	want = []float64{3, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("k=2 KthDistances[%d]: got %f, want %f", i, got[i], want[i])
		}
	}
}
