package cluster

import (
	"math/rand"
	"testing"
)

// Compile-time capability checks: the grid driver relies on these.
var (
	_ LabelClusterer = (*MiniBatchKMeans)(nil)
	_ LabelClusterer = (*AffinityPropagation)(nil)
	_ LabelClusterer = (*MeanShift)(nil)
	_ LabelClusterer = (*Spectral)(nil)
	_ LabelClusterer = (*Agglomerative)(nil)
	_ LabelClusterer = (*DBSCAN)(nil)
	_ LabelClusterer = (*OPTICS)(nil)
	_ LabelClusterer = (*Birch)(nil)
	_ Predictor      = (*GaussianMixture)(nil)
)

// twoBlobs generates two tight gaussian blobs of size n each, centered
// at (0,0) and (10,10). Points [0,n) belong to the first blob.
func twoBlobs(n int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	points := make([][]float64, 0, 2*n)
	for _, c := range [][2]float64{{0, 0}, {10, 10}} {
		for i := 0; i < n; i++ {
			points = append(points, []float64{
				c[0] + rng.NormFloat64()*0.1,
				c[1] + rng.NormFloat64()*0.1,
			})
		}
	}
	return points
}

// checkBlobSeparation asserts that the first n and second n points form
// two distinct uniform label groups, ignoring which concrete label
// either group received.
func checkBlobSeparation(t *testing.T, labels []int, n int) {
	t.Helper()
	if len(labels) != 2*n {
		t.Fatalf("got %d labels, want %d", len(labels), 2*n)
	}
	first, second := labels[0], labels[n]
	if first == second {
		t.Fatalf("blobs share label %d", first)
	}
	for i := 0; i < n; i++ {
		if labels[i] != first {
			t.Errorf("point %d: got label %d, want %d", i, labels[i], first)
		}
		if labels[n+i] != second {
			t.Errorf("point %d: got label %d, want %d", n+i, labels[n+i], second)
		}
	}
}

func TestDistanceFuncs(t *testing.T) {
	a, b := []float64{0, 0}, []float64{3, 4}
	if got := Euclidean(a, b); got != 5 {
		t.Errorf("Euclidean: got %f, want 5", got)
	}
	if got := Manhattan(a, b); got != 7 {
		t.Errorf("Manhattan: got %f, want 7", got)
	}
	if got := SquaredEuclidean(a, b); got != 25 {
		t.Errorf("SquaredEuclidean: got %f, want 25", got)
	}
}
