package neighbors

import "testing"

func TestSymmetrizeAverages(t *testing.T) {
	g := NewGraph(3)
	g.SetEdge(0, 1, 1)
	// 1→0 absent: merged weight must be 0.5 on both sides.
	g.SetEdge(1, 2, 1)
	g.SetEdge(2, 1, 1)

	s := g.Symmetrize()
	if got := s.Edge(0, 1); got != 0.5 {
		t.Errorf("Edge(0,1): got %f, want 0.5", got)
	}
	if got := s.Edge(1, 0); got != 0.5 {
		t.Errorf("Edge(1,0): got %f, want 0.5", got)
	}
	if got := s.Edge(1, 2); got != 1 {
		t.Errorf("Edge(1,2): got %f, want 1", got)
	}
}

func TestSymmetrizeSymmetric(t *testing.T) {
	points := randomPoints(80, 2, 3)
	g := Connectivity(points, 5)
	for i := 0; i < g.Len(); i++ {
		for j := 0; j < g.Len(); j++ {
			if g.Edge(i, j) != g.Edge(j, i) {
				t.Fatalf("asymmetric edge (%d,%d): %f vs %f", i, j, g.Edge(i, j), g.Edge(j, i))
			}
		}
	}
}

func TestSymmetrizeIdempotent(t *testing.T) {
	points := randomPoints(60, 2, 11)
	once := KNNGraph(points, 4).Symmetrize()
	twice := once.Symmetrize()
	for i := 0; i < once.Len(); i++ {
		for j := 0; j < once.Len(); j++ {
			if once.Edge(i, j) != twice.Edge(i, j) {
				t.Fatalf("re-symmetrizing changed edge (%d,%d): %f vs %f",
					i, j, once.Edge(i, j), twice.Edge(i, j))
			}
		}
	}
}

func TestConnectivityWeights(t *testing.T) {
	points := randomPoints(50, 2, 21)
	g := Connectivity(points, 3)
	for i := 0; i < g.Len(); i++ {
		g.Neighbors(i, func(j int, w float64) {
			if w != 0.5 && w != 1 {
				t.Errorf("edge (%d,%d): weight %f not in {0.5, 1}", i, j, w)
			}
			if j == i {
				t.Errorf("self edge at %d", i)
			}
		})
	}
}

func TestKNNGraphDegree(t *testing.T) {
	points := randomPoints(40, 2, 5)
	k := 4
	g := KNNGraph(points, k)
	for i := 0; i < g.Len(); i++ {
		var deg int
		g.Neighbors(i, func(int, float64) { deg++ })
		if deg != k {
			t.Errorf("node %d: out-degree %d, want %d", i, deg, k)
		}
	}
}
