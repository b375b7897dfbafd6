package neighbors

// Graph is a weighted adjacency structure over point indexes. It is
// sparse: each node stores only its nonzero edges.
type Graph struct {
	n   int
	adj []map[int]float64
}

// NewGraph returns an empty graph over n nodes.
func NewGraph(n int) *Graph {
	adj := make([]map[int]float64, n)
	for i := range adj {
		adj[i] = make(map[int]float64)
	}
	return &Graph{n: n, adj: adj}
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return g.n }

// Edge returns the weight of the directed edge i→j, or 0 when absent.
func (g *Graph) Edge(i, j int) float64 { return g.adj[i][j] }

// SetEdge sets the weight of the directed edge i→j. A zero weight
// removes the edge.
func (g *Graph) SetEdge(i, j int, w float64) {
	if w == 0 {
		delete(g.adj[i], j)
		return
	}
	g.adj[i][j] = w
}

// Neighbors calls fn for each edge leaving node i.
func (g *Graph) Neighbors(i int, fn func(j int, w float64)) {
	for j, w := range g.adj[i] {
		fn(j, w)
	}
}

// Symmetrize returns a new graph with every edge pair averaged:
// out(i,j) = out(j,i) = 0.5 * (in(i,j) + in(j,i)). Applying it to an
// already-symmetric graph is a no-op (the operation is idempotent).
func (g *Graph) Symmetrize() *Graph {
	out := NewGraph(g.n)
	for i := range g.adj {
		for j, w := range g.adj[i] {
			avg := 0.5 * (w + g.adj[j][i])
			out.SetEdge(i, j, avg)
			out.SetEdge(j, i, avg)
		}
	}
	return out
}

// KNNGraph builds the directed k-nearest-neighbor graph of the point
// set: edge i→j with weight 1 when j is among the k nearest neighbors
// of i (excluding i itself).
func KNNGraph(points [][]float64, k int) *Graph {
	n := len(points)
	g := NewGraph(n)
	if n == 0 || k <= 0 {
		return g
	}
	tree := NewTree(points, 0)
	for i, p := range points {
		idx, _ := tree.KNN(p, k+1)
		added := 0
		for _, j := range idx {
			if j == i {
				continue
			}
			g.SetEdge(i, j, 1)
			if added++; added == k {
				break
			}
		}
	}
	return g
}

// Connectivity builds the symmetrized kNN connectivity graph used to
// constrain hierarchical clustering to local neighborhoods. Edge weights
// end up in {0.5, 1}: 1 where the neighbor relation is mutual, 0.5 where
// only one direction holds.
func Connectivity(points [][]float64, k int) *Graph {
	return KNNGraph(points, k).Symmetrize()
}
