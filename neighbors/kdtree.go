// Package neighbors provides the spatial queries the clustering estimators
// share: k-nearest-neighbor and radius searches over 2D (or higher) point
// sets, kernel bandwidth estimation, and symmetrized kNN connectivity
// graphs for connectivity-constrained clustering.
package neighbors

import (
	"container/heap"
	"math"
	"sort"
)

// Tree is a KD-tree over a point set. Points are stored in a flat
// row-major array and reordered internally via an index permutation, so
// queries return indexes into the original point slice.
type Tree struct {
	data     []float64
	n        int
	dims     int
	leafSize int
	idx      []int
	root     *treeNode
}

type treeNode struct {
	start, end  int // range into idx covered by this node
	boundsMin   []float64
	boundsMax   []float64
	left, right *treeNode
}

// NewTree builds a KD-tree from the given points. leafSize controls the
// maximum number of points per leaf; 0 picks a sensible default.
func NewTree(points [][]float64, leafSize int) *Tree {
	if leafSize < 1 {
		leafSize = 32
	}
	n := len(points)
	dims := 0
	if n > 0 {
		dims = len(points[0])
	}

	data := make([]float64, n*dims)
	for i, p := range points {
		copy(data[i*dims:], p)
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	t := &Tree{
		data:     data,
		n:        n,
		dims:     dims,
		leafSize: leafSize,
		idx:      idx,
	}
	if n > 0 {
		t.root = t.build(0, n)
	}
	return t
}

// build constructs the subtree for points in idx[start:end] by splitting
// at the median of the widest-spread dimension.
func (t *Tree) build(start, end int) *treeNode {
	node := &treeNode{
		start:     start,
		end:       end,
		boundsMin: make([]float64, t.dims),
		boundsMax: make([]float64, t.dims),
	}
	for d := 0; d < t.dims; d++ {
		node.boundsMin[d] = math.Inf(1)
		node.boundsMax[d] = math.Inf(-1)
	}
	for _, i := range t.idx[start:end] {
		for d := 0; d < t.dims; d++ {
			v := t.data[i*t.dims+d]
			if v < node.boundsMin[d] {
				node.boundsMin[d] = v
			}
			if v > node.boundsMax[d] {
				node.boundsMax[d] = v
			}
		}
	}

	if end-start <= t.leafSize {
		return node
	}

	splitDim := 0
	maxSpread := -1.0
	for d := 0; d < t.dims; d++ {
		if spread := node.boundsMax[d] - node.boundsMin[d]; spread > maxSpread {
			maxSpread = spread
			splitDim = d
		}
	}
	if maxSpread == 0 {
		// All points identical in every dimension; keep as a leaf.
		return node
	}

	mid := (start + end) / 2
	part := t.idx[start:end]
	sort.Slice(part, func(a, b int) bool {
		return t.data[part[a]*t.dims+splitDim] < t.data[part[b]*t.dims+splitDim]
	})

	node.left = t.build(start, mid)
	node.right = t.build(mid, end)
	return node
}

// Len returns the number of indexed points.
func (t *Tree) Len() int { return t.n }

// minDistTo returns a lower bound on the distance from p to any point
// inside the node's bounding box. Used to prune subtrees.
func (t *Tree) minDistTo(node *treeNode, p []float64) float64 {
	var sum float64
	for d := 0; d < t.dims; d++ {
		if v := node.boundsMin[d] - p[d]; v > 0 {
			sum += v * v
		} else if v := p[d] - node.boundsMax[d]; v > 0 {
			sum += v * v
		}
	}
	return math.Sqrt(sum)
}

// neighborHeap is a bounded max-heap of (index, distance) pairs keeping
// the k closest candidates seen so far.
type neighborHeap struct {
	idx  []int
	dist []float64
}

func (h *neighborHeap) Len() int           { return len(h.idx) }
func (h *neighborHeap) Less(i, j int) bool { return h.dist[i] > h.dist[j] }
func (h *neighborHeap) Swap(i, j int) {
	h.idx[i], h.idx[j] = h.idx[j], h.idx[i]
	h.dist[i], h.dist[j] = h.dist[j], h.dist[i]
}
func (h *neighborHeap) Push(x any) {
	pair := x.([2]float64)
	h.idx = append(h.idx, int(pair[0]))
	h.dist = append(h.dist, pair[1])
}
func (h *neighborHeap) Pop() any {
	last := len(h.idx) - 1
	pair := [2]float64{float64(h.idx[last]), h.dist[last]}
	h.idx = h.idx[:last]
	h.dist = h.dist[:last]
	return pair
}

// KNN returns the indexes and distances of the k nearest neighbors of p,
// sorted by increasing distance. A point equal to p (distance 0) is a
// valid neighbor; callers that query with an indexed point and want to
// exclude it should ask for k+1 and drop the self match.
func (t *Tree) KNN(p []float64, k int) ([]int, []float64) {
	if k <= 0 || t.n == 0 {
		return nil, nil
	}
	if k > t.n {
		k = t.n
	}

	h := &neighborHeap{}
	t.searchKNN(t.root, p, k, h)

	idx := make([]int, h.Len())
	dist := make([]float64, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		pair := heap.Pop(h).([2]float64)
		idx[i] = int(pair[0])
		dist[i] = pair[1]
	}
	return idx, dist
}

func (t *Tree) searchKNN(node *treeNode, p []float64, k int, h *neighborHeap) {
	if node == nil {
		return
	}
	if h.Len() == k && t.minDistTo(node, p) > h.dist[0] {
		return
	}

	if node.left == nil {
		for _, i := range t.idx[node.start:node.end] {
			d := t.pointDist(i, p)
			if h.Len() < k {
				heap.Push(h, [2]float64{float64(i), d})
			} else if d < h.dist[0] {
				heap.Pop(h)
				heap.Push(h, [2]float64{float64(i), d})
			}
		}
		return
	}

	// Descend into the closer child first to tighten the bound early.
	first, second := node.left, node.right
	if t.minDistTo(second, p) < t.minDistTo(first, p) {
		first, second = second, first
	}
	t.searchKNN(first, p, k, h)
	t.searchKNN(second, p, k, h)
}

// Radius returns the indexes of all points within distance r of p,
// in no particular order.
func (t *Tree) Radius(p []float64, r float64) []int {
	if t.n == 0 || r < 0 {
		return nil
	}
	var out []int
	t.searchRadius(t.root, p, r, &out)
	return out
}

func (t *Tree) searchRadius(node *treeNode, p []float64, r float64, out *[]int) {
	if node == nil || t.minDistTo(node, p) > r {
		return
	}
	if node.left == nil {
		for _, i := range t.idx[node.start:node.end] {
			if t.pointDist(i, p) <= r {
				*out = append(*out, i)
			}
		}
		return
	}
	t.searchRadius(node.left, p, r, out)
	t.searchRadius(node.right, p, r, out)
}

func (t *Tree) pointDist(i int, p []float64) float64 {
	var sum float64
	for d := 0; d < t.dims; d++ {
		v := t.data[i*t.dims+d] - p[d]
		sum += v * v
	}
	return math.Sqrt(sum)
}
