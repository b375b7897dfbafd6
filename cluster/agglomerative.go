package cluster

import (
	"fmt"
	"math"

	"github.com/clusterbench/clusterbench/neighbors"
)

// Linkage selects the inter-cluster distance update rule.
type Linkage string

const (
	// LinkageWard minimizes the within-cluster variance increase.
	// Always measured in euclidean distance.
	LinkageWard Linkage = "ward"

	// LinkageAverage uses the mean pairwise distance between clusters,
	// under the configured metric.
	LinkageAverage Linkage = "average"
)

// AgglomerativeConfig controls hierarchical agglomerative clustering.
type AgglomerativeConfig struct {
	// NClusters is where the merging stops. Must be >= 1.
	NClusters int

	// Linkage is the merge criterion. Default: LinkageWard.
	Linkage Linkage

	// Metric measures point distances for LinkageAverage. Ignored for
	// LinkageWard (euclidean by definition). Default: Euclidean.
	Metric DistanceFunc

	// Connectivity restricts merges to clusters joined by the graph.
	// When the graph splits into more components than NClusters, the
	// engine bridges the nearest components and keeps merging; a
	// disconnected graph is never an error.
	Connectivity *neighbors.Graph
}

// Agglomerative merges clusters bottom-up with Lance–Williams distance
// updates until NClusters remain.
type Agglomerative struct {
	cfg    AgglomerativeConfig
	labels []int
}

// NewAgglomerative returns an unfitted estimator for the config.
func NewAgglomerative(cfg AgglomerativeConfig) *Agglomerative {
	if cfg.Linkage == "" {
		cfg.Linkage = LinkageWard
	}
	if cfg.Metric == nil {
		cfg.Metric = Euclidean
	}
	return &Agglomerative{cfg: cfg}
}

// Fit clusters the points and stores per-point labels.
func (a *Agglomerative) Fit(points [][]float64) error {
	if a.cfg.NClusters < 1 {
		return fmt.Errorf("cluster: NClusters must be >= 1, got %d", a.cfg.NClusters)
	}
	switch a.cfg.Linkage {
	case LinkageWard, LinkageAverage:
	default:
		return fmt.Errorf("cluster: invalid Linkage %q", a.cfg.Linkage)
	}
	n := len(points)
	if n < a.cfg.NClusters {
		return fmt.Errorf("cluster: %d points cannot form %d clusters", n, a.cfg.NClusters)
	}

	metric := a.cfg.Metric
	if a.cfg.Linkage == LinkageWard {
		metric = Euclidean
	}

	// Dense inter-cluster distance matrix over singleton clusters.
	// Row/column i stays live while cluster i is active; merged
	// clusters keep the lower index.
	dist := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := metric(points[i], points[j])
			dist[i*n+j] = d
			dist[j*n+i] = d
		}
	}

	active := make([]bool, n)
	size := make([]int, n)
	members := make([][]int, n)
	for i := range active {
		active[i] = true
		size[i] = 1
		members[i] = []int{i}
	}

	// Cluster-level adjacency from the connectivity graph; nil means
	// unconstrained (every pair is mergeable).
	var adj []map[int]bool
	if a.cfg.Connectivity != nil {
		adj = make([]map[int]bool, n)
		for i := range adj {
			adj[i] = make(map[int]bool)
		}
		for i := 0; i < n; i++ {
			a.cfg.Connectivity.Neighbors(i, func(j int, _ float64) {
				adj[i][j] = true
				adj[j][i] = true
			})
		}
	}

	for remaining := n; remaining > a.cfg.NClusters; remaining-- {
		bi, bj, best := -1, -1, math.Inf(1)
		if adj != nil {
			for i := 0; i < n; i++ {
				if !active[i] {
					continue
				}
				for j := range adj[i] {
					if j > i && active[j] && dist[i*n+j] < best {
						bi, bj, best = i, j, dist[i*n+j]
					}
				}
			}
		}
		if bi < 0 {
			// Unconstrained, or the connectivity components are
			// exhausted: bridge the globally nearest pair.
			for i := 0; i < n; i++ {
				if !active[i] {
					continue
				}
				for j := i + 1; j < n; j++ {
					if active[j] && dist[i*n+j] < best {
						bi, bj, best = i, j, dist[i*n+j]
					}
				}
			}
		}

		a.merge(dist, size, active, n, bi, bj)
		members[bi] = append(members[bi], members[bj]...)
		members[bj] = nil
		if adj != nil {
			for j := range adj[bj] {
				if j != bi {
					adj[bi][j] = true
					adj[j][bi] = true
				}
				delete(adj[j], bj)
			}
			delete(adj[bi], bi)
			adj[bj] = nil
		}
	}

	a.labels = make([]int, n)
	next := 0
	for i := 0; i < n; i++ {
		if !active[i] {
			continue
		}
		for _, m := range members[i] {
			a.labels[m] = next
		}
		next++
	}
	return nil
}

// Labels returns the per-point assignment from the last Fit.
func (a *Agglomerative) Labels() []int { return a.labels }

// merge folds cluster j into cluster i, updating the distances from the
// merged cluster to every other active cluster with the Lance–Williams
// formula for the configured linkage.
func (a *Agglomerative) merge(dist []float64, size []int, active []bool, n, i, j int) {
	ni, nj := float64(size[i]), float64(size[j])
	dij := dist[i*n+j]
	for o := 0; o < n; o++ {
		if !active[o] || o == i || o == j {
			continue
		}
		dio, djo := dist[i*n+o], dist[j*n+o]
		var d float64
		switch a.cfg.Linkage {
		case LinkageAverage:
			d = (ni*dio + nj*djo) / (ni + nj)
		default: // LinkageWard
			no := float64(size[o])
			d = math.Sqrt(((ni+no)*dio*dio + (nj+no)*djo*djo - no*dij*dij) / (ni + nj + no))
		}
		dist[i*n+o] = d
		dist[o*n+i] = d
	}
	size[i] += size[j]
	active[j] = false
}
