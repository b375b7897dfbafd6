package cluster

import (
	"fmt"
	"math"
)

// BirchConfig controls BIRCH clustering.
type BirchConfig struct {
	// Threshold is the maximum radius a subcluster may reach when
	// absorbing a point; larger values build fewer, coarser
	// subclusters. Must be > 0. Default: 0.5.
	Threshold float64

	// NClusters is the number of final clusters produced by the global
	// step over the subcluster centroids. Must be >= 1.
	NClusters int
}

// DefaultBirchConfig returns a config with the conventional 0.5
// threshold.
func DefaultBirchConfig(nClusters int) BirchConfig {
	return BirchConfig{Threshold: 0.5, NClusters: nClusters}
}

// cfEntry is a clustering feature: point count, linear sum and squared
// sum, enough to compute the centroid and radius incrementally.
type cfEntry struct {
	n  int
	ls []float64
	ss float64
}

// radiusWith returns the subcluster radius after absorbing p.
func (e *cfEntry) radiusWith(p []float64) float64 {
	n := float64(e.n + 1)
	ss := e.ss
	var centroidSq float64
	for d, v := range p {
		ls := e.ls[d] + v
		ss += v * v
		centroidSq += (ls / n) * (ls / n)
	}
	v := ss/n - centroidSq
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}

func (e *cfEntry) absorb(p []float64) {
	e.n++
	for d, v := range p {
		e.ls[d] += v
		e.ss += v * v
	}
}

func (e *cfEntry) centroid() []float64 {
	c := make([]float64, len(e.ls))
	for d, v := range e.ls {
		c[d] = v / float64(e.n)
	}
	return c
}

// Birch condenses the points into clustering-feature subclusters bounded
// by the radius threshold, then clusters the subcluster centroids with
// ward-linkage agglomerative clustering and labels every point by its
// subcluster's final cluster.
type Birch struct {
	cfg     BirchConfig
	labels  []int
	entries []*cfEntry
}

// NewBirch returns an unfitted estimator for the config.
func NewBirch(cfg BirchConfig) *Birch {
	if cfg.Threshold == 0 {
		cfg.Threshold = 0.5
	}
	return &Birch{cfg: cfg}
}

// Fit clusters the points and stores per-point labels.
func (b *Birch) Fit(points [][]float64) error {
	if b.cfg.Threshold <= 0 {
		return fmt.Errorf("cluster: Threshold must be > 0, got %f", b.cfg.Threshold)
	}
	if b.cfg.NClusters < 1 {
		return fmt.Errorf("cluster: NClusters must be >= 1, got %d", b.cfg.NClusters)
	}
	n := len(points)
	if n < b.cfg.NClusters {
		return fmt.Errorf("cluster: %d points cannot form %d clusters", n, b.cfg.NClusters)
	}

	// Condensing pass: each point joins the nearest subcluster when the
	// absorbed radius stays under the threshold, otherwise it seeds a
	// new subcluster.
	b.entries = b.entries[:0]
	assignment := make([]int, n)
	for i, p := range points {
		best, bestDist := -1, math.Inf(1)
		for ei, e := range b.entries {
			if d := SquaredEuclidean(p, e.centroid()); d < bestDist {
				best, bestDist = ei, d
			}
		}
		if best >= 0 && b.entries[best].radiusWith(p) <= b.cfg.Threshold {
			b.entries[best].absorb(p)
			assignment[i] = best
			continue
		}
		e := &cfEntry{n: 1, ls: clonePoint(p)}
		for _, v := range p {
			e.ss += v * v
		}
		assignment[i] = len(b.entries)
		b.entries = append(b.entries, e)
	}

	// Global step: merge subcluster centroids down to NClusters.
	centroids := make([][]float64, len(b.entries))
	for i, e := range b.entries {
		centroids[i] = e.centroid()
	}
	entryLabels := make([]int, len(centroids))
	if len(centroids) <= b.cfg.NClusters {
		for i := range entryLabels {
			entryLabels[i] = i
		}
	} else {
		global := NewAgglomerative(AgglomerativeConfig{
			NClusters: b.cfg.NClusters,
			Linkage:   LinkageWard,
		})
		if err := global.Fit(centroids); err != nil {
			return fmt.Errorf("cluster: birch global step: %w", err)
		}
		entryLabels = global.Labels()
	}

	b.labels = make([]int, n)
	for i := range points {
		b.labels[i] = entryLabels[assignment[i]]
	}
	return nil
}

// Labels returns the per-point assignment from the last Fit.
func (b *Birch) Labels() []int { return b.labels }

// Subclusters returns the number of condensed subclusters built by the
// last Fit.
func (b *Birch) Subclusters() int { return len(b.entries) }
