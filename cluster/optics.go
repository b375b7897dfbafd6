package cluster

import (
	"fmt"
	"math"

	"github.com/clusterbench/clusterbench/neighbors"
)

// OPTICSConfig controls OPTICS clustering.
type OPTICSConfig struct {
	// MinSamples is the neighborhood size defining core distances
	// (the point itself counts). Must be >= 2.
	MinSamples int

	// Xi is the minimum relative steepness of a reachability drop or
	// rise that opens or closes a cluster, in (0, 1).
	Xi float64

	// MinClusterSize is the smallest extracted cluster. Values below 1
	// are a fraction of the dataset size; values >= 1 are an absolute
	// count. Default: MinSamples.
	MinClusterSize float64

	// MaxEps caps the neighborhood radius. Default: +Inf (no cap).
	MaxEps float64
}

// OPTICS orders points by density reachability and extracts clusters
// from the steep valleys of the reachability profile (xi method).
// Points outside every extracted valley are labeled Noise.
type OPTICS struct {
	cfg       OPTICSConfig
	labels    []int
	ordering  []int
	reachDist []float64
}

// NewOPTICS returns an unfitted estimator for the config.
func NewOPTICS(cfg OPTICSConfig) *OPTICS {
	if cfg.MaxEps == 0 {
		cfg.MaxEps = math.Inf(1)
	}
	if cfg.MinClusterSize == 0 {
		cfg.MinClusterSize = float64(cfg.MinSamples)
	}
	return &OPTICS{cfg: cfg}
}

// Fit computes the reachability ordering and stores per-point labels.
func (o *OPTICS) Fit(points [][]float64) error {
	if o.cfg.MinSamples < 2 {
		return fmt.Errorf("cluster: MinSamples must be >= 2, got %d", o.cfg.MinSamples)
	}
	if o.cfg.Xi <= 0 || o.cfg.Xi >= 1 {
		return fmt.Errorf("cluster: Xi must be in (0, 1), got %f", o.cfg.Xi)
	}
	n := len(points)
	if n == 0 {
		o.labels = []int{}
		return nil
	}

	core := neighbors.KthDistances(points, o.cfg.MinSamples-1)

	// Reachability ordering: repeatedly take the unprocessed point with
	// the smallest reachability and relax its neighbors. With an
	// uncapped MaxEps every point is a neighbor of every other.
	reach := make([]float64, n)
	processed := make([]bool, n)
	for i := range reach {
		reach[i] = math.Inf(1)
	}
	o.ordering = make([]int, 0, n)

	for len(o.ordering) < n {
		p := -1
		best := math.Inf(1)
		for i := 0; i < n; i++ {
			if !processed[i] && (p < 0 || reach[i] < best) {
				p, best = i, reach[i]
			}
		}
		processed[p] = true
		o.ordering = append(o.ordering, p)
		for q := 0; q < n; q++ {
			if processed[q] {
				continue
			}
			d := Euclidean(points[p], points[q])
			if d > o.cfg.MaxEps {
				continue
			}
			if r := math.Max(core[p], d); r < reach[q] {
				reach[q] = r
			}
		}
	}

	o.reachDist = make([]float64, n)
	for t, idx := range o.ordering {
		o.reachDist[t] = reach[idx]
	}
	o.labels = o.extractXi(n)
	return nil
}

// Labels returns the per-point assignment from the last Fit.
func (o *OPTICS) Labels() []int { return o.labels }

// Ordering returns the reachability ordering from the last Fit.
func (o *OPTICS) Ordering() []int { return o.ordering }

// Reachability returns reachability distances in ordering position.
func (o *OPTICS) Reachability() []float64 { return o.reachDist }

// extractXi scans the reachability profile for valleys: a cluster opens
// at a steep drop (next reachability at most (1-xi) of the current) and
// closes at the matching steep rise. Valleys smaller than the minimum
// cluster size stay Noise.
func (o *OPTICS) extractXi(n int) []int {
	minSize := int(o.cfg.MinClusterSize)
	if o.cfg.MinClusterSize < 1 {
		minSize = int(math.Round(o.cfg.MinClusterSize * float64(n)))
	}
	if minSize < 2 {
		minSize = 2
	}

	r := o.reachDist
	xi := o.cfg.Xi
	steepDown := func(t int) bool {
		return r[t+1] <= r[t]*(1-xi)
	}
	steepUp := func(t int) bool {
		if r[t] == 0 {
			return r[t+1] > 0
		}
		return r[t+1] >= r[t]/(1-xi)
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = Noise
	}

	cid := 0
	for i := 0; i < n-1; {
		if !steepDown(i) {
			i++
			continue
		}
		j := i + 1
		for j < n-1 && !steepUp(j) {
			j++
		}
		if j-i+1 >= minSize {
			for t := i; t <= j; t++ {
				labels[o.ordering[t]] = cid
			}
			cid++
		}
		i = j + 1
	}
	return labels
}
