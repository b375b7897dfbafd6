package cluster

import (
	"fmt"
	"math"
	"sort"

	"github.com/clusterbench/clusterbench/neighbors"
)

// MeanShiftConfig controls mean-shift clustering.
type MeanShiftConfig struct {
	// Bandwidth is the flat-kernel radius. Must be > 0; estimate it
	// with neighbors.EstimateBandwidth when unknown.
	Bandwidth float64

	// BinSeeding starts the shift from occupied cells of a
	// bandwidth-sized grid instead of from every point. Much faster,
	// slightly coarser. Default: true via DefaultMeanShiftConfig.
	BinSeeding bool

	// MaxIter bounds the shift iterations per seed. Default: 300.
	MaxIter int
}

// DefaultMeanShiftConfig returns a config with bin seeding enabled.
func DefaultMeanShiftConfig(bandwidth float64) MeanShiftConfig {
	return MeanShiftConfig{Bandwidth: bandwidth, BinSeeding: true, MaxIter: 300}
}

// MeanShift clusters by shifting seeds uphill to the modes of the
// point density under a flat kernel, then assigning every point to the
// nearest surviving mode.
type MeanShift struct {
	cfg    MeanShiftConfig
	modes  [][]float64
	labels []int
}

// NewMeanShift returns an unfitted estimator for the config.
func NewMeanShift(cfg MeanShiftConfig) *MeanShift {
	if cfg.MaxIter == 0 {
		cfg.MaxIter = 300
	}
	return &MeanShift{cfg: cfg}
}

// Fit finds the density modes and stores per-point labels.
func (m *MeanShift) Fit(points [][]float64) error {
	if m.cfg.Bandwidth <= 0 {
		return fmt.Errorf("cluster: Bandwidth must be > 0, got %f", m.cfg.Bandwidth)
	}
	n := len(points)
	if n == 0 {
		m.labels = []int{}
		return nil
	}
	dims := len(points[0])
	tree := neighbors.NewTree(points, 0)

	seeds := points
	if m.cfg.BinSeeding && dims == 2 {
		seeds = binSeeds(points, m.cfg.Bandwidth)
	}

	type mode struct {
		center []float64
		size   int
	}
	var modes []mode
	stopThresh := 1e-3 * m.cfg.Bandwidth

	for _, seed := range seeds {
		center := clonePoint(seed)
		var members int
		for iter := 0; iter < m.cfg.MaxIter; iter++ {
			within := tree.Radius(center, m.cfg.Bandwidth)
			if len(within) == 0 {
				break
			}
			next := make([]float64, dims)
			for _, j := range within {
				for d := range next {
					next[d] += points[j][d]
				}
			}
			for d := range next {
				next[d] /= float64(len(within))
			}
			shift := Euclidean(center, next)
			center = next
			members = len(within)
			if shift < stopThresh {
				break
			}
		}
		if members > 0 {
			modes = append(modes, mode{center: center, size: members})
		}
	}
	if len(modes) == 0 {
		return fmt.Errorf("cluster: no mean-shift modes found with bandwidth %f", m.cfg.Bandwidth)
	}

	// Deduplicate converged modes: keep the densest, drop any mode
	// within one bandwidth of an already-kept one.
	sort.SliceStable(modes, func(a, b int) bool { return modes[a].size > modes[b].size })
	m.modes = m.modes[:0]
	for _, cand := range modes {
		keep := true
		for _, kept := range m.modes {
			if Euclidean(cand.center, kept) < m.cfg.Bandwidth {
				keep = false
				break
			}
		}
		if keep {
			m.modes = append(m.modes, cand.center)
		}
	}

	m.labels = make([]int, n)
	for i, p := range points {
		m.labels[i] = nearestCenter(p, m.modes)
	}
	return nil
}

// Labels returns the per-point assignment from the last Fit.
func (m *MeanShift) Labels() []int { return m.labels }

// Modes returns the fitted density modes, densest first.
func (m *MeanShift) Modes() [][]float64 { return m.modes }

// binSeeds buckets points onto a grid with bandwidth-sized cells and
// returns one seed per occupied cell (the cell center).
func binSeeds(points [][]float64, bandwidth float64) [][]float64 {
	type cell [2]int64
	seen := make(map[cell]bool)
	var seeds [][]float64
	for _, p := range points {
		c := cell{int64(math.Floor(p[0] / bandwidth)), int64(math.Floor(p[1] / bandwidth))}
		if seen[c] {
			continue
		}
		seen[c] = true
		seeds = append(seeds, []float64{
			(float64(c[0]) + 0.5) * bandwidth,
			(float64(c[1]) + 0.5) * bandwidth,
		})
	}
	return seeds
}
