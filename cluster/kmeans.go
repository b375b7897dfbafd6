package cluster

import (
	"fmt"
	"math/rand"
)

// MiniBatchKMeansConfig controls mini-batch k-means clustering.
// Start with DefaultMiniBatchKMeansConfig and override what you need.
type MiniBatchKMeansConfig struct {
	// NClusters is the number of centers to fit. Must be >= 1.
	NClusters int

	// BatchSize is the number of points sampled per update step.
	// Default: 1024 (clamped to the dataset size).
	BatchSize int

	// MaxIter is the number of mini-batch update steps. Default: 100.
	MaxIter int

	// Seed feeds the sampler and the k-means++ initialization.
	Seed int64
}

// DefaultMiniBatchKMeansConfig returns a config with reasonable defaults
// for NClusters centers.
func DefaultMiniBatchKMeansConfig(nClusters int) MiniBatchKMeansConfig {
	return MiniBatchKMeansConfig{
		NClusters: nClusters,
		BatchSize: 1024,
		MaxIter:   100,
	}
}

// MiniBatchKMeans fits k-means centers using per-center streaming
// updates over random mini-batches (Sculley's web-scale variant).
type MiniBatchKMeans struct {
	cfg     MiniBatchKMeansConfig
	centers [][]float64
	labels  []int
}

// NewMiniBatchKMeans returns an unfitted estimator for the config.
func NewMiniBatchKMeans(cfg MiniBatchKMeansConfig) *MiniBatchKMeans {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 1024
	}
	if cfg.MaxIter == 0 {
		cfg.MaxIter = 100
	}
	return &MiniBatchKMeans{cfg: cfg}
}

// Fit clusters the points and stores per-point labels.
func (m *MiniBatchKMeans) Fit(points [][]float64) error {
	if m.cfg.NClusters < 1 {
		return fmt.Errorf("cluster: NClusters must be >= 1, got %d", m.cfg.NClusters)
	}
	n := len(points)
	if n < m.cfg.NClusters {
		return fmt.Errorf("cluster: %d points cannot form %d clusters", n, m.cfg.NClusters)
	}

	rng := rand.New(rand.NewSource(m.cfg.Seed))
	m.centers = seedCenters(points, m.cfg.NClusters, rng)
	counts := make([]int, m.cfg.NClusters)

	batch := m.cfg.BatchSize
	if batch > n {
		batch = n
	}

	for iter := 0; iter < m.cfg.MaxIter; iter++ {
		for b := 0; b < batch; b++ {
			p := points[rng.Intn(n)]
			c := nearestCenter(p, m.centers)
			counts[c]++
			// Per-center learning rate 1/count converges each center
			// to the mean of the points it has absorbed.
			eta := 1.0 / float64(counts[c])
			for d := range m.centers[c] {
				m.centers[c][d] += eta * (p[d] - m.centers[c][d])
			}
		}
	}

	m.labels = make([]int, n)
	for i, p := range points {
		m.labels[i] = nearestCenter(p, m.centers)
	}
	return nil
}

// Labels returns the per-point assignment from the last Fit.
func (m *MiniBatchKMeans) Labels() []int { return m.labels }

// Centers returns the fitted cluster centers.
func (m *MiniBatchKMeans) Centers() [][]float64 { return m.centers }

// seedCenters picks k initial centers with k-means++ weighting: the
// first uniformly, each next with probability proportional to the
// squared distance from the nearest already-chosen center.
func seedCenters(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(points)
	centers := make([][]float64, 0, k)
	centers = append(centers, clonePoint(points[rng.Intn(n)]))

	d2 := make([]float64, n)
	for len(centers) < k {
		var total float64
		for i, p := range points {
			d2[i] = SquaredEuclidean(p, centers[0])
			for _, c := range centers[1:] {
				if d := SquaredEuclidean(p, c); d < d2[i] {
					d2[i] = d
				}
			}
			total += d2[i]
		}
		if total == 0 {
			// All points coincide with existing centers.
			centers = append(centers, clonePoint(points[rng.Intn(n)]))
			continue
		}
		target := rng.Float64() * total
		var acc float64
		pick := n - 1
		for i, w := range d2 {
			acc += w
			if acc >= target {
				pick = i
				break
			}
		}
		centers = append(centers, clonePoint(points[pick]))
	}
	return centers
}

func nearestCenter(p []float64, centers [][]float64) int {
	best := 0
	bestDist := SquaredEuclidean(p, centers[0])
	for c := 1; c < len(centers); c++ {
		if d := SquaredEuclidean(p, centers[c]); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

func clonePoint(p []float64) []float64 {
	q := make([]float64, len(p))
	copy(q, p)
	return q
}
