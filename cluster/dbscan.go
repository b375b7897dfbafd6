package cluster

import (
	"fmt"

	"github.com/mpraski/clusters"
)

// DBSCANConfig controls density-based clustering.
type DBSCANConfig struct {
	// Eps is the neighborhood radius. Must be > 0.
	Eps float64

	// MinSamples is the minimum neighborhood size for a core point.
	// Must be >= 1.
	MinSamples int

	// Workers sets the library's worker count. Default: 1.
	Workers int
}

// DBSCAN wraps the mpraski/clusters DBSCAN implementation behind the
// package's label conventions (0-indexed clusters, Noise for outliers).
type DBSCAN struct {
	cfg    DBSCANConfig
	labels []int
}

// NewDBSCAN returns an unfitted estimator for the config.
func NewDBSCAN(cfg DBSCANConfig) *DBSCAN {
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	return &DBSCAN{cfg: cfg}
}

// Fit clusters the points and stores per-point labels.
func (d *DBSCAN) Fit(points [][]float64) error {
	if d.cfg.Eps <= 0 {
		return fmt.Errorf("cluster: Eps must be > 0, got %f", d.cfg.Eps)
	}
	if d.cfg.MinSamples < 1 {
		return fmt.Errorf("cluster: MinSamples must be >= 1, got %d", d.cfg.MinSamples)
	}
	c, err := clusters.DBSCAN(d.cfg.MinSamples, d.cfg.Eps, d.cfg.Workers, clusters.EuclideanDistance)
	if err != nil {
		return fmt.Errorf("cluster: dbscan setup: %w", err)
	}
	if err := c.Learn(points); err != nil {
		return fmt.Errorf("cluster: dbscan: %w", err)
	}
	d.labels = remapGuesses(c.Guesses())
	return nil
}

// Labels returns the per-point assignment from the last Fit.
func (d *DBSCAN) Labels() []int { return d.labels }

// remapGuesses converts the library's 1-indexed cluster guesses to
// 0-indexed labels; anything below 1 becomes the Noise sentinel.
func remapGuesses(guesses []int) []int {
	labels := make([]int, len(guesses))
	for i, g := range guesses {
		if g < 1 {
			labels[i] = Noise
		} else {
			labels[i] = g - 1
		}
	}
	return labels
}
