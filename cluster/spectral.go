package cluster

import (
	"fmt"
	"math"

	"github.com/mpraski/clusters"
	"gonum.org/v1/gonum/mat"

	"github.com/clusterbench/clusterbench/neighbors"
)

// SpectralConfig controls spectral clustering.
type SpectralConfig struct {
	// NClusters is the number of clusters (and embedding dimensions).
	// Must be >= 1.
	NClusters int

	// NNeighbors sets the kNN affinity graph degree. Must be >= 1.
	NNeighbors int

	// KMeansIter bounds the k-means step on the embedding. Default: 200.
	KMeansIter int
}

// DefaultSpectralConfig returns a config for nClusters clusters with a
// 10-neighbor affinity graph.
func DefaultSpectralConfig(nClusters int) SpectralConfig {
	return SpectralConfig{NClusters: nClusters, NNeighbors: 10, KMeansIter: 200}
}

// Spectral clusters by embedding the points with the bottom eigenvectors
// of the symmetric normalized Laplacian of their kNN affinity graph, then
// running k-means on the row-normalized embedding. A graph that is not
// fully connected degrades the embedding but is not an error; the extra
// zero eigenvalues simply encode the components.
type Spectral struct {
	cfg    SpectralConfig
	labels []int
}

// NewSpectral returns an unfitted estimator for the config.
func NewSpectral(cfg SpectralConfig) *Spectral {
	if cfg.KMeansIter == 0 {
		cfg.KMeansIter = 200
	}
	return &Spectral{cfg: cfg}
}

// Fit embeds and clusters the points, storing per-point labels.
func (s *Spectral) Fit(points [][]float64) error {
	if s.cfg.NClusters < 1 {
		return fmt.Errorf("cluster: NClusters must be >= 1, got %d", s.cfg.NClusters)
	}
	if s.cfg.NNeighbors < 1 {
		return fmt.Errorf("cluster: NNeighbors must be >= 1, got %d", s.cfg.NNeighbors)
	}
	n := len(points)
	if n < s.cfg.NClusters {
		return fmt.Errorf("cluster: %d points cannot form %d clusters", n, s.cfg.NClusters)
	}

	graph := neighbors.Connectivity(points, s.cfg.NNeighbors)

	// Symmetric normalized Laplacian L = I - D^{-1/2} A D^{-1/2}.
	invSqrtDeg := make([]float64, n)
	for i := 0; i < n; i++ {
		var deg float64
		graph.Neighbors(i, func(_ int, w float64) { deg += w })
		if deg > 0 {
			invSqrtDeg[i] = 1 / math.Sqrt(deg)
		}
	}
	lap := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		lap.SetSym(i, i, 1)
		graph.Neighbors(i, func(j int, w float64) {
			if j > i {
				lap.SetSym(i, j, -w*invSqrtDeg[i]*invSqrtDeg[j])
			}
		})
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(lap, true); !ok {
		return fmt.Errorf("cluster: laplacian eigendecomposition failed")
	}
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// Embedding: bottom NClusters eigenvectors (EigenSym orders
	// eigenvalues ascending), rows normalized to the unit sphere.
	k := s.cfg.NClusters
	embedding := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, k)
		var norm float64
		for j := 0; j < k; j++ {
			row[j] = vectors.At(i, j)
			norm += row[j] * row[j]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range row {
				row[j] /= norm
			}
		}
		embedding[i] = row
	}

	km, err := clusters.KMeans(s.cfg.KMeansIter, k, clusters.EuclideanDistance)
	if err != nil {
		return fmt.Errorf("cluster: spectral k-means setup: %w", err)
	}
	if err := km.Learn(embedding); err != nil {
		return fmt.Errorf("cluster: spectral k-means: %w", err)
	}
	s.labels = remapGuesses(km.Guesses())
	return nil
}

// Labels returns the per-point assignment from the last Fit.
func (s *Spectral) Labels() []int { return s.labels }
