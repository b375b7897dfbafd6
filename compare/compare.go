package compare

import (
	"fmt"
	"time"

	"github.com/clusterbench/clusterbench/cluster"
	"github.com/clusterbench/clusterbench/datasets"
	"github.com/clusterbench/clusterbench/neighbors"
)

// Capability tags how an algorithm entry produces its assignments. It is
// decided at construction time, never probed during the run.
type Capability int

const (
	// ClusterAssigning estimators label training points during Fit.
	ClusterAssigning Capability = iota
	// PredictBased estimators derive labels with a prediction pass.
	PredictBased
)

// Algorithm pairs a display name with a configured estimator. Column
// order in the grid follows the slice order, identical for every
// dataset row.
type Algorithm struct {
	Name       string
	Estimator  cluster.Estimator
	Capability Capability
}

// DatasetRow pairs a generated point set with its sparse parameter
// overrides. Row order determines grid row order.
type DatasetRow struct {
	Name      string
	Points    [][]float64
	Truth     []int // ground-truth labels where defined; unused by the run
	Overrides ParamSet

	// ReusePrevious replaces the row's merged parameters with the
	// previous row's. The structure-free row sets it deliberately, to
	// show what tuned parameters do to data with no structure.
	ReusePrevious bool
}

// Driver runs the full comparison: for each dataset row it merges
// parameters, standardizes the points, derives the bandwidth and
// connectivity inputs, fits the ten algorithms in column order and
// draws one grid cell per fit.
type Driver struct {
	Rows     []DatasetRow
	Defaults ParamSet
	Seed     int64

	// OnCell, when set, observes every completed fit.
	OnCell func(dataset, algorithm string, elapsed time.Duration)
}

// NumAlgorithms is the fixed number of algorithm columns.
const NumAlgorithms = 10

// NewDriver builds the standard six-row comparison over samples points
// per dataset. seed offsets the shape-dataset generators; the blob
// generators keep their fixed seeds so coordinates stay reproducible.
func NewDriver(samples int, seed int64) *Driver {
	circles, circlesTruth := datasets.Circles(samples, 0.5, 0.05, seed)
	moons, moonsTruth := datasets.Moons(samples, 0.05, seed)
	varied, variedTruth := datasets.VariedBlobs(samples, []float64{1.0, 2.5, 0.5}, 170)
	aniso, anisoTruth := datasets.Aniso(samples, 3, 170)
	blobs, blobsTruth := datasets.Blobs(samples, 3, 8)
	noStructure, _ := datasets.NoStructure(samples, seed)

	return &Driver{
		Defaults: DefaultParams(),
		Seed:     seed,
		Rows: []DatasetRow{
			{
				Name:   "noisy circles",
				Points: circles,
				Truth:  circlesTruth,
				Overrides: ParamSet{
					ParamDamping:    0.77,
					ParamPreference: -240,
					ParamQuantile:   0.2,
					ParamClusters:   2,
					ParamMinSamples: 7,
					ParamXi:         0.08,
				},
			},
			{
				Name:   "noisy moons",
				Points: moons,
				Truth:  moonsTruth,
				Overrides: ParamSet{
					ParamDamping:    0.75,
					ParamPreference: -220,
					ParamClusters:   2,
					ParamMinSamples: 7,
					ParamXi:         0.1,
				},
			},
			{
				Name:   "varied blobs",
				Points: varied,
				Truth:  variedTruth,
				Overrides: ParamSet{
					ParamEps:            0.18,
					ParamNeighbors:      2,
					ParamMinSamples:     7,
					ParamXi:             0.01,
					ParamMinClusterSize: 0.2,
				},
			},
			{
				Name:   "anisotropic blobs",
				Points: aniso,
				Truth:  anisoTruth,
				Overrides: ParamSet{
					ParamEps:            0.15,
					ParamNeighbors:      2,
					ParamMinSamples:     7,
					ParamXi:             0.1,
					ParamMinClusterSize: 0.2,
				},
			},
			{
				Name:      "blobs",
				Points:    blobs,
				Truth:     blobsTruth,
				Overrides: ParamSet{},
			},
			{
				Name:          "no structure",
				Points:        noStructure,
				Overrides:     ParamSet{},
				ReusePrevious: true,
			},
		},
	}
}

// Run executes the comparison into the grid. Any estimator fit failure
// aborts the whole run; there is no retry and no partial-result
// fallback.
func (d *Driver) Run(grid *Grid) error {
	if grid.Rows() != len(d.Rows) || grid.Cols() != NumAlgorithms {
		return fmt.Errorf("compare: grid is %dx%d, want %dx%d",
			grid.Rows(), grid.Cols(), len(d.Rows), NumAlgorithms)
	}

	var prevMerged ParamSet
	for ri, row := range d.Rows {
		merged := d.Defaults.Merge(row.Overrides)
		if row.ReusePrevious && prevMerged != nil {
			merged = prevMerged
		}
		prevMerged = merged

		points := datasets.Standardize(row.Points)
		bandwidth := neighbors.EstimateBandwidth(points, merged[ParamQuantile])
		connectivity := neighbors.Connectivity(points, merged.Int(ParamNeighbors))

		for ci, algo := range Algorithms(merged, bandwidth, connectivity, d.Seed) {
			start := time.Now()
			if err := algo.Estimator.Fit(points); err != nil {
				return fmt.Errorf("compare: fit %s on %s: %w", algo.Name, row.Name, err)
			}
			elapsed := time.Since(start)

			labels, err := assignments(algo, points)
			if err != nil {
				return fmt.Errorf("compare: labels for %s on %s: %w", algo.Name, row.Name, err)
			}
			if d.OnCell != nil {
				d.OnCell(row.Name, algo.Name, elapsed)
			}

			title := ""
			if ri == 0 {
				title = algo.Name
			}
			if err := grid.Cell(ri, ci, CellData{
				Title:   title,
				Points:  points,
				Labels:  labels,
				Elapsed: elapsed,
			}); err != nil {
				return fmt.Errorf("compare: cell (%d,%d): %w", ri, ci, err)
			}
		}
	}
	return nil
}

// Algorithms builds the ten algorithm entries for one dataset row from
// its merged parameters and the two derived inputs (bandwidth and
// symmetrized kNN connectivity).
func Algorithms(ps ParamSet, bandwidth float64, connectivity *neighbors.Graph, seed int64) []Algorithm {
	nClusters := ps.Int(ParamClusters)
	return []Algorithm{
		{
			Name: "MiniBatch KMeans",
			Estimator: cluster.NewMiniBatchKMeans(cluster.MiniBatchKMeansConfig{
				NClusters: nClusters,
				BatchSize: 1024,
				MaxIter:   100,
				Seed:      seed,
			}),
		},
		{
			Name: "Affinity Propagation",
			Estimator: cluster.NewAffinityPropagation(cluster.AffinityPropagationConfig{
				Damping:    ps[ParamDamping],
				Preference: ps[ParamPreference],
			}),
		},
		{
			Name: "MeanShift",
			Estimator: cluster.NewMeanShift(cluster.MeanShiftConfig{
				Bandwidth:  bandwidth,
				BinSeeding: true,
			}),
		},
		{
			Name: "Spectral Clustering",
			Estimator: cluster.NewSpectral(cluster.SpectralConfig{
				NClusters:  nClusters,
				NNeighbors: ps.Int(ParamNeighbors),
			}),
		},
		{
			Name: "Ward",
			Estimator: cluster.NewAgglomerative(cluster.AgglomerativeConfig{
				NClusters:    nClusters,
				Linkage:      cluster.LinkageWard,
				Connectivity: connectivity,
			}),
		},
		{
			Name: "Agglomerative Clustering",
			Estimator: cluster.NewAgglomerative(cluster.AgglomerativeConfig{
				NClusters:    nClusters,
				Linkage:      cluster.LinkageAverage,
				Metric:       cluster.Manhattan,
				Connectivity: connectivity,
			}),
		},
		{
			Name: "DBSCAN",
			Estimator: cluster.NewDBSCAN(cluster.DBSCANConfig{
				Eps:        ps[ParamEps],
				MinSamples: ps.Int(ParamMinSamples),
			}),
		},
		{
			Name: "OPTICS",
			Estimator: cluster.NewOPTICS(cluster.OPTICSConfig{
				MinSamples:     ps.Int(ParamMinSamples),
				Xi:             ps[ParamXi],
				MinClusterSize: ps[ParamMinClusterSize],
			}),
		},
		{
			Name:      "BIRCH",
			Estimator: cluster.NewBirch(cluster.DefaultBirchConfig(nClusters)),
		},
		{
			Name: "Gaussian Mixture",
			Estimator: cluster.NewGaussianMixture(cluster.GaussianMixtureConfig{
				NComponents: nClusters,
				Seed:        seed,
			}),
			Capability: PredictBased,
		},
	}
}

// assignments reads per-point labels according to the entry's
// capability tag.
func assignments(algo Algorithm, points [][]float64) ([]int, error) {
	switch algo.Capability {
	case PredictBased:
		p, ok := algo.Estimator.(cluster.Predictor)
		if !ok {
			return nil, fmt.Errorf("estimator %T is not predict-based", algo.Estimator)
		}
		return p.Predict(points), nil
	default:
		l, ok := algo.Estimator.(cluster.LabelClusterer)
		if !ok {
			return nil, fmt.Errorf("estimator %T does not assign labels", algo.Estimator)
		}
		return l.Labels(), nil
	}
}
