// Package compare drives the dataset × algorithm comparison: six
// synthetic 2D datasets, ten clustering estimators each, one timed
// scatter plot per combination, assembled into a single figure.
package compare

// Parameter names understood by the algorithm construction recipe.
const (
	ParamQuantile       = "quantile"
	ParamEps            = "eps"
	ParamDamping        = "damping"
	ParamPreference     = "preference"
	ParamNeighbors      = "n_neighbors"
	ParamClusters       = "n_clusters"
	ParamMinSamples     = "min_samples"
	ParamXi             = "xi"
	ParamMinClusterSize = "min_cluster_size"
)

// ParamSet maps parameter names to scalar values. A merged set is
// treated as immutable for the duration of a dataset row.
type ParamSet map[string]float64

// DefaultParams returns the base parameter set every dataset row's
// overrides are merged onto.
func DefaultParams() ParamSet {
	return ParamSet{
		ParamQuantile:       0.3,
		ParamEps:            0.3,
		ParamDamping:        0.9,
		ParamPreference:     -200,
		ParamNeighbors:      10,
		ParamClusters:       3,
		ParamMinSamples:     20,
		ParamXi:             0.05,
		ParamMinClusterSize: 0.1,
	}
}

// Merge returns a fresh ParamSet holding every entry of ps with the
// override values replacing defaults on key collision. Neither input is
// modified.
func (ps ParamSet) Merge(overrides ParamSet) ParamSet {
	merged := make(ParamSet, len(ps)+len(overrides))
	for k, v := range ps {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// Int reads an integer-valued parameter.
func (ps ParamSet) Int(key string) int { return int(ps[key]) }
