// Package cluster implements the clustering estimators compared by the
// grid driver: mini-batch k-means, affinity propagation, mean shift,
// spectral clustering, agglomerative clustering (ward and average
// linkage), DBSCAN, OPTICS, BIRCH and gaussian mixtures.
//
// Every estimator follows the same shape: a Config struct with
// validation, a constructor taking that config, and a Fit method over a
// slice of points. Estimators that assign training points during Fit
// expose Labels; estimators that derive assignments by a prediction pass
// expose Predict. The capability is fixed by the concrete type, never
// probed at use time.
//
// Cluster labels are 0-indexed. The reserved label Noise (-1) marks
// points assigned to no cluster by density-based estimators.
package cluster

// Noise is the outlier sentinel label: the point belongs to no cluster.
const Noise = -1

// Estimator is the common fitting contract. Fit must be called before
// any label accessors; all points must share one dimensionality.
type Estimator interface {
	Fit(points [][]float64) error
}

// LabelClusterer is an estimator that assigns every training point a
// cluster label as part of fitting.
type LabelClusterer interface {
	Estimator
	// Labels returns the per-point assignment from the last Fit.
	Labels() []int
}

// Predictor is an estimator whose assignments come from a prediction
// pass after fitting (e.g. a mixture model's posterior argmax).
type Predictor interface {
	Estimator
	// Predict returns the cluster assignment for each query point.
	Predict(points [][]float64) []int
}
