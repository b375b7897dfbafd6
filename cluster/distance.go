package cluster

import "gonum.org/v1/gonum/floats"

// DistanceFunc measures the distance between two points.
type DistanceFunc func(a, b []float64) float64

// Euclidean is the L2 distance.
func Euclidean(a, b []float64) float64 { return floats.Distance(a, b, 2) }

// Manhattan is the L1 (city-block) distance.
func Manhattan(a, b []float64) float64 { return floats.Distance(a, b, 1) }

// SquaredEuclidean is the squared L2 distance (no final square root).
func SquaredEuclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
