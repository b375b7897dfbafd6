package datasets

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Standardize returns a copy of the points rescaled to zero mean and
// unit variance per dimension (population variance). Dimensions with
// zero variance are centered but left unscaled.
func Standardize(points [][]float64) [][]float64 {
	n := len(points)
	if n == 0 {
		return nil
	}
	dims := len(points[0])

	col := make([]float64, n)
	mean := make([]float64, dims)
	std := make([]float64, dims)
	for d := 0; d < dims; d++ {
		for i, p := range points {
			col[i] = p[d]
		}
		mean[d] = stat.Mean(col, nil)
		var ss float64
		for _, v := range col {
			dv := v - mean[d]
			ss += dv * dv
		}
		std[d] = math.Sqrt(ss / float64(n))
	}

	out := make([][]float64, n)
	for i, p := range points {
		q := make([]float64, dims)
		for d := range q {
			q[d] = p[d] - mean[d]
			if std[d] > 0 {
				q[d] /= std[d]
			}
		}
		out[i] = q
	}
	return out
}
