// Package datasets generates the synthetic 2D point sets the comparison
// grid is driven by: concentric circles, interleaving moons, gaussian
// blobs (isotropic, varied-variance and anisotropic) and structure-free
// uniform noise. All generators are deterministic for a given seed.
package datasets

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Circles generates n points on two concentric circles, the inner one
// scaled by factor, with gaussian noise of the given standard deviation.
// Labels are 0 for the outer circle and 1 for the inner.
func Circles(n int, factor, noise float64, seed int64) ([][]float64, []int) {
	rng := rand.New(rand.NewSource(seed))
	nOut := n / 2
	nIn := n - nOut

	points := make([][]float64, 0, n)
	labels := make([]int, 0, n)
	for i := 0; i < nOut; i++ {
		t := 2 * math.Pi * float64(i) / float64(nOut)
		points = append(points, []float64{math.Cos(t), math.Sin(t)})
		labels = append(labels, 0)
	}
	for i := 0; i < nIn; i++ {
		t := 2 * math.Pi * float64(i) / float64(nIn)
		points = append(points, []float64{factor * math.Cos(t), factor * math.Sin(t)})
		labels = append(labels, 1)
	}
	addNoise(points, noise, rng)
	return points, labels
}

// Moons generates n points on two interleaving half circles with
// gaussian noise. Labels are 0 for the upper moon and 1 for the lower.
func Moons(n int, noise float64, seed int64) ([][]float64, []int) {
	rng := rand.New(rand.NewSource(seed))
	nUp := n / 2
	nDown := n - nUp

	points := make([][]float64, 0, n)
	labels := make([]int, 0, n)
	for i := 0; i < nUp; i++ {
		t := math.Pi * float64(i) / float64(nUp-1)
		points = append(points, []float64{math.Cos(t), math.Sin(t)})
		labels = append(labels, 0)
	}
	for i := 0; i < nDown; i++ {
		t := math.Pi * float64(i) / float64(nDown-1)
		points = append(points, []float64{1 - math.Cos(t), 0.5 - math.Sin(t)})
		labels = append(labels, 1)
	}
	addNoise(points, noise, rng)
	return points, labels
}

// Blobs generates n points from k isotropic gaussian blobs with unit
// standard deviation. Centers are drawn uniformly from [-10, 10)² using
// the seeded generator, so identical seeds reproduce identical
// coordinates.
func Blobs(n, k int, seed int64) ([][]float64, []int) {
	stds := make([]float64, k)
	for i := range stds {
		stds[i] = 1.0
	}
	return VariedBlobs(n, stds, seed)
}

// VariedBlobs generates gaussian blobs with one standard deviation per
// cluster, len(stds) clusters in total.
func VariedBlobs(n int, stds []float64, seed int64) ([][]float64, []int) {
	rng := rand.New(rand.NewSource(seed))
	k := len(stds)

	centers := make([][]float64, k)
	for i := range centers {
		centers[i] = []float64{rng.Float64()*20 - 10, rng.Float64()*20 - 10}
	}

	points := make([][]float64, 0, n)
	labels := make([]int, 0, n)
	for c := 0; c < k; c++ {
		size := n / k
		if c < n%k {
			size++
		}
		for i := 0; i < size; i++ {
			points = append(points, []float64{
				centers[c][0] + rng.NormFloat64()*stds[c],
				centers[c][1] + rng.NormFloat64()*stds[c],
			})
			labels = append(labels, c)
		}
	}
	return points, labels
}

// Aniso generates anisotropically distributed blobs: isotropic blobs
// pushed through a fixed linear transformation, producing elongated
// diagonal clusters.
func Aniso(n, k int, seed int64) ([][]float64, []int) {
	points, labels := Blobs(n, k, seed)

	transform := mat.NewDense(2, 2, []float64{0.6, -0.6, -0.4, 0.8})
	x := mat.NewDense(len(points), 2, nil)
	for i, p := range points {
		x.SetRow(i, p)
	}
	var out mat.Dense
	out.Mul(x, transform)

	for i := range points {
		points[i] = out.RawRowView(i)
	}
	return points, labels
}

// NoStructure generates n points uniformly distributed on [0, 1)².
// There is no ground truth; the returned label slice is nil.
func NoStructure(n int, seed int64) ([][]float64, []int) {
	rng := rand.New(rand.NewSource(seed))
	points := make([][]float64, n)
	for i := range points {
		points[i] = []float64{rng.Float64(), rng.Float64()}
	}
	return points, nil
}

func addNoise(points [][]float64, std float64, rng *rand.Rand) {
	if std <= 0 {
		return
	}
	for _, p := range points {
		for d := range p {
			p[d] += rng.NormFloat64() * std
		}
	}
}
