package neighbors

// EstimateBandwidth estimates a kernel bandwidth for mean-shift style
// algorithms: the mean, over all points, of the distance to the k-th
// nearest neighbor, where k = max(1, floor(quantile * n)).
// quantile must be in (0, 1]; out-of-range values are clamped.
func EstimateBandwidth(points [][]float64, quantile float64) float64 {
	n := len(points)
	if n < 2 {
		return 0
	}
	if quantile <= 0 {
		quantile = 0.3
	}
	if quantile > 1 {
		quantile = 1
	}
	k := int(quantile * float64(n))
	if k < 1 {
		k = 1
	}
	if k > n-1 {
		k = n - 1
	}

	tree := NewTree(points, 0)
	var sum float64
	for _, p := range points {
		// k+1 accounts for the query point matching itself at distance 0.
		_, dist := tree.KNN(p, k+1)
		sum += dist[len(dist)-1]
	}
	return sum / float64(n)
}

// KthDistances returns, for every point, the distance to its k-th
// nearest neighbor (excluding the point itself). Used as core distances
// by density-based estimators.
func KthDistances(points [][]float64, k int) []float64 {
	n := len(points)
	out := make([]float64, n)
	if n == 0 || k < 1 {
		return out
	}
	if k > n-1 {
		k = n - 1
	}
	tree := NewTree(points, 0)
	for i, p := range points {
		_, dist := tree.KNN(p, k+1)
		out[i] = dist[len(dist)-1]
	}
	return out
}
