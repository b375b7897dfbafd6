package compare

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clusterbench/clusterbench/neighbors"
)

func TestAlgorithmsFixedColumns(t *testing.T) {
	ps := DefaultParams()
	conn := neighbors.Connectivity([][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, 2)
	algos := Algorithms(ps, 1.0, conn, 0)

	require.Len(t, algos, NumAlgorithms)
	names := make([]string, len(algos))
	for i, a := range algos {
		names[i] = a.Name
		require.NotNil(t, a.Estimator, "column %d", i)
	}
	assert.Equal(t, []string{
		"MiniBatch KMeans",
		"Affinity Propagation",
		"MeanShift",
		"Spectral Clustering",
		"Ward",
		"Agglomerative Clustering",
		"DBSCAN",
		"OPTICS",
		"BIRCH",
		"Gaussian Mixture",
	}, names)

	// Capability tags are fixed at construction: only the mixture is
	// predict-based.
	for i, a := range algos {
		want := ClusterAssigning
		if a.Name == "Gaussian Mixture" {
			want = PredictBased
		}
		assert.Equal(t, want, a.Capability, "column %d", i)
	}
}

func TestDriverRows(t *testing.T) {
	d := NewDriver(100, 0)
	require.Len(t, d.Rows, 6)
	assert.Equal(t, "noisy circles", d.Rows[0].Name)
	assert.Equal(t, "no structure", d.Rows[5].Name)

	// The structure-free row deliberately reuses the previous row's
	// tuned parameters.
	assert.True(t, d.Rows[5].ReusePrevious)
	for i := 0; i < 5; i++ {
		assert.False(t, d.Rows[i].ReusePrevious, "row %d", i)
	}

	// The moons row overrides n_clusters only downward; eps stays default.
	merged := d.Defaults.Merge(d.Rows[1].Overrides)
	assert.Equal(t, 2, merged.Int(ParamClusters))
	assert.Equal(t, 0.3, merged[ParamEps])
}

func TestDriverRejectsWrongGrid(t *testing.T) {
	d := NewDriver(50, 0)
	err := d.Run(NewGrid(3, 3))
	assert.Error(t, err)
}

func TestDriverFillsGrid(t *testing.T) {
	if testing.Short() {
		t.Skip("full comparison run")
	}
	d := NewDriver(60, 0)
	var fits int
	d.OnCell = func(dataset, algorithm string, elapsed time.Duration) {
		fits++
		assert.GreaterOrEqual(t, elapsed, time.Duration(0))
	}

	g := NewGrid(len(d.Rows), NumAlgorithms)
	require.NoError(t, d.Run(g))

	assert.Equal(t, 60, g.NumCells())
	assert.Equal(t, 60, g.Filled())
	assert.Equal(t, 60, fits)

	// Column titles only on the first dataset row.
	for c := 0; c < g.Cols(); c++ {
		assert.NotEmpty(t, g.plots[0][c].Title.Text, "row 0 col %d", c)
		for r := 1; r < g.Rows(); r++ {
			assert.Empty(t, g.plots[r][c].Title.Text, "row %d col %d", r, c)
		}
	}
}
