package datasets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorSizes(t *testing.T) {
	for name, gen := range map[string]func() ([][]float64, []int){
		"circles":     func() ([][]float64, []int) { return Circles(1500, 0.5, 0.05, 0) },
		"moons":       func() ([][]float64, []int) { return Moons(1500, 0.05, 0) },
		"blobs":       func() ([][]float64, []int) { return Blobs(1500, 3, 8) },
		"varied":      func() ([][]float64, []int) { return VariedBlobs(1500, []float64{1.0, 2.5, 0.5}, 170) },
		"aniso":       func() ([][]float64, []int) { return Aniso(1500, 3, 170) },
		"noStructure": func() ([][]float64, []int) { return NoStructure(1500, 0) },
	} {
		t.Run(name, func(t *testing.T) {
			points, _ := gen()
			require.Len(t, points, 1500)
			for _, p := range points {
				require.Len(t, p, 2)
			}
		})
	}
}

func TestBlobsDeterministicPerSeed(t *testing.T) {
	a, _ := Blobs(300, 3, 170)
	b, _ := Blobs(300, 3, 170)
	require.Equal(t, a, b, "identical seeds must reproduce identical coordinates")

	c, _ := Blobs(300, 3, 171)
	assert.NotEqual(t, a, c, "different seeds should move the blobs")
}

func TestVariedBlobsDeterministicPerSeed(t *testing.T) {
	a, _ := VariedBlobs(200, []float64{1.0, 2.5, 0.5}, 170)
	b, _ := VariedBlobs(200, []float64{1.0, 2.5, 0.5}, 170)
	require.Equal(t, a, b)
}

func TestBlobLabelsPartition(t *testing.T) {
	points, labels := Blobs(90, 3, 8)
	require.Len(t, labels, len(points))
	counts := map[int]int{}
	for _, l := range labels {
		counts[l]++
	}
	assert.Len(t, counts, 3)
	for l, c := range counts {
		assert.Equal(t, 30, c, "cluster %d size", l)
	}
}

func TestCirclesLabels(t *testing.T) {
	points, labels := Circles(100, 0.5, 0, 1)
	require.Len(t, labels, 100)
	// Noise-free: outer points sit on the unit circle, inner at radius 0.5.
	for i, p := range points {
		r := p[0]*p[0] + p[1]*p[1]
		if labels[i] == 0 {
			assert.InDelta(t, 1.0, r, 1e-9)
		} else {
			assert.InDelta(t, 0.25, r, 1e-9)
		}
	}
}

func TestAnisoTransformsBlobs(t *testing.T) {
	blobs, _ := Blobs(100, 3, 170)
	aniso, _ := Aniso(100, 3, 170)
	require.Len(t, aniso, 100)
	assert.NotEqual(t, blobs, aniso, "transform must move the points")
}

func TestNoStructureRange(t *testing.T) {
	points, labels := NoStructure(500, 3)
	assert.Nil(t, labels)
	for _, p := range points {
		assert.GreaterOrEqual(t, p[0], 0.0)
		assert.Less(t, p[0], 1.0)
		assert.GreaterOrEqual(t, p[1], 0.0)
		assert.Less(t, p[1], 1.0)
	}
}
