package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams(t *testing.T) {
	ps := DefaultParams()
	assert.Equal(t, 0.3, ps[ParamQuantile])
	assert.Equal(t, 0.3, ps[ParamEps])
	assert.Equal(t, 0.9, ps[ParamDamping])
	assert.Equal(t, -200.0, ps[ParamPreference])
	assert.Equal(t, 10, ps.Int(ParamNeighbors))
	assert.Equal(t, 3, ps.Int(ParamClusters))
	assert.Equal(t, 20, ps.Int(ParamMinSamples))
	assert.Equal(t, 0.05, ps[ParamXi])
	assert.Equal(t, 0.1, ps[ParamMinClusterSize])
}

func TestMergeOverrideWinsDefaultsRetained(t *testing.T) {
	defaults := DefaultParams()
	merged := defaults.Merge(ParamSet{ParamClusters: 2})

	// Exactly the override key replaced, every other default retained.
	assert.Equal(t, 2, merged.Int(ParamClusters))
	assert.Equal(t, 0.3, merged[ParamEps])
	require.Len(t, merged, len(defaults))
	for k, v := range defaults {
		if k == ParamClusters {
			continue
		}
		assert.Equal(t, v, merged[k], "default %q must be retained", k)
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	defaults := DefaultParams()
	overrides := ParamSet{ParamEps: 0.18, ParamNeighbors: 2}
	defaults.Merge(overrides)

	assert.Equal(t, 0.3, defaults[ParamEps])
	assert.Equal(t, 10, defaults.Int(ParamNeighbors))
	assert.Len(t, overrides, 2)
}

func TestMergeEmptyOverrides(t *testing.T) {
	defaults := DefaultParams()
	merged := defaults.Merge(ParamSet{})
	assert.Equal(t, defaults, merged)
}
