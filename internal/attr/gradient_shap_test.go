package attr_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucid-ml/lucid/internal/attr"
	"github.com/lucid-ml/lucid/internal/tensor"
)

func TestGradientShapDeterministicWithSeed(t *testing.T) {
	net := smoothModel(t, 41)
	gs := attr.NewGradientShap(net)

	rng := rand.New(rand.NewSource(10))
	input := tensor.Randn(tensor.Shape{2, 3}, rng)
	baselines := tensor.Randn(tensor.Shape{4, 3}, rng)

	cfg := func() attr.ShapConfig {
		return attr.ShapConfig{
			Samples:     20,
			Stdev:       0.1,
			ReturnDelta: true,
			Rand:        rand.New(rand.NewSource(99)),
		}
	}

	first, err := gs.Attribute(input, baselines, cfg())
	require.NoError(t, err)
	second, err := gs.Attribute(input, baselines, cfg())
	require.NoError(t, err)

	assert.Equal(t, first.Attribution.Data(), second.Attribution.Data())
	assert.Equal(t, first.Delta, second.Delta)
}

func TestGradientShapLinearSingleBaselineIsExact(t *testing.T) {
	net := linearModel(t)
	gs := attr.NewGradientShap(net)

	input, err := tensor.FromSlice([]float64{1, -2, 0.5}, tensor.Shape{1, 3})
	require.NoError(t, err)
	baselines, err := tensor.FromSlice([]float64{0.5, 1, 0}, tensor.Shape{1, 3})
	require.NoError(t, err)

	// A linear model has a constant gradient, so the interpolation point
	// does not matter: every draw contributes exactly W x (input - baseline).
	res, err := gs.Attribute(input, baselines, attr.ShapConfig{
		Target:      attr.Index(0),
		Samples:     7,
		ReturnDelta: true,
		Rand:        rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, -6, 1.5}, res.Attribution.Data(), 1e-10)
	require.Len(t, res.Delta, 1)
	assert.InDelta(t, 0, res.Delta[0], 1e-10)
}

func TestGradientShapNoiseDoesNotBiasLinearModel(t *testing.T) {
	net := linearModel(t)
	gs := attr.NewGradientShap(net)

	input := tensor.Ones(tensor.Shape{1, 3})
	baselines := tensor.Zeros(tensor.Shape{1, 3})

	// With a constant gradient the added Gaussian noise cannot change the
	// result at all, not just in expectation.
	res, err := gs.Attribute(input, baselines, attr.ShapConfig{
		Samples: 10,
		Stdev:   0.5,
		Rand:    rand.New(rand.NewSource(2)),
	})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2, 3}, res.Attribution.Data(), 1e-10)
}

func TestGradientShapConvergesOverBaselineDistribution(t *testing.T) {
	net := linearModel(t)
	gs := attr.NewGradientShap(net)

	input := tensor.Ones(tensor.Shape{1, 3})
	baselines, err := tensor.FromSlice([]float64{
		0, 0, 0,
		2, 2, 2,
	}, tensor.Shape{2, 3})
	require.NoError(t, err)

	// Expected attribution is W x (input - mean baseline) = W x 0 = 0;
	// the sample mean over many draws must land near it.
	res, err := gs.Attribute(input, baselines, attr.ShapConfig{
		Samples:     2000,
		ReturnDelta: true,
		Rand:        rand.New(rand.NewSource(3)),
	})
	require.NoError(t, err)
	for j, v := range res.Attribution.Data() {
		assert.InDelta(t, 0, v, 0.5, "feature %d", j)
	}
	assert.InDelta(t, 0, res.Delta[0], 1.5)
}

func TestGradientShapBatchRows(t *testing.T) {
	net := smoothModel(t, 43)
	gs := attr.NewGradientShap(net)

	rng := rand.New(rand.NewSource(14))
	input := tensor.Randn(tensor.Shape{3, 3}, rng)
	baselines := tensor.Zeros(tensor.Shape{1, 3})

	res, err := gs.Attribute(input, baselines, attr.ShapConfig{
		Samples: 8,
		Rand:    rand.New(rand.NewSource(5)),
	})
	require.NoError(t, err)
	require.True(t, res.Attribution.Shape().Equal(input.Shape()))
	assert.Nil(t, res.Delta)
}

func TestGradientShapParameterErrors(t *testing.T) {
	net := toyModel(t)
	gs := attr.NewGradientShap(net)
	input := tensor.Ones(tensor.Shape{1, 3})
	baselines := tensor.Zeros(tensor.Shape{2, 3})

	var paramErr *attr.InvalidParameterError
	_, err := gs.Attribute(input, baselines, attr.ShapConfig{Samples: -2})
	require.ErrorAs(t, err, &paramErr)
	assert.Equal(t, "samples", paramErr.Name)

	_, err = gs.Attribute(input, baselines, attr.ShapConfig{Stdev: -0.1})
	require.ErrorAs(t, err, &paramErr)
	assert.Equal(t, "stdev", paramErr.Name)

	var shapeErr *attr.ShapeMismatchError
	_, err = gs.Attribute(input, nil, attr.ShapConfig{})
	require.ErrorAs(t, err, &shapeErr)

	_, err = gs.Attribute(input, tensor.Zeros(tensor.Shape{2, 4}), attr.ShapConfig{})
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "baseline distribution", shapeErr.Context)
}
