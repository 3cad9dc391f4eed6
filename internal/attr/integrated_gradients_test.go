package attr_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucid-ml/lucid/internal/attr"
	"github.com/lucid-ml/lucid/internal/nn"
	"github.com/lucid-ml/lucid/internal/tensor"
)

// toyModel builds a hand-computable 3-3-1 model:
//
//	F(x) = relu(x1-1) + relu(x2) + relu(x3)
//
// For input (2, 1, 1) and a zero baseline the exact integrated gradients
// are (1, 1, 1) and the output delta is 3.
func toyModel(t *testing.T) *nn.Network {
	t.Helper()
	w1, err := tensor.FromSlice([]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}, tensor.Shape{3, 3})
	require.NoError(t, err)
	b1, err := tensor.FromSlice([]float64{-1, 0, 0}, tensor.Shape{3})
	require.NoError(t, err)
	hidden, err := nn.NewLinearFromWeights("hidden", w1, b1)
	require.NoError(t, err)

	w2, err := tensor.FromSlice([]float64{1, 1, 1}, tensor.Shape{1, 3})
	require.NoError(t, err)
	output, err := nn.NewLinearFromWeights("output", w2, nil)
	require.NoError(t, err)

	net, err := nn.NewNetwork(hidden, nn.NewReLU("relu"), output)
	require.NoError(t, err)
	return net
}

// linearModel builds a bias-free single-layer model with two outputs.
func linearModel(t *testing.T) *nn.Network {
	t.Helper()
	w, err := tensor.FromSlice([]float64{
		1, 2, 3,
		-1, 0.5, 4,
	}, tensor.Shape{2, 3})
	require.NoError(t, err)
	fc, err := nn.NewLinearFromWeights("fc", w, nil)
	require.NoError(t, err)
	net, err := nn.NewNetwork(fc)
	require.NoError(t, err)
	return net
}

func smoothModel(t *testing.T, seed int64) *nn.Network {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	net, err := nn.NewNetwork(
		nn.NewLinear("fc1", 3, 5, rng),
		nn.NewTanh("tanh"),
		nn.NewLinear("fc2", 5, 2, rng),
	)
	require.NoError(t, err)
	return net
}

func TestIntegratedGradientsLinearModelIsExact(t *testing.T) {
	net := linearModel(t)
	ig := attr.NewIntegratedGradients(net)

	input, err := tensor.FromSlice([]float64{1, -2, 0.5}, tensor.Shape{1, 3})
	require.NoError(t, err)
	baseline, err := tensor.FromSlice([]float64{0.5, 1, 0}, tensor.Shape{1, 3})
	require.NoError(t, err)

	// A linear model has a constant gradient, so every rule with any step
	// count reproduces W_target x (input - baseline) exactly.
	rules := []attr.Rule{attr.GaussLegendre, attr.RiemannLeft, attr.RiemannMiddle, attr.RiemannTrapezoid}
	for _, rule := range rules {
		for _, steps := range []int{1, 3, 25} {
			res, err := ig.Attribute(input, baseline, attr.PathConfig{
				Target: attr.Index(0), Steps: steps, Rule: rule, ReturnDelta: true,
			})
			require.NoError(t, err)
			assert.InDeltaSlice(t, []float64{0.5, -6, 1.5}, res.Attribution.Data(), 1e-10,
				"%v steps=%d", rule, steps)
			require.Len(t, res.Delta, 1)
			assert.InDelta(t, 0, res.Delta[0], 1e-10, "%v steps=%d", rule, steps)
		}
	}
}

func TestIntegratedGradientsBaselineIdentity(t *testing.T) {
	net := smoothModel(t, 9)
	ig := attr.NewIntegratedGradients(net)

	rng := rand.New(rand.NewSource(2))
	input := tensor.Randn(tensor.Shape{2, 3}, rng)

	res, err := ig.Attribute(input, input.Clone(), attr.PathConfig{ReturnDelta: true})
	require.NoError(t, err)
	for _, v := range res.Attribution.Data() {
		assert.InDelta(t, 0, v, 0, "input == baseline must attribute nothing")
	}
	for _, d := range res.Delta {
		assert.InDelta(t, 0, d, 1e-12)
	}
}

func TestIntegratedGradientsWorkedExample(t *testing.T) {
	net := toyModel(t)
	ig := attr.NewIntegratedGradients(net)

	input, err := tensor.FromSlice([]float64{2, 1, 1}, tensor.Shape{1, 3})
	require.NoError(t, err)

	// Defaults: zero baseline, 50 Gauss-Legendre steps, output 0.
	res, err := ig.Attribute(input, nil, attr.PathConfig{ReturnDelta: true})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1, 1}, res.Attribution.Data(), 1e-9)
	require.Len(t, res.Delta, 1)
	assert.InDelta(t, 0, res.Delta[0], 1e-9)
}

func TestIntegratedGradientsSingleStepIsCoarse(t *testing.T) {
	net := toyModel(t)
	ig := attr.NewIntegratedGradients(net)

	input, err := tensor.FromSlice([]float64{2, 1, 1}, tensor.Shape{1, 3})
	require.NoError(t, err)

	// One Gauss-Legendre step samples only the path midpoint, where the
	// first hidden unit sits exactly at its kink: the first feature gets
	// nothing and the completeness delta reports the miss.
	res, err := ig.Attribute(input, nil, attr.PathConfig{Steps: 1, ReturnDelta: true})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 1, 1}, res.Attribution.Data(), 1e-12)
	assert.InDelta(t, -1, res.Delta[0], 1e-12)
}

func TestIntegratedGradientsCompletenessImprovesWithSteps(t *testing.T) {
	net := smoothModel(t, 17)
	ig := attr.NewIntegratedGradients(net)

	rng := rand.New(rand.NewSource(3))
	input := tensor.Randn(tensor.Shape{1, 3}, rng)
	baseline := tensor.Randn(tensor.Shape{1, 3}, rng)

	coarse, err := ig.Attribute(input, baseline, attr.PathConfig{
		Steps: 4, Rule: attr.RiemannLeft, ReturnDelta: true,
	})
	require.NoError(t, err)
	fine, err := ig.Attribute(input, baseline, attr.PathConfig{
		Steps: 400, Rule: attr.RiemannLeft, ReturnDelta: true,
	})
	require.NoError(t, err)

	require.NotZero(t, coarse.Delta[0])
	assert.Less(t, abs(fine.Delta[0]), abs(coarse.Delta[0]))

	gl, err := ig.Attribute(input, baseline, attr.PathConfig{
		Steps: 100, ReturnDelta: true,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0, gl.Delta[0], 1e-6)
}

func TestIntegratedGradientsBatchedMatchesPerExample(t *testing.T) {
	net := smoothModel(t, 23)
	ig := attr.NewIntegratedGradients(net)

	rng := rand.New(rand.NewSource(4))
	batch := tensor.Randn(tensor.Shape{3, 3}, rng)
	cfg := attr.PathConfig{Target: attr.Index(1), Steps: 20, ReturnDelta: true}

	batched, err := ig.Attribute(batch, nil, cfg)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		single, err := ig.Attribute(tensor.Repeat(batch.Row(i), 1), nil, cfg)
		require.NoError(t, err)
		assert.InDeltaSlice(t, single.Attribution.Data(), batched.Attribution.Row(i).Data(), 1e-12,
			"example %d", i)
		assert.InDelta(t, single.Delta[0], batched.Delta[i], 1e-12, "example %d", i)
	}
}

func TestIntegratedGradientsPerExampleTargets(t *testing.T) {
	net := linearModel(t)
	ig := attr.NewIntegratedGradients(net)

	input, err := tensor.FromSlice([]float64{1, 1, 1, 2, 2, 2}, tensor.Shape{2, 3})
	require.NoError(t, err)

	res, err := ig.Attribute(input, nil, attr.PathConfig{
		Target: attr.PerExample([]int{0, 1}), Steps: 5,
	})
	require.NoError(t, err)
	// Row 0 attributes output 0, row 1 output 1: W_o x input.
	assert.InDeltaSlice(t, []float64{1, 2, 3}, res.Attribution.Row(0).Data(), 1e-10)
	assert.InDeltaSlice(t, []float64{-2, 1, 8}, res.Attribution.Row(1).Data(), 1e-10)
	assert.Nil(t, res.Delta, "delta only on request")
}

func TestIntegratedGradientsBaselineBroadcast(t *testing.T) {
	net := smoothModel(t, 31)
	ig := attr.NewIntegratedGradients(net)

	rng := rand.New(rand.NewSource(6))
	input := tensor.Randn(tensor.Shape{3, 3}, rng)
	base := tensor.Randn(tensor.Shape{3}, rng)
	cfg := attr.PathConfig{Steps: 10}

	perExample, err := ig.Attribute(input, base, cfg)
	require.NoError(t, err)

	batchOfOne, err := ig.Attribute(input, tensor.Repeat(base, 1), cfg)
	require.NoError(t, err)
	assert.Equal(t, perExample.Attribution.Data(), batchOfOne.Attribution.Data())

	explicit, err := ig.Attribute(input, tensor.Repeat(base, 3), cfg)
	require.NoError(t, err)
	assert.Equal(t, perExample.Attribution.Data(), explicit.Attribution.Data())
}

func TestIntegratedGradientsParameterErrors(t *testing.T) {
	net := toyModel(t)
	ig := attr.NewIntegratedGradients(net)
	input := tensor.Ones(tensor.Shape{1, 3})

	_, err := ig.Attribute(input, nil, attr.PathConfig{Steps: -1})
	var paramErr *attr.InvalidParameterError
	require.ErrorAs(t, err, &paramErr)

	_, err = ig.Attribute(input, tensor.Ones(tensor.Shape{1, 4}), attr.PathConfig{})
	var shapeErr *attr.ShapeMismatchError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "baseline", shapeErr.Context)

	_, err = ig.Attribute(input, nil, attr.PathConfig{Target: attr.Index(3)})
	require.ErrorAs(t, err, &paramErr)
	assert.Equal(t, "target", paramErr.Name)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
