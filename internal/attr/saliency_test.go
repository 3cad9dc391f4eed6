package attr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucid-ml/lucid/internal/attr"
	"github.com/lucid-ml/lucid/internal/tensor"
)

func TestSaliency(t *testing.T) {
	net := linearModel(t)
	s := attr.NewSaliency(net)

	input := tensor.Ones(tensor.Shape{1, 3})

	res, err := s.Attribute(input, attr.Index(1), true)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0.5, 4}, res.Attribution.Data(), 1e-12,
		"absolute gradient of output 1")

	res, err = s.Attribute(input, attr.Index(1), false)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-1, 0.5, 4}, res.Attribution.Data(), 1e-12,
		"signed gradient of output 1")
	assert.Nil(t, res.Delta)
}

func TestInputXGradient(t *testing.T) {
	net := linearModel(t)
	g := attr.NewInputXGradient(net)

	input, err := tensor.FromSlice([]float64{2, -1, 0.5}, tensor.Shape{1, 3})
	require.NoError(t, err)

	res, err := g.Attribute(input, attr.Index(0))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, -2, 1.5}, res.Attribution.Data(), 1e-12)
}

func TestSaliencyTargetOutOfRange(t *testing.T) {
	net := linearModel(t)
	s := attr.NewSaliency(net)

	_, err := s.Attribute(tensor.Ones(tensor.Shape{1, 3}), attr.Index(5), true)
	var paramErr *attr.InvalidParameterError
	require.ErrorAs(t, err, &paramErr)
}
