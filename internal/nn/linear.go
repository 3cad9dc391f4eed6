package nn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lucid-ml/lucid/internal/parallel"
	"github.com/lucid-ml/lucid/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [batch_size, out_features]
type Linear struct {
	name        string
	inFeatures  int
	outFeatures int
	weight      *tensor.Tensor // [out_features, in_features]
	bias        *tensor.Tensor // [out_features]
	par         parallel.Config
}

// NewLinear creates a Linear layer with Xavier/Glorot-initialized weights
// and zero biases, drawn from the supplied source.
func NewLinear(name string, inFeatures, outFeatures int, rng *rand.Rand) *Linear {
	weight := tensor.New(tensor.Shape{outFeatures, inFeatures})
	limit := math.Sqrt(6.0 / float64(inFeatures+outFeatures))
	data := weight.Data()
	for i := range data {
		data[i] = (2*rng.Float64() - 1) * limit
	}
	bias := tensor.New(tensor.Shape{outFeatures})
	return &Linear{
		name:        name,
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        bias,
		par:         parallel.DefaultConfig(),
	}
}

// NewLinearFromWeights creates a Linear layer with explicit parameters.
// weight must be [out_features, in_features]; bias may be nil or
// [out_features].
func NewLinearFromWeights(name string, weight, bias *tensor.Tensor) (*Linear, error) {
	shape := weight.Shape()
	if len(shape) != 2 {
		return nil, fmt.Errorf("linear %q: weight must be 2D [out, in], got %v", name, shape)
	}
	out, in := shape[0], shape[1]
	if bias == nil {
		bias = tensor.New(tensor.Shape{out})
	} else if !bias.Shape().Equal(tensor.Shape{out}) {
		return nil, fmt.Errorf("linear %q: bias shape %v does not match %d outputs", name, bias.Shape(), out)
	}
	return &Linear{
		name:        name,
		inFeatures:  in,
		outFeatures: out,
		weight:      weight,
		bias:        bias,
		par:         parallel.DefaultConfig(),
	}, nil
}

// Name returns the layer name.
func (l *Linear) Name() string { return l.name }

// Weight returns the weight tensor [out_features, in_features].
func (l *Linear) Weight() *tensor.Tensor { return l.weight }

// Bias returns the bias tensor [out_features].
func (l *Linear) Bias() *tensor.Tensor { return l.bias }

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int { return l.inFeatures }

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int { return l.outFeatures }

// Forward computes y = x @ W.T + b for a [batch, in_features] input.
// Independent batch rows are evaluated concurrently; rows share no
// mutable state.
func (l *Linear) Forward(input *tensor.Tensor) *tensor.Tensor {
	shape := input.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("Linear.Forward: expected 2D input [batch, features], got shape %v", shape))
	}
	if shape[1] != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input with %d features, got %d", l.inFeatures, shape[1]))
	}

	batch := shape[0]
	out := tensor.New(tensor.Shape{batch, l.outFeatures})
	inData := input.Data()
	outData := out.Data()
	wData := l.weight.Data()
	bData := l.bias.Data()

	parallel.For(batch, func(r int) {
		row := inData[r*l.inFeatures : (r+1)*l.inFeatures]
		dst := outData[r*l.outFeatures : (r+1)*l.outFeatures]
		for o := 0; o < l.outFeatures; o++ {
			w := wData[o*l.inFeatures : (o+1)*l.inFeatures]
			sum := bData[o]
			for j, x := range row {
				sum += w[j] * x
			}
			dst[o] = sum
		}
	}, l.par)
	return out
}

// Backward computes gradInput = gradOutput @ W.
func (l *Linear) Backward(input, gradOutput *tensor.Tensor) (*tensor.Tensor, error) {
	batch := gradOutput.Shape()[0]
	gradIn := tensor.New(tensor.Shape{batch, l.inFeatures})
	gradOutData := gradOutput.Data()
	gradInData := gradIn.Data()
	wData := l.weight.Data()

	parallel.For(batch, func(r int) {
		gOut := gradOutData[r*l.outFeatures : (r+1)*l.outFeatures]
		gIn := gradInData[r*l.inFeatures : (r+1)*l.inFeatures]
		for o, g := range gOut {
			if g == 0 {
				continue
			}
			w := wData[o*l.inFeatures : (o+1)*l.inFeatures]
			for j := range gIn {
				gIn[j] += g * w[j]
			}
		}
	}, l.par)
	return gradIn, nil
}
