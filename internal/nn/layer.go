// Package nn implements a small reference stack of differentiable layers.
//
// The package exists so the attribution engine has a real evaluation port
// to drive: Network implements attr.Model, attr.LayerModel and
// attr.NeuronModel with analytic per-layer vector-Jacobian products.
// Every layer is strictly row-wise (no batch statistics), so evaluating a
// flattened step/sample batch is numerically identical to evaluating the
// examples one by one.
package nn

import (
	"math"

	"github.com/lucid-ml/lucid/internal/attr"
	"github.com/lucid-ml/lucid/internal/tensor"
)

// Layer is one named stage of a feedforward Network.
type Layer interface {
	// Name identifies the layer for activation capture and hooks.
	Name() string

	// Forward computes the layer output for a [B, features] batch.
	Forward(input *tensor.Tensor) *tensor.Tensor

	// Backward computes the vector-Jacobian product at input: given the
	// gradient of some scalar with respect to the layer output, it returns
	// the gradient with respect to the layer input. Layers without a
	// usable gradient return a NonDifferentiableModelError.
	Backward(input, gradOutput *tensor.Tensor) (*tensor.Tensor, error)
}

// ReLU applies the element-wise function f(x) = max(0, x).
// The subgradient at 0 is defined as 0.
type ReLU struct {
	name string
}

// NewReLU creates a named ReLU activation layer.
func NewReLU(name string) *ReLU {
	return &ReLU{name: name}
}

// Name returns the layer name.
func (r *ReLU) Name() string { return r.name }

// Forward applies ReLU activation.
func (r *ReLU) Forward(input *tensor.Tensor) *tensor.Tensor {
	out := tensor.ZerosLike(input)
	outData := out.Data()
	for i, v := range input.Data() {
		if v > 0 {
			outData[i] = v
		}
	}
	return out
}

// Backward passes gradients through where the input was positive.
func (r *ReLU) Backward(input, gradOutput *tensor.Tensor) (*tensor.Tensor, error) {
	out := tensor.ZerosLike(input)
	outData := out.Data()
	inData := input.Data()
	for i, g := range gradOutput.Data() {
		if inData[i] > 0 {
			outData[i] = g
		}
	}
	return out, nil
}

// Sigmoid applies the element-wise function σ(x) = 1 / (1 + exp(-x)).
type Sigmoid struct {
	name string
}

// NewSigmoid creates a named Sigmoid activation layer.
func NewSigmoid(name string) *Sigmoid {
	return &Sigmoid{name: name}
}

// Name returns the layer name.
func (s *Sigmoid) Name() string { return s.name }

// Forward applies sigmoid activation.
func (s *Sigmoid) Forward(input *tensor.Tensor) *tensor.Tensor {
	out := tensor.ZerosLike(input)
	outData := out.Data()
	for i, v := range input.Data() {
		outData[i] = 1.0 / (1.0 + math.Exp(-v))
	}
	return out
}

// Backward uses σ'(x) = σ(x)(1 − σ(x)).
func (s *Sigmoid) Backward(input, gradOutput *tensor.Tensor) (*tensor.Tensor, error) {
	out := tensor.ZerosLike(input)
	outData := out.Data()
	inData := input.Data()
	for i, g := range gradOutput.Data() {
		sig := 1.0 / (1.0 + math.Exp(-inData[i]))
		outData[i] = g * sig * (1 - sig)
	}
	return out, nil
}

// Tanh applies the element-wise hyperbolic tangent.
type Tanh struct {
	name string
}

// NewTanh creates a named Tanh activation layer.
func NewTanh(name string) *Tanh {
	return &Tanh{name: name}
}

// Name returns the layer name.
func (t *Tanh) Name() string { return t.name }

// Forward applies tanh activation.
func (t *Tanh) Forward(input *tensor.Tensor) *tensor.Tensor {
	out := tensor.ZerosLike(input)
	outData := out.Data()
	for i, v := range input.Data() {
		outData[i] = math.Tanh(v)
	}
	return out
}

// Backward uses tanh'(x) = 1 − tanh²(x).
func (t *Tanh) Backward(input, gradOutput *tensor.Tensor) (*tensor.Tensor, error) {
	out := tensor.ZerosLike(input)
	outData := out.Data()
	inData := input.Data()
	for i, g := range gradOutput.Data() {
		th := math.Tanh(inData[i])
		outData[i] = g * (1 - th*th)
	}
	return out, nil
}

// Step applies the Heaviside step function. Its derivative is zero almost
// everywhere and undefined at 0, so it deliberately has no gradient path;
// attribution through a Step layer fails with NonDifferentiableModelError.
type Step struct {
	name string
}

// NewStep creates a named Step layer.
func NewStep(name string) *Step {
	return &Step{name: name}
}

// Name returns the layer name.
func (s *Step) Name() string { return s.name }

// Forward maps positive inputs to 1 and the rest to 0.
func (s *Step) Forward(input *tensor.Tensor) *tensor.Tensor {
	out := tensor.ZerosLike(input)
	outData := out.Data()
	for i, v := range input.Data() {
		if v > 0 {
			outData[i] = 1
		}
	}
	return out
}

// Backward always fails: there is no useful gradient through a step.
func (s *Step) Backward(input, gradOutput *tensor.Tensor) (*tensor.Tensor, error) {
	return nil, &attr.NonDifferentiableModelError{Op: s.name}
}
