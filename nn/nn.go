// Copyright 2025 Lucid ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for the reference network stack of
// the Lucid attribution framework.
//
// Network implements the evaluation port consumed by package attr:
// forward evaluation, input gradients, and observation of intermediate
// layer activations through scoped forward hooks.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	net, err := nn.NewNetwork(
//	    nn.NewLinear("hidden", 3, 4, rng),
//	    nn.NewReLU("relu"),
//	    nn.NewLinear("output", 4, 2, rng),
//	)
package nn

import (
	"math/rand"

	"github.com/lucid-ml/lucid/internal/nn"
	"github.com/lucid-ml/lucid/internal/tensor"
)

// Layer is one named stage of a feedforward Network.
type Layer = nn.Layer

// Network chains named layers into a feedforward differentiable model.
type Network = nn.Network

// Linear is a fully connected layer: y = x @ W.T + b.
type Linear = nn.Linear

// ReLU applies f(x) = max(0, x) element-wise.
type ReLU = nn.ReLU

// Sigmoid applies σ(x) = 1 / (1 + exp(-x)) element-wise.
type Sigmoid = nn.Sigmoid

// Tanh applies the hyperbolic tangent element-wise.
type Tanh = nn.Tanh

// Step applies the Heaviside step function; it has no gradient path.
type Step = nn.Step

// NewNetwork creates a Network from uniquely named layers.
func NewNetwork(layers ...Layer) (*Network, error) {
	return nn.NewNetwork(layers...)
}

// NewLinear creates a Linear layer with Xavier-initialized weights.
func NewLinear(name string, inFeatures, outFeatures int, rng *rand.Rand) *Linear {
	return nn.NewLinear(name, inFeatures, outFeatures, rng)
}

// NewLinearFromWeights creates a Linear layer with explicit parameters.
func NewLinearFromWeights(name string, weight, bias *tensor.Tensor) (*Linear, error) {
	return nn.NewLinearFromWeights(name, weight, bias)
}

// NewReLU creates a named ReLU activation layer.
func NewReLU(name string) *ReLU {
	return nn.NewReLU(name)
}

// NewSigmoid creates a named Sigmoid activation layer.
func NewSigmoid(name string) *Sigmoid {
	return nn.NewSigmoid(name)
}

// NewTanh creates a named Tanh activation layer.
func NewTanh(name string) *Tanh {
	return nn.NewTanh(name)
}

// NewStep creates a named Step layer.
func NewStep(name string) *Step {
	return nn.NewStep(name)
}
