// Copyright 2025 Lucid ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package attr provides the public API for gradient-based attribution in
// the Lucid attribution framework.
//
// Attribution methods explain a differentiable model's output in terms of
// its input features or internal neurons. Models are consumed through the
// Model, LayerModel and NeuronModel interfaces; package nn provides a
// reference implementation.
//
// Example:
//
//	ig := attr.NewIntegratedGradients(net)
//	res, err := ig.Attribute(input, nil, attr.PathConfig{ReturnDelta: true})
package attr

import (
	"github.com/lucid-ml/lucid/internal/attr"
)

// Evaluation port

// Model is the minimal evaluation capability attribution methods consume.
type Model = attr.Model

// LayerModel extends Model with observation of a named intermediate layer.
type LayerModel = attr.LayerModel

// NeuronModel extends LayerModel with single-neuron gradients.
type NeuronModel = attr.NeuronModel

// Target identifies the scalar output component to attribute.
type Target = attr.Target

// Index returns a Target selecting the same output for every example.
func Index(i int) Target {
	return attr.Index(i)
}

// PerExample returns a Target selecting one output per example.
func PerExample(indices []int) Target {
	return attr.PerExample(indices)
}

// Results and composition

// Result is the output of an attribution computation.
type Result = attr.Result

// Method is the uniform attribution capability NoiseTunnel composes over.
type Method = attr.Method

// MethodFunc adapts an ordinary function to the Method interface.
type MethodFunc = attr.MethodFunc

// Integration rules

// Rule selects the quadrature used to approximate the path integral.
type Rule = attr.Rule

// Supported integration rules.
const (
	GaussLegendre    Rule = attr.GaussLegendre
	RiemannLeft      Rule = attr.RiemannLeft
	RiemannRight     Rule = attr.RiemannRight
	RiemannMiddle    Rule = attr.RiemannMiddle
	RiemannTrapezoid Rule = attr.RiemannTrapezoid
)

// Configuration

// PathConfig holds the shared parameters of the path-integral methods.
type PathConfig = attr.PathConfig

// ShapConfig holds the parameters of GradientShap.
type ShapConfig = attr.ShapConfig

// NoiseConfig holds the NoiseTunnel parameters.
type NoiseConfig = attr.NoiseConfig

// NoiseType selects how NoiseTunnel aggregates per-sample attributions.
type NoiseType = attr.NoiseType

// Supported aggregation modes.
const (
	Smoothgrad   NoiseType = attr.Smoothgrad
	SmoothgradSq NoiseType = attr.SmoothgradSq
	Vargrad      NoiseType = attr.Vargrad
)

// Default parameters shared by the attribution methods.
const (
	DefaultSteps       = attr.DefaultSteps
	DefaultShapSamples = attr.DefaultShapSamples
	DefaultNoiseSample = attr.DefaultNoiseSample
)

// Methods

// IntegratedGradients integrates gradients along the baseline-input path.
type IntegratedGradients = attr.IntegratedGradients

// LayerConductance attributes the output to an intermediate layer's neurons.
type LayerConductance = attr.LayerConductance

// NeuronConductance attributes one neuron's conductance to input features.
type NeuronConductance = attr.NeuronConductance

// GradientShap approximates SHAP values as expected gradients over a
// distribution of baselines.
type GradientShap = attr.GradientShap

// Saliency is the plain-gradient attribution.
type Saliency = attr.Saliency

// InputXGradient attributes by gradient × input.
type InputXGradient = attr.InputXGradient

// NoiseTunnel is a noise-averaging decorator over any attribution Method.
type NoiseTunnel = attr.NoiseTunnel

// NewIntegratedGradients creates the method bound to a model.
func NewIntegratedGradients(m Model) *IntegratedGradients {
	return attr.NewIntegratedGradients(m)
}

// NewLayerConductance creates the method bound to a model and a layer.
func NewLayerConductance(m LayerModel, layer string) *LayerConductance {
	return attr.NewLayerConductance(m, layer)
}

// NewNeuronConductance creates the method bound to a model and a layer.
func NewNeuronConductance(m NeuronModel, layer string) *NeuronConductance {
	return attr.NewNeuronConductance(m, layer)
}

// NewGradientShap creates the method bound to a model.
func NewGradientShap(m Model) *GradientShap {
	return attr.NewGradientShap(m)
}

// NewSaliency creates the method bound to a model.
func NewSaliency(m Model) *Saliency {
	return attr.NewSaliency(m)
}

// NewInputXGradient creates the method bound to a model.
func NewInputXGradient(m Model) *InputXGradient {
	return attr.NewInputXGradient(m)
}

// NewNoiseTunnel wraps an attribution method.
func NewNoiseTunnel(m Method) *NoiseTunnel {
	return attr.NewNoiseTunnel(m)
}

// Errors

// ShapeMismatchError reports incompatible input, baseline, or layer shapes.
type ShapeMismatchError = attr.ShapeMismatchError

// InvalidParameterError reports a parameter that fails validation.
type InvalidParameterError = attr.InvalidParameterError

// NonDifferentiableModelError reports a missing gradient path.
type NonDifferentiableModelError = attr.NonDifferentiableModelError

// UnsupportedAggregationError reports an unknown aggregation mode.
type UnsupportedAggregationError = attr.UnsupportedAggregationError

// CompletenessUnavailableError reports a delta request on a method that
// does not satisfy the completeness axiom.
type CompletenessUnavailableError = attr.CompletenessUnavailableError
