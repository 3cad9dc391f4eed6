// Package attr implements gradient-based attribution methods.
//
// The package explains a differentiable model's output in terms of its
// input features or internal neurons:
//   - IntegratedGradients: path integral of gradients from a baseline
//   - LayerConductance / NeuronConductance: the same integral observed at
//     an intermediate layer
//   - GradientShap: expected gradients over a distribution of baselines
//   - Saliency / InputXGradient: single-gradient attributions
//   - NoiseTunnel: noise-averaging decorator over any attribution method
//
// Models are consumed through the Model / LayerModel / NeuronModel
// interfaces; the package never looks inside the model and never mutates
// its parameters. All parameter validation happens before the first model
// evaluation.
package attr

import (
	"github.com/lucid-ml/lucid/internal/tensor"
)

// Model is the minimal evaluation capability attribution methods consume.
//
// Forward maps an input batch [B, features...] to an output batch
// [B, outputs]. Gradient returns the gradient of the per-example scalar
// selected by target with respect to the input batch, shaped like the
// input batch. Gradient computation must not mutate model parameters.
type Model interface {
	Forward(batch *tensor.Tensor) (*tensor.Tensor, error)
	Gradient(batch *tensor.Tensor, target Target) (*tensor.Tensor, error)
}

// LayerModel extends Model with observation of a named intermediate layer.
//
// LayerActivation returns the named layer's output for a forward pass.
// LayerGradient performs the unmodified forward pass and returns the
// layer's activation together with the gradient of the selected output
// scalar with respect to that activation.
type LayerModel interface {
	Model
	LayerActivation(batch *tensor.Tensor, layer string) (*tensor.Tensor, error)
	LayerGradient(batch *tensor.Tensor, layer string, target Target) (activation, gradient *tensor.Tensor, err error)
}

// NeuronModel extends LayerModel with the gradient of a single neuron's
// activation with respect to the input batch.
type NeuronModel interface {
	LayerModel
	NeuronGradient(batch *tensor.Tensor, layer string, neuron int) (*tensor.Tensor, error)
}

// Result is the output of an attribution computation.
type Result struct {
	// Attribution is shaped like the evaluation point: the input batch for
	// input-level methods, the layer activation for layer-level methods.
	Attribution *tensor.Tensor

	// Delta holds the per-example completeness error
	// sum(attribution) - (output(input) - output(baseline)).
	// It is nil when not requested or when the method does not satisfy the
	// completeness axiom.
	Delta []float64
}

// Method is the uniform capability NoiseTunnel composes over: produce
// attributions (and an optional completeness error) for an input batch.
type Method interface {
	Attribute(input *tensor.Tensor) (*Result, error)
}

// MethodFunc adapts an ordinary function to the Method interface.
type MethodFunc func(*tensor.Tensor) (*Result, error)

// Attribute calls f(input).
func (f MethodFunc) Attribute(input *tensor.Tensor) (*Result, error) {
	return f(input)
}
