package attr

import (
	"github.com/lucid-ml/lucid/internal/tensor"
)

// pathIntegrator approximates the line integral of gradients along the
// straight path from a baseline batch to an input batch.
//
// All steps of all examples are flattened into a single [steps*B, ...]
// evaluation batch (step-major: step 0 of every example first), so the
// model sees one batched call instead of one call per step. For row-wise
// models this is numerically identical to per-example evaluation; that is
// the behavior this package preserves and tests.
type pathIntegrator struct {
	steps   int
	rule    Rule
	alphas  []float64
	weights []float64
}

func newPathIntegrator(steps int, rule Rule) (*pathIntegrator, error) {
	if steps == 0 {
		steps = DefaultSteps
	}
	alphas, weights, err := ruleParameters(rule, steps)
	if err != nil {
		return nil, err
	}
	return &pathIntegrator{steps: steps, rule: rule, alphas: alphas, weights: weights}, nil
}

// scaledInputs builds the flattened batch of interpolated points
// x_i = baseline + alpha_i * (input - baseline).
func (p *pathIntegrator) scaledInputs(input, baseline *tensor.Tensor) *tensor.Tensor {
	diff := input.Sub(baseline)
	batches := make([]*tensor.Tensor, p.steps)
	for i, alpha := range p.alphas {
		batches[i] = baseline.AddScaled(diff, alpha)
	}
	return tensor.Cat(batches, 0)
}

// reduceSteps collapses a flattened [steps*B, ...] gradient batch into the
// quadrature-weighted average gradient [B, ...].
func (p *pathIntegrator) reduceSteps(grads *tensor.Tensor, batch int) *tensor.Tensor {
	perExample := grads.Shape()[1:]
	out := tensor.New(append(tensor.Shape{batch}, perExample...))
	outData := out.Data()
	gradData := grads.Data()
	rowLen := perExample.NumElements()
	for s := 0; s < p.steps; s++ {
		w := p.weights[s]
		stepOffset := s * batch * rowLen
		for i := 0; i < batch*rowLen; i++ {
			outData[i] += w * gradData[stepOffset+i]
		}
	}
	return out
}

// averageGradient evaluates the model gradient at every interpolated point
// in one flattened call and returns the weighted average gradient per
// example, shaped like the input batch.
func (p *pathIntegrator) averageGradient(m Model, input, baseline *tensor.Tensor, target Target) (*tensor.Tensor, error) {
	scaled := p.scaledInputs(input, baseline)
	grads, err := m.Gradient(scaled, target.tile(p.steps))
	if err != nil {
		return nil, err
	}
	if !grads.Shape().Equal(scaled.Shape()) {
		return nil, &ShapeMismatchError{Context: "model gradient", Want: scaled.Shape(), Got: grads.Shape()}
	}
	return p.reduceSteps(grads, input.Shape()[0]), nil
}
