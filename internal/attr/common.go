package attr

import (
	"fmt"

	"github.com/lucid-ml/lucid/internal/tensor"
)

// Default parameters shared by the attribution methods.
const (
	DefaultSteps       = 50
	DefaultShapSamples = 50
	DefaultNoiseSample = 5
)

// expandBaseline validates the baseline against the input batch and
// broadcasts a single-example baseline across the batch. The returned
// tensor always has the input's full shape.
func expandBaseline(input, baseline *tensor.Tensor) (*tensor.Tensor, error) {
	if len(input.Shape()) < 1 {
		return nil, &InvalidParameterError{Name: "input", Reason: "must have a leading batch dimension"}
	}
	if baseline == nil {
		return tensor.ZerosLike(input), nil
	}
	if baseline.Shape().Equal(input.Shape()) {
		return baseline, nil
	}
	// A per-example baseline (no batch dimension) or a batch of one is
	// broadcast across all examples.
	exampleShape := input.Shape()[1:]
	if baseline.Shape().Equal(exampleShape) {
		return tensor.Repeat(baseline, input.Shape()[0]), nil
	}
	if len(baseline.Shape()) == len(input.Shape()) && baseline.Shape()[0] == 1 &&
		baseline.Shape()[1:].Equal(exampleShape) {
		return tensor.Repeat(baseline.Row(0), input.Shape()[0]), nil
	}
	return nil, &ShapeMismatchError{Context: "baseline", Want: input.Shape(), Got: baseline.Shape()}
}

// outputDelta evaluates the model at the input and baseline batches and
// returns the per-example difference of the selected output scalar.
func outputDelta(m Model, input, baseline *tensor.Tensor, target Target) ([]float64, error) {
	outIn, err := m.Forward(input)
	if err != nil {
		return nil, err
	}
	outBase, err := m.Forward(baseline)
	if err != nil {
		return nil, err
	}
	inScores, err := selectTarget(outIn, target)
	if err != nil {
		return nil, err
	}
	baseScores, err := selectTarget(outBase, target)
	if err != nil {
		return nil, err
	}
	delta := make([]float64, len(inScores))
	for i := range delta {
		delta[i] = inScores[i] - baseScores[i]
	}
	return delta, nil
}

// selectTarget extracts the selected scalar from a [B, outputs] batch.
func selectTarget(output *tensor.Tensor, target Target) ([]float64, error) {
	shape := output.Shape()
	if len(shape) != 2 {
		return nil, &InvalidParameterError{Name: "model output", Reason: fmt.Sprintf("expected [batch, outputs], got shape %v", shape)}
	}
	resolved, err := target.Resolve(shape[0], shape[1])
	if err != nil {
		return nil, err
	}
	scores := make([]float64, shape[0])
	for i, idx := range resolved {
		scores[i] = output.At(i, idx)
	}
	return scores, nil
}

// completenessDelta is sum(attribution) - (output(input) - output(baseline))
// per example, the signed residual of the completeness axiom.
func completenessDelta(attribution *tensor.Tensor, outDelta []float64) []float64 {
	delta := make([]float64, len(outDelta))
	for i := range outDelta {
		delta[i] = attribution.Row(i).Sum() - outDelta[i]
	}
	return delta
}

// validatePositive reports an InvalidParameterError when v < 1.
func validatePositive(name string, v int) error {
	if v < 1 {
		return &InvalidParameterError{Name: name, Reason: fmt.Sprintf("must be >= 1, got %d", v)}
	}
	return nil
}
