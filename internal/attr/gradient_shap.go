package attr

import (
	"fmt"
	"math/rand"

	"github.com/lucid-ml/lucid/internal/tensor"
)

// ShapConfig holds the parameters of GradientShap.
type ShapConfig struct {
	// Target selects the scalar output component to attribute.
	Target Target
	// Samples is the number of random (baseline, alpha) draws per example
	// (default DefaultShapSamples).
	Samples int
	// Stdev adds zero-mean Gaussian noise of this standard deviation to
	// each sampled point, smoothing the expectation. Zero disables noise.
	Stdev float64
	// ReturnDelta requests the per-example completeness error, computed
	// against the mean of the baseline distribution.
	ReturnDelta bool
	// Rand is the randomness source. A fixed seed makes two identical
	// calls produce identical results; nil draws a fresh seed.
	Rand *rand.Rand
}

// GradientShap approximates SHAP values as expected gradients over a
// distribution of baselines: each draw picks a random baseline and a
// uniformly random point on the path toward the input, and accumulates
// gradient × (input − baseline). The sample mean approximates the same
// integral as IntegratedGradients, trading determinism for robustness to
// the choice of baseline.
type GradientShap struct {
	model Model
}

// NewGradientShap creates the method bound to a model.
func NewGradientShap(m Model) *GradientShap {
	return &GradientShap{model: m}
}

// Attribute computes attributions shaped like the input batch. baselines
// must be a batch of candidate baselines [K, features...] with K >= 1,
// each shaped like one input example.
func (gs *GradientShap) Attribute(input, baselines *tensor.Tensor, cfg ShapConfig) (*Result, error) {
	samples := cfg.Samples
	if samples == 0 {
		samples = DefaultShapSamples
	}
	if err := validatePositive("samples", samples); err != nil {
		return nil, err
	}
	if cfg.Stdev < 0 {
		return nil, &InvalidParameterError{Name: "stdev", Reason: fmt.Sprintf("must be >= 0, got %v", cfg.Stdev)}
	}
	if len(input.Shape()) < 1 {
		return nil, &InvalidParameterError{Name: "input", Reason: "must have a leading batch dimension"}
	}
	exampleShape := input.Shape()[1:]
	if baselines == nil || len(baselines.Shape()) != len(exampleShape)+1 ||
		!baselines.Shape()[1:].Equal(exampleShape) {
		got := tensor.Shape(nil)
		if baselines != nil {
			got = baselines.Shape()
		}
		return nil, &ShapeMismatchError{
			Context: "baseline distribution",
			Want:    append(tensor.Shape{-1}, exampleShape...),
			Got:     got,
		}
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63())) //nolint:gosec // statistical sampling, not security
	}

	batch := input.Shape()[0]
	numBaselines := baselines.Shape()[0]

	// Draw all sample points up front and flatten them into one
	// [samples*B, ...] evaluation batch (sample-major, like the path
	// integrator's step-major layout).
	points := make([]*tensor.Tensor, 0, samples*batch)
	diffs := make([]*tensor.Tensor, 0, samples*batch)
	for s := 0; s < samples; s++ {
		for i := 0; i < batch; i++ {
			example := input.Row(i)
			base := baselines.Row(rng.Intn(numBaselines))
			alpha := rng.Float64()
			diff := example.Sub(base)
			point := base.AddScaled(diff, alpha)
			if cfg.Stdev > 0 {
				noise := tensor.Randn(point.Shape(), rng)
				point = point.AddScaled(noise, cfg.Stdev)
			}
			points = append(points, point)
			diffs = append(diffs, diff)
		}
	}
	flat := tensor.Stack(points)

	grads, err := gs.model.Gradient(flat, cfg.Target.tile(samples))
	if err != nil {
		return nil, err
	}
	if !grads.Shape().Equal(flat.Shape()) {
		return nil, &ShapeMismatchError{Context: "model gradient", Want: flat.Shape(), Got: grads.Shape()}
	}

	// Per-row attribution grad × (input − baseline), then the sample mean.
	attribution := tensor.New(input.Shape())
	attrData := attribution.Data()
	gradData := grads.Data()
	rowLen := exampleShape.NumElements()
	inv := 1.0 / float64(samples)
	for r := 0; r < samples*batch; r++ {
		diffData := diffs[r].Data()
		dst := attrData[(r%batch)*rowLen:]
		src := gradData[r*rowLen:]
		for j := 0; j < rowLen; j++ {
			dst[j] += inv * src[j] * diffData[j]
		}
	}

	res := &Result{Attribution: attribution}
	if cfg.ReturnDelta {
		meanBaseline := meanBaselineOf(baselines)
		expanded := tensor.Repeat(meanBaseline, batch)
		outDelta, err := outputDelta(gs.model, input, expanded, cfg.Target)
		if err != nil {
			return nil, err
		}
		res.Delta = completenessDelta(attribution, outDelta)
	}
	return res, nil
}

// meanBaselineOf averages the baseline distribution into one reference
// example, used only for the completeness delta's output-difference term.
func meanBaselineOf(baselines *tensor.Tensor) *tensor.Tensor {
	k := baselines.Shape()[0]
	mean := tensor.New(baselines.Shape()[1:])
	meanData := mean.Data()
	data := baselines.Data()
	rowLen := mean.NumElements()
	inv := 1.0 / float64(k)
	for r := 0; r < k; r++ {
		for j := 0; j < rowLen; j++ {
			meanData[j] += inv * data[r*rowLen+j]
		}
	}
	return mean
}
