package attr

import (
	"fmt"
	"math/rand"

	"github.com/lucid-ml/lucid/internal/tensor"
)

// NoiseType selects how NoiseTunnel aggregates per-sample attributions.
type NoiseType int

// Supported aggregation modes.
const (
	// Smoothgrad is the elementwise mean of the sample attributions.
	Smoothgrad NoiseType = iota
	// SmoothgradSq is the elementwise mean of the squared attributions.
	SmoothgradSq
	// Vargrad is the elementwise variance of the attributions.
	Vargrad
)

// String returns the canonical mode name.
func (n NoiseType) String() string {
	switch n {
	case Smoothgrad:
		return "smoothgrad"
	case SmoothgradSq:
		return "smoothgrad_sq"
	case Vargrad:
		return "vargrad"
	default:
		return fmt.Sprintf("NoiseType(%d)", int(n))
	}
}

// NoiseConfig holds the NoiseTunnel parameters.
type NoiseConfig struct {
	// Type is the aggregation mode (default Smoothgrad).
	Type NoiseType
	// Stdev is the standard deviation of the zero-mean Gaussian input
	// perturbation. Zero degenerates to repeated evaluation of the input.
	Stdev float64
	// Samples is the number of noisy draws (default DefaultNoiseSample).
	Samples int
	// Rand is the randomness source; a fixed seed gives deterministic
	// output, nil draws a fresh seed.
	Rand *rand.Rand
}

// NoiseTunnel is a decorator over any attribution Method: it perturbs the
// input with Gaussian noise, invokes the wrapped method per noisy sample,
// and aggregates the sample attributions.
//
// The wrapped method is opaque, so NoiseTunnel cannot flatten samples into
// the method's own evaluation batch; it issues one wrapped call per sample
// and relies on the wrapped method's internal batching.
//
// Completeness deltas reported by the wrapped method are aggregated by
// plain mean for every aggregation mode. For SmoothgradSq and Vargrad this
// does not match the squared/variance semantics of the attribution itself;
// the behavior is kept as-is because downstream consumers depend on it.
type NoiseTunnel struct {
	method Method
}

// NewNoiseTunnel wraps an attribution method.
func NewNoiseTunnel(m Method) *NoiseTunnel {
	return &NoiseTunnel{method: m}
}

// Attribute perturbs the input per sample, delegates to the wrapped
// method, and aggregates. The result is shaped like the wrapped method's
// attribution output.
func (nt *NoiseTunnel) Attribute(input *tensor.Tensor, cfg NoiseConfig) (*Result, error) {
	samples := cfg.Samples
	if samples == 0 {
		samples = DefaultNoiseSample
	}
	if err := validatePositive("samples", samples); err != nil {
		return nil, err
	}
	if cfg.Stdev < 0 {
		return nil, &InvalidParameterError{Name: "stdev", Reason: fmt.Sprintf("must be >= 0, got %v", cfg.Stdev)}
	}
	switch cfg.Type {
	case Smoothgrad, SmoothgradSq, Vargrad:
	default:
		return nil, &UnsupportedAggregationError{Mode: cfg.Type.String()}
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63())) //nolint:gosec // statistical sampling, not security
	}

	var sum, sumSq *tensor.Tensor
	var deltaSum []float64
	deltaSeen := 0
	for s := 0; s < samples; s++ {
		perturbed := input
		if cfg.Stdev > 0 {
			noise := tensor.Randn(input.Shape(), rng)
			perturbed = input.AddScaled(noise, cfg.Stdev)
		}
		res, err := nt.method.Attribute(perturbed)
		if err != nil {
			return nil, err
		}
		if sum == nil {
			sum = tensor.ZerosLike(res.Attribution)
			sumSq = tensor.ZerosLike(res.Attribution)
		} else if !res.Attribution.Shape().Equal(sum.Shape()) {
			return nil, &ShapeMismatchError{Context: "wrapped attribution", Want: sum.Shape(), Got: res.Attribution.Shape()}
		}
		sumData, sqData := sum.Data(), sumSq.Data()
		for i, v := range res.Attribution.Data() {
			sumData[i] += v
			sqData[i] += v * v
		}
		if res.Delta != nil {
			if deltaSum == nil {
				deltaSum = make([]float64, len(res.Delta))
			}
			for i, d := range res.Delta {
				deltaSum[i] += d
			}
			deltaSeen++
		}
	}

	inv := 1.0 / float64(samples)
	var attribution *tensor.Tensor
	switch cfg.Type {
	case Smoothgrad:
		attribution = sum.Scale(inv)
	case SmoothgradSq:
		attribution = sumSq.Scale(inv)
	case Vargrad:
		// Var[X] = E[X²] − E[X]²; clamp tiny negative rounding residue.
		attribution = tensor.ZerosLike(sum)
		out := attribution.Data()
		sumData, sqData := sum.Data(), sumSq.Data()
		for i := range out {
			mean := sumData[i] * inv
			v := sqData[i]*inv - mean*mean
			if v < 0 {
				v = 0
			}
			out[i] = v
		}
	}

	res := &Result{Attribution: attribution}
	if deltaSum != nil && deltaSeen == samples {
		for i := range deltaSum {
			deltaSum[i] /= float64(samples)
		}
		res.Delta = deltaSum
	}
	return res, nil
}
