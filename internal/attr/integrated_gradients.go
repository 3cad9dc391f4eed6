package attr

import (
	"github.com/lucid-ml/lucid/internal/tensor"
)

// PathConfig holds the shared parameters of the path-integral methods.
// The zero value selects output 0, 50 steps, and Gauss-Legendre quadrature.
type PathConfig struct {
	// Target selects the scalar output component to attribute.
	Target Target
	// Steps is the number of quadrature points (default DefaultSteps).
	// Larger values trade compute for a smaller completeness delta.
	Steps int
	// Rule is the integration rule (default GaussLegendre).
	Rule Rule
	// ReturnDelta requests the per-example completeness error. A delta
	// comparable in magnitude to typical attribution values signals that
	// Steps should be increased, not a silent success.
	ReturnDelta bool
}

// IntegratedGradients attributes the model output to input features by
// integrating gradients along the straight path from a baseline to the
// input (https://arxiv.org/abs/1703.01365).
//
// Example:
//
//	ig := attr.NewIntegratedGradients(model)
//	res, err := ig.Attribute(input, baseline, attr.PathConfig{ReturnDelta: true})
type IntegratedGradients struct {
	model Model
}

// NewIntegratedGradients creates the method bound to a model.
func NewIntegratedGradients(m Model) *IntegratedGradients {
	return &IntegratedGradients{model: m}
}

// Attribute computes attributions shaped like the input batch. A nil
// baseline means the zero tensor; a baseline without a batch dimension is
// broadcast across the batch.
func (ig *IntegratedGradients) Attribute(input, baseline *tensor.Tensor, cfg PathConfig) (*Result, error) {
	p, err := newPathIntegrator(cfg.Steps, cfg.Rule)
	if err != nil {
		return nil, err
	}
	baseline, err = expandBaseline(input, baseline)
	if err != nil {
		return nil, err
	}

	avgGrad, err := p.averageGradient(ig.model, input, baseline, cfg.Target)
	if err != nil {
		return nil, err
	}
	attribution := avgGrad.Mul(input.Sub(baseline))

	res := &Result{Attribution: attribution}
	if cfg.ReturnDelta {
		outDelta, err := outputDelta(ig.model, input, baseline, cfg.Target)
		if err != nil {
			return nil, err
		}
		res.Delta = completenessDelta(attribution, outDelta)
	}
	return res, nil
}
