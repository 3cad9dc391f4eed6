package attr

import (
	"github.com/lucid-ml/lucid/internal/tensor"
)

// LayerConductance attributes the model output to the neurons of a named
// intermediate layer (https://arxiv.org/abs/1805.12233).
//
// The interpolation happens on the input; the integrand is the gradient of
// the output with respect to the layer's activation, observed during the
// unmodified forward pass. The result has one value per neuron and sums to
// the same output delta as IntegratedGradients over the same path.
type LayerConductance struct {
	model LayerModel
	layer string
}

// NewLayerConductance creates the method bound to a model and a layer.
func NewLayerConductance(m LayerModel, layer string) *LayerConductance {
	return &LayerConductance{model: m, layer: layer}
}

// Attribute computes attributions shaped like the named layer's activation.
func (lc *LayerConductance) Attribute(input, baseline *tensor.Tensor, cfg PathConfig) (*Result, error) {
	p, err := newPathIntegrator(cfg.Steps, cfg.Rule)
	if err != nil {
		return nil, err
	}
	baseline, err = expandBaseline(input, baseline)
	if err != nil {
		return nil, err
	}

	scaled := p.scaledInputs(input, baseline)
	_, layerGrads, err := lc.model.LayerGradient(scaled, lc.layer, cfg.Target.tile(p.steps))
	if err != nil {
		return nil, err
	}
	avgGrad := p.reduceSteps(layerGrads, input.Shape()[0])

	actInput, err := lc.model.LayerActivation(input, lc.layer)
	if err != nil {
		return nil, err
	}
	actBaseline, err := lc.model.LayerActivation(baseline, lc.layer)
	if err != nil {
		return nil, err
	}
	attribution := avgGrad.Mul(actInput.Sub(actBaseline))

	res := &Result{Attribution: attribution}
	if cfg.ReturnDelta {
		// Completeness holds at the layer: the conductance over all neurons
		// accounts for the same output difference as the input path.
		outDelta, err := outputDelta(lc.model, input, baseline, cfg.Target)
		if err != nil {
			return nil, err
		}
		res.Delta = completenessDelta(attribution, outDelta)
	}
	return res, nil
}
