package attr

import (
	"fmt"

	"github.com/lucid-ml/lucid/internal/tensor"
)

// NeuronConductance attributes a single hidden neuron's conductance back
// to the input features: the same path integral as LayerConductance, but
// the integrand is the output gradient at one neuron times that neuron's
// gradient with respect to the input.
//
// A single neuron's value is not the model output, so the completeness
// axiom does not apply; requesting a delta is a usage error.
type NeuronConductance struct {
	model NeuronModel
	layer string
}

// NewNeuronConductance creates the method bound to a model and a layer.
func NewNeuronConductance(m NeuronModel, layer string) *NeuronConductance {
	return &NeuronConductance{model: m, layer: layer}
}

// Attribute computes attributions shaped like the input batch for the
// neuron at the given index of the bound layer.
func (nc *NeuronConductance) Attribute(input, baseline *tensor.Tensor, neuron int, cfg PathConfig) (*Result, error) {
	if cfg.ReturnDelta {
		return nil, &CompletenessUnavailableError{Method: "NeuronConductance"}
	}
	if neuron < 0 {
		return nil, &InvalidParameterError{Name: "neuron", Reason: fmt.Sprintf("must be >= 0, got %d", neuron)}
	}
	p, err := newPathIntegrator(cfg.Steps, cfg.Rule)
	if err != nil {
		return nil, err
	}
	baseline, err = expandBaseline(input, baseline)
	if err != nil {
		return nil, err
	}

	scaled := p.scaledInputs(input, baseline)

	// Gradient of the selected output with respect to the whole layer,
	// evaluated at every interpolated point.
	_, layerGrads, err := nc.model.LayerGradient(scaled, nc.layer, cfg.Target.tile(p.steps))
	if err != nil {
		return nil, err
	}
	layerShape := layerGrads.Shape()
	if len(layerShape) != 2 || neuron >= layerShape[1] {
		return nil, &InvalidParameterError{
			Name:   "neuron",
			Reason: fmt.Sprintf("index %d out of range for layer %q with activation shape %v", neuron, nc.layer, layerShape[1:]),
		}
	}

	// Gradient of the selected neuron's activation with respect to the input.
	inputGrads, err := nc.model.NeuronGradient(scaled, nc.layer, neuron)
	if err != nil {
		return nil, err
	}
	if !inputGrads.Shape().Equal(scaled.Shape()) {
		return nil, &ShapeMismatchError{Context: "neuron gradient", Want: scaled.Shape(), Got: inputGrads.Shape()}
	}

	// Chain the two: dF/dy_neuron scales each row of dy_neuron/dx.
	rows := scaled.Shape()[0]
	combined := inputGrads.Clone()
	combinedData := combined.Data()
	rowLen := combined.NumElements() / rows
	for r := 0; r < rows; r++ {
		mid := layerGrads.At(r, neuron)
		for j := 0; j < rowLen; j++ {
			combinedData[r*rowLen+j] *= mid
		}
	}

	total := p.reduceSteps(combined, input.Shape()[0])
	attribution := total.Mul(input.Sub(baseline))
	return &Result{Attribution: attribution}, nil
}
