package attr

import (
	"math"

	"github.com/lucid-ml/lucid/internal/tensor"
)

// Saliency is the plain-gradient attribution: the magnitude of the output
// gradient at the input itself. Cheap, no baseline, no completeness delta.
// SmoothGrad in its original formulation is NoiseTunnel over Saliency.
type Saliency struct {
	model Model
}

// NewSaliency creates the method bound to a model.
func NewSaliency(m Model) *Saliency {
	return &Saliency{model: m}
}

// Attribute returns |gradient| shaped like the input batch. When abs is
// false the signed gradient is returned instead.
func (s *Saliency) Attribute(input *tensor.Tensor, target Target, abs bool) (*Result, error) {
	grads, err := s.model.Gradient(input, target)
	if err != nil {
		return nil, err
	}
	if abs {
		grads = grads.Clone()
		data := grads.Data()
		for i, v := range data {
			data[i] = math.Abs(v)
		}
	}
	return &Result{Attribution: grads}, nil
}

// InputXGradient attributes by the elementwise product gradient × input,
// the first-order Taylor score around zero.
type InputXGradient struct {
	model Model
}

// NewInputXGradient creates the method bound to a model.
func NewInputXGradient(m Model) *InputXGradient {
	return &InputXGradient{model: m}
}

// Attribute returns gradient × input shaped like the input batch.
func (g *InputXGradient) Attribute(input *tensor.Tensor, target Target) (*Result, error) {
	grads, err := g.model.Gradient(input, target)
	if err != nil {
		return nil, err
	}
	return &Result{Attribution: grads.Mul(input)}, nil
}
