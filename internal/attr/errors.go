package attr

import (
	"fmt"

	"github.com/lucid-ml/lucid/internal/tensor"
)

// ShapeMismatchError reports incompatible input, baseline, or layer shapes.
type ShapeMismatchError struct {
	Context string
	Want    tensor.Shape
	Got     tensor.Shape
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: shape mismatch: want %v, got %v", e.Context, e.Want, e.Got)
}

// InvalidParameterError reports a parameter that fails validation before
// any model evaluation is issued.
type InvalidParameterError struct {
	Name   string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Name, e.Reason)
}

// NonDifferentiableModelError reports that no gradient path exists through
// the model at the requested evaluation point.
type NonDifferentiableModelError struct {
	Op string
}

func (e *NonDifferentiableModelError) Error() string {
	return fmt.Sprintf("no gradient path through %q", e.Op)
}

// UnsupportedAggregationError reports an unknown NoiseTunnel aggregation mode.
type UnsupportedAggregationError struct {
	Mode string
}

func (e *UnsupportedAggregationError) Error() string {
	return fmt.Sprintf("unsupported noise aggregation mode %q", e.Mode)
}

// CompletenessUnavailableError reports that a completeness error estimate
// was requested from a method that does not satisfy the completeness axiom.
type CompletenessUnavailableError struct {
	Method string
}

func (e *CompletenessUnavailableError) Error() string {
	return fmt.Sprintf("%s does not provide a completeness error estimate", e.Method)
}
