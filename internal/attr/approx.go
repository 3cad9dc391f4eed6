package attr

import (
	"fmt"
	"math"
)

// Rule selects the quadrature used to approximate the path integral.
type Rule int

// Supported integration rules.
const (
	GaussLegendre Rule = iota
	RiemannLeft
	RiemannRight
	RiemannMiddle
	RiemannTrapezoid
)

// String returns a human-readable rule name.
func (r Rule) String() string {
	switch r {
	case GaussLegendre:
		return "gausslegendre"
	case RiemannLeft:
		return "riemann_left"
	case RiemannRight:
		return "riemann_right"
	case RiemannMiddle:
		return "riemann_middle"
	case RiemannTrapezoid:
		return "riemann_trapezoid"
	default:
		return fmt.Sprintf("Rule(%d)", int(r))
	}
}

// ruleParameters returns the abscissae in [0, 1] at which gradients are
// sampled and the matching quadrature weights. Weights always sum to 1, so
// the weighted gradient sum approximates the mean gradient along the path.
func ruleParameters(rule Rule, n int) (alphas, weights []float64, err error) {
	if n < 1 {
		return nil, nil, &InvalidParameterError{Name: "steps", Reason: fmt.Sprintf("must be >= 1, got %d", n)}
	}

	switch rule {
	case RiemannLeft:
		alphas, weights = riemann(n, 0)
	case RiemannRight:
		alphas, weights = riemann(n, 1)
	case RiemannMiddle:
		alphas, weights = riemann(n, 0.5)
	case RiemannTrapezoid:
		alphas, weights = trapezoid(n)
	case GaussLegendre:
		alphas, weights = gaussLegendre(n)
	default:
		return nil, nil, &InvalidParameterError{Name: "rule", Reason: fmt.Sprintf("unknown integration rule %d", int(rule))}
	}
	return alphas, weights, nil
}

// riemann produces n evenly spaced sample points with uniform weights.
// shift 0 samples the left edge of each cell, 1 the right edge, 0.5 the
// midpoint.
func riemann(n int, shift float64) (alphas, weights []float64) {
	alphas = make([]float64, n)
	weights = make([]float64, n)
	w := 1.0 / float64(n)
	for i := 0; i < n; i++ {
		alphas[i] = (float64(i) + shift) / float64(n)
		weights[i] = w
	}
	return alphas, weights
}

// trapezoid samples both path endpoints with half weight. A single step
// degenerates to the midpoint rule.
func trapezoid(n int) (alphas, weights []float64) {
	if n == 1 {
		return []float64{0.5}, []float64{1}
	}
	alphas = make([]float64, n)
	weights = make([]float64, n)
	h := 1.0 / float64(n-1)
	for i := 0; i < n; i++ {
		alphas[i] = float64(i) * h
		weights[i] = h
	}
	weights[0] = h / 2
	weights[n-1] = h / 2
	return alphas, weights
}

// gaussLegendre computes the n-point Gauss-Legendre quadrature on [-1, 1]
// by Newton iteration on the Legendre polynomial roots, then maps nodes
// and weights to [0, 1].
func gaussLegendre(n int) (alphas, weights []float64) {
	alphas = make([]float64, n)
	weights = make([]float64, n)

	for i := 0; i < (n+1)/2; i++ {
		// Chebyshev-based starting guess for the i-th root.
		z := math.Cos(math.Pi * (float64(i) + 0.75) / (float64(n) + 0.5))
		var pp float64
		for iter := 0; iter < 100; iter++ {
			// Evaluate P_n(z) via the three-term recurrence.
			p1, p2 := 1.0, 0.0
			for j := 0; j < n; j++ {
				p3 := p2
				p2 = p1
				p1 = ((2*float64(j)+1)*z*p2 - float64(j)*p3) / float64(j+1)
			}
			pp = float64(n) * (z*p1 - p2) / (z*z - 1)
			z1 := z
			z = z1 - p1/pp
			if math.Abs(z-z1) < 1e-15 {
				break
			}
		}
		w := 2 / ((1 - z*z) * pp * pp)
		// Map node from [-1, 1] to [0, 1]; halve the weight accordingly.
		alphas[i] = (1 - z) / 2
		alphas[n-1-i] = (1 + z) / 2
		weights[i] = w / 2
		weights[n-1-i] = w / 2
	}
	return alphas, weights
}
