package attr

import "fmt"

// Target identifies which scalar component of a possibly multi-output
// model to attribute: a single output index applied to every example, or
// one index per example. The zero value selects output 0 for every example.
type Target struct {
	index      int
	perExample []int
}

// Index returns a Target selecting the same output component for every
// example in the batch.
func Index(i int) Target {
	return Target{index: i}
}

// PerExample returns a Target selecting one output component per example.
// The slice length must equal the batch size at resolution time.
func PerExample(indices []int) Target {
	cp := make([]int, len(indices))
	copy(cp, indices)
	return Target{perExample: cp}
}

// Resolve maps the target onto a batch, returning one valid output index
// per example. Model implementations call this with their output width.
func (t Target) Resolve(batchSize, outputWidth int) ([]int, error) {
	resolved := make([]int, batchSize)
	if t.perExample != nil {
		if len(t.perExample) != batchSize {
			return nil, &InvalidParameterError{
				Name:   "target",
				Reason: fmt.Sprintf("per-example target has %d entries for batch size %d", len(t.perExample), batchSize),
			}
		}
		copy(resolved, t.perExample)
	} else {
		for i := range resolved {
			resolved[i] = t.index
		}
	}
	for i, idx := range resolved {
		if idx < 0 || idx >= outputWidth {
			return nil, &InvalidParameterError{
				Name:   "target",
				Reason: fmt.Sprintf("index %d for example %d out of range for %d outputs", idx, i, outputWidth),
			}
		}
	}
	return resolved, nil
}

// tile expands a per-example target for a flattened step-major batch:
// n repetitions of the batch keep the same per-example pattern in each
// repetition. Single-index targets are batch-size independent already.
func (t Target) tile(n int) Target {
	if t.perExample == nil {
		return t
	}
	tiled := make([]int, 0, n*len(t.perExample))
	for i := 0; i < n; i++ {
		tiled = append(tiled, t.perExample...)
	}
	return Target{perExample: tiled}
}
