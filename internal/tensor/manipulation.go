package tensor

import "fmt"

// Cat concatenates tensors along a dimension.
// All tensors must share their shape on every other dimension.
//
// Example:
//
//	a := tensor.Ones(Shape{2, 3})
//	b := tensor.Zeros(Shape{2, 3})
//	c := tensor.Cat([]*tensor.Tensor{a, b}, 0) // Shape: [4, 3]
func Cat(tensors []*Tensor, dim int) *Tensor {
	if len(tensors) == 0 {
		panic("Cat: no tensors to concatenate")
	}
	first := tensors[0]
	ndim := len(first.shape)
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("Cat: dimension %d out of range for %d-d tensors", dim, ndim))
	}

	outShape := first.shape.Clone()
	for _, t := range tensors[1:] {
		if len(t.shape) != ndim {
			panic(fmt.Sprintf("Cat: rank mismatch %v vs %v", first.shape, t.shape))
		}
		for d := 0; d < ndim; d++ {
			if d == dim {
				continue
			}
			if t.shape[d] != first.shape[d] {
				panic(fmt.Sprintf("Cat: shape mismatch on dimension %d: %v vs %v", d, first.shape, t.shape))
			}
		}
		outShape[dim] += t.shape[dim]
	}

	result := New(outShape)

	// outer = product of dims before `dim`, inner = product of dims after.
	outer := 1
	for d := 0; d < dim; d++ {
		outer *= outShape[d]
	}
	inner := 1
	for d := dim + 1; d < ndim; d++ {
		inner *= outShape[d]
	}

	rowLen := outShape[dim] * inner
	colOffset := 0
	for _, t := range tensors {
		span := t.shape[dim] * inner
		for o := 0; o < outer; o++ {
			src := t.data[o*span : (o+1)*span]
			dst := result.data[o*rowLen+colOffset:]
			copy(dst[:span], src)
		}
		colOffset += span
	}
	return result
}

// Stack stacks same-shape tensors along a new leading dimension.
//
// Example:
//
//	a := tensor.Ones(Shape{3})
//	b := tensor.Zeros(Shape{3})
//	s := tensor.Stack([]*tensor.Tensor{a, b}) // Shape: [2, 3]
func Stack(tensors []*Tensor) *Tensor {
	if len(tensors) == 0 {
		panic("Stack: no tensors to stack")
	}
	first := tensors[0]
	outShape := append(Shape{len(tensors)}, first.shape...)
	result := New(outShape)
	n := first.NumElements()
	for i, t := range tensors {
		if !t.shape.Equal(first.shape) {
			panic(fmt.Sprintf("Stack: shape mismatch %v vs %v", first.shape, t.shape))
		}
		copy(result.data[i*n:(i+1)*n], t.data)
	}
	return result
}

// Repeat tiles a tensor n times along a new leading batch dimension.
// A tensor of shape [a, b] becomes [n, a, b] with n identical copies.
func Repeat(t *Tensor, n int) *Tensor {
	if n <= 0 {
		panic("Repeat: n must be positive")
	}
	outShape := append(Shape{n}, t.shape...)
	result := New(outShape)
	size := t.NumElements()
	for i := 0; i < n; i++ {
		copy(result.data[i*size:(i+1)*size], t.data)
	}
	return result
}
