package tensor

import "fmt"

// Add performs element-wise addition with broadcasting.
//
// Example:
//
//	a := tensor.Ones(Shape{3, 1})
//	b := tensor.Ones(Shape{3, 5})
//	c := a.Add(b) // Shape: [3, 5] (broadcasted)
func (t *Tensor) Add(other *Tensor) *Tensor {
	return broadcastBinary(t, other, func(a, b float64) float64 { return a + b })
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor) Sub(other *Tensor) *Tensor {
	return broadcastBinary(t, other, func(a, b float64) float64 { return a - b })
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor) Mul(other *Tensor) *Tensor {
	return broadcastBinary(t, other, func(a, b float64) float64 { return a * b })
}

// Div performs element-wise division with broadcasting.
func (t *Tensor) Div(other *Tensor) *Tensor {
	return broadcastBinary(t, other, func(a, b float64) float64 { return a / b })
}

// Scale multiplies every element by a scalar.
func (t *Tensor) Scale(s float64) *Tensor {
	result := New(t.shape)
	for i, v := range t.data {
		result.data[i] = v * s
	}
	return result
}

// AddScaled returns t + s*other (same shape required).
// This is the interpolation primitive: b.AddScaled(x.Sub(b), alpha).
func (t *Tensor) AddScaled(other *Tensor, s float64) *Tensor {
	if !t.shape.Equal(other.shape) {
		panic(fmt.Sprintf("AddScaled: shape mismatch %v vs %v", t.shape, other.shape))
	}
	result := New(t.shape)
	for i := range t.data {
		result.data[i] = t.data[i] + s*other.data[i]
	}
	return result
}

// Sum returns the sum of all elements.
func (t *Tensor) Sum() float64 {
	sum := 0.0
	for _, v := range t.data {
		sum += v
	}
	return sum
}

// Mean returns the arithmetic mean of all elements.
func (t *Tensor) Mean() float64 {
	return t.Sum() / float64(t.NumElements())
}

// broadcastBinary applies op element-wise over two tensors following
// NumPy broadcasting rules. The fast path handles equal shapes without
// index arithmetic.
func broadcastBinary(a, b *Tensor, op func(x, y float64) float64) *Tensor {
	if a.shape.Equal(b.shape) {
		result := New(a.shape)
		for i := range a.data {
			result.data[i] = op(a.data[i], b.data[i])
		}
		return result
	}

	outShape, _, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		panic(err)
	}

	result := New(outShape)
	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(a.shape, outShape)
	bStrides := broadcastStrides(b.shape, outShape)

	for i := range result.data {
		aOff, bOff := 0, 0
		rem := i
		for d := 0; d < len(outShape); d++ {
			idx := rem / outStrides[d]
			rem %= outStrides[d]
			aOff += idx * aStrides[d]
			bOff += idx * bStrides[d]
		}
		result.data[i] = op(a.data[aOff], b.data[bOff])
	}
	return result
}

// broadcastStrides maps a tensor's strides onto the broadcast output shape.
// Dimensions of size 1 (or missing leading dimensions) get stride 0, which
// pins reads to the single available element.
func broadcastStrides(shape, outShape Shape) []int {
	strides := shape.ComputeStrides()
	mapped := make([]int, len(outShape))
	offset := len(outShape) - len(shape)
	for d := range outShape {
		src := d - offset
		if src < 0 || shape[src] == 1 {
			mapped[d] = 0
		} else {
			mapped[d] = strides[src]
		}
	}
	return mapped
}
