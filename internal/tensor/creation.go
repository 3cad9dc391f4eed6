package tensor

import "math/rand"

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	t := tensor.Zeros(Shape{3, 4})
func Zeros(shape Shape) *Tensor {
	return New(shape)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Tensor {
	return Full(shape, 1)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full(Shape{3, 3}, 3.14)
func Full(shape Shape, value float64) *Tensor {
	t := New(shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// ZerosLike creates a zero tensor with the same shape as t.
func ZerosLike(t *Tensor) *Tensor {
	return New(t.Shape())
}

// Arange creates a 1D tensor with values from start to end (exclusive),
// incremented by one.
//
// Example:
//
//	t := tensor.Arange(0, 10) // [0, 1, 2, ..., 9]
func Arange(start, end float64) *Tensor {
	n := int(end - start)
	if n <= 0 {
		panic("end must be greater than start")
	}
	t := New(Shape{n})
	for i := range t.data {
		t.data[i] = start + float64(i)
	}
	return t
}

// Randn creates a tensor with values drawn from a normal distribution
// (mean=0, std=1) using the supplied source.
// Note: uses math/rand (not crypto/rand) - appropriate for ML/statistical
// purposes and required for reproducible runs under a fixed seed.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	t := tensor.Randn(Shape{100, 100}, rng)
func Randn(shape Shape, rng *rand.Rand) *Tensor {
	t := New(shape)
	for i := range t.data {
		t.data[i] = rng.NormFloat64()
	}
	return t
}

// Rand creates a tensor with values uniformly distributed in [0, 1)
// using the supplied source.
func Rand(shape Shape, rng *rand.Rand) *Tensor {
	t := New(shape)
	for i := range t.data {
		t.data[i] = rng.Float64()
	}
	return t
}
