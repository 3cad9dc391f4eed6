// Copyright 2025 Lucid ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor operations in the
// Lucid attribution framework.
//
// The package defines a dense float64 n-dimensional array with NumPy-style
// broadcasting, the unit of input, gradient, and attribution
// representation throughout the framework.
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{2, 3})
//	y := tensor.Ones(tensor.Shape{2, 3})
//	z := x.Add(y) // Element-wise addition
package tensor

import (
	"math/rand"

	"github.com/lucid-ml/lucid/internal/tensor"
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Tensor is a dense float64 n-dimensional array in row-major layout.
type Tensor = tensor.Tensor

// Creation functions

// New creates a zero-initialized tensor with the given shape.
func New(shape Shape) *Tensor {
	return tensor.New(shape)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Tensor {
	return tensor.Ones(shape)
}

// Full creates a tensor filled with a specific value.
func Full(shape Shape, value float64) *Tensor {
	return tensor.Full(shape, value)
}

// ZerosLike creates a zero tensor with the same shape as t.
func ZerosLike(t *Tensor) *Tensor {
	return tensor.ZerosLike(t)
}

// FromSlice creates a tensor from a Go slice.
//
// Example:
//
//	data := []float64{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3})
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// Randn creates a tensor with values drawn from a standard normal
// distribution using the supplied source.
func Randn(shape Shape, rng *rand.Rand) *Tensor {
	return tensor.Randn(shape, rng)
}

// Rand creates a tensor with values uniformly distributed in [0, 1)
// using the supplied source.
func Rand(shape Shape, rng *rand.Rand) *Tensor {
	return tensor.Rand(shape, rng)
}

// Arange creates a 1D tensor with values from start to end (exclusive).
func Arange(start, end float64) *Tensor {
	return tensor.Arange(start, end)
}

// Manipulation functions

// Cat concatenates tensors along a dimension.
func Cat(tensors []*Tensor, dim int) *Tensor {
	return tensor.Cat(tensors, dim)
}

// Stack stacks same-shape tensors along a new leading dimension.
func Stack(tensors []*Tensor) *Tensor {
	return tensor.Stack(tensors)
}

// Repeat tiles a tensor n times along a new leading batch dimension.
func Repeat(t *Tensor, n int) *Tensor {
	return tensor.Repeat(t, n)
}

// Utility functions

// BroadcastShapes computes the broadcast shape for two shapes following
// NumPy broadcasting rules. Returns the resulting shape, a flag indicating
// whether broadcasting is needed, and an error for incompatible shapes.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
