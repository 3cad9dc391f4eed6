package tensor

import "fmt"

// Tensor is a dense float64 n-dimensional array in row-major layout.
//
// All attribution arithmetic runs on the CPU in float64; device-specific
// model execution lives behind the evaluation port, not here.
//
// Example:
//
//	t := tensor.Zeros(Shape{3, 4})
//	result := t.Add(t) // Element-wise addition
type Tensor struct {
	data   []float64
	shape  Shape
	stride []int
}

// New creates a zero-initialized tensor with the given shape.
// Panics if the shape is invalid; use NewChecked for a recoverable error.
func New(shape Shape) *Tensor {
	t, err := NewChecked(shape)
	if err != nil {
		panic(err)
	}
	return t
}

// NewChecked creates a zero-initialized tensor, validating the shape.
func NewChecked(shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Tensor{
		data:   make([]float64, shape.NumElements()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
	}, nil
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	t, err := NewChecked(shape)
	if err != nil {
		return nil, err
	}
	copy(t.data, data)
	return t, nil
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Strides returns the tensor's memory strides.
func (t *Tensor) Strides() []int {
	return t.stride
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return t.shape.NumElements()
}

// Data returns the tensor's backing slice (zero-copy).
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor) Data() []float64 {
	return t.data
}

// Item returns the scalar value of a single-element tensor.
// Panics if the tensor holds more than one element.
func (t *Tensor) Item() float64 {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("Item() only works for scalar tensors, got shape %v", t.shape))
	}
	return t.data[0]
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
//
// Example:
//
//	t := tensor.Zeros(Shape{3, 4})
//	value := t.At(1, 2) // Row 1, column 2
func (t *Tensor) At(indices ...int) float64 {
	return t.data[t.offset(indices)]
}

// Set sets the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor) Set(value float64, indices ...int) {
	t.data[t.offset(indices)] = value
}

func (t *Tensor) offset(indices []int) int {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(t.shape), len(indices)))
	}
	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, t.shape[i]))
		}
		offset += idx * t.stride[i]
	}
	return offset
}

// Clone creates a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	clone := New(t.shape)
	copy(clone.data, t.data)
	return clone
}

// Reshape returns a tensor sharing the same data but with a different shape.
// The new shape must have the same number of elements.
//
// Example:
//
//	t := tensor.Arange(0, 12) // Shape: [12]
//	r := t.Reshape(3, 4)      // Shape: [3, 4]
func (t *Tensor) Reshape(newShape ...int) *Tensor {
	shape := Shape(newShape)
	if shape.NumElements() != t.NumElements() {
		panic(fmt.Sprintf("cannot reshape %v (%d elements) to %v (%d elements)",
			t.shape, t.NumElements(), shape, shape.NumElements()))
	}
	return &Tensor{
		data:   t.data,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
	}
}

// Row returns a view of row i of a tensor whose leading dimension is the
// batch dimension. The returned tensor shares memory with t and has the
// per-example shape t.Shape()[1:].
func (t *Tensor) Row(i int) *Tensor {
	if len(t.shape) == 0 {
		panic("Row: tensor has no batch dimension")
	}
	if i < 0 || i >= t.shape[0] {
		panic(fmt.Sprintf("Row: index %d out of bounds for batch size %d", i, t.shape[0]))
	}
	rowShape := t.shape[1:].Clone()
	n := rowShape.NumElements()
	return &Tensor{
		data:   t.data[i*n : (i+1)*n],
		shape:  rowShape,
		stride: rowShape.ComputeStrides(),
	}
}

// String returns a human-readable representation of the tensor.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor%v", t.shape)
}
