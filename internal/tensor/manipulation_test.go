package tensor

import "testing"

func TestCatDim0(t *testing.T) {
	a, _ := FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2})
	b, _ := FromSlice([]float64{5, 6}, Shape{1, 2})

	c := Cat([]*Tensor{a, b}, 0)
	assertEqualShape(t, Shape{3, 2}, c.Shape(), "Cat dim 0 shape")
	assertEqualFloat(t, 1, c.At(0, 0), "Cat element")
	assertEqualFloat(t, 4, c.At(1, 1), "Cat element")
	assertEqualFloat(t, 5, c.At(2, 0), "Cat element")
	assertEqualFloat(t, 6, c.At(2, 1), "Cat element")
}

func TestCatDim1(t *testing.T) {
	a, _ := FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2})
	b, _ := FromSlice([]float64{5, 6}, Shape{2, 1})

	c := Cat([]*Tensor{a, b}, 1)
	assertEqualShape(t, Shape{2, 3}, c.Shape(), "Cat dim 1 shape")
	assertEqualFloat(t, 5, c.At(0, 2), "Cat element")
	assertEqualFloat(t, 6, c.At(1, 2), "Cat element")
	assertEqualFloat(t, 3, c.At(1, 0), "Cat element")
}

func TestCatSingle(t *testing.T) {
	a, _ := FromSlice([]float64{1, 2}, Shape{2})
	c := Cat([]*Tensor{a}, 0)
	assertEqualShape(t, Shape{2}, c.Shape(), "Cat single shape")
	assertEqualFloat(t, 2, c.At(1), "Cat single element")
}

func TestCatPanicsOnShapeMismatch(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Cat with mismatched non-cat dims should panic")
		}
	}()
	a := Zeros(Shape{2, 2})
	b := Zeros(Shape{2, 3})
	Cat([]*Tensor{a, b}, 0)
}

func TestStack(t *testing.T) {
	a, _ := FromSlice([]float64{1, 2}, Shape{2})
	b, _ := FromSlice([]float64{3, 4}, Shape{2})
	c, _ := FromSlice([]float64{5, 6}, Shape{2})

	s := Stack([]*Tensor{a, b, c})
	assertEqualShape(t, Shape{3, 2}, s.Shape(), "Stack shape")
	assertEqualFloat(t, 1, s.At(0, 0), "Stack element")
	assertEqualFloat(t, 4, s.At(1, 1), "Stack element")
	assertEqualFloat(t, 6, s.At(2, 1), "Stack element")
}

func TestRepeat(t *testing.T) {
	x, _ := FromSlice([]float64{1, 2, 3}, Shape{3})
	r := Repeat(x, 4)
	assertEqualShape(t, Shape{4, 3}, r.Shape(), "Repeat shape")
	for i := 0; i < 4; i++ {
		assertEqualFloat(t, 1, r.At(i, 0), "Repeat row")
		assertEqualFloat(t, 3, r.At(i, 2), "Repeat row")
	}
}
