package d3

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestTranslateScaleOrder(t *testing.T) {
	const tol = 1e-12
	model := Translation(r3.Vec{X: 2.5, Y: 1, Z: 2.5}).Mul(Scaling(r3.Vec{X: 0.2, Y: 1, Z: 0.2}))
	got := model.Transform(r3.Vec{X: 10, Y: 3, Z: -5})
	want := r3.Vec{X: 4.5, Y: 4, Z: 1.5}
	if !EqualWithin(got, want, tol) {
		t.Errorf("scale then translate: got %v, want %v", got, want)
	}
	if !(Transform{}).Mul(model).equals(model, tol) || !model.Mul(Transform{}).equals(model, tol) {
		t.Error("identity multiplication changed transform")
	}
}

func TestColumnMajor32(t *testing.T) {
	m := Translation(r3.Vec{X: 1, Y: 2, Z: 3}).ColumnMajor32()
	// Translation lives in the last column, elements 12..14.
	want := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 1, 2, 3, 1}
	if m != want {
		t.Errorf("got %v, want %v", m, want)
	}
}

func TestBoxInclude(t *testing.T) {
	b := Box{Min: r3.Vec{}, Max: r3.Vec{}}
	b = b.Include(r3.Vec{X: -1, Y: 2, Z: 0.5})
	if b.Min != (r3.Vec{X: -1}) || b.Max != (r3.Vec{Y: 2, Z: 0.5}) {
		t.Errorf("unexpected box %+v", b)
	}
	if c := b.Center(); c != (r3.Vec{X: -0.5, Y: 1, Z: 0.25}) {
		t.Errorf("center %v", c)
	}
	if s := b.Size(); Max(s) != 2 {
		t.Errorf("size %v", s)
	}
	b = b.Extend(Box{Min: Elem(-3), Max: r3.Vec{X: 1}})
	if b.Min != Elem(-3) || b.Max != (r3.Vec{X: 1, Y: 2, Z: 0.5}) {
		t.Errorf("extended box %+v", b)
	}
}
