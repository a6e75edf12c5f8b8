package numerical

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestNewtonRaphson(t *testing.T) {
	f := func(x float64) float64 { return x*x - 2 }
	root, ok := NewtonRaphson(f, 1.0, 1e-9)
	if !ok {
		t.Fatalf("expected convergence")
	}
	if !floats.EqualWithinAbs(root, math.Sqrt2, 1e-6) {
		t.Fatalf("got %f, want %f", root, math.Sqrt2)
	}
}

func TestHalley(t *testing.T) {
	f := func(x float64) float64 { return x*x*x - 8 }
	root, ok := Halley(f, 1.0, 1e-9)
	if !ok {
		t.Fatalf("expected convergence")
	}
	if !floats.EqualWithinAbs(root, 2.0, 1e-6) {
		t.Fatalf("got %f, want 2.0", root)
	}
}

func TestLaguerre(t *testing.T) {
	f := func(x float64) float64 { return (x - 3) * (x - 3) }
	root, ok := Laguerre(f, 10.0, 1e-6)
	if !ok {
		t.Fatalf("expected convergence")
	}
	if !floats.EqualWithinAbs(root, 3.0, 1e-3) {
		t.Fatalf("got %f, want 3.0", root)
	}
}

func TestITP(t *testing.T) {
	f := func(x float64) float64 { return x*x*x - x - 2 }
	root, ok := ITP(f, 1.0, 2.0, 1e-6)
	if !ok {
		t.Fatalf("expected convergence")
	}
	want := 1.5213797
	if !floats.EqualWithinAbs(root, want, 1e-4) {
		t.Fatalf("got %f, want %f", root, want)
	}
}

func TestBisection(t *testing.T) {
	f := func(x float64) float64 { return math.Cos(x) }
	root, ok := Bisection(f, 0, 3, 1e-8)
	if !ok {
		t.Fatalf("expected convergence")
	}
	if !floats.EqualWithinAbs(root, math.Pi/2, 1e-5) {
		t.Fatalf("got %f, want pi/2", root)
	}
}

func TestClosestPointOnEllipseCircle(t *testing.T) {
	// A circle (a==b==1): closest point on unit circle to (2,0) is (1,0).
	x, y, _ := ClosestPointOnEllipse(1, 1, 2, 0)
	if !floats.EqualWithinAbs(x, 1, 1e-6) || !floats.EqualWithinAbs(y, 0, 1e-6) {
		t.Fatalf("got (%f,%f), want (1,0)", x, y)
	}
}

func TestNewtonRaphsonToFindStationaryPoint(t *testing.T) {
	// f(x) = -(x-3)^2 has a maximum at x=3, i.e. f'(x)=0 there.
	f := func(x float64) float64 { return -(x - 3) * (x - 3) }
	root, ok := NewtonRaphsonToFindStationaryPoint(f, 0.0, 1e-6)
	if !ok {
		t.Fatalf("expected convergence")
	}
	if !floats.EqualWithinAbs(root, 3.0, 1e-3) {
		t.Fatalf("got %f, want 3.0", root)
	}
}
