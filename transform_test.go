package arbor

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func vecNear(a, b Vec2) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon
}

func transformNear(a, b Transform) bool {
	return vecNear(a.Position, b.Position) && vecNear(a.Scale, b.Scale) &&
		math.Abs(a.Rotation-b.Rotation) < epsilon
}

// --- Identity ---

func TestNewTransformIdentity(t *testing.T) {
	id := NewTransform()
	if !id.Position.IsZero() {
		t.Errorf("Position = %v, want zero", id.Position)
	}
	if id.Scale != (Vec2{1, 1}) {
		t.Errorf("Scale = %v, want (1, 1)", id.Scale)
	}
	if id.Rotation != 0 {
		t.Errorf("Rotation = %v, want 0", id.Rotation)
	}
}

func TestCombineIdentityLeft(t *testing.T) {
	x := Transform{Position: Vec2{3, -2}, Scale: Vec2{2, 0.5}, Rotation: 1.2}
	got := NewTransform().Combine(x)
	if !transformNear(got, x) {
		t.Errorf("identity.Combine(x) = %+v, want %+v", got, x)
	}
}

func TestCombineIdentityRight(t *testing.T) {
	x := Transform{Position: Vec2{3, -2}, Scale: Vec2{2, 0.5}, Rotation: 1.2}
	got := x.Combine(NewTransform())
	if !transformNear(got, x) {
		t.Errorf("x.Combine(identity) = %+v, want %+v", got, x)
	}
}

// --- Composition ---

func TestCombineTranslation(t *testing.T) {
	parent := NewTransform().WithPosition(Vec2{1, 2})
	child := NewTransform().WithPosition(Vec2{3, 4})
	got := parent.Combine(child)
	if !vecNear(got.Position, Vec2{4, 6}) {
		t.Errorf("Position = %v, want (4, 6)", got.Position)
	}
}

func TestCombineRotatesChildPosition(t *testing.T) {
	// Parent rotated 90 degrees: the child's +X offset becomes +Y.
	parent := NewTransform().WithRotation(math.Pi / 2)
	child := NewTransform().WithPosition(Vec2{1, 0})
	got := parent.Combine(child)
	if !vecNear(got.Position, Vec2{0, 1}) {
		t.Errorf("Position = %v, want (0, 1)", got.Position)
	}
	if math.Abs(got.Rotation-math.Pi/2) > epsilon {
		t.Errorf("Rotation = %v, want pi/2", got.Rotation)
	}
}

func TestCombineScalesMultiply(t *testing.T) {
	parent := NewTransform().WithScale(Vec2{2, 3})
	child := NewTransform().WithScale(Vec2{4, 0.5})
	got := parent.Combine(child)
	if !vecNear(got.Scale, Vec2{8, 1.5}) {
		t.Errorf("Scale = %v, want (8, 1.5)", got.Scale)
	}
}

func TestCombineRotationsAdd(t *testing.T) {
	parent := NewTransform().WithRotation(0.3)
	child := NewTransform().WithRotation(0.4)
	got := parent.Combine(child)
	if math.Abs(got.Rotation-0.7) > epsilon {
		t.Errorf("Rotation = %v, want 0.7", got.Rotation)
	}
}

func TestCombineAssociative(t *testing.T) {
	a := Transform{Position: Vec2{1, 2}, Scale: Vec2{2, 2}, Rotation: 0.5}
	b := Transform{Position: Vec2{-3, 4}, Scale: Vec2{0.5, 1}, Rotation: -1.1}
	c := Transform{Position: Vec2{0.5, -0.5}, Scale: Vec2{3, 0.25}, Rotation: 2.7}
	left := a.Combine(b).Combine(c)
	right := a.Combine(b.Combine(c))
	if !transformNear(left, right) {
		t.Errorf("(a·b)·c = %+v, a·(b·c) = %+v", left, right)
	}
}

// --- Builders ---

func TestWithBuilders(t *testing.T) {
	base := NewTransform()
	got := base.WithPosition(Vec2{1, 1}).WithScale(Vec2{2, 2}).WithRotation(0.5)
	if base.Position != (Vec2{}) {
		t.Error("WithPosition mutated the receiver")
	}
	want := Transform{Position: Vec2{1, 1}, Scale: Vec2{2, 2}, Rotation: 0.5}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

// --- Vec2 ---

func TestVec2Rotate(t *testing.T) {
	got := Vec2{1, 0}.Rotate(math.Pi)
	if !vecNear(got, Vec2{-1, 0}) {
		t.Errorf("Rotate(pi) = %v, want (-1, 0)", got)
	}
}

func TestVec2RotateRoundTrip(t *testing.T) {
	v := Vec2{3, -4}
	got := v.Rotate(1.3).Rotate(-1.3)
	if !vecNear(got, v) {
		t.Errorf("rotate round trip = %v, want %v", got, v)
	}
}

func TestVec2Length(t *testing.T) {
	if got := (Vec2{3, 4}).Length(); math.Abs(got-5) > epsilon {
		t.Errorf("Length = %v, want 5", got)
	}
}
