package arbor

// Transform holds the position, scale, and rotation of an object.
//
// Transforms compose with Combine, which forms a monoid: NewTransform() is
// the identity element and composition is associative. The zero value is NOT
// the identity (its scale is zero); use NewTransform.
type Transform struct {
	Position Vec2
	Scale    Vec2
	// Rotation is in radians, clockwise in screen space (Y down).
	Rotation float64
}

// NewTransform returns the identity transform: position (0,0), scale (1,1),
// rotation 0.
func NewTransform() Transform {
	return Transform{Scale: Vec2{1, 1}}
}

// Combine composes a parent transform with a child transform and returns the
// child's resulting world transform: the child position is rotated by the
// parent rotation and offset by the parent position, scales multiply
// componentwise, and rotations add.
func (t Transform) Combine(child Transform) Transform {
	return Transform{
		Position: t.Position.Add(child.Position.Rotate(t.Rotation)),
		Scale:    t.Scale.Mul(child.Scale),
		Rotation: t.Rotation + child.Rotation,
	}
}

// WithPosition returns a copy of t with the given position.
func (t Transform) WithPosition(position Vec2) Transform {
	t.Position = position
	return t
}

// WithScale returns a copy of t with the given scale.
func (t Transform) WithScale(scale Vec2) Transform {
	t.Scale = scale
	return t
}

// WithRotation returns a copy of t with the given rotation in radians.
func (t Transform) WithRotation(rotation float64) Transform {
	t.Rotation = rotation
	return t
}
