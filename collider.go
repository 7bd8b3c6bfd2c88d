package arbor

import "github.com/jakecoffman/cp"

// ShapeKind selects the geometry of a collider shape.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeBox
	ShapeSegment
)

// ColliderShape is the geometry of a collider. It is a comparable value so
// the physics adapter can detect geometry changes between syncs; Chipmunk
// shapes are immutable once built, so a geometry change forces a rebuild
// while plain property changes apply in place.
type ColliderShape struct {
	Kind ShapeKind
	// Radius is the circle radius, or the beveling radius for segments.
	Radius float64
	// Width and Height describe box shapes.
	Width, Height float64
	// A and B are the segment endpoints in local space.
	A, B Vec2
}

// CircleShape returns a circle collider shape with the given radius.
func CircleShape(radius float64) ColliderShape {
	return ColliderShape{Kind: ShapeCircle, Radius: radius}
}

// BoxShape returns a box collider shape with the given side lengths.
func BoxShape(width, height float64) ColliderShape {
	return ColliderShape{Kind: ShapeBox, Width: width, Height: height}
}

// SegmentShape returns a segment collider shape between two local points
// with a beveling radius.
func SegmentShape(a, b Vec2, radius float64) ColliderShape {
	return ColliderShape{Kind: ShapeSegment, A: a, B: b, Radius: radius}
}

// Collider describes the collision geometry and surface properties of an
// object. Setting a collider on an object and syncing registers it with the
// layer's physics world; clearing it deregisters it.
type Collider struct {
	Shape      ColliderShape
	Friction   float64
	Elasticity float64
	// Sensor shapes detect overlaps but produce no collision response.
	Sensor bool
}

// NewCollider returns a collider with the given shape and default surface
// properties.
func NewCollider(shape ColliderShape) *Collider {
	return &Collider{Shape: shape, Friction: 0.7}
}

// clone returns an independent copy, or nil.
func (c *Collider) clone() *Collider {
	if c == nil {
		return nil
	}
	cc := *c
	return &cc
}

// build constructs the Chipmunk shape on the given body at the given local
// offset. The returned shape is not yet added to a space.
func (c *Collider) build(body *cp.Body, offset Vec2) *cp.Shape {
	var shape *cp.Shape
	switch c.Shape.Kind {
	case ShapeBox:
		bb := cp.BB{
			L: offset.X - c.Shape.Width/2,
			B: offset.Y - c.Shape.Height/2,
			R: offset.X + c.Shape.Width/2,
			T: offset.Y + c.Shape.Height/2,
		}
		shape = cp.NewBox2(body, bb, 0)
	case ShapeSegment:
		a := cp.Vector{X: c.Shape.A.X + offset.X, Y: c.Shape.A.Y + offset.Y}
		b := cp.Vector{X: c.Shape.B.X + offset.X, Y: c.Shape.B.Y + offset.Y}
		shape = cp.NewSegment(body, a, b, c.Shape.Radius)
	default:
		shape = cp.NewCircle(body, c.Shape.Radius, cp.Vector{X: offset.X, Y: offset.Y})
	}
	c.apply(shape)
	return shape
}

// apply writes the collider's surface properties onto an existing shape.
func (c *Collider) apply(shape *cp.Shape) {
	shape.SetFriction(c.Friction)
	shape.SetElasticity(c.Elasticity)
	shape.SetSensor(c.Sensor)
}

// moment returns the moment of inertia of the shape for the given mass.
func (c *Collider) moment(mass float64, offset Vec2) float64 {
	switch c.Shape.Kind {
	case ShapeBox:
		return cp.MomentForBox(mass, c.Shape.Width, c.Shape.Height)
	case ShapeSegment:
		w := c.Shape.B.Sub(c.Shape.A).Length()
		return cp.MomentForBox(mass, w, c.Shape.Radius*2)
	default:
		return cp.MomentForCircle(mass, 0, c.Shape.Radius, cp.Vector{X: offset.X, Y: offset.Y})
	}
}
