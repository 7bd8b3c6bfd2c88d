package arbor

import "github.com/jakecoffman/cp"

// JointHandle identifies a joint within a layer's physics world. Handles are
// never reused.
type JointHandle uint64

// Joint describes a constraint between the rigid bodies of two objects.
// Anchor points are in the local space of the respective body.
type Joint interface {
	constraint(a, b *cp.Body) *cp.Constraint
}

// jointEntry pairs the user-facing description with the live constraint and
// the bodies it joins, so deregistering a body can purge its joints.
type jointEntry struct {
	desc       Joint
	constraint *cp.Constraint
	a, b       *cp.Body
}

// PinJoint keeps the distance between two anchor points fixed at whatever it
// is at creation time. A rigid rod.
type PinJoint struct {
	AnchorA, AnchorB Vec2
}

func (j PinJoint) constraint(a, b *cp.Body) *cp.Constraint {
	return cp.NewPinJoint(a, b, cpv(j.AnchorA), cpv(j.AnchorB))
}

// PivotJoint lets two bodies rotate freely around a shared world-space point.
type PivotJoint struct {
	Point Vec2
}

func (j PivotJoint) constraint(a, b *cp.Body) *cp.Constraint {
	return cp.NewPivotJoint(a, b, cpv(j.Point))
}

// SlideJoint keeps the distance between two anchor points within a range,
// like a pin joint with slack.
type SlideJoint struct {
	AnchorA, AnchorB Vec2
	Min, Max         float64
}

func (j SlideJoint) constraint(a, b *cp.Body) *cp.Constraint {
	return cp.NewSlideJoint(a, b, cpv(j.AnchorA), cpv(j.AnchorB), j.Min, j.Max)
}

// SpringJoint connects two anchor points with a damped spring.
type SpringJoint struct {
	AnchorA, AnchorB Vec2
	RestLength       float64
	Stiffness        float64
	Damping          float64
}

func (j SpringJoint) constraint(a, b *cp.Body) *cp.Constraint {
	return cp.NewDampedSpring(a, b, cpv(j.AnchorA), cpv(j.AnchorB), j.RestLength, j.Stiffness, j.Damping)
}
