package arbor

import (
	"math"

	"github.com/jakecoffman/cp"
)

// BodyType selects how a rigid body participates in the simulation.
type BodyType int

const (
	// BodyDynamic bodies are fully simulated: forces, gravity, collisions.
	BodyDynamic BodyType = iota
	// BodyKinematic bodies move only when their velocity is set and are
	// unaffected by forces. Useful for platforms and movers.
	BodyKinematic
	// BodyStatic bodies never move. Colliders of static objects behave the
	// same without a rigid body; this exists for explicitness.
	BodyStatic
)

// RigidBody describes the simulated-body part of an object. Setting a rigid
// body on an object and syncing registers it with the layer's physics world;
// after every physics step the body's position and rotation are written back
// into the owning node's transform if the object is a rigid-body root.
type RigidBody struct {
	Type BodyType
	// Mass of the body. Defaults to 1.
	Mass float64
	// FixedRotation locks the body's angle by giving it infinite moment.
	FixedRotation bool
	// LinearVelocity and AngularVelocity are applied on registration and on
	// every sync, mirroring the rest of the body description.
	LinearVelocity  Vec2
	AngularVelocity float64
}

// NewRigidBody returns a rigid body description of the given type with mass 1.
func NewRigidBody(t BodyType) *RigidBody {
	return &RigidBody{Type: t, Mass: 1}
}

// clone returns an independent copy, or nil.
func (rb *RigidBody) clone() *RigidBody {
	if rb == nil {
		return nil
	}
	c := *rb
	return &c
}

// build constructs the Chipmunk body. The moment of inertia comes from the
// attached collider when there is one; a colliderless or rotation-locked
// body gets an infinite moment so it cannot spin.
func (rb *RigidBody) build(collider *Collider, colliderOffset Vec2) *cp.Body {
	switch rb.Type {
	case BodyKinematic:
		return cp.NewKinematicBody()
	case BodyStatic:
		return cp.NewStaticBody()
	}
	return cp.NewBody(rb.Mass, rb.moment(collider, colliderOffset))
}

// moment returns the moment of inertia for a dynamic body of this
// description with the given attached collider.
func (rb *RigidBody) moment(collider *Collider, colliderOffset Vec2) float64 {
	if rb.FixedRotation || collider == nil {
		return math.Inf(1)
	}
	return collider.moment(rb.Mass, colliderOffset)
}

// cpType maps the body type onto Chipmunk's body type constant.
func (t BodyType) cpType() int {
	switch t {
	case BodyKinematic:
		return cp.BODY_KINEMATIC
	case BodyStatic:
		return cp.BODY_STATIC
	default:
		return cp.BODY_DYNAMIC
	}
}

// apply writes the description's velocities onto a registered body.
func (rb *RigidBody) apply(body *cp.Body) {
	body.SetVelocityVector(cp.Vector{X: rb.LinearVelocity.X, Y: rb.LinearVelocity.Y})
	body.SetAngularVelocity(rb.AngularVelocity)
}
