package arbor

import (
	"math"

	"github.com/jakecoffman/cp"
)

// defaultGravity matches a Y-down screen space world.
var defaultGravity = Vec2{X: 0, Y: 9.81}

// physicsWorld wraps the Chipmunk space of one layer. It is created lazily
// on the first physics-carrying object or physics accessor and is guarded by
// the owning layer's lock.
type physicsWorld struct {
	space   *cp.Space
	params  PhysicsParams
	gravity Vec2
	enabled bool

	joints    map[JointHandle]jointEntry
	nextJoint JointHandle
}

func newPhysicsWorld() *physicsWorld {
	w := &physicsWorld{
		space:     cp.NewSpace(),
		params:    DefaultPhysicsParams(),
		gravity:   defaultGravity,
		enabled:   true,
		joints:    make(map[JointHandle]jointEntry),
		nextJoint: 1,
	}
	w.space.SetGravity(cpv(w.gravity))
	w.applyParams()
	return w
}

func (w *physicsWorld) applyParams() {
	w.space.Iterations = w.params.Iterations
	w.space.SetDamping(w.params.Damping)
	// Chipmunk disables sleeping with an infinite threshold, not zero.
	if w.params.SleepTimeThreshold > 0 {
		w.space.SleepTimeThreshold = w.params.SleepTimeThreshold
	} else {
		w.space.SleepTimeThreshold = math.Inf(1)
	}
}

// step advances the space by the configured fixed tick.
func (w *physicsWorld) step() {
	w.space.Step(w.params.Dt)
}

func cpv(v Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

// shapeID extracts the owning object's ID from a shape's user data.
func shapeID(shape *cp.Shape) (uint64, bool) {
	id, ok := shape.UserData.(uint64)
	return id, ok
}

// objectPhysics is the physics part every node holds: the collider and rigid
// body descriptions (the intent) and the live Chipmunk handles (the
// registration). update reconciles intent with registration; the sixteen
// combinations of present/absent descriptions and handles each map to a
// specific transition.
type objectPhysics struct {
	collider              *Collider
	rigidBody             *RigidBody
	localColliderPosition Vec2

	// shape and body are the registered handles. carrier is the static body
	// a standalone collider rides on; Chipmunk shapes always belong to a
	// body, so a collider without a rigid body gets a private static one.
	shape   *cp.Shape
	body    *cp.Body
	carrier *cp.Body

	// registeredShape and registeredOffset record the geometry the live
	// shape was built with, to detect when a sync must rebuild it.
	// registeredBody does the same for the body description.
	registeredShape  ColliderShape
	registeredOffset Vec2
	registeredBody   RigidBody
}

// update reconciles the object's physics intent with the physics world.
// world is the object's combined world transform and id its layer-scoped ID,
// which is written into every handle's user data so query hits map back to
// the owning object. Stale IDs cannot misattribute hits: layer IDs are never
// reused.
func (p *objectPhysics) update(world Transform, id uint64, w *physicsWorld) {
	hasCollider := p.collider != nil
	hasRigidBody := p.rigidBody != nil
	hasShape := p.shape != nil
	hasBody := p.body != nil

	switch {
	// Fresh registrations.
	case hasCollider && !hasRigidBody && !hasShape && !hasBody:
		p.insertStandaloneCollider(world, id, w)
	case !hasCollider && hasRigidBody && !hasShape && !hasBody:
		p.insertBody(world, id, w)
	case hasCollider && hasRigidBody && !hasShape && !hasBody:
		// The collider's offset becomes relative to its parent body.
		p.insertBody(world, id, w)
		p.attachShape(p.body, p.localColliderPosition, id, w)

	// Standalone collider registered, no body.
	case !hasCollider && !hasRigidBody && hasShape && !hasBody:
		p.detachShape(w)
	case hasCollider && !hasRigidBody && hasShape && !hasBody:
		p.refreshShape(world, p.carrier, Vec2{}, id, w)
	case !hasCollider && hasRigidBody && hasShape && !hasBody:
		p.detachShape(w)
		p.insertBody(world, id, w)
	case hasCollider && hasRigidBody && hasShape && !hasBody:
		// Promote: the standalone collider moves onto a fresh rigid body.
		p.detachShape(w)
		p.insertBody(world, id, w)
		p.attachShape(p.body, p.localColliderPosition, id, w)

	// Body registered, no shape.
	case !hasCollider && !hasRigidBody && !hasShape && hasBody:
		p.detachBody(w)
	case hasCollider && !hasRigidBody && !hasShape && hasBody:
		p.detachBody(w)
		p.insertStandaloneCollider(world, id, w)
	case !hasCollider && hasRigidBody && !hasShape && hasBody:
		p.refreshBody(world, id)
	case hasCollider && hasRigidBody && !hasShape && hasBody:
		p.refreshBody(world, id)
		p.attachShape(p.body, p.localColliderPosition, id, w)

	// Both registered.
	case !hasCollider && !hasRigidBody && hasShape && hasBody:
		p.detachShape(w)
		p.detachBody(w)
	case hasCollider && !hasRigidBody && hasShape && hasBody:
		// Demote: the collider outlives its body and goes back to
		// world-space standalone.
		p.detachShape(w)
		p.detachBody(w)
		p.insertStandaloneCollider(world, id, w)
	case !hasCollider && hasRigidBody && hasShape && hasBody:
		p.detachShape(w)
		p.refreshBody(world, id)
	case hasCollider && hasRigidBody && hasShape && hasBody:
		p.refreshBody(world, id)
		p.refreshShape(world, p.body, p.localColliderPosition, id, w)
	}
}

// removeBodyJoints purges every joint attached to the given body. A body must
// leave the space with no constraints still referencing it.
func (w *physicsWorld) removeBodyJoints(body *cp.Body) {
	for h, entry := range w.joints {
		if entry.a == body || entry.b == body {
			w.space.RemoveConstraint(entry.constraint)
			delete(w.joints, h)
		}
	}
}

// remove deregisters everything this object put into the physics world.
// Safe to call when nothing is registered or the layer has no physics.
func (p *objectPhysics) remove(w *physicsWorld) {
	if w != nil {
		if p.shape != nil {
			w.space.RemoveShape(p.shape)
		}
		if p.body != nil {
			w.removeBodyJoints(p.body)
			w.space.RemoveBody(p.body)
		}
	}
	p.shape = nil
	p.carrier = nil
	p.body = nil
}

// registered reports which handles are currently live.
func (p *objectPhysics) handles() (shape, body bool) {
	return p.shape != nil, p.body != nil
}

func (p *objectPhysics) insertStandaloneCollider(world Transform, id uint64, w *physicsWorld) {
	carrier := cp.NewStaticBody()
	carrier.SetPosition(cpv(world.Position))
	carrier.SetAngle(world.Rotation)
	carrier.UserData = id
	shape := p.collider.build(carrier, Vec2{})
	shape.UserData = id
	w.space.AddShape(shape)
	p.shape = shape
	p.carrier = carrier
	p.registeredShape = p.collider.Shape
	p.registeredOffset = Vec2{}
}

func (p *objectPhysics) insertBody(world Transform, id uint64, w *physicsWorld) {
	body := p.rigidBody.build(p.collider, p.localColliderPosition)
	body.SetPosition(cpv(world.Position))
	body.SetAngle(world.Rotation)
	body.UserData = id
	w.space.AddBody(body)
	p.rigidBody.apply(body)
	p.body = body
	p.registeredBody = *p.rigidBody
}

func (p *objectPhysics) attachShape(body *cp.Body, offset Vec2, id uint64, w *physicsWorld) {
	shape := p.collider.build(body, offset)
	shape.UserData = id
	w.space.AddShape(shape)
	p.shape = shape
	p.carrier = nil
	p.registeredShape = p.collider.Shape
	p.registeredOffset = offset
}

func (p *objectPhysics) detachShape(w *physicsWorld) {
	w.space.RemoveShape(p.shape)
	p.shape = nil
	p.carrier = nil
}

func (p *objectPhysics) detachBody(w *physicsWorld) {
	w.removeBodyJoints(p.body)
	w.space.RemoveBody(p.body)
	p.body = nil
}

// refreshBody pushes the description and world transform onto the live body.
// Type, mass, and rotation lock changes are applied in place, mirroring how
// refreshShape handles surface property changes.
func (p *objectPhysics) refreshBody(world Transform, id uint64) {
	rb := p.rigidBody
	if rb.Type != p.registeredBody.Type || rb.Mass != p.registeredBody.Mass ||
		rb.FixedRotation != p.registeredBody.FixedRotation {
		p.body.SetType(rb.Type.cpType())
		if rb.Type == BodyDynamic {
			p.body.SetMass(rb.Mass)
			p.body.SetMoment(rb.moment(p.collider, p.localColliderPosition))
		}
		p.registeredBody = *rb
	}
	p.body.SetPosition(cpv(world.Position))
	p.body.SetAngle(world.Rotation)
	p.body.UserData = id
	p.rigidBody.apply(p.body)
}

// refreshShape updates the live shape in place when only surface properties
// changed, and rebuilds it on the same body when the geometry or offset
// changed. Chipmunk indexes static shapes on insertion only, so a standalone
// carrier that moved re-adds its shape to refresh the spatial index.
func (p *objectPhysics) refreshShape(world Transform, body *cp.Body, offset Vec2, id uint64, w *physicsWorld) {
	moved := false
	if p.carrier != nil {
		pos := p.carrier.Position()
		moved = pos.X != world.Position.X || pos.Y != world.Position.Y ||
			p.carrier.Angle() != world.Rotation
		p.carrier.SetPosition(cpv(world.Position))
		p.carrier.SetAngle(world.Rotation)
	}
	if p.collider.Shape != p.registeredShape || offset != p.registeredOffset {
		carrier := p.carrier
		w.space.RemoveShape(p.shape)
		shape := p.collider.build(body, offset)
		shape.UserData = id
		w.space.AddShape(shape)
		p.shape = shape
		p.carrier = carrier
		p.registeredShape = p.collider.Shape
		p.registeredOffset = offset
		return
	}
	p.collider.apply(p.shape)
	p.shape.UserData = id
	if moved {
		w.space.RemoveShape(p.shape)
		w.space.AddShape(p.shape)
	}
}
