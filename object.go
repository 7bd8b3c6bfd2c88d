package arbor

// Object is the user-facing handle to one object in a layer.
//
// An Object starts uninitialized: set its transform, appearance, and optional
// physics parts, then call Init or InitWithParent to place it into a layer.
// From then on the handle and the tree hold separate copies of the state;
// Sync pushes the handle's state into the tree (and re-registers physics),
// Update pulls the tree's state (including physics step results) back into
// the handle.
//
// After Remove the handle keeps its data and may be initialized again,
// possibly into a different layer.
type Object struct {
	Transform  Transform
	Appearance Appearance

	collider              *Collider
	rigidBody             *RigidBody
	localColliderPosition Vec2

	id    uint64
	layer *Layer
	node  *node
}

// NewObject returns an uninitialized object with an identity transform and a
// default appearance.
func NewObject() *Object {
	return &Object{
		Transform:  NewTransform(),
		Appearance: NewAppearance(),
	}
}

// ID returns the object's layer-scoped ID, or 0 if uninitialized. IDs are
// monotonically increasing per layer and never reused, even after removal.
func (o *Object) ID() uint64 {
	return o.id
}

// Layer returns the layer the object lives in, or nil if uninitialized.
func (o *Object) Layer() *Layer {
	return o.layer
}

// Initialized reports whether the object currently resolves to a live node.
// It returns false after Remove was called on any handle to the same object.
func (o *Object) Initialized() bool {
	l := o.layer
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := o.resolve()
	return err == nil
}

// Collider returns the object's collider description, or nil.
func (o *Object) Collider() *Collider {
	return o.collider
}

// SetCollider sets or clears the object's collider description. Takes effect
// on the next Init or Sync.
func (o *Object) SetCollider(c *Collider) {
	o.collider = c
}

// RigidBody returns the object's rigid body description, or nil.
func (o *Object) RigidBody() *RigidBody {
	return o.rigidBody
}

// SetRigidBody sets or clears the object's rigid body description. Takes
// effect on the next Init or Sync.
func (o *Object) SetRigidBody(rb *RigidBody) {
	o.rigidBody = rb
}

// LocalColliderPosition returns the collider's offset relative to the
// object's rigid body.
func (o *Object) LocalColliderPosition() Vec2 {
	return o.localColliderPosition
}

// SetLocalColliderPosition sets the collider's offset relative to the
// object's rigid body. Takes effect on the next Init or Sync.
func (o *Object) SetLocalColliderPosition(pos Vec2) {
	o.localColliderPosition = pos
}

// SetIsometry sets the handle's position and rotation in one call, leaving
// the scale untouched.
func (o *Object) SetIsometry(position Vec2, rotation float64) {
	o.Transform.Position = position
	o.Transform.Rotation = rotation
}

// Init places the object into the layer, directly under the layer's root.
func (o *Object) Init(l *Layer) error {
	return l.initObject(o, nil)
}

// InitWithParent places the object into the parent's layer as a child of the
// parent. Returns ErrNoParent if the parent was already removed.
func (o *Object) InitWithParent(parent *Object) error {
	if parent == nil || parent.layer == nil {
		return ErrNoParent
	}
	return parent.layer.initObject(o, parent)
}

// Remove takes the object out of its layer. All descendants are removed
// first: each is deregistered from the physics world and evicted from the
// layer's maps before the parent's child link is severed. Returns
// ErrObjectRemoved if the object was already removed, enforcing at-most-once
// removal.
//
// The handle keeps its transform, appearance, and physics descriptions and
// can be initialized again.
func (o *Object) Remove() error {
	l := o.layer
	if l == nil {
		return ErrObjectRemoved
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	n, ok := l.objects[o.id]
	if !ok || n != o.node {
		return ErrObjectRemoved
	}
	delete(l.objects, o.id)
	delete(l.rigidBodyRoots, o.id)
	n.physics.remove(l.physics)
	n.removeChildren(l)

	if err := n.parent.removeChild(n); err != nil {
		return err
	}
	n.removed = true
	n.parent = nil

	o.id = 0
	o.layer = nil
	o.node = nil
	return nil
}

// Update pulls the tree's state for this object back into the handle. Call
// it after physics steps to observe simulation results.
func (o *Object) Update() error {
	l := o.layer
	if l == nil {
		return ErrObjectRemoved
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	n, err := o.resolve()
	if err != nil {
		return err
	}
	o.Transform = n.transform
	o.Appearance = n.appearance
	return nil
}

// Sync pushes the handle's state into the tree and reconciles the physics
// registration with the current collider/rigid body descriptions. Transform
// edits made here reach the physics world now, not mid-step.
func (o *Object) Sync() error {
	l := o.layer
	if l == nil {
		return ErrObjectRemoved
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	n, err := o.resolve()
	if err != nil {
		return err
	}

	n.transform = o.Transform
	n.appearance = o.Appearance
	n.physics.collider = o.collider.clone()
	n.physics.rigidBody = o.rigidBody.clone()
	n.physics.localColliderPosition = o.localColliderPosition

	if n.physics.collider != nil || n.physics.rigidBody != nil ||
		n.physics.shape != nil || n.physics.body != nil {
		w := l.ensurePhysicsLocked()
		n.physics.update(n.worldTransform(), n.id, w)
	}
	l.updateRigidBodyRootLocked(n)
	return nil
}

// WorldTransform returns the object's combined world transform within its
// layer.
func (o *Object) WorldTransform() (Transform, error) {
	l := o.layer
	if l == nil {
		return Transform{}, ErrObjectRemoved
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	n, err := o.resolve()
	if err != nil {
		return Transform{}, err
	}
	return n.worldTransform(), nil
}

// MoveTo moves the object to the given index in its parent's children order.
func (o *Object) MoveTo(index int) error {
	return o.reorder(func(l *Layer, n *node) error { return l.moveToLocked(n, index) })
}

// MoveUp swaps the object with the sibling before it. Fails with ErrMove if
// it is already first.
func (o *Object) MoveUp() error {
	return o.reorder((*Layer).moveUpLocked)
}

// MoveDown swaps the object with the sibling after it. Fails with ErrMove if
// it is already last.
func (o *Object) MoveDown() error {
	return o.reorder((*Layer).moveDownLocked)
}

// MoveToTop moves the object to the front of its parent's children order,
// preserving the relative order of its siblings.
func (o *Object) MoveToTop() error {
	return o.reorder((*Layer).moveToTopLocked)
}

// MoveToBottom moves the object to the back of its parent's children order,
// preserving the relative order of its siblings.
func (o *Object) MoveToBottom() error {
	return o.reorder((*Layer).moveToBottomLocked)
}

func (o *Object) reorder(op func(*Layer, *node) error) error {
	l := o.layer
	if l == nil {
		return ErrObjectRemoved
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	n, err := o.resolve()
	if err != nil {
		return err
	}
	return op(l, n)
}

// resolve returns the live node behind the handle. Must hold the layer lock.
func (o *Object) resolve() (*node, error) {
	if o.node == nil || o.node.removed {
		return nil, ErrObjectRemoved
	}
	return o.node, nil
}
