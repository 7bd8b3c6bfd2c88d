package arbor

import (
	"fmt"
	"sync"

	"github.com/jakecoffman/cp"
)

// queryMaxDistance bounds nearest-collider queries. Large enough to cover any
// sane world, small enough to keep bounding box math finite.
const queryMaxDistance = 1e9

// Layer is one scene-graph arena: an object tree, the per-layer physics
// world, sublayers, and the views looking into it. Every layer except the
// scene root has a parent layer.
//
// All layer state is guarded by one mutex. Operations that span layers take
// locks parent before child, and the scene lock before any layer lock.
type Layer struct {
	mu    sync.Mutex
	scene *Scene

	// parent points at the owning layer. The root layer points at itself,
	// which doubles as the root marker.
	parent *Layer

	// root is the anchor node of the tree. It carries ID 0, an identity
	// transform, and no appearance or physics, and is not user-addressable.
	root *node

	objects        map[uint64]*node
	rigidBodyRoots map[uint64]*node
	nextID         uint64

	layers  []*Layer
	views   []*View
	physics *physicsWorld
	removed bool
}

func newLayer(scene *Scene, parent *Layer) *Layer {
	l := &Layer{
		scene:          scene,
		root:           &node{transform: NewTransform()},
		objects:        make(map[uint64]*node),
		rigidBodyRoots: make(map[uint64]*node),
	}
	l.parent = parent
	if parent == nil {
		l.parent = l
	}
	return l
}

// Scene returns the scene this layer belongs to.
func (l *Layer) Scene() *Scene {
	return l.scene
}

// IsRoot reports whether this is the scene's root layer.
func (l *Layer) IsRoot() bool {
	return l.parent == l
}

// Parent returns the parent layer, or nil for the root layer.
func (l *Layer) Parent() *Layer {
	if l.IsRoot() {
		return nil
	}
	return l.parent
}

// NewLayer creates and attaches a new empty sublayer. Returns nil if this
// layer was already removed from the scene.
func (l *Layer) NewLayer() *Layer {
	l.mu.Lock()
	if l.removed {
		l.mu.Unlock()
		return nil
	}
	sub := newLayer(l.scene, l)
	l.layers = append(l.layers, sub)
	l.mu.Unlock()
	return sub
}

// Layers returns a snapshot of the sublayers in creation order.
func (l *Layer) Layers() []*Layer {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*Layer, len(l.layers))
	copy(out, l.layers)
	return out
}

// NewView creates a view into this layer with the given pixel extent. The
// root layer is covered by the scene's root view; calling NewView on it
// returns nil.
func (l *Layer) NewView(extent Vec2) *View {
	if l.IsRoot() {
		return nil
	}
	l.mu.Lock()
	if l.removed {
		l.mu.Unlock()
		return nil
	}
	v := newView(l, extent, false)
	l.views = append(l.views, v)
	l.mu.Unlock()
	l.scene.refreshViews()
	return v
}

// Remove detaches this layer from the scene and tears down everything in it:
// all objects (physics registrations included), all views, and all sublayers
// recursively. Removing an already removed layer is a no-op. The root layer
// cannot be removed; ErrRootLayer is returned instead.
func (l *Layer) Remove() error {
	if l.IsRoot() {
		return ErrRootLayer
	}
	p := l.parent
	p.mu.Lock()
	detached := false
	for i, sub := range p.layers {
		if sub == l {
			copy(p.layers[i:], p.layers[i+1:])
			p.layers[len(p.layers)-1] = nil
			p.layers = p.layers[:len(p.layers)-1]
			detached = true
			break
		}
	}
	p.mu.Unlock()
	if !detached {
		return nil
	}
	l.teardown()
	l.scene.refreshViews()
	return nil
}

// teardown empties the layer and everything below it. The layer is already
// detached from its parent (or the parent is being torn down itself).
func (l *Layer) teardown() {
	l.mu.Lock()
	subs := l.layers
	views := l.views
	l.layers = nil
	l.views = nil
	l.root.removeChildren(l)
	l.physics = nil
	l.removed = true
	l.mu.Unlock()
	for _, v := range views {
		v.closed.Store(true)
	}
	for _, sub := range subs {
		sub.teardown()
	}
}

// appendViewsPostOrder collects the open views of this layer's subtree,
// sublayers before the layer itself, pruning closed views as it goes.
func (l *Layer) appendViewsPostOrder(out *[]*View) {
	l.mu.Lock()
	subs := make([]*Layer, len(l.layers))
	copy(subs, l.layers)
	l.mu.Unlock()
	for _, sub := range subs {
		sub.appendViewsPostOrder(out)
	}
	l.mu.Lock()
	kept := l.views[:0]
	for _, v := range l.views {
		if v.Closed() {
			continue
		}
		kept = append(kept, v)
		*out = append(*out, v)
	}
	for i := len(kept); i < len(l.views); i++ {
		l.views[i] = nil
	}
	l.views = kept
	l.mu.Unlock()
}

// ContainsObject reports whether an object with the given ID currently lives
// in this layer.
func (l *Layer) ContainsObject(id uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.objects[id]
	return ok
}

// NumObjects returns the number of live objects in this layer, the anchor
// node excluded.
func (l *Layer) NumObjects() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.objects)
}

// DrawOrder returns the layer's objects in draw order: parents before
// children, siblings front to back, transforms combined top-down. Invisible
// objects and their subtrees are skipped.
func (l *Layer) DrawOrder() []DrawItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]DrawItem, 0, len(l.objects))
	l.root.drawWalk(l.root.transform, &out)
	return out
}

// --- object tree ---

func (l *Layer) initObject(o *Object, parent *Object) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.removed {
		return ErrNoParent
	}
	pn := l.root
	if parent != nil {
		if parent.layer != l || parent.node == nil || parent.node.removed {
			return ErrNoParent
		}
		pn = parent.node
	}
	l.nextID++
	n := &node{
		id:         l.nextID,
		transform:  o.Transform,
		appearance: o.Appearance,
		physics: objectPhysics{
			collider:              o.collider.clone(),
			rigidBody:             o.rigidBody.clone(),
			localColliderPosition: o.localColliderPosition,
		},
		parent: pn,
	}
	pn.children = append(pn.children, n)
	l.objects[n.id] = n
	if n.physics.collider != nil || n.physics.rigidBody != nil {
		w := l.ensurePhysicsLocked()
		n.physics.update(n.worldTransform(), n.id, w)
	}
	l.updateRigidBodyRootLocked(n)
	if l.scene != nil && l.scene.DebugMode() {
		debugCheckTreeDepth(n)
	}
	o.id = n.id
	o.layer = l
	o.node = n
	return nil
}

// updateRigidBodyRootLocked recomputes whether n is a rigid-body root and
// keeps the root map in sync. A node is a root when it carries a registered
// body and no ancestor does; only roots get step results written back.
// Descendants are recomputed too, since gaining or losing a body here can
// promote or demote bodies below.
func (l *Layer) updateRigidBodyRootLocked(n *node) {
	l.refreshRootStatusLocked(n)
	var walk func(*node)
	walk = func(m *node) {
		for _, c := range m.children {
			l.refreshRootStatusLocked(c)
			walk(c)
		}
	}
	walk(n)
}

func (l *Layer) refreshRootStatusLocked(n *node) {
	n.rigidBodyAncestor = nil
	for a := n.parent; a != nil; a = a.parent {
		if a.physics.body != nil {
			n.rigidBodyAncestor = a
			break
		}
	}
	if n.physics.body != nil && n.rigidBodyAncestor == nil {
		l.rigidBodyRoots[n.id] = n
	} else {
		delete(l.rigidBodyRoots, n.id)
	}
}

// --- reordering ---

func (l *Layer) moveToLocked(n *node, index int) error {
	p := n.parent
	if p == nil {
		return ErrNoParent
	}
	if index < 0 || index >= len(p.children) {
		return fmt.Errorf("%w: index %d outside 0..%d", ErrMove, index, len(p.children)-1)
	}
	i := p.childIndex(n)
	if i < 0 {
		return errCorruptTree
	}
	copy(p.children[i:], p.children[i+1:])
	copy(p.children[index+1:], p.children[index:len(p.children)-1])
	p.children[index] = n
	return nil
}

func (l *Layer) moveUpLocked(n *node) error {
	p := n.parent
	if p == nil {
		return ErrNoParent
	}
	i := p.childIndex(n)
	if i < 0 {
		return errCorruptTree
	}
	if i == 0 {
		return fmt.Errorf("%w: already first among its siblings", ErrMove)
	}
	p.children[i-1], p.children[i] = p.children[i], p.children[i-1]
	return nil
}

func (l *Layer) moveDownLocked(n *node) error {
	p := n.parent
	if p == nil {
		return ErrNoParent
	}
	i := p.childIndex(n)
	if i < 0 {
		return errCorruptTree
	}
	if i == len(p.children)-1 {
		return fmt.Errorf("%w: already last among its siblings", ErrMove)
	}
	p.children[i], p.children[i+1] = p.children[i+1], p.children[i]
	return nil
}

func (l *Layer) moveToTopLocked(n *node) error {
	return l.moveToEndLocked(n, 0)
}

func (l *Layer) moveToBottomLocked(n *node) error {
	p := n.parent
	if p == nil {
		return ErrNoParent
	}
	return l.moveToEndLocked(n, len(p.children)-1)
}

// moveToEndLocked is moveToLocked without the already-there error, so top and
// bottom moves are idempotent.
func (l *Layer) moveToEndLocked(n *node, index int) error {
	p := n.parent
	if p == nil {
		return ErrNoParent
	}
	if i := p.childIndex(n); i == index {
		return nil
	}
	return l.moveToLocked(n, index)
}

// --- physics ---

func (l *Layer) ensurePhysicsLocked() *physicsWorld {
	if l.physics == nil {
		l.physics = newPhysicsWorld()
	}
	return l.physics
}

// Gravity returns the layer's gravity vector. Positive Y points down in the
// default screen-space convention.
func (l *Layer) Gravity() Vec2 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ensurePhysicsLocked().gravity
}

// SetGravity sets the layer's gravity vector.
func (l *Layer) SetGravity(g Vec2) {
	l.mu.Lock()
	defer l.mu.Unlock()
	w := l.ensurePhysicsLocked()
	w.gravity = g
	w.space.SetGravity(cpv(g))
}

// PhysicsEnabled reports whether physics iterations step this layer.
func (l *Layer) PhysicsEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ensurePhysicsLocked().enabled
}

// SetPhysicsEnabled turns stepping on or off for this layer. Registrations
// and queries keep working while disabled; only time stops.
func (l *Layer) SetPhysicsEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ensurePhysicsLocked().enabled = enabled
}

// PhysicsParams returns the layer's simulation parameters.
func (l *Layer) PhysicsParams() PhysicsParams {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ensurePhysicsLocked().params
}

// SetPhysicsParams replaces the layer's simulation parameters.
func (l *Layer) SetPhysicsParams(p PhysicsParams) {
	l.mu.Lock()
	defer l.mu.Unlock()
	w := l.ensurePhysicsLocked()
	w.params = p
	w.applyParams()
}

// physicsIteration steps this layer and all sublayers. stats is non-nil only
// in debug mode.
func (l *Layer) physicsIteration(stats *debugStats) {
	l.mu.Lock()
	l.stepLocked()
	if stats != nil {
		l.debugStatsLocked(stats)
	}
	subs := make([]*Layer, len(l.layers))
	copy(subs, l.layers)
	l.mu.Unlock()
	for _, sub := range subs {
		sub.physicsIteration(stats)
	}
}

// stepLocked advances the physics world one tick and writes the resulting
// body isometries back into the transforms of the rigid-body roots. Roots
// are written in local space relative to their parent so descendants combine
// correctly on the next draw walk.
func (l *Layer) stepLocked() {
	w := l.physics
	if w == nil || !w.enabled {
		return
	}
	w.step()
	for _, n := range l.rigidBodyRoots {
		body := n.physics.body
		if body == nil {
			continue
		}
		pos := body.Position()
		world := Vec2{X: pos.X, Y: pos.Y}
		parent := NewTransform()
		if n.parent != nil {
			parent = n.parent.worldTransform()
		}
		n.transform.Position = world.Sub(parent.Position).Rotate(-parent.Rotation)
		n.transform.Rotation = body.Angle() - parent.Rotation
	}
}

// --- queries ---

// RayHit is one intersection reported by a ray query.
type RayHit struct {
	ID     uint64
	Point  Vec2
	Normal Vec2
}

// QueryNearestColliderAt returns the ID of the object whose collider is
// nearest to the given point, if any collider exists in the layer.
func (l *Layer) QueryNearestColliderAt(point Vec2) (uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	w := l.physics
	if w == nil {
		return 0, false
	}
	info := w.space.PointQueryNearest(cpv(point), queryMaxDistance, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return 0, false
	}
	return shapeID(info.Shape)
}

// CastRay casts a ray from origin along direction, at most maxToi direction
// lengths far, and returns the ID of the first collider hit. With solid set,
// a ray starting inside a collider hits it immediately; without it, such
// hits are skipped.
func (l *Layer) CastRay(origin, direction Vec2, maxToi float64, solid bool) (uint64, bool) {
	hit, ok := l.castRay(origin, direction, maxToi, solid)
	return hit.ID, ok
}

// CastRayAndGetNormal is CastRay returning the full hit: object ID, hit
// point, and surface normal.
func (l *Layer) CastRayAndGetNormal(origin, direction Vec2, maxToi float64, solid bool) (RayHit, bool) {
	return l.castRay(origin, direction, maxToi, solid)
}

func (l *Layer) castRay(origin, direction Vec2, maxToi float64, solid bool) (RayHit, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	w := l.physics
	if w == nil {
		return RayHit{}, false
	}
	start := cpv(origin)
	end := cpv(origin.Add(direction.Scale(maxToi)))
	if solid {
		info := w.space.SegmentQueryFirst(start, end, 0, cp.SHAPE_FILTER_ALL)
		if info.Shape == nil {
			return RayHit{}, false
		}
		id, ok := shapeID(info.Shape)
		return RayHit{
			ID:     id,
			Point:  Vec2{X: info.Point.X, Y: info.Point.Y},
			Normal: Vec2{X: info.Normal.X, Y: info.Normal.Y},
		}, ok
	}
	var best RayHit
	bestAlpha := 2.0
	found := false
	w.space.SegmentQuery(start, end, 0, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, _ interface{}) {
		if alpha == 0 || alpha >= bestAlpha {
			return
		}
		id, ok := shapeID(shape)
		if !ok {
			return
		}
		bestAlpha = alpha
		best = RayHit{
			ID:     id,
			Point:  Vec2{X: point.X, Y: point.Y},
			Normal: Vec2{X: normal.X, Y: normal.Y},
		}
		found = true
	}, nil)
	return best, found
}

// IntersectionsWithRay returns every collider the ray crosses, in traversal
// order as reported by the spatial index.
func (l *Layer) IntersectionsWithRay(origin, direction Vec2, maxToi float64) []RayHit {
	l.mu.Lock()
	defer l.mu.Unlock()
	w := l.physics
	if w == nil {
		return nil
	}
	var hits []RayHit
	start := cpv(origin)
	end := cpv(origin.Add(direction.Scale(maxToi)))
	w.space.SegmentQuery(start, end, 0, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, _ interface{}) {
		id, ok := shapeID(shape)
		if !ok {
			return
		}
		hits = append(hits, RayHit{
			ID:     id,
			Point:  Vec2{X: point.X, Y: point.Y},
			Normal: Vec2{X: normal.X, Y: normal.Y},
		})
	}, nil)
	return hits
}

// IntersectionWithShape places a probe shape at the given position and
// rotation and returns the ID of one collider overlapping it, if any.
func (l *Layer) IntersectionWithShape(shape ColliderShape, position Vec2, rotation float64) (uint64, bool) {
	ids := l.intersectionsWithShape(shape, position, rotation, true)
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}

// IntersectionsWithShape places a probe shape at the given position and
// rotation and returns the IDs of all colliders overlapping it.
func (l *Layer) IntersectionsWithShape(shape ColliderShape, position Vec2, rotation float64) []uint64 {
	return l.intersectionsWithShape(shape, position, rotation, false)
}

func (l *Layer) intersectionsWithShape(shape ColliderShape, position Vec2, rotation float64, firstOnly bool) []uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	w := l.physics
	if w == nil {
		return nil
	}
	carrier := cp.NewStaticBody()
	carrier.SetPosition(cpv(position))
	carrier.SetAngle(rotation)
	probe := (&Collider{Shape: shape}).build(carrier, Vec2{})
	var ids []uint64
	w.space.ShapeQuery(probe, func(hit *cp.Shape, points *cp.ContactPointSet) {
		if firstOnly && len(ids) > 0 {
			return
		}
		if id, ok := shapeID(hit); ok {
			ids = append(ids, id)
		}
	})
	return ids
}

// --- joints ---

// AddJoint connects the rigid bodies of two objects with the given joint and
// returns a handle for later removal. Both objects must live in this layer
// and carry a registered rigid body.
func (l *Layer) AddJoint(a, b *Object, joint Joint) (JointHandle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	na, err := l.resolveLocked(a)
	if err != nil {
		return 0, err
	}
	nb, err := l.resolveLocked(b)
	if err != nil {
		return 0, err
	}
	if na.physics.body == nil || nb.physics.body == nil {
		return 0, ErrNoRigidBody
	}
	w := l.ensurePhysicsLocked()
	c := joint.constraint(na.physics.body, nb.physics.body)
	w.space.AddConstraint(c)
	h := w.nextJoint
	w.nextJoint++
	w.joints[h] = jointEntry{desc: joint, constraint: c, a: na.physics.body, b: nb.physics.body}
	return h, nil
}

// Joint returns the description behind a joint handle.
func (l *Layer) Joint(h JointHandle) (Joint, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.physics == nil {
		return nil, false
	}
	entry, ok := l.physics.joints[h]
	if !ok {
		return nil, false
	}
	return entry.desc, true
}

// RemoveJoint removes a joint from the physics world. Returns ErrNoJoint if
// the handle does not resolve.
func (l *Layer) RemoveJoint(h JointHandle) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.physics == nil {
		return ErrNoJoint
	}
	entry, ok := l.physics.joints[h]
	if !ok {
		return ErrNoJoint
	}
	l.physics.space.RemoveConstraint(entry.constraint)
	delete(l.physics.joints, h)
	return nil
}

// resolveLocked maps an Object handle to its live node in this layer.
func (l *Layer) resolveLocked(o *Object) (*node, error) {
	if o == nil || o.layer != l || o.node == nil || o.node.removed {
		return nil, ErrObjectRemoved
	}
	return o.node, nil
}
