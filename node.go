package arbor

// node is an object's slot in a layer's tree: the stored object state plus
// the parent/child links. The parent's children slice is the owning
// reference; the parent pointer exists for traversal only.
//
// All node access happens under the owning layer's lock.
type node struct {
	id         uint64
	transform  Transform
	appearance Appearance
	physics    objectPhysics

	parent   *node
	children []*node

	// rigidBodyAncestor is the nearest ancestor (exclusive) that carries a
	// rigid body, or nil. A node with a rigid body and a nil ancestor is a
	// rigid-body root: the physics step writes simulation results back
	// through it.
	rigidBodyAncestor *node

	// removed marks the node dead so stale Object handles fail resolution.
	removed bool
}

// worldTransform combines the transforms of all ancestors down to n.
func (n *node) worldTransform() Transform {
	if n.parent == nil {
		return n.transform
	}
	return n.parent.worldTransform().Combine(n.transform)
}

// childIndex returns the index of c in n's children, or -1.
func (n *node) childIndex(c *node) int {
	for i, child := range n.children {
		if child == c {
			return i
		}
	}
	return -1
}

// removeChild severs the link to c. Returns errCorruptTree if c is not a
// child of n; given the tree invariants that should be unreachable, but it
// is handled rather than assumed.
func (n *node) removeChild(c *node) error {
	i := n.childIndex(c)
	if i < 0 {
		return errCorruptTree
	}
	copy(n.children[i:], n.children[i+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	return nil
}

// removeChildren tears down n's whole subtree depth-first: every descendant
// is deregistered from the physics world and evicted from the layer's object
// and rigid-body-root maps before its links are dropped. n itself stays in
// place; the caller removes it from its own parent.
func (n *node) removeChildren(l *Layer) {
	for _, child := range n.children {
		child.removeChildren(l)
		child.physics.remove(l.physics)
		delete(l.objects, child.id)
		delete(l.rigidBodyRoots, child.id)
		child.removed = true
		child.parent = nil
	}
	n.children = nil
}

// DrawItem is one entry of a layer's draw order: the object's world-combined
// transform and its appearance.
type DrawItem struct {
	Transform  Transform
	Appearance Appearance
}

// drawWalk appends n's children in parent-then-child order, pre-multiplying
// transforms top-down. Invisible objects hide their entire subtree.
func (n *node) drawWalk(world Transform, out *[]DrawItem) {
	for _, child := range n.children {
		if !child.appearance.Visible {
			continue
		}
		combined := world.Combine(child.transform)
		*out = append(*out, DrawItem{Transform: combined, Appearance: child.appearance})
		child.drawWalk(combined, out)
	}
}
