package arbor

import "errors"

// Sentinel errors returned by object, layer, and physics operations.
// Fallible operations return these (possibly wrapped with fmt.Errorf and %w
// for extra detail) instead of panicking; callers match with errors.Is.
var (
	// ErrObjectRemoved is returned when operating on an Object handle whose
	// backing node was already removed from its layer.
	ErrObjectRemoved = errors.New("arbor: object is no longer initialized in a layer")

	// ErrNoParent is returned by operations that need a parent context, such
	// as initializing under a removed parent or reordering a layer root.
	ErrNoParent = errors.New("arbor: object has no parent")

	// ErrMove is returned when a reorder operation is out of bounds or the
	// object is already at the requested extreme. The sibling list is left
	// unchanged.
	ErrMove = errors.New("arbor: invalid move")

	// ErrNoRigidBody is returned when a joint operation involves an object
	// without a registered rigid body.
	ErrNoRigidBody = errors.New("arbor: object has no rigid body")

	// ErrNoJoint is returned when a joint handle no longer resolves.
	ErrNoJoint = errors.New("arbor: joint does not exist")

	// ErrRootLayer is returned when attempting to remove the scene's root layer.
	ErrRootLayer = errors.New("arbor: operation not allowed on the root layer")

	// ErrRootView is returned when attempting to close the scene's root view.
	ErrRootView = errors.New("arbor: the root view cannot be closed")
)

// errCorruptTree indicates a broken structural invariant (a child link missing
// from its parent). Reaching it means a bug in arbor itself, but it is
// reported instead of assumed unreachable.
var errCorruptTree = errors.New("arbor: child link missing from parent node")
