// Package arbor is a scene graph with integrated 2D physics for [Ebitengine].
//
// Arbor manages the object tree of a game world: hierarchical transforms,
// layered draw order, cameras and views, and rigid body physics per layer,
// backed by the Chipmunk physics engine.
//
// # Scene structure
//
// A [Scene] owns a tree of layers. Each [Layer] is an independent arena with
// its own object tree and its own physics world. Layers nest: sublayers are
// drawn through their own views and step their own physics.
//
//	scene := arbor.NewScene()
//	world := scene.RootLayer().NewLayer()
//
// # Objects
//
// An [Object] is a handle to one entry in a layer's tree. Configure it, then
// initialize it into a layer:
//
//	obj := arbor.NewObject()
//	obj.Transform.Position = arbor.Vec2{X: 0, Y: -5}
//	obj.SetCollider(arbor.NewCollider(arbor.CircleShape(0.5)))
//	obj.SetRigidBody(arbor.NewRigidBody(arbor.BodyDynamic))
//	if err := obj.Init(world); err != nil { ... }
//
// The handle and the tree hold separate state: [Object.Sync] pushes handle
// edits into the tree and the physics world, [Object.Update] pulls simulation
// results back out. Children inherit their parent's transform; initialize a
// child with [Object.InitWithParent].
//
// # Physics
//
// Each layer lazily creates a physics world on first use. Objects carrying a
// [RigidBody] are simulated; objects carrying only a [Collider] are static
// obstacles. Call [Scene.PhysicsIteration] at a fixed rate:
//
//	scene.PhysicsIteration() // steps every layer once
//	obj.Update()             // observe the new transform
//
// Layers also answer spatial queries ([Layer.CastRay],
// [Layer.QueryNearestColliderAt], [Layer.IntersectionsWithShape]) and
// connect bodies with joints ([Layer.AddJoint]).
//
// # Views and rendering
//
// A [View] pairs a layer with a [Camera]. The scene keeps all open views in
// a fixed order for the renderer; [Renderer.Draw] composites them onto an
// ebiten image. Cameras animate smoothly with [View.ScrollTo] and
// [View.ZoomTo].
//
// [Ebitengine]: https://ebitengine.org
package arbor
