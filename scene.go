package arbor

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the root of everything: one root layer with its fixed root view,
// any number of sublayers beneath it, and the ordered list of views the
// renderer walks each frame.
//
// The view order is rebuilt whenever a view opens or closes or a layer is
// removed, and swapped in atomically so the renderer never sees a half-built
// list.
type Scene struct {
	mu       sync.Mutex
	root     *Layer
	rootView *View
	views    atomic.Pointer[[]*View]
	debug    atomic.Bool
}

// NewScene creates a scene with an empty root layer and its root view. The
// root view starts with a unit extent; set the real surface size with
// SetExtent before rendering.
func NewScene() *Scene {
	s := &Scene{}
	s.root = newLayer(s, nil)
	s.rootView = newView(s.root, Vec2{X: 1, Y: 1}, true)
	s.root.views = append(s.root.views, s.rootView)
	s.refreshViews()
	return s
}

// RootLayer returns the scene's root layer. It always exists and cannot be
// removed.
func (s *Scene) RootLayer() *Layer {
	return s.root
}

// RootView returns the scene's root view. It always exists and cannot be
// closed.
func (s *Scene) RootView() *View {
	return s.rootView
}

// Views returns the current view order: sublayer views before their parent
// layer's views, the root view last. Later views composite on top. The
// returned slice is shared and must not be modified.
func (s *Scene) Views() []*View {
	if vs := s.views.Load(); vs != nil {
		return *vs
	}
	return nil
}

// refreshViews rebuilds the view order and swaps it in.
func (s *Scene) refreshViews() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var vs []*View
	s.root.appendViewsPostOrder(&vs)
	s.views.Store(&vs)
}

// Update advances per-frame scene state, currently the camera tweens of all
// views. Call it once per tick.
func (s *Scene) Update() {
	dt := float32(1) / float32(ebiten.TPS())
	for _, v := range s.Views() {
		v.update(dt)
	}
}

// PhysicsIteration steps the physics of every layer in the scene once, root
// first, then sublayers in creation order. Call it at your fixed physics
// rate; it is independent of Update.
func (s *Scene) PhysicsIteration() {
	if !s.DebugMode() {
		s.root.physicsIteration(nil)
		return
	}
	var stats debugStats
	start := time.Now()
	s.root.physicsIteration(&stats)
	stats.stepTime = time.Since(start)
	s.debugLog(stats)
}

// DebugMode reports whether debug logging is enabled.
func (s *Scene) DebugMode() bool {
	return s.debug.Load()
}

// SetDebugMode toggles debug logging of scene and physics state changes.
func (s *Scene) SetDebugMode(debug bool) {
	s.debug.Store(debug)
}
