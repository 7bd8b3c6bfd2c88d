package arbor

import (
	"sync"
	"sync/atomic"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// View is a window into a layer: a camera, a pixel extent, and a draw
// toggle. Views are handed to the renderer in the scene's view order and may
// be read from the render side while the simulation mutates layers, so all
// view state swaps atomically.
//
// A closed view stops being drawn and is pruned from the scene's view order;
// Close is how a view's lifetime ends, there is no implicit teardown.
type View struct {
	layer *Layer
	root  bool

	camera atomic.Pointer[Camera]
	extent atomic.Pointer[Vec2]
	draw   atomic.Bool
	closed atomic.Bool

	// tweens animate the camera between frames, advanced by Scene.Update.
	tweenMu          sync.Mutex
	scrollX, scrollY *gween.Tween
	zoom             *gween.Tween
}

func newView(l *Layer, extent Vec2, root bool) *View {
	v := &View{layer: l, root: root}
	cam := NewCamera()
	v.camera.Store(&cam)
	v.extent.Store(&extent)
	v.draw.Store(true)
	return v
}

// Layer returns the layer this view looks into.
func (v *View) Layer() *Layer {
	return v.layer
}

// IsRoot reports whether this is the scene's root view.
func (v *View) IsRoot() bool {
	return v.root
}

// Camera returns the view's current camera.
func (v *View) Camera() Camera {
	return *v.camera.Load()
}

// SetCamera replaces the view's camera in one atomic swap and cancels any
// running camera tweens.
func (v *View) SetCamera(c Camera) {
	v.tweenMu.Lock()
	v.scrollX, v.scrollY, v.zoom = nil, nil, nil
	v.camera.Store(&c)
	v.tweenMu.Unlock()
}

// Extent returns the view's pixel extent.
func (v *View) Extent() Vec2 {
	return *v.extent.Load()
}

// SetExtent sets the view's pixel extent. Call it when the surface the view
// renders to is resized.
func (v *View) SetExtent(extent Vec2) {
	v.extent.Store(&extent)
}

// Draw reports whether the renderer should draw this view.
func (v *View) Draw() bool {
	return v.draw.Load()
}

// SetDraw toggles drawing without closing the view.
func (v *View) SetDraw(draw bool) {
	v.draw.Store(draw)
}

// Closed reports whether the view was closed, either directly or by its
// layer's removal.
func (v *View) Closed() bool {
	return v.closed.Load()
}

// Close takes the view out of the scene's view order. Closing twice is a
// no-op. The root view cannot be closed; ErrRootView is returned instead.
func (v *View) Close() error {
	if v.root {
		return ErrRootView
	}
	if v.closed.Swap(true) {
		return nil
	}
	v.layer.scene.refreshViews()
	return nil
}

// ScrollTo animates the camera position to target over the given duration in
// seconds. A zero duration jumps immediately.
func (v *View) ScrollTo(target Vec2, duration float32, easing ease.TweenFunc) {
	v.tweenMu.Lock()
	defer v.tweenMu.Unlock()
	cam := *v.camera.Load()
	if duration <= 0 {
		cam.Transform.Position = target
		v.camera.Store(&cam)
		v.scrollX, v.scrollY = nil, nil
		return
	}
	v.scrollX = gween.New(float32(cam.Transform.Position.X), float32(target.X), duration, easing)
	v.scrollY = gween.New(float32(cam.Transform.Position.Y), float32(target.Y), duration, easing)
}

// ZoomTo animates the camera zoom to target over the given duration in
// seconds. A zero duration jumps immediately.
func (v *View) ZoomTo(target float64, duration float32, easing ease.TweenFunc) {
	v.tweenMu.Lock()
	defer v.tweenMu.Unlock()
	cam := *v.camera.Load()
	if duration <= 0 {
		cam.Zoom = target
		v.camera.Store(&cam)
		v.zoom = nil
		return
	}
	v.zoom = gween.New(float32(cam.Zoom), float32(target), duration, easing)
}

// update advances the camera tweens by dt seconds.
func (v *View) update(dt float32) {
	v.tweenMu.Lock()
	defer v.tweenMu.Unlock()
	if v.scrollX == nil && v.scrollY == nil && v.zoom == nil {
		return
	}
	cam := *v.camera.Load()
	if v.scrollX != nil {
		x, done := v.scrollX.Update(dt)
		cam.Transform.Position.X = float64(x)
		if done {
			v.scrollX = nil
		}
	}
	if v.scrollY != nil {
		y, done := v.scrollY.Update(dt)
		cam.Transform.Position.Y = float64(y)
		if done {
			v.scrollY = nil
		}
	}
	if v.zoom != nil {
		z, done := v.zoom.Update(dt)
		cam.Zoom = float64(z)
		if done {
			v.zoom = nil
		}
	}
	v.camera.Store(&cam)
}

// SideToWorld maps a point on the view edge to world space. side is in
// normalized view coordinates, -1 to 1 per axis with (-1, -1) the top left
// corner, and the mapping accounts for the camera's position, rotation, zoom,
// and scaling mode at the current extent.
func (v *View) SideToWorld(side Vec2) Vec2 {
	cam := v.Camera()
	fov := cam.FieldOfView(v.Extent())
	return cam.Transform.Position.Add(side.Mul(fov).Rotate(cam.Transform.Rotation))
}
