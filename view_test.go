package arbor

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func newTestView(t *testing.T) *View {
	t.Helper()
	l := NewScene().RootLayer().NewLayer()
	v := l.NewView(Vec2{800, 600})
	if v == nil {
		t.Fatal("NewView returned nil")
	}
	return v
}

func TestNewViewDefaults(t *testing.T) {
	v := newTestView(t)
	if v.Extent() != (Vec2{800, 600}) {
		t.Errorf("Extent = %v, want (800, 600)", v.Extent())
	}
	if !v.Draw() {
		t.Error("Draw() = false, want true")
	}
	if v.Closed() {
		t.Error("Closed() = true on a fresh view")
	}
	if v.IsRoot() {
		t.Error("IsRoot() = true on a layer view")
	}
	if v.Camera().Zoom != 1 {
		t.Errorf("Camera().Zoom = %v, want 1", v.Camera().Zoom)
	}
}

func TestSetCameraAndDraw(t *testing.T) {
	v := newTestView(t)
	cam := NewCamera()
	cam.Transform.Position = Vec2{3, 4}
	cam.Zoom = 2
	v.SetCamera(cam)
	if got := v.Camera(); got != cam {
		t.Errorf("Camera() = %+v, want %+v", got, cam)
	}
	v.SetDraw(false)
	if v.Draw() {
		t.Error("Draw() = true after SetDraw(false)")
	}
}

// --- Tweens ---

func TestScrollToInstant(t *testing.T) {
	v := newTestView(t)
	v.ScrollTo(Vec2{10, 20}, 0, ease.Linear)
	if got := v.Camera().Transform.Position; got != (Vec2{10, 20}) {
		t.Errorf("position = %v, want (10, 20)", got)
	}
}

func TestScrollToAnimates(t *testing.T) {
	v := newTestView(t)
	v.ScrollTo(Vec2{10, 0}, 1, ease.Linear)

	v.update(0.5)
	got := v.Camera().Transform.Position
	if math.Abs(got.X-5) > 0.01 {
		t.Errorf("position halfway = %v, want x near 5", got)
	}
	v.update(0.5)
	got = v.Camera().Transform.Position
	if math.Abs(got.X-10) > 0.01 {
		t.Errorf("position at end = %v, want x near 10", got)
	}
	// Finished tweens detach; further updates leave the camera alone.
	v.update(1)
	if v.Camera().Transform.Position != got {
		t.Error("camera moved after tween finished")
	}
}

func TestZoomToAnimates(t *testing.T) {
	v := newTestView(t)
	v.ZoomTo(3, 1, ease.Linear)
	v.update(1)
	if got := v.Camera().Zoom; math.Abs(got-3) > 0.01 {
		t.Errorf("Zoom = %v, want 3", got)
	}
}

func TestSetCameraCancelsTweens(t *testing.T) {
	v := newTestView(t)
	v.ScrollTo(Vec2{100, 0}, 1, ease.Linear)
	v.SetCamera(NewCamera())
	v.update(1)
	if got := v.Camera().Transform.Position; !got.IsZero() {
		t.Errorf("position = %v, want (0, 0) after SetCamera cancelled the tween", got)
	}
}

// --- SideToWorld ---

func TestSideToWorldCenter(t *testing.T) {
	v := newTestView(t)
	cam := NewCamera()
	cam.Transform.Position = Vec2{7, -3}
	v.SetCamera(cam)
	if got := v.SideToWorld(Vec2{}); !vecNear(got, Vec2{7, -3}) {
		t.Errorf("SideToWorld(center) = %v, want camera position", got)
	}
}

func TestSideToWorldCorner(t *testing.T) {
	v := newTestView(t)
	// Stretch scaling: the view spans -1..1 per axis around the camera.
	got := v.SideToWorld(Vec2{1, 1})
	if !vecNear(got, Vec2{1, 1}) {
		t.Errorf("SideToWorld(1, 1) = %v, want (1, 1)", got)
	}
}

func TestSideToWorldZoom(t *testing.T) {
	v := newTestView(t)
	cam := NewCamera()
	cam.Zoom = 2
	v.SetCamera(cam)
	got := v.SideToWorld(Vec2{1, 0})
	if !vecNear(got, Vec2{0.5, 0}) {
		t.Errorf("SideToWorld at zoom 2 = %v, want (0.5, 0)", got)
	}
}

func TestSideToWorldKeepVertical(t *testing.T) {
	v := newTestView(t)
	cam := NewCamera()
	cam.Scaling = ScalingKeepVertical
	v.SetCamera(cam)
	// 800x600 extent: horizontal sees 800/600 units, vertical exactly 1.
	got := v.SideToWorld(Vec2{1, 1})
	if !vecNear(got, Vec2{800.0 / 600.0, 1}) {
		t.Errorf("SideToWorld = %v, want (4/3, 1)", got)
	}
}
