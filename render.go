package arbor

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Renderer draws a scene onto an ebiten image. It walks the scene's views in
// order, later views compositing on top, and within each view draws the
// layer's objects in draw order through the view's camera. The root view
// renders straight to the screen; other views render into cached offscreen
// targets at their own extent and composite scaled.
//
// The renderer owns no scene state; any number of scenes can share one.
type Renderer struct {
	// whitePixel fills untextured appearances. Created on first use so a
	// renderer can be constructed before the ebiten context exists.
	whitePixel *ebiten.Image

	// targets caches one offscreen image per view extent.
	targets map[[2]int]*ebiten.Image

	stats *statsOverlay
}

// NewRenderer returns a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Draw renders the scene onto screen. The root view's extent is synced to the
// screen size first, so its camera scaling reacts to window resizes.
func (r *Renderer) Draw(scene *Scene, screen *ebiten.Image) {
	bounds := screen.Bounds()
	screenExtent := Vec2{X: float64(bounds.Dx()), Y: float64(bounds.Dy())}
	scene.RootView().SetExtent(screenExtent)

	views, objects := 0, 0
	for _, view := range scene.Views() {
		if !view.Draw() {
			continue
		}
		views++
		objects += r.drawView(view, screen, screenExtent)
	}
	if r.stats != nil {
		r.stats.draw(screen, views, objects)
	}
}

func (r *Renderer) drawView(view *View, screen *ebiten.Image, screenExtent Vec2) int {
	cam := view.Camera()
	extent := view.Extent()
	fov := cam.FieldOfView(extent)
	if fov.X == 0 || fov.Y == 0 || extent.X < 1 || extent.Y < 1 {
		return 0
	}

	target := screen
	if !view.IsRoot() {
		target = r.acquireTarget(int(extent.X), int(extent.Y))
		target.Clear()
	}

	// World to target pixels: undo the camera isometry, scale world units to
	// pixels, then center.
	var viewM ebiten.GeoM
	viewM.Translate(-cam.Transform.Position.X, -cam.Transform.Position.Y)
	viewM.Rotate(-cam.Transform.Rotation)
	viewM.Scale(extent.X/(2*fov.X), extent.Y/(2*fov.Y))
	viewM.Translate(extent.X/2, extent.Y/2)

	items := view.Layer().DrawOrder()
	for _, item := range items {
		r.drawItem(target, item, viewM)
	}

	if target != screen {
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(screenExtent.X/extent.X, screenExtent.Y/extent.Y)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(target, &op)
	}
	return len(items)
}

// acquireTarget returns the cached offscreen image for the given size.
func (r *Renderer) acquireTarget(w, h int) *ebiten.Image {
	key := [2]int{w, h}
	if img, ok := r.targets[key]; ok {
		return img
	}
	if r.targets == nil {
		r.targets = make(map[[2]int]*ebiten.Image)
	}
	img := ebiten.NewImage(w, h)
	r.targets[key] = img
	return img
}

func (r *Renderer) drawItem(target *ebiten.Image, item DrawItem, viewM ebiten.GeoM) {
	img := item.Appearance.Texture
	if img == nil {
		if r.whitePixel == nil {
			r.whitePixel = ebiten.NewImage(1, 1)
			r.whitePixel.Fill(color.White)
		}
		img = r.whitePixel
	}
	ib := img.Bounds()
	w, h := float64(ib.Dx()), float64(ib.Dy())
	if w == 0 || h == 0 {
		return
	}

	size := item.Appearance.Size
	t := item.Transform

	var op ebiten.DrawImageOptions
	// Center the quad, stretch texture pixels to the appearance size, then
	// apply the object's world transform.
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(size.X/w, size.Y/h)
	op.GeoM.Scale(t.Scale.X, t.Scale.Y)
	op.GeoM.Rotate(t.Rotation)
	op.GeoM.Translate(t.Position.X, t.Position.Y)
	op.GeoM.Concat(viewM)

	c := item.Appearance.Color
	a := clamp01(c.A)
	op.ColorScale.Scale(
		float32(clamp01(c.R)*a),
		float32(clamp01(c.G)*a),
		float32(clamp01(c.B)*a),
		float32(a),
	)
	op.Filter = ebiten.FilterLinear

	target.DrawImage(img, &op)
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
