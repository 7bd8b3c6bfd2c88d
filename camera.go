package arbor

// CameraScaling determines how far a camera can see when the view's aspect
// ratio changes. Each mode maps a pixel extent to the maximum field of view
// in world units per axis, before the camera zoom is applied.
type CameraScaling int

const (
	// ScalingStretch keeps the view fixed at -1 to 1 in both axes regardless
	// of the extent, stretching the image on non-square views.
	ScalingStretch CameraScaling = iota
	// ScalingLinear preserves the total visible surface area regardless of
	// shape: the narrower an axis, the farther you see along it.
	ScalingLinear
	// ScalingCircle fits the visible area within a circle around the camera
	// origin, preventing extreme aspect ratios from seeing too far.
	ScalingCircle
	// ScalingBox locks the larger side to exactly -1 to 1 and shrinks the
	// view along the smaller side.
	ScalingBox
	// ScalingExpand grows the view with the extent, one pixel per world
	// unit. Good for UI and pixel perfect rendering.
	ScalingExpand
	// ScalingKeepHorizontal locks the horizontal view at -1 to 1 and lets
	// the vertical axis expand or shrink. Useful for platformers.
	ScalingKeepHorizontal
	// ScalingKeepVertical locks the vertical view at -1 to 1 and lets the
	// horizontal axis expand or shrink. Useful for top-down games.
	ScalingKeepVertical
)

// Scale maps a pixel extent to the field of view per axis for the mode.
func (m CameraScaling) Scale(extent Vec2) Vec2 {
	switch m {
	case ScalingLinear:
		sum := extent.X + extent.Y
		return Vec2{
			X: 0.5 / (extent.Y / sum),
			Y: 0.5 / (extent.X / sum),
		}
	case ScalingCircle:
		return extent.Scale(1 / extent.Length())
	case ScalingBox:
		if extent.X > extent.Y {
			return Vec2{X: 1, Y: extent.Y / extent.X}
		}
		return Vec2{X: extent.X / extent.Y, Y: 1}
	case ScalingExpand:
		return extent
	case ScalingKeepHorizontal:
		return Vec2{X: 1, Y: extent.Y / extent.X}
	case ScalingKeepVertical:
		return Vec2{X: extent.X / extent.Y, Y: 1}
	default: // ScalingStretch
		return Vec2{1, 1}
	}
}

// Camera describes a viewpoint into a layer: a transform positioning and
// rotating the viewpoint in world space, a zoom factor, and the scaling mode
// used to map the view extent to a field of view.
//
// Cameras are small value types; a View swaps its camera atomically as one
// unit, so a camera read never observes a half-written update.
type Camera struct {
	Transform Transform
	// Zoom scales the field of view; 1 is no zoom, larger values zoom in.
	Zoom float64
	// Scaling selects how the field of view reacts to the view extent.
	// Default is ScalingStretch.
	Scaling CameraScaling
}

// NewCamera returns a camera at the origin with zoom 1 and stretch scaling.
func NewCamera() Camera {
	return Camera{Transform: NewTransform(), Zoom: 1}
}

// FieldOfView returns the world-space half-extents visible through the
// camera for the given pixel extent.
func (c Camera) FieldOfView(extent Vec2) Vec2 {
	fov := c.Scaling.Scale(extent)
	if c.Zoom != 0 {
		fov = fov.Scale(1 / c.Zoom)
	}
	return fov
}
