package arbor

import "github.com/hajimehoshi/ebiten/v2"

// Appearance holds the visual payload of an object: whether it is drawn, a
// color tint, an optional texture, and the local size of the drawn quad.
//
// The core does not decide how an appearance is rendered; it only carries the
// data and exposes it in draw order. See Renderer for the built-in ebiten
// backend.
type Appearance struct {
	// Visible controls whether the object and its entire subtree are emitted
	// during the draw-order walk.
	Visible bool
	// Color tints the texture, or fills the quad when Texture is nil.
	Color Color
	// Texture is the image drawn for this object. May be nil.
	Texture *ebiten.Image
	// Size is the local quad size in world units.
	Size Vec2
}

// NewAppearance returns a visible appearance with a white tint, no texture,
// and a unit quad.
func NewAppearance() Appearance {
	return Appearance{
		Visible: true,
		Color:   ColorWhite,
		Size:    Vec2{1, 1},
	}
}

// WithColor returns a copy of a with the given tint.
func (a Appearance) WithColor(c Color) Appearance {
	a.Color = c
	return a
}

// WithTexture returns a copy of a with the given texture.
func (a Appearance) WithTexture(img *ebiten.Image) Appearance {
	a.Texture = img
	return a
}

// WithSize returns a copy of a with the given quad size.
func (a Appearance) WithSize(size Vec2) Appearance {
	a.Size = size
	return a
}
