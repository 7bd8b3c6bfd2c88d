package arbor

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// statsOverlay draws frame rate and scene counters in the top left corner.
// Refreshed every half second to stay readable.
type statsOverlay struct {
	img     *ebiten.Image
	elapsed float64
}

// SetShowStats toggles the renderer's stats overlay: FPS, TPS, and the
// number of views and objects drawn last frame.
func (r *Renderer) SetShowStats(show bool) {
	if !show {
		r.stats = nil
		return
	}
	if r.stats == nil {
		r.stats = &statsOverlay{}
	}
}

func (s *statsOverlay) draw(screen *ebiten.Image, views, objects int) {
	if s.img == nil {
		s.img = ebiten.NewImage(120, 48)
		s.elapsed = 1 // draw on the first frame
	}
	s.elapsed += 1.0 / float64(ebiten.TPS())
	if s.elapsed >= 0.5 {
		s.elapsed = 0
		s.img.Clear()
		s.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(s.img, fmt.Sprintf(
			"FPS: %.1f\nTPS: %.1f\nviews: %d objects: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), views, objects))
	}
	screen.DrawImage(s.img, nil)
}
