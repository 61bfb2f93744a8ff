package runner

import (
	"fmt"
	"image/color"

	"github.com/Samspei01/LM-BOX-5/internal/game"
	"github.com/Samspei01/LM-BOX-5/internal/geo"
	"github.com/Samspei01/LM-BOX-5/internal/render"
)

var (
	colBackground = color.RGBA{R: 20, G: 24, B: 38, A: 255}
	colGround     = color.RGBA{R: 70, G: 80, B: 110, A: 255}
	colRunner     = color.RGBA{R: 235, G: 238, B: 245, A: 255}
	colCactus     = color.RGBA{R: 90, G: 180, B: 90, A: 255}
	colPtero      = color.RGBA{R: 200, G: 140, B: 220, A: 255}
	colCloud      = color.RGBA{R: 60, G: 68, B: 92, A: 255}
	colText       = color.RGBA{R: 235, G: 238, B: 245, A: 255}
	colDim        = color.RGBA{R: 140, G: 148, B: 168, A: 255}
)

// Draw implements game.Engine.
func (e *Engine) Draw(s render.Surface, f game.Frame) {
	w, h := s.Size()
	s.FillRect(geo.NewRect(0, 0, w, h), colBackground)

	for _, c := range e.clouds {
		s.FillRect(geo.NewRect(c.pos.X, c.pos.Y, 70, 24), colCloud)
	}

	s.FillRect(geo.NewRect(e.field.X, e.ground, e.field.W, 3), colGround)
	s.FillRect(e.Hitbox(), colRunner)

	for _, o := range e.obstacles {
		c := colCactus
		if o.Kind == Ptero {
			c = colPtero
		}
		s.FillRect(o.Rect, c)
	}

	if f.HasCamera && f.Snapshot.Image != nil {
		s.Blit(f.Snapshot.Image, e.cfg.OverlayDst)
	}

	s.Text(fmt.Sprintf("%05d", e.Score()),
		geo.Point{X: e.field.Right() - 110, Y: e.field.Y + 14}, 28, colText, render.AnchorTopLeft)

	switch f.State {
	case game.StateCountdown:
		n := int(f.Remaining) + 1
		s.Text(fmt.Sprintf("%d", n), e.field.Center(), 96, colText, render.AnchorCenter)
		hint := "raise your head to jump, lower it to duck"
		if !f.HasCamera {
			hint = "no camera: use the up and down keys"
		}
		s.Text(hint, geo.Point{X: e.field.CenterX(), Y: e.field.Bottom() - 30}, 20, colDim, render.AnchorCenter)
	case game.StateGameOver:
		s.Text(e.Result(), e.field.Center(), 64, colText, render.AnchorCenter)
		s.Text("press R to play again",
			geo.Point{X: e.field.CenterX(), Y: e.field.CenterY() + 60}, 20, colDim, render.AnchorCenter)
	}
}
