package balloon

import (
	"fmt"
	"image/color"

	"github.com/Samspei01/LM-BOX-5/internal/game"
	"github.com/Samspei01/LM-BOX-5/internal/geo"
	"github.com/Samspei01/LM-BOX-5/internal/render"
)

var (
	colBackground = color.RGBA{R: 16, G: 20, B: 34, A: 255}
	colZone       = color.RGBA{R: 70, G: 80, B: 110, A: 255}
	colText       = color.RGBA{R: 235, G: 238, B: 245, A: 255}
	colDim        = color.RGBA{R: 140, G: 148, B: 168, A: 255}

	kindColors = map[Kind]color.RGBA{
		KindPlain:  {R: 225, G: 70, B: 70, A: 255},
		KindCombo1: {R: 250, G: 170, B: 50, A: 255},
		KindCombo2: {R: 120, G: 200, B: 90, A: 255},
		KindCombo3: {R: 150, G: 120, B: 250, A: 255},
	}
)

// Draw implements game.Engine.
func (e *Engine) Draw(s render.Surface, f game.Frame) {
	w, h := s.Size()
	s.FillRect(geo.NewRect(0, 0, w, h), colBackground)

	if f.HasCamera && f.Snapshot.Image != nil {
		s.Blit(f.Snapshot.Image, e.zone)
	}
	s.StrokeRect(e.zone, colZone, 2)

	for _, b := range e.waves[e.wave] {
		if !b.active || b.resolved {
			continue
		}
		s.FillCircle(b.pos, balloonRadius, kindColors[b.Kind])
	}

	s.Text(fmt.Sprintf("Score %d", e.score.Points()),
		geo.Point{X: e.zone.X + 10, Y: 14}, 24, colText, render.AnchorTopLeft)
	s.Text(fmt.Sprintf("Wave %d/%d", e.Wave(), NumWaves),
		geo.Point{X: e.zone.Right() - 130, Y: 14}, 24, colText, render.AnchorTopLeft)

	if !f.HasCamera && f.State != game.StateGameOver {
		s.Text("no camera: fingertip tracking disabled",
			geo.Point{X: e.zone.CenterX(), Y: e.zone.Y + 24}, 20, colDim, render.AnchorCenter)
	}

	switch f.State {
	case game.StatePlaying:
		if e.breakLeft > 0 {
			s.Text(fmt.Sprintf("Wave %d starts in %d", e.Wave(), int(e.breakLeft)+1),
				e.zone.Center(), 64, colText, render.AnchorCenter)
		}
	case game.StateCountdown:
		n := int(f.Remaining) + 1
		s.Text(fmt.Sprintf("%d", n), e.zone.Center(), 96, colText, render.AnchorCenter)
		s.Text("pop the balloons with your fingertips",
			geo.Point{X: e.zone.CenterX(), Y: e.zone.Bottom() - 40}, 20, colDim, render.AnchorCenter)
	case game.StateGameOver:
		s.Text(e.Result(), e.zone.Center(), 64, colText, render.AnchorCenter)
		s.Text("press R to play again",
			geo.Point{X: e.zone.CenterX(), Y: e.zone.CenterY() + 60}, 20, colDim, render.AnchorCenter)
	}
}
