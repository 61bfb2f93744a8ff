package pong

import (
	"fmt"
	"image/color"

	"github.com/Samspei01/LM-BOX-5/internal/game"
	"github.com/Samspei01/LM-BOX-5/internal/geo"
	"github.com/Samspei01/LM-BOX-5/internal/render"
)

var (
	colBackground = color.RGBA{R: 12, G: 16, B: 28, A: 255}
	colField      = color.RGBA{R: 70, G: 80, B: 110, A: 255}
	colNet        = color.RGBA{R: 50, G: 58, B: 82, A: 255}
	colBall       = color.RGBA{R: 255, G: 214, B: 64, A: 255}
	colPaddle     = color.RGBA{R: 235, G: 238, B: 245, A: 255}
	colText       = color.RGBA{R: 235, G: 238, B: 245, A: 255}
	colDim        = color.RGBA{R: 140, G: 148, B: 168, A: 255}
)

// Draw implements game.Engine.
func (e *Engine) Draw(s render.Surface, f game.Frame) {
	w, h := s.Size()
	s.FillRect(geo.NewRect(0, 0, w, h), colBackground)

	if f.HasCamera && f.Snapshot.Image != nil {
		s.Blit(f.Snapshot.Image, e.cfg.OverlayDst)
	}

	s.StrokeRect(e.field, colField, 2)
	e.drawNet(s)

	s.FillCircle(e.ball.pos, ballRadius, colBall)
	for _, p := range e.paddles {
		s.FillRect(p.rect, colPaddle)
	}

	e.drawScores(s)

	if !f.HasCamera && f.State != game.StateGameOver {
		s.Text("no camera: hand tracking disabled",
			geo.Point{X: e.field.CenterX(), Y: e.field.Y + 70}, 20, colDim, render.AnchorCenter)
	}

	switch f.State {
	case game.StateCountdown:
		n := int(f.Remaining) + 1
		s.Text(fmt.Sprintf("%d", n), e.field.Center(), 96, colText, render.AnchorCenter)
		s.Text("hold each hand in front of the camera",
			geo.Point{X: e.field.CenterX(), Y: e.field.Bottom() - 40}, 20, colDim, render.AnchorCenter)
	case game.StateGameOver:
		s.Text(e.Result(), e.field.Center(), 64, colText, render.AnchorCenter)
		s.Text("press R to play again",
			geo.Point{X: e.field.CenterX(), Y: e.field.CenterY() + 60}, 20, colDim, render.AnchorCenter)
	}
}

func (e *Engine) drawNet(s render.Surface) {
	const dash, gap = 12.0, 10.0
	x := e.field.CenterX() - 1
	for y := e.field.Y; y < e.field.Bottom(); y += dash + gap {
		s.FillRect(geo.NewRect(x, y, 2, dash), colNet)
	}
}

func (e *Engine) drawScores(s render.Surface) {
	y := e.field.Y + 30
	s.Text(fmt.Sprintf("%d", e.scores[0].Points()),
		geo.Point{X: e.field.CenterX() - 60, Y: y}, 40, colText, render.AnchorCenter)
	s.Text(fmt.Sprintf("%d", e.scores[1].Points()),
		geo.Point{X: e.field.CenterX() + 60, Y: y}, 40, colText, render.AnchorCenter)
}
