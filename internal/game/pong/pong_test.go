package pong

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/Samspei01/LM-BOX-5/internal/detector"
	"github.com/Samspei01/LM-BOX-5/internal/game"
	"github.com/Samspei01/LM-BOX-5/internal/geo"
	"github.com/Samspei01/LM-BOX-5/internal/input"
	"github.com/Samspei01/LM-BOX-5/internal/render"
)

const testDT = 1.0 / 30

func testConfig() Config {
	return Config{
		Field:      geo.NewRect(0, 0, 800, 600),
		CameraView: geo.NewRect(0, 0, 640, 480),
		Rand:       rand.New(rand.NewSource(1)),
	}
}

func tick(det detector.Detection) game.Tick {
	return game.Tick{DT: testDT, Detection: det}
}

func TestNewCentersBallAndPaddles(t *testing.T) {
	e := New(testConfig())

	pos, vx, vy := e.Ball()
	if pos != (geo.Point{X: 400, Y: 300}) {
		t.Fatalf("ball at %+v, want field center", pos)
	}
	if math.Abs(vx) != DefaultBaseSpeed || math.Abs(vy) != DefaultBaseSpeed {
		t.Fatalf("ball velocity (%v, %v), want ±%v on both axes", vx, vy, DefaultBaseSpeed)
	}
	for i := 0; i < 2; i++ {
		p := e.Paddle(i)
		if p.CenterY() != 300 {
			t.Errorf("paddle %d center y = %v, want 300", i, p.CenterY())
		}
	}
}

func TestHandMovesPaddle(t *testing.T) {
	e := New(testConfig())

	// A left hand near the top of the camera view moves the left paddle
	// toward the top of the field.
	det := detector.HandsAt(detector.OpenHandAt(detector.SideLeft, geo.Point{X: 320, Y: 48}))
	e.Step(tick(det))

	p := e.Paddle(0)
	if p.CenterY() >= 300 {
		t.Fatalf("left paddle center y = %v, want above field center", p.CenterY())
	}
	// 48/480 maps to 60/600, clamped to half a paddle from the edge.
	if p.Y < 0 {
		t.Fatalf("paddle escaped the field: y = %v", p.Y)
	}

	// The right paddle never moved.
	if e.Paddle(1).CenterY() != 300 {
		t.Fatalf("right paddle moved without a right hand")
	}
}

func TestNoHandFreezesPaddle(t *testing.T) {
	e := New(testConfig())

	det := detector.HandsAt(detector.OpenHandAt(detector.SideLeft, geo.Point{X: 320, Y: 48}))
	e.Step(tick(det))
	was := e.Paddle(0)

	e.Step(tick(detector.Detection{}))
	if e.Paddle(0) != was {
		t.Fatalf("paddle moved on an empty detection: %+v != %+v", e.Paddle(0), was)
	}
}

func TestWallBounceFlipsVerticalSign(t *testing.T) {
	e := New(testConfig())

	// Force the ball just above the top wall, moving up.
	e.ball.pos = geo.Point{X: 400, Y: ballRadius + 1}
	e.ball.vx = 0
	e.ball.vy = -200

	cues := &render.CueRecorder{}
	e.cues = cues
	e.Step(tick(detector.Detection{}))

	_, _, vy := e.Ball()
	if vy != 200 {
		t.Fatalf("vy = %v after top bounce, want 200 (sign flipped, magnitude kept)", vy)
	}
	if cues.Count(CueHit) != 1 {
		t.Fatalf("hit cue played %d times, want 1", cues.Count(CueHit))
	}
}

func TestPaddleHitReflectsAndRepositions(t *testing.T) {
	e := New(testConfig())

	// Aim the ball straight at the left paddle face.
	p := e.Paddle(0)
	e.ball.pos = geo.Point{X: p.Right() + ballRadius + 2, Y: p.CenterY()}
	e.ball.vx = -300
	e.ball.vy = 0

	e.Step(tick(detector.Detection{}))

	pos, vx, _ := e.Ball()
	if vx != 300 {
		t.Fatalf("vx = %v after paddle hit, want 300", vx)
	}
	if pos.X != p.Right()+ballRadius {
		t.Fatalf("ball at x=%v, want flush against paddle at %v", pos.X, p.Right()+ballRadius)
	}
}

func TestSpeedRampPreservesSigns(t *testing.T) {
	e := New(testConfig())
	e.ball.vx = -100
	e.ball.vy = 100

	// Step past one full ramp interval without touching any wall.
	e.ball.pos = e.field.Center()
	for elapsed := 0.0; elapsed < DefaultSpeedInterval; elapsed += testDT {
		e.ball.pos = e.field.Center() // pin the ball so only the ramp acts
		e.Step(tick(detector.Detection{}))
	}

	_, vx, vy := e.Ball()
	if vx != -100-DefaultSpeedIncrement {
		t.Errorf("vx = %v, want %v", vx, -100-DefaultSpeedIncrement)
	}
	if vy != 100+DefaultSpeedIncrement {
		t.Errorf("vy = %v, want %v", vy, 100+DefaultSpeedIncrement)
	}
}

func TestLeftExitScoresForPlayerTwo(t *testing.T) {
	cfg := testConfig()
	cfg.MaxScore = 3
	e := New(cfg)

	// Park the left paddle out of the way and send the ball out left.
	e.paddles[0].rect.Y = -200
	e.ball.pos = geo.Point{X: ballRadius + 1, Y: 300}
	e.ball.vx = -400
	e.ball.vy = 0

	e.Step(tick(detector.Detection{}))

	p1, p2 := e.Scores()
	if p1 != 0 || p2 != 1 {
		t.Fatalf("scores (%d, %d), want (0, 1)", p1, p2)
	}

	// Ball reset to center with a fresh diagonal at base speed.
	pos, vx, vy := e.Ball()
	if pos != (geo.Point{X: 400, Y: 300}) {
		t.Fatalf("ball at %+v after goal, want center", pos)
	}
	if math.Abs(vx) != DefaultBaseSpeed || math.Abs(vy) != DefaultBaseSpeed {
		t.Fatalf("reset velocity (%v, %v), want ±%v", vx, vy, DefaultBaseSpeed)
	}
}

func TestGoalRestartsSpeedRamp(t *testing.T) {
	e := New(testConfig())
	e.ramp = DefaultSpeedInterval - 0.01

	e.paddles[0].rect.Y = -200
	e.ball.pos = geo.Point{X: ballRadius + 1, Y: 300}
	e.ball.vx = -400
	e.ball.vy = 0
	e.Step(tick(detector.Detection{}))

	if e.ramp != 0 {
		t.Fatalf("ramp timer = %v after goal, want 0", e.ramp)
	}
}

// A full session round: with MaxScore 1, a single left exit ends the game
// with player 2 as the winner and the result on screen.
func TestSingleGoalEndsRound(t *testing.T) {
	cfg := testConfig()
	cfg.MaxScore = 1
	e := New(cfg)

	surface := render.NewRecorder(800, 600)
	sess := game.NewSession(game.Config{
		Engine:  e,
		Surface: surface,
		Input:   &input.Hold{},
	})

	// Drain the countdown.
	for sess.State() == game.StateCountdown {
		sess.Advance(input.State{})
	}
	if sess.State() != game.StatePlaying {
		t.Fatalf("state = %v after countdown, want playing", sess.State())
	}

	e.paddles[0].rect.Y = -200
	e.ball.pos = geo.Point{X: ballRadius + 1, Y: 300}
	e.ball.vx = -400
	e.ball.vy = 0
	sess.Advance(input.State{})

	if sess.State() != game.StateGameOver {
		t.Fatalf("state = %v after winning goal, want game over", sess.State())
	}
	_, p2 := e.Scores()
	if p2 != 1 {
		t.Fatalf("player 2 score = %d, want 1", p2)
	}
	if !strings.Contains(e.Result(), "Player 2 wins") {
		t.Fatalf("result = %q, want player 2 win", e.Result())
	}

	sess.Advance(input.State{})
	if got := surface.TextsContaining("Player 2 wins"); len(got) == 0 {
		t.Fatalf("game-over screen never showed the winner")
	}
}

func TestOverFreezesState(t *testing.T) {
	cfg := testConfig()
	cfg.MaxScore = 1
	e := New(cfg)

	e.paddles[0].rect.Y = -200
	e.ball.pos = geo.Point{X: ballRadius + 1, Y: 300}
	e.ball.vx = -400
	e.Step(tick(detector.Detection{}))
	if !e.Over() {
		t.Fatal("engine not over after reaching max score")
	}

	pos, _, _ := e.Ball()
	e.Step(tick(detector.Detection{}))
	after, _, _ := e.Ball()
	if pos != after {
		t.Fatalf("ball moved after game over: %+v -> %+v", pos, after)
	}
}

func TestDrawNoCameraNotice(t *testing.T) {
	e := New(testConfig())
	surface := render.NewRecorder(800, 600)

	e.Draw(surface, game.Frame{State: game.StatePlaying, HasCamera: false})
	if len(surface.TextsContaining("no camera")) == 0 {
		t.Fatal("no notice drawn when the camera is unavailable")
	}

	surface.Reset()
	e.Draw(surface, game.Frame{State: game.StatePlaying, HasCamera: true})
	if got := surface.TextsContaining("no camera"); len(got) != 0 {
		t.Fatalf("notice %q drawn while the camera is available", got[0])
	}
}
