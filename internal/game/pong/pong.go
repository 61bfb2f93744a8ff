// Package pong implements the two-player hand-tracked paddle game. The
// left hand drives the left paddle and the right hand the right paddle;
// the ball speeds up over a round and the first player to the configured
// score wins.
package pong

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Samspei01/LM-BOX-5/internal/detector"
	"github.com/Samspei01/LM-BOX-5/internal/game"
	"github.com/Samspei01/LM-BOX-5/internal/geo"
	"github.com/Samspei01/LM-BOX-5/internal/render"
)

// Sound cues played by the engine.
const (
	CueHit     = "ball-hit"
	CueWhistle = "whistle"
)

// Gameplay defaults. Speeds are in field pixels per second.
const (
	DefaultMaxScore       = 7
	DefaultBaseSpeed      = 210.0
	DefaultSpeedIncrement = 90.0
	DefaultSpeedInterval  = 7.0 // seconds between speed ramps

	ballRadius   = 10.0
	paddleWidth  = 10.0
	paddleHeight = 80.0
	paddleInset  = 10.0
)

// Config holds the Pong engine parameters.
type Config struct {
	// Field is the play-field rectangle in screen coordinates.
	Field geo.Rect

	// CameraView is the camera frame rectangle in detector pixel space;
	// hand positions are mapped from it into Field.
	CameraView geo.Rect

	// OverlayDst is where the camera image is drawn on screen.
	OverlayDst geo.Rect

	// MaxScore ends the round when either player reaches it.
	MaxScore int

	// BaseSpeed is the ball speed after every reset, per axis.
	BaseSpeed float64

	// SpeedIncrement is added to each axis every SpeedInterval seconds.
	SpeedIncrement float64

	// SpeedInterval is the ramp period in seconds.
	SpeedInterval float64

	// SpeedMultiplier scales BaseSpeed uniformly (difficulty).
	SpeedMultiplier float64

	Rand *rand.Rand
	Cues render.Cues
}

type paddle struct {
	rect geo.Rect
}

type ball struct {
	pos    geo.Point
	vx, vy float64
}

// Engine is the Pong state machine. It owns the ball, both paddles, and
// both scores; only its Step mutates them.
type Engine struct {
	cfg   Config
	rng   *rand.Rand
	cues  render.Cues
	field geo.Rect

	ball     ball
	paddles  [2]paddle
	scores   [2]game.Score
	ramp     float64 // seconds since last speed ramp or ball reset
	over     bool
	winner   int
	handSeen [2]bool
}

// New creates a Pong engine. Zero config values fall back to defaults.
func New(cfg Config) *Engine {
	if cfg.MaxScore <= 0 {
		cfg.MaxScore = DefaultMaxScore
	}
	if cfg.BaseSpeed <= 0 {
		cfg.BaseSpeed = DefaultBaseSpeed
	}
	if cfg.SpeedIncrement <= 0 {
		cfg.SpeedIncrement = DefaultSpeedIncrement
	}
	if cfg.SpeedInterval <= 0 {
		cfg.SpeedInterval = DefaultSpeedInterval
	}
	if cfg.SpeedMultiplier <= 0 {
		cfg.SpeedMultiplier = 1
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(rand.Int63()))
	}
	if cfg.Cues == nil {
		cfg.Cues = render.NopCues{}
	}

	e := &Engine{
		cfg:   cfg,
		rng:   cfg.Rand,
		cues:  cfg.Cues,
		field: cfg.Field,
	}
	e.Reset()
	return e
}

// Name implements game.Engine.
func (e *Engine) Name() string { return "pong" }

// Reset restores paddles, ball, and scores to their starting state.
func (e *Engine) Reset() {
	e.scores[0].Reset()
	e.scores[1].Reset()
	e.over = false
	e.winner = 0

	center := e.field.CenterY() - paddleHeight/2
	e.paddles[0].rect = geo.NewRect(e.field.X+paddleInset, center, paddleWidth, paddleHeight)
	e.paddles[1].rect = geo.NewRect(e.field.Right()-paddleInset-paddleWidth, center, paddleWidth, paddleHeight)

	e.resetBall()
}

// resetBall recenters the ball with a fresh random diagonal velocity and
// restarts the speed-ramp timer.
func (e *Engine) resetBall() {
	speed := e.cfg.BaseSpeed * e.cfg.SpeedMultiplier

	e.ball.pos = e.field.Center()
	e.ball.vx = speed * diagonal(e.rng)
	e.ball.vy = speed * diagonal(e.rng)
	e.ramp = 0
}

func diagonal(rng *rand.Rand) float64 {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

// Step advances the game by one fixed tick.
func (e *Engine) Step(t game.Tick) {
	if e.over {
		return
	}

	e.rampSpeed(t.DT)
	e.movePaddles(t.Detection)
	e.moveBall(t.DT)
}

// rampSpeed grows both velocity components, sign preserved, every
// SpeedInterval seconds.
func (e *Engine) rampSpeed(dt float64) {
	e.ramp += dt
	if e.ramp < e.cfg.SpeedInterval {
		return
	}
	e.ramp = 0
	e.ball.vx += math.Copysign(e.cfg.SpeedIncrement, e.ball.vx)
	e.ball.vy += math.Copysign(e.cfg.SpeedIncrement, e.ball.vy)
}

// movePaddles maps each detected hand's vertical position into the play
// field. A hand with no detection leaves its paddle where it was.
func (e *Engine) movePaddles(det detector.Detection) {
	sides := [2]detector.Side{detector.SideLeft, detector.SideRight}

	for i, side := range sides {
		e.handSeen[i] = false

		hand := det.Hand(side)
		if hand == nil {
			continue
		}
		center, ok := hand.Center()
		if !ok {
			continue
		}

		mapped := geo.Map(center, e.cfg.CameraView, e.field)
		mapped = geo.ClampPoint(mapped, e.field, paddleHeight/2)

		e.paddles[i].rect.Y = mapped.Y - paddleHeight/2
		e.handSeen[i] = true
	}
}

func (e *Engine) moveBall(dt float64) {
	b := &e.ball
	b.pos.X += b.vx * dt
	b.pos.Y += b.vy * dt

	// Vertical walls: reflect, magnitude unchanged.
	if b.pos.Y-ballRadius <= e.field.Y {
		b.pos.Y = e.field.Y + ballRadius
		b.vy = math.Abs(b.vy)
		e.cues.Play(CueHit)
	} else if b.pos.Y+ballRadius >= e.field.Bottom() {
		b.pos.Y = e.field.Bottom() - ballRadius
		b.vy = -math.Abs(b.vy)
		e.cues.Play(CueHit)
	}

	// Paddle hits: reflect horizontally and reposition the ball flush
	// against the paddle face so a fast ball cannot tunnel through.
	ballRect := geo.NewRect(b.pos.X-ballRadius, b.pos.Y-ballRadius, 2*ballRadius, 2*ballRadius)
	if e.paddles[0].rect.Overlaps(ballRect) {
		b.vx = math.Abs(b.vx)
		b.pos.X = e.paddles[0].rect.Right() + ballRadius
		e.cues.Play(CueHit)
	} else if e.paddles[1].rect.Overlaps(ballRect) {
		b.vx = -math.Abs(b.vx)
		b.pos.X = e.paddles[1].rect.X - ballRadius
		e.cues.Play(CueHit)
	}

	// Horizontal exits score for the opposing player.
	if b.pos.X-ballRadius <= e.field.X {
		e.awardPoint(1)
	} else if b.pos.X+ballRadius >= e.field.Right() {
		e.awardPoint(0)
	}
}

func (e *Engine) awardPoint(player int) {
	e.cues.Play(CueWhistle)
	e.scores[player].Add(1)

	if e.scores[player].Points() >= e.cfg.MaxScore {
		e.over = true
		e.winner = player
		return
	}
	e.resetBall()
}

// Over implements game.Engine.
func (e *Engine) Over() bool { return e.over }

// Score returns the winning score so far.
func (e *Engine) Score() int {
	if e.scores[0].Points() > e.scores[1].Points() {
		return e.scores[0].Points()
	}
	return e.scores[1].Points()
}

// Result implements game.Engine.
func (e *Engine) Result() string {
	return fmt.Sprintf("Player %d wins", e.winner+1)
}

// Scores returns both players' points (player 1, player 2).
func (e *Engine) Scores() (int, int) {
	return e.scores[0].Points(), e.scores[1].Points()
}

// Ball returns the ball position and velocity for diagnostics and tests.
func (e *Engine) Ball() (geo.Point, float64, float64) {
	return e.ball.pos, e.ball.vx, e.ball.vy
}

// Paddle returns the given paddle's rectangle (0 = left, 1 = right).
func (e *Engine) Paddle(i int) geo.Rect {
	return e.paddles[i].rect
}
