// Package runner implements the endless-runner game. The character jumps
// and ducks under obstacles, driven either by the tracked nose height or
// by the keyboard; either source alone triggers an action.
package runner

import (
	"fmt"
	"math/rand"

	"github.com/Samspei01/LM-BOX-5/internal/detector"
	"github.com/Samspei01/LM-BOX-5/internal/game"
	"github.com/Samspei01/LM-BOX-5/internal/geo"
	"github.com/Samspei01/LM-BOX-5/internal/render"
)

// Sound cues played by the engine.
const (
	CueJump  = "runner-jump"
	CueCrash = "runner-crash"
)

// Physics and pacing. Distances are field pixels, times seconds.
const (
	// JumpLine and DuckLine are fractions of the camera frame height;
	// a nose above JumpLine jumps, below DuckLine ducks.
	JumpLine = 0.40
	DuckLine = 0.60

	Gravity      = 540.0 // px/s², downward
	JumpVelocity = 450.0 // px/s, initial upward speed

	BaseGameSpeed = 300.0 // px/s, obstacle scroll speed
	MaxGameSpeed  = 600.0
	SpeedStep     = 15.0  // added per score milestone
	Milestone     = 100   // points between speed steps
	ScoreRate     = 3.0   // points per second survived

	SpawnInterval = 1.5 // seconds, minimum between obstacles
	pteroChance   = 0.3

	standWidth  = 44.0
	standHeight = 94.0
	duckWidth   = 88.0
	duckHeight  = 56.0

	cloudChance = 0.01 // per tick
	cloudDrift  = 0.35 // fraction of game speed
)

// ObstacleKind distinguishes ground cacti from flying pterodactyls.
type ObstacleKind int

const (
	Cactus ObstacleKind = iota
	Ptero
)

// pteroHeights are the flying obstacle's bottom offsets above the ground
// line. The lowest forces a jump, the middle one forces a duck, and the
// highest clears even a standing character.
var pteroHeights = [3]float64{0, 70, 100}

// Obstacle is one live obstacle scrolling leftward.
type Obstacle struct {
	Kind ObstacleKind
	Rect geo.Rect
}

type cloud struct {
	pos geo.Point
}

// Config holds the runner engine parameters.
type Config struct {
	// Field is the play-field rectangle in screen coordinates.
	Field geo.Rect

	// CameraView is the camera frame rectangle in detector pixel space,
	// used to place the nose relative to the jump and duck lines.
	CameraView geo.Rect

	// OverlayDst is where the camera image is drawn on screen.
	OverlayDst geo.Rect

	// SpeedMultiplier scales the scroll speed (difficulty).
	SpeedMultiplier float64

	// ScoreMultiplier scales the survival score rate (difficulty).
	ScoreMultiplier float64

	Rand *rand.Rand
	Cues render.Cues
}

// Engine is the runner game state machine.
type Engine struct {
	cfg   Config
	rng   *rand.Rand
	cues  render.Cues
	field geo.Rect

	ground   float64 // y of the ground line
	baseline float64 // y of the character's feet when grounded

	y        float64 // character's feet
	vy       float64
	airborne bool
	ducking  bool

	obstacles  []Obstacle
	clouds     []cloud
	sinceSpawn float64

	score     float64
	gameSpeed float64
	nextStep  int // score at which the next speed step applies
	over      bool
}

// New creates a runner engine.
func New(cfg Config) *Engine {
	if cfg.SpeedMultiplier <= 0 {
		cfg.SpeedMultiplier = 1
	}
	if cfg.ScoreMultiplier <= 0 {
		cfg.ScoreMultiplier = 1
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
	e.ground = cfg.Field.Bottom() - 60
	e.baseline = e.ground
	e.Reset()
	return e
}

// Name implements game.Engine.
func (e *Engine) Name() string { return "runner" }

// Reset restores the character, obstacles, and score.
func (e *Engine) Reset() {
	e.y = e.baseline
	e.vy = 0
	e.airborne = false
	e.ducking = false
	e.obstacles = e.obstacles[:0]
	e.clouds = e.clouds[:0]
	e.sinceSpawn = 0
	e.score = 0
	e.gameSpeed = BaseGameSpeed * e.cfg.SpeedMultiplier
	e.nextStep = Milestone
	e.over = false
}

// Step advances the game by one fixed tick.
func (e *Engine) Step(t game.Tick) {
	if e.over {
		return
	}

	jump, duck := e.controls(t)
	e.applyControls(jump, duck)
	e.integrate(t.DT)
	e.scroll(t.DT)
	e.spawn(t.DT)
	e.advanceScore(t.DT)

	if e.collided() {
		e.over = true
		e.cues.Play(CueCrash)
	}
}

// controls merges the nose position and the keyboard into one jump/duck
// pair; either source alone triggers the action.
func (e *Engine) controls(t game.Tick) (jump, duck bool) {
	jump = t.Input.Jump
	duck = t.Input.Duck

	if t.Detection.Nose != nil {
		frac := (t.Detection.Nose.Y - e.cfg.CameraView.Y) / e.cfg.CameraView.H
		if frac < JumpLine {
			jump = true
		} else if frac > DuckLine {
			duck = true
		}
	}
	return jump, duck
}

func (e *Engine) applyControls(jump, duck bool) {
	if jump && !e.airborne {
		e.airborne = true
		e.ducking = false
		e.vy = -JumpVelocity
		e.cues.Play(CueJump)
		return
	}
	// Ducking only takes effect on the ground; an airborne duck is
	// ignored until landing.
	if !e.airborne {
		e.ducking = duck
	}
}

// integrate applies projectile motion while airborne. Landing clamps the
// character back to the exact baseline.
func (e *Engine) integrate(dt float64) {
	if !e.airborne {
		return
	}
	e.vy += Gravity * dt
	e.y += e.vy * dt
	if e.y >= e.baseline {
		e.y = e.baseline
		e.vy = 0
		e.airborne = false
	}
}

// scroll moves obstacles and clouds leftward, dropping anything that
// leaves the field.
func (e *Engine) scroll(dt float64) {
	live := e.obstacles[:0]
	for _, o := range e.obstacles {
		o.Rect.X -= e.gameSpeed * dt
		if o.Rect.Right() > e.field.X {
			live = append(live, o)
		}
	}
	e.obstacles = live

	drift := e.gameSpeed * cloudDrift * dt
	keep := e.clouds[:0]
	for _, c := range e.clouds {
		c.pos.X -= drift
		if c.pos.X > e.field.X-80 {
			keep = append(keep, c)
		}
	}
	e.clouds = keep

	if game.Chance(e.rng, cloudChance) {
		e.clouds = append(e.clouds, cloud{pos: geo.Point{
			X: e.field.Right() + 80,
			Y: e.field.Y + 40 + e.rng.Float64()*120,
		}})
	}
}

// spawn adds a new obstacle once the minimum interval has passed.
func (e *Engine) spawn(dt float64) {
	e.sinceSpawn += dt
	if e.sinceSpawn < SpawnInterval {
		return
	}
	e.sinceSpawn = 0

	x := e.field.Right()
	if game.Chance(e.rng, pteroChance) {
		const w, h = 92.0, 40.0
		lift := pteroHeights[e.rng.Intn(len(pteroHeights))]
		e.obstacles = append(e.obstacles, Obstacle{
			Kind: Ptero,
			Rect: geo.NewRect(x, e.ground-h-lift, w, h),
		})
		return
	}

	const w, h = 34.0, 70.0
	e.obstacles = append(e.obstacles, Obstacle{
		Kind: Cactus,
		Rect: geo.NewRect(x, e.ground-h, w, h),
	})
}

// advanceScore accrues survival points and ramps the game speed at each
// milestone, capped.
func (e *Engine) advanceScore(dt float64) {
	e.score += ScoreRate * e.cfg.ScoreMultiplier * dt

	for int(e.score) >= e.nextStep {
		e.nextStep += Milestone
		e.gameSpeed += SpeedStep
		if e.gameSpeed > MaxGameSpeed {
			e.gameSpeed = MaxGameSpeed
		}
	}
}

// Hitbox returns the character's current collision rectangle.
func (e *Engine) Hitbox() geo.Rect {
	const x = 120.0 // fixed horizontal position
	if e.ducking {
		return geo.NewRect(x, e.y-duckHeight, duckWidth, duckHeight)
	}
	return geo.NewRect(x, e.y-standHeight, standWidth, standHeight)
}

func (e *Engine) collided() bool {
	hb := e.Hitbox()
	for _, o := range e.obstacles {
		if hb.Overlaps(o.Rect) {
			return true
		}
	}
	return false
}

// Over implements game.Engine.
func (e *Engine) Over() bool { return e.over }

// Score implements game.Engine.
func (e *Engine) Score() int { return int(e.score) }

// Result implements game.Engine.
func (e *Engine) Result() string {
	return fmt.Sprintf("Distance: %d", int(e.score))
}

// GameSpeed returns the current scroll speed for diagnostics and tests.
func (e *Engine) GameSpeed() float64 { return e.gameSpeed }

// Obstacles returns the live obstacles.
func (e *Engine) Obstacles() []Obstacle { return e.obstacles }

// Airborne reports whether the character is mid-jump.
func (e *Engine) Airborne() bool { return e.airborne }

// Ducking reports whether the duck hitbox is active.
func (e *Engine) Ducking() bool { return e.ducking }
