// Package balloon implements the fingertip balloon-popping game.
// Each wave pre-generates its balloon spawn list; balloons rise through
// the camera-overlay area and are popped by any tracked fingertip.
package balloon

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
	CuePop  = "balloon-pop"
	CueMiss = "balloon-miss"
)

// Kind classifies a balloon. Combo tiers are rarer, faster, and worth
// more points.
type Kind int

const (
	KindPlain Kind = iota
	KindCombo1
	KindCombo2
	KindCombo3
)

// Points returns the pop reward for the kind.
func (k Kind) Points() int {
	switch k {
	case KindCombo1:
		return 2
	case KindCombo2:
		return 3
	case KindCombo3:
		return 5
	default:
		return 1
	}
}

func (k Kind) String() string {
	switch k {
	case KindCombo1:
		return "combo1"
	case KindCombo2:
		return "combo2"
	case KindCombo3:
		return "combo3"
	default:
		return "plain"
	}
}

// Wave tuning. Speeds are in zone pixels per second.
const (
	NumWaves     = 5
	WaveDuration = 20.0 // seconds
	WaveBreak    = 3.0  // seconds of breather before waves two onward

	balloonRadius = 32.0
	comboTierStep = 30.0 // extra speed per combo tier above the first
)

// waveParams is the per-wave generation table.
type waveParams struct {
	countLo, countHi int
	comboProb        float64
	speedLo, speedHi float64 // plain balloons
	comboLo, comboHi float64 // combo balloons
}

// Tuned so later waves are denser and faster but spawn fewer combos.
var waveTable = [NumWaves]waveParams{
	{5, 15, 0.20, 60, 300, 330, 450},
	{15, 25, 0.15, 120, 360, 390, 510},
	{25, 35, 0.10, 180, 420, 450, 570},
	{35, 45, 0.05, 240, 480, 510, 630},
	{45, 55, 0.03, 300, 540, 570, 690},
}

// comboTier picks a combo tier, higher tiers rarer.
func comboTier(rng *rand.Rand) Kind {
	switch r := rng.Float64(); {
	case r < 0.6:
		return KindCombo1
	case r < 0.9:
		return KindCombo2
	default:
		return KindCombo3
	}
}

// Balloon is one pre-generated spawn record plus its live state.
type Balloon struct {
	Kind     Kind
	AppearAt float64 // seconds into the wave
	Speed    float64 // upward, pixels per second

	pos      geo.Point
	active   bool
	resolved bool
}

// Config holds the balloon engine parameters.
type Config struct {
	// Zone is the camera-overlay rectangle balloons rise through, in
	// screen coordinates.
	Zone geo.Rect

	// CameraView is the camera frame rectangle in detector pixel space;
	// fingertips are mapped from it into Zone.
	CameraView geo.Rect

	// SpeedMultiplier scales every balloon's rise speed (difficulty).
	SpeedMultiplier float64

	Rand *rand.Rand
	Cues render.Cues
}

// Engine is the balloon game state machine.
type Engine struct {
	cfg  Config
	rng  *rand.Rand
	cues render.Cues
	zone geo.Rect

	waves     [NumWaves][]*Balloon
	wave      int     // current wave index
	waveTime  float64 // seconds into the current wave
	breakLeft float64 // seconds of inter-wave breather remaining
	score     game.Score
	over      bool
}

// New creates a balloon engine and pre-generates all waves.
func New(cfg Config) *Engine {
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
		cfg:  cfg,
		rng:  cfg.Rand,
		cues: cfg.Cues,
		zone: cfg.Zone,
	}
	e.Reset()
	return e
}

// Name implements game.Engine.
func (e *Engine) Name() string { return "balloons" }

// Reset regenerates every wave's spawn list and restarts at wave one.
func (e *Engine) Reset() {
	for i := range e.waves {
		e.waves[i] = e.generateWave(i)
	}
	e.wave = 0
	e.waveTime = 0
	e.breakLeft = 0 // wave one rides the round countdown
	e.score.Reset()
	e.over = false
}

// generateWave builds the spawn list for a wave index. Appearance times
// favor the first half of the wave window so rounds start busy.
func (e *Engine) generateWave(idx int) []*Balloon {
	p := waveTable[idx]
	n := game.IntBetween(e.rng, p.countLo, p.countHi)

	half := int(WaveDuration) / 2
	list := make([]*Balloon, 0, n)
	for i := 0; i < n; i++ {
		b := &Balloon{
			AppearAt: float64(game.BiasedIntBetween(e.rng, 0, int(WaveDuration)-1, 0, half-1, 10)),
		}

		if game.Chance(e.rng, p.comboProb) {
			b.Kind = comboTier(e.rng)
			b.Speed = p.comboLo + e.rng.Float64()*(p.comboHi-p.comboLo)
			b.Speed += comboTierStep * float64(b.Kind-KindCombo1)
		} else {
			b.Kind = KindPlain
			b.Speed = p.speedLo + e.rng.Float64()*(p.speedHi-p.speedLo)
		}
		b.Speed *= e.cfg.SpeedMultiplier

		x := e.zone.X + balloonRadius + e.rng.Float64()*(e.zone.W-2*balloonRadius)
		b.pos = geo.Point{X: x, Y: e.zone.Bottom() + balloonRadius}

		list = append(list, b)
	}
	return list
}

// Step advances the current wave by one fixed tick.
func (e *Engine) Step(t game.Tick) {
	if e.over {
		return
	}

	// Each wave after the first starts with its own short countdown;
	// nothing spawns or moves until it runs out.
	if e.breakLeft > 0 {
		e.breakLeft -= t.DT
		if e.breakLeft <= 0 {
			e.breakLeft = 0
			e.waveTime = 0
		}
		return
	}

	e.waveTime += t.DT
	tips := e.fingertips(t.Detection)

	done := true
	for _, b := range e.waves[e.wave] {
		if b.resolved {
			continue
		}

		if !b.active {
			if e.waveTime >= b.AppearAt {
				b.active = true
			} else {
				done = false
				continue
			}
		}

		b.pos.Y -= b.Speed * t.DT

		// Off the top unpopped: plain balloons cost a point.
		if b.pos.Y+balloonRadius < e.zone.Y {
			b.resolved = true
			if b.Kind == KindPlain {
				e.score.Sub(1)
				e.cues.Play(CueMiss)
			}
			continue
		}

		if popped := e.popAt(b, tips); popped {
			b.resolved = true
			e.score.Add(b.Kind.Points())
			e.cues.Play(CuePop)
			continue
		}
		done = false
	}

	if done || e.waveTime >= WaveDuration {
		e.nextWave()
	}
}

// fingertips maps every tracked fingertip from camera space into the zone.
func (e *Engine) fingertips(det detector.Detection) []geo.Point {
	var tips []geo.Point
	for i := range det.Hands {
		for _, tip := range det.Hands[i].Fingertips() {
			tips = append(tips, geo.Map(tip, e.cfg.CameraView, e.zone))
		}
	}
	return tips
}

func (e *Engine) popAt(b *Balloon, tips []geo.Point) bool {
	for _, tip := range tips {
		dx := tip.X - b.pos.X
		dy := tip.Y - b.pos.Y
		if dx*dx+dy*dy <= balloonRadius*balloonRadius {
			return true
		}
	}
	return false
}

func (e *Engine) nextWave() {
	if e.wave >= NumWaves-1 {
		e.over = true
		return
	}
	e.wave++
	e.waveTime = 0
	e.breakLeft = WaveBreak
}

// BreakRemaining returns the seconds left before the current wave starts
// playing, zero once the wave is live.
func (e *Engine) BreakRemaining() float64 { return e.breakLeft }

// Over implements game.Engine.
func (e *Engine) Over() bool { return e.over }

// Score implements game.Engine.
func (e *Engine) Score() int { return e.score.Points() }

// Result implements game.Engine.
func (e *Engine) Result() string {
	return fmt.Sprintf("Final score: %d", e.score.Points())
}

// Wave returns the current wave number, 1-based, for the HUD.
func (e *Engine) Wave() int { return e.wave + 1 }

// WaveBalloons returns the current wave's spawn records.
func (e *Engine) WaveBalloons() []*Balloon { return e.waves[e.wave] }
