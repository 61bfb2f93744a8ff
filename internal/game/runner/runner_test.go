package runner

import (
	"math/rand"
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

func step(e *Engine, in input.State, det detector.Detection) {
	e.Step(game.Tick{DT: testDT, Input: in, Detection: det})
}

func TestJumpReturnsToExactBaseline(t *testing.T) {
	e := New(testConfig())
	baseline := e.y

	step(e, input.State{Jump: true}, detector.Detection{})
	if !e.Airborne() {
		t.Fatal("character not airborne after a grounded jump")
	}

	for i := 0; i < 1000 && e.Airborne(); i++ {
		step(e, input.State{}, detector.Detection{})
	}

	if e.Airborne() {
		t.Fatal("character never landed")
	}
	if e.y != baseline {
		t.Fatalf("landed at y=%v, want exact baseline %v", e.y, baseline)
	}
	if e.vy != 0 {
		t.Fatalf("vertical speed %v after landing, want 0", e.vy)
	}
}

func TestAirborneJumpIgnored(t *testing.T) {
	e := New(testConfig())
	step(e, input.State{Jump: true}, detector.Detection{})
	step(e, input.State{}, detector.Detection{})
	vy := e.vy

	// A second jump press mid-flight must not re-launch.
	step(e, input.State{Jump: true}, detector.Detection{})
	if e.vy == -JumpVelocity {
		t.Fatalf("mid-air jump reset velocity to %v", e.vy)
	}
	if e.vy <= vy {
		t.Fatalf("gravity stopped acting: vy went %v -> %v", vy, e.vy)
	}
}

func TestAirborneDuckIgnoredUntilLanding(t *testing.T) {
	e := New(testConfig())
	standing := e.Hitbox()

	step(e, input.State{Jump: true}, detector.Detection{})
	step(e, input.State{Duck: true}, detector.Detection{})

	if e.Ducking() {
		t.Fatal("duck applied while airborne")
	}
	if hb := e.Hitbox(); hb.W != standing.W || hb.H != standing.H {
		t.Fatalf("hitbox changed mid-air: %+v", hb)
	}

	for i := 0; i < 1000 && e.Airborne(); i++ {
		step(e, input.State{Duck: true}, detector.Detection{})
	}
	if !e.Ducking() {
		t.Fatal("duck not applied after landing with the key held")
	}
	if hb := e.Hitbox(); hb.H != duckHeight {
		t.Fatalf("duck hitbox height = %v, want %v", hb.H, duckHeight)
	}
}

func TestNoseAboveJumpLineJumps(t *testing.T) {
	e := New(testConfig())

	// 0.3 of the 480px frame is above the 0.40 jump line.
	det := detector.NoseAt(geo.Point{X: 320, Y: 0.3 * 480})
	step(e, input.State{}, det)

	if !e.Airborne() {
		t.Fatal("nose above the jump line did not trigger a jump")
	}
}

func TestNoseBelowDuckLineDucks(t *testing.T) {
	e := New(testConfig())

	det := detector.NoseAt(geo.Point{X: 320, Y: 0.8 * 480})
	step(e, input.State{}, det)

	if !e.Ducking() {
		t.Fatal("nose below the duck line did not trigger a duck")
	}
}

func TestNoseInNeutralBandDoesNothing(t *testing.T) {
	e := New(testConfig())

	det := detector.NoseAt(geo.Point{X: 320, Y: 0.5 * 480})
	step(e, input.State{}, det)

	if e.Airborne() || e.Ducking() {
		t.Fatalf("neutral nose position acted: airborne=%v ducking=%v", e.Airborne(), e.Ducking())
	}
}

func TestKeyboardAndNoseAreORed(t *testing.T) {
	e := New(testConfig())

	// Neutral nose, keyboard jump: the keyboard alone must act.
	det := detector.NoseAt(geo.Point{X: 320, Y: 0.5 * 480})
	step(e, input.State{Jump: true}, det)

	if !e.Airborne() {
		t.Fatal("keyboard jump ignored while the nose was neutral")
	}
}

func TestObstaclesSpawnAtMinimumInterval(t *testing.T) {
	e := New(testConfig())

	ticks := int(SpawnInterval/testDT) - 1
	for i := 0; i < ticks; i++ {
		step(e, input.State{}, detector.Detection{})
	}
	if len(e.Obstacles()) != 0 {
		t.Fatalf("%d obstacles before the spawn interval elapsed", len(e.Obstacles()))
	}

	step(e, input.State{}, detector.Detection{})
	step(e, input.State{}, detector.Detection{})
	if len(e.Obstacles()) != 1 {
		t.Fatalf("%d obstacles after the interval, want 1", len(e.Obstacles()))
	}
}

func TestObstaclesScrollLeftAndExpire(t *testing.T) {
	e := New(testConfig())
	e.obstacles = append(e.obstacles, Obstacle{
		Kind: Cactus,
		Rect: geo.NewRect(700, e.ground-70, 34, 70),
	})

	step(e, input.State{}, detector.Detection{})
	if got := e.Obstacles()[0].Rect.X; got >= 700 {
		t.Fatalf("obstacle at x=%v, did not move left", got)
	}

	e.obstacles[0].Rect.X = e.field.X - 100
	step(e, input.State{}, detector.Detection{})
	for _, o := range e.Obstacles() {
		if o.Rect.X <= e.field.X-90 {
			t.Fatalf("off-field obstacle not removed: %+v", o)
		}
	}
}

func TestCollisionEndsRound(t *testing.T) {
	e := New(testConfig())
	cues := &render.CueRecorder{}
	e.cues = cues

	hb := e.Hitbox()
	e.obstacles = append(e.obstacles, Obstacle{
		Kind: Cactus,
		Rect: geo.NewRect(hb.X, e.ground-70, 34, 70),
	})
	step(e, input.State{}, detector.Detection{})

	if !e.Over() {
		t.Fatal("overlap with an obstacle did not end the round")
	}
	if cues.Count(CueCrash) != 1 {
		t.Fatalf("crash cue played %d times, want 1", cues.Count(CueCrash))
	}

	score := e.Score()
	step(e, input.State{}, detector.Detection{})
	if e.Score() != score {
		t.Fatal("score advanced after game over")
	}
}

func TestDuckClearsMidPtero(t *testing.T) {
	e := New(testConfig())

	// A mid-height ptero passes over a ducking character but hits a
	// standing one.
	lift := pteroHeights[1]
	rect := geo.NewRect(e.Hitbox().X, e.ground-40-lift, 92, 40)

	e.obstacles = append(e.obstacles, Obstacle{Kind: Ptero, Rect: rect})
	step(e, input.State{Duck: true}, detector.Detection{})
	if e.Over() {
		t.Fatal("mid ptero hit a ducking character")
	}

	e.Reset()
	e.obstacles = append(e.obstacles, Obstacle{Kind: Ptero, Rect: rect})
	step(e, input.State{}, detector.Detection{})
	if !e.Over() {
		t.Fatal("mid ptero missed a standing character")
	}
}

func TestSpeedRampsAtMilestonesAndCaps(t *testing.T) {
	e := New(testConfig())
	base := e.GameSpeed()

	e.score = float64(Milestone) - 0.01
	e.advanceScore(testDT)
	if got := e.GameSpeed(); got != base+SpeedStep {
		t.Fatalf("speed = %v after the first milestone, want %v", got, base+SpeedStep)
	}

	e.score = 1e6
	e.advanceScore(testDT)
	if got := e.GameSpeed(); got != MaxGameSpeed {
		t.Fatalf("speed = %v, want cap %v", got, MaxGameSpeed)
	}
}

func TestScoreAccruesWithTime(t *testing.T) {
	e := New(testConfig())
	for i := 0; i < 300; i++ { // 10 seconds
		step(e, input.State{}, detector.Detection{})
		if e.Over() {
			e.over = false // ignore spawned obstacles for this test
			e.obstacles = e.obstacles[:0]
		}
	}
	if got := e.Score(); got < 25 || got > 35 {
		t.Fatalf("score = %d after 10s, want about 30", got)
	}
}
