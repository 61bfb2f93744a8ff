// Package game provides the session state machine shared by all LM Box
// mini-games, plus the score and timing primitives the engines build on.
//
// A Session drives one mini-game through Countdown -> Playing -> GameOver
// on a fixed simulation tick. The engine owns all game objects and is the
// only mutator of its state; the session owns timing, input priority, and
// teardown of the capture loop on every exit path.
package game

import (
	"log/slog"
	"time"

	"github.com/Samspei01/LM-BOX-5/internal/capture"
	"github.com/Samspei01/LM-BOX-5/internal/detector"
	"github.com/Samspei01/LM-BOX-5/internal/input"
	"github.com/Samspei01/LM-BOX-5/internal/render"
)

// State is the session state. Exactly one State is active per running
// mini-game; transitions are the only way to change which logic runs.
type State int

const (
	// StateCountdown shows instructions; physics do not advance.
	StateCountdown State = iota
	// StatePlaying runs physics and input processing every tick.
	StatePlaying
	// StateGameOver suspends input except restart and return-to-menu.
	StateGameOver
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateCountdown:
		return "countdown"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// ExitReason reports why a session ended.
type ExitReason int

const (
	// ExitMenu returns control to the external menu.
	ExitMenu ExitReason = iota
	// ExitQuit requests process exit.
	ExitQuit
)

// Sound cue names shared across the games.
const (
	CueGameOver = "game-over"
)

// Tick carries everything an engine needs for one simulation step.
type Tick struct {
	// DT is the fixed step duration in seconds.
	DT float64
	// Input is this tick's sampled input state.
	Input input.State
	// Detection is the most recent landmark detection; empty when the
	// camera is unavailable or nothing was detected.
	Detection detector.Detection
}

// Frame is the render context passed to an engine's Draw.
type Frame struct {
	State State
	// Remaining is the countdown time left in seconds (countdown only).
	Remaining float64
	// Snapshot is the latest camera snapshot for the overlay.
	Snapshot capture.Snapshot
	// HasCamera reports whether a snapshot is present.
	HasCamera bool
}

// Engine is one mini-game's state machine. The session calls Step only in
// StatePlaying and Reset on restart; the engine owns all of its game
// objects and scores.
type Engine interface {
	// Name identifies the game for logs and score records.
	Name() string
	// Reset returns the engine to its initial state and score.
	Reset()
	// Step advances physics by one fixed tick.
	Step(t Tick)
	// Over reports whether the terminal condition has been reached.
	Over() bool
	// Score returns the headline score for the finished round.
	Score() int
	// Result returns the game-over line, e.g. "Player 2 wins".
	Result() string
	// Draw renders the current screen for any session state.
	Draw(s render.Surface, f Frame)
}

// Config holds the session wiring.
type Config struct {
	Engine  Engine
	Surface render.Surface
	Input   input.Source
	Cues    render.Cues

	// Capture is the background capture loop; nil when the game runs
	// without gesture input. The session stops it on every exit path.
	Capture *capture.Loop

	// TickRate is the simulation rate in Hz (default 30).
	TickRate int

	// Countdown is the instruction-screen duration (default 5s).
	Countdown time.Duration

	Logger *slog.Logger
}

// Session drives one mini-game through its states on a fixed tick.
type Session struct {
	cfg   Config
	log   *slog.Logger
	cues  render.Cues
	dt    float64
	state State

	countdownTicks int
	countdownLeft  int
}

// NewSession creates a session for the given engine and wiring.
func NewSession(cfg Config) *Session {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 30
	}
	if cfg.Countdown <= 0 {
		cfg.Countdown = 5 * time.Second
	}
	if cfg.Cues == nil {
		cfg.Cues = render.NopCues{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ticks := int(cfg.Countdown.Seconds() * float64(cfg.TickRate))
	if ticks < 1 {
		ticks = 1
	}

	return &Session{
		cfg:            cfg,
		log:            logger.With("game", cfg.Engine.Name()),
		cues:           cfg.Cues,
		dt:             1.0 / float64(cfg.TickRate),
		state:          StateCountdown,
		countdownTicks: ticks,
		countdownLeft:  ticks,
	}
}

// State returns the current session state.
func (s *Session) State() State {
	return s.state
}

// Run drives the session until the player quits or returns to the menu.
// The capture loop is stopped before Run returns, on every exit path.
func (s *Session) Run() ExitReason {
	if s.cfg.Capture != nil {
		defer s.cfg.Capture.Stop()
	}

	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.TickRate))
	defer ticker.Stop()

	s.log.Info("session started", "tick_rate", s.cfg.TickRate)

	for range ticker.C {
		in := s.cfg.Input.Poll()
		if reason, done := s.Advance(in); done {
			s.log.Info("session ended", "reason", int(reason), "score", s.cfg.Engine.Score())
			return reason
		}
	}
	return ExitMenu
}

// Advance executes one simulation tick: input priority, state
// transitions, one engine step when playing, and one rendered frame.
// It returns done=true when the session should end.
func (s *Session) Advance(in input.State) (ExitReason, bool) {
	// Escape/quit wins in every state.
	if in.Quit {
		return ExitQuit, true
	}
	if in.Escape {
		return ExitMenu, true
	}

	snap, hasSnap := s.latestSnapshot()

	switch s.state {
	case StateCountdown:
		s.countdownLeft--
		if s.countdownLeft <= 0 {
			s.transition(StatePlaying)
		}

	case StatePlaying:
		s.cfg.Engine.Step(Tick{
			DT:        s.dt,
			Input:     in,
			Detection: snap.Detection,
		})
		if s.cfg.Engine.Over() {
			s.cues.Play(CueGameOver)
			s.transition(StateGameOver)
		}

	case StateGameOver:
		if in.Restart {
			s.cfg.Engine.Reset()
			s.countdownLeft = s.countdownTicks
			s.transition(StateCountdown)
		}
	}

	s.draw(snap, hasSnap)
	return 0, false
}

func (s *Session) latestSnapshot() (capture.Snapshot, bool) {
	if s.cfg.Capture == nil {
		return capture.Snapshot{}, false
	}
	return s.cfg.Capture.Latest()
}

func (s *Session) transition(to State) {
	s.log.Debug("state transition", "from", s.state.String(), "to", to.String())
	s.state = to
}

func (s *Session) draw(snap capture.Snapshot, hasSnap bool) {
	if s.cfg.Surface == nil {
		return
	}

	s.cfg.Engine.Draw(s.cfg.Surface, Frame{
		State:     s.state,
		Remaining: float64(s.countdownLeft) * s.dt,
		Snapshot:  snap,
		HasCamera: hasSnap,
	})
	s.cfg.Surface.Present()
}
