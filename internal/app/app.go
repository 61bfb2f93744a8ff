// Package app wires the games together: it builds the detector and
// capture loop for a session, runs the selected engine, and records the
// finished round's score.
package app

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/Samspei01/LM-BOX-5/internal/capture"
	"github.com/Samspei01/LM-BOX-5/internal/config"
	"github.com/Samspei01/LM-BOX-5/internal/detector"
	"github.com/Samspei01/LM-BOX-5/internal/game"
	"github.com/Samspei01/LM-BOX-5/internal/game/balloon"
	"github.com/Samspei01/LM-BOX-5/internal/game/pong"
	"github.com/Samspei01/LM-BOX-5/internal/game/runner"
	"github.com/Samspei01/LM-BOX-5/internal/geo"
	"github.com/Samspei01/LM-BOX-5/internal/input"
	"github.com/Samspei01/LM-BOX-5/internal/render"
	"github.com/Samspei01/LM-BOX-5/internal/store"
)

// Game identifiers accepted by Run.
const (
	GamePong     = "pong"
	GameBalloons = "balloons"
	GameRunner   = "runner"
)

// ErrUnknownGame is returned when Run is given an id it does not know.
var ErrUnknownGame = fmt.Errorf("unknown game")

// Config holds the application configuration.
type Config struct {
	Settings config.Config
	Store    *store.Store
	Logger   *slog.Logger

	// Camera overrides the capture device for tests. When nil, the
	// capture loop opens a real camera by index.
	Camera capture.Camera

	// Detector overrides the landmark provider for tests. When nil, a
	// MediaPipe subprocess is started per session.
	Detector detector.Detector
}

// App launches game sessions for the menu.
type App struct {
	cfg Config
	log *slog.Logger
}

// New creates a new App with the given configuration.
func New(cfg Config) *App {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &App{cfg: cfg, log: cfg.Logger}
}

// Result describes one finished session.
type Result struct {
	Game     string
	Score    int
	Finished bool // the round reached game over (not an early escape)
	Exit     game.ExitReason
}

// Run plays one session of the named game on the given surface and
// returns when the player leaves it. A finished round is recorded as a
// high score for user when both a store and a user are configured.
func (a *App) Run(gameID string, user *store.User, surf render.Surface, in input.Source, cues render.Cues) (Result, error) {
	engine, mode, err := a.buildEngine(gameID, surf)
	if err != nil {
		return Result{}, err
	}

	loop := a.startCapture(mode)

	session := game.NewSession(game.Config{
		Engine:   engine,
		Surface:  surf,
		Input:    in,
		Cues:     cues,
		Capture:  loop,
		TickRate: a.cfg.Settings.TickRate,
		Logger:   a.log.With("game", gameID),
	})

	exit := session.Run()

	result := Result{
		Game:     gameID,
		Score:    engine.Score(),
		Finished: engine.Over(),
		Exit:     exit,
	}
	a.record(result, user)

	return result, nil
}

// buildEngine constructs the engine for a game id, sized to the surface.
func (a *App) buildEngine(gameID string, surf render.Surface) (game.Engine, detector.Mode, error) {
	w, h := surf.Size()
	field := geo.NewRect(0, 0, w, h)
	camView := geo.NewRect(0, 0, 640, 480)
	mult := a.cfg.Settings.Multipliers()

	// Camera overlay in the top-right corner, a quarter of the field wide.
	overlay := geo.NewRect(field.Right()-w/4-10, field.Y+10, w/4, (w/4)*camView.H/camView.W)

	switch gameID {
	case GamePong:
		return pong.New(pong.Config{
			Field:           field,
			CameraView:      camView,
			OverlayDst:      overlay,
			SpeedMultiplier: mult.Speed,
			Rand:            rand.New(rand.NewSource(rand.Int63())),
		}), detector.ModeHands, nil

	case GameBalloons:
		// Balloons rise through a centered camera zone.
		zone := geo.NewRect(field.CenterX()-w/3, field.Y+40, 2*w/3, h-80)
		return balloon.New(balloon.Config{
			Zone:            zone,
			CameraView:      camView,
			SpeedMultiplier: mult.Speed,
			Rand:            rand.New(rand.NewSource(rand.Int63())),
		}), detector.ModeHands, nil

	case GameRunner:
		return runner.New(runner.Config{
			Field:           field,
			CameraView:      camView,
			OverlayDst:      overlay,
			SpeedMultiplier: mult.Speed,
			ScoreMultiplier: mult.Score,
			Rand:            rand.New(rand.NewSource(rand.Int63())),
		}), detector.ModePose, nil
	}

	return nil, "", fmt.Errorf("%w: %q", ErrUnknownGame, gameID)
}

// startCapture builds and starts the capture loop for a session. A
// session without a working camera still runs; the loop publishes
// nothing and the games fall back per their input rules. A detector
// built here is owned by the loop and closed with it.
func (a *App) startCapture(mode detector.Mode) *capture.Loop {
	det := a.cfg.Detector
	owned := false
	if det == nil {
		mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig(mode))
		if err != nil {
			a.log.Warn("landmark detector unavailable", "error", err)
			return nil
		}
		det = mp
		owned = true
	}

	loop := capture.NewLoop(capture.Config{
		Camera:        a.cfg.Camera,
		DeviceIDs:     capture.DeviceFallback(a.cfg.Settings.CameraIndex),
		Detector:      det,
		CloseDetector: owned,
		FPS:           a.cfg.Settings.CaptureFPS,
		Mirror:        true,
		Logger:        a.log,
	})

	if err := loop.Start(); err != nil {
		a.log.Warn("camera unavailable, gesture input disabled", "error", err)
		if owned {
			det.Close()
		}
		return nil
	}
	return loop
}

// record stores a finished round's score.
func (a *App) record(r Result, user *store.User) {
	if !r.Finished || a.cfg.Store == nil || user == nil {
		return
	}

	err := a.cfg.Store.Scores().Record(&store.HighScore{
		UserID:     user.ID,
		Game:       r.Game,
		Score:      r.Score,
		Difficulty: string(a.cfg.Settings.Difficulty),
	})
	if err != nil {
		a.log.Error("failed to record score", "game", r.Game, "error", err)
		return
	}
	a.log.Info("score recorded", "game", r.Game, "score", r.Score, "user", user.Name)
}
