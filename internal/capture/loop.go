package capture

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"gocv.io/x/gocv"

	"github.com/Samspei01/LM-BOX-5/internal/detector"
)

// Failure-recovery thresholds for the capture loop.
const (
	// ReconnectThreshold is the number of consecutive read failures after
	// which the loop attempts one camera reconnect.
	ReconnectThreshold = 10
	// GiveUpThreshold is the number of consecutive read failures after
	// which the camera is declared unavailable for the session.
	GiveUpThreshold = 20
	// readFailureBackoff bounds the sleep after a failed read so the loop
	// does not spin on a dead device.
	readFailureBackoff = 100 * time.Millisecond
)

// Snapshot is the latest published capture result: a frame and the
// detection computed from that same frame. It is immutable once
// published; the render loop reads it without locking.
type Snapshot struct {
	Image     image.Image
	Detection detector.Detection
	Timestamp time.Time
	Width     int
	Height    int
}

// Config holds configuration for a capture Loop.
type Config struct {
	// Camera to read from. When nil, Start opens the first responding
	// device from DeviceIDs.
	Camera Camera

	// DeviceIDs are the camera indices tried in order when Camera is nil
	// (default 0, 1, 2).
	DeviceIDs []int

	// Detector computes landmarks for every captured frame.
	Detector detector.Detector

	// CloseDetector makes Stop close the Detector too. Set when the loop
	// owns a detector built for this session; leave unset for injected
	// detectors whose lifecycle the caller manages.
	CloseDetector bool

	// FPS is the capture rate (default DefaultFPS).
	FPS int

	// Mirror flips frames horizontally so the player sees a mirror image.
	Mirror bool

	Logger *slog.Logger
}

// Loop runs camera capture and landmark detection on a background
// goroutine and publishes the most recent (frame, detection) pair into a
// single-slot mailbox. The render loop always reads the latest snapshot
// and never blocks on vision processing: last writer wins.
type Loop struct {
	camera   Camera
	cfg      Config
	log      *slog.Logger
	interval time.Duration

	snapshot  atomic.Pointer[Snapshot]
	available atomic.Bool

	mu      sync.Mutex
	started bool
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewLoop creates a capture loop from the given configuration.
func NewLoop(cfg Config) *Loop {
	fps := cfg.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Loop{
		camera:   cfg.Camera,
		cfg:      cfg,
		log:      logger.With("component", "capture"),
		interval: time.Second / time.Duration(fps),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start opens the camera and launches the capture worker. When no camera
// device can be opened the loop stays idle, Available reports false, and
// the games fall back to keyboard input where they support it.
func (l *Loop) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		return nil
	}

	if l.camera == nil {
		cam, err := OpenAny(l.cfg.DeviceIDs...)
		if err != nil {
			l.log.Warn("no camera device opened, gesture input unavailable", "error", err)
			return err
		}
		l.camera = cam
	} else if err := l.camera.Open(); err != nil {
		l.log.Warn("camera open failed, gesture input unavailable", "error", err)
		return fmt.Errorf("open camera: %w", err)
	}

	l.available.Store(true)
	l.started = true
	go l.run()

	l.log.Info("capture loop started", "fps", l.camera.FPS())
	return nil
}

// run is the capture worker. It is the only writer of snapshots and the
// only goroutine touching the camera between Start and Stop.
func (l *Loop) run() {
	defer close(l.doneCh)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	failures := 0

	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			frame, err := l.camera.ReadFrame()
			if err != nil {
				failures++
				l.log.Debug("frame read failed", "error", err, "consecutive", failures)

				switch {
				case failures == ReconnectThreshold:
					l.reconnect()
				case failures >= GiveUpThreshold:
					l.log.Error("camera dead, giving up for this session", "failures", failures)
					l.available.Store(false)
					l.camera.Close()
					return
				}

				// Bounded backoff; stays responsive to Stop.
				select {
				case <-l.stopCh:
					return
				case <-time.After(readFailureBackoff):
				}
				continue
			}

			failures = 0
			l.process(frame)
		}
	}
}

// process runs detection on one frame and publishes the snapshot.
// The frame Mat is owned by this method and closed before returning.
func (l *Loop) process(frame *gocv.Mat) {
	defer frame.Close()

	if l.cfg.Mirror {
		gocv.Flip(*frame, frame, 1)
	}

	var det detector.Detection
	if l.cfg.Detector != nil {
		d, err := l.cfg.Detector.Detect(frame)
		if err != nil {
			// Detector failures are downgraded to "nothing detected";
			// they never reach the render loop.
			l.log.Debug("detector failed, treating frame as empty", "error", err)
		} else {
			det = d
		}
	}

	img, err := frame.ToImage()
	if err != nil {
		l.log.Debug("frame conversion failed", "error", err)
		return
	}

	l.snapshot.Store(&Snapshot{
		Image:     img,
		Detection: det,
		Timestamp: time.Now(),
		Width:     frame.Cols(),
		Height:    frame.Rows(),
	})
}

// reconnect closes and reopens the camera once after a run of read
// failures.
func (l *Loop) reconnect() {
	l.log.Warn("attempting camera reconnect")
	l.camera.Close()
	if err := l.camera.Open(); err != nil {
		l.log.Warn("camera reconnect failed", "error", err)
		return
	}
	l.log.Info("camera reconnected")
}

// Latest returns the most recent snapshot. The second return value is
// false when nothing has been published yet. Never blocks.
func (l *Loop) Latest() (Snapshot, bool) {
	s := l.snapshot.Load()
	if s == nil {
		return Snapshot{}, false
	}
	return *s, true
}

// Available reports whether camera capture is usable for this session.
func (l *Loop) Available() bool {
	return l.available.Load()
}

// Stop signals the worker to exit, waits for it, and releases the camera.
// It is safe to call from the render thread at any time and is
// idempotent; when it returns the camera handle is released and no
// further snapshots will be published.
func (l *Loop) Stop() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.stopped = true
	started := l.started
	l.mu.Unlock()

	close(l.stopCh)
	if started {
		<-l.doneCh
	}

	l.available.Store(false)
	if l.camera != nil {
		if err := l.camera.Close(); err != nil {
			l.log.Warn("error closing camera", "error", err)
		}
	}
	if l.cfg.CloseDetector && l.cfg.Detector != nil {
		if err := l.cfg.Detector.Close(); err != nil {
			l.log.Warn("error closing detector", "error", err)
		}
	}

	l.log.Info("capture loop stopped")
}
