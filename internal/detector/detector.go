package detector

import "gocv.io/x/gocv"

// Mode selects which landmark model a detector runs.
type Mode string

const (
	// ModeHands tracks up to two hands and their extended fingertips.
	ModeHands Mode = "hands"
	// ModePose tracks a single face nose point.
	ModePose Mode = "pose"
)

// Detector analyzes camera frames for body landmarks.
//
// Implementations must be safe against malformed frames: a frame that
// cannot be processed yields an empty Detection, never a panic. Detect
// must be idempotent per frame; it may draw cosmetic debug overlays onto
// the frame, but the overlay must not change the returned coordinates.
type Detector interface {
	Detect(frame *gocv.Mat) (Detection, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for landmark detection.
type Config struct {
	// Mode selects hand tracking or pose (nose) tracking.
	Mode Mode

	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// DrawOverlay enables cosmetic landmark markers on processed frames.
	DrawOverlay bool
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig(mode Mode) Config {
	return Config{
		Mode:            mode,
		MaxHands:        2,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
		DrawOverlay:     true,
	}
}
