package detector

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/Samspei01/LM-BOX-5/internal/geo"
)

// MediaPipeDetector implements Detector using a Python MediaPipe subprocess.
// Depending on the configured Mode the subprocess runs the hand-landmark
// model (fingertips) or the pose model (nose point).
type MediaPipeDetector struct {
	config    Config
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	mu        sync.Mutex
	started   bool
	lastUsed  time.Time
	idleTimer *time.Timer
}

// NewMediaPipeDetector creates a new MediaPipe detector.
// The Python process is started lazily on first detection.
func NewMediaPipeDetector(config Config) (*MediaPipeDetector, error) {
	if findMediaPipeScript() == "" {
		return nil, fmt.Errorf("mediapipe_service.py not found")
	}

	return &MediaPipeDetector{
		config: config,
	}, nil
}

// Detect analyzes a frame and returns the detected landmarks.
// Malformed or empty frames yield an empty Detection.
func (d *MediaPipeDetector) Detect(frame *gocv.Mat) (Detection, error) {
	if frame == nil || frame.Empty() {
		return Detection{}, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureStarted(); err != nil {
		return Detection{}, err
	}

	// Encode frame as JPEG
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return Detection{}, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := buf.GetBytes()

	// Write length (4 bytes big-endian) + data
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))

	if _, err := d.stdin.Write(length); err != nil {
		return Detection{}, fmt.Errorf("write length: %w", err)
	}
	if _, err := d.stdin.Write(data); err != nil {
		return Detection{}, fmt.Errorf("write data: %w", err)
	}

	// Read JSON response
	line, err := d.stdout.ReadString('\n')
	if err != nil {
		return Detection{}, fmt.Errorf("read response: %w", err)
	}

	var response struct {
		Hands []jsonHand `json:"hands"`
		Nose  *jsonPoint `json:"nose"`
	}
	if err := json.Unmarshal([]byte(line), &response); err != nil {
		return Detection{}, fmt.Errorf("parse response: %w", err)
	}

	var det Detection
	for _, h := range response.Hands {
		det.Hands = append(det.Hands, h.toHand())
	}
	if response.Nose != nil {
		det.Nose = &geo.Point{X: response.Nose.X, Y: response.Nose.Y}
	}

	if d.config.DrawOverlay {
		drawOverlay(frame, det)
	}

	d.lastUsed = time.Now()
	d.resetIdleTimer()

	return det, nil
}

// Close shuts down the Python process.
func (d *MediaPipeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shutdown()
}

func (d *MediaPipeDetector) ensureStarted() error {
	if d.started {
		return nil
	}

	scriptPath := findMediaPipeScript()
	if scriptPath == "" {
		return fmt.Errorf("mediapipe_service.py not found")
	}

	// Use virtual environment Python if available
	pythonPath := findVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	d.cmd = exec.Command(pythonPath, scriptPath, "--mode", string(d.config.Mode))

	stdin, err := d.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}

	stdout, err := d.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	// Capture stderr for debugging
	d.cmd.Stderr = os.Stderr

	if err := d.cmd.Start(); err != nil {
		return fmt.Errorf("start mediapipe service: %w", err)
	}

	d.stdin = stdin
	d.stdout = bufio.NewReader(stdout)
	d.started = true
	d.lastUsed = time.Now()

	return nil
}

func (d *MediaPipeDetector) shutdown() error {
	if !d.started {
		return nil
	}

	if d.idleTimer != nil {
		d.idleTimer.Stop()
		d.idleTimer = nil
	}

	if d.stdin != nil {
		d.stdin.Close()
	}

	err := d.cmd.Wait()
	d.started = false
	d.cmd = nil
	d.stdin = nil
	d.stdout = nil

	return err
}

func (d *MediaPipeDetector) resetIdleTimer() {
	if d.idleTimer != nil {
		d.idleTimer.Stop()
	}
	d.idleTimer = time.AfterFunc(30*time.Second, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.shutdown()
	})
}

// drawOverlay marks detected landmarks on the frame for the camera overlay
// shown next to each game. The markers are cosmetic only.
func drawOverlay(frame *gocv.Mat, det Detection) {
	fingertipColor := color.RGBA{R: 255, A: 255}
	noseColor := color.RGBA{R: 255, A: 255}
	outline := color.RGBA{A: 255}

	for i := range det.Hands {
		for _, tip := range det.Hands[i].Fingertips() {
			gocv.Circle(frame, image.Pt(int(tip.X), int(tip.Y)), 8, fingertipColor, -1)
		}
	}
	if det.Nose != nil {
		center := image.Pt(int(det.Nose.X), int(det.Nose.Y))
		gocv.Circle(frame, center, 10, noseColor, -1)
		gocv.Circle(frame, center, 12, outline, 2)
	}
}

func findMediaPipeScript() string {
	// Get executable directory
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"scripts/mediapipe_service.py",
		"../scripts/mediapipe_service.py",
		filepath.Join(execDir, "scripts/mediapipe_service.py"),
		filepath.Join(os.Getenv("HOME"), ".lmbox/scripts/mediapipe_service.py"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}

// findVenvPython looks for a Python interpreter in a virtual environment.
// It checks for venv/bin/python relative to the project directory.
func findVenvPython() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execDir := filepath.Dir(execPath)

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		"../../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".lmbox/venv/bin/python"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}

// jsonHand represents the JSON structure from the Python service.
type jsonHand struct {
	Side     string      `json:"side"`
	Tips     []jsonPoint `json:"tips"`
	Extended []bool      `json:"extended"`
	Score    float64     `json:"score"`
}

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (h jsonHand) toHand() Hand {
	hand := Hand{
		Side:  Side(h.Side),
		Score: h.Score,
	}

	for i := 0; i < NumFingers && i < len(h.Tips); i++ {
		hand.Tips[i] = geo.Point{X: h.Tips[i].X, Y: h.Tips[i].Y}
	}
	for i := 0; i < NumFingers && i < len(h.Extended); i++ {
		hand.Extended[i] = h.Extended[i]
	}

	return hand
}
