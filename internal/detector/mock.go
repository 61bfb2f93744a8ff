package detector

import (
	"gocv.io/x/gocv"

	"github.com/Samspei01/LM-BOX-5/internal/geo"
)

// MockDetector is a test implementation of the Detector interface.
// It plays back a scripted sequence of detections, one per Detect call,
// repeating the last entry once the script is exhausted.
type MockDetector struct {
	script []Detection
	index  int
	err    error
	calls  int
	closed bool
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetDetections sets the detection script returned by successive Detect calls.
func (m *MockDetector) SetDetections(script ...Detection) {
	m.script = script
	m.index = 0
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Detect returns the next scripted detection or the configured error.
func (m *MockDetector) Detect(frame *gocv.Mat) (Detection, error) {
	m.calls++
	if m.err != nil {
		return Detection{}, m.err
	}
	if len(m.script) == 0 {
		return Detection{}, nil
	}

	det := m.script[m.index]
	if m.index < len(m.script)-1 {
		m.index++
	}
	return det, nil
}

// Close marks the mock detector closed.
func (m *MockDetector) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (m *MockDetector) Closed() bool {
	return m.closed
}

// OpenHandAt returns a preset Hand with all five fingers extended,
// fingertips clustered around the given center point.
func OpenHandAt(side Side, center geo.Point) Hand {
	offsets := [NumFingers]geo.Point{
		{X: -40, Y: 10},
		{X: -15, Y: -25},
		{X: 0, Y: -30},
		{X: 15, Y: -25},
		{X: 35, Y: -10},
	}

	hand := Hand{Side: side, Score: 0.95}
	for i := 0; i < NumFingers; i++ {
		hand.Tips[i] = geo.Point{X: center.X + offsets[i].X, Y: center.Y + offsets[i].Y}
		hand.Extended[i] = true
	}
	return hand
}

// PointingHandAt returns a preset Hand with only the index finger
// extended at the given point.
func PointingHandAt(side Side, tip geo.Point) Hand {
	hand := Hand{Side: side, Score: 0.95}
	hand.Tips[Index] = tip
	hand.Extended[Index] = true
	return hand
}

// NoseAt returns a pose Detection with the nose at the given point.
func NoseAt(p geo.Point) Detection {
	nose := p
	return Detection{Nose: &nose}
}

// HandsAt returns a hand-tracking Detection holding the given hands.
func HandsAt(hands ...Hand) Detection {
	return Detection{Hands: hands}
}
