package render

import (
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/Samspei01/LM-BOX-5/internal/geo"
)

// Command records one draw call issued to a Recorder.
type Command struct {
	Op     string
	Rect   geo.Rect
	Point  geo.Point
	Radius float64
	Text   string
}

// Recorder is a Surface test double that records every draw command.
type Recorder struct {
	W, H float64

	mu       sync.Mutex
	commands []Command
	presents int
}

// NewRecorder creates a Recorder with the given drawable size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

func (r *Recorder) Blit(img image.Image, dst geo.Rect) {
	r.record(Command{Op: "blit", Rect: dst})
}

func (r *Recorder) FillRect(rect geo.Rect, c color.RGBA) {
	r.record(Command{Op: "fillrect", Rect: rect})
}

func (r *Recorder) StrokeRect(rect geo.Rect, c color.RGBA, width float64) {
	r.record(Command{Op: "strokerect", Rect: rect})
}

func (r *Recorder) FillCircle(p geo.Point, radius float64, c color.RGBA) {
	r.record(Command{Op: "circle", Point: p, Radius: radius})
}

func (r *Recorder) Text(s string, p geo.Point, size float64, c color.RGBA, anchor Anchor) {
	r.record(Command{Op: "text", Point: p, Text: s})
}

func (r *Recorder) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presents++
}

func (r *Recorder) record(c Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, c)
}

// Commands returns a copy of all recorded draw commands.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Command(nil), r.commands...)
}

// Presents returns how many frames were presented.
func (r *Recorder) Presents() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presents
}

// TextsContaining returns every recorded text command containing substr.
func (r *Recorder) TextsContaining(substr string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string
	for _, c := range r.commands {
		if c.Op == "text" && strings.Contains(c.Text, substr) {
			out = append(out, c.Text)
		}
	}
	return out
}

// Reset clears recorded commands between frames.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = nil
}

// CueRecorder is a Cues test double recording played cue names.
type CueRecorder struct {
	mu    sync.Mutex
	names []string
}

// Play implements Cues.
func (c *CueRecorder) Play(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = append(c.names, name)
}

// Played returns a copy of the cue names played so far.
func (c *CueRecorder) Played() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.names...)
}

// Count returns how many times the named cue was played.
func (c *CueRecorder) Count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, got := range c.names {
		if got == name {
			n++
		}
	}
	return n
}
