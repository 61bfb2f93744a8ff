// Package detector provides landmark detection interfaces and types for the
// LM Box mini-games. A detector consumes camera frames and reports hand
// fingertip positions or a face nose point in frame-pixel coordinates.
package detector

import "github.com/Samspei01/LM-BOX-5/internal/geo"

// Side labels which hand a detection belongs to.
type Side string

const (
	// SideLeft is the player's left hand.
	SideLeft Side = "left"
	// SideRight is the player's right hand.
	SideRight Side = "right"
)

// Fingertip indices within a Hand.
const (
	Thumb = iota
	Index
	Middle
	Ring
	Pinky
	NumFingers
)

// Hand holds the fingertip positions of one detected hand in frame-pixel
// space. A fingertip only counts when the finger is extended; curled
// fingers keep their slot with Extended[i] == false and an undefined Tip.
type Hand struct {
	Side     Side                  `json:"side"`
	Tips     [NumFingers]geo.Point `json:"tips"`
	Extended [NumFingers]bool      `json:"extended"`
	Score    float64               `json:"score"`
}

// Fingertips returns the positions of the extended fingertips only.
func (h *Hand) Fingertips() []geo.Point {
	var tips []geo.Point
	for i := 0; i < NumFingers; i++ {
		if h.Extended[i] {
			tips = append(tips, h.Tips[i])
		}
	}
	return tips
}

// Center returns the centroid of the extended fingertips. The second
// return value is false when no finger is extended.
func (h *Hand) Center() (geo.Point, bool) {
	tips := h.Fingertips()
	if len(tips) == 0 {
		return geo.Point{}, false
	}

	var c geo.Point
	for _, p := range tips {
		c.X += p.X
		c.Y += p.Y
	}
	c.X /= float64(len(tips))
	c.Y /= float64(len(tips))
	return c, true
}

// Detection is the per-frame result of a detector. Zero hands and a nil
// nose mean "nothing detected this frame"; that is a normal outcome, not
// an error.
type Detection struct {
	Hands []Hand     `json:"hands"`
	Nose  *geo.Point `json:"nose,omitempty"`
}

// Empty reports whether nothing was detected.
func (d Detection) Empty() bool {
	return len(d.Hands) == 0 && d.Nose == nil
}

// Hand returns the detected hand with the given side label, or nil.
func (d Detection) Hand(side Side) *Hand {
	for i := range d.Hands {
		if d.Hands[i].Side == side {
			return &d.Hands[i]
		}
	}
	return nil
}
