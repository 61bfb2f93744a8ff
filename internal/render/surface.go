// Package render defines the write-only drawing surface and sound-cue
// interfaces the mini-games draw through. Real window and audio backends
// are external collaborators; the core never creates its own window.
package render

import (
	"image"
	"image/color"

	"github.com/Samspei01/LM-BOX-5/internal/geo"
)

// Anchor positions text relative to its point.
type Anchor int

const (
	// AnchorTopLeft places the text's top-left corner at the point.
	AnchorTopLeft Anchor = iota
	// AnchorCenter centers the text on the point.
	AnchorCenter
)

// Surface accepts draw commands for one frame, terminated by Present.
// The games treat it as write-only; all commands use play-field
// coordinates.
type Surface interface {
	// Size returns the drawable area in pixels.
	Size() (w, h float64)

	// Blit draws an image into the destination rectangle, scaling to fit.
	Blit(img image.Image, dst geo.Rect)

	// FillRect fills a rectangle with a solid color.
	FillRect(r geo.Rect, c color.RGBA)

	// StrokeRect outlines a rectangle.
	StrokeRect(r geo.Rect, c color.RGBA, width float64)

	// FillCircle fills a circle centered at p.
	FillCircle(p geo.Point, radius float64, c color.RGBA)

	// Text draws a string at p with the given size and anchor.
	Text(s string, p geo.Point, size float64, c color.RGBA, anchor Anchor)

	// Present flips the completed frame to the display.
	Present()
}

// Cues plays short sound effects by name. Asset loading and mixing are
// external; a missing cue is silently ignored.
type Cues interface {
	Play(name string)
}

// NopCues is a Cues implementation that plays nothing.
type NopCues struct{}

// Play implements Cues.
func (NopCues) Play(string) {}
