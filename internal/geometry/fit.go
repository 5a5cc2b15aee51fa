// Package geometry reconciles a source size with a requested target size.
//
// Resolve is a pure function: given the source dimensions, a target box and a
// FitMode it returns a Layout describing how large the source must be rendered
// and where it sits on the output canvas. No pixels are touched here.
//
// # Rounding
//
// Derived dimensions are rounded half away from zero. Padding is split evenly
// with integer division, so when the free space is odd both sides receive the
// truncated half and the canvas keeps its exact target size; the leftover
// pixel ends up on the right or bottom edge in the background color.
package geometry

import (
	"fmt"
	"math"
)

// FitMode is the policy used to reconcile source and target aspect ratios.
type FitMode string

const (
	// Contain scales the source to fit inside the target, preserving ratio.
	Contain FitMode = "contain"
	// Max behaves like Contain but never enlarges the source.
	Max FitMode = "max"
	// Fill behaves like Contain and pads the free space up to the target.
	Fill FitMode = "fill"
	// Stretch renders at exactly the target size, ignoring ratio.
	Stretch FitMode = "stretch"
	// Crop covers the target and cuts the overflowing axis.
	Crop FitMode = "crop"
)

// Modes lists every supported FitMode in declaration order.
var Modes = []FitMode{Contain, Max, Fill, Stretch, Crop}

// String returns the string representation of the FitMode.
func (m FitMode) String() string {
	return string(m)
}

// Valid reports whether m is one of the supported modes.
func (m FitMode) Valid() bool {
	for _, candidate := range Modes {
		if m == candidate {
			return true
		}
	}
	return false
}

// ParseFitMode converts a name such as "contain" into a FitMode.
func ParseFitMode(s string) (FitMode, error) {
	m := FitMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown fit mode %q", s)
	}
	return m, nil
}

// Padding is the background margin on each side of the rendered source.
type Padding struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// IsZero reports whether no side is padded.
func (p Padding) IsZero() bool {
	return p == Padding{}
}

// Layout is the result of Resolve.
type Layout struct {
	// Width and Height are the size the source is resampled to.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Padding is non-zero only for Fill.
	Padding Padding `json:"padding"`

	// CanvasWidth and CanvasHeight are the final output size.
	CanvasWidth  int `json:"canvas_width"`
	CanvasHeight int `json:"canvas_height"`

	// OffsetX and OffsetY place the rendered source on the canvas. They are
	// negative when the render overflows the canvas (Crop).
	OffsetX int `json:"offset_x"`
	OffsetY int `json:"offset_y"`
}

// NeedsCanvas reports whether the render does not map 1:1 onto the output
// and must be composited onto a separate canvas.
func (l Layout) NeedsCanvas() bool {
	return l.Width != l.CanvasWidth || l.Height != l.CanvasHeight
}

// Resolve computes the layout for rendering a srcW x srcH source into the
// target box using mode. A target dimension <= 0 is treated as unset and
// derived from the other one using the source ratio; in that case the target
// ratio equals the source ratio and no padding or overflow can occur. When
// both are unset the source size is kept.
func Resolve(srcW, srcH int, targetW, targetH float64, mode FitMode) Layout {
	if srcW <= 0 || srcH <= 0 {
		return Layout{}
	}
	if targetW <= 0 && targetH <= 0 {
		return exact(srcW, srcH)
	}

	ratio := float64(srcW) / float64(srcH)
	var targetRatio float64
	switch {
	case targetH <= 0:
		targetH = round(targetW / ratio)
		targetRatio = ratio
	case targetW <= 0:
		targetW = round(targetH * ratio)
		targetRatio = ratio
	default:
		targetRatio = targetW / targetH
	}

	w, h := round(targetW), round(targetH)

	switch mode {
	case Contain:
		return exact(contain(ratio, targetRatio, w, h))

	case Max:
		if w < float64(srcW) || h < float64(srcH) {
			return exact(contain(ratio, targetRatio, w, h))
		}
		return exact(srcW, srcH)

	case Fill:
		innerW, innerH := contain(ratio, targetRatio, w, h)
		w, h = float64(atLeastOne(w)), float64(atLeastOne(h))
		padX := (int(w) - innerW) / 2
		padY := (int(h) - innerH) / 2
		return Layout{
			Width:        innerW,
			Height:       innerH,
			Padding:      Padding{Left: padX, Right: padX, Top: padY, Bottom: padY},
			CanvasWidth:  int(w),
			CanvasHeight: int(h),
			OffsetX:      padX,
			OffsetY:      padY,
		}

	case Stretch:
		return exact(int(w), int(h))

	case Crop:
		// The axis whose ratio exceeds the target's overflows and is cut
		// evenly from both sides.
		w, h = float64(atLeastOne(w)), float64(atLeastOne(h))
		renderW, renderH := int(w), int(h)
		switch {
		case ratio > targetRatio:
			renderW = int(round(h * ratio))
		case ratio < targetRatio:
			renderH = int(round(w / ratio))
		}
		return Layout{
			Width:        renderW,
			Height:       renderH,
			CanvasWidth:  int(w),
			CanvasHeight: int(h),
			OffsetX:      -((renderW - int(w)) / 2),
			OffsetY:      -((renderH - int(h)) / 2),
		}
	}

	return exact(srcW, srcH)
}

// contain shrinks the axis that would overflow so the source fits the box.
func contain(ratio, targetRatio, w, h float64) (int, int) {
	if ratio < targetRatio {
		return atLeastOne(round(h * ratio)), atLeastOne(h)
	}
	return atLeastOne(w), atLeastOne(round(w / ratio))
}

func exact(w, h int) Layout {
	w, h = atLeastOne(float64(w)), atLeastOne(float64(h))
	return Layout{Width: w, Height: h, CanvasWidth: w, CanvasHeight: h}
}

// atLeastOne keeps degenerate ratios from producing an empty raster.
func atLeastOne(v float64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}

func round(v float64) float64 {
	return math.Round(v)
}
