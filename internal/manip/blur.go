package manip

import "math"

// BlurMinWidth is the smallest width the blur will scale down to.
const BlurMinWidth = 10

// BlurPasses returns the number of gaussian passes for an intensity: 1 at 0,
// 11 at 100.
func BlurPasses(intensity int) int {
	return intensity/10 + 1
}

// BlurScaleFactor returns the downscale factor for an intensity, from 0.75 at
// 0 to 0.25 at 100.
func BlurScaleFactor(intensity int) float64 {
	return (75 - float64(intensity)/2) / 100
}

// PlanBlur expands a Blur of the given intensity on a raster sourceWidth
// pixels wide into primitive operations. Blurring a shrunken copy and scaling
// it back trades resolution for speed; the pass counts and smoothing weights
// are fixed so the output is reproducible.
func PlanBlur(intensity, sourceWidth int) Chain {
	reduced := math.Max(BlurMinWidth, math.Round(float64(sourceWidth)*BlurScaleFactor(intensity)))

	return Chain{
		Scale{Mode: FitContain, Width: reduced},
		Filter{Method: FilterGaussianBlur, Iterations: BlurPasses(intensity)},
		Filter{Method: FilterSmooth, Args: []int{101 - intensity}, Iterations: 1},
		Scale{Mode: FitContain, Width: float64(sourceWidth)},
		Filter{Method: FilterSmooth, Args: []int{1}, Iterations: 1},
		Filter{Method: FilterSmooth, Args: []int{1}, Iterations: 1},
	}
}
