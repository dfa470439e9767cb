package filter

import "math"

// sigmaExtent is how many standard deviations a Gaussian is considered to
// reach before its contribution is negligible.
const sigmaExtent = 3

// BlurOutset returns the distance a Gaussian blur of the given sigma
// spreads content. Non-positive or NaN sigmas do not spread.
func BlurOutset(sigma float64) float64 {
	if !(sigma > 0) {
		return 0
	}
	return sigmaExtent * sigma
}

// KernelRadius returns the integer pixel radius of a discrete kernel for
// sigma, rounded up so the kernel never truncates the outset.
func KernelRadius(sigma float64) int {
	return int(math.Ceil(BlurOutset(sigma)))
}
