// Package gplace implements the quadratic wire-length optimizer
// (B2B/anchor builders, §4.B-4.D) and the top-level placement loop
// (§4.J), grounded directly on
// original_source/dali/placer/global_placer/hpwl_optimizer.cc and
// global_placer.cc.
package gplace

import "math"

// seriesConverge reports whether the last windowSize values of data
// agree within tolerance, per §4.A: "max/min - 1 over the last k
// values is below a relative tolerance".
func seriesConverge(data []float64, windowSize int, tolerance float64) bool {
	sz := len(data)
	if sz < windowSize {
		return false
	}
	maxVal, minVal := math.Inf(-1), math.Inf(1)
	for i := 0; i < windowSize; i++ {
		v := data[sz-1-i]
		maxVal = math.Max(maxVal, v)
		minVal = math.Min(minVal, v)
	}
	if maxVal < 1e-10 && minVal <= 1e-10 {
		return true
	}
	ratio := maxVal/minVal - 1
	return ratio < tolerance
}

// seriesOscillate reports whether the last windowSize-1 monotonicity
// flags of data strictly alternate, per §4.A.
func seriesOscillate(data []float64, windowSize int) bool {
	if windowSize < 3 {
		return false
	}
	sz := len(data)
	if sz < windowSize {
		return false
	}
	trend := make([]bool, windowSize-1)
	for i := 0; i < windowSize-1; i++ {
		trend[i] = data[sz-1-i] > data[sz-2-i]
	}
	// reverse in place to match chronological order
	for i, j := 0, len(trend)-1; i < j; i, j = i+1, j-1 {
		trend[i], trend[j] = trend[j], trend[i]
	}
	for i := 0; i < len(trend)-1; i++ {
		if trend[i] == trend[i+1] {
			return false
		}
	}
	return true
}
