package gplace

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_series_converge(tst *testing.T) {
	chk.PrintTitle("series_converge. flat tail within tolerance converges")
	data := []float64{100, 50, 10.01, 10.00, 9.99}
	if !seriesConverge(data, 3, 0.01) {
		tst.Errorf("expected convergence on a near-flat tail")
	}
	if seriesConverge(data, 3, 1e-6) {
		tst.Errorf("expected non-convergence under a tight tolerance")
	}
}

func Test_series_converge_short_history(tst *testing.T) {
	chk.PrintTitle("series_converge. insufficient history never converges")
	if seriesConverge([]float64{1, 2}, 3, 1) {
		tst.Errorf("expected false when history shorter than the window")
	}
}

func Test_series_oscillate(tst *testing.T) {
	chk.PrintTitle("series_oscillate. strictly alternating trend is detected")
	data := []float64{10, 12, 9, 13, 8}
	if !seriesOscillate(data, 5) {
		tst.Errorf("expected oscillation on a strictly alternating series")
	}
}

func Test_series_not_oscillate_monotone(tst *testing.T) {
	chk.PrintTitle("series_oscillate. monotone series is not flagged as oscillating")
	data := []float64{20, 15, 12, 10, 9}
	if seriesOscillate(data, 5) {
		tst.Errorf("expected no oscillation on a monotone-decreasing series")
	}
}

func Test_anchor_alpha_schedule(tst *testing.T) {
	chk.PrintTitle("anchor_alpha_step. schedule matches the configured breakpoints")
	chk.Scalar(tst, "iter=0", 1e-12, anchorAlphaStep(0), 0.005)
	chk.Scalar(tst, "iter=5", 1e-12, anchorAlphaStep(5), 0.01)
	chk.Scalar(tst, "iter=10", 1e-12, anchorAlphaStep(10), 0.02)
	chk.Scalar(tst, "iter=15", 1e-12, anchorAlphaStep(15), 0.03)
}
