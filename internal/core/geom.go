// Package core provides fundamental types and utilities for the whispers platform.
// It contains no external dependencies (especially no Bubble Tea) to keep story
// logic pure and testable.
package core

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Percent converts a value in [0, max] to a ratio in [0, 1].
// Returns 0 when max is not positive.
func Percent(val, max int) float64 {
	if max <= 0 {
		return 0
	}
	return ClampF(float64(val)/float64(max), 0, 1)
}
