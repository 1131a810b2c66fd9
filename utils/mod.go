package utils

import "math"

// Round rounds half away from zero and converts to int, matching how army
// estimates are rounded everywhere in the planners.
func Round(x float64) int {
	return int(math.Round(x))
}

// Abs returns the absolute value of an int.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
