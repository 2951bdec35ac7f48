package pricehistory

import "math"

// roundHalfUp rounds .5 towards positive infinity, so -6.5 becomes -6.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
