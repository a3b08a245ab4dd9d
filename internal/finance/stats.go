package finance

import (
	"math"
	"slices"
)

// PercentageChange is the relative change from before to after in percent.
// From zero, any increase counts as 100%.
func PercentageChange(before, after float64) float64 {
	if before == 0 {
		if after > 0 {
			return 100
		}
		return 0
	}
	return (after - before) / before * 100
}

func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// StandardDeviation is the population standard deviation.
func StandardDeviation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	avg := Average(values)
	var sq float64
	for _, v := range values {
		sq += (v - avg) * (v - avg)
	}
	return math.Sqrt(sq / float64(len(values)))
}
