package engine

import "math"

// ExponentialAverage returns the running exponentially weighted moving
// average of values with the given span, without bias adjustment: the first
// value seeds the accumulator, every later value blends in with weight
// 2/(span+1). Each position counts as exactly one step; calendar distance
// between the underlying days is deliberately ignored.
func ExponentialAverage(values []float64, span int) []float64 {
	if len(values) == 0 {
		return nil
	}

	alpha := 2.0 / (float64(span) + 1.0)
	averaged := make([]float64, len(values))

	acc := values[0]
	averaged[0] = acc
	for i := 1; i < len(values); i++ {
		acc = acc + (values[i]-acc)*alpha
		averaged[i] = acc
	}
	return averaged
}

func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := 0.0
	for _, value := range values {
		mean += value
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, value := range values {
		variance += (value - mean) * (value - mean)
	}
	variance /= float64(len(values) - 1)

	return math.Sqrt(variance)
}

func roundedInt(value float64) int {
	return int(math.Round(value))
}
