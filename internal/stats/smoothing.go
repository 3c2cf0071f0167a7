package stats

// MovingAverage returns the trailing simple moving average. When the window
// is larger than the series (or not positive) the input is returned as is.
func MovingAverage(xs []float64, window int) []float64 {
	if window < 1 || len(xs) < window {
		return xs
	}
	out := make([]float64, 0, len(xs)-window+1)
	var sum float64
	for i, x := range xs {
		sum += x
		if i >= window {
			sum -= xs[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out
}

// ExponentialMovingAverage uses alpha = 2/(span+1), seeded with the first value.
func ExponentialMovingAverage(xs []float64, span int) []float64 {
	if len(xs) == 0 {
		return []float64{}
	}
	if span < 1 {
		span = 1
	}
	alpha := 2 / (float64(span) + 1)
	out := make([]float64, len(xs))
	out[0] = xs[0]
	for i := 1; i < len(xs); i++ {
		out[i] = alpha*xs[i] + (1-alpha)*out[i-1]
	}
	return out
}
