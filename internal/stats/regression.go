package stats

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LinearRegression returns the least-squares slope of the points.
func LinearRegression(points []Point) float64 {
	n := float64(len(points))
	if len(points) < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
		sumXY += p.X * p.Y
		sumXX += p.X * p.X
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// Trend is the regression slope of the series against its index.
func Trend(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	points := make([]Point, len(xs))
	for i, y := range xs {
		points[i] = Point{X: float64(i), Y: y}
	}
	return LinearRegression(points)
}

// LinearTrend computes the same slope with a centred index, which keeps the
// sums small for long series.
func LinearTrend(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	meanX := float64(n-1) / 2
	meanY := Average(xs)
	var num, den float64
	for i, y := range xs {
		dx := float64(i) - meanX
		num += dx * (y - meanY)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// R2 is the coefficient of determination of predicted against actual.
func R2(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) < 2 {
		return 0
	}
	mean := Average(actual)
	var ssRes, ssTot float64
	for i, a := range actual {
		ssRes += (a - predicted[i]) * (a - predicted[i])
		ssTot += (a - mean) * (a - mean)
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

// Autocorrelation at the given lag, 0 when the series is too short or flat.
func Autocorrelation(xs []float64, lag int) float64 {
	n := len(xs)
	if lag < 0 || n <= lag {
		return 0
	}
	mean := Average(xs)
	var num, den float64
	for i, x := range xs {
		den += (x - mean) * (x - mean)
		if i+lag < n {
			num += (x - mean) * (xs[i+lag] - mean)
		}
	}
	if den == 0 {
		return 0
	}
	return num / den
}
