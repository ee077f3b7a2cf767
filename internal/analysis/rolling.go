package analysis

// CenteredRollingMean returns the mean of each full window of the given size
// centered on every index. For even windows the extra element falls before
// the center: with window 12, index i averages values[i-6 : i+6]. Positions
// without a full window report ok=false.
func CenteredRollingMean(values []float64, window int) (means []float64, ok []bool) {
	n := len(values)
	means = make([]float64, n)
	ok = make([]bool, n)
	if window < 1 || n < window {
		return means, ok
	}

	after := (window - 1) / 2
	before := window - 1 - after

	var sum float64
	for i := 0; i < window; i++ {
		sum += values[i]
	}

	// i is the center of the window starting at start.
	for start := 0; ; start++ {
		i := start + before
		means[i] = sum / float64(window)
		ok[i] = true

		end := start + window
		if end >= n {
			break
		}
		sum += values[end] - values[start]
	}
	return means, ok
}
