package calculator

import "errors"

// ErrNoValues is returned by the tail statistics when given an empty series.
var ErrNoValues = errors.New("no values provided")

// TailMean computes the mean of the last n values. When fewer than n values
// exist, the full-series mean is used instead, the way the screen's 20-day
// volume average is defined for short histories.
func TailMean(values []float64, n int) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoValues
	}
	start := len(values) - n
	if start < 0 {
		start = 0
	}
	sum := 0.0
	for _, v := range values[start:] {
		sum += v
	}
	return sum / float64(len(values)-start), nil
}

// TailMax returns the maximum of the last n values, or of the whole series
// when fewer exist.
func TailMax(values []float64, n int) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoValues
	}
	start := len(values) - n
	if start < 0 {
		start = 0
	}
	max := values[start]
	for _, v := range values[start+1:] {
		if v > max {
			max = v
		}
	}
	return max, nil
}

// PercentChange returns the percent change of the last value versus the one
// before it. With fewer than 2 values it returns 0; under a positive change
// threshold that amounts to a reject, which is the intended fallback.
func PercentChange(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	prev := values[len(values)-2]
	if prev == 0 {
		return 0
	}
	return (values[len(values)-1]/prev - 1.0) * 100.0
}
