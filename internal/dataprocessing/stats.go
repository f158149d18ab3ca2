package dataprocessing

import (
	"math"
	"slices"
)

// mean returns the arithmetic mean of x, or NaN for an empty slice
func mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// sampleStd returns the standard deviation with n-1 degrees of freedom,
// or NaN when fewer than two values are given.
func sampleStd(x []float64) float64 {
	if len(x) < 2 {
		return math.NaN()
	}
	m := mean(x)
	ss := 0.0
	for _, v := range x {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(x)-1))
}

// quantile returns the q-th quantile of sorted using linear interpolation
// between closest ranks. sorted must be in ascending order.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi || sorted[lo] == sorted[hi] {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// describe holds the describe-style statistics of a numeric sample
type describe struct {
	count                         int
	mean, std, min, q25, q50, q75 float64
	max                           float64
}

func describeValues(values []float64) describe {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	d := describe{
		count: len(sorted),
		mean:  mean(sorted),
		std:   sampleStd(sorted),
		min:   math.NaN(),
		max:   math.NaN(),
		q25:   quantile(sorted, 0.25),
		q50:   quantile(sorted, 0.50),
		q75:   quantile(sorted, 0.75),
	}
	if len(sorted) > 0 {
		d.min = sorted[0]
		d.max = sorted[len(sorted)-1]
	}
	return d
}
