package scoring

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a list of scores
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Median float64
	Min    float64
	Max    float64
}

// Summarize computes descriptive statistics of scores. The standard
// deviation is the sample deviation and is zero for fewer than two scores.
func Summarize(scores []int) Summary {
	if len(scores) == 0 {
		return Summary{}
	}

	x := make([]float64, len(scores))
	for i, s := range scores {
		x[i] = float64(s)
	}
	sort.Float64s(x)

	summary := Summary{
		Count: len(x),
		Min:   floats.Min(x),
		Max:   floats.Max(x),
	}

	if len(x) > 1 {
		summary.Mean, summary.StdDev = stat.MeanStdDev(x, nil)
	} else {
		summary.Mean = x[0]
	}

	mid := len(x) / 2
	if len(x)%2 == 1 {
		summary.Median = x[mid]
	} else {
		summary.Median = (x[mid-1] + x[mid]) / 2
	}

	return summary
}
