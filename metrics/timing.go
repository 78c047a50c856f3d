package metrics

import "sort"

// percentileNanos returns the p-th percentile (0 <= p <= 1) of samples,
// nanosecond durations, using linear interpolation between closest ranks —
// the same estimator rcrowley/go-metrics' own Histogram.Percentile uses.
// samples is sorted in place; callers that still need the original order
// should pass a copy.
func percentileNanos(samples []int64, p float64) int64 {
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })

	if len(samples) == 1 {
		return samples[0]
	}

	pos := p * float64(len(samples)-1)
	lower := int(pos)
	if lower+1 >= len(samples) {
		return samples[len(samples)-1]
	}
	frac := pos - float64(lower)
	return samples[lower] + int64(frac*float64(samples[lower+1]-samples[lower]))
}

func meanNanos(samples []int64) (mean int64) {
	for _, s := range samples {
		mean += s
	}
	return mean / int64(len(samples))
}
