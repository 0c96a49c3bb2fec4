package uptime

import "math"

// Aggregate reduces intervals to an uptime percentage in [0, 100] under the
// given policy, rounded to two decimals. An empty or zero-duration set of
// intervals means no observable time, which counts as full uptime rather
// than a division error.
func Aggregate(intervals []StatusInterval, policy WeightPolicy) float64 {
	var total, credit float64

	for _, iv := range intervals {
		d := iv.Duration().Seconds()
		if d <= 0 {
			continue
		}
		total += d
		credit += d * policy.weightFor(iv.Status)
	}

	if total == 0 {
		return 100.0
	}

	return round2(credit / total * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
