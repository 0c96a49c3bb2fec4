package incident

import "time"

type ImpactCounts struct {
	Minor    int `json:"minor"`
	Major    int `json:"major"`
	Critical int `json:"critical"`
}

// CountByImpact tallies incidents per impact severity. Callers pass the
// incidents already filtered to the reporting window by start time.
func CountByImpact(incidents []Incident) ImpactCounts {
	var counts ImpactCounts
	for _, inc := range incidents {
		switch inc.Impact {
		case ImpactMinor:
			counts.Minor++
		case ImpactMajor:
			counts.Major++
		case ImpactCritical:
			counts.Critical++
		}
	}
	return counts
}

// MTTRReport distinguishes "no incidents resolved" from a zero-duration
// mean: HasData false means there is nothing to average, not that
// resolution was instant.
type MTTRReport struct {
	Mean          time.Duration
	ResolvedCount int
	HasData       bool
}

// MeanTimeToResolution averages resolved_at - started_at over the resolved
// incidents in the slice. Open incidents contribute nothing.
func MeanTimeToResolution(incidents []Incident) MTTRReport {
	var sum time.Duration
	var n int

	for _, inc := range incidents {
		if !inc.Resolved() {
			continue
		}
		sum += inc.ResolvedAt.Sub(inc.StartedAt)
		n++
	}

	if n == 0 {
		return MTTRReport{}
	}

	return MTTRReport{
		Mean:          sum / time.Duration(n),
		ResolvedCount: n,
		HasData:       true,
	}
}
