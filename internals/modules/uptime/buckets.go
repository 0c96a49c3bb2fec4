package uptime

import (
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// Bucketize produces one DailyStatusBucket per calendar day of
// [windowStart, windowEnd), with days cut in loc. A day overlapped by more
// than one status takes the worst one present, so a two-hour outage marks
// the whole day even when the weighted percentage stays high. Days with no
// covering interval (window clipped to component creation) default to
// operational.
func Bucketize(intervals []StatusInterval, windowStart, windowEnd time.Time, loc *time.Location) []DailyStatusBucket {
	if loc == nil {
		loc = time.UTC
	}
	if !windowEnd.After(windowStart) {
		return nil
	}

	var out []DailyStatusBucket

	day := startOfDay(windowStart.In(loc))
	for day.Before(windowEnd) {
		next := day.AddDate(0, 0, 1)

		status := StatusOperational
		for _, iv := range intervals {
			if iv.Start.Before(next) && iv.End.After(day) {
				status = WorstStatus(status, iv.Status)
			}
		}

		out = append(out, DailyStatusBucket{
			Date:   day.Format(dateLayout),
			Status: status,
		})
		day = next
	}

	return out
}

// MergeDailyWorst folds per-component day series into one rollup, keeping
// the worst status reported for each date across all series.
func MergeDailyWorst(series ...[]DailyStatusBucket) []DailyStatusBucket {
	merged := make(map[string]Status)

	for _, s := range series {
		for _, b := range s {
			if cur, ok := merged[b.Date]; ok {
				merged[b.Date] = WorstStatus(cur, b.Status)
			} else {
				merged[b.Date] = b.Status
			}
		}
	}

	dates := make([]string, 0, len(merged))
	for d := range merged {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]DailyStatusBucket, 0, len(dates))
	for _, d := range dates {
		out = append(out, DailyStatusBucket{Date: d, Status: merged[d]})
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
