package uptime

import "time"

// Reconstruct turns the discrete event log of a component into contiguous
// status intervals covering [windowStart, windowEnd) exactly, clipped to the
// component's creation time.
//
// events must contain every event of the component with OccurredAt before
// windowEnd, ordered ascending by OccurredAt (ties by insertion id). The
// status prevailing before the first recorded event is genesis; a component
// with no events at all holds its current status for the whole window.
// Events exactly at windowStart open an interval there, events at windowEnd
// are excluded by the half-open convention.
func Reconstruct(events []StatusChangeEvent, meta ComponentMeta, genesis Status, windowStart, windowEnd time.Time) []StatusInterval {
	if !windowEnd.After(windowStart) {
		return nil
	}

	// A window that starts before the component existed must be clipped,
	// never extrapolated backwards.
	if meta.CreatedAt.After(windowStart) {
		windowStart = meta.CreatedAt
	}
	if !windowEnd.After(windowStart) {
		return nil
	}

	if len(events) == 0 {
		return []StatusInterval{{
			ComponentID: meta.ID,
			Status:      meta.CurrentStatus,
			Start:       windowStart,
			End:         windowEnd,
		}}
	}

	// Events at or before windowStart only determine the entering status.
	cur := genesis
	i := 0
	for ; i < len(events); i++ {
		if events[i].OccurredAt.After(windowStart) {
			break
		}
		cur = events[i].NewStatus
	}

	var out []StatusInterval
	curStart := windowStart

	for ; i < len(events); i++ {
		ev := events[i]
		if !ev.OccurredAt.Before(windowEnd) {
			break
		}
		if ev.NewStatus == cur {
			// snapshot or redundant transition, the span stays maximal
			continue
		}
		if ev.OccurredAt.After(curStart) {
			out = append(out, StatusInterval{
				ComponentID: meta.ID,
				Status:      cur,
				Start:       curStart,
				End:         ev.OccurredAt,
			})
			curStart = ev.OccurredAt
		}
		cur = ev.NewStatus
	}

	out = append(out, StatusInterval{
		ComponentID: meta.ID,
		Status:      cur,
		Start:       curStart,
		End:         windowEnd,
	})

	return out
}
