package bounds

import "fmt"

// interval is an inclusive [low, high] integer range, one node of the
// "covered-interval list" spec §4.3 and §9 describe for integer
// case-statement analysis.
type interval struct {
	low, high int64
}

func (iv interval) String() string {
	if iv.low == iv.high {
		return fmt.Sprintf("%d", iv.low)
	}
	return fmt.Sprintf("%d to %d", iv.low, iv.high)
}

// intervalList is a sorted, non-adjacent, non-overlapping list of
// intervals (spec §9: "any sorted-interval structure with O(n)
// insertion-with-merge suffices"). The zero value is an empty list.
type intervalList struct {
	items []interval
}

// insert adds [low, high], coalescing it with any adjacent or
// overlapping existing interval (spec §4.3: "high == new.low-1 extends
// leftward, low == old.high+1 extends rightward"). It reports the first
// already-covered segment it found, for a duplicate-coverage diagnostic;
// the insert still proceeds (the union is recorded either way).
func (l *intervalList) insert(low, high int64) (overlap interval, hadOverlap bool) {
	for _, it := range l.items {
		lo, hi := max64(low, it.low), min64(high, it.high)
		if lo <= hi && !hadOverlap {
			overlap, hadOverlap = interval{lo, hi}, true
		}
	}

	merged := interval{low, high}
	result := make([]interval, 0, len(l.items)+1)
	inserted := false
	for _, it := range l.items {
		switch {
		case it.high < merged.low-1:
			result = append(result, it)
		case it.low > merged.high+1:
			if !inserted {
				result = append(result, merged)
				inserted = true
			}
			result = append(result, it)
		default:
			if it.low < merged.low {
				merged.low = it.low
			}
			if it.high > merged.high {
				merged.high = it.high
			}
		}
	}
	if !inserted {
		result = append(result, merged)
	}
	l.items = result
	return overlap, hadOverlap
}

// missing returns the gaps in [tlow, thigh] not covered by l, in
// ascending order.
func (l *intervalList) missing(tlow, thigh int64) []interval {
	var gaps []interval
	cur := tlow
	for _, it := range l.items {
		if it.low > thigh {
			break
		}
		if it.high < cur {
			continue
		}
		if it.low > cur {
			end := it.low - 1
			if end > thigh {
				end = thigh
			}
			gaps = append(gaps, interval{cur, end})
		}
		if it.high+1 > cur {
			cur = it.high + 1
		}
	}
	if cur <= thigh {
		gaps = append(gaps, interval{cur, thigh})
	}
	return gaps
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
