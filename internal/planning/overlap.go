package planning

import (
	"sort"
	"time"
)

// Overlap reports two plan items booked over the same minutes of one day.
type Overlap struct {
	First  Item
	Second Item
}

// DetectOverlaps identifies pairs of items whose [start, end) intervals
// intersect on the same calendar day. The generated plan is expected to be
// overlap-free; callers surface any hits as warnings rather than failing.
func DetectOverlaps(items []Item) []Overlap {
	if len(items) <= 1 {
		return nil
	}

	ordered := make([]Item, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start.Before(ordered[j].Start)
	})

	var overlaps []Overlap
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if !sameDay(ordered[i].Start, ordered[j].Start) {
				continue
			}
			if !ordered[j].Start.Before(ordered[i].End()) {
				break
			}
			overlaps = append(overlaps, Overlap{First: ordered[i], Second: ordered[j]})
		}
	}
	return overlaps
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
