package events

import "sort"

func pairKey(ev IntersectionEvent) (uint32, uint32) {
	if ev.L1.ID < ev.L2.ID {
		return ev.L1.ID, ev.L2.ID
	}
	return ev.L2.ID, ev.L1.ID
}

func sortEvents(evs []IntersectionEvent) {
	sort.Slice(evs, func(i, j int) bool {
		aMin, aMax := pairKey(evs[i])
		bMin, bMax := pairKey(evs[j])
		if aMin != bMin {
			return aMin < bMin
		}
		return aMax < bMax
	})
}
