// Package events implements the EventSink from spec §4.5: an ordered,
// append-only sequence of intersection events plus a collision counter,
// with a reducer monoid so parallel workers can each own a private view and
// merge deterministically at join (spec §5, §9).
package events

import "github.com/segcollide/sim/geom"

// Kind distinguishes how two lines' swept parallelograms met (spec §3).
type Kind int

const (
	// NoIntersection is the PairTester's "nothing happened" result; it is
	// never stored in an IntersectionEvent, only returned by the tester.
	NoIntersection Kind = iota
	// L1TouchesL2 means l1's endpoint first entered l2's swept region.
	L1TouchesL2
	// L2TouchesL1 means l2's endpoint first reached l1's segment.
	L2TouchesL1
	// LineCross means the two segments crossed transversally.
	LineCross
)

func (k Kind) String() string {
	switch k {
	case NoIntersection:
		return "NO_INTERSECTION"
	case L1TouchesL2:
		return "L1_TOUCHES_L2"
	case L2TouchesL1:
		return "L2_TOUCHES_L1"
	case LineCross:
		return "LINE_CROSS"
	default:
		return "UNKNOWN"
	}
}

// IntersectionEvent is the outcome of one successful PairTester call. L1.ID
// < L2.ID always holds (spec §3).
type IntersectionEvent struct {
	L1, L2 *geom.Line
	Kind   Kind
}

// Sink is anything that can accumulate IntersectionEvents. *View and each
// per-worker view handed out by *ParallelSink both satisfy it.
type Sink interface {
	Push(IntersectionEvent)
}

// View is a sequential, append-only sink: the identity element of the
// reducer monoid described in spec §9.
type View struct {
	events []IntersectionEvent
	count  int64
}

// NewView returns an empty View (the monoid identity).
func NewView() *View {
	return &View{}
}

// Push appends ev and increments the collision counter.
func (v *View) Push(ev IntersectionEvent) {
	v.events = append(v.events, ev)
	v.count++
}

// Len returns the number of events currently held.
func (v *View) Len() int {
	return len(v.events)
}

// Count returns the collision counter, tracked independently of Len so it
// stays meaningful even if a future event kind corresponds to more than one
// collision.
func (v *View) Count() int64 {
	return v.count
}

// Drain returns and clears the accumulated events.
func (v *View) Drain() []IntersectionEvent {
	out := v.events
	v.events = nil
	return out
}

// Events returns the accumulated events without clearing them.
func (v *View) Events() []IntersectionEvent {
	return v.events
}

// Concat merges b's events after a's, and adds their counters — the
// reducer's binary operation. It is associative, so merging many workers'
// views gives the same result however the merges are grouped; the counter
// and the event set also do not depend on the order of the views, while the
// order of events follows the order in which the views are concatenated
// (spec §5).
func Concat(a, b *View) *View {
	out := &View{
		events: make([]IntersectionEvent, 0, len(a.events)+len(b.events)),
		count:  a.count + b.count,
	}
	out.events = append(out.events, a.events...)
	out.events = append(out.events, b.events...)
	return out
}

// MergeAll folds Concat over a sequence of per-worker views, in the given
// order. It is the identity View when given zero views.
func MergeAll(views []*View) *View {
	out := NewView()
	for _, v := range views {
		if v == nil {
			continue
		}
		out = Concat(out, v)
	}
	return out
}

// SortByPair sorts events by (min(ID), max(ID)) so independently-produced
// event sets compare equal regardless of worker count or scheduling order
// (spec §5 "order... is NOT guaranteed... unless a post-sort is applied").
func SortByPair(evs []IntersectionEvent) {
	sortEvents(evs)
}
