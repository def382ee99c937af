package physics

import "github.com/yohamta/donburi"

// MatchEither looks both entities of a pair up and returns the first one that
// matches together with the other entity of the pair.
func MatchEither[T any](ev Event, lookup func(donburi.Entity) (T, bool)) (match T, matched, other donburi.Entity, ok bool) {
	if v, found := lookup(ev.A); found {
		return v, ev.A, ev.B, true
	}
	if v, found := lookup(ev.B); found {
		return v, ev.B, ev.A, true
	}
	var (
		zero T
		none donburi.Entity
	)
	return zero, none, none, false
}

// PairEquals reports whether the event is about exactly the entities a and b,
// in either order.
func PairEquals(ev Event, a, b donburi.Entity) bool {
	return (ev.A == a && ev.B == b) || (ev.A == b && ev.B == a)
}
