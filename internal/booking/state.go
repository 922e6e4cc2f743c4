package booking

import (
	"time"

	"github.com/Masterminds/squirrel"
)

// State is the listing filter over bookings: either a temporal
// classification relative to now (CURRENT, PAST, FUTURE) or a status match
// (WAITING, REJECTED). ALL is the unfiltered set.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState matches s against the closed state set. Matching is exact and
// case-sensitive; anything else is a bad request.
func ParseState(s string) (State, error) {
	switch State(s) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(s), nil
	default:
		return "", ErrUnknownState
	}
}

// Predicate returns the filter for the bookings table (alias "b") at instant
// now. Both the by-booker and by-owner listings share these descriptors.
// ALL returns nil, meaning no filter.
func (s State) Predicate(now time.Time) squirrel.Sqlizer {
	switch s {
	case StateCurrent:
		return squirrel.And{
			squirrel.LtOrEq{"b.start_time": now},
			squirrel.GtOrEq{"b.end_time": now},
		}
	case StatePast:
		return squirrel.Lt{"b.end_time": now}
	case StateFuture:
		return squirrel.Gt{"b.start_time": now}
	case StateWaiting:
		return squirrel.Eq{"b.status": StatusWaiting}
	case StateRejected:
		return squirrel.Eq{"b.status": StatusRejected}
	default:
		return nil
	}
}
