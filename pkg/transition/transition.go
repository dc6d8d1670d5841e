// Package transition models the rise/fall closed enumeration used
// throughout pathspice: a signal transition is always one of two kinds,
// and several tables (slew thresholds, PWL rail ordering) are indexed
// directly by its integer position.
package transition

// RiseFall is a rise or fall transition. The zero value is Rise, matching
// the liberty convention that rise sorts before fall.
type RiseFall int

const (
	Rise RiseFall = 0
	Fall RiseFall = 1
)

func (tr RiseFall) String() string {
	if tr == Rise {
		return "rise"
	}
	return "fall"
}

// Spice returns the token SPICE .measure TR=/TD= clauses use.
func (tr RiseFall) Spice() string {
	if tr == Rise {
		return "RISE"
	}
	return "FALL"
}

// Opposite returns the other transition.
func (tr RiseFall) Opposite() RiseFall {
	if tr == Rise {
		return Fall
	}
	return Rise
}

// Index returns 0 for Rise and 1 for Fall, for indexing fixed-arity
// per-edge arrays (e.g. per-transition slew thresholds).
func (tr RiseFall) Index() int { return int(tr) }

// All enumerates both transitions in rise-then-fall order, matching the
// package-level range array in the original rise/fall singleton.
var All = [2]RiseFall{Rise, Fall}
