package gen

import (
	"github.com/Mmx233/gwfixture/draw"
)

// Tier is one piece of a piecewise distribution. Weight is the share of the
// [0, 100] weight draw it covers; values come uniformly from [Lo, Hi].
type Tier struct {
	Weight uint8
	Lo, Hi uint64
}

// RestartTiers concentrates restart counters at low values with a thin tail.
var RestartTiers = []Tier{
	{Weight: 81, Lo: 0, Hi: 5},
	{Weight: 15, Lo: 6, Hi: 50},
	{Weight: 5, Lo: 51, Hi: 1000},
}

// Skewed draws a weight in [0, 100] and then a value from the first tier
// whose cumulative weight covers it. Weights past the last tier fall into the
// last tier.
func Skewed(d draw.Driver, tiers []Tier) (uint64, error) {
	if len(tiers) == 0 {
		return 0, draw.ErrEmptyRange
	}
	w, err := draw.Uint(d, draw.Included[uint8](0), draw.Included[uint8](100))
	if err != nil {
		return 0, err
	}
	tier := tiers[len(tiers)-1]
	var acc uint
	for _, t := range tiers {
		acc += uint(t.Weight)
		if uint(w) < acc {
			tier = t
			break
		}
	}
	return draw.Uint(d, draw.Included(tier.Lo), draw.Included(tier.Hi))
}
