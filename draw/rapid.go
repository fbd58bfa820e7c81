package draw

import "pgregory.net/rapid"

// Rapid adapts a rapid property-test state into a Driver, so generators run
// under rapid's search and shrinking. It never returns ErrExhausted; rapid
// aborts the test case itself when its input runs out.
type Rapid struct {
	t *rapid.T
}

// NewRapid wraps t.
func NewRapid(t *rapid.T) *Rapid {
	return &Rapid{t: t}
}

func (r *Rapid) Uint64(lo, hi uint64) (uint64, error) {
	return rapid.Uint64Range(lo, hi).Draw(r.t, "u64"), nil
}

func (r *Rapid) Bool() (bool, error) {
	return rapid.Bool().Draw(r.t, "bool"), nil
}
