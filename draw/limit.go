package draw

// Limited wraps a driver and runs dry after a fixed number of draws.
type Limited struct {
	d    Driver
	left int
}

// Limit returns a driver that forwards at most n draws to d.
func Limit(d Driver, n int) *Limited {
	return &Limited{d: d, left: n}
}

// Left returns how many draws are still allowed.
func (l *Limited) Left() int {
	return l.left
}

func (l *Limited) Uint64(lo, hi uint64) (uint64, error) {
	if l.left <= 0 {
		return 0, ErrExhausted
	}
	l.left--
	return l.d.Uint64(lo, hi)
}

func (l *Limited) Bool() (bool, error) {
	if l.left <= 0 {
		return false, ErrExhausted
	}
	l.left--
	return l.d.Bool()
}
