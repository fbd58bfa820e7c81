package draw

import "bytes"

// Recorder forwards draws to another driver and keeps an encoding of every
// value handed out. Feeding Replay() to NewBytes reproduces the same values,
// which is how failing fixtures are saved into a regression corpus.
type Recorder struct {
	d     Driver
	buf   []byte
	draws int
}

// NewRecorder wraps d.
func NewRecorder(d Driver) *Recorder {
	return &Recorder{d: d}
}

func (r *Recorder) Uint64(lo, hi uint64) (uint64, error) {
	v, err := r.d.Uint64(lo, hi)
	if err != nil {
		return 0, err
	}
	r.draws++
	span := hi - lo
	if span == 0 {
		return v, nil
	}
	off := v - lo
	for i := spanBytes(span) - 1; i >= 0; i-- {
		r.buf = append(r.buf, byte(off>>(8*i)))
	}
	return v, nil
}

func (r *Recorder) Bool() (bool, error) {
	v, err := r.d.Bool()
	if err != nil {
		return false, err
	}
	r.draws++
	if v {
		r.buf = append(r.buf, 1)
	} else {
		r.buf = append(r.buf, 0)
	}
	return v, nil
}

// Draws returns the number of successful draws recorded.
func (r *Recorder) Draws() int {
	return r.draws
}

// Replay returns a copy of the recorded byte stream.
func (r *Recorder) Replay() []byte {
	return bytes.Clone(r.buf)
}
