package draw

import (
	"math"
	"math/bits"
)

// Bytes replays a byte buffer as a draw source, typically the input of a
// native fuzz target. Each draw consumes only as many bytes as its range
// needs; once the buffer is empty every draw returns ErrExhausted.
type Bytes struct {
	data []byte
}

// NewBytes returns a driver reading from data. The slice is not copied.
func NewBytes(data []byte) *Bytes {
	return &Bytes{data: data}
}

// Remaining returns the number of unread bytes.
func (b *Bytes) Remaining() int {
	return len(b.data)
}

func (b *Bytes) Uint64(lo, hi uint64) (uint64, error) {
	span := hi - lo
	if span == 0 {
		return lo, nil
	}
	n := spanBytes(span)
	if len(b.data) < n {
		b.data = nil
		return 0, ErrExhausted
	}
	var v uint64
	for _, c := range b.data[:n] {
		v = v<<8 | uint64(c)
	}
	b.data = b.data[n:]
	if span == math.MaxUint64 {
		return v, nil
	}
	return lo + v%(span+1), nil
}

func (b *Bytes) Bool() (bool, error) {
	if len(b.data) == 0 {
		return false, ErrExhausted
	}
	c := b.data[0]
	b.data = b.data[1:]
	return c&1 == 1, nil
}

// spanBytes is the number of big-endian bytes needed to cover span.
func spanBytes(span uint64) int {
	return (bits.Len64(span) + 7) / 8
}
