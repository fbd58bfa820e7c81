// Package duration converts between signed (seconds, nanoseconds) pairs as
// they appear on the wire and canonical non-negative durations.
package duration

import (
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/durationpb"
)

const nanosPerSecond = 1_000_000_000

var (
	ErrNegative   = errors.New("negative duration")
	ErrOutOfRange = errors.New("duration out of range")
)

// Signed is a wire duration. Nanos may lie outside (-1e9, 1e9) until the pair
// is normalized.
type Signed struct {
	Seconds int64
	Nanos   int32
}

// Canonical is a non-negative duration with Nanos in [0, 1e9).
type Canonical struct {
	Seconds uint64
	Nanos   uint32
}

// NegativeError reports a signed pair that normalizes below zero. It carries
// the components as they were given.
type NegativeError struct {
	Seconds int64
	Nanos   int32
}

func (e *NegativeError) Error() string {
	return fmt.Sprintf("duration %ds %dns is negative", e.Seconds, e.Nanos)
}

func (e *NegativeError) Is(target error) bool {
	return target == ErrNegative
}

// RangeError reports a canonical duration that does not fit a signed pair.
type RangeError struct {
	Seconds uint64
	Nanos   uint32
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("duration %ds %dns does not fit a signed duration", e.Seconds, e.Nanos)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// Normalize folds whole seconds out of Nanos, then borrows a second when the
// remaining nanoseconds are negative.
func Normalize(s Signed) (Canonical, error) {
	negative := &NegativeError{Seconds: s.Seconds, Nanos: s.Nanos}

	carry := int64(s.Nanos) / nanosPerSecond
	nanos := int64(s.Nanos) - carry*nanosPerSecond
	if (carry > 0 && s.Seconds > math.MaxInt64-carry) || (carry < 0 && s.Seconds < math.MinInt64-carry) {
		if carry < 0 {
			return Canonical{}, negative
		}
		// a positive overflow still fits the unsigned seconds field
		return borrow(uint64(s.Seconds)+uint64(carry), nanos, negative)
	}
	seconds := s.Seconds + carry
	if seconds < 0 {
		return Canonical{}, negative
	}
	return borrow(uint64(seconds), nanos, negative)
}

func borrow(seconds uint64, nanos int64, negative *NegativeError) (Canonical, error) {
	if nanos < 0 {
		if seconds < 1 {
			return Canonical{}, negative
		}
		seconds--
		nanos += nanosPerSecond
	}
	return Canonical{Seconds: seconds, Nanos: uint32(nanos)}, nil
}

// Signed converts back to the wire form. It fails when either component is
// too large for its signed field.
func (c Canonical) Signed() (Signed, error) {
	if c.Seconds > math.MaxInt64 || c.Nanos > math.MaxInt32 {
		return Signed{}, &RangeError{Seconds: c.Seconds, Nanos: c.Nanos}
	}
	return Signed{Seconds: int64(c.Seconds), Nanos: int32(c.Nanos)}, nil
}

// FromProto normalizes a protobuf Duration. A nil Duration is zero.
func FromProto(d *durationpb.Duration) (Canonical, error) {
	return Normalize(Signed{Seconds: d.GetSeconds(), Nanos: d.GetNanos()})
}

// Proto converts to a protobuf Duration.
func (c Canonical) Proto() (*durationpb.Duration, error) {
	s, err := c.Signed()
	if err != nil {
		return nil, err
	}
	return &durationpb.Duration{Seconds: s.Seconds, Nanos: s.Nanos}, nil
}

// Std converts to a time.Duration, failing past roughly 292 years.
func (c Canonical) Std() (time.Duration, error) {
	const maxSeconds = math.MaxInt64 / nanosPerSecond
	if c.Seconds > maxSeconds {
		return 0, &RangeError{Seconds: c.Seconds, Nanos: c.Nanos}
	}
	d := time.Duration(c.Seconds) * time.Second
	if d > math.MaxInt64-time.Duration(c.Nanos) {
		return 0, &RangeError{Seconds: c.Seconds, Nanos: c.Nanos}
	}
	return d + time.Duration(c.Nanos), nil
}

func (c Canonical) String() string {
	if d, err := c.Std(); err == nil {
		return d.String()
	}
	return fmt.Sprintf("%d.%09ds", c.Seconds, c.Nanos)
}
