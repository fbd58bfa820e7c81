// Package gen holds the building blocks fixture generators are made of:
// bounded strings, enum and choice selection, network addresses, the unique
// block and host-address allocators, skewed counters and map helpers.
//
// Every function takes a draw.Driver and either returns a complete value or
// the driver's error. Nothing here logs or keeps state between calls.
package gen

import (
	"strings"

	"github.com/Mmx233/gwfixture/draw"
)

const (
	AlphaNumeric  = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	IfNameChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_"
	K8sEndChars   = "abcdefghijklmnopqrstuvwxyz0123456789"
	K8sOtherChars = "abcdefghijklmnopqrstuvwxyz0123456789-"

	// ifNameStemChars leaves out digits so a stem followed by a decimal
	// index always splits back into the same pair.
	ifNameStemChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_"
)

// FromChars draws a length between minLen and maxLen, then draws every
// character independently from alphabet. alphabet must be ASCII.
func FromChars(d draw.Driver, alphabet string, minLen, maxLen draw.Bound[int]) (string, error) {
	n, err := draw.Int(d, minLen, maxLen)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(n)
	for range n {
		i, err := draw.Index(d, len(alphabet))
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[i])
	}
	return b.String(), nil
}

// Choose picks one of the precomputed choices.
func Choose[T any](d draw.Driver, choices []T) (T, error) {
	var zero T
	i, err := draw.Index(d, len(choices))
	if err != nil {
		return zero, err
	}
	return choices[i], nil
}

// Enum selects a variant uniformly from a fixed ordered list, so the result
// always lies inside the declared range of the enum.
func Enum[T any](d draw.Driver, variants []T) (T, error) {
	var zero T
	i, err := draw.Int(d, draw.Included(0), draw.Included(len(variants)-1))
	if err != nil {
		return zero, err
	}
	return variants[i], nil
}
