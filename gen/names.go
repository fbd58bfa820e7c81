package gen

import (
	"strconv"

	"github.com/Mmx233/gwfixture/draw"
)

const (
	IfNameMaxLen    = 16
	K8sObjectMaxLen = 63

	ifNameStemMaxLen = IfNameMaxLen - 8
)

// IfName draws a Linux interface name.
func IfName(d draw.Driver) (string, error) {
	return FromChars(d, IfNameChars, draw.Included(1), draw.Included(IfNameMaxLen))
}

// IfNames draws count interface names that are pairwise distinct: each is a
// letter-only stem followed by its own index.
func IfNames(d draw.Driver, count int) ([]string, error) {
	names := make([]string, 0, count)
	for i := range count {
		stem, err := FromChars(d, ifNameStemChars, draw.Included(1), draw.Included(ifNameStemMaxLen))
		if err != nil {
			return nil, err
		}
		names = append(names, stem+strconv.Itoa(i))
	}
	return names, nil
}

// K8sObjectName draws a DNS-1123 label usable as a Kubernetes object name.
func K8sObjectName(d draw.Driver) (string, error) {
	n, err := draw.Int(d, draw.Included(2), draw.Included(K8sObjectMaxLen))
	if err != nil {
		return "", err
	}
	first, err := FromChars(d, K8sEndChars, draw.Included(1), draw.Included(1))
	if err != nil {
		return "", err
	}
	middle, err := FromChars(d, K8sOtherChars, draw.Included(n-2), draw.Included(n-2))
	if err != nil {
		return "", err
	}
	last, err := FromChars(d, K8sEndChars, draw.Included(1), draw.Included(1))
	if err != nil {
		return "", err
	}
	return first + middle + last, nil
}
