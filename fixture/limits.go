package fixture

import "math"

const (
	minInt64  = math.MinInt64
	maxInt64  = math.MaxInt64
	maxUint32 = math.MaxUint32

	maxInterfaceStatuses = 8
	bytesPerPacket       = 64
)
