package migration

import (
	"math"
	"strconv"
)

// DefaultPrefixSuffix is appended to the alias to form the default index prefix
const DefaultPrefixSuffix = "__v"

// DefaultPrefix returns the index prefix used when none is configured
func DefaultPrefix(alias string) string {
	return alias + DefaultPrefixSuffix
}

// IndexName returns the index name of a generation: the prefix followed by the
// decimal version without padding
func IndexName(prefix string, version int) string {
	return prefix + strconv.Itoa(version)
}

// ParseGeneration extracts the generation number from an index name.
// The name must be the prefix followed by nothing but a positive decimal number
// written without leading zeros, so that IndexName(prefix, v) round-trips.
//
// Prefixes of different aliases must not be prefixes of each other: the
// prefix "logs" reads "logs12" as generation 12 even when that index was
// created under the prefix "logs1".
func ParseGeneration(prefix, indexName string) (int, bool) {
	if len(indexName) <= len(prefix) || indexName[:len(prefix)] != prefix {
		return 0, false
	}

	digits := indexName[len(prefix):]
	if digits[0] == '0' {
		return 0, false
	}

	version := 0
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		d := int(c - '0')
		if version > (math.MaxInt-d)/10 {
			return 0, false
		}
		version = version*10 + d
	}
	return version, true
}
