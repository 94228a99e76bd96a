package staking

import (
	"strconv"
	"strings"
)

// DefaultMultiplier applies to every tier outside the table
const DefaultMultiplier = 3

// MultiplierForTier maps a tier code to its reward multiplier
func MultiplierForTier(tier string) int {
	code, err := strconv.Atoi(strings.TrimSpace(tier))
	if err != nil {
		return DefaultMultiplier
	}

	switch code {
	case 1:
		return 4
	case 2:
		return 5
	case 3:
		return 6
	default:
		return DefaultMultiplier
	}
}
