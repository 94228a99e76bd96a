package staking

import (
	"math/big"
	"strings"

	"github.com/feral-file/ff-staking-api/internal/domain"
)

// selectorLength is the length of a method selector in hex including the 0x prefix
const selectorLength = 10

// Method selectors of the staking contract
const (
	SelectorStake   = "0xa422b640"
	SelectorUnstake = "0x52b23c3d"
	SelectorRent    = "0x9e9c4f3e"
)

var selectorActions = map[string]domain.Action{
	SelectorStake:   domain.ActionStake,
	SelectorUnstake: domain.ActionUnstake,
	SelectorRent:    domain.ActionRent,
}

// DecodedCall is a staking contract call recognised from transaction input
type DecodedCall struct {
	Action  domain.Action
	TokenID *big.Int
}

// DecodeCall classifies transaction input by its selector and reads the token id
// as the big-endian integer formed by the rest of the payload. The boolean is false
// for unknown selectors and malformed input, which callers ignore.
func DecodeCall(input string) (DecodedCall, bool) {
	if len(input) <= selectorLength {
		return DecodedCall{}, false
	}

	action, ok := selectorActions[strings.ToLower(input[:selectorLength])]
	if !ok {
		return DecodedCall{}, false
	}

	tokenID, ok := parseHexUint(input[selectorLength:])
	if !ok {
		return DecodedCall{}, false
	}

	return DecodedCall{Action: action, TokenID: tokenID}, true
}

// parseHexUint parses an unprefixed, unsigned hex string of any length
func parseHexUint(payload string) (*big.Int, bool) {
	if payload[0] == '+' || payload[0] == '-' {
		return nil, false
	}
	return new(big.Int).SetString(payload, 16)
}
