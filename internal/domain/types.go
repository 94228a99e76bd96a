package domain

import (
	"fmt"
	"math/big"
	"strings"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

// ChainBSCTestnet is the network the staking contract is deployed on
const ChainBSCTestnet Chain = "eip155:97"

// IsValidChain checks if a chain is a well-formed EVM CAIP-2 identifier
func IsValidChain(chain Chain) bool {
	_, err := chain.ChainID()
	return err == nil
}

// ChainID returns the numeric EIP-155 chain id encoded in the CAIP-2 reference
func (c Chain) ChainID() (*big.Int, error) {
	namespace, reference, ok := strings.Cut(string(c), ":")
	if !ok || namespace != "eip155" {
		return nil, fmt.Errorf("unsupported chain: %s", c)
	}

	id, ok := new(big.Int).SetString(reference, 10)
	if !ok || id.Sign() <= 0 {
		return nil, fmt.Errorf("invalid chain reference: %s", c)
	}

	return id, nil
}

// TokenStatus is the staking state of a token derived from transaction history
type TokenStatus string

const (
	TokenStatusUnstaked TokenStatus = "unstaked"
	TokenStatusStaked   TokenStatus = "staked"
	TokenStatusRented   TokenStatus = "rented"
)

// Action is a staking contract call recognised in transaction history
type Action string

const (
	ActionStake   Action = "stake"
	ActionUnstake Action = "unstake"
	ActionRent    Action = "rent"
)

// StakeEvent is one stake or unstake entry of a token's stake history.
// Duration is only set on unstake events that close a known stake.
type StakeEvent struct {
	Action          Action `json:"action"`
	Timestamp       int64  `json:"timestamp"`
	Duration        *int64 `json:"duration,omitempty"`
	TransactionHash string `json:"transactionHash"`
}

// RentEvent is one entry of a token's rent history
type RentEvent struct {
	Action          Action `json:"action"`
	Timestamp       int64  `json:"timestamp"`
	TransactionHash string `json:"transactionHash"`
}

// TokenRecord is the staking state of a single token rebuilt from the
// sender's transactions against the staking contract. Timestamps are unix milliseconds.
type TokenRecord struct {
	TokenID          *big.Int     `json:"tokenId"`
	Status           TokenStatus  `json:"status"`
	StakeHistory     []StakeEvent `json:"stakeHistory"`
	RentHistory      []RentEvent  `json:"rentHistory"`
	CurrentStakeTime *int64       `json:"currentStakeTime"`
	CurrentRentTime  *int64       `json:"currentRentTime"`
	LastAction       *Action      `json:"lastAction"`
}

// NewTokenRecord returns a fresh unstaked record with empty histories
func NewTokenRecord(tokenID *big.Int) *TokenRecord {
	return &TokenRecord{
		TokenID:      tokenID,
		Status:       TokenStatusUnstaked,
		StakeHistory: []StakeEvent{},
		RentHistory:  []RentEvent{},
	}
}

// NFTOwnership is a token currently held by an address together with its tier
type NFTOwnership struct {
	TokenID    string `json:"tokenId"`
	Tier       string `json:"tier"`
	Multiplier int    `json:"multiplier"`
}

// NFTDetail is a token record enriched with ownership data.
// Tier, Multiplier and CurrentRewards are nil when the token is no longer owned.
type NFTDetail struct {
	TokenRecord
	Tier           *string  `json:"tier,omitempty"`
	Multiplier     *int     `json:"multiplier,omitempty"`
	CurrentRewards *float64 `json:"currentRewards,omitempty"`
}

// StakingStats summarises ownership and staking state for an address
type StakingStats struct {
	TotalNFTs  int         `json:"totalNFTs"`
	StakedNFTs int         `json:"stakedNFTs"`
	RentedNFTs int         `json:"rentedNFTs"`
	NFTDetails []NFTDetail `json:"nftDetails"`
}

// TransactionResult is the outcome of a mined staking contract transaction
type TransactionResult struct {
	TransactionHash string `json:"transactionHash"`
	BlockNumber     uint64 `json:"blockNumber"`
	Status          uint64 `json:"status"`
}

// SameAddress reports whether two addresses are equal ignoring case
func SameAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}
