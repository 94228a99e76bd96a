package ethereum

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer holds the key used to sign staking contract transactions
type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewSigner parses a hex encoded secp256k1 private key, with or without 0x prefix
func NewSigner(privateKeyHex string) (*Signer, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return NewSignerFromKey(key), nil
}

// NewSignerFromKey wraps an existing private key
func NewSignerFromKey(key *ecdsa.PrivateKey) *Signer {
	return &Signer{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// Address returns the account address of the signer
func (s *Signer) Address() common.Address {
	return s.address
}

// Sign signs tx for the given chain
func (s *Signer) Sign(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return signed, nil
}
