package staking

import (
	"context"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/feral-file/ff-staking-api/internal/domain"
	"github.com/feral-file/ff-staking-api/internal/logger"
	"github.com/feral-file/ff-staking-api/internal/providers/ethereum"
)

// OwnershipReader lists the NFTs currently held by an address
//
//go:generate mockgen -source=ownership.go -destination=../mocks/ownership_reader.go -package=mocks -mock_names=OwnershipReader=MockOwnershipReader
type OwnershipReader interface {
	// GetNFTsByAddress returns every token owned by address with its tier and multiplier
	GetNFTsByAddress(ctx context.Context, address string) ([]domain.NFTOwnership, error)
}

type ownershipReader struct {
	contract ethereum.EthereumClient
}

// NewOwnershipReader creates a reader backed by the NFT contract
func NewOwnershipReader(contract ethereum.EthereumClient) OwnershipReader {
	return &ownershipReader{contract: contract}
}

// GetNFTsByAddress returns every token owned by address with its tier and multiplier.
// Reads are issued one at a time; any failure discards the partial list.
func (r *ownershipReader) GetNFTsByAddress(ctx context.Context, address string) ([]domain.NFTOwnership, error) {
	balance, err := r.contract.BalanceOf(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance of %s: %w", address, err)
	}

	logger.DebugCtx(ctx, "Reading owned NFTs",
		zap.String("address", address),
		zap.String("balance", balance.String()),
	)

	nfts := make([]domain.NFTOwnership, 0)
	for i := big.NewInt(0); i.Cmp(balance) < 0; i = new(big.Int).Add(i, big.NewInt(1)) {
		tokenID, err := r.contract.TokenOfOwnerByIndex(ctx, address, i)
		if err != nil {
			return nil, fmt.Errorf("failed to get token at index %s: %w", i.String(), err)
		}

		tier, err := r.contract.GetTier(ctx, tokenID)
		if err != nil {
			return nil, fmt.Errorf("failed to get tier of token %s: %w", tokenID.String(), err)
		}

		nfts = append(nfts, domain.NFTOwnership{
			TokenID:    tokenID.String(),
			Tier:       tier.String(),
			Multiplier: MultiplierForTier(tier.String()),
		})
	}

	return nfts, nil
}
