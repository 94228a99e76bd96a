package executor

import (
	"context"
	"math/big"

	"go.uber.org/zap"

	"github.com/feral-file/ff-staking-api/internal/domain"
	"github.com/feral-file/ff-staking-api/internal/logger"
	"github.com/feral-file/ff-staking-api/internal/providers/ethereum"
	"github.com/feral-file/ff-staking-api/internal/staking"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// GetStakingStats returns ownership joined with staking history for an address
	GetStakingStats(ctx context.Context, address string) (*domain.StakingStats, error)

	// GetNFTs returns the NFTs currently owned by an address
	GetNFTs(ctx context.Context, address string) ([]domain.NFTOwnership, error)

	// GetTransactionHistory returns the per-token staking history of an address
	GetTransactionHistory(ctx context.Context, address string) ([]domain.TokenRecord, error)

	// StakePass stakes a token with the configured signer
	StakePass(ctx context.Context, tokenID *big.Int) (*domain.TransactionResult, error)

	// UnstakePass unstakes a token with the configured signer
	UnstakePass(ctx context.Context, tokenID *big.Int) (*domain.TransactionResult, error)

	// RentPass rents a token with the configured signer
	RentPass(ctx context.Context, tokenID *big.Int) (*domain.TransactionResult, error)
}

type executor struct {
	stats     staking.StatsAggregator
	ownership staking.OwnershipReader
	history   staking.HistoryReader
	contract  ethereum.EthereumClient
}

func NewExecutor(stats staking.StatsAggregator, ownership staking.OwnershipReader, history staking.HistoryReader, contract ethereum.EthereumClient) Executor {
	return &executor{
		stats:     stats,
		ownership: ownership,
		history:   history,
		contract:  contract,
	}
}

func (e *executor) GetStakingStats(ctx context.Context, address string) (*domain.StakingStats, error) {
	return e.stats.CalculateStakingStats(ctx, address)
}

func (e *executor) GetNFTs(ctx context.Context, address string) ([]domain.NFTOwnership, error) {
	return e.ownership.GetNFTsByAddress(ctx, address)
}

func (e *executor) GetTransactionHistory(ctx context.Context, address string) ([]domain.TokenRecord, error) {
	return e.history.GetTransactionHistory(ctx, address)
}

func (e *executor) StakePass(ctx context.Context, tokenID *big.Int) (*domain.TransactionResult, error) {
	logger.InfoCtx(ctx, "Staking pass", zap.String("token_id", tokenID.String()))
	return e.contract.StakePass(ctx, tokenID)
}

func (e *executor) UnstakePass(ctx context.Context, tokenID *big.Int) (*domain.TransactionResult, error) {
	logger.InfoCtx(ctx, "Unstaking pass", zap.String("token_id", tokenID.String()))
	return e.contract.UnstakePass(ctx, tokenID)
}

func (e *executor) RentPass(ctx context.Context, tokenID *big.Int) (*domain.TransactionResult, error) {
	logger.InfoCtx(ctx, "Renting pass", zap.String("token_id", tokenID.String()))
	return e.contract.RentPass(ctx, tokenID)
}
