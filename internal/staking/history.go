package staking

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-staking-api/internal/domain"
	"github.com/feral-file/ff-staking-api/internal/logger"
	"github.com/feral-file/ff-staking-api/internal/providers/explorer"
)

// HistoryReader rebuilds per-token staking state from transaction history
//
//go:generate mockgen -source=history.go -destination=../mocks/history_reader.go -package=mocks -mock_names=HistoryReader=MockHistoryReader
type HistoryReader interface {
	// GetTransactionHistory returns one record per token the address has staked, unstaked or rented
	GetTransactionHistory(ctx context.Context, address string) ([]domain.TokenRecord, error)
}

type historyReader struct {
	explorer       explorer.Client
	stakingAddress string
}

// NewHistoryReader creates a reader over the staking contract's transaction list
func NewHistoryReader(explorerClient explorer.Client, stakingAddress string) HistoryReader {
	return &historyReader{
		explorer:       explorerClient,
		stakingAddress: stakingAddress,
	}
}

// GetTransactionHistory returns one record per token the address has staked, unstaked or rented
func (r *historyReader) GetTransactionHistory(ctx context.Context, address string) ([]domain.TokenRecord, error) {
	txs, err := r.explorer.ListTransactions(ctx, r.stakingAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to list staking transactions: %w", err)
	}

	return Replay(ctx, address, txs), nil
}

// Replay applies the successful transactions sent by address, in the given order,
// to one record per token id. Records are returned in first-seen order.
func Replay(ctx context.Context, address string, txs []explorer.Transaction) []domain.TokenRecord {
	records := make(map[string]*domain.TokenRecord)
	order := make([]*domain.TokenRecord, 0)

	for _, tx := range txs {
		if !domain.SameAddress(tx.From, address) || tx.Failed() {
			continue
		}

		call, ok := DecodeCall(tx.Input)
		if !ok {
			continue
		}

		timestamp, err := tx.TimestampMillis()
		if err != nil {
			logger.DebugCtx(ctx, "Skipping transaction with invalid timestamp",
				zap.String("tx_hash", tx.Hash),
				zap.Error(err),
			)
			continue
		}

		key := call.TokenID.String()
		record, exists := records[key]
		if !exists {
			record = domain.NewTokenRecord(call.TokenID)
			records[key] = record
			order = append(order, record)
		}

		apply(record, call.Action, timestamp, tx.Hash)
	}

	result := make([]domain.TokenRecord, 0, len(order))
	for _, record := range order {
		result = append(result, *record)
	}
	return result
}

// apply advances a token record by one action.
// Rent has no closing action: currentRentTime stays set and a rented
// token only leaves that status through a later stake or unstake.
func apply(record *domain.TokenRecord, action domain.Action, timestamp int64, txHash string) {
	switch action {
	case domain.ActionStake:
		record.Status = domain.TokenStatusStaked
		record.CurrentStakeTime = &timestamp
		record.StakeHistory = append(record.StakeHistory, domain.StakeEvent{
			Action:          domain.ActionStake,
			Timestamp:       timestamp,
			TransactionHash: txHash,
		})

	case domain.ActionUnstake:
		record.Status = domain.TokenStatusUnstaked
		if record.CurrentStakeTime != nil {
			duration := timestamp - *record.CurrentStakeTime
			record.StakeHistory = append(record.StakeHistory, domain.StakeEvent{
				Action:          domain.ActionUnstake,
				Timestamp:       timestamp,
				Duration:        &duration,
				TransactionHash: txHash,
			})
		}
		record.CurrentStakeTime = nil

	case domain.ActionRent:
		record.Status = domain.TokenStatusRented
		record.CurrentRentTime = &timestamp
		record.RentHistory = append(record.RentHistory, domain.RentEvent{
			Action:          domain.ActionRent,
			Timestamp:       timestamp,
			TransactionHash: txHash,
		})

	default:
		return
	}

	lastAction := action
	record.LastAction = &lastAction
}
