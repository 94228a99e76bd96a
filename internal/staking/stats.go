package staking

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/feral-file/ff-staking-api/internal/adapter"
	"github.com/feral-file/ff-staking-api/internal/domain"
)

const millisecondsPerDay = float64(24 * time.Hour / time.Millisecond)

// StatsAggregator joins ownership with staking history for an address
//
//go:generate mockgen -source=stats.go -destination=../mocks/stats_aggregator.go -package=mocks -mock_names=StatsAggregator=MockStatsAggregator
type StatsAggregator interface {
	// CalculateStakingStats returns the staking summary of address
	CalculateStakingStats(ctx context.Context, address string) (*domain.StakingStats, error)
}

type statsAggregator struct {
	ownership OwnershipReader
	history   HistoryReader
	clock     adapter.Clock
}

// NewStatsAggregator creates an aggregator over the ownership and history readers
func NewStatsAggregator(ownership OwnershipReader, history HistoryReader, clock adapter.Clock) StatsAggregator {
	return &statsAggregator{
		ownership: ownership,
		history:   history,
		clock:     clock,
	}
}

// CalculateStakingStats fetches ownership and history concurrently; both must succeed
func (a *statsAggregator) CalculateStakingStats(ctx context.Context, address string) (*domain.StakingStats, error) {
	var (
		nfts    []domain.NFTOwnership
		records []domain.TokenRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		nfts, err = a.ownership.GetNFTsByAddress(gctx, address)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = a.history.GetTransactionHistory(gctx, address)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to collect staking data: %w", err)
	}

	return Aggregate(nfts, records, a.clock.Now()), nil
}

// Aggregate enriches records with the tier of tokens still owned and counts
// staked and rented tokens. Records for tokens no longer owned pass through bare.
func Aggregate(nfts []domain.NFTOwnership, records []domain.TokenRecord, now time.Time) *domain.StakingStats {
	owned := make(map[string]domain.NFTOwnership, len(nfts))
	for _, nft := range nfts {
		owned[nft.TokenID] = nft
	}

	stats := &domain.StakingStats{
		TotalNFTs:  len(nfts),
		NFTDetails: make([]domain.NFTDetail, 0, len(records)),
	}

	for _, record := range records {
		detail := domain.NFTDetail{TokenRecord: record}

		if nft, ok := owned[record.TokenID.String()]; ok {
			tier := nft.Tier
			multiplier := nft.Multiplier
			rewards := CurrentRewards(record, multiplier, now)
			detail.Tier = &tier
			detail.Multiplier = &multiplier
			detail.CurrentRewards = &rewards
		}

		switch detail.Status {
		case domain.TokenStatusStaked:
			stats.StakedNFTs++
		case domain.TokenStatusRented:
			stats.RentedNFTs++
		}

		stats.NFTDetails = append(stats.NFTDetails, detail)
	}

	return stats
}

// CurrentRewards accrues multiplier per day, fractional days included, since the
// open stake began. Tokens that are not staked earn nothing.
func CurrentRewards(record domain.TokenRecord, multiplier int, now time.Time) float64 {
	if record.Status != domain.TokenStatusStaked || record.CurrentStakeTime == nil {
		return 0
	}

	days := float64(now.UnixMilli()-*record.CurrentStakeTime) / millisecondsPerDay
	return days * float64(multiplier)
}
