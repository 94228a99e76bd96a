package staking_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-staking-api/internal/domain"
	"github.com/feral-file/ff-staking-api/internal/mocks"
	"github.com/feral-file/ff-staking-api/internal/staking"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func stakedRecord(tokenID int64, since time.Time) domain.TokenRecord {
	record := domain.NewTokenRecord(big.NewInt(tokenID))
	stakeTime := since.UnixMilli()
	action := domain.ActionStake
	record.Status = domain.TokenStatusStaked
	record.CurrentStakeTime = &stakeTime
	record.LastAction = &action
	record.StakeHistory = append(record.StakeHistory, domain.StakeEvent{
		Action:    domain.ActionStake,
		Timestamp: stakeTime,
	})
	return *record
}

func rentedRecord(tokenID int64, since time.Time) domain.TokenRecord {
	record := domain.NewTokenRecord(big.NewInt(tokenID))
	rentTime := since.UnixMilli()
	action := domain.ActionRent
	record.Status = domain.TokenStatusRented
	record.CurrentRentTime = &rentTime
	record.LastAction = &action
	return *record
}

func TestCurrentRewards(t *testing.T) {
	staked := stakedRecord(1, testNow.Add(-48*time.Hour))
	assert.InDelta(t, 10.0, staking.CurrentRewards(staked, 5, testNow), 1e-9)

	halfDay := stakedRecord(1, testNow.Add(-12*time.Hour))
	assert.InDelta(t, 2.0, staking.CurrentRewards(halfDay, 4, testNow), 1e-9)

	unstaked := *domain.NewTokenRecord(big.NewInt(1))
	assert.Zero(t, staking.CurrentRewards(unstaked, 6, testNow))

	rented := rentedRecord(1, testNow.Add(-48*time.Hour))
	assert.Zero(t, staking.CurrentRewards(rented, 6, testNow))
}

func TestAggregate(t *testing.T) {
	nfts := []domain.NFTOwnership{
		{TokenID: "1", Tier: "2", Multiplier: 5},
		{TokenID: "2", Tier: "1", Multiplier: 4},
		{TokenID: "3", Tier: "3", Multiplier: 6},
	}
	records := []domain.TokenRecord{
		stakedRecord(1, testNow.Add(-48*time.Hour)),
		rentedRecord(2, testNow.Add(-time.Hour)),
		stakedRecord(9, testNow.Add(-time.Hour)),
	}

	stats := staking.Aggregate(nfts, records, testNow)

	assert.Equal(t, 3, stats.TotalNFTs)
	assert.Equal(t, 2, stats.StakedNFTs)
	assert.Equal(t, 1, stats.RentedNFTs)
	require.Len(t, stats.NFTDetails, 3)

	owned := stats.NFTDetails[0]
	assert.Equal(t, "1", owned.TokenID.String())
	require.NotNil(t, owned.Tier)
	assert.Equal(t, "2", *owned.Tier)
	require.NotNil(t, owned.Multiplier)
	assert.Equal(t, 5, *owned.Multiplier)
	require.NotNil(t, owned.CurrentRewards)
	assert.InDelta(t, 10.0, *owned.CurrentRewards, 1e-9)

	rented := stats.NFTDetails[1]
	require.NotNil(t, rented.CurrentRewards)
	assert.Zero(t, *rented.CurrentRewards)

	unmatched := stats.NFTDetails[2]
	assert.Equal(t, "9", unmatched.TokenID.String())
	assert.Nil(t, unmatched.Tier)
	assert.Nil(t, unmatched.Multiplier)
	assert.Nil(t, unmatched.CurrentRewards)
}

func TestAggregate_Empty(t *testing.T) {
	stats := staking.Aggregate([]domain.NFTOwnership{}, []domain.TokenRecord{}, testNow)

	assert.Zero(t, stats.TotalNFTs)
	assert.Zero(t, stats.StakedNFTs)
	assert.Zero(t, stats.RentedNFTs)
	require.NotNil(t, stats.NFTDetails)
	assert.Empty(t, stats.NFTDetails)
}

func TestStatsAggregator_CalculateStakingStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOwnership := mocks.NewMockOwnershipReader(ctrl)
	mockHistory := mocks.NewMockHistoryReader(ctrl)
	mockClock := mocks.NewMockClock(ctrl)
	aggregator := staking.NewStatsAggregator(mockOwnership, mockHistory, mockClock)

	mockOwnership.EXPECT().
		GetNFTsByAddress(gomock.Any(), testOwner).
		Return([]domain.NFTOwnership{{TokenID: "1", Tier: "2", Multiplier: 5}}, nil)
	mockHistory.EXPECT().
		GetTransactionHistory(gomock.Any(), testOwner).
		Return([]domain.TokenRecord{stakedRecord(1, testNow.Add(-48*time.Hour))}, nil)
	mockClock.EXPECT().Now().Return(testNow)

	stats, err := aggregator.CalculateStakingStats(context.Background(), testOwner)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalNFTs)
	assert.Equal(t, 1, stats.StakedNFTs)
	require.Len(t, stats.NFTDetails, 1)
	require.NotNil(t, stats.NFTDetails[0].CurrentRewards)
	assert.InDelta(t, 10.0, *stats.NFTDetails[0].CurrentRewards, 1e-9)
}

func TestStatsAggregator_CalculateStakingStats_FetchFailure(t *testing.T) {
	fetchErr := errors.New("upstream failure")

	tests := []struct {
		name         string
		ownershipErr error
		historyErr   error
	}{
		{name: "ownership fails", ownershipErr: fetchErr},
		{name: "history fails", historyErr: fetchErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockOwnership := mocks.NewMockOwnershipReader(ctrl)
			mockHistory := mocks.NewMockHistoryReader(ctrl)
			mockClock := mocks.NewMockClock(ctrl)
			aggregator := staking.NewStatsAggregator(mockOwnership, mockHistory, mockClock)

			mockOwnership.EXPECT().
				GetNFTsByAddress(gomock.Any(), testOwner).
				Return([]domain.NFTOwnership{}, tt.ownershipErr).
				AnyTimes()
			mockHistory.EXPECT().
				GetTransactionHistory(gomock.Any(), testOwner).
				Return([]domain.TokenRecord{}, tt.historyErr).
				AnyTimes()

			stats, err := aggregator.CalculateStakingStats(context.Background(), testOwner)
			require.Error(t, err)
			assert.ErrorIs(t, err, fetchErr)
			assert.Nil(t, stats)
		})
	}
}
