// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hypersdk/chain/chaintest"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/codec/codectest"
	"github.com/ava-labs/hypersdk/state"

	"github.com/DaiChronicles/treasuryvm/storage"
)

// requireVaultBalanced asserts the ledger's committed totals equal the
// vault's coin balance.
func requireVaultBalanced(ctx context.Context, t *testing.T, m state.Mutable) {
	t.Helper()
	require := require.New(t)
	openReward, openToClaim, _, err := storage.GetRewardTotalsNoController(ctx, m)
	require.NoError(err)
	require.Equal(openReward+openToClaim, coinBalance(t, m, storage.RewardVaultAddress))
}

func TestDepositRewards(t *testing.T) {
	depositor := codectest.NewRandomAddress()

	mu := chaintest.NewInMemoryStore()
	seedCoin(t, mu)
	fundCoin(t, mu, depositor, 50_000)

	tests := []chaintest.ActionTest{
		{
			Name:        "Deposit must be positive",
			Action:      &DepositRewards{Amount: 0},
			ExpectedErr: ErrOutputValueZero,
			State:       mu,
			Actor:       depositor,
		},
		{
			Name:        "Deposit needs a funded actor",
			Action:      &DepositRewards{Amount: 100_000},
			ExpectedErr: storage.ErrInvalidBalance,
			State:       mu,
			Actor:       depositor,
		},
		{
			Name:            "Deposit books the amount as open reward",
			Action:          &DepositRewards{Amount: 10_000},
			ExpectedOutputs: [][]byte{packUint64(10_000), packUint64(10_000)},
			State:           mu,
			Actor:           depositor,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				openReward, openToClaim, released, err := storage.GetRewardTotalsNoController(ctx, m)
				require.NoError(err)
				require.Equal(uint64(10_000), openReward)
				require.Zero(openToClaim)
				require.Zero(released)
				requireVaultBalanced(ctx, t, m)
			},
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}

	// Coins pushed straight into the vault are folded into the next
	// deposit's booking.
	require.NoError(t, storage.TransferToken(context.Background(), mu, storage.CoinAddress, depositor, storage.RewardVaultAddress, 500))

	foldTest := chaintest.ActionTest{
		Name:            "Deposit folds vault surplus into open reward",
		Action:          &DepositRewards{Amount: 1_000},
		ExpectedOutputs: [][]byte{packUint64(1_500), packUint64(11_500)},
		State:           mu,
		Actor:           depositor,
		Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
			requireVaultBalanced(ctx, t, m)
		},
	}
	foldTest.Run(context.Background(), t)

	// A vault running behind its committed totals must fail deposits, not
	// book the shrunken difference.
	require.NoError(t, storage.SetRewardTotals(context.Background(), mu, 12_000, 0, 0))
	shortfallTest := chaintest.ActionTest{
		Name:        "Deposits into an underfunded vault fail",
		Action:      &DepositRewards{Amount: 1_000},
		ExpectedErr: ErrOutputVaultShortfall,
		State:       mu,
		Actor:       depositor,
	}
	shortfallTest.Run(context.Background(), t)
}

func TestDistributeAndReleaseRewards(t *testing.T) {
	admin := codectest.NewRandomAddress()
	contentAgent := codectest.NewRandomAddress()
	liquidityAgent := codectest.NewRandomAddress()
	treasurerAgent := codectest.NewRandomAddress()
	treasury := codectest.NewRandomAddress()
	winnerOne := codectest.NewRandomAddress()
	winnerTwo := codectest.NewRandomAddress()
	winnerThree := codectest.NewRandomAddress()

	mu := chaintest.NewInMemoryStore()
	authority := seedAuthority(t, mu, admin, contentAgent, liquidityAgent, treasurerAgent, treasury)
	seedCoin(t, mu)
	fundCoin(t, mu, storage.RewardVaultAddress, 10_001)
	require.NoError(t, storage.SetRewardTotals(context.Background(), mu, 10_001, 0, 0))

	winners := []codec.Address{winnerOne, winnerTwo, winnerThree}

	tests := []chaintest.ActionTest{
		{
			Name: "Winners are required",
			Action: &DistributeRewards{
				Authority: authority,
				Winners:   nil,
				Shares:    nil,
			},
			ExpectedErr: ErrOutputDistributionEmpty,
			State:       mu,
			Actor:       treasurerAgent,
		},
		{
			Name: "Winners and shares must pair up",
			Action: &DistributeRewards{
				Authority: authority,
				Winners:   winners,
				Shares:    []uint64{5_000, 5_000},
			},
			ExpectedErr: ErrOutputDistributionMismatch,
			State:       mu,
			Actor:       treasurerAgent,
		},
		{
			Name: "Shares summing short are rejected",
			Action: &DistributeRewards{
				Authority: authority,
				Winners:   winners,
				Shares:    []uint64{3_000, 3_000, 3_000},
			},
			ExpectedErr: ErrOutputSharesSumInvalid,
			State:       mu,
			Actor:       treasurerAgent,
		},
		{
			Name: "Only the treasurer agent can distribute",
			Action: &DistributeRewards{
				Authority: authority,
				Winners:   winners,
				Shares:    []uint64{3_000, 3_000, 4_000},
			},
			ExpectedErr: storage.ErrUnauthorized,
			State:       mu,
			Actor:       admin,
		},
		{
			// Cuts are floored; the single leftover unit stays open.
			Name: "Distribution floors cuts and keeps the remainder open",
			Action: &DistributeRewards{
				Authority: authority,
				Winners:   winners,
				Shares:    []uint64{3_000, 3_000, 4_000},
			},
			ExpectedOutputs: [][]byte{packUint64(10_000)},
			State:           mu,
			Actor:           treasurerAgent,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				for i, want := range []uint64{3_000, 3_000, 4_000} {
					claimable, err := storage.GetClaimableRewardNoController(ctx, m, winners[i])
					require.NoError(err)
					require.Equal(want, claimable)
				}
				openReward, openToClaim, released, err := storage.GetRewardTotalsNoController(ctx, m)
				require.NoError(err)
				require.Equal(uint64(1), openReward)
				require.Equal(uint64(10_000), openToClaim)
				require.Zero(released)
				requireVaultBalanced(ctx, t, m)
			},
		},
		{
			Name: "Release needs a claimable balance",
			Action: &ReleaseReward{
				Winner: treasury,
			},
			ExpectedErr: ErrOutputNothingToRelease,
			State:       mu,
		},
		{
			Name: "Release pays the winner and closes the claim",
			Action: &ReleaseReward{
				Winner: winnerThree,
			},
			ExpectedOutputs: [][]byte{packUint64(4_000)},
			State:           mu,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				require.Equal(uint64(4_000), coinBalance(t, m, winnerThree))
				claimable, err := storage.GetClaimableRewardNoController(ctx, m, winnerThree)
				require.NoError(err)
				require.Zero(claimable)
				openReward, openToClaim, released, err := storage.GetRewardTotalsNoController(ctx, m)
				require.NoError(err)
				require.Equal(uint64(1), openReward)
				require.Equal(uint64(6_000), openToClaim)
				require.Equal(uint64(4_000), released)
				requireVaultBalanced(ctx, t, m)
			},
		},
		{
			Name: "Replayed releases fail",
			Action: &ReleaseReward{
				Winner: winnerThree,
			},
			ExpectedErr: ErrOutputNothingToRelease,
			State:       mu,
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}
