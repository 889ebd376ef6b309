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

	"github.com/DaiChronicles/treasuryvm/amm"
	"github.com/DaiChronicles/treasuryvm/storage"
	"github.com/DaiChronicles/treasuryvm/strategies"
)

func TestSwapTreasuryAsset(t *testing.T) {
	admin := codectest.NewRandomAddress()
	contentAgent := codectest.NewRandomAddress()
	liquidityAgent := codectest.NewRandomAddress()
	treasurerAgent := codectest.NewRandomAddress()
	treasury := codectest.NewRandomAddress()
	strategy := strategies.Address([]byte(strategies.PoolStrategyName))
	// Whitelisted and past its delay, but no executor registered for it.
	ghostStrategy := strategies.Address([]byte("ghost-v1"))

	mu := chaintest.NewInMemoryStore()
	authority := seedAuthority(t, mu, admin, contentAgent, liquidityAgent, treasurerAgent, treasury)
	tokenA := seedToken(t, mu, TokenOneName, TokenOneSymbol, TokenOneMetadata, treasury)
	tokenB := seedToken(t, mu, TokenTwoName, TokenTwoSymbol, TokenTwoMetadata, treasury)
	poolAddress, _ := seedPool(t, mu, tokenA, tokenB, 100_000, 100_000, 0, treasury, 100_000)
	fundToken(t, mu, tokenA, treasury, 10_000)

	activation := int64(7 * dayMs)
	require.NoError(t, storage.SetSwapperActivation(context.Background(), mu, strategy, activation))
	require.NoError(t, storage.SetSwapperActivation(context.Background(), mu, ghostStrategy, activation))

	now := activation + dayMs
	deadline := now + dayMs

	tests := []chaintest.ActionTest{
		{
			Name: "Expired deadlines fail before anything moves",
			Action: &SwapTreasuryAsset{
				Authority: authority,
				Treasury:  treasury,
				Strategy:  strategy,
				FromToken: tokenA,
				ToToken:   tokenB,
				AmountIn:  10_000,
				Deadline:  now - 1,
			},
			ExpectedErr: ErrOutputDeadlineExpired,
			State:       mu,
			Timestamp:   now,
			Actor:       treasurerAgent,
		},
		{
			Name: "Asset addresses must be set",
			Action: &SwapTreasuryAsset{
				Authority: authority,
				Treasury:  treasury,
				Strategy:  strategy,
				FromToken: codec.EmptyAddress,
				ToToken:   tokenB,
				AmountIn:  10_000,
				Deadline:  deadline,
			},
			ExpectedErr: ErrOutputAddressEmpty,
			State:       mu,
			Timestamp:   now,
			Actor:       treasurerAgent,
		},
		{
			Name: "Only the treasurer agent can dispatch",
			Action: &SwapTreasuryAsset{
				Authority: authority,
				Treasury:  treasury,
				Strategy:  strategy,
				FromToken: tokenA,
				ToToken:   tokenB,
				AmountIn:  10_000,
				Deadline:  deadline,
			},
			ExpectedErr: storage.ErrUnauthorized,
			State:       mu,
			Timestamp:   now,
			Actor:       liquidityAgent,
		},
		{
			Name: "Strategies inside the activation delay cannot trade",
			Action: &SwapTreasuryAsset{
				Authority: authority,
				Treasury:  treasury,
				Strategy:  strategy,
				FromToken: tokenA,
				ToToken:   tokenB,
				AmountIn:  10_000,
				Deadline:  deadline,
			},
			ExpectedErr: ErrOutputSwapperNotActive,
			State:       mu,
			Timestamp:   activation - dayMs,
			Actor:       treasurerAgent,
		},
		{
			Name: "Listed addresses without an executor fail",
			Action: &SwapTreasuryAsset{
				Authority: authority,
				Treasury:  treasury,
				Strategy:  ghostStrategy,
				FromToken: tokenA,
				ToToken:   tokenB,
				AmountIn:  10_000,
				Deadline:  deadline,
			},
			ExpectedErr: strategies.ErrStrategyNotFound,
			State:       mu,
			Timestamp:   now,
			Actor:       treasurerAgent,
		},
		{
			Name: "The treasury must hold the input",
			Action: &SwapTreasuryAsset{
				Authority: authority,
				Treasury:  treasury,
				Strategy:  strategy,
				FromToken: tokenA,
				ToToken:   tokenB,
				AmountIn:  20_000,
				Deadline:  deadline,
			},
			ExpectedErr: storage.ErrInvalidBalance,
			State:       mu,
			Timestamp:   now,
			Actor:       treasurerAgent,
		},
		{
			// The strategy pulls exactly the input, routes it through the
			// pool, and the output is reclaimed with both approvals closed.
			Name: "Dispatch swaps and reclaims the output",
			Action: &SwapTreasuryAsset{
				Authority:    authority,
				Treasury:     treasury,
				Strategy:     strategy,
				FromToken:    tokenA,
				ToToken:      tokenB,
				AmountIn:     10_000,
				AmountOutMin: 9_000,
				Deadline:     deadline,
			},
			ExpectedOutputs: [][]byte{packUint64(9_090)},
			State:           mu,
			Timestamp:       now,
			Actor:           treasurerAgent,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				require.Zero(tokenBalance(t, m, tokenA, treasury))
				require.Equal(uint64(9_090), tokenBalance(t, m, tokenB, treasury))

				// The strategy address keeps nothing.
				require.Zero(tokenBalance(t, m, tokenA, strategy))
				require.Zero(tokenBalance(t, m, tokenB, strategy))
				forward, err := storage.GetTokenAllowanceNoController(ctx, m, tokenA, treasury, strategy)
				require.NoError(err)
				require.Zero(forward)
				reverse, err := storage.GetTokenAllowanceNoController(ctx, m, tokenB, strategy, treasury)
				require.NoError(err)
				require.Zero(reverse)

				require.Equal(uint64(110_000), tokenBalance(t, m, tokenA, poolAddress))
				require.Equal(uint64(90_910), tokenBalance(t, m, tokenB, poolAddress))
			},
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}

	// Floors propagate into the routed swap. This runs last: the failure
	// surfaces from inside the strategy, after the input moved.
	fundToken(t, mu, tokenA, treasury, 10_000)
	floorTest := chaintest.ActionTest{
		Name: "Output floors abort the dispatch",
		Action: &SwapTreasuryAsset{
			Authority:    authority,
			Treasury:     treasury,
			Strategy:     strategy,
			FromToken:    tokenA,
			ToToken:      tokenB,
			AmountIn:     10_000,
			AmountOutMin: 9_000,
			Deadline:     deadline,
		},
		ExpectedErr: amm.ErrOutputBelowMinimum,
		State:       mu,
		Timestamp:   now,
		Actor:       treasurerAgent,
	}
	floorTest.Run(context.Background(), t)
}
