// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hypersdk/chain/chaintest"
	"github.com/ava-labs/hypersdk/codec/codectest"
	"github.com/ava-labs/hypersdk/state"

	"github.com/DaiChronicles/treasuryvm/amm"
	"github.com/DaiChronicles/treasuryvm/storage"
)

func TestSetSlippageTolerance(t *testing.T) {
	admin := codectest.NewRandomAddress()
	contentAgent := codectest.NewRandomAddress()
	liquidityAgent := codectest.NewRandomAddress()
	treasurerAgent := codectest.NewRandomAddress()
	treasury := codectest.NewRandomAddress()

	mu := chaintest.NewInMemoryStore()
	authority := seedAuthority(t, mu, admin, contentAgent, liquidityAgent, treasurerAgent, treasury)

	// Unset tolerance reads as the default.
	tolerance, err := storage.GetSlippageToleranceNoController(context.Background(), mu)
	require.NoError(t, err)
	require.Equal(t, storage.DefaultSlippageBP, tolerance)

	tests := []chaintest.ActionTest{
		{
			Name: "Tolerance is capped",
			Action: &SetSlippageTolerance{
				Authority:   authority,
				ToleranceBP: storage.MaxSlippageBP + 1,
			},
			ExpectedErr: ErrOutputSlippageToleranceTooLarge,
			State:       mu,
			Actor:       admin,
		},
		{
			Name: "Only the admin can set the tolerance",
			Action: &SetSlippageTolerance{
				Authority:   authority,
				ToleranceBP: 250,
			},
			ExpectedErr: storage.ErrUnauthorized,
			State:       mu,
			Actor:       liquidityAgent,
		},
		{
			Name: "Admin updates the tolerance",
			Action: &SetSlippageTolerance{
				Authority:   authority,
				ToleranceBP: 250,
			},
			State: mu,
			Actor: admin,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				tolerance, err := storage.GetSlippageToleranceNoController(ctx, m)
				require.NoError(err)
				require.Equal(uint64(250), tolerance)
			},
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}

func TestProvideLiquidity(t *testing.T) {
	admin := codectest.NewRandomAddress()
	contentAgent := codectest.NewRandomAddress()
	liquidityAgent := codectest.NewRandomAddress()
	treasurerAgent := codectest.NewRandomAddress()
	treasury := codectest.NewRandomAddress()

	mu := chaintest.NewInMemoryStore()
	authority := seedAuthority(t, mu, admin, contentAgent, liquidityAgent, treasurerAgent, treasury)
	seedCoin(t, mu)
	numeraire := seedToken(t, mu, TokenOneName, TokenOneSymbol, TokenOneMetadata, treasury)
	poolAddress, lpTokenAddress := seedPool(t, mu, storage.CoinAddress, numeraire, 100_000, 100_000, 0, treasury, 100_000)

	deadline := int64(10 * dayMs)

	// The deposit is oriented to the pool's token order, and the matching
	// rounds on whichever side is matched against the other: when primary
	// leads, one numeraire unit is left behind.
	primaryIsX := storage.CompareAddress(storage.CoinAddress, numeraire) == storage.LessThan
	expectedPrimary := uint64(10_998)
	expectedNumeraire, expectedLiquidity, expectedDust := uint64(9_090), uint64(9_998), uint64(0)
	if primaryIsX {
		expectedNumeraire, expectedLiquidity, expectedDust = 9_089, 9_997, 1
	}
	expectedX, expectedY := expectedPrimary, expectedNumeraire
	if !primaryIsX {
		expectedX, expectedY = expectedY, expectedX
	}

	tests := []chaintest.ActionTest{
		{
			Name: "Amount must be positive",
			Action: &ProvideLiquidity{
				Authority:     authority,
				Treasury:      treasury,
				Numeraire:     numeraire,
				AmountPrimary: 0,
				Deadline:      deadline,
			},
			ExpectedErr: ErrOutputValueZero,
			State:       mu,
			Actor:       liquidityAgent,
		},
		{
			Name: "Only the liquidity agent can provide",
			Action: &ProvideLiquidity{
				Authority:     authority,
				Treasury:      treasury,
				Numeraire:     numeraire,
				AmountPrimary: 10_000,
				Deadline:      deadline,
			},
			ExpectedErr: storage.ErrUnauthorized,
			State:       mu,
			Actor:       treasurerAgent,
		},
		{
			Name: "The treasury reference must match the registry",
			Action: &ProvideLiquidity{
				Authority:     authority,
				Treasury:      admin,
				Numeraire:     numeraire,
				AmountPrimary: 10_000,
				Deadline:      deadline,
			},
			ExpectedErr: ErrOutputWrongTreasury,
			State:       mu,
			Actor:       liquidityAgent,
		},
		{
			Name: "The native coin cannot pair with itself",
			Action: &ProvideLiquidity{
				Authority:     authority,
				Treasury:      treasury,
				Numeraire:     storage.CoinAddress,
				AmountPrimary: 10_000,
				Deadline:      deadline,
			},
			ExpectedErr: ErrOutputIdenticalTokens,
			State:       mu,
			Actor:       liquidityAgent,
		},
		{
			// The primary leg is minted from the exchange-liquidity pool,
			// swapped for numeraire, and the proceeds are matched at the
			// post-swap ratio with a second mint covering the shortfall.
			Name: "Treasury liquidity is minted, swapped and deposited",
			Action: &ProvideLiquidity{
				Authority:       authority,
				Treasury:        treasury,
				Numeraire:       numeraire,
				AmountPrimary:   10_000,
				MinNumeraireOut: 9_000,
				Deadline:        deadline,
			},
			ExpectedOutputs: [][]byte{packUint64(expectedX), packUint64(expectedY), packUint64(expectedLiquidity)},
			State:           mu,
			Actor:           liquidityAgent,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)

				// Both mints together drew 20_998 from the allocation.
				minted, err := storage.GetAllocationMintedNoController(ctx, m, storage.AllocationExchangeLiquidity)
				require.NoError(err)
				require.Equal(uint64(20_998), minted)

				// The deposit consumed the full primary leg and all of the
				// numeraire proceeds save the rounding dust.
				require.Zero(coinBalance(t, m, treasury))
				require.Equal(expectedDust, tokenBalance(t, m, numeraire, treasury))
				require.Equal(uint64(120_998), coinBalance(t, m, poolAddress))
				require.Equal(90_910+expectedNumeraire, tokenBalance(t, m, numeraire, poolAddress))
				require.Equal(99_000+expectedLiquidity, tokenBalance(t, m, lpTokenAddress, treasury))
			},
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}

func TestBuyBackAndBurn(t *testing.T) {
	admin := codectest.NewRandomAddress()
	contentAgent := codectest.NewRandomAddress()
	liquidityAgent := codectest.NewRandomAddress()
	treasurerAgent := codectest.NewRandomAddress()
	treasury := codectest.NewRandomAddress()

	mu := chaintest.NewInMemoryStore()
	authority := seedAuthority(t, mu, admin, contentAgent, liquidityAgent, treasurerAgent, treasury)
	seedCoin(t, mu)
	numeraire := seedToken(t, mu, TokenOneName, TokenOneSymbol, TokenOneMetadata, treasury)
	poolAddress, lpTokenAddress := seedPool(t, mu, storage.CoinAddress, numeraire, 100_000, 100_000, 0, treasury, 100_000)

	// Whatever the treasury already holds in primary burns with the
	// proceeds.
	fundCoin(t, mu, treasury, 50)

	deadline := int64(10 * dayMs)

	tests := []chaintest.ActionTest{
		{
			Name: "Liquidity must be positive",
			Action: &BuyBackAndBurn{
				Authority: authority,
				Treasury:  treasury,
				Numeraire: numeraire,
				Liquidity: 0,
				Deadline:  deadline,
			},
			ExpectedErr: ErrOutputValueZero,
			State:       mu,
			Actor:       liquidityAgent,
		},
		{
			Name: "Only the liquidity agent can buy back",
			Action: &BuyBackAndBurn{
				Authority: authority,
				Treasury:  treasury,
				Numeraire: numeraire,
				Liquidity: 10_000,
				Deadline:  deadline,
			},
			ExpectedErr: storage.ErrUnauthorized,
			State:       mu,
			Actor:       admin,
		},
		{
			Name: "Withdrawal floors are honored",
			Action: &BuyBackAndBurn{
				Authority:     authority,
				Treasury:      treasury,
				Numeraire:     numeraire,
				Liquidity:     10_000,
				MinPrimaryOut: 10_001,
				Deadline:      deadline,
			},
			ExpectedErr: amm.ErrAmountBelowMinimum,
			State:       mu,
			Actor:       liquidityAgent,
		},
		{
			// 10_000 LP unwinds 10_000 of each side, the numeraire leg is
			// swapped back into primary, and the treasury's entire primary
			// balance burns: 50 held + 10_000 withdrawn + 9_000 bought.
			Name: "Buy-back burns the treasury's entire primary balance",
			Action: &BuyBackAndBurn{
				Authority:       authority,
				Treasury:        treasury,
				Numeraire:       numeraire,
				Liquidity:       10_000,
				MinPrimaryOut:   10_000,
				MinNumeraireOut: 10_000,
				Deadline:        deadline,
			},
			ExpectedOutputs: [][]byte{packUint64(19_050)},
			State:           mu,
			Actor:           liquidityAgent,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				require.Zero(coinBalance(t, m, treasury))
				require.Zero(tokenBalance(t, m, numeraire, treasury))
				require.Equal(uint64(89_000), tokenBalance(t, m, lpTokenAddress, treasury))
				require.Equal(uint64(81_000), coinBalance(t, m, poolAddress))
				require.Equal(uint64(100_000), tokenBalance(t, m, numeraire, poolAddress))

				// Burning shrank total supply to exactly the pool reserve.
				_, _, _, _, totalSupply, _, err := storage.GetTokenInfoNoController(ctx, m, storage.CoinAddress)
				require.NoError(err)
				require.Equal(uint64(81_000), totalSupply)
			},
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}
