// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetAmountOut(t *testing.T) {
	require := require.New(t)

	empty := NewConstantProduct(0, 0, 0)
	_, err := empty.GetAmountOut(100, true)
	require.ErrorIs(err, ErrReservesZero)

	model := NewConstantProduct(1_000, 1_000, 30)
	_, err = model.GetAmountOut(0, true)
	require.ErrorIs(err, ErrZeroInput)

	// 100 in with a 30bp fee on balanced reserves.
	amountOut, err := model.GetAmountOut(100, true)
	require.NoError(err)
	require.Equal(uint64(90), amountOut)

	// Quoting must not move the reserves.
	reserveX, reserveY := model.GetState()
	require.Equal(uint64(1_000), reserveX)
	require.Equal(uint64(1_000), reserveY)

	// Direction follows the reserve ratio.
	skewed := NewConstantProduct(2_000, 1_000, 0)
	amountOut, err = skewed.GetAmountOut(100, true)
	require.NoError(err)
	require.Equal(uint64(47), amountOut)
	amountOut, err = skewed.GetAmountOut(100, false)
	require.NoError(err)
	require.Equal(uint64(181), amountOut)
}

func TestSwapMovesReserves(t *testing.T) {
	require := require.New(t)

	model := NewConstantProduct(1_000, 1_000, 30)
	amountOut, err := model.Swap(100, true)
	require.NoError(err)
	require.Equal(uint64(90), amountOut)

	reserveX, reserveY := model.GetState()
	require.Equal(uint64(1_100), reserveX)
	require.Equal(uint64(910), reserveY)
}

func TestAddLiquidity(t *testing.T) {
	require := require.New(t)

	// First deposit mints sqrt(x*y) with the floor burned.
	model := NewConstantProduct(0, 0, 0)
	liquidity, burned, err := model.AddLiquidity(2_000, 2_000, 0)
	require.NoError(err)
	require.Equal(uint64(1_000), liquidity)
	require.Equal(MinimumLiquidity, burned)

	// Later deposits mint pro-rata and burn nothing.
	liquidity, burned, err = model.AddLiquidity(1_000, 1_000, 2_000)
	require.NoError(err)
	require.Equal(uint64(1_000), liquidity)
	require.Zero(burned)

	reserveX, reserveY := model.GetState()
	require.Equal(uint64(3_000), reserveX)
	require.Equal(uint64(3_000), reserveY)

	// A first deposit below the floor cannot open a pool.
	small := NewConstantProduct(0, 0, 0)
	_, _, err = small.AddLiquidity(100, 100, 0)
	require.ErrorIs(err, ErrInsufficientLiquidityMinted)
}

func TestRemoveLiquidity(t *testing.T) {
	require := require.New(t)

	model := NewConstantProduct(3_000, 3_000, 0)
	outputX, outputY, err := model.RemoveLiquidity(300, 3_000)
	require.NoError(err)
	require.Equal(uint64(300), outputX)
	require.Equal(uint64(300), outputY)

	reserveX, reserveY := model.GetState()
	require.Equal(uint64(2_700), reserveX)
	require.Equal(uint64(2_700), reserveY)

	// Burns too small to pay out on both sides are rejected.
	dust := NewConstantProduct(10, 10, 0)
	_, _, err = dust.RemoveLiquidity(50, 1_000)
	require.ErrorIs(err, ErrInsufficientLiquidityBurned)

	_, _, err = dust.RemoveLiquidity(50, 0)
	require.ErrorIs(err, ErrReservesZero)
}
