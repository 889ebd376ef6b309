// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

// Package amm executes trades and liquidity changes against pools kept in
// state. Reserve backing tokens are custodied at the pool address itself.
package amm

import (
	"context"
	"fmt"

	smath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	"github.com/DaiChronicles/treasuryvm/pricing"
	"github.com/DaiChronicles/treasuryvm/storage"
)

// Reserves returns the pool reserves oriented so that the first value
// backs tokenIn.
func Reserves(
	ctx context.Context,
	im state.Immutable,
	poolAddress codec.Address,
	tokenIn codec.Address,
) (uint64, uint64, error) {
	tokenX, tokenY, _, reserveX, reserveY, _, err := storage.GetLiquidityPoolNoController(ctx, im, poolAddress)
	if err != nil {
		return 0, 0, err
	}
	switch tokenIn {
	case tokenX:
		return reserveX, reserveY, nil
	case tokenY:
		return reserveY, reserveX, nil
	default:
		return 0, 0, fmt.Errorf("%w: %x", ErrTokenNotInPool, tokenIn[:])
	}
}

// QuoteOut prices a swap without touching balances or reserves.
func QuoteOut(
	ctx context.Context,
	im state.Immutable,
	poolAddress codec.Address,
	tokenIn codec.Address,
	amountIn uint64,
) (uint64, error) {
	tokenX, _, feeBP, reserveX, reserveY, _, err := storage.GetLiquidityPoolNoController(ctx, im, poolAddress)
	if err != nil {
		return 0, err
	}
	model := pricing.NewConstantProduct(reserveX, reserveY, feeBP)
	return model.GetAmountOut(amountIn, tokenIn == tokenX)
}

// SwapExactIn trades amountIn of tokenIn for the paired token, crediting
// the output to trader. The trade fails if the output falls below
// amountOutMin or if now is past the deadline.
func SwapExactIn(
	ctx context.Context,
	mu state.Mutable,
	poolAddress codec.Address,
	trader codec.Address,
	tokenIn codec.Address,
	amountIn uint64,
	amountOutMin uint64,
	deadline int64,
	now int64,
) (uint64, error) {
	if now > deadline {
		return 0, fmt.Errorf("%w: deadline %d, now %d", ErrDeadlineExpired, deadline, now)
	}
	tokenX, tokenY, feeBP, reserveX, reserveY, lpTokenAddress, err := storage.GetLiquidityPoolNoController(ctx, mu, poolAddress)
	if err != nil {
		return 0, err
	}
	var tokenOut codec.Address
	switch tokenIn {
	case tokenX:
		tokenOut = tokenY
	case tokenY:
		tokenOut = tokenX
	default:
		return 0, fmt.Errorf("%w: %x", ErrTokenNotInPool, tokenIn[:])
	}
	model := pricing.NewConstantProduct(reserveX, reserveY, feeBP)
	amountOut, err := model.Swap(amountIn, tokenIn == tokenX)
	if err != nil {
		return 0, err
	}
	if amountOut < amountOutMin {
		return 0, fmt.Errorf("%w: output %d, minimum %d", ErrOutputBelowMinimum, amountOut, amountOutMin)
	}
	if err := storage.TransferToken(ctx, mu, tokenIn, trader, poolAddress, amountIn); err != nil {
		return 0, err
	}
	if err := storage.TransferToken(ctx, mu, tokenOut, poolAddress, trader, amountOut); err != nil {
		return 0, err
	}
	newReserveX, newReserveY := model.GetState()
	if err := storage.SetLiquidityPool(ctx, mu, poolAddress, tokenX, tokenY, feeBP, newReserveX, newReserveY, lpTokenAddress); err != nil {
		return 0, err
	}
	return amountOut, nil
}

// AddLiquidity deposits both pool tokens from provider and mints LP tokens
// back to them. Desired amounts are matched to the current reserve ratio;
// the matched amounts must not fall below the respective minimums and the
// deposit fails if now is past the deadline.
func AddLiquidity(
	ctx context.Context,
	mu state.Mutable,
	poolAddress codec.Address,
	provider codec.Address,
	amountXDesired uint64,
	amountYDesired uint64,
	amountXMin uint64,
	amountYMin uint64,
	deadline int64,
	now int64,
) (uint64, uint64, uint64, error) {
	if now > deadline {
		return 0, 0, 0, fmt.Errorf("%w: deadline %d, now %d", ErrDeadlineExpired, deadline, now)
	}
	tokenX, tokenY, feeBP, reserveX, reserveY, lpTokenAddress, err := storage.GetLiquidityPoolNoController(ctx, mu, poolAddress)
	if err != nil {
		return 0, 0, 0, err
	}
	amountX, amountY := amountXDesired, amountYDesired
	if reserveX != 0 && reserveY != 0 {
		scaledY, err := smath.Mul64(amountXDesired, reserveY)
		if err != nil {
			return 0, 0, 0, err
		}
		if optimalY := scaledY / reserveX; optimalY <= amountYDesired {
			amountY = optimalY
		} else {
			scaledX, err := smath.Mul64(amountYDesired, reserveX)
			if err != nil {
				return 0, 0, 0, err
			}
			amountX = scaledX / reserveY
		}
	}
	if amountX < amountXMin || amountY < amountYMin {
		return 0, 0, 0, fmt.Errorf("%w: matched %d/%d, minimums %d/%d",
			ErrAmountBelowMinimum, amountX, amountY, amountXMin, amountYMin)
	}
	_, _, _, _, lpTokenSupply, _, err := storage.GetTokenInfoNoController(ctx, mu, lpTokenAddress)
	if err != nil {
		return 0, 0, 0, err
	}
	model := pricing.NewConstantProduct(reserveX, reserveY, feeBP)
	liquidity, tokensToBurn, err := model.AddLiquidity(amountX, amountY, lpTokenSupply)
	if err != nil {
		return 0, 0, 0, err
	}
	if err := storage.TransferToken(ctx, mu, tokenX, provider, poolAddress, amountX); err != nil {
		return 0, 0, 0, err
	}
	if err := storage.TransferToken(ctx, mu, tokenY, provider, poolAddress, amountY); err != nil {
		return 0, 0, 0, err
	}
	if err := storage.MintToken(ctx, mu, lpTokenAddress, provider, liquidity); err != nil {
		return 0, 0, 0, err
	}
	// First-deposit floor stays locked at the pool address forever.
	if tokensToBurn > 0 {
		if err := storage.MintToken(ctx, mu, lpTokenAddress, poolAddress, tokensToBurn); err != nil {
			return 0, 0, 0, err
		}
	}
	newReserveX, newReserveY := model.GetState()
	if err := storage.SetLiquidityPool(ctx, mu, poolAddress, tokenX, tokenY, feeBP, newReserveX, newReserveY, lpTokenAddress); err != nil {
		return 0, 0, 0, err
	}
	return amountX, amountY, liquidity, nil
}

// RemoveLiquidity burns LP tokens from provider and pays out the pro-rata
// share of both reserves. The withdrawal fails if now is past the deadline.
func RemoveLiquidity(
	ctx context.Context,
	mu state.Mutable,
	poolAddress codec.Address,
	provider codec.Address,
	liquidity uint64,
	amountXMin uint64,
	amountYMin uint64,
	deadline int64,
	now int64,
) (uint64, uint64, error) {
	if now > deadline {
		return 0, 0, fmt.Errorf("%w: deadline %d, now %d", ErrDeadlineExpired, deadline, now)
	}
	tokenX, tokenY, feeBP, reserveX, reserveY, lpTokenAddress, err := storage.GetLiquidityPoolNoController(ctx, mu, poolAddress)
	if err != nil {
		return 0, 0, err
	}
	_, _, _, _, lpTokenSupply, _, err := storage.GetTokenInfoNoController(ctx, mu, lpTokenAddress)
	if err != nil {
		return 0, 0, err
	}
	model := pricing.NewConstantProduct(reserveX, reserveY, feeBP)
	outputX, outputY, err := model.RemoveLiquidity(liquidity, lpTokenSupply)
	if err != nil {
		return 0, 0, err
	}
	if outputX < amountXMin || outputY < amountYMin {
		return 0, 0, fmt.Errorf("%w: outputs %d/%d, minimums %d/%d",
			ErrAmountBelowMinimum, outputX, outputY, amountXMin, amountYMin)
	}
	if err := storage.BurnToken(ctx, mu, lpTokenAddress, provider, liquidity); err != nil {
		return 0, 0, err
	}
	if err := storage.TransferToken(ctx, mu, tokenX, poolAddress, provider, outputX); err != nil {
		return 0, 0, err
	}
	if err := storage.TransferToken(ctx, mu, tokenY, poolAddress, provider, outputY); err != nil {
		return 0, 0, err
	}
	newReserveX, newReserveY := model.GetState()
	if err := storage.SetLiquidityPool(ctx, mu, poolAddress, tokenX, tokenY, feeBP, newReserveX, newReserveY, lpTokenAddress); err != nil {
		return 0, 0, err
	}
	return outputX, outputY, nil
}
