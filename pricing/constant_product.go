// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	smath "github.com/ava-labs/avalanchego/utils/math"
)

// MinimumLiquidity is burned on the first deposit so a pool can never be
// fully drained of LP tokens.
const MinimumLiquidity uint64 = 1_000

const basisPoints uint64 = 10_000

// ConstantProduct prices swaps against x*y=k with a basis-point fee taken
// from the input side.
type ConstantProduct struct {
	reserveX uint64
	reserveY uint64
	feeBP    uint64
}

func NewConstantProduct(reserveX uint64, reserveY uint64, feeBP uint64) *ConstantProduct {
	return &ConstantProduct{
		reserveX: reserveX,
		reserveY: reserveY,
		feeBP:    feeBP,
	}
}

// GetAmountOut quotes a swap without mutating reserves.
func (c *ConstantProduct) GetAmountOut(amountIn uint64, xToY bool) (uint64, error) {
	if c.reserveX == 0 || c.reserveY == 0 {
		return 0, ErrReservesZero
	}
	if amountIn == 0 {
		return 0, ErrZeroInput
	}
	reserveIn, reserveOut := c.reserveX, c.reserveY
	if !xToY {
		reserveIn, reserveOut = c.reserveY, c.reserveX
	}
	amountInWithFee, err := smath.Mul64(amountIn, basisPoints-c.feeBP)
	if err != nil {
		return 0, err
	}
	numerator, err := smath.Mul64(amountInWithFee, reserveOut)
	if err != nil {
		return 0, err
	}
	scaledReserveIn, err := smath.Mul64(reserveIn, basisPoints)
	if err != nil {
		return 0, err
	}
	denominator, err := smath.Add64(scaledReserveIn, amountInWithFee)
	if err != nil {
		return 0, err
	}
	return numerator / denominator, nil
}

// Swap applies the trade to the reserves and returns the output amount.
func (c *ConstantProduct) Swap(amountIn uint64, xToY bool) (uint64, error) {
	amountOut, err := c.GetAmountOut(amountIn, xToY)
	if err != nil {
		return 0, err
	}
	if xToY {
		c.reserveX += amountIn
		c.reserveY -= amountOut
	} else {
		c.reserveY += amountIn
		c.reserveX -= amountOut
	}
	return amountOut, nil
}

// AddLiquidity returns the LP tokens owed to the depositor and the LP
// tokens to burn (nonzero only on the first deposit).
func (c *ConstantProduct) AddLiquidity(amountX uint64, amountY uint64, lpTokenSupply uint64) (uint64, uint64, error) {
	var (
		liquidity    uint64
		tokensToBurn uint64
	)
	if lpTokenSupply == 0 {
		k, err := smath.Mul64(amountX, amountY)
		if err != nil {
			return 0, 0, err
		}
		liquidity, err = smath.Sub(sqrt(k), MinimumLiquidity)
		if err != nil {
			return 0, 0, ErrInsufficientLiquidityMinted
		}
		tokensToBurn = MinimumLiquidity
	} else {
		tokenXChange, err := smath.Mul64(amountX, lpTokenSupply)
		if err != nil {
			return 0, 0, err
		}
		tokenXChange /= c.reserveX
		tokenYChange, err := smath.Mul64(amountY, lpTokenSupply)
		if err != nil {
			return 0, 0, err
		}
		tokenYChange /= c.reserveY
		liquidity = min(tokenXChange, tokenYChange)
	}
	if liquidity == 0 {
		return 0, 0, ErrInsufficientLiquidityMinted
	}
	c.reserveX += amountX
	c.reserveY += amountY
	return liquidity, tokensToBurn, nil
}

// RemoveLiquidity returns the pro-rata share of both reserves for the
// burned LP tokens.
func (c *ConstantProduct) RemoveLiquidity(tokensToBurn uint64, lpTokenSupply uint64) (uint64, uint64, error) {
	if lpTokenSupply == 0 {
		return 0, 0, ErrReservesZero
	}
	outputX, err := smath.Mul64(c.reserveX, tokensToBurn)
	if err != nil {
		return 0, 0, err
	}
	outputX /= lpTokenSupply
	outputY, err := smath.Mul64(c.reserveY, tokensToBurn)
	if err != nil {
		return 0, 0, err
	}
	outputY /= lpTokenSupply
	if outputX == 0 || outputY == 0 {
		return 0, 0, ErrInsufficientLiquidityBurned
	}
	c.reserveX -= outputX
	c.reserveY -= outputY
	return outputX, outputY, nil
}

func (c *ConstantProduct) GetState() (uint64, uint64) {
	return c.reserveX, c.reserveY
}

// https://github.com/Uniswap/v2-core/blob/ee547b17853e71ed4e0101ccfd52e70d5acded58/contracts/libraries/Math.sol#L10
func sqrt(y uint64) uint64 {
	if y > 3 {
		z := y
		x := (y / 2) + 1
		for x < z {
			z = x
			x = (y/x + x) / 2
		}
		return z
	} else if y != 0 {
		return 1
	}
	return 0
}

func min(x uint64, y uint64) uint64 {
	if x < y {
		return x
	}
	return y
}
