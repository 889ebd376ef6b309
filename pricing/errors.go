// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import "errors"

var (
	ErrReservesZero = errors.New("reserves are zero")
	ErrZeroInput    = errors.New("zero input")

	ErrInsufficientLiquidityMinted = errors.New("insufficient liquidity minted")
	ErrInsufficientLiquidityBurned = errors.New("insufficient liquidity burned")
)
