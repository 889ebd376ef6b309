// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package strategies

import (
	"context"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	"github.com/DaiChronicles/treasuryvm/amm"
	"github.com/DaiChronicles/treasuryvm/storage"
)

const PoolStrategyName = "pool-v1"

var _ Strategy = (*PoolStrategy)(nil)

// PoolStrategy routes the swap through the on-chain pool for the pair.
type PoolStrategy struct{}

func (*PoolStrategy) Swap(
	ctx context.Context,
	mu state.Mutable,
	self codec.Address,
	treasury codec.Address,
	fromToken codec.Address,
	toToken codec.Address,
	amountIn uint64,
	amountOutMin uint64,
	now int64,
) (uint64, error) {
	poolAddress, err := storage.LiquidityPoolAddress(fromToken, toToken)
	if err != nil {
		return 0, err
	}
	// Pull the input under the granted allowance.
	if err := storage.TransferFromToken(ctx, mu, fromToken, treasury, self, self, amountIn); err != nil {
		return 0, err
	}
	amountOut, err := amm.SwapExactIn(ctx, mu, poolAddress, self, fromToken, amountIn, amountOutMin, now, now)
	if err != nil {
		return 0, err
	}
	// Leave the output approved so the treasury can pull it back.
	if err := storage.SetTokenAllowance(ctx, mu, toToken, self, treasury, amountOut); err != nil {
		return 0, err
	}
	return amountOut, nil
}

// StateKeys implements Strategy.
func (*PoolStrategy) StateKeys(self codec.Address, treasury codec.Address, fromToken codec.Address, toToken codec.Address) state.Keys {
	poolAddress, err := storage.LiquidityPoolAddress(fromToken, toToken)
	if err != nil {
		return state.Keys{}
	}
	return state.Keys{
		string(storage.LiquidityPoolKey(poolAddress)):                  state.All,
		string(storage.TokenAccountBalanceKey(fromToken, self)):        state.All,
		string(storage.TokenAccountBalanceKey(toToken, self)):          state.All,
		string(storage.TokenAccountBalanceKey(fromToken, poolAddress)): state.All,
		string(storage.TokenAccountBalanceKey(toToken, poolAddress)):   state.All,
		string(storage.TokenAllowanceKey(toToken, self, treasury)):     state.All,
	}
}

// StateKeysMaxChunks implements Strategy.
func (*PoolStrategy) StateKeysMaxChunks() []uint16 {
	return []uint16{
		storage.LiquidityPoolChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAllowanceChunks,
	}
}
