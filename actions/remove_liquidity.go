// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"encoding/binary"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	"github.com/DaiChronicles/treasuryvm/amm"
	"github.com/DaiChronicles/treasuryvm/consts"
	"github.com/DaiChronicles/treasuryvm/storage"
)

var _ chain.Action = (*RemoveLiquidity)(nil)

type RemoveLiquidity struct {
	TokenX codec.Address `serialize:"true" json:"tokenX"`
	TokenY codec.Address `serialize:"true" json:"tokenY"`

	Liquidity  uint64 `serialize:"true" json:"liquidity"`
	AmountXMin uint64 `serialize:"true" json:"amountXMin"`
	AmountYMin uint64 `serialize:"true" json:"amountYMin"`
	Deadline   int64  `serialize:"true" json:"deadline"`
}

// ComputeUnits implements chain.Action.
func (*RemoveLiquidity) ComputeUnits(chain.Rules) uint64 {
	return RemoveLiquidityComputeUnits
}

// Execute implements chain.Action.
func (r *RemoveLiquidity) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, timestamp int64, actor codec.Address, _ ids.ID) ([][]byte, error) {
	if r.Liquidity == 0 {
		return nil, ErrOutputValueZero
	}
	poolAddress, err := storage.LiquidityPoolAddress(r.TokenX, r.TokenY)
	if err != nil {
		return nil, ErrOutputIdenticalTokens
	}
	if _, err := mu.GetValue(ctx, storage.LiquidityPoolKey(poolAddress)); err != nil {
		return nil, ErrOutputLiquidityPoolDoesNotExist
	}

	amountXMin, amountYMin := r.AmountXMin, r.AmountYMin
	if storage.CompareAddress(r.TokenX, r.TokenY) == storage.GreaterThan {
		amountXMin, amountYMin = amountYMin, amountXMin
	}

	outputX, outputY, err := amm.RemoveLiquidity(ctx, mu, poolAddress, actor, r.Liquidity, amountXMin, amountYMin, r.Deadline, timestamp)
	if err != nil {
		return nil, err
	}

	return [][]byte{
		binary.BigEndian.AppendUint64(nil, outputX),
		binary.BigEndian.AppendUint64(nil, outputY),
	}, nil
}

// GetTypeID implements chain.Action.
func (*RemoveLiquidity) GetTypeID() uint8 {
	return consts.RemoveLiquidityID
}

// StateKeys implements chain.Action.
func (r *RemoveLiquidity) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	poolAddress, err := storage.LiquidityPoolAddress(r.TokenX, r.TokenY)
	if err != nil {
		return state.Keys{}
	}
	lpTokenAddress := storage.LiquidityPoolTokenAddress(poolAddress)
	return state.Keys{
		string(storage.LiquidityPoolKey(poolAddress)):                 state.All,
		string(storage.TokenInfoKey(lpTokenAddress)):                  state.All,
		string(storage.TokenAccountBalanceKey(r.TokenX, actor)):       state.All,
		string(storage.TokenAccountBalanceKey(r.TokenY, actor)):       state.All,
		string(storage.TokenAccountBalanceKey(r.TokenX, poolAddress)): state.All,
		string(storage.TokenAccountBalanceKey(r.TokenY, poolAddress)): state.All,
		string(storage.TokenAccountBalanceKey(lpTokenAddress, actor)): state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*RemoveLiquidity) StateKeysMaxChunks() []uint16 {
	return []uint16{
		storage.LiquidityPoolChunks,
		storage.TokenInfoChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
	}
}

// ValidRange implements chain.Action.
func (*RemoveLiquidity) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
