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

var _ chain.Action = (*AddLiquidity)(nil)

type AddLiquidity struct {
	TokenX codec.Address `serialize:"true" json:"tokenX"`
	TokenY codec.Address `serialize:"true" json:"tokenY"`

	AmountXDesired uint64 `serialize:"true" json:"amountXDesired"`
	AmountYDesired uint64 `serialize:"true" json:"amountYDesired"`
	AmountXMin     uint64 `serialize:"true" json:"amountXMin"`
	AmountYMin     uint64 `serialize:"true" json:"amountYMin"`
	Deadline       int64  `serialize:"true" json:"deadline"`
}

// ComputeUnits implements chain.Action.
func (*AddLiquidity) ComputeUnits(chain.Rules) uint64 {
	return AddLiquidityComputeUnits
}

// Execute implements chain.Action.
func (a *AddLiquidity) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, timestamp int64, actor codec.Address, _ ids.ID) ([][]byte, error) {
	if a.AmountXDesired == 0 || a.AmountYDesired == 0 {
		return nil, ErrOutputValueZero
	}
	poolAddress, err := storage.LiquidityPoolAddress(a.TokenX, a.TokenY)
	if err != nil {
		return nil, ErrOutputIdenticalTokens
	}
	if _, err := mu.GetValue(ctx, storage.LiquidityPoolKey(poolAddress)); err != nil {
		return nil, ErrOutputLiquidityPoolDoesNotExist
	}

	// The pool record is ordered; reorient the deposit to match.
	amountXDesired, amountYDesired := a.AmountXDesired, a.AmountYDesired
	amountXMin, amountYMin := a.AmountXMin, a.AmountYMin
	if storage.CompareAddress(a.TokenX, a.TokenY) == storage.GreaterThan {
		amountXDesired, amountYDesired = amountYDesired, amountXDesired
		amountXMin, amountYMin = amountYMin, amountXMin
	}

	amountX, amountY, liquidity, err := amm.AddLiquidity(ctx, mu, poolAddress, actor, amountXDesired, amountYDesired, amountXMin, amountYMin, a.Deadline, timestamp)
	if err != nil {
		return nil, err
	}

	return [][]byte{
		binary.BigEndian.AppendUint64(nil, amountX),
		binary.BigEndian.AppendUint64(nil, amountY),
		binary.BigEndian.AppendUint64(nil, liquidity),
	}, nil
}

// GetTypeID implements chain.Action.
func (*AddLiquidity) GetTypeID() uint8 {
	return consts.AddLiquidityID
}

// StateKeys implements chain.Action.
func (a *AddLiquidity) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	poolAddress, err := storage.LiquidityPoolAddress(a.TokenX, a.TokenY)
	if err != nil {
		return state.Keys{}
	}
	lpTokenAddress := storage.LiquidityPoolTokenAddress(poolAddress)
	return state.Keys{
		string(storage.LiquidityPoolKey(poolAddress)):                       state.All,
		string(storage.TokenInfoKey(lpTokenAddress)):                        state.All,
		string(storage.TokenAccountBalanceKey(a.TokenX, actor)):             state.All,
		string(storage.TokenAccountBalanceKey(a.TokenY, actor)):             state.All,
		string(storage.TokenAccountBalanceKey(a.TokenX, poolAddress)):       state.All,
		string(storage.TokenAccountBalanceKey(a.TokenY, poolAddress)):       state.All,
		string(storage.TokenAccountBalanceKey(lpTokenAddress, actor)):       state.All,
		string(storage.TokenAccountBalanceKey(lpTokenAddress, poolAddress)): state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*AddLiquidity) StateKeysMaxChunks() []uint16 {
	return []uint16{
		storage.LiquidityPoolChunks,
		storage.TokenInfoChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
	}
}

// ValidRange implements chain.Action.
func (*AddLiquidity) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
