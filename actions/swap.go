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

var _ chain.Action = (*Swap)(nil)

type Swap struct {
	TokenIn  codec.Address `serialize:"true" json:"tokenIn"`
	TokenOut codec.Address `serialize:"true" json:"tokenOut"`

	AmountIn     uint64 `serialize:"true" json:"amountIn"`
	AmountOutMin uint64 `serialize:"true" json:"amountOutMin"`
	Deadline     int64  `serialize:"true" json:"deadline"`
}

// ComputeUnits implements chain.Action.
func (*Swap) ComputeUnits(chain.Rules) uint64 {
	return SwapComputeUnits
}

// Execute implements chain.Action.
func (s *Swap) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, timestamp int64, actor codec.Address, _ ids.ID) ([][]byte, error) {
	if s.AmountIn == 0 {
		return nil, ErrOutputValueZero
	}
	poolAddress, err := storage.LiquidityPoolAddress(s.TokenIn, s.TokenOut)
	if err != nil {
		return nil, ErrOutputIdenticalTokens
	}
	if _, err := mu.GetValue(ctx, storage.LiquidityPoolKey(poolAddress)); err != nil {
		return nil, ErrOutputLiquidityPoolDoesNotExist
	}

	amountOut, err := amm.SwapExactIn(ctx, mu, poolAddress, actor, s.TokenIn, s.AmountIn, s.AmountOutMin, s.Deadline, timestamp)
	if err != nil {
		return nil, err
	}

	return [][]byte{binary.BigEndian.AppendUint64(nil, amountOut)}, nil
}

// GetTypeID implements chain.Action.
func (*Swap) GetTypeID() uint8 {
	return consts.SwapID
}

// StateKeys implements chain.Action.
func (s *Swap) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	poolAddress, err := storage.LiquidityPoolAddress(s.TokenIn, s.TokenOut)
	if err != nil {
		return state.Keys{}
	}
	return state.Keys{
		string(storage.LiquidityPoolKey(poolAddress)):                   state.All,
		string(storage.TokenAccountBalanceKey(s.TokenIn, actor)):        state.All,
		string(storage.TokenAccountBalanceKey(s.TokenOut, actor)):       state.All,
		string(storage.TokenAccountBalanceKey(s.TokenIn, poolAddress)):  state.All,
		string(storage.TokenAccountBalanceKey(s.TokenOut, poolAddress)): state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*Swap) StateKeysMaxChunks() []uint16 {
	return []uint16{
		storage.LiquidityPoolChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
	}
}

// ValidRange implements chain.Action.
func (*Swap) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
