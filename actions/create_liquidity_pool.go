// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	"github.com/DaiChronicles/treasuryvm/consts"
	"github.com/DaiChronicles/treasuryvm/storage"
)

// Pool fees above 10% are rejected outright.
const maxPoolFeeBP = 1_000

var _ chain.Action = (*CreateLiquidityPool)(nil)

type CreateLiquidityPool struct {
	TokenX codec.Address `serialize:"true" json:"tokenX"`
	TokenY codec.Address `serialize:"true" json:"tokenY"`
	FeeBP  uint64        `serialize:"true" json:"feeBP"`
}

// ComputeUnits implements chain.Action.
func (*CreateLiquidityPool) ComputeUnits(chain.Rules) uint64 {
	return CreateLiquidityPoolComputeUnits
}

// Execute implements chain.Action.
func (c *CreateLiquidityPool) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, _ codec.Address, _ ids.ID) ([][]byte, error) {
	if c.FeeBP > maxPoolFeeBP {
		return nil, ErrOutputInvalidFee
	}
	if _, err := mu.GetValue(ctx, storage.TokenInfoKey(c.TokenX)); err != nil {
		return nil, ErrOutputTokenXDoesNotExist
	}
	if _, err := mu.GetValue(ctx, storage.TokenInfoKey(c.TokenY)); err != nil {
		return nil, ErrOutputTokenYDoesNotExist
	}

	poolAddress, err := storage.LiquidityPoolAddress(c.TokenX, c.TokenY)
	if err != nil {
		return nil, ErrOutputIdenticalTokens
	}
	if _, err := mu.GetValue(ctx, storage.LiquidityPoolKey(poolAddress)); err == nil {
		return nil, ErrOutputLiquidityPoolAlreadyExists
	}

	lpTokenAddress := storage.LiquidityPoolTokenAddress(poolAddress)
	if err := storage.SetTokenInfo(
		ctx,
		mu,
		lpTokenAddress,
		[]byte(storage.LiquidityPoolTokenName),
		[]byte(storage.LiquidityPoolTokenSymbol),
		storage.LiquidityPoolTokenDecimals,
		[]byte(storage.LiquidityPoolTokenMetadata),
		0,
		poolAddress,
	); err != nil {
		return nil, err
	}
	if err := storage.SetLiquidityPool(ctx, mu, poolAddress, c.TokenX, c.TokenY, c.FeeBP, 0, 0, lpTokenAddress); err != nil {
		return nil, err
	}

	return [][]byte{poolAddress[:], lpTokenAddress[:]}, nil
}

// GetTypeID implements chain.Action.
func (*CreateLiquidityPool) GetTypeID() uint8 {
	return consts.CreateLiquidityPoolID
}

// StateKeys implements chain.Action.
func (c *CreateLiquidityPool) StateKeys(_ codec.Address, _ ids.ID) state.Keys {
	poolAddress, err := storage.LiquidityPoolAddress(c.TokenX, c.TokenY)
	if err != nil {
		return state.Keys{}
	}
	lpTokenAddress := storage.LiquidityPoolTokenAddress(poolAddress)
	return state.Keys{
		string(storage.TokenInfoKey(c.TokenX)):        state.Read,
		string(storage.TokenInfoKey(c.TokenY)):        state.Read,
		string(storage.LiquidityPoolKey(poolAddress)): state.All,
		string(storage.TokenInfoKey(lpTokenAddress)):  state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*CreateLiquidityPool) StateKeysMaxChunks() []uint16 {
	return []uint16{
		storage.TokenInfoChunks,
		storage.TokenInfoChunks,
		storage.LiquidityPoolChunks,
		storage.TokenInfoChunks,
	}
}

// ValidRange implements chain.Action.
func (*CreateLiquidityPool) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
