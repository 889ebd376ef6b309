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

var _ chain.Action = (*BurnToken)(nil)

type BurnToken struct {
	Token codec.Address `serialize:"true" json:"token"`
	Value uint64        `serialize:"true" json:"value"`
}

// ComputeUnits implements chain.Action.
func (*BurnToken) ComputeUnits(chain.Rules) uint64 {
	return BurnTokenComputeUnits
}

// Execute implements chain.Action.
func (b *BurnToken) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, actor codec.Address, _ ids.ID) ([][]byte, error) {
	if b.Value == 0 {
		return nil, ErrOutputValueZero
	}
	if _, err := mu.GetValue(ctx, storage.TokenInfoKey(b.Token)); err != nil {
		return nil, ErrOutputTokenDoesNotExist
	}
	if err := storage.BurnToken(ctx, mu, b.Token, actor, b.Value); err != nil {
		return nil, err
	}
	return nil, nil
}

// GetTypeID implements chain.Action.
func (*BurnToken) GetTypeID() uint8 {
	return consts.BurnTokenID
}

// StateKeys implements chain.Action.
func (b *BurnToken) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.TokenInfoKey(b.Token)):                  state.All,
		string(storage.TokenAccountBalanceKey(b.Token, actor)): state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*BurnToken) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.TokenInfoChunks, storage.TokenAccountBalanceChunks}
}

// ValidRange implements chain.Action.
func (*BurnToken) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
