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

var _ chain.Action = (*MintToken)(nil)

type MintToken struct {
	Token codec.Address `serialize:"true" json:"token"`
	To    codec.Address `serialize:"true" json:"to"`
	Value uint64        `serialize:"true" json:"value"`
}

// ComputeUnits implements chain.Action.
func (*MintToken) ComputeUnits(chain.Rules) uint64 {
	return MintTokenComputeUnits
}

// Execute implements chain.Action.
func (m *MintToken) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, actor codec.Address, _ ids.ID) ([][]byte, error) {
	if m.Value == 0 {
		return nil, ErrOutputValueZero
	}
	_, _, _, _, _, owner, err := storage.GetTokenInfoNoController(ctx, mu, m.Token)
	if err != nil {
		return nil, ErrOutputTokenDoesNotExist
	}
	if owner != actor {
		return nil, ErrOutputTokenNotOwner
	}
	if err := storage.MintToken(ctx, mu, m.Token, m.To, m.Value); err != nil {
		return nil, err
	}
	return nil, nil
}

// GetTypeID implements chain.Action.
func (*MintToken) GetTypeID() uint8 {
	return consts.MintTokenID
}

// StateKeys implements chain.Action.
func (m *MintToken) StateKeys(_ codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.TokenInfoKey(m.Token)):                 state.All,
		string(storage.TokenAccountBalanceKey(m.Token, m.To)): state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*MintToken) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.TokenInfoChunks, storage.TokenAccountBalanceChunks}
}

// ValidRange implements chain.Action.
func (*MintToken) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
