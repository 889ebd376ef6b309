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

var _ chain.Action = (*ApproveToken)(nil)

// ApproveToken sets the allowance of Spender over the actor's balance to
// exactly Value. Zero clears the grant.
type ApproveToken struct {
	Token   codec.Address `serialize:"true" json:"token"`
	Spender codec.Address `serialize:"true" json:"spender"`
	Value   uint64        `serialize:"true" json:"value"`
}

// ComputeUnits implements chain.Action.
func (*ApproveToken) ComputeUnits(chain.Rules) uint64 {
	return ApproveTokenComputeUnits
}

// Execute implements chain.Action.
func (a *ApproveToken) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, actor codec.Address, _ ids.ID) ([][]byte, error) {
	if _, err := mu.GetValue(ctx, storage.TokenInfoKey(a.Token)); err != nil {
		return nil, ErrOutputTokenDoesNotExist
	}
	if err := storage.SetTokenAllowance(ctx, mu, a.Token, actor, a.Spender, a.Value); err != nil {
		return nil, err
	}
	return nil, nil
}

// GetTypeID implements chain.Action.
func (*ApproveToken) GetTypeID() uint8 {
	return consts.ApproveTokenID
}

// StateKeys implements chain.Action.
func (a *ApproveToken) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.TokenInfoKey(a.Token)):                        state.Read,
		string(storage.TokenAllowanceKey(a.Token, actor, a.Spender)): state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*ApproveToken) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.TokenInfoChunks, storage.TokenAllowanceChunks}
}

// ValidRange implements chain.Action.
func (*ApproveToken) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
