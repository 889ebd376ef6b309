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

var _ chain.Action = (*DisableSwapper)(nil)

// DisableSwapper drops a strategy from the directory with no delay.
type DisableSwapper struct {
	// Active registry record, required for StateKeys()
	Authority codec.Address `serialize:"true" json:"authority"`

	Strategy codec.Address `serialize:"true" json:"strategy"`
}

// ComputeUnits implements chain.Action.
func (*DisableSwapper) ComputeUnits(chain.Rules) uint64 {
	return DisableSwapperComputeUnits
}

// Execute implements chain.Action.
func (d *DisableSwapper) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, actor codec.Address, _ ids.ID) ([][]byte, error) {
	if d.Strategy == codec.EmptyAddress {
		return nil, ErrOutputAddressEmpty
	}
	if err := checkActiveAuthority(ctx, mu, d.Authority); err != nil {
		return nil, err
	}
	if err := storage.Authorize(ctx, mu, storage.RoleAdmin, actor); err != nil {
		return nil, err
	}

	activation, err := storage.GetSwapperActivationNoController(ctx, mu, d.Strategy)
	if err != nil {
		return nil, err
	}
	if activation == 0 {
		return nil, ErrOutputSwapperNotListed
	}
	if err := storage.RemoveSwapperActivation(ctx, mu, d.Strategy); err != nil {
		return nil, err
	}
	if _, err := storage.RemoveSwapperFromList(ctx, mu, d.Strategy); err != nil {
		return nil, err
	}

	return nil, nil
}

// GetTypeID implements chain.Action.
func (*DisableSwapper) GetTypeID() uint8 {
	return consts.DisableSwapperID
}

// StateKeys implements chain.Action.
func (d *DisableSwapper) StateKeys(_ codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.AuthorityPointerKey()):     state.Read,
		string(storage.AuthorityKey(d.Authority)): state.Read,
		string(storage.SwapperKey(d.Strategy)):    state.All,
		string(storage.SwapperListKey()):          state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*DisableSwapper) StateKeysMaxChunks() []uint16 {
	return []uint16{
		storage.AuthorityPointerChunks,
		storage.AuthorityChunks,
		storage.SwapperChunks,
		storage.SwapperListChunks,
	}
}

// ValidRange implements chain.Action.
func (*DisableSwapper) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
