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

var _ chain.Action = (*ExecuteRotation)(nil)

// ExecuteRotation finalizes a pending handover once its delay has elapsed:
// the pointer moves to the proposed record and the pending slot is cleared.
type ExecuteRotation struct {
	// Active registry record, required for StateKeys()
	Authority codec.Address `serialize:"true" json:"authority"`
}

// ComputeUnits implements chain.Action.
func (*ExecuteRotation) ComputeUnits(chain.Rules) uint64 {
	return ExecuteRotationComputeUnits
}

// Execute implements chain.Action.
func (e *ExecuteRotation) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, timestamp int64, actor codec.Address, _ ids.ID) ([][]byte, error) {
	if err := checkActiveAuthority(ctx, mu, e.Authority); err != nil {
		return nil, err
	}
	if err := storage.Authorize(ctx, mu, storage.RoleAdmin, actor); err != nil {
		return nil, err
	}

	admin, contentAgent, liquidityAgent, treasurerAgent, treasury, pending, pendingActivation, err := storage.GetAuthorityNoController(ctx, mu, e.Authority)
	if err != nil {
		return nil, err
	}
	if pending == codec.EmptyAddress {
		return nil, ErrOutputNoRotationPending
	}
	if timestamp < pendingActivation {
		return nil, ErrOutputRotationNotReady
	}

	if err := storage.SetActiveAuthority(ctx, mu, pending); err != nil {
		return nil, err
	}
	if err := storage.SetAuthority(ctx, mu, e.Authority, admin, contentAgent, liquidityAgent, treasurerAgent, treasury, codec.EmptyAddress, 0); err != nil {
		return nil, err
	}

	return [][]byte{pending[:]}, nil
}

// GetTypeID implements chain.Action.
func (*ExecuteRotation) GetTypeID() uint8 {
	return consts.ExecuteRotationID
}

// StateKeys implements chain.Action.
func (e *ExecuteRotation) StateKeys(_ codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.AuthorityPointerKey()):     state.All,
		string(storage.AuthorityKey(e.Authority)): state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*ExecuteRotation) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.AuthorityPointerChunks, storage.AuthorityChunks}
}

// ValidRange implements chain.Action.
func (*ExecuteRotation) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
