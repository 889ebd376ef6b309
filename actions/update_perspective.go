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

var _ chain.Action = (*UpdatePerspective)(nil)

// UpdatePerspective rewrites a collectible's perspective text. Only the
// content agent may curate, and each item has a cooldown between edits.
type UpdatePerspective struct {
	// Active registry record, required for StateKeys()
	Authority codec.Address `serialize:"true" json:"authority"`

	Item        ids.ID `serialize:"true" json:"item"`
	Perspective []byte `serialize:"true" json:"perspective"`
}

// ComputeUnits implements chain.Action.
func (*UpdatePerspective) ComputeUnits(chain.Rules) uint64 {
	return UpdatePerspectiveComputeUnits
}

// Execute implements chain.Action.
func (u *UpdatePerspective) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, timestamp int64, actor codec.Address, _ ids.ID) ([][]byte, error) {
	if len(u.Perspective) == 0 || len(u.Perspective) > storage.MaxPerspectiveSize {
		return nil, ErrOutputPerspectiveTooLarge
	}
	if err := checkActiveAuthority(ctx, mu, u.Authority); err != nil {
		return nil, err
	}
	if err := storage.Authorize(ctx, mu, storage.RoleContentAgent, actor); err != nil {
		return nil, err
	}

	owner, _, lastUpdate, err := storage.GetCollectibleNoController(ctx, mu, u.Item)
	if err != nil {
		return nil, ErrOutputCollectibleMissing
	}
	if timestamp < lastUpdate+storage.PerspectiveCooldown {
		return nil, ErrOutputPerspectiveCooldown
	}
	if err := storage.SetCollectible(ctx, mu, u.Item, owner, u.Perspective, timestamp); err != nil {
		return nil, err
	}

	return nil, nil
}

// GetTypeID implements chain.Action.
func (*UpdatePerspective) GetTypeID() uint8 {
	return consts.UpdatePerspectiveID
}

// StateKeys implements chain.Action.
func (u *UpdatePerspective) StateKeys(_ codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.AuthorityPointerKey()):     state.Read,
		string(storage.AuthorityKey(u.Authority)): state.Read,
		string(storage.CollectibleKey(u.Item)):    state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*UpdatePerspective) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.AuthorityPointerChunks, storage.AuthorityChunks, storage.CollectibleChunks}
}

// ValidRange implements chain.Action.
func (*UpdatePerspective) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
