// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	"github.com/DaiChronicles/treasuryvm/consts"
	"github.com/DaiChronicles/treasuryvm/storage"
)

var _ chain.Action = (*CreateAuthority)(nil)

// CreateAuthority writes a registry record at an address derived from the
// action ID. The record is inert until the active pointer names it; the
// very first record ever created becomes active immediately (bootstrap).
type CreateAuthority struct {
	Admin          codec.Address `serialize:"true" json:"admin"`
	ContentAgent   codec.Address `serialize:"true" json:"contentAgent"`
	LiquidityAgent codec.Address `serialize:"true" json:"liquidityAgent"`
	TreasurerAgent codec.Address `serialize:"true" json:"treasurerAgent"`
	Treasury       codec.Address `serialize:"true" json:"treasury"`
}

// ComputeUnits implements chain.Action.
func (*CreateAuthority) ComputeUnits(chain.Rules) uint64 {
	return CreateAuthorityComputeUnits
}

// Execute implements chain.Action.
func (c *CreateAuthority) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, _ codec.Address, actionID ids.ID) ([][]byte, error) {
	for _, addr := range []codec.Address{c.Admin, c.ContentAgent, c.LiquidityAgent, c.TreasurerAgent, c.Treasury} {
		if addr == codec.EmptyAddress {
			return nil, ErrOutputAddressEmpty
		}
	}

	authority := storage.AuthorityAddress(actionID)
	if err := storage.SetAuthority(
		ctx,
		mu,
		authority,
		c.Admin,
		c.ContentAgent,
		c.LiquidityAgent,
		c.TreasurerAgent,
		c.Treasury,
		codec.EmptyAddress,
		0,
	); err != nil {
		return nil, err
	}

	_, err := storage.GetActiveAuthorityNoController(ctx, mu)
	switch {
	case errors.Is(err, storage.ErrAuthorityNotInitialized):
		if err := storage.SetActiveAuthority(ctx, mu, authority); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	return [][]byte{authority[:]}, nil
}

// GetTypeID implements chain.Action.
func (*CreateAuthority) GetTypeID() uint8 {
	return consts.CreateAuthorityID
}

// StateKeys implements chain.Action.
func (*CreateAuthority) StateKeys(_ codec.Address, actionID ids.ID) state.Keys {
	return state.Keys{
		string(storage.AuthorityKey(storage.AuthorityAddress(actionID))): state.All,
		string(storage.AuthorityPointerKey()):                            state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*CreateAuthority) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.AuthorityChunks, storage.AuthorityPointerChunks}
}

// ValidRange implements chain.Action.
func (*CreateAuthority) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
