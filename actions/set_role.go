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

var _ chain.Action = (*SetRole)(nil)

// SetRole swaps a single role holder on the active record, effective
// immediately. Wholesale handovers go through the rotation timelock.
type SetRole struct {
	// Active registry record, required for StateKeys()
	Authority codec.Address `serialize:"true" json:"authority"`

	Role   uint8         `serialize:"true" json:"role"`
	Holder codec.Address `serialize:"true" json:"holder"`
}

// ComputeUnits implements chain.Action.
func (*SetRole) ComputeUnits(chain.Rules) uint64 {
	return SetRoleComputeUnits
}

// Execute implements chain.Action.
func (s *SetRole) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, actor codec.Address, _ ids.ID) ([][]byte, error) {
	role := storage.Role(s.Role)
	if !role.Valid() {
		return nil, ErrOutputInvalidRole
	}
	if s.Holder == codec.EmptyAddress {
		return nil, ErrOutputAddressEmpty
	}
	if err := checkActiveAuthority(ctx, mu, s.Authority); err != nil {
		return nil, err
	}
	if err := storage.Authorize(ctx, mu, storage.RoleAdmin, actor); err != nil {
		return nil, err
	}

	admin, contentAgent, liquidityAgent, treasurerAgent, treasury, pending, pendingActivation, err := storage.GetAuthorityNoController(ctx, mu, s.Authority)
	if err != nil {
		return nil, err
	}
	switch role {
	case storage.RoleAdmin:
		admin = s.Holder
	case storage.RoleContentAgent:
		contentAgent = s.Holder
	case storage.RoleLiquidityAgent:
		liquidityAgent = s.Holder
	case storage.RoleTreasurerAgent:
		treasurerAgent = s.Holder
	case storage.RoleTreasury:
		treasury = s.Holder
	}
	if err := storage.SetAuthority(ctx, mu, s.Authority, admin, contentAgent, liquidityAgent, treasurerAgent, treasury, pending, pendingActivation); err != nil {
		return nil, err
	}

	return nil, nil
}

// GetTypeID implements chain.Action.
func (*SetRole) GetTypeID() uint8 {
	return consts.SetRoleID
}

// StateKeys implements chain.Action.
func (s *SetRole) StateKeys(_ codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.AuthorityPointerKey()):     state.Read,
		string(storage.AuthorityKey(s.Authority)): state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*SetRole) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.AuthorityPointerChunks, storage.AuthorityChunks}
}

// ValidRange implements chain.Action.
func (*SetRole) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
