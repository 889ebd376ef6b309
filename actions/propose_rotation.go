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

	"github.com/DaiChronicles/treasuryvm/consts"
	"github.com/DaiChronicles/treasuryvm/storage"
)

var _ chain.Action = (*ProposeRotation)(nil)

// ProposeRotation stages a timelocked handover of the active registry to an
// existing record. Only one proposal may be pending at a time.
type ProposeRotation struct {
	// Active registry record, required for StateKeys()
	Authority codec.Address `serialize:"true" json:"authority"`

	NewAuthority codec.Address `serialize:"true" json:"newAuthority"`
}

// ComputeUnits implements chain.Action.
func (*ProposeRotation) ComputeUnits(chain.Rules) uint64 {
	return ProposeRotationComputeUnits
}

// Execute implements chain.Action.
func (p *ProposeRotation) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, timestamp int64, actor codec.Address, _ ids.ID) ([][]byte, error) {
	if p.NewAuthority == codec.EmptyAddress {
		return nil, ErrOutputAddressEmpty
	}
	if err := checkActiveAuthority(ctx, mu, p.Authority); err != nil {
		return nil, err
	}
	if err := storage.Authorize(ctx, mu, storage.RoleAdmin, actor); err != nil {
		return nil, err
	}
	if _, err := mu.GetValue(ctx, storage.AuthorityKey(p.NewAuthority)); err != nil {
		return nil, ErrOutputAuthorityDoesNotExist
	}

	admin, contentAgent, liquidityAgent, treasurerAgent, treasury, pending, _, err := storage.GetAuthorityNoController(ctx, mu, p.Authority)
	if err != nil {
		return nil, err
	}
	if pending != codec.EmptyAddress {
		return nil, ErrOutputRotationAlreadyPending
	}

	activation := timestamp + storage.RotationDelay
	if err := storage.SetAuthority(ctx, mu, p.Authority, admin, contentAgent, liquidityAgent, treasurerAgent, treasury, p.NewAuthority, activation); err != nil {
		return nil, err
	}

	return [][]byte{binary.BigEndian.AppendUint64(nil, uint64(activation))}, nil
}

// GetTypeID implements chain.Action.
func (*ProposeRotation) GetTypeID() uint8 {
	return consts.ProposeRotationID
}

// StateKeys implements chain.Action.
func (p *ProposeRotation) StateKeys(_ codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.AuthorityPointerKey()):        state.Read,
		string(storage.AuthorityKey(p.Authority)):    state.All,
		string(storage.AuthorityKey(p.NewAuthority)): state.Read,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*ProposeRotation) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.AuthorityPointerChunks, storage.AuthorityChunks, storage.AuthorityChunks}
}

// ValidRange implements chain.Action.
func (*ProposeRotation) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
