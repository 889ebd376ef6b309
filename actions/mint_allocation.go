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

var _ chain.Action = (*MintAllocation)(nil)

// MintAllocation mints native coin from one of the four capped pools. The
// cap is a share of the total supply at execution time, so headroom moves
// as supply moves.
type MintAllocation struct {
	// Active registry record, required for StateKeys()
	Authority codec.Address `serialize:"true" json:"authority"`

	Pool   uint8         `serialize:"true" json:"pool"`
	To     codec.Address `serialize:"true" json:"to"`
	Amount uint64        `serialize:"true" json:"amount"`
}

// ComputeUnits implements chain.Action.
func (*MintAllocation) ComputeUnits(chain.Rules) uint64 {
	return MintAllocationComputeUnits
}

// Execute implements chain.Action.
func (m *MintAllocation) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, actor codec.Address, _ ids.ID) ([][]byte, error) {
	pool := storage.Allocation(m.Pool)
	if !pool.Valid() {
		return nil, ErrOutputInvalidAllocation
	}
	if m.Amount == 0 {
		return nil, ErrOutputValueZero
	}
	if err := checkActiveAuthority(ctx, mu, m.Authority); err != nil {
		return nil, err
	}
	if err := storage.Authorize(ctx, mu, storage.RoleAdmin, actor); err != nil {
		return nil, err
	}

	newMinted, cap, err := storage.MintAllocation(ctx, mu, pool, m.To, m.Amount)
	if err != nil {
		return nil, err
	}

	return [][]byte{
		binary.BigEndian.AppendUint64(nil, newMinted),
		binary.BigEndian.AppendUint64(nil, cap),
	}, nil
}

// GetTypeID implements chain.Action.
func (*MintAllocation) GetTypeID() uint8 {
	return consts.MintAllocationID
}

// StateKeys implements chain.Action.
func (m *MintAllocation) StateKeys(_ codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.AuthorityPointerKey()):                             state.Read,
		string(storage.AuthorityKey(m.Authority)):                         state.Read,
		string(storage.AllocationKey(storage.Allocation(m.Pool))):         state.All,
		string(storage.TokenInfoKey(storage.CoinAddress)):                 state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, m.To)): state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*MintAllocation) StateKeysMaxChunks() []uint16 {
	return []uint16{
		storage.AuthorityPointerChunks,
		storage.AuthorityChunks,
		storage.AllocationChunks,
		storage.TokenInfoChunks,
		storage.TokenAccountBalanceChunks,
	}
}

// ValidRange implements chain.Action.
func (*MintAllocation) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
