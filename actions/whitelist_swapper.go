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

var _ chain.Action = (*WhitelistSwapper)(nil)

// WhitelistSwapper admits a strategy address to the swapper directory.
// The entry only becomes usable once its activation delay elapses;
// removal through DisableSwapper is immediate.
type WhitelistSwapper struct {
	// Active registry record, required for StateKeys()
	Authority codec.Address `serialize:"true" json:"authority"`

	Strategy codec.Address `serialize:"true" json:"strategy"`
}

// ComputeUnits implements chain.Action.
func (*WhitelistSwapper) ComputeUnits(chain.Rules) uint64 {
	return WhitelistSwapperComputeUnits
}

// Execute implements chain.Action.
func (w *WhitelistSwapper) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, timestamp int64, actor codec.Address, _ ids.ID) ([][]byte, error) {
	if w.Strategy == codec.EmptyAddress {
		return nil, ErrOutputAddressEmpty
	}
	if err := checkActiveAuthority(ctx, mu, w.Authority); err != nil {
		return nil, err
	}
	if err := storage.Authorize(ctx, mu, storage.RoleAdmin, actor); err != nil {
		return nil, err
	}

	existing, err := storage.GetSwapperActivationNoController(ctx, mu, w.Strategy)
	if err != nil {
		return nil, err
	}
	if existing != 0 {
		return nil, ErrOutputSwapperAlreadyListed
	}
	swappers, err := storage.GetSwapperListNoController(ctx, mu)
	if err != nil {
		return nil, err
	}
	if len(swappers)+1 > storage.MaxSwappers {
		return nil, storage.ErrSwapperListFull
	}

	activation := timestamp + storage.SwapperActivationDelay
	if err := storage.SetSwapperActivation(ctx, mu, w.Strategy, activation); err != nil {
		return nil, err
	}
	if err := storage.SetSwapperList(ctx, mu, append(swappers, w.Strategy)); err != nil {
		return nil, err
	}

	return [][]byte{binary.BigEndian.AppendUint64(nil, uint64(activation))}, nil
}

// GetTypeID implements chain.Action.
func (*WhitelistSwapper) GetTypeID() uint8 {
	return consts.WhitelistSwapperID
}

// StateKeys implements chain.Action.
func (w *WhitelistSwapper) StateKeys(_ codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.AuthorityPointerKey()):     state.Read,
		string(storage.AuthorityKey(w.Authority)): state.Read,
		string(storage.SwapperKey(w.Strategy)):    state.All,
		string(storage.SwapperListKey()):          state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*WhitelistSwapper) StateKeysMaxChunks() []uint16 {
	return []uint16{
		storage.AuthorityPointerChunks,
		storage.AuthorityChunks,
		storage.SwapperChunks,
		storage.SwapperListChunks,
	}
}

// ValidRange implements chain.Action.
func (*WhitelistSwapper) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
