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

var _ chain.Action = (*SetSlippageTolerance)(nil)

type SetSlippageTolerance struct {
	// Active registry record, required for StateKeys()
	Authority codec.Address `serialize:"true" json:"authority"`

	ToleranceBP uint64 `serialize:"true" json:"toleranceBP"`
}

// ComputeUnits implements chain.Action.
func (*SetSlippageTolerance) ComputeUnits(chain.Rules) uint64 {
	return SetSlippageToleranceComputeUnits
}

// Execute implements chain.Action.
func (s *SetSlippageTolerance) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, actor codec.Address, _ ids.ID) ([][]byte, error) {
	if s.ToleranceBP > storage.MaxSlippageBP {
		return nil, ErrOutputSlippageToleranceTooLarge
	}
	if err := checkActiveAuthority(ctx, mu, s.Authority); err != nil {
		return nil, err
	}
	if err := storage.Authorize(ctx, mu, storage.RoleAdmin, actor); err != nil {
		return nil, err
	}
	if err := storage.SetSlippageTolerance(ctx, mu, s.ToleranceBP); err != nil {
		return nil, err
	}
	return nil, nil
}

// GetTypeID implements chain.Action.
func (*SetSlippageTolerance) GetTypeID() uint8 {
	return consts.SetSlippageToleranceID
}

// StateKeys implements chain.Action.
func (s *SetSlippageTolerance) StateKeys(_ codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.AuthorityPointerKey()):     state.Read,
		string(storage.AuthorityKey(s.Authority)): state.Read,
		string(storage.SlippageToleranceKey()):    state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*SetSlippageTolerance) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.AuthorityPointerChunks, storage.AuthorityChunks, storage.SlippageChunks}
}

// ValidRange implements chain.Action.
func (*SetSlippageTolerance) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
