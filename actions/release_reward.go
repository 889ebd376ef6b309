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

	smath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/DaiChronicles/treasuryvm/consts"
	"github.com/DaiChronicles/treasuryvm/storage"
)

var _ chain.Action = (*ReleaseReward)(nil)

// ReleaseReward pays a winner's full claimable balance out of the vault.
// Anyone may trigger the release; ledger effects land before the transfer.
type ReleaseReward struct {
	Winner codec.Address `serialize:"true" json:"winner"`
}

// ComputeUnits implements chain.Action.
func (*ReleaseReward) ComputeUnits(chain.Rules) uint64 {
	return ReleaseRewardComputeUnits
}

// Execute implements chain.Action.
func (r *ReleaseReward) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, _ codec.Address, _ ids.ID) ([][]byte, error) {
	claimable, err := storage.GetClaimableRewardNoController(ctx, mu, r.Winner)
	if err != nil {
		return nil, err
	}
	if claimable == 0 {
		return nil, ErrOutputNothingToRelease
	}

	openReward, openToClaim, released, err := storage.GetRewardTotalsNoController(ctx, mu)
	if err != nil {
		return nil, err
	}
	newOpenToClaim, err := smath.Sub(openToClaim, claimable)
	if err != nil {
		return nil, err
	}
	newReleased, err := smath.Add64(released, claimable)
	if err != nil {
		return nil, err
	}
	if err := storage.SetClaimableReward(ctx, mu, r.Winner, 0); err != nil {
		return nil, err
	}
	if err := storage.SetRewardTotals(ctx, mu, openReward, newOpenToClaim, newReleased); err != nil {
		return nil, err
	}
	if err := storage.TransferToken(ctx, mu, storage.CoinAddress, storage.RewardVaultAddress, r.Winner, claimable); err != nil {
		return nil, err
	}

	return [][]byte{binary.BigEndian.AppendUint64(nil, claimable)}, nil
}

// GetTypeID implements chain.Action.
func (*ReleaseReward) GetTypeID() uint8 {
	return consts.ReleaseRewardID
}

// StateKeys implements chain.Action.
func (r *ReleaseReward) StateKeys(_ codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.RewardAccountKey(r.Winner)):                                              state.All,
		string(storage.RewardTotalsKey()):                                                       state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, r.Winner)):                   state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, storage.RewardVaultAddress)): state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*ReleaseReward) StateKeysMaxChunks() []uint16 {
	return []uint16{
		storage.RewardAccountChunks,
		storage.RewardTotalsChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
	}
}

// ValidRange implements chain.Action.
func (*ReleaseReward) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
