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

var _ chain.Action = (*DistributeRewards)(nil)

// DistributeRewards splits the open reward across winners by basis-point
// shares. Shares must sum to exactly 10000; each cut is floored, and the
// rounding remainder stays open for the next round.
type DistributeRewards struct {
	// Active registry record, required for StateKeys()
	Authority codec.Address `serialize:"true" json:"authority"`

	Winners []codec.Address `serialize:"true" json:"winners"`
	Shares  []uint64        `serialize:"true" json:"shares"`
}

// ComputeUnits implements chain.Action.
func (*DistributeRewards) ComputeUnits(chain.Rules) uint64 {
	return DistributeRewardsComputeUnits
}

// Execute implements chain.Action.
func (d *DistributeRewards) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, actor codec.Address, _ ids.ID) ([][]byte, error) {
	if len(d.Winners) == 0 {
		return nil, ErrOutputDistributionEmpty
	}
	if len(d.Winners) > storage.MaxDistributionWinners {
		return nil, ErrOutputDistributionTooLarge
	}
	if len(d.Winners) != len(d.Shares) {
		return nil, ErrOutputDistributionMismatch
	}
	var sum uint64
	for _, share := range d.Shares {
		s, err := smath.Add64(sum, share)
		if err != nil {
			return nil, err
		}
		sum = s
	}
	if sum != storage.BasisPoints {
		return nil, ErrOutputSharesSumInvalid
	}
	if err := checkActiveAuthority(ctx, mu, d.Authority); err != nil {
		return nil, err
	}
	if err := storage.Authorize(ctx, mu, storage.RoleTreasurerAgent, actor); err != nil {
		return nil, err
	}

	openReward, openToClaim, released, err := storage.GetRewardTotalsNoController(ctx, mu)
	if err != nil {
		return nil, err
	}
	if openReward == 0 {
		return nil, ErrOutputNoOpenReward
	}

	var distributed uint64
	for i, winner := range d.Winners {
		scaled, err := smath.Mul64(openReward, d.Shares[i])
		if err != nil {
			return nil, err
		}
		cut := scaled / storage.BasisPoints
		total, err := smath.Add64(distributed, cut)
		if err != nil {
			return nil, err
		}
		if total > openReward {
			return nil, ErrOutputDistributionOverdrawn
		}
		distributed = total

		claimable, err := storage.GetClaimableRewardNoController(ctx, mu, winner)
		if err != nil {
			return nil, err
		}
		newClaimable, err := smath.Add64(claimable, cut)
		if err != nil {
			return nil, err
		}
		if err := storage.SetClaimableReward(ctx, mu, winner, newClaimable); err != nil {
			return nil, err
		}
	}

	newOpenToClaim, err := smath.Add64(openToClaim, distributed)
	if err != nil {
		return nil, err
	}
	if err := storage.SetRewardTotals(ctx, mu, openReward-distributed, newOpenToClaim, released); err != nil {
		return nil, err
	}

	return [][]byte{binary.BigEndian.AppendUint64(nil, distributed)}, nil
}

// GetTypeID implements chain.Action.
func (*DistributeRewards) GetTypeID() uint8 {
	return consts.DistributeRewardsID
}

// StateKeys implements chain.Action.
func (d *DistributeRewards) StateKeys(_ codec.Address, _ ids.ID) state.Keys {
	keys := state.Keys{
		string(storage.AuthorityPointerKey()):     state.Read,
		string(storage.AuthorityKey(d.Authority)): state.Read,
		string(storage.RewardTotalsKey()):         state.All,
	}
	for _, winner := range d.Winners {
		keys[string(storage.RewardAccountKey(winner))] = state.All
	}
	return keys
}

// StateKeysMaxChunks implements chain.Action.
func (d *DistributeRewards) StateKeysMaxChunks() []uint16 {
	chunks := []uint16{
		storage.AuthorityPointerChunks,
		storage.AuthorityChunks,
		storage.RewardTotalsChunks,
	}
	for range d.Winners {
		chunks = append(chunks, storage.RewardAccountChunks)
	}
	return chunks
}

// ValidRange implements chain.Action.
func (*DistributeRewards) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
