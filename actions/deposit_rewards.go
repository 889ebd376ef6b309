// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	smath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/DaiChronicles/treasuryvm/consts"
	"github.com/DaiChronicles/treasuryvm/storage"
)

var _ chain.Action = (*DepositRewards)(nil)

// DepositRewards moves native coin from the actor into the reward vault
// and books it as open reward. Any surplus already sitting in the vault
// above the recorded totals is folded into the booked amount, so the
// ledger reconciles to the vault balance on every deposit.
type DepositRewards struct {
	Amount uint64 `serialize:"true" json:"amount"`
}

// ComputeUnits implements chain.Action.
func (*DepositRewards) ComputeUnits(chain.Rules) uint64 {
	return DepositRewardsComputeUnits
}

// Execute implements chain.Action.
func (d *DepositRewards) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, _ int64, actor codec.Address, _ ids.ID) ([][]byte, error) {
	if d.Amount == 0 {
		return nil, ErrOutputValueZero
	}
	if err := storage.TransferToken(ctx, mu, storage.CoinAddress, actor, storage.RewardVaultAddress, d.Amount); err != nil {
		return nil, err
	}

	openReward, openToClaim, released, err := storage.GetRewardTotalsNoController(ctx, mu)
	if err != nil {
		return nil, err
	}
	vaultBalance, err := storage.GetTokenAccountBalanceNoController(ctx, mu, storage.CoinAddress, storage.RewardVaultAddress)
	if err != nil {
		return nil, err
	}
	committed, err := smath.Add64(openReward, openToClaim)
	if err != nil {
		return nil, err
	}
	// The vault must have covered the committed totals before this deposit
	// landed.
	required, err := smath.Add64(committed, d.Amount)
	if err != nil {
		return nil, err
	}
	if vaultBalance < required {
		return nil, fmt.Errorf("%w: vault %d, committed %d, deposit %d", ErrOutputVaultShortfall, vaultBalance, committed, d.Amount)
	}

	// Everything above the committed totals becomes open reward, which
	// absorbs direct transfers into the vault alongside this deposit.
	booked := vaultBalance - committed
	newOpenReward, err := smath.Add64(openReward, booked)
	if err != nil {
		return nil, err
	}
	if err := storage.SetRewardTotals(ctx, mu, newOpenReward, openToClaim, released); err != nil {
		return nil, err
	}

	return [][]byte{
		binary.BigEndian.AppendUint64(nil, booked),
		binary.BigEndian.AppendUint64(nil, newOpenReward),
	}, nil
}

// GetTypeID implements chain.Action.
func (*DepositRewards) GetTypeID() uint8 {
	return consts.DepositRewardsID
}

// StateKeys implements chain.Action.
func (*DepositRewards) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.RewardTotalsKey()):                                                       state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, actor)):                      state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, storage.RewardVaultAddress)): state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*DepositRewards) StateKeysMaxChunks() []uint16 {
	return []uint16{
		storage.RewardTotalsChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
	}
}

// ValidRange implements chain.Action.
func (*DepositRewards) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
