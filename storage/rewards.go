// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	lconsts "github.com/ava-labs/hypersdk/consts"
)

func RewardAccountKey(account codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen+lconsts.Uint16Len)
	k[0] = rewardAccountPrefix
	copy(k[1:], account[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], RewardAccountChunks)
	return k
}

func RewardTotalsKey() []byte {
	k := make([]byte, 1+lconsts.Uint16Len)
	k[0] = rewardTotalsPrefix
	binary.BigEndian.PutUint16(k[1:], RewardTotalsChunks)
	return k
}

func SetClaimableReward(ctx context.Context, mu state.Mutable, account codec.Address, amount uint64) error {
	k := RewardAccountKey(account)
	if amount == 0 {
		return mu.Remove(ctx, k)
	}
	v := make([]byte, lconsts.Uint64Len)
	binary.BigEndian.PutUint64(v, amount)
	return mu.Insert(ctx, k, v)
}

// Missing accounts read as zero.
func GetClaimableRewardNoController(ctx context.Context, im state.Immutable, account codec.Address) (uint64, error) {
	k := RewardAccountKey(account)
	v, err := im.GetValue(ctx, k)
	if err == database.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(v), nil
}

func GetClaimableRewardFromState(ctx context.Context, f ReadState, account codec.Address) (uint64, error) {
	k := RewardAccountKey(account)
	values, errs := f(ctx, [][]byte{k})
	if errs[0] == database.ErrNotFound {
		return 0, nil
	}
	if errs[0] != nil {
		return 0, errs[0]
	}
	return binary.BigEndian.Uint64(values[0]), nil
}

// SetRewardTotals writes the three ledger aggregates: undistributed reward,
// distributed-but-unreleased reward, and total released.
func SetRewardTotals(
	ctx context.Context,
	mu state.Mutable,
	openReward uint64,
	openToClaim uint64,
	released uint64,
) error {
	k := RewardTotalsKey()
	v := make([]byte, lconsts.Uint64Len*3)
	binary.BigEndian.PutUint64(v, openReward)
	binary.BigEndian.PutUint64(v[lconsts.Uint64Len:], openToClaim)
	binary.BigEndian.PutUint64(v[lconsts.Uint64Len*2:], released)
	return mu.Insert(ctx, k, v)
}

func GetRewardTotalsNoController(ctx context.Context, im state.Immutable) (uint64, uint64, uint64, error) {
	k := RewardTotalsKey()
	v, err := im.GetValue(ctx, k)
	if err == database.ErrNotFound {
		return 0, 0, 0, nil
	}
	if err != nil {
		return 0, 0, 0, err
	}
	return innerGetRewardTotals(v)
}

func GetRewardTotalsFromState(ctx context.Context, f ReadState) (uint64, uint64, uint64, error) {
	k := RewardTotalsKey()
	values, errs := f(ctx, [][]byte{k})
	if errs[0] == database.ErrNotFound {
		return 0, 0, 0, nil
	}
	if errs[0] != nil {
		return 0, 0, 0, errs[0]
	}
	return innerGetRewardTotals(values[0])
}

func innerGetRewardTotals(v []byte) (uint64, uint64, uint64, error) {
	openReward := binary.BigEndian.Uint64(v)
	openToClaim := binary.BigEndian.Uint64(v[lconsts.Uint64Len:])
	released := binary.BigEndian.Uint64(v[lconsts.Uint64Len*2:])
	return openReward, openToClaim, released, nil
}
