// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
	lconsts "github.com/ava-labs/hypersdk/consts"
)

// Allocation identifies one of the four capped minting pools.
type Allocation uint8

const (
	AllocationAirdrop Allocation = iota
	AllocationOperations
	AllocationFounder
	AllocationExchangeLiquidity
)

func (a Allocation) Valid() bool {
	return a <= AllocationExchangeLiquidity
}

func (a Allocation) String() string {
	switch a {
	case AllocationAirdrop:
		return "airdrop"
	case AllocationOperations:
		return "operations"
	case AllocationFounder:
		return "founder"
	case AllocationExchangeLiquidity:
		return "exchange-liquidity"
	default:
		return "unknown"
	}
}

// ShareBP is each pool's cap as a share of the current total supply.
func (a Allocation) ShareBP() uint64 {
	switch a {
	case AllocationAirdrop:
		return 500
	case AllocationOperations:
		return 1_000
	case AllocationFounder:
		return 1_500
	case AllocationExchangeLiquidity:
		return 2_000
	default:
		return 0
	}
}

func AllocationKey(pool Allocation) []byte {
	k := make([]byte, 1+byteLen+lconsts.Uint16Len)
	k[0] = allocationPrefix
	k[1] = byte(pool)
	binary.BigEndian.PutUint16(k[1+byteLen:], AllocationChunks)
	return k
}

func SetAllocationMinted(ctx context.Context, mu state.Mutable, pool Allocation, minted uint64) error {
	k := AllocationKey(pool)
	v := make([]byte, lconsts.Uint64Len)
	binary.BigEndian.PutUint64(v, minted)
	return mu.Insert(ctx, k, v)
}

// Counters start at zero and only ever increase.
func GetAllocationMintedNoController(ctx context.Context, im state.Immutable, pool Allocation) (uint64, error) {
	k := AllocationKey(pool)
	v, err := im.GetValue(ctx, k)
	if err == database.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(v), nil
}

func GetAllocationMintedFromState(ctx context.Context, f ReadState, pool Allocation) (uint64, error) {
	k := AllocationKey(pool)
	values, errs := f(ctx, [][]byte{k})
	if errs[0] == database.ErrNotFound {
		return 0, nil
	}
	if errs[0] != nil {
		return 0, errs[0]
	}
	return binary.BigEndian.Uint64(values[0]), nil
}

// AllocationCap is the pool's ceiling against the CURRENT total supply.
// Caps are never snapshotted: they float with supply, so minting from one
// pool raises headroom for all others.
func AllocationCap(totalSupply uint64, pool Allocation) (uint64, error) {
	scaled, err := smath.Mul64(totalSupply, pool.ShareBP())
	if err != nil {
		return 0, err
	}
	return scaled / BasisPoints, nil
}

// MintAllocation mints native coin against a pool's floating cap. Returns
// the new counter value and the cap in force at call time.
func MintAllocation(
	ctx context.Context,
	mu state.Mutable,
	pool Allocation,
	to codec.Address,
	amount uint64,
) (uint64, uint64, error) {
	_, _, _, _, totalSupply, _, err := GetTokenInfoNoController(ctx, mu, CoinAddress)
	if err != nil {
		return 0, 0, err
	}
	cap, err := AllocationCap(totalSupply, pool)
	if err != nil {
		return 0, 0, err
	}
	minted, err := GetAllocationMintedNoController(ctx, mu, pool)
	if err != nil {
		return 0, 0, err
	}
	newMinted, err := smath.Add64(minted, amount)
	if err != nil {
		return 0, 0, err
	}
	if newMinted > cap {
		return 0, 0, fmt.Errorf("%w: pool %s, minted %d, requested %d, cap %d",
			ErrAllocationCapExceeded, pool, minted, amount, cap)
	}
	if err := SetAllocationMinted(ctx, mu, pool, newMinted); err != nil {
		return 0, 0, err
	}
	if err := MintToken(ctx, mu, CoinAddress, to, amount); err != nil {
		return 0, 0, err
	}
	return newMinted, cap, nil
}
