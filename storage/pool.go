// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"
	"github.com/ava-labs/hypersdk/utils"

	"github.com/ava-labs/avalanchego/database"
	smath "github.com/ava-labs/avalanchego/utils/math"
	lconsts "github.com/ava-labs/hypersdk/consts"

	"github.com/DaiChronicles/treasuryvm/consts"
)

type ComparisonValue int

const (
	LessThan ComparisonValue = iota - 1
	Equal
	GreaterThan
)

func LiquidityPoolKey(liquidityPoolAddress codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen+lconsts.Uint16Len)
	k[0] = liquidityPoolPrefix
	copy(k[1:1+codec.AddressLen], liquidityPoolAddress[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], LiquidityPoolChunks)
	return k
}

// Ordering of tokenX, tokenY is fixed by this function during address
// generation, so a pair has exactly one pool.
func LiquidityPoolAddress(tokenX codec.Address, tokenY codec.Address) (codec.Address, error) {
	comp := CompareAddress(tokenX, tokenY)
	var firstAddress, secondAddress codec.Address
	switch comp {
	case LessThan:
		firstAddress = tokenX
		secondAddress = tokenY
	case GreaterThan:
		firstAddress = tokenY
		secondAddress = tokenX
	default:
		return codec.EmptyAddress, ErrIdenticalAddresses
	}
	v := make([]byte, codec.AddressLen+codec.AddressLen)
	copy(v, firstAddress[:])
	copy(v[codec.AddressLen:], secondAddress[:])
	id := utils.ToID(v)
	return codec.CreateAddress(consts.LIQUIDITYPOOLID, id), nil
}

func LiquidityPoolTokenAddress(liquidityPool codec.Address) codec.Address {
	id := utils.ToID(liquidityPool[:])
	return codec.CreateAddress(consts.LIQUIDITYPOOLTOKENID, id)
}

func SetLiquidityPool(
	ctx context.Context,
	mu state.Mutable,
	liquidityPoolAddress codec.Address,
	tokenX codec.Address,
	tokenY codec.Address,
	feeBP uint64,
	reserveX uint64,
	reserveY uint64,
	liquidityToken codec.Address,
) error {
	k := LiquidityPoolKey(liquidityPoolAddress)
	v := make([]byte, codec.AddressLen*2+lconsts.Uint64Len*3+codec.AddressLen)
	copy(v, tokenX[:])
	copy(v[codec.AddressLen:], tokenY[:])
	binary.BigEndian.PutUint64(v[codec.AddressLen*2:], feeBP)
	binary.BigEndian.PutUint64(v[codec.AddressLen*2+lconsts.Uint64Len:], reserveX)
	binary.BigEndian.PutUint64(v[codec.AddressLen*2+lconsts.Uint64Len*2:], reserveY)
	copy(v[codec.AddressLen*2+lconsts.Uint64Len*3:], liquidityToken[:])
	return mu.Insert(ctx, k, v)
}

func GetLiquidityPoolNoController(
	ctx context.Context,
	im state.Immutable,
	poolAddress codec.Address,
) (codec.Address, codec.Address, uint64, uint64, uint64, codec.Address, error) {
	k := LiquidityPoolKey(poolAddress)
	v, err := im.GetValue(ctx, k)
	if err != nil {
		return codec.EmptyAddress, codec.EmptyAddress, 0, 0, 0, codec.EmptyAddress, err
	}
	return innerGetLiquidityPool(v)
}

func GetLiquidityPoolFromState(
	ctx context.Context,
	f ReadState,
	poolAddress codec.Address,
) (codec.Address, codec.Address, uint64, uint64, uint64, codec.Address, error) {
	k := LiquidityPoolKey(poolAddress)
	values, errs := f(ctx, [][]byte{k})
	if errs[0] != nil {
		return codec.EmptyAddress, codec.EmptyAddress, 0, 0, 0, codec.EmptyAddress, errs[0]
	}
	return innerGetLiquidityPool(values[0])
}

func innerGetLiquidityPool(
	v []byte,
) (codec.Address, codec.Address, uint64, uint64, uint64, codec.Address, error) {
	tokenX := codec.Address(v[:codec.AddressLen])
	tokenY := codec.Address(v[codec.AddressLen : codec.AddressLen*2])
	feeBP := binary.BigEndian.Uint64(v[codec.AddressLen*2:])
	reserveX := binary.BigEndian.Uint64(v[codec.AddressLen*2+lconsts.Uint64Len:])
	reserveY := binary.BigEndian.Uint64(v[codec.AddressLen*2+lconsts.Uint64Len*2:])
	lpTokenAddress := codec.Address(v[codec.AddressLen*2+lconsts.Uint64Len*3:])
	return tokenX, tokenY, feeBP, reserveX, reserveY, lpTokenAddress, nil
}

func CompareAddress(a codec.Address, b codec.Address) ComparisonValue {
	for i := range a {
		if a[i] < b[i] {
			return LessThan
		} else if a[i] > b[i] {
			return GreaterThan
		}
	}
	return Equal
}

func SlippageToleranceKey() []byte {
	k := make([]byte, 1+lconsts.Uint16Len)
	k[0] = slippagePrefix
	binary.BigEndian.PutUint16(k[1:], SlippageChunks)
	return k
}

func SetSlippageTolerance(ctx context.Context, mu state.Mutable, toleranceBP uint64) error {
	k := SlippageToleranceKey()
	v := make([]byte, lconsts.Uint64Len)
	binary.BigEndian.PutUint64(v, toleranceBP)
	return mu.Insert(ctx, k, v)
}

// Unset tolerance reads as the default.
func GetSlippageToleranceNoController(ctx context.Context, im state.Immutable) (uint64, error) {
	k := SlippageToleranceKey()
	v, err := im.GetValue(ctx, k)
	if err == database.ErrNotFound {
		return DefaultSlippageBP, nil
	}
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(v), nil
}

func GetSlippageToleranceFromState(ctx context.Context, f ReadState) (uint64, error) {
	k := SlippageToleranceKey()
	values, errs := f(ctx, [][]byte{k})
	if errs[0] == database.ErrNotFound {
		return DefaultSlippageBP, nil
	}
	if errs[0] != nil {
		return 0, errs[0]
	}
	return binary.BigEndian.Uint64(values[0]), nil
}

// SlippageFloor applies a basis-point tolerance to an expected amount.
func SlippageFloor(amount uint64, toleranceBP uint64) (uint64, error) {
	scaled, err := smath.Mul64(amount, BasisPoints-toleranceBP)
	if err != nil {
		return 0, err
	}
	return scaled / BasisPoints, nil
}
