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
	"github.com/ava-labs/hypersdk/utils"

	smath "github.com/ava-labs/avalanchego/utils/math"
	lconsts "github.com/ava-labs/hypersdk/consts"

	"github.com/DaiChronicles/treasuryvm/consts"
)

func TokenInfoKey(tokenAddress codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen+lconsts.Uint16Len)
	k[0] = tokenInfoPrefix
	copy(k[1:1+codec.AddressLen], tokenAddress[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], TokenInfoChunks)
	return k
}

func TokenAddress(name []byte, symbol []byte, metadata []byte) codec.Address {
	v := make([]byte, len(name)+len(symbol)+len(metadata))
	copy(v, name)
	copy(v[len(name):], symbol)
	copy(v[len(name)+len(symbol):], metadata)
	id := utils.ToID(v)
	return codec.CreateAddress(consts.TOKENID, id)
}

func TokenAccountBalanceKey(token codec.Address, account codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen+codec.AddressLen+lconsts.Uint16Len)
	k[0] = tokenAccountBalancePrefix
	copy(k[1:], token[:])
	copy(k[1+codec.AddressLen:], account[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen+codec.AddressLen:], TokenAccountBalanceChunks)
	return k
}

func TokenAllowanceKey(token codec.Address, owner codec.Address, spender codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen*3+lconsts.Uint16Len)
	k[0] = tokenAllowancePrefix
	copy(k[1:], token[:])
	copy(k[1+codec.AddressLen:], owner[:])
	copy(k[1+codec.AddressLen*2:], spender[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen*3:], TokenAllowanceChunks)
	return k
}

func SetTokenInfo(
	ctx context.Context,
	mu state.Mutable,
	tokenAddress codec.Address,
	name []byte,
	symbol []byte,
	decimals uint8,
	metadata []byte,
	totalSupply uint64,
	owner codec.Address,
) error {
	k := TokenInfoKey(tokenAddress)
	nameLen := len(name)
	symbolLen := len(symbol)
	metadataLen := len(metadata)
	tokenInfoSize := lconsts.Uint16Len + nameLen + lconsts.Uint16Len + symbolLen + byteLen + lconsts.Uint16Len + metadataLen + lconsts.Uint64Len + codec.AddressLen
	v := make([]byte, tokenInfoSize)

	binary.BigEndian.PutUint16(v, uint16(nameLen))
	copy(v[lconsts.Uint16Len:], name)
	binary.BigEndian.PutUint16(v[lconsts.Uint16Len+nameLen:], uint16(symbolLen))
	copy(v[lconsts.Uint16Len+nameLen+lconsts.Uint16Len:], symbol)
	v[lconsts.Uint16Len+nameLen+lconsts.Uint16Len+symbolLen] = decimals
	binary.BigEndian.PutUint16(v[lconsts.Uint16Len+nameLen+lconsts.Uint16Len+symbolLen+byteLen:], uint16(metadataLen))
	copy(v[lconsts.Uint16Len+nameLen+lconsts.Uint16Len+symbolLen+byteLen+lconsts.Uint16Len:], metadata)
	binary.BigEndian.PutUint64(v[lconsts.Uint16Len+nameLen+lconsts.Uint16Len+symbolLen+byteLen+lconsts.Uint16Len+metadataLen:], totalSupply)
	copy(v[lconsts.Uint16Len+nameLen+lconsts.Uint16Len+symbolLen+byteLen+lconsts.Uint16Len+metadataLen+lconsts.Uint64Len:], owner[:])
	return mu.Insert(ctx, k, v)
}

func GetTokenInfoNoController(
	ctx context.Context,
	im state.Immutable,
	tokenAddress codec.Address,
) ([]byte, []byte, uint8, []byte, uint64, codec.Address, error) {
	k := TokenInfoKey(tokenAddress)
	v, err := im.GetValue(ctx, k)
	if err != nil {
		return nil, nil, 0, nil, 0, codec.EmptyAddress, err
	}
	return innerGetTokenInfo(v)
}

func GetTokenInfoFromState(
	ctx context.Context,
	f ReadState,
	tokenAddress codec.Address,
) ([]byte, []byte, uint8, []byte, uint64, codec.Address, error) {
	k := TokenInfoKey(tokenAddress)
	values, errs := f(ctx, [][]byte{k})
	if errs[0] != nil {
		return nil, nil, 0, nil, 0, codec.EmptyAddress, errs[0]
	}
	return innerGetTokenInfo(values[0])
}

func innerGetTokenInfo(
	v []byte,
) ([]byte, []byte, uint8, []byte, uint64, codec.Address, error) {
	nameLen := binary.BigEndian.Uint16(v)
	name := v[lconsts.Uint16Len : lconsts.Uint16Len+nameLen]
	symbolLen := binary.BigEndian.Uint16(v[lconsts.Uint16Len+nameLen:])
	symbol := v[lconsts.Uint16Len+nameLen+lconsts.Uint16Len : lconsts.Uint16Len+nameLen+lconsts.Uint16Len+symbolLen]
	decimals := v[lconsts.Uint16Len+nameLen+lconsts.Uint16Len+symbolLen]
	metadataLen := binary.BigEndian.Uint16(v[lconsts.Uint16Len+nameLen+lconsts.Uint16Len+symbolLen+byteLen:])
	metadata := v[lconsts.Uint16Len+nameLen+lconsts.Uint16Len+symbolLen+byteLen+lconsts.Uint16Len : lconsts.Uint16Len+nameLen+lconsts.Uint16Len+symbolLen+byteLen+lconsts.Uint16Len+metadataLen]
	totalSupply := binary.BigEndian.Uint64(v[lconsts.Uint16Len+nameLen+lconsts.Uint16Len+symbolLen+byteLen+lconsts.Uint16Len+metadataLen:])
	owner := codec.Address(v[lconsts.Uint16Len+nameLen+lconsts.Uint16Len+symbolLen+byteLen+lconsts.Uint16Len+metadataLen+lconsts.Uint64Len:])
	return name, symbol, decimals, metadata, totalSupply, owner, nil
}

func SetTokenAccountBalance(
	ctx context.Context,
	mu state.Mutable,
	tokenAddress codec.Address,
	account codec.Address,
	balance uint64,
) error {
	k := TokenAccountBalanceKey(tokenAddress, account)
	v := make([]byte, lconsts.Uint64Len)
	binary.BigEndian.PutUint64(v, balance)
	return mu.Insert(ctx, k, v)
}

// Missing accounts read as zero.
func GetTokenAccountBalanceNoController(
	ctx context.Context,
	im state.Immutable,
	tokenAddress codec.Address,
	account codec.Address,
) (uint64, error) {
	k := TokenAccountBalanceKey(tokenAddress, account)
	v, err := im.GetValue(ctx, k)
	if err == database.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(v), nil
}

func GetTokenAccountBalanceFromState(
	ctx context.Context,
	f ReadState,
	tokenAddress codec.Address,
	account codec.Address,
) (uint64, error) {
	k := TokenAccountBalanceKey(tokenAddress, account)
	values, errs := f(ctx, [][]byte{k})
	if errs[0] == database.ErrNotFound {
		return 0, nil
	}
	if errs[0] != nil {
		return 0, errs[0]
	}
	return binary.BigEndian.Uint64(values[0]), nil
}

// MintToken updates both the token info state and the token account state.
// Callers are responsible for gating; this function enforces arithmetic
// invariants only.
func MintToken(
	ctx context.Context,
	mu state.Mutable,
	tokenAddress codec.Address,
	to codec.Address,
	mintAmount uint64,
) error {
	tName, tSymbol, tDecimals, tMetadata, tSupply, tOwner, err := GetTokenInfoNoController(ctx, mu, tokenAddress)
	if err != nil {
		return err
	}
	balance, err := GetTokenAccountBalanceNoController(ctx, mu, tokenAddress, to)
	if err != nil {
		return err
	}
	newTotalSupply, err := smath.Add64(tSupply, mintAmount)
	if err != nil {
		return err
	}
	newBalance, err := smath.Add64(balance, mintAmount)
	if err != nil {
		return err
	}
	if err := SetTokenInfo(ctx, mu, tokenAddress, tName, tSymbol, tDecimals, tMetadata, newTotalSupply, tOwner); err != nil {
		return err
	}
	return SetTokenAccountBalance(ctx, mu, tokenAddress, to, newBalance)
}

// BurnToken removes value from both the holder balance and the total supply.
func BurnToken(
	ctx context.Context,
	mu state.Mutable,
	tokenAddress codec.Address,
	from codec.Address,
	value uint64,
) error {
	balance, err := GetTokenAccountBalanceNoController(ctx, mu, tokenAddress, from)
	if err != nil {
		return err
	}
	tName, tSymbol, tDecimals, tMetadata, tSupply, tOwner, err := GetTokenInfoNoController(ctx, mu, tokenAddress)
	if err != nil {
		return err
	}
	newBalance, err := smath.Sub(balance, value)
	if err != nil {
		return err
	}
	newTotalSupply, err := smath.Sub(tSupply, value)
	if err != nil {
		return err
	}
	if err := SetTokenAccountBalance(ctx, mu, tokenAddress, from, newBalance); err != nil {
		return err
	}
	return SetTokenInfo(ctx, mu, tokenAddress, tName, tSymbol, tDecimals, tMetadata, newTotalSupply, tOwner)
}

func TransferToken(
	ctx context.Context,
	mu state.Mutable,
	tokenAddress codec.Address,
	from codec.Address,
	to codec.Address,
	value uint64,
) error {
	fromBalance, err := GetTokenAccountBalanceNoController(ctx, mu, tokenAddress, from)
	if err != nil {
		return err
	}
	if fromBalance < value {
		return fmt.Errorf("%w: balance %d, requested %d", ErrInvalidBalance, fromBalance, value)
	}
	toBalance, err := GetTokenAccountBalanceNoController(ctx, mu, tokenAddress, to)
	if err != nil {
		return err
	}
	newFromBalance := fromBalance - value
	newToBalance, err := smath.Add64(toBalance, value)
	if err != nil {
		return err
	}
	if err := SetTokenAccountBalance(ctx, mu, tokenAddress, from, newFromBalance); err != nil {
		return err
	}
	return SetTokenAccountBalance(ctx, mu, tokenAddress, to, newToBalance)
}

func SetTokenAllowance(
	ctx context.Context,
	mu state.Mutable,
	tokenAddress codec.Address,
	owner codec.Address,
	spender codec.Address,
	value uint64,
) error {
	k := TokenAllowanceKey(tokenAddress, owner, spender)
	if value == 0 {
		return mu.Remove(ctx, k)
	}
	v := make([]byte, lconsts.Uint64Len)
	binary.BigEndian.PutUint64(v, value)
	return mu.Insert(ctx, k, v)
}

// Missing allowances read as zero.
func GetTokenAllowanceNoController(
	ctx context.Context,
	im state.Immutable,
	tokenAddress codec.Address,
	owner codec.Address,
	spender codec.Address,
) (uint64, error) {
	k := TokenAllowanceKey(tokenAddress, owner, spender)
	v, err := im.GetValue(ctx, k)
	if err == database.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(v), nil
}

// TransferFromToken moves value from owner to recipient on behalf of spender,
// consuming the owner's allowance toward the spender.
func TransferFromToken(
	ctx context.Context,
	mu state.Mutable,
	tokenAddress codec.Address,
	owner codec.Address,
	spender codec.Address,
	to codec.Address,
	value uint64,
) error {
	allowance, err := GetTokenAllowanceNoController(ctx, mu, tokenAddress, owner, spender)
	if err != nil {
		return err
	}
	if allowance < value {
		return fmt.Errorf("%w: allowance %d, requested %d", ErrInsufficientAllowance, allowance, value)
	}
	if err := SetTokenAllowance(ctx, mu, tokenAddress, owner, spender, allowance-value); err != nil {
		return err
	}
	return TransferToken(ctx, mu, tokenAddress, owner, to, value)
}
