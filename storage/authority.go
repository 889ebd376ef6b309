// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	lconsts "github.com/ava-labs/hypersdk/consts"

	"github.com/DaiChronicles/treasuryvm/consts"
)

// Role identifies one entry of the authority registry. No role implies
// another.
type Role uint8

const (
	RoleAdmin Role = iota
	RoleContentAgent
	RoleLiquidityAgent
	RoleTreasurerAgent
	RoleTreasury
)

func (r Role) Valid() bool {
	return r <= RoleTreasury
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleContentAgent:
		return "content-agent"
	case RoleLiquidityAgent:
		return "liquidity-agent"
	case RoleTreasurerAgent:
		return "treasurer-agent"
	case RoleTreasury:
		return "treasury"
	default:
		return "unknown"
	}
}

func AuthorityAddress(id ids.ID) codec.Address {
	return codec.CreateAddress(consts.AUTHORITYID, id)
}

func AuthorityKey(authority codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen+lconsts.Uint16Len)
	k[0] = authorityPrefix
	copy(k[1:], authority[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], AuthorityChunks)
	return k
}

func AuthorityPointerKey() []byte {
	k := make([]byte, 1+lconsts.Uint16Len)
	k[0] = authorityPointerPrefix
	binary.BigEndian.PutUint16(k[1:], AuthorityPointerChunks)
	return k
}

const authoritySize = codec.AddressLen*6 + lconsts.Uint64Len

// SetAuthority writes a registry record: the five role holders plus the
// pending-rotation slot (empty address and zero activation when idle).
func SetAuthority(
	ctx context.Context,
	mu state.Mutable,
	authority codec.Address,
	admin codec.Address,
	contentAgent codec.Address,
	liquidityAgent codec.Address,
	treasurerAgent codec.Address,
	treasury codec.Address,
	pending codec.Address,
	pendingActivation int64,
) error {
	k := AuthorityKey(authority)
	v := make([]byte, authoritySize)
	copy(v, admin[:])
	copy(v[codec.AddressLen:], contentAgent[:])
	copy(v[codec.AddressLen*2:], liquidityAgent[:])
	copy(v[codec.AddressLen*3:], treasurerAgent[:])
	copy(v[codec.AddressLen*4:], treasury[:])
	copy(v[codec.AddressLen*5:], pending[:])
	binary.BigEndian.PutUint64(v[codec.AddressLen*6:], uint64(pendingActivation))
	return mu.Insert(ctx, k, v)
}

func GetAuthorityNoController(
	ctx context.Context,
	im state.Immutable,
	authority codec.Address,
) (codec.Address, codec.Address, codec.Address, codec.Address, codec.Address, codec.Address, int64, error) {
	k := AuthorityKey(authority)
	v, err := im.GetValue(ctx, k)
	if err != nil {
		return codec.EmptyAddress, codec.EmptyAddress, codec.EmptyAddress, codec.EmptyAddress, codec.EmptyAddress, codec.EmptyAddress, 0, err
	}
	return innerGetAuthority(v)
}

func GetAuthorityFromState(
	ctx context.Context,
	f ReadState,
	authority codec.Address,
) (codec.Address, codec.Address, codec.Address, codec.Address, codec.Address, codec.Address, int64, error) {
	k := AuthorityKey(authority)
	values, errs := f(ctx, [][]byte{k})
	if errs[0] != nil {
		return codec.EmptyAddress, codec.EmptyAddress, codec.EmptyAddress, codec.EmptyAddress, codec.EmptyAddress, codec.EmptyAddress, 0, errs[0]
	}
	return innerGetAuthority(values[0])
}

func innerGetAuthority(
	v []byte,
) (codec.Address, codec.Address, codec.Address, codec.Address, codec.Address, codec.Address, int64, error) {
	admin := codec.Address(v[:codec.AddressLen])
	contentAgent := codec.Address(v[codec.AddressLen : codec.AddressLen*2])
	liquidityAgent := codec.Address(v[codec.AddressLen*2 : codec.AddressLen*3])
	treasurerAgent := codec.Address(v[codec.AddressLen*3 : codec.AddressLen*4])
	treasury := codec.Address(v[codec.AddressLen*4 : codec.AddressLen*5])
	pending := codec.Address(v[codec.AddressLen*5 : codec.AddressLen*6])
	pendingActivation := int64(binary.BigEndian.Uint64(v[codec.AddressLen*6:]))
	return admin, contentAgent, liquidityAgent, treasurerAgent, treasury, pending, pendingActivation, nil
}

// SetActiveAuthority repoints the registry reference every gated operation
// trusts. Mutated only at bootstrap and by the timelocked rotation.
func SetActiveAuthority(ctx context.Context, mu state.Mutable, authority codec.Address) error {
	k := AuthorityPointerKey()
	v := make([]byte, codec.AddressLen)
	copy(v, authority[:])
	return mu.Insert(ctx, k, v)
}

func GetActiveAuthorityNoController(ctx context.Context, im state.Immutable) (codec.Address, error) {
	k := AuthorityPointerKey()
	v, err := im.GetValue(ctx, k)
	if err == database.ErrNotFound {
		return codec.EmptyAddress, ErrAuthorityNotInitialized
	}
	if err != nil {
		return codec.EmptyAddress, err
	}
	return codec.Address(v), nil
}

func GetActiveAuthorityFromState(ctx context.Context, f ReadState) (codec.Address, error) {
	k := AuthorityPointerKey()
	values, errs := f(ctx, [][]byte{k})
	if errs[0] == database.ErrNotFound {
		return codec.EmptyAddress, ErrAuthorityNotInitialized
	}
	if errs[0] != nil {
		return codec.EmptyAddress, errs[0]
	}
	return codec.Address(values[0]), nil
}

// GetRoleHolderNoController resolves the active registry and returns the
// holder of the given role.
func GetRoleHolderNoController(ctx context.Context, im state.Immutable, role Role) (codec.Address, error) {
	authority, err := GetActiveAuthorityNoController(ctx, im)
	if err != nil {
		return codec.EmptyAddress, err
	}
	admin, contentAgent, liquidityAgent, treasurerAgent, treasury, _, _, err := GetAuthorityNoController(ctx, im, authority)
	if err != nil {
		return codec.EmptyAddress, err
	}
	switch role {
	case RoleAdmin:
		return admin, nil
	case RoleContentAgent:
		return contentAgent, nil
	case RoleLiquidityAgent:
		return liquidityAgent, nil
	case RoleTreasurerAgent:
		return treasurerAgent, nil
	case RoleTreasury:
		return treasury, nil
	default:
		return codec.EmptyAddress, fmt.Errorf("%w: role %d", ErrUnauthorized, role)
	}
}

// Authorize is the single gating function invoked at the top of every
// mutating handler. Mismatch reports both the role and the rejected actor.
func Authorize(ctx context.Context, im state.Immutable, role Role, actor codec.Address) error {
	holder, err := GetRoleHolderNoController(ctx, im, role)
	if err != nil {
		return err
	}
	if holder != actor {
		return fmt.Errorf("%w: role %s, actor %x", ErrUnauthorized, role, actor[:])
	}
	return nil
}

func SwapperKey(strategy codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen+lconsts.Uint16Len)
	k[0] = swapperPrefix
	copy(k[1:], strategy[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], SwapperChunks)
	return k
}

func SwapperListKey() []byte {
	k := make([]byte, 1+lconsts.Uint16Len)
	k[0] = swapperListPrefix
	binary.BigEndian.PutUint16(k[1:], SwapperListChunks)
	return k
}

func SetSwapperActivation(
	ctx context.Context,
	mu state.Mutable,
	strategy codec.Address,
	activation int64,
) error {
	k := SwapperKey(strategy)
	v := make([]byte, lconsts.Uint64Len)
	binary.BigEndian.PutUint64(v, uint64(activation))
	return mu.Insert(ctx, k, v)
}

// Zero means not whitelisted.
func GetSwapperActivationNoController(
	ctx context.Context,
	im state.Immutable,
	strategy codec.Address,
) (int64, error) {
	k := SwapperKey(strategy)
	v, err := im.GetValue(ctx, k)
	if err == database.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(v)), nil
}

func GetSwapperActivationFromState(
	ctx context.Context,
	f ReadState,
	strategy codec.Address,
) (int64, error) {
	k := SwapperKey(strategy)
	values, errs := f(ctx, [][]byte{k})
	if errs[0] == database.ErrNotFound {
		return 0, nil
	}
	if errs[0] != nil {
		return 0, errs[0]
	}
	return int64(binary.BigEndian.Uint64(values[0])), nil
}

func RemoveSwapperActivation(ctx context.Context, mu state.Mutable, strategy codec.Address) error {
	return mu.Remove(ctx, SwapperKey(strategy))
}

// A swapper is active iff whitelisted and its activation time has elapsed.
func IsSwapperActiveNoController(
	ctx context.Context,
	im state.Immutable,
	strategy codec.Address,
	now int64,
) (bool, error) {
	activation, err := GetSwapperActivationNoController(ctx, im, strategy)
	if err != nil {
		return false, err
	}
	return activation != 0 && now >= activation, nil
}

func SetSwapperList(ctx context.Context, mu state.Mutable, swappers []codec.Address) error {
	k := SwapperListKey()
	v := make([]byte, lconsts.Uint16Len+len(swappers)*codec.AddressLen)
	binary.BigEndian.PutUint16(v, uint16(len(swappers)))
	for i, s := range swappers {
		copy(v[lconsts.Uint16Len+i*codec.AddressLen:], s[:])
	}
	return mu.Insert(ctx, k, v)
}

func GetSwapperListNoController(ctx context.Context, im state.Immutable) ([]codec.Address, error) {
	k := SwapperListKey()
	v, err := im.GetValue(ctx, k)
	if err == database.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	count := binary.BigEndian.Uint16(v)
	swappers := make([]codec.Address, count)
	for i := range swappers {
		swappers[i] = codec.Address(v[lconsts.Uint16Len+i*codec.AddressLen : lconsts.Uint16Len+(i+1)*codec.AddressLen])
	}
	return swappers, nil
}

// RemoveSwapperFromList deletes by swap-with-last-and-pop. Returns whether
// the strategy was present.
func RemoveSwapperFromList(ctx context.Context, mu state.Mutable, strategy codec.Address) (bool, error) {
	swappers, err := GetSwapperListNoController(ctx, mu)
	if err != nil {
		return false, err
	}
	for i, s := range swappers {
		if s == strategy {
			swappers[i] = swappers[len(swappers)-1]
			swappers = swappers[:len(swappers)-1]
			return true, SetSwapperList(ctx, mu, swappers)
		}
	}
	return false, nil
}
