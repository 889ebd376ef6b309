// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	lconsts "github.com/ava-labs/hypersdk/consts"
)

func CollectibleKey(item ids.ID) []byte {
	k := make([]byte, 1+ids.IDLen+lconsts.Uint16Len)
	k[0] = collectiblePrefix
	copy(k[1:], item[:])
	binary.BigEndian.PutUint16(k[1+ids.IDLen:], CollectibleChunks)
	return k
}

// A collectible record holds its owner, the current perspective text, and
// the timestamp of the last perspective change (cooldown anchor).
func SetCollectible(
	ctx context.Context,
	mu state.Mutable,
	item ids.ID,
	owner codec.Address,
	perspective []byte,
	lastUpdate int64,
) error {
	k := CollectibleKey(item)
	v := make([]byte, codec.AddressLen+lconsts.Uint16Len+len(perspective)+lconsts.Uint64Len)
	copy(v, owner[:])
	binary.BigEndian.PutUint16(v[codec.AddressLen:], uint16(len(perspective)))
	copy(v[codec.AddressLen+lconsts.Uint16Len:], perspective)
	binary.BigEndian.PutUint64(v[codec.AddressLen+lconsts.Uint16Len+len(perspective):], uint64(lastUpdate))
	return mu.Insert(ctx, k, v)
}

func GetCollectibleNoController(
	ctx context.Context,
	im state.Immutable,
	item ids.ID,
) (codec.Address, []byte, int64, error) {
	k := CollectibleKey(item)
	v, err := im.GetValue(ctx, k)
	if err != nil {
		return codec.EmptyAddress, nil, 0, err
	}
	return innerGetCollectible(v)
}

func GetCollectibleFromState(
	ctx context.Context,
	f ReadState,
	item ids.ID,
) (codec.Address, []byte, int64, error) {
	k := CollectibleKey(item)
	values, errs := f(ctx, [][]byte{k})
	if errs[0] != nil {
		return codec.EmptyAddress, nil, 0, errs[0]
	}
	return innerGetCollectible(values[0])
}

func innerGetCollectible(v []byte) (codec.Address, []byte, int64, error) {
	owner := codec.Address(v[:codec.AddressLen])
	perspectiveLen := binary.BigEndian.Uint16(v[codec.AddressLen:])
	perspective := v[codec.AddressLen+lconsts.Uint16Len : codec.AddressLen+lconsts.Uint16Len+int(perspectiveLen)]
	lastUpdate := int64(binary.BigEndian.Uint64(v[codec.AddressLen+lconsts.Uint16Len+int(perspectiveLen):]))
	return owner, perspective, lastUpdate, nil
}
