// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	lconsts "github.com/ava-labs/hypersdk/consts"
)

var _ chain.StateManager = (*StateManager)(nil)

func HeightKey() []byte {
	k := make([]byte, 1+lconsts.Uint16Len)
	k[0] = heightPrefix
	binary.BigEndian.PutUint16(k[1:], 1)
	return k
}

func TimestampKey() []byte {
	k := make([]byte, 1+lconsts.Uint16Len)
	k[0] = timestampPrefix
	binary.BigEndian.PutUint16(k[1:], 1)
	return k
}

func FeeKey() []byte {
	k := make([]byte, 1+lconsts.Uint16Len)
	k[0] = feePrefix
	binary.BigEndian.PutUint16(k[1:], 8)
	return k
}

// StateManager routes fee accounting through native coin balances.
type StateManager struct{}

func (*StateManager) HeightKey() []byte {
	return HeightKey()
}

func (*StateManager) TimestampKey() []byte {
	return TimestampKey()
}

func (*StateManager) FeeKey() []byte {
	return FeeKey()
}

func (*StateManager) SponsorStateKeys(addr codec.Address) state.Keys {
	return state.Keys{
		string(TokenInfoKey(CoinAddress)):                 state.All,
		string(TokenAccountBalanceKey(CoinAddress, addr)): state.All,
	}
}

func (*StateManager) CanDeduct(
	ctx context.Context,
	addr codec.Address,
	im state.Immutable,
	amount uint64,
) error {
	bal, err := GetTokenAccountBalanceNoController(ctx, im, CoinAddress, addr)
	if err != nil {
		return err
	}
	if bal < amount {
		return fmt.Errorf("%w: balance %d, required %d", ErrInvalidBalance, bal, amount)
	}
	return nil
}

// Fees are burned: deductions shrink total supply the same way refunds
// grow it, so supply accounting stays symmetric.
func (*StateManager) Deduct(
	ctx context.Context,
	addr codec.Address,
	mu state.Mutable,
	amount uint64,
) error {
	return BurnToken(ctx, mu, CoinAddress, addr, amount)
}

func (*StateManager) AddBalance(
	ctx context.Context,
	addr codec.Address,
	mu state.Mutable,
	amount uint64,
	_ bool,
) error {
	if err := ensureCoinExists(ctx, mu); err != nil {
		return err
	}
	return MintToken(ctx, mu, CoinAddress, addr, amount)
}

// The native coin record is created on first credit. Its owner is a
// keyless module address, so generic token mints can never reach it.
func ensureCoinExists(ctx context.Context, mu state.Mutable) error {
	_, err := mu.GetValue(ctx, TokenInfoKey(CoinAddress))
	if err == nil {
		return nil
	}
	return SetTokenInfo(
		ctx,
		mu,
		CoinAddress,
		[]byte(CoinName),
		[]byte(CoinSymbol),
		CoinDecimals,
		[]byte(CoinMetadata),
		0,
		MintAuthorityAddress,
	)
}
