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

	"github.com/DaiChronicles/treasuryvm/consts"
	"github.com/DaiChronicles/treasuryvm/storage"
	"github.com/DaiChronicles/treasuryvm/strategies"
)

var _ chain.Action = (*SwapTreasuryAsset)(nil)

// SwapTreasuryAsset delegates a treasury swap to a whitelisted strategy.
// The strategy receives an allowance of exactly AmountIn, must leave its
// output approved for the treasury to pull back, and any residual input
// allowance is revoked before the action returns.
type SwapTreasuryAsset struct {
	// Active registry record and treasury vault, required for StateKeys()
	Authority codec.Address `serialize:"true" json:"authority"`
	Treasury  codec.Address `serialize:"true" json:"treasury"`

	Strategy     codec.Address `serialize:"true" json:"strategy"`
	FromToken    codec.Address `serialize:"true" json:"fromToken"`
	ToToken      codec.Address `serialize:"true" json:"toToken"`
	AmountIn     uint64        `serialize:"true" json:"amountIn"`
	AmountOutMin uint64        `serialize:"true" json:"amountOutMin"`
	Deadline     int64         `serialize:"true" json:"deadline"`
}

// ComputeUnits implements chain.Action.
func (*SwapTreasuryAsset) ComputeUnits(chain.Rules) uint64 {
	return SwapTreasuryAssetComputeUnits
}

// Execute implements chain.Action.
func (s *SwapTreasuryAsset) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, timestamp int64, actor codec.Address, _ ids.ID) ([][]byte, error) {
	if s.AmountIn == 0 {
		return nil, ErrOutputValueZero
	}
	if s.Strategy == codec.EmptyAddress || s.FromToken == codec.EmptyAddress || s.ToToken == codec.EmptyAddress {
		return nil, ErrOutputAddressEmpty
	}
	if timestamp > s.Deadline {
		return nil, ErrOutputDeadlineExpired
	}
	if err := checkActiveAuthority(ctx, mu, s.Authority); err != nil {
		return nil, err
	}
	if err := storage.Authorize(ctx, mu, storage.RoleTreasurerAgent, actor); err != nil {
		return nil, err
	}
	treasury, err := storage.GetRoleHolderNoController(ctx, mu, storage.RoleTreasury)
	if err != nil {
		return nil, err
	}
	if treasury != s.Treasury {
		return nil, ErrOutputWrongTreasury
	}

	active, err := storage.IsSwapperActiveNoController(ctx, mu, s.Strategy, timestamp)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrOutputSwapperNotActive
	}
	strategy, err := strategies.Get(s.Strategy)
	if err != nil {
		return nil, err
	}

	balance, err := storage.GetTokenAccountBalanceNoController(ctx, mu, s.FromToken, treasury)
	if err != nil {
		return nil, err
	}
	if balance < s.AmountIn {
		return nil, fmt.Errorf("%w: balance %d, requested %d", storage.ErrInvalidBalance, balance, s.AmountIn)
	}

	// Grant exactly the input, never more.
	if err := storage.SetTokenAllowance(ctx, mu, s.FromToken, treasury, s.Strategy, s.AmountIn); err != nil {
		return nil, err
	}

	amountOut, err := strategy.Swap(ctx, mu, s.Strategy, treasury, s.FromToken, s.ToToken, s.AmountIn, s.AmountOutMin, timestamp)
	if err != nil {
		return nil, err
	}
	if amountOut < s.AmountOutMin {
		return nil, fmt.Errorf("%w: output %d, minimum %d", ErrOutputSwapBelowMinimum, amountOut, s.AmountOutMin)
	}

	// Pull the output back under the strategy's reverse approval.
	if err := storage.TransferFromToken(ctx, mu, s.ToToken, s.Strategy, treasury, treasury, amountOut); err != nil {
		return nil, err
	}
	// Revoke whatever input allowance the strategy left unspent.
	if err := storage.SetTokenAllowance(ctx, mu, s.FromToken, treasury, s.Strategy, 0); err != nil {
		return nil, err
	}

	return [][]byte{binary.BigEndian.AppendUint64(nil, amountOut)}, nil
}

// GetTypeID implements chain.Action.
func (*SwapTreasuryAsset) GetTypeID() uint8 {
	return consts.SwapTreasuryAssetID
}

// StateKeys implements chain.Action.
func (s *SwapTreasuryAsset) StateKeys(_ codec.Address, _ ids.ID) state.Keys {
	keys := state.Keys{
		string(storage.AuthorityPointerKey()):                                  state.Read,
		string(storage.AuthorityKey(s.Authority)):                              state.Read,
		string(storage.SwapperKey(s.Strategy)):                                 state.Read,
		string(storage.TokenAccountBalanceKey(s.FromToken, s.Treasury)):        state.All,
		string(storage.TokenAccountBalanceKey(s.ToToken, s.Treasury)):          state.All,
		string(storage.TokenAllowanceKey(s.FromToken, s.Treasury, s.Strategy)): state.All,
	}
	strategy, err := strategies.Get(s.Strategy)
	if err != nil {
		return keys
	}
	for k, v := range strategy.StateKeys(s.Strategy, s.Treasury, s.FromToken, s.ToToken) {
		keys[k] = v
	}
	return keys
}

// StateKeysMaxChunks implements chain.Action.
func (s *SwapTreasuryAsset) StateKeysMaxChunks() []uint16 {
	chunks := []uint16{
		storage.AuthorityPointerChunks,
		storage.AuthorityChunks,
		storage.SwapperChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAllowanceChunks,
	}
	strategy, err := strategies.Get(s.Strategy)
	if err != nil {
		return chunks
	}
	return append(chunks, strategy.StateKeysMaxChunks()...)
}

// ValidRange implements chain.Action.
func (*SwapTreasuryAsset) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
