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

	"github.com/DaiChronicles/treasuryvm/amm"
	"github.com/DaiChronicles/treasuryvm/consts"
	"github.com/DaiChronicles/treasuryvm/storage"
)

var _ chain.Action = (*BuyBackAndBurn)(nil)

// BuyBackAndBurn unwinds treasury pool shares, swaps the numeraire
// proceeds back into the native coin, and then burns the treasury's entire
// native balance. The burn is deliberately all-balance, not
// proceeds-only: whatever the treasury holds in primary when the buy-back
// lands is destroyed.
type BuyBackAndBurn struct {
	// Active registry record and treasury vault, required for StateKeys()
	Authority codec.Address `serialize:"true" json:"authority"`
	Treasury  codec.Address `serialize:"true" json:"treasury"`

	Numeraire       codec.Address `serialize:"true" json:"numeraire"`
	Liquidity       uint64        `serialize:"true" json:"liquidity"`
	MinPrimaryOut   uint64        `serialize:"true" json:"minPrimaryOut"`
	MinNumeraireOut uint64        `serialize:"true" json:"minNumeraireOut"`
	Deadline        int64         `serialize:"true" json:"deadline"`
}

// ComputeUnits implements chain.Action.
func (*BuyBackAndBurn) ComputeUnits(chain.Rules) uint64 {
	return BuyBackAndBurnComputeUnits
}

// Execute implements chain.Action.
func (b *BuyBackAndBurn) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, timestamp int64, actor codec.Address, _ ids.ID) ([][]byte, error) {
	if b.Liquidity == 0 {
		return nil, ErrOutputValueZero
	}
	if err := checkActiveAuthority(ctx, mu, b.Authority); err != nil {
		return nil, err
	}
	if err := storage.Authorize(ctx, mu, storage.RoleLiquidityAgent, actor); err != nil {
		return nil, err
	}
	treasury, err := storage.GetRoleHolderNoController(ctx, mu, storage.RoleTreasury)
	if err != nil {
		return nil, err
	}
	if treasury != b.Treasury {
		return nil, ErrOutputWrongTreasury
	}

	poolAddress, err := storage.LiquidityPoolAddress(storage.CoinAddress, b.Numeraire)
	if err != nil {
		return nil, ErrOutputIdenticalTokens
	}
	if _, err := mu.GetValue(ctx, storage.LiquidityPoolKey(poolAddress)); err != nil {
		return nil, ErrOutputLiquidityPoolDoesNotExist
	}

	minXOut, minYOut := b.MinPrimaryOut, b.MinNumeraireOut
	primaryIsX := storage.CompareAddress(storage.CoinAddress, b.Numeraire) == storage.LessThan
	if !primaryIsX {
		minXOut, minYOut = minYOut, minXOut
	}
	outputX, outputY, err := amm.RemoveLiquidity(ctx, mu, poolAddress, treasury, b.Liquidity, minXOut, minYOut, b.Deadline, timestamp)
	if err != nil {
		return nil, err
	}
	outputNumeraire := outputY
	if !primaryIsX {
		outputNumeraire = outputX
	}

	// Swap all numeraire proceeds into primary, floored off the fresh quote.
	quote, err := amm.QuoteOut(ctx, mu, poolAddress, b.Numeraire, outputNumeraire)
	if err != nil {
		return nil, err
	}
	toleranceBP, err := storage.GetSlippageToleranceNoController(ctx, mu)
	if err != nil {
		return nil, err
	}
	minPrimaryIn, err := storage.SlippageFloor(quote, toleranceBP)
	if err != nil {
		return nil, err
	}
	if _, err := amm.SwapExactIn(ctx, mu, poolAddress, treasury, b.Numeraire, outputNumeraire, minPrimaryIn, b.Deadline, timestamp); err != nil {
		return nil, err
	}

	burned, err := storage.GetTokenAccountBalanceNoController(ctx, mu, storage.CoinAddress, treasury)
	if err != nil {
		return nil, err
	}
	if burned == 0 {
		return nil, ErrOutputNothingToBurn
	}
	if err := storage.BurnToken(ctx, mu, storage.CoinAddress, treasury, burned); err != nil {
		return nil, err
	}

	return [][]byte{binary.BigEndian.AppendUint64(nil, burned)}, nil
}

// GetTypeID implements chain.Action.
func (*BuyBackAndBurn) GetTypeID() uint8 {
	return consts.BuyBackAndBurnID
}

// StateKeys implements chain.Action.
func (b *BuyBackAndBurn) StateKeys(_ codec.Address, _ ids.ID) state.Keys {
	poolAddress, err := storage.LiquidityPoolAddress(storage.CoinAddress, b.Numeraire)
	if err != nil {
		return state.Keys{}
	}
	lpTokenAddress := storage.LiquidityPoolTokenAddress(poolAddress)
	return state.Keys{
		string(storage.AuthorityPointerKey()):                                    state.Read,
		string(storage.AuthorityKey(b.Authority)):                                state.Read,
		string(storage.SlippageToleranceKey()):                                   state.Read,
		string(storage.LiquidityPoolKey(poolAddress)):                            state.All,
		string(storage.TokenInfoKey(storage.CoinAddress)):                        state.All,
		string(storage.TokenInfoKey(lpTokenAddress)):                             state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, b.Treasury)):  state.All,
		string(storage.TokenAccountBalanceKey(b.Numeraire, b.Treasury)):          state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, poolAddress)): state.All,
		string(storage.TokenAccountBalanceKey(b.Numeraire, poolAddress)):         state.All,
		string(storage.TokenAccountBalanceKey(lpTokenAddress, b.Treasury)):       state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*BuyBackAndBurn) StateKeysMaxChunks() []uint16 {
	return []uint16{
		storage.AuthorityPointerChunks,
		storage.AuthorityChunks,
		storage.SlippageChunks,
		storage.LiquidityPoolChunks,
		storage.TokenInfoChunks,
		storage.TokenInfoChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
	}
}

// ValidRange implements chain.Action.
func (*BuyBackAndBurn) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
