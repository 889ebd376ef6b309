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

	smath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/DaiChronicles/treasuryvm/amm"
	"github.com/DaiChronicles/treasuryvm/consts"
	"github.com/DaiChronicles/treasuryvm/storage"
)

var _ chain.Action = (*ProvideLiquidity)(nil)

// ProvideLiquidity deepens the treasury's native/numeraire pool. The full
// primary amount is first swapped into numeraire, then the primary side
// needed to match it at the fresh reserve ratio is minted from the
// exchange-liquidity allocation and both sides are deposited. Floors on
// the deposit come from the configured slippage tolerance.
type ProvideLiquidity struct {
	// Active registry record and treasury vault, required for StateKeys()
	Authority codec.Address `serialize:"true" json:"authority"`
	Treasury  codec.Address `serialize:"true" json:"treasury"`

	Numeraire       codec.Address `serialize:"true" json:"numeraire"`
	AmountPrimary   uint64        `serialize:"true" json:"amountPrimary"`
	MinNumeraireOut uint64        `serialize:"true" json:"minNumeraireOut"`
	Deadline        int64         `serialize:"true" json:"deadline"`
}

// ComputeUnits implements chain.Action.
func (*ProvideLiquidity) ComputeUnits(chain.Rules) uint64 {
	return ProvideLiquidityComputeUnits
}

// Execute implements chain.Action.
func (p *ProvideLiquidity) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, timestamp int64, actor codec.Address, _ ids.ID) ([][]byte, error) {
	if p.AmountPrimary == 0 {
		return nil, ErrOutputValueZero
	}
	if err := checkActiveAuthority(ctx, mu, p.Authority); err != nil {
		return nil, err
	}
	if err := storage.Authorize(ctx, mu, storage.RoleLiquidityAgent, actor); err != nil {
		return nil, err
	}
	treasury, err := storage.GetRoleHolderNoController(ctx, mu, storage.RoleTreasury)
	if err != nil {
		return nil, err
	}
	if treasury != p.Treasury {
		return nil, ErrOutputWrongTreasury
	}

	poolAddress, err := storage.LiquidityPoolAddress(storage.CoinAddress, p.Numeraire)
	if err != nil {
		return nil, ErrOutputIdenticalTokens
	}
	if _, err := mu.GetValue(ctx, storage.LiquidityPoolKey(poolAddress)); err != nil {
		return nil, ErrOutputLiquidityPoolDoesNotExist
	}

	// Cover the primary leg from the exchange-liquidity allocation.
	if err := p.mintShortfall(ctx, mu, treasury, p.AmountPrimary); err != nil {
		return nil, err
	}

	if _, err := amm.SwapExactIn(ctx, mu, poolAddress, treasury, storage.CoinAddress, p.AmountPrimary, p.MinNumeraireOut, p.Deadline, timestamp); err != nil {
		return nil, err
	}

	// Match the numeraire proceeds at the post-swap reserve ratio.
	numeraireBalance, err := storage.GetTokenAccountBalanceNoController(ctx, mu, p.Numeraire, treasury)
	if err != nil {
		return nil, err
	}
	reservePrimary, reserveNumeraire, err := amm.Reserves(ctx, mu, poolAddress, storage.CoinAddress)
	if err != nil {
		return nil, err
	}
	scaled, err := smath.Mul64(numeraireBalance, reservePrimary)
	if err != nil {
		return nil, err
	}
	requiredPrimary := scaled / reserveNumeraire
	if err := p.mintShortfall(ctx, mu, treasury, requiredPrimary); err != nil {
		return nil, err
	}

	toleranceBP, err := storage.GetSlippageToleranceNoController(ctx, mu)
	if err != nil {
		return nil, err
	}
	amountXDesired, amountYDesired := requiredPrimary, numeraireBalance
	if storage.CompareAddress(storage.CoinAddress, p.Numeraire) == storage.GreaterThan {
		amountXDesired, amountYDesired = amountYDesired, amountXDesired
	}
	amountXMin, err := storage.SlippageFloor(amountXDesired, toleranceBP)
	if err != nil {
		return nil, err
	}
	amountYMin, err := storage.SlippageFloor(amountYDesired, toleranceBP)
	if err != nil {
		return nil, err
	}
	amountX, amountY, liquidity, err := amm.AddLiquidity(
		ctx,
		mu,
		poolAddress,
		treasury,
		amountXDesired,
		amountYDesired,
		amountXMin,
		amountYMin,
		p.Deadline,
		timestamp,
	)
	if err != nil {
		return nil, err
	}

	return [][]byte{
		binary.BigEndian.AppendUint64(nil, amountX),
		binary.BigEndian.AppendUint64(nil, amountY),
		binary.BigEndian.AppendUint64(nil, liquidity),
	}, nil
}

func (p *ProvideLiquidity) mintShortfall(ctx context.Context, mu state.Mutable, treasury codec.Address, needed uint64) error {
	balance, err := storage.GetTokenAccountBalanceNoController(ctx, mu, storage.CoinAddress, treasury)
	if err != nil {
		return err
	}
	if balance >= needed {
		return nil
	}
	_, _, err = storage.MintAllocation(ctx, mu, storage.AllocationExchangeLiquidity, treasury, needed-balance)
	return err
}

// GetTypeID implements chain.Action.
func (*ProvideLiquidity) GetTypeID() uint8 {
	return consts.ProvideLiquidityID
}

// StateKeys implements chain.Action.
func (p *ProvideLiquidity) StateKeys(_ codec.Address, _ ids.ID) state.Keys {
	poolAddress, err := storage.LiquidityPoolAddress(storage.CoinAddress, p.Numeraire)
	if err != nil {
		return state.Keys{}
	}
	lpTokenAddress := storage.LiquidityPoolTokenAddress(poolAddress)
	return state.Keys{
		string(storage.AuthorityPointerKey()):                                    state.Read,
		string(storage.AuthorityKey(p.Authority)):                                state.Read,
		string(storage.SlippageToleranceKey()):                                   state.Read,
		string(storage.AllocationKey(storage.AllocationExchangeLiquidity)):       state.All,
		string(storage.LiquidityPoolKey(poolAddress)):                            state.All,
		string(storage.TokenInfoKey(storage.CoinAddress)):                        state.All,
		string(storage.TokenInfoKey(lpTokenAddress)):                             state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, p.Treasury)):  state.All,
		string(storage.TokenAccountBalanceKey(p.Numeraire, p.Treasury)):          state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, poolAddress)): state.All,
		string(storage.TokenAccountBalanceKey(p.Numeraire, poolAddress)):         state.All,
		string(storage.TokenAccountBalanceKey(lpTokenAddress, p.Treasury)):       state.All,
		string(storage.TokenAccountBalanceKey(lpTokenAddress, poolAddress)):      state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*ProvideLiquidity) StateKeysMaxChunks() []uint16 {
	return []uint16{
		storage.AuthorityPointerChunks,
		storage.AuthorityChunks,
		storage.SlippageChunks,
		storage.AllocationChunks,
		storage.LiquidityPoolChunks,
		storage.TokenInfoChunks,
		storage.TokenInfoChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
	}
}

// ValidRange implements chain.Action.
func (*ProvideLiquidity) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
