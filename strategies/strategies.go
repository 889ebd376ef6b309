// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

// Package strategies holds the swap executors the treasury may delegate
// to. Each strategy has a deterministic address derived from its name;
// whitelisting and timelocks are enforced by the caller against that
// address, not here.
package strategies

import (
	"context"
	"errors"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"
	"github.com/ava-labs/hypersdk/utils"

	"github.com/DaiChronicles/treasuryvm/consts"
)

var ErrStrategyNotFound = errors.New("strategy not found")

// Strategy executes a swap on behalf of the treasury. The treasury has
// already granted the strategy address an allowance of exactly amountIn of
// fromToken. The strategy must leave the output approved for the treasury
// to pull back: it returns the amount of toToken it credited to its own
// address with an allowance toward treasury.
type Strategy interface {
	Swap(
		ctx context.Context,
		mu state.Mutable,
		self codec.Address,
		treasury codec.Address,
		fromToken codec.Address,
		toToken codec.Address,
		amountIn uint64,
		amountOutMin uint64,
		now int64,
	) (uint64, error)

	// StateKeys enumerates every key the strategy's Swap may touch, so the
	// dispatching action can declare them up front.
	StateKeys(self codec.Address, treasury codec.Address, fromToken codec.Address, toToken codec.Address) state.Keys

	StateKeysMaxChunks() []uint16
}

var registry map[codec.Address]Strategy

func init() {
	registry = make(map[codec.Address]Strategy)

	// Append any additional strategies here
	Register(PoolStrategyName, &PoolStrategy{})
}

// Address derives the canonical address for a named strategy.
func Address(name []byte) codec.Address {
	return codec.CreateAddress(consts.STRATEGYID, utils.ToID(name))
}

func Register(name string, s Strategy) {
	registry[Address([]byte(name))] = s
}

func Get(addr codec.Address) (Strategy, error) {
	s, ok := registry[addr]
	if !ok {
		return nil, ErrStrategyNotFound
	}
	return s, nil
}
