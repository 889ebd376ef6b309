// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/utils"

	"github.com/DaiChronicles/treasuryvm/consts"
)

type ReadState func(context.Context, [][]byte) ([][]byte, []error)

const byteLen = 1

// Key prefixes
const (
	// Required for StateManager
	heightPrefix byte = iota
	timestampPrefix
	feePrefix

	// Token surface
	tokenInfoPrefix
	tokenAccountBalancePrefix
	tokenAllowancePrefix

	// Pool surface
	liquidityPoolPrefix

	// Authority registry
	authorityPrefix
	authorityPointerPrefix
	swapperPrefix
	swapperListPrefix

	// Supply allocation
	allocationPrefix

	// Liquidity engine
	slippagePrefix

	// Reward ledger
	rewardAccountPrefix
	rewardTotalsPrefix

	// Collectibles
	collectiblePrefix
)

// Chunks
const (
	TokenInfoChunks           uint16 = 2
	TokenAccountBalanceChunks uint16 = 1
	TokenAllowanceChunks      uint16 = 1
	LiquidityPoolChunks       uint16 = 1
	AuthorityChunks           uint16 = 2
	AuthorityPointerChunks    uint16 = 1
	SwapperChunks             uint16 = 1
	SwapperListChunks         uint16 = 4
	AllocationChunks          uint16 = 1
	SlippageChunks            uint16 = 1
	RewardAccountChunks       uint16 = 1
	RewardTotalsChunks        uint16 = 1
	CollectibleChunks         uint16 = 2
)

// Token invariants
const (
	MaxTokenNameSize     = 64
	MaxTokenSymbolSize   = 8
	MaxTokenMetadataSize = 256
	MaxTokenDecimals     = 18
)

// All LP tokens have the following data
const (
	LiquidityPoolTokenName     = "DAC-Pair" // #nosec G101
	LiquidityPoolTokenSymbol   = "DACP"
	LiquidityPoolTokenDecimals = 9
	LiquidityPoolTokenMetadata = "A treasury liquidity pair"
)

// Data for the native coin
const (
	CoinName     = "DaiChronicles"
	CoinSymbol   = "DAC"
	CoinDecimals = 9
	CoinMetadata = "The DaiChronicles ecosystem coin"
)

// Basis points
const (
	BasisPoints       uint64 = 10_000
	MaxSlippageBP     uint64 = 1_000
	DefaultSlippageBP uint64 = 100
)

// Timelocks, in milliseconds
const (
	RotationDelay          int64 = 7 * 24 * 60 * 60 * 1000
	SwapperActivationDelay int64 = 7 * 24 * 60 * 60 * 1000
	PerspectiveCooldown    int64 = 24 * 60 * 60 * 1000
)

// Collectible purchase split, in basis points
const (
	PurchaseBurnBP     uint64 = 3_000
	PurchaseRewardBP   uint64 = 2_000
	PurchaseTreasuryBP uint64 = BasisPoints - PurchaseBurnBP - PurchaseRewardBP
)

const (
	MaxPerspectiveSize     = 256
	MaxDistributionWinners = 64
	MaxSwappers            = 128
)

var (
	// CoinAddress is the native coin used for fees, allocations, buybacks
	// and rewards.
	CoinAddress codec.Address

	// MintAuthorityAddress owns the native coin record. No key controls it,
	// so the generic owner-gated mint path can never touch the native coin.
	MintAuthorityAddress codec.Address

	// RewardVaultAddress custodies earmarked rewards until release.
	RewardVaultAddress codec.Address
)

func init() {
	CoinAddress = TokenAddress([]byte(CoinName), []byte(CoinSymbol), []byte(CoinMetadata))
	MintAuthorityAddress = codec.CreateAddress(consts.MODULEID, utils.ToID([]byte("mint-authority")))
	RewardVaultAddress = codec.CreateAddress(consts.MODULEID, utils.ToID([]byte("reward-vault")))
}
