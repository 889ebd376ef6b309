// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	"github.com/DaiChronicles/treasuryvm/storage"
)

const (
	TokenOneName     = "TestToken"
	TokenOneSymbol   = "TST"
	TokenOneDecimals = 9
	TokenOneMetadata = "A token for tests"

	TokenTwoName     = "OtherToken"
	TokenTwoSymbol   = "OTT"
	TokenTwoMetadata = "Another token for tests"

	dayMs = 24 * 60 * 60 * 1000
)

// seedCoin writes the native coin record the state manager would lazily
// create.
func seedCoin(t *testing.T, mu state.Mutable) {
	t.Helper()
	require.NoError(t, storage.SetTokenInfo(
		context.Background(),
		mu,
		storage.CoinAddress,
		[]byte(storage.CoinName),
		[]byte(storage.CoinSymbol),
		storage.CoinDecimals,
		[]byte(storage.CoinMetadata),
		0,
		storage.MintAuthorityAddress,
	))
}

func fundCoin(t *testing.T, mu state.Mutable, to codec.Address, amount uint64) {
	t.Helper()
	require.NoError(t, storage.MintToken(context.Background(), mu, storage.CoinAddress, to, amount))
}

// seedToken writes a plain token record owned by owner and returns its
// address.
func seedToken(t *testing.T, mu state.Mutable, name string, symbol string, metadata string, owner codec.Address) codec.Address {
	t.Helper()
	tokenAddress := storage.TokenAddress([]byte(name), []byte(symbol), []byte(metadata))
	require.NoError(t, storage.SetTokenInfo(
		context.Background(),
		mu,
		tokenAddress,
		[]byte(name),
		[]byte(symbol),
		TokenOneDecimals,
		[]byte(metadata),
		0,
		owner,
	))
	return tokenAddress
}

func fundToken(t *testing.T, mu state.Mutable, token codec.Address, to codec.Address, amount uint64) {
	t.Helper()
	require.NoError(t, storage.MintToken(context.Background(), mu, token, to, amount))
}

// seedAuthority writes a registry record and makes it active.
func seedAuthority(
	t *testing.T,
	mu state.Mutable,
	admin codec.Address,
	contentAgent codec.Address,
	liquidityAgent codec.Address,
	treasurerAgent codec.Address,
	treasury codec.Address,
) codec.Address {
	t.Helper()
	ctx := context.Background()
	authority := storage.AuthorityAddress(ids.GenerateTestID())
	require.NoError(t, storage.SetAuthority(ctx, mu, authority, admin, contentAgent, liquidityAgent, treasurerAgent, treasury, codec.EmptyAddress, 0))
	require.NoError(t, storage.SetActiveAuthority(ctx, mu, authority))
	return authority
}

// seedPool writes a pool for the pair with the given reserves, backs the
// reserves with balances at the pool address, and mints LP supply with the
// first-deposit floor locked at the pool. Reserve arguments are in the
// pool's own X/Y order.
func seedPool(
	t *testing.T,
	mu state.Mutable,
	tokenA codec.Address,
	tokenB codec.Address,
	reserveA uint64,
	reserveB uint64,
	feeBP uint64,
	lpHolder codec.Address,
	lpSupply uint64,
) (codec.Address, codec.Address) {
	t.Helper()
	ctx := context.Background()
	poolAddress, err := storage.LiquidityPoolAddress(tokenA, tokenB)
	require.NoError(t, err)
	lpTokenAddress := storage.LiquidityPoolTokenAddress(poolAddress)

	tokenX, tokenY := tokenA, tokenB
	reserveX, reserveY := reserveA, reserveB
	if storage.CompareAddress(tokenA, tokenB) == storage.GreaterThan {
		tokenX, tokenY = tokenY, tokenX
		reserveX, reserveY = reserveY, reserveX
	}
	require.NoError(t, storage.SetLiquidityPool(ctx, mu, poolAddress, tokenX, tokenY, feeBP, reserveX, reserveY, lpTokenAddress))
	require.NoError(t, storage.SetTokenInfo(
		ctx,
		mu,
		lpTokenAddress,
		[]byte(storage.LiquidityPoolTokenName),
		[]byte(storage.LiquidityPoolTokenSymbol),
		storage.LiquidityPoolTokenDecimals,
		[]byte(storage.LiquidityPoolTokenMetadata),
		0,
		poolAddress,
	))
	require.NoError(t, storage.MintToken(ctx, mu, tokenA, poolAddress, reserveA))
	require.NoError(t, storage.MintToken(ctx, mu, tokenB, poolAddress, reserveB))
	require.NoError(t, storage.MintToken(ctx, mu, lpTokenAddress, poolAddress, 1_000))
	require.NoError(t, storage.MintToken(ctx, mu, lpTokenAddress, lpHolder, lpSupply-1_000))
	return poolAddress, lpTokenAddress
}

func coinBalance(t *testing.T, mu state.Mutable, account codec.Address) uint64 {
	t.Helper()
	balance, err := storage.GetTokenAccountBalanceNoController(context.Background(), mu, storage.CoinAddress, account)
	require.NoError(t, err)
	return balance
}

func tokenBalance(t *testing.T, mu state.Mutable, token codec.Address, account codec.Address) uint64 {
	t.Helper()
	balance, err := storage.GetTokenAccountBalanceNoController(context.Background(), mu, token, account)
	require.NoError(t, err)
	return balance
}

func packUint64(v uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, v)
}
