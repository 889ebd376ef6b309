// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hypersdk/chain/chaintest"
	"github.com/ava-labs/hypersdk/codec/codectest"
	"github.com/ava-labs/hypersdk/state"

	"github.com/DaiChronicles/treasuryvm/storage"
)

func TestCreateToken(t *testing.T) {
	addr := codectest.NewRandomAddress()
	tokenOneAddress := storage.TokenAddress([]byte(TokenOneName), []byte(TokenOneSymbol), []byte(TokenOneMetadata))

	mu := chaintest.NewInMemoryStore()

	tests := []chaintest.ActionTest{
		{
			Name: "No token with empty name",
			Action: &CreateToken{
				Name:     []byte{},
				Symbol:   []byte(TokenOneSymbol),
				Metadata: []byte(TokenOneMetadata),
			},
			ExpectedErr: ErrOutputTokenNameEmpty,
			State:       mu,
		},
		{
			Name: "No token with too large name",
			Action: &CreateToken{
				Name:     []byte(strings.Repeat("n", storage.MaxTokenNameSize+1)),
				Symbol:   []byte(TokenOneSymbol),
				Metadata: []byte(TokenOneMetadata),
			},
			ExpectedErr: ErrOutputTokenNameTooLarge,
			State:       mu,
		},
		{
			Name: "No token with too many decimals",
			Action: &CreateToken{
				Name:     []byte(TokenOneName),
				Symbol:   []byte(TokenOneSymbol),
				Decimals: storage.MaxTokenDecimals + 1,
				Metadata: []byte(TokenOneMetadata),
			},
			ExpectedErr: ErrOutputTokenDecimalsTooLarge,
			State:       mu,
		},
		{
			Name: "Native coin name is reserved",
			Action: &CreateToken{
				Name:     []byte(storage.CoinName),
				Symbol:   []byte(TokenOneSymbol),
				Metadata: []byte(TokenOneMetadata),
			},
			ExpectedErr: ErrOutputForbiddenTokenName,
			State:       mu,
		},
		{
			Name: "Native coin symbol is reserved",
			Action: &CreateToken{
				Name:     []byte(TokenOneName),
				Symbol:   []byte(storage.CoinSymbol),
				Metadata: []byte(TokenOneMetadata),
			},
			ExpectedErr: ErrOutputForbiddenTokenName,
			State:       mu,
		},
		{
			Name: "Correct token creation is allowed",
			Action: &CreateToken{
				Name:     []byte(TokenOneName),
				Symbol:   []byte(TokenOneSymbol),
				Decimals: TokenOneDecimals,
				Metadata: []byte(TokenOneMetadata),
			},
			ExpectedOutputs: [][]byte{tokenOneAddress[:]},
			State:           mu,
			Actor:           addr,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				name, symbol, decimals, metadata, totalSupply, owner, err := storage.GetTokenInfoNoController(ctx, m, tokenOneAddress)
				require.NoError(err)
				require.Equal(TokenOneName, string(name))
				require.Equal(TokenOneSymbol, string(symbol))
				require.Equal(uint8(TokenOneDecimals), decimals)
				require.Equal(TokenOneMetadata, string(metadata))
				require.Equal(uint64(0), totalSupply)
				require.Equal(addr, owner)
			},
		},
		{
			Name: "No overwriting existing tokens",
			Action: &CreateToken{
				Name:     []byte(TokenOneName),
				Symbol:   []byte(TokenOneSymbol),
				Decimals: TokenOneDecimals,
				Metadata: []byte(TokenOneMetadata),
			},
			ExpectedErr: ErrOutputTokenAlreadyExists,
			State:       mu,
			Actor:       addr,
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}

func TestMintTokenOwnerGate(t *testing.T) {
	owner := codectest.NewRandomAddress()
	other := codectest.NewRandomAddress()

	mu := chaintest.NewInMemoryStore()
	tokenAddress := seedToken(t, mu, TokenOneName, TokenOneSymbol, TokenOneMetadata, owner)

	tests := []chaintest.ActionTest{
		{
			Name: "Mint value must be positive",
			Action: &MintToken{
				Token: tokenAddress,
				To:    owner,
				Value: 0,
			},
			ExpectedErr: ErrOutputValueZero,
			State:       mu,
			Actor:       owner,
		},
		{
			Name: "Only the owner can mint",
			Action: &MintToken{
				Token: tokenAddress,
				To:    other,
				Value: 1_000,
			},
			ExpectedErr: ErrOutputTokenNotOwner,
			State:       mu,
			Actor:       other,
		},
		{
			Name: "Owner mint credits the recipient",
			Action: &MintToken{
				Token: tokenAddress,
				To:    other,
				Value: 1_000,
			},
			State: mu,
			Actor: owner,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				balance, err := storage.GetTokenAccountBalanceNoController(ctx, m, tokenAddress, other)
				require.NoError(err)
				require.Equal(uint64(1_000), balance)
				_, _, _, _, totalSupply, _, err := storage.GetTokenInfoNoController(ctx, m, tokenAddress)
				require.NoError(err)
				require.Equal(uint64(1_000), totalSupply)
			},
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}
