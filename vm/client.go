// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"strings"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/genesis"
	"github.com/ava-labs/hypersdk/requester"

	"github.com/DaiChronicles/treasuryvm/consts"
)

type JSONRPCClient struct {
	requester *requester.EndpointRequester
	g         *genesis.DefaultGenesis
}

// NewJSONRPCClient creates a new client object.
func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	req := requester.New(uri, consts.Name)
	return &JSONRPCClient{req, nil}
}

func (cli *JSONRPCClient) Genesis(ctx context.Context) (*genesis.DefaultGenesis, error) {
	if cli.g != nil {
		return cli.g, nil
	}

	resp := new(GenesisReply)
	err := cli.requester.SendRequest(
		ctx,
		"genesis",
		nil,
		resp,
	)
	if err != nil {
		return nil, err
	}
	cli.g = resp.Genesis
	return resp.Genesis, nil
}

func (cli *JSONRPCClient) GetTokenInfo(ctx context.Context, tokenAddress codec.Address) (*GetTokenInfoReply, error) {
	resp := new(GetTokenInfoReply)
	err := cli.requester.SendRequest(
		ctx,
		"getTokenInfo",
		&GetTokenInfoArgs{
			TokenAddress: tokenAddress,
		},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) GetBalance(ctx context.Context, tokenAddress codec.Address, account codec.Address) (*GetBalanceReply, error) {
	resp := new(GetBalanceReply)
	err := cli.requester.SendRequest(
		ctx,
		"getBalance",
		&GetBalanceArgs{
			TokenAddress: tokenAddress,
			Account:      account,
		},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) GetLiquidityPool(ctx context.Context, liquidityPoolAddress codec.Address) (*GetLiquidityPoolReply, error) {
	resp := new(GetLiquidityPoolReply)
	err := cli.requester.SendRequest(
		ctx,
		"getLiquidityPool",
		&GetLiquidityPoolArgs{
			LiquidityPoolAddress: liquidityPoolAddress,
		},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) GetAuthority(ctx context.Context) (*GetAuthorityReply, error) {
	resp := new(GetAuthorityReply)
	err := cli.requester.SendRequest(
		ctx,
		"getAuthority",
		nil,
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) GetSwapper(ctx context.Context, strategy codec.Address) (*GetSwapperReply, error) {
	resp := new(GetSwapperReply)
	err := cli.requester.SendRequest(
		ctx,
		"getSwapper",
		&GetSwapperArgs{
			Strategy: strategy,
		},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) GetAllocation(ctx context.Context, pool uint8) (*GetAllocationReply, error) {
	resp := new(GetAllocationReply)
	err := cli.requester.SendRequest(
		ctx,
		"getAllocation",
		&GetAllocationArgs{
			Pool: pool,
		},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) GetRewardTotals(ctx context.Context) (*GetRewardTotalsReply, error) {
	resp := new(GetRewardTotalsReply)
	err := cli.requester.SendRequest(
		ctx,
		"getRewardTotals",
		nil,
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) GetClaimableReward(ctx context.Context, account codec.Address) (*GetClaimableRewardReply, error) {
	resp := new(GetClaimableRewardReply)
	err := cli.requester.SendRequest(
		ctx,
		"getClaimableReward",
		&GetClaimableRewardArgs{
			Account: account,
		},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) GetCollectible(ctx context.Context, item ids.ID) (*GetCollectibleReply, error) {
	resp := new(GetCollectibleReply)
	err := cli.requester.SendRequest(
		ctx,
		"getCollectible",
		&GetCollectibleArgs{
			Item: item,
		},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) GetSlippageTolerance(ctx context.Context) (*GetSlippageToleranceReply, error) {
	resp := new(GetSlippageToleranceReply)
	err := cli.requester.SendRequest(
		ctx,
		"getSlippageTolerance",
		nil,
		resp,
	)
	return resp, err
}
