// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"net/http"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hypersdk/api"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/genesis"

	"github.com/DaiChronicles/treasuryvm/consts"
	"github.com/DaiChronicles/treasuryvm/storage"
)

const JSONRPCEndpoint = "/treasuryapi"

var _ api.HandlerFactory[api.VM] = (*jsonRPCServerFactory)(nil)

type jsonRPCServerFactory struct{}

func (jsonRPCServerFactory) New(vm api.VM) (api.Handler, error) {
	handler, err := api.NewJSONRPCHandler(consts.Name, NewJSONRPCServer(vm))
	return api.Handler{
		Path:    JSONRPCEndpoint,
		Handler: handler,
	}, err
}

type JSONRPCServer struct {
	vm api.VM
}

func NewJSONRPCServer(vm api.VM) *JSONRPCServer {
	return &JSONRPCServer{vm: vm}
}

type GenesisReply struct {
	Genesis *genesis.DefaultGenesis `json:"genesis"`
}

func (j *JSONRPCServer) Genesis(_ *http.Request, _ *struct{}, reply *GenesisReply) (err error) {
	reply.Genesis = j.vm.Genesis().(*genesis.DefaultGenesis)
	return nil
}

type GetTokenInfoArgs struct {
	TokenAddress codec.Address `json:"tokenAddress"`
}

type GetTokenInfoReply struct {
	Name        string        `json:"name"`
	Symbol      string        `json:"symbol"`
	Decimals    uint8         `json:"decimals"`
	Metadata    string        `json:"metadata"`
	TotalSupply uint64        `json:"totalSupply"`
	Owner       codec.Address `json:"owner"`
}

func (j *JSONRPCServer) GetTokenInfo(req *http.Request, args *GetTokenInfoArgs, reply *GetTokenInfoReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "Server.GetTokenInfo")
	defer span.End()

	name, symbol, decimals, metadata, totalSupply, owner, err := storage.GetTokenInfoFromState(ctx, j.vm.ReadState, args.TokenAddress)
	if err != nil {
		return err
	}
	reply.Name = string(name)
	reply.Symbol = string(symbol)
	reply.Decimals = decimals
	reply.Metadata = string(metadata)
	reply.TotalSupply = totalSupply
	reply.Owner = owner
	return nil
}

type GetBalanceArgs struct {
	TokenAddress codec.Address `json:"tokenAddress"`
	Account      codec.Address `json:"account"`
}

type GetBalanceReply struct {
	Balance uint64 `json:"balance"`
}

func (j *JSONRPCServer) GetBalance(req *http.Request, args *GetBalanceArgs, reply *GetBalanceReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "Server.GetBalance")
	defer span.End()

	balance, err := storage.GetTokenAccountBalanceFromState(ctx, j.vm.ReadState, args.TokenAddress, args.Account)
	if err != nil {
		return err
	}
	reply.Balance = balance
	return nil
}

type GetLiquidityPoolArgs struct {
	LiquidityPoolAddress codec.Address `json:"liquidityPoolAddress"`
}

type GetLiquidityPoolReply struct {
	TokenX         codec.Address `json:"tokenX"`
	TokenY         codec.Address `json:"tokenY"`
	Fee            uint64        `json:"fee"`
	ReserveX       uint64        `json:"reserveX"`
	ReserveY       uint64        `json:"reserveY"`
	LiquidityToken codec.Address `json:"liquidityToken"`
}

func (j *JSONRPCServer) GetLiquidityPool(req *http.Request, args *GetLiquidityPoolArgs, reply *GetLiquidityPoolReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "Server.GetLiquidityPool")
	defer span.End()

	tokenX, tokenY, fee, reserveX, reserveY, liquidityToken, err := storage.GetLiquidityPoolFromState(ctx, j.vm.ReadState, args.LiquidityPoolAddress)
	if err != nil {
		return err
	}
	reply.TokenX = tokenX
	reply.TokenY = tokenY
	reply.Fee = fee
	reply.ReserveX = reserveX
	reply.ReserveY = reserveY
	reply.LiquidityToken = liquidityToken
	return nil
}

type GetAuthorityReply struct {
	Authority         codec.Address `json:"authority"`
	Admin             codec.Address `json:"admin"`
	ContentAgent      codec.Address `json:"contentAgent"`
	LiquidityAgent    codec.Address `json:"liquidityAgent"`
	TreasurerAgent    codec.Address `json:"treasurerAgent"`
	Treasury          codec.Address `json:"treasury"`
	Pending           codec.Address `json:"pending"`
	PendingActivation int64         `json:"pendingActivation"`
}

// GetAuthority resolves the active registry pointer and returns the full
// record it points at.
func (j *JSONRPCServer) GetAuthority(req *http.Request, _ *struct{}, reply *GetAuthorityReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "Server.GetAuthority")
	defer span.End()

	authority, err := storage.GetActiveAuthorityFromState(ctx, j.vm.ReadState)
	if err != nil {
		return err
	}
	admin, contentAgent, liquidityAgent, treasurerAgent, treasury, pending, pendingActivation, err := storage.GetAuthorityFromState(ctx, j.vm.ReadState, authority)
	if err != nil {
		return err
	}
	reply.Authority = authority
	reply.Admin = admin
	reply.ContentAgent = contentAgent
	reply.LiquidityAgent = liquidityAgent
	reply.TreasurerAgent = treasurerAgent
	reply.Treasury = treasury
	reply.Pending = pending
	reply.PendingActivation = pendingActivation
	return nil
}

type GetSwapperArgs struct {
	Strategy codec.Address `json:"strategy"`
}

type GetSwapperReply struct {
	Activation int64 `json:"activation"`
}

func (j *JSONRPCServer) GetSwapper(req *http.Request, args *GetSwapperArgs, reply *GetSwapperReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "Server.GetSwapper")
	defer span.End()

	activation, err := storage.GetSwapperActivationFromState(ctx, j.vm.ReadState, args.Strategy)
	if err != nil {
		return err
	}
	reply.Activation = activation
	return nil
}

type GetAllocationArgs struct {
	Pool uint8 `json:"pool"`
}

type GetAllocationReply struct {
	Minted uint64 `json:"minted"`
	Cap    uint64 `json:"cap"`
}

func (j *JSONRPCServer) GetAllocation(req *http.Request, args *GetAllocationArgs, reply *GetAllocationReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "Server.GetAllocation")
	defer span.End()

	pool := storage.Allocation(args.Pool)
	minted, err := storage.GetAllocationMintedFromState(ctx, j.vm.ReadState, pool)
	if err != nil {
		return err
	}
	_, _, _, _, totalSupply, _, err := storage.GetTokenInfoFromState(ctx, j.vm.ReadState, storage.CoinAddress)
	if err != nil {
		return err
	}
	cap, err := storage.AllocationCap(totalSupply, pool)
	if err != nil {
		return err
	}
	reply.Minted = minted
	reply.Cap = cap
	return nil
}

type GetRewardTotalsReply struct {
	OpenReward  uint64 `json:"openReward"`
	OpenToClaim uint64 `json:"openToClaim"`
	Released    uint64 `json:"released"`
}

func (j *JSONRPCServer) GetRewardTotals(req *http.Request, _ *struct{}, reply *GetRewardTotalsReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "Server.GetRewardTotals")
	defer span.End()

	openReward, openToClaim, released, err := storage.GetRewardTotalsFromState(ctx, j.vm.ReadState)
	if err != nil {
		return err
	}
	reply.OpenReward = openReward
	reply.OpenToClaim = openToClaim
	reply.Released = released
	return nil
}

type GetClaimableRewardArgs struct {
	Account codec.Address `json:"account"`
}

type GetClaimableRewardReply struct {
	Claimable uint64 `json:"claimable"`
}

func (j *JSONRPCServer) GetClaimableReward(req *http.Request, args *GetClaimableRewardArgs, reply *GetClaimableRewardReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "Server.GetClaimableReward")
	defer span.End()

	claimable, err := storage.GetClaimableRewardFromState(ctx, j.vm.ReadState, args.Account)
	if err != nil {
		return err
	}
	reply.Claimable = claimable
	return nil
}

type GetCollectibleArgs struct {
	Item ids.ID `json:"item"`
}

type GetCollectibleReply struct {
	Owner       codec.Address `json:"owner"`
	Perspective string        `json:"perspective"`
	LastUpdate  int64         `json:"lastUpdate"`
}

func (j *JSONRPCServer) GetCollectible(req *http.Request, args *GetCollectibleArgs, reply *GetCollectibleReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "Server.GetCollectible")
	defer span.End()

	owner, perspective, lastUpdate, err := storage.GetCollectibleFromState(ctx, j.vm.ReadState, args.Item)
	if err != nil {
		return err
	}
	reply.Owner = owner
	reply.Perspective = string(perspective)
	reply.LastUpdate = lastUpdate
	return nil
}

type GetSlippageToleranceReply struct {
	ToleranceBP uint64 `json:"toleranceBP"`
}

func (j *JSONRPCServer) GetSlippageTolerance(req *http.Request, _ *struct{}, reply *GetSlippageToleranceReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "Server.GetSlippageTolerance")
	defer span.End()

	toleranceBP, err := storage.GetSlippageToleranceFromState(ctx, j.vm.ReadState)
	if err != nil {
		return err
	}
	reply.ToleranceBP = toleranceBP
	return nil
}
