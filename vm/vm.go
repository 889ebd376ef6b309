// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/hypersdk/api/indexer"
	"github.com/ava-labs/hypersdk/api/jsonrpc"
	"github.com/ava-labs/hypersdk/api/ws"
	"github.com/ava-labs/hypersdk/auth"
	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/extension/externalsubscriber"
	"github.com/ava-labs/hypersdk/genesis"
	"github.com/ava-labs/hypersdk/vm"

	"github.com/DaiChronicles/treasuryvm/actions"
	"github.com/DaiChronicles/treasuryvm/consts"
	"github.com/DaiChronicles/treasuryvm/storage"
)

var (
	ActionParser *codec.TypeParser[chain.Action]
	AuthParser   *codec.TypeParser[chain.Auth]
	OutputParser *codec.TypeParser[codec.Typed]
)

// Setup types
func init() {
	ActionParser = codec.NewTypeParser[chain.Action]()
	AuthParser = codec.NewTypeParser[chain.Auth]()
	OutputParser = codec.NewTypeParser[codec.Typed]()

	errs := &wrappers.Errs{}
	errs.Add(
		// Token-related actions
		ActionParser.Register(&actions.CreateToken{}, nil),
		ActionParser.Register(&actions.MintToken{}, nil),
		ActionParser.Register(&actions.BurnToken{}, nil),
		ActionParser.Register(&actions.TransferToken{}, nil),
		ActionParser.Register(&actions.ApproveToken{}, nil),

		// Pool-related actions
		ActionParser.Register(&actions.CreateLiquidityPool{}, nil),
		ActionParser.Register(&actions.AddLiquidity{}, nil),
		ActionParser.Register(&actions.RemoveLiquidity{}, nil),
		ActionParser.Register(&actions.Swap{}, nil),

		// Authority registry actions
		ActionParser.Register(&actions.CreateAuthority{}, nil),
		ActionParser.Register(&actions.ProposeRotation{}, nil),
		ActionParser.Register(&actions.ExecuteRotation{}, nil),
		ActionParser.Register(&actions.SetRole{}, nil),
		ActionParser.Register(&actions.WhitelistSwapper{}, nil),
		ActionParser.Register(&actions.DisableSwapper{}, nil),

		// Treasury actions
		ActionParser.Register(&actions.MintAllocation{}, nil),
		ActionParser.Register(&actions.ProvideLiquidity{}, nil),
		ActionParser.Register(&actions.BuyBackAndBurn{}, nil),
		ActionParser.Register(&actions.SetSlippageTolerance{}, nil),
		ActionParser.Register(&actions.SwapTreasuryAsset{}, nil),

		// Reward ledger actions
		ActionParser.Register(&actions.DepositRewards{}, nil),
		ActionParser.Register(&actions.DistributeRewards{}, nil),
		ActionParser.Register(&actions.ReleaseReward{}, nil),

		// Collectible actions
		ActionParser.Register(&actions.PurchaseCollectible{}, nil),
		ActionParser.Register(&actions.UpdatePerspective{}, nil),

		AuthParser.Register(&auth.ED25519{}, auth.UnmarshalED25519),
		AuthParser.Register(&auth.SECP256R1{}, auth.UnmarshalSECP256R1),
		AuthParser.Register(&auth.BLS{}, auth.UnmarshalBLS),
	)
	if errs.Errored() {
		panic(errs.Err)
	}
}

// New returns a VM with the indexer, websocket, rpc, and external
// subscriber apis enabled.
func New(options ...vm.Option) (*vm.VM, error) {
	opts := append([]vm.Option{
		indexer.With(),
		ws.With(),
		jsonrpc.With(),
		With(),
		externalsubscriber.With(),
	}, options...)

	return NewWithOptions(opts...)
}

// NewWithOptions returns a VM with the specified options
func NewWithOptions(options ...vm.Option) (*vm.VM, error) {
	return vm.New(
		consts.Version,
		genesis.DefaultGenesisFactory{},
		&storage.StateManager{},
		ActionParser,
		AuthParser,
		OutputParser,
		auth.Engines(),
		options...,
	)
}
