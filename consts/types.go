// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

// TypeIDs for actions
const (
	// Token surface
	CreateTokenID uint8 = iota
	MintTokenID
	BurnTokenID
	TransferTokenID
	ApproveTokenID

	// Pool surface
	CreateLiquidityPoolID
	AddLiquidityID
	RemoveLiquidityID
	SwapID

	// Authority registry
	CreateAuthorityID
	ProposeRotationID
	ExecuteRotationID
	SetRoleID
	WhitelistSwapperID
	DisableSwapperID

	// Supply allocation
	MintAllocationID

	// Treasury liquidity engine
	ProvideLiquidityID
	BuyBackAndBurnID
	SetSlippageToleranceID

	// Treasury swap router
	SwapTreasuryAssetID

	// Reward ledger
	DepositRewardsID
	DistributeRewardsID
	ReleaseRewardID

	// Collectible flows
	PurchaseCollectibleID
	UpdatePerspectiveID
)

// TypeIDs for auth and address generation
const (
	// Required
	ED25519ID uint8 = iota
	SECP256R1ID
	BLSID

	// Address spaces carved out by this VM
	TOKENID
	LIQUIDITYPOOLID
	LIQUIDITYPOOLTOKENID
	AUTHORITYID
	STRATEGYID
	COLLECTIBLEID
	MODULEID
)
