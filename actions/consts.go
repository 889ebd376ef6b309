// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

const (
	CreateTokenComputeUnits   = 1
	MintTokenComputeUnits     = 1
	BurnTokenComputeUnits     = 1
	TransferTokenComputeUnits = 1
	ApproveTokenComputeUnits  = 1

	CreateLiquidityPoolComputeUnits = 1
	AddLiquidityComputeUnits        = 2
	RemoveLiquidityComputeUnits     = 2
	SwapComputeUnits                = 2

	CreateAuthorityComputeUnits  = 1
	ProposeRotationComputeUnits  = 1
	ExecuteRotationComputeUnits  = 1
	SetRoleComputeUnits          = 1
	WhitelistSwapperComputeUnits = 1
	DisableSwapperComputeUnits   = 1

	MintAllocationComputeUnits = 1

	ProvideLiquidityComputeUnits     = 4
	BuyBackAndBurnComputeUnits       = 4
	SetSlippageToleranceComputeUnits = 1

	SwapTreasuryAssetComputeUnits = 3

	DepositRewardsComputeUnits    = 1
	DistributeRewardsComputeUnits = 2
	ReleaseRewardComputeUnits     = 1

	PurchaseCollectibleComputeUnits = 2
	UpdatePerspectiveComputeUnits   = 1
)
