// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import "errors"

var (
	// Token-related errors
	ErrOutputValueZero             = errors.New("value is zero")
	ErrOutputTokenNameEmpty        = errors.New("token name is empty")
	ErrOutputTokenNameTooLarge     = errors.New("token name is too large")
	ErrOutputForbiddenTokenName    = errors.New("forbidden token name")
	ErrOutputTokenSymbolEmpty      = errors.New("token symbol is empty")
	ErrOutputTokenSymbolTooLarge   = errors.New("token symbol is too large")
	ErrOutputTokenMetadataEmpty    = errors.New("token metadata is empty")
	ErrOutputTokenMetadataTooLarge = errors.New("token metadata is too large")
	ErrOutputTokenDecimalsTooLarge = errors.New("token decimals too large")
	ErrOutputTokenAlreadyExists    = errors.New("token already exists")
	ErrOutputTokenDoesNotExist     = errors.New("token does not exist")
	ErrOutputTokenNotOwner         = errors.New("actor is not token owner")

	// Pool-related errors
	ErrOutputInvalidFee                 = errors.New("fee exceeds ceiling")
	ErrOutputTokenXDoesNotExist         = errors.New("token X does not exist")
	ErrOutputTokenYDoesNotExist         = errors.New("token Y does not exist")
	ErrOutputIdenticalTokens            = errors.New("token X and token Y are identical")
	ErrOutputLiquidityPoolAlreadyExists = errors.New("liquidity pool already exists")
	ErrOutputLiquidityPoolDoesNotExist  = errors.New("liquidity pool does not exist")

	// Authority registry errors
	ErrOutputAddressEmpty           = errors.New("address is empty")
	ErrOutputAuthorityDoesNotExist  = errors.New("authority record does not exist")
	ErrOutputStaleAuthority         = errors.New("authority is not the active registry")
	ErrOutputRotationAlreadyPending = errors.New("rotation already pending")
	ErrOutputNoRotationPending      = errors.New("no rotation pending")
	ErrOutputRotationNotReady       = errors.New("rotation delay has not elapsed")
	ErrOutputInvalidRole            = errors.New("invalid role")
	ErrOutputSwapperAlreadyListed   = errors.New("swapper already listed")
	ErrOutputSwapperNotListed       = errors.New("swapper not listed")
	ErrOutputSwapperNotActive       = errors.New("swapper not active")

	// Supply allocation errors
	ErrOutputInvalidAllocation = errors.New("invalid allocation pool")

	// Liquidity engine errors
	ErrOutputSlippageToleranceTooLarge = errors.New("slippage tolerance exceeds ceiling")
	ErrOutputNothingToBurn             = errors.New("nothing to burn")

	// Swap router errors
	ErrOutputWrongTreasury    = errors.New("treasury address does not match registry")
	ErrOutputDeadlineExpired  = errors.New("deadline expired")
	ErrOutputSwapBelowMinimum = errors.New("swap output below minimum")

	// Reward ledger errors
	ErrOutputVaultShortfall        = errors.New("vault balance below ledger totals")
	ErrOutputNoOpenReward          = errors.New("no open reward to distribute")
	ErrOutputDistributionMismatch  = errors.New("winners and shares length mismatch")
	ErrOutputDistributionEmpty     = errors.New("no winners given")
	ErrOutputDistributionTooLarge  = errors.New("too many winners")
	ErrOutputSharesSumInvalid      = errors.New("shares do not sum to 10000 basis points")
	ErrOutputDistributionOverdrawn = errors.New("distribution exceeds open reward")
	ErrOutputNothingToRelease      = errors.New("nothing to release")

	// Collectible errors
	ErrOutputVoucherExpired        = errors.New("voucher expired")
	ErrOutputInvalidSignature      = errors.New("invalid voucher signature")
	ErrOutputSignerNotContentAgent = errors.New("voucher signer is not the content agent")
	ErrOutputCollectibleExists     = errors.New("collectible already minted")
	ErrOutputCollectibleMissing    = errors.New("collectible does not exist")
	ErrOutputPerspectiveTooLarge   = errors.New("perspective is too large")
	ErrOutputPerspectiveCooldown   = errors.New("perspective cooldown active")
)
