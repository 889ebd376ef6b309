// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrIdenticalAddresses = errors.New("identical addresses")
	ErrInvalidBalance     = errors.New("invalid balance")

	// Authorization
	ErrUnauthorized = errors.New("actor does not hold the required role")

	// Token
	ErrInsufficientAllowance = errors.New("insufficient token allowance")

	// Supply allocation
	ErrAllocationCapExceeded = errors.New("allocation cap exceeded")

	// Authority registry
	ErrAuthorityNotInitialized = errors.New("authority registry not initialized")
	ErrSwapperListFull         = errors.New("swapper directory is full")
)
