// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import "errors"

var (
	ErrDeadlineExpired    = errors.New("deadline expired")
	ErrTokenNotInPool     = errors.New("token not in pool")
	ErrOutputBelowMinimum = errors.New("output below minimum")
	ErrAmountBelowMinimum = errors.New("amount below minimum")
)
