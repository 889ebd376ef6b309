// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"math"
	"testing"

	smath "github.com/ava-labs/avalanchego/utils/math"
	"github.com/stretchr/testify/require"
)

func TestSlippageFloor(t *testing.T) {
	require := require.New(t)

	floor, err := SlippageFloor(10_000, 100)
	require.NoError(err)
	require.Equal(uint64(9_900), floor)

	floor, err = SlippageFloor(10_000, 0)
	require.NoError(err)
	require.Equal(uint64(10_000), floor)

	floor, err = SlippageFloor(10_000, MaxSlippageBP)
	require.NoError(err)
	require.Equal(uint64(9_000), floor)

	// Treasury-scale amounts must not wrap the floor toward zero.
	_, err = SlippageFloor(math.MaxUint64/2, 100)
	require.ErrorIs(err, smath.ErrOverflow)
}
